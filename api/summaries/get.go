package summaries

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/podbrief/summary-api/api/types"
	"github.com/podbrief/summary-api/internal/services/jobs"
)

// GetSummary returns the current state of a summary job
// @Summary      Poll a summary job
// @Description  Fetch the job record for a previously queued summary request. While processing
// @Description  the record carries a progress snapshot; once finished it carries the result or
// @Description  the failure message. Jobs older than the retention window return 404.
// @Tags         summaries
// @Produce      json
// @Param        id path string true "Job ID"
// @Success      200 {object} types.JobStatusResponse
// @Failure      404 {object} types.ErrorResponse "Unknown or expired job"
// @Router       /api/v1/summaries/{id} [get]
func GetSummary(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		jobID := c.Param("id")

		job, err := deps.JobService.GetJob(c.Request.Context(), jobID)
		if err != nil {
			if errors.Is(err, jobs.ErrJobNotFound) {
				c.JSON(http.StatusNotFound, types.ErrorResponse{
					Status:  types.StatusError,
					Message: "Summary job not found",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Failed to load summary job",
			})
			return
		}

		c.JSON(http.StatusOK, types.JobStatusResponse{
			ID:        job.ID,
			Status:    job.Status,
			Progress:  job.Progress,
			Result:    job.Result,
			Error:     job.Error,
			CreatedAt: job.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
}
