package summaries

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/podbrief/summary-api/api/types"
	"github.com/podbrief/summary-api/internal/models"
	"github.com/podbrief/summary-api/internal/services/budget"
	"github.com/podbrief/summary-api/pkg/config"
)

// CreateSummary queues an asynchronous summary job
// @Summary      Create a summary job
// @Description  Validate a summary request, check provider credentials and the monthly budget,
// @Description  then queue an asynchronous pipeline run. The response carries a job id that can
// @Description  be polled via GET /api/v1/summaries/{id}. Processing typically takes several
// @Description  minutes depending on episode count and length.
// @Tags         summaries
// @Accept       json
// @Produce      json
// @Param        request body models.SummaryRequest true "Episodes and target duration (1, 5 or 10 minutes)"
// @Success      202 {object} types.JobAcceptedResponse "Job queued"
// @Failure      400 {object} types.ErrorResponse "Invalid request body or episode list"
// @Failure      402 {object} types.ErrorResponse "Budget limit would be exceeded"
// @Failure      503 {object} types.ErrorResponse "Provider credentials not configured"
// @Router       /api/v1/summaries [post]
func CreateSummary(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.SummaryRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Invalid request body",
				Error:   err.Error(),
			})
			return
		}

		if err := request.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Invalid summary request",
				Error:   err.Error(),
			})
			return
		}

		if missing := config.MissingCredentials(); len(missing) > 0 {
			log.Printf("[ERROR] Summary request rejected, missing credentials: %v", missing)
			c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Required provider credentials are not configured",
				Details: gin.H{"missing": strings.Join(missing, ", ")},
			})
			return
		}

		if deps.BudgetService != nil {
			estimate := deps.BudgetService.EstimateRequest(request)
			if err := deps.BudgetService.Authorize(c.Request.Context(), estimate); err != nil {
				status := http.StatusPaymentRequired
				if !errors.Is(err, budget.ErrPerRequestLimitExceeded) && !errors.Is(err, budget.ErrMonthlyLimitExceeded) {
					status = http.StatusInternalServerError
				}
				c.JSON(status, types.ErrorResponse{
					Status:  types.StatusError,
					Message: "Request not authorized by budget limits",
					Error:   err.Error(),
					Details: gin.H{"estimatedCost": estimate.Total},
				})
				return
			}
		}

		job, err := deps.JobService.CreateJob(c.Request.Context(), request)
		if err != nil {
			log.Printf("[ERROR] Failed to create summary job: %v", err)
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Failed to create summary job",
			})
			return
		}

		log.Printf("[INFO] Queued summary job %s (%d episode(s), target %d min)",
			job.ID, len(request.Episodes), request.TargetDuration)

		c.JSON(http.StatusAccepted, types.JobAcceptedResponse{
			Status: types.StatusProcessing,
			JobID:  job.ID,
		})
	}
}
