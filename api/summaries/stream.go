package summaries

import (
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/podbrief/summary-api/api/types"
	"github.com/podbrief/summary-api/internal/models"
	"github.com/podbrief/summary-api/pkg/config"
)

type sseEvent struct {
	name string
	data interface{}
}

// StreamSummary runs the pipeline inline and streams progress over SSE.
// This is the legacy synchronous path; new clients should POST /summaries
// and poll the job instead.
// @Summary      Stream a summary over SSE
// @Description  Run the summary pipeline within a single long-lived response, emitting
// @Description  "progress" events as stages complete, then a final "complete" event with the
// @Description  result, or an "error" event if any stage fails.
// @Tags         summaries
// @Accept       json
// @Produce      text/event-stream
// @Param        request body models.SummaryRequest true "Episodes and target duration (1, 5 or 10 minutes)"
// @Success      200 {string} string "SSE stream of progress / complete / error events"
// @Failure      400 {object} types.ErrorResponse "Invalid request body or episode list"
// @Failure      402 {object} types.ErrorResponse "Budget limit would be exceeded"
// @Failure      503 {object} types.ErrorResponse "Provider credentials not configured"
// @Router       /api/v1/summaries/stream [post]
func StreamSummary(deps *types.Dependencies) gin.HandlerFunc {
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
			c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Required provider credentials are not configured",
				Details: gin.H{"missing": strings.Join(missing, ", ")},
			})
			return
		}

		if deps.Orchestrator == nil {
			c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Summary pipeline not available",
			})
			return
		}

		if deps.BudgetService != nil {
			estimate := deps.BudgetService.EstimateRequest(request)
			if err := deps.BudgetService.Authorize(c.Request.Context(), estimate); err != nil {
				c.JSON(http.StatusPaymentRequired, types.ErrorResponse{
					Status:  types.StatusError,
					Message: "Request not authorized by budget limits",
					Error:   err.Error(),
				})
				return
			}
		}

		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")

		// The pipeline emits a small, bounded number of progress events,
		// so a buffered channel keeps the producer from ever blocking on
		// a slow or disconnected client.
		events := make(chan sseEvent, 16)

		go func() {
			defer close(events)

			result, err := deps.Orchestrator.Run(c.Request.Context(), request, func(progress models.ProcessingProgress) {
				events <- sseEvent{name: "progress", data: progress}
			})
			if err != nil {
				log.Printf("[ERROR] Streamed summary failed: %v", err)
				events <- sseEvent{name: "error", data: gin.H{"message": err.Error()}}
				return
			}

			events <- sseEvent{name: "complete", data: result}
		}()

		c.Stream(func(w io.Writer) bool {
			event, ok := <-events
			if !ok {
				return false
			}
			c.SSEvent(event.name, event.data)
			return true
		})
	}
}
