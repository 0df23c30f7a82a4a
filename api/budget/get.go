package budget

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/podbrief/summary-api/api/types"
	"github.com/podbrief/summary-api/internal/models"
)

// GetStatus reports the current month's spend against the monthly limit
// @Summary      Budget status
// @Description  Current calendar month spend, remaining headroom and whether the warning
// @Description  threshold has been reached. Spend resets automatically at the month boundary.
// @Tags         budget
// @Produce      json
// @Success      200 {object} types.BudgetStatusResponse
// @Failure      500 {object} types.ErrorResponse
// @Router       /api/v1/budget [get]
func GetStatus(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.BudgetService == nil {
			c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Budget service not available",
			})
			return
		}

		status, err := deps.BudgetService.Status(c.Request.Context())
		if err != nil {
			log.Printf("[ERROR] Failed to load budget status: %v", err)
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Failed to load budget status",
			})
			return
		}

		c.JSON(http.StatusOK, types.BudgetStatusResponse{
			Period:    status.Period,
			Spent:     status.Spent,
			Limit:     status.Limit,
			Remaining: status.Remaining,
			Warning:   status.Warning,
		})
	}
}

// Estimate projects the cost of a summary request without queuing it
// @Summary      Estimate request cost
// @Description  Project transcription, summarization and speech costs for a request and report
// @Description  whether the current budget would allow it. Nothing is queued or spent.
// @Tags         budget
// @Accept       json
// @Produce      json
// @Param        request body models.SummaryRequest true "Episodes and target duration (1, 5 or 10 minutes)"
// @Success      200 {object} types.EstimateResponse
// @Failure      400 {object} types.ErrorResponse "Invalid request body or episode list"
// @Router       /api/v1/budget/estimate [post]
func Estimate(deps *types.Dependencies) gin.HandlerFunc {
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

		if deps.BudgetService == nil {
			c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Budget service not available",
			})
			return
		}

		estimate := deps.BudgetService.EstimateRequest(request)

		response := types.EstimateResponse{Estimate: estimate, Allowed: true}
		if err := deps.BudgetService.Authorize(c.Request.Context(), estimate); err != nil {
			response.Allowed = false
			response.Reason = err.Error()
		}

		c.JSON(http.StatusOK, response)
	}
}
