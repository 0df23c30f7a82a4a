package summaries

import (
	"github.com/gin-gonic/gin"
	"github.com/podbrief/summary-api/api/types"
)

// RegisterRoutes registers all summary-related routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("", CreateSummary(deps))
	router.GET("/:id", GetSummary(deps))
	router.POST("/stream", StreamSummary(deps))
}
