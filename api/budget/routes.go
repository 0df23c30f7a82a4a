package budget

import (
	"github.com/gin-gonic/gin"
	"github.com/podbrief/summary-api/api/types"
)

// RegisterRoutes registers all budget-related routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", GetStatus(deps))
	router.POST("/estimate", Estimate(deps))
}
