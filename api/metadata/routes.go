package metadata

import (
	"github.com/gin-gonic/gin"
	"github.com/podbrief/summary-api/api/types"
)

// RegisterRoutes registers all metadata-related routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("", Lookup(deps))
}
