package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Get handles version requests
// @Summary      Service version
// @Tags         version
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       / [get]
func Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "PodBrief Summary API",
			"version":     "1.0.0",
			"description": "API for generating spoken podcast episode summaries",
			"status":      "running",
		})
	}
}
