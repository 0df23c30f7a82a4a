package metadata

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/podbrief/summary-api/api/types"
	metadataService "github.com/podbrief/summary-api/internal/services/metadata"
)

// Lookup resolves episode metadata from a Spotify episode URL
// @Summary      Look up episode metadata
// @Description  Resolve title, show name, duration and audio details for a Spotify episode URL.
// @Description  The oEmbed endpoint supplies the base fields; when a search provider is
// @Description  configured the result is enriched with duration, audio URL and description.
// @Tags         metadata
// @Accept       json
// @Produce      json
// @Param        request body types.MetadataRequest true "Spotify episode URL"
// @Success      200 {object} metadataService.EpisodeMetadata
// @Failure      400 {object} types.ErrorResponse "Missing or non-episode URL"
// @Failure      502 {object} types.ErrorResponse "Lookup provider failed"
// @Router       /api/v1/metadata [post]
func Lookup(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request types.MetadataRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "A url field is required",
				Error:   err.Error(),
			})
			return
		}

		if deps.MetadataService == nil {
			c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Metadata service not available",
			})
			return
		}

		episode, err := deps.MetadataService.Lookup(c.Request.Context(), request.URL)
		if err != nil {
			if errors.Is(err, metadataService.ErrInvalidEpisodeURL) {
				c.JSON(http.StatusBadRequest, types.ErrorResponse{
					Status:  types.StatusError,
					Message: "URL must be a Spotify episode link",
				})
				return
			}
			log.Printf("[ERROR] Metadata lookup failed for %s: %v", request.URL, err)
			c.JSON(http.StatusBadGateway, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Failed to fetch episode metadata",
			})
			return
		}

		c.JSON(http.StatusOK, episode)
	}
}
