package metadata

import (
	"context"
	"time"
)

// Service defines episode metadata lookup. Results are best-effort: the
// free oEmbed layer always answers when the URL is valid, the paid search
// enrichment may silently degrade.
type Service interface {
	Lookup(ctx context.Context, episodeURL string) (*EpisodeMetadata, error)
}

// EpisodeMetadata describes one episode as discovered from lookup providers
type EpisodeMetadata struct {
	Title         string     `json:"title"`
	ShowName      string     `json:"showName"`
	Duration      int        `json:"duration"` // seconds
	Description   string     `json:"description,omitempty"`
	ThumbnailURL  string     `json:"thumbnailUrl,omitempty"`
	AudioURL      string     `json:"audioUrl,omitempty"`
	AudioFileSize int64      `json:"audioFileSize,omitempty"` // bytes, from a HEAD probe
	PublishDate   *time.Time `json:"publishDate,omitempty"`
}
