package transcription

import (
	"log"
	"net/url"
	"strings"

	"github.com/podbrief/summary-api/pkg/config"
	"github.com/podbrief/summary-api/pkg/download"
	"github.com/podbrief/summary-api/pkg/transcript"
)

// NewFromConfig selects a transcription strategy from the configured
// credentials. Fireworks wins when both are present: it takes whole files
// and is priced lower. When a transcript URL template is configured,
// published transcripts are consulted before any provider is called.
func NewFromConfig(cfg *config.Config, downloader *download.Downloader) (Transcriber, error) {
	var transcriber Transcriber

	switch {
	case cfg.Fireworks.APIKey != "":
		log.Printf("[INFO] Using Fireworks for transcription (model %s)", cfg.Fireworks.Model)
		transcriber = NewFireworksTranscriber(FireworksConfig{
			APIKey:  cfg.Fireworks.APIKey,
			BaseURL: cfg.Fireworks.BaseURL,
			Model:   cfg.Fireworks.Model,
		}, downloader)

	case cfg.Whisper.APIKey != "":
		log.Printf("[INFO] Using OpenAI Whisper for transcription (model %s)", cfg.Whisper.Model)
		transcriber = NewWhisperTranscriber(WhisperConfig{
			APIKey:      cfg.Whisper.APIKey,
			Model:       cfg.Whisper.Model,
			MaxFileSize: cfg.Whisper.MaxFileSize,
			ChunkSize:   cfg.Whisper.ChunkSize,
			PromptTail:  cfg.Whisper.PromptTail,
		}, downloader)

	default:
		return nil, ErrNoCredentials
	}

	if template := cfg.Transcripts.URLTemplate; template != "" {
		source := transcript.NewURLSource(transcript.DefaultFetchOptions(), func(episodeURL string) string {
			return strings.ReplaceAll(template, "{episode_url}", url.QueryEscape(episodeURL))
		})
		transcriber = WithSources(transcript.NewChain(source), transcriber)
	}

	return transcriber, nil
}
