package transcription

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/podbrief/summary-api/internal/models"
)

// FireworksConfig configures the Fireworks speech-to-text strategy
type FireworksConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// FireworksTranscriber submits the whole audio file to Fireworks' serverless
// Whisper endpoint in one call. Fireworks accepts files up to 1GB, so no
// client-side chunking is needed.
type FireworksTranscriber struct {
	client     audioClient
	downloader fetcher
	model      string
}

// NewFireworksTranscriber creates a Fireworks-backed transcriber. The
// Fireworks audio endpoint speaks the OpenAI wire protocol, so the OpenAI
// client is pointed at its base URL.
func NewFireworksTranscriber(cfg FireworksConfig, downloader fetcher) *FireworksTranscriber {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.BaseURL

	return &FireworksTranscriber{
		client:     openai.NewClientWithConfig(clientConfig),
		downloader: downloader,
		model:      cfg.Model,
	}
}

// Provider names the backing speech-to-text provider
func (t *FireworksTranscriber) Provider() string {
	return "fireworks"
}

// Transcribe downloads the episode audio and transcribes it in one request
func (t *FireworksTranscriber) Transcribe(ctx context.Context, episode models.Episode) (*Result, error) {
	audio, err := t.downloader.Fetch(ctx, episode.AudioURL)
	if err != nil {
		return nil, fmt.Errorf("downloading audio for %q: %w", episode.Title, err)
	}

	start := time.Now()

	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:       t.model,
		FilePath:    audio.Filename,
		Reader:      bytes.NewReader(audio.Data),
		Temperature: 0,
		Format:      openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("transcribing %q: %w", episode.Title, err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return nil, fmt.Errorf("transcribing %q: %w", episode.Title, ErrEmptyTranscript)
	}

	log.Printf("[DEBUG] Fireworks transcribed %q (%d bytes) in %s",
		episode.Title, audio.Size, time.Since(start).Round(time.Millisecond))

	return &Result{
		Text:    text,
		Minutes: transcribedMinutes(episode, resp.Duration),
	}, nil
}

// transcribedMinutes prefers the provider-reported duration and falls back
// to the episode metadata when the response omits it
func transcribedMinutes(episode models.Episode, responseSeconds float64) float64 {
	if responseSeconds > 0 {
		return responseSeconds / 60.0
	}
	return float64(episode.Duration) / 60.0
}
