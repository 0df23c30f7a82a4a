package transcription

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"

	"github.com/podbrief/summary-api/internal/models"
	"github.com/podbrief/summary-api/pkg/download"
)

// Transcriber errors
var (
	ErrEmptyTranscript = errors.New("provider returned an empty transcript")
	ErrNoCredentials   = errors.New("no transcription provider credentials configured")
)

// Transcriber converts one episode's audio into text
type Transcriber interface {
	// Transcribe downloads the episode audio and returns its transcript
	Transcribe(ctx context.Context, episode models.Episode) (*Result, error)

	// Provider names the backing speech-to-text provider
	Provider() string
}

// Result is the transcript of a single episode
type Result struct {
	Text    string
	Minutes float64
}

// audioClient is the slice of the OpenAI-compatible client the
// transcribers need, kept narrow so tests can stub it
type audioClient interface {
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
}

// fetcher is the slice of the downloader the transcribers need
type fetcher interface {
	Fetch(ctx context.Context, url string) (*download.Result, error)
}
