package transcription

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/podbrief/summary-api/internal/models"
)

// WhisperConfig configures the OpenAI Whisper strategy
type WhisperConfig struct {
	APIKey      string
	Model       string
	MaxFileSize int // provider's per-request ceiling in bytes
	ChunkSize   int // bytes per chunk when the file exceeds the ceiling
	PromptTail  int // characters of previous transcript used as prompt
}

// WhisperTranscriber uses OpenAI's hosted Whisper, which caps uploads at
// 25MB. Larger files are split into fixed-size byte chunks transcribed
// sequentially, each primed with the tail of the previous chunk's text so
// sentences that straddle a boundary keep their context.
type WhisperTranscriber struct {
	client     audioClient
	downloader fetcher
	cfg        WhisperConfig
}

// NewWhisperTranscriber creates an OpenAI Whisper-backed transcriber
func NewWhisperTranscriber(cfg WhisperConfig, downloader fetcher) *WhisperTranscriber {
	return &WhisperTranscriber{
		client:     openai.NewClient(cfg.APIKey),
		downloader: downloader,
		cfg:        cfg,
	}
}

// Provider names the backing speech-to-text provider
func (t *WhisperTranscriber) Provider() string {
	return "whisper"
}

// Transcribe downloads the episode audio and transcribes it, chunking when
// the file exceeds the provider's size ceiling
func (t *WhisperTranscriber) Transcribe(ctx context.Context, episode models.Episode) (*Result, error) {
	audio, err := t.downloader.Fetch(ctx, episode.AudioURL)
	if err != nil {
		return nil, fmt.Errorf("downloading audio for %q: %w", episode.Title, err)
	}

	var text string
	if len(audio.Data) <= t.cfg.MaxFileSize {
		text, err = t.transcribeChunk(ctx, audio.Data, audio.Filename, "")
	} else {
		text, err = t.transcribeChunked(ctx, audio.Data, audio.Filename, episode.Title)
	}
	if err != nil {
		return nil, fmt.Errorf("transcribing %q: %w", episode.Title, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("transcribing %q: %w", episode.Title, ErrEmptyTranscript)
	}

	return &Result{
		Text:    text,
		Minutes: float64(episode.Duration) / 60.0,
	}, nil
}

// transcribeChunked splits oversized audio into byte chunks and transcribes
// them in order. Chunks must stay sequential: each prompt depends on the
// previous chunk's output.
func (t *WhisperTranscriber) transcribeChunked(ctx context.Context, data []byte, filename, title string) (string, error) {
	chunkCount := (len(data) + t.cfg.ChunkSize - 1) / t.cfg.ChunkSize
	log.Printf("[INFO] Audio for %q is %d bytes, splitting into %d chunk(s)", title, len(data), chunkCount)

	var parts []string
	var prompt string

	for i := 0; i < chunkCount; i++ {
		begin := i * t.cfg.ChunkSize
		end := begin + t.cfg.ChunkSize
		if end > len(data) {
			end = len(data)
		}

		part, err := t.transcribeChunk(ctx, data[begin:end], filename, prompt)
		if err != nil {
			return "", fmt.Errorf("chunk %d/%d: %w", i+1, chunkCount, err)
		}

		parts = append(parts, part)
		prompt = tail(part, t.cfg.PromptTail)

		log.Printf("[DEBUG] Transcribed chunk %d/%d for %q (%d chars)", i+1, chunkCount, title, len(part))
	}

	return strings.Join(parts, " "), nil
}

func (t *WhisperTranscriber) transcribeChunk(ctx context.Context, data []byte, filename, prompt string) (string, error) {
	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:       t.cfg.Model,
		FilePath:    filename,
		Reader:      bytes.NewReader(data),
		Prompt:      prompt,
		Temperature: 0,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// tail returns the last n characters of s
func tail(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
