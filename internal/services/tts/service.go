package tts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"

	"github.com/podbrief/summary-api/pkg/transcript"
)

// ErrEmptyText is returned when there is nothing to synthesize
var ErrEmptyText = errors.New("no text to synthesize")

// Provider-imposed playback speed range
const (
	MinSpeed = 0.75
	MaxSpeed = 1.25
)

// speedTolerance is the band around the target duration inside which no
// speed adjustment is applied
const speedTolerance = 0.15

// Config configures the speech synthesis provider
type Config struct {
	APIKey    string
	Model     string
	Voice     string
	MaxChars  int // provider's per-request character ceiling
	ChunkSize int // characters per chunk when text exceeds the ceiling
}

// Service synthesizes speech through an OpenAI-compatible TTS endpoint
type Service struct {
	client         speechClient
	cfg            Config
	wordsPerMinute int
}

// NewService creates a speech synthesis service
func NewService(cfg Config, wordsPerMinute int) *Service {
	return &Service{
		client:         openai.NewClient(cfg.APIKey),
		cfg:            cfg,
		wordsPerMinute: wordsPerMinute,
	}
}

// Synthesize renders text as MP3. Text over the provider's character
// ceiling is split at sentence boundaries and synthesized concurrently at
// one shared speed, then concatenated in order.
func (s *Service) Synthesize(ctx context.Context, text string, targetSeconds int) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	speed := SpeedMultiplier(transcript.CountWords(text), s.wordsPerMinute, targetSeconds)

	if len(text) <= s.cfg.MaxChars {
		return s.synthesizeChunk(ctx, text, speed)
	}

	chunks := SplitIntoChunks(text, s.cfg.ChunkSize)
	log.Printf("[INFO] Text length %d chars, splitting into %d chunk(s) for speech synthesis", len(text), len(chunks))

	buffers := make([][]byte, len(chunks))
	errs := make([]error, len(chunks))

	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk string) {
			defer wg.Done()
			audio, err := s.synthesizeChunk(ctx, chunk, speed)
			if err != nil {
				errs[i] = fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
				return
			}
			buffers[i] = audio
			log.Printf("[DEBUG] Synthesized chunk %d/%d (%d chars)", i+1, len(chunks), len(chunk))
		}(i, chunk)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return bytes.Join(buffers, nil), nil
}

func (s *Service) synthesizeChunk(ctx context.Context, text string, speed float64) ([]byte, error) {
	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(s.cfg.Model),
		Input:          text,
		Voice:          openai.SpeechVoice(s.cfg.Voice),
		Speed:          speed,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, fmt.Errorf("synthesizing speech: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("reading audio response: %w", err)
	}
	return audio, nil
}

// SpeedMultiplier derives the playback speed that pushes the spoken
// duration toward the target. Within ±15% of target no adjustment is made;
// outside it the ratio is clamped to the provider's supported range.
func SpeedMultiplier(wordCount, wordsPerMinute, targetSeconds int) float64 {
	if targetSeconds <= 0 {
		return 1.0
	}

	estimated := float64(transcript.EstimateSpeakingDuration(wordCount, wordsPerMinute))
	target := float64(targetSeconds)

	switch {
	case estimated > target*(1+speedTolerance):
		ratio := estimated / target
		if ratio > MaxSpeed {
			return MaxSpeed
		}
		return ratio
	case estimated < target*(1-speedTolerance):
		ratio := estimated / target
		if ratio < MinSpeed {
			return MinSpeed
		}
		return ratio
	default:
		return 1.0
	}
}

// SplitIntoChunks greedily packs whole sentences into chunks of at most
// maxChars. A single sentence longer than maxChars becomes its own chunk.
func SplitIntoChunks(text string, maxChars int) []string {
	sentences := transcript.SplitSentences(text)
	if len(sentences) == 0 {
		sentences = []string{text}
	}

	var chunks []string
	var current strings.Builder

	for _, sentence := range sentences {
		if current.Len()+len(sentence) > maxChars && current.Len() > 0 {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
		current.WriteString(sentence)
	}

	if current.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}

	return chunks
}
