package transcription

import (
	"context"
	"log"

	"github.com/podbrief/summary-api/internal/models"
	"github.com/podbrief/summary-api/pkg/transcript"
)

// sourcedTranscriber consults published transcript sources before paying
// for speech-to-text. A chain miss falls through to the wrapped provider.
type sourcedTranscriber struct {
	chain *transcript.Chain
	next  Transcriber
}

// WithSources wraps a transcriber with a transcript lookup chain. A nil
// chain returns the transcriber unchanged.
func WithSources(chain *transcript.Chain, next Transcriber) Transcriber {
	if chain == nil {
		return next
	}
	return &sourcedTranscriber{chain: chain, next: next}
}

func (s *sourcedTranscriber) Provider() string {
	return s.next.Provider()
}

func (s *sourcedTranscriber) Transcribe(ctx context.Context, episode models.Episode) (*Result, error) {
	if text, source, ok := s.chain.Lookup(ctx, episode.URL); ok {
		log.Printf("[INFO] Found published transcript for %q via %s source", episode.Title, source)
		return &Result{Text: text, Minutes: float64(episode.Duration) / 60}, nil
	}
	return s.next.Transcribe(ctx, episode)
}
