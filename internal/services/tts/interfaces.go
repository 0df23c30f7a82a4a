package tts

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// Synthesizer converts summary text into spoken audio
type Synthesizer interface {
	// Synthesize renders the text as MP3 bytes, paced toward the target
	// duration in seconds.
	Synthesize(ctx context.Context, text string, targetSeconds int) ([]byte, error)
}

// speechClient is the slice of the OpenAI client the synthesizer needs
type speechClient interface {
	CreateSpeech(ctx context.Context, request openai.CreateSpeechRequest) (openai.RawResponse, error)
}
