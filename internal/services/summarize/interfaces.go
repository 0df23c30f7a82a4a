package summarize

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/podbrief/summary-api/internal/models"
)

// Summarizer condenses episode transcripts into narration-ready text
type Summarizer interface {
	// Summarize builds a single summary covering all episodes in order,
	// sized for the target spoken duration in minutes.
	Summarize(ctx context.Context, episodes []models.Episode, targetMinutes int) (string, error)
}

// chatClient is the slice of the OpenAI client the summarizer needs
type chatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}
