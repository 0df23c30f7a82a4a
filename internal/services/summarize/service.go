package summarize

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/podbrief/summary-api/internal/models"
	"github.com/podbrief/summary-api/pkg/transcript"
)

// ErrEmptySummary is returned when the provider answers with no text
var ErrEmptySummary = errors.New("provider returned an empty summary")

// Config configures the summarization provider
type Config struct {
	APIKey  string
	BaseURL string // optional, for OpenAI-compatible endpoints
	Model   string
}

// Service generates summaries via a chat-completion provider
type Service struct {
	client         chatClient
	model          string
	wordsPerMinute int
}

// NewService creates a summarization service
func NewService(cfg Config, wordsPerMinute int) *Service {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Service{
		client:         openai.NewClientWithConfig(clientConfig),
		model:          cfg.Model,
		wordsPerMinute: wordsPerMinute,
	}
}

// Summarize condenses the episodes' transcripts into one narration script.
// The word target is soft: a result outside the ±10% band is logged and
// returned as-is, never regenerated.
func (s *Service) Summarize(ctx context.Context, episodes []models.Episode, targetMinutes int) (string, error) {
	targetWords := transcript.TargetWordCount(targetMinutes, s.wordsPerMinute)

	prompt := buildPrompt(episodes, targetWords)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		// Buffer above the word target so the model is never cut off mid-sentence
		MaxTokens: targetWords * 2,
	})
	if err != nil {
		return "", fmt.Errorf("generating summary: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptySummary
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return "", ErrEmptySummary
	}

	actualWords := transcript.CountWords(summary)
	if !transcript.IsWordCountAcceptable(actualWords, targetWords) {
		log.Printf("[WARN] Summary word count %d deviates from target %d", actualWords, targetWords)
	}

	return summary, nil
}

// combineTranscripts joins episode transcripts under indexed markers. A
// truncated episode's marker carries its cutoff time so the model knows to
// stop there.
func combineTranscripts(episodes []models.Episode) string {
	parts := make([]string, 0, len(episodes))
	for i, episode := range episodes {
		cutoffNote := ""
		if episode.Timestamp > 0 {
			cutoffNote = fmt.Sprintf(" (summarize only up to %s)", transcript.FormatTimestamp(episode.Timestamp))
		}
		parts = append(parts,
			fmt.Sprintf("=== EPISODE %d: %s%s ===\n\n%s", i+1, episode.Title, cutoffNote, episode.Transcript))
	}
	return strings.Join(parts, "\n\n")
}

func buildPrompt(episodes []models.Episode, targetWords int) string {
	return fmt.Sprintf(`You are creating an audio podcast summary. You will be given transcripts from %d podcast episode(s), and you need to create a cohesive, engaging summary that will be converted to speech.

IMPORTANT REQUIREMENTS:
1. Target length: EXACTLY %d words (±10%% is acceptable, but try to hit the target)
2. Write in a conversational, podcast-style tone suitable for audio
3. Cover all episodes in order, providing clear transitions between episodes
4. If an episode has a timestamp cutoff note, only summarize content up to that point
5. Focus on key insights, main topics, and interesting moments
6. Use natural speech patterns (contractions, varied sentence lengths)
7. Add transition phrases like "In the next episode..." or "Moving on to part two..."

TRANSCRIPTS:
%s

Please create your %d-word summary now:`,
		len(episodes), targetWords, combineTranscripts(episodes), targetWords)
}
