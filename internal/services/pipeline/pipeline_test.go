package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podbrief/summary-api/internal/models"
	"github.com/podbrief/summary-api/internal/services/transcription"
)

type stubTranscriber struct {
	mu         sync.Mutex
	seen       []string
	transcript func(episode models.Episode) (string, error)
}

func (t *stubTranscriber) Provider() string { return "stub" }

func (t *stubTranscriber) Transcribe(ctx context.Context, episode models.Episode) (*transcription.Result, error) {
	t.mu.Lock()
	t.seen = append(t.seen, episode.Title)
	t.mu.Unlock()

	text, err := t.transcript(episode)
	if err != nil {
		return nil, err
	}
	return &transcription.Result{Text: text, Minutes: float64(episode.Duration) / 60.0}, nil
}

type stubSummarizer struct {
	episodes []models.Episode
	summary  string
	err      error
}

func (s *stubSummarizer) Summarize(ctx context.Context, episodes []models.Episode, targetMinutes int) (string, error) {
	s.episodes = episodes
	return s.summary, s.err
}

type stubSynthesizer struct {
	text  string
	audio []byte
	err   error
}

func (s *stubSynthesizer) Synthesize(ctx context.Context, text string, targetSeconds int) ([]byte, error) {
	s.text = text
	return s.audio, s.err
}

type stubStore struct {
	audio []byte
	url   string
	err   error
}

func (s *stubStore) SaveSummaryAudio(ctx context.Context, audio []byte) (string, error) {
	s.audio = audio
	return s.url, s.err
}

type stubCosts struct {
	minutes  float64
	chars    int
	recorded float64
}

func (c *stubCosts) ActualCost(transcribedMinutes float64, summaryChars int) models.CostBreakdown {
	c.minutes = transcribedMinutes
	c.chars = summaryChars
	return models.CostBreakdown{Transcription: 0.072, Summarization: 0.03, TTS: 0.01, Total: 0.112}
}

func (c *stubCosts) RecordSpend(ctx context.Context, amount float64) error {
	c.recorded = amount
	return nil
}

func twoEpisodeRequest() models.SummaryRequest {
	return models.SummaryRequest{
		Episodes: []models.Episode{
			{Title: "Part One", Duration: 1800, AudioURL: "https://cdn.example.com/1.mp3"},
			{Title: "Part Two", Duration: 1800, AudioURL: "https://cdn.example.com/2.mp3", Timestamp: 900},
		},
		TargetDuration: 5,
	}
}

func newTestOrchestrator(t *stubTranscriber, s *stubSummarizer, y *stubSynthesizer, st *stubStore, c *stubCosts) *Orchestrator {
	return NewOrchestrator(t, s, y, st, c, 150)
}

func TestRun_HappyPath(t *testing.T) {
	// 300 words gives a 120s spoken duration
	summary := strings.TrimSpace(strings.Repeat("word ", 300))

	transcriber := &stubTranscriber{transcript: func(ep models.Episode) (string, error) {
		return "transcript of " + ep.Title + ". More sentences. And more. And a fourth one.", nil
	}}
	summarizer := &stubSummarizer{summary: summary}
	synthesizer := &stubSynthesizer{audio: []byte("mp3-bytes")}
	store := &stubStore{url: "https://storage.example.com/summary-1700000000000.mp3"}
	costs := &stubCosts{}

	o := newTestOrchestrator(transcriber, summarizer, synthesizer, store, costs)

	var progress []models.ProcessingProgress
	result, err := o.Run(context.Background(), twoEpisodeRequest(), func(p models.ProcessingProgress) {
		progress = append(progress, p)
	})
	require.NoError(t, err)

	// Progress in stage order with the documented percentages
	require.Len(t, progress, 4)
	assert.Equal(t, []int{5, 50, 75, 90},
		[]int{progress[0].Percentage, progress[1].Percentage, progress[2].Percentage, progress[3].Percentage})
	assert.Equal(t, "Transcribing episodes", progress[0].Step)
	assert.Contains(t, progress[0].Message, "2 episode(s)")
	assert.Equal(t, "Generating summary", progress[1].Step)
	assert.Equal(t, "Converting to speech", progress[2].Step)
	assert.Equal(t, "Storing audio", progress[3].Step)

	// Both episodes transcribed
	assert.ElementsMatch(t, []string{"Part One", "Part Two"}, transcriber.seen)

	// Summary flows into synthesis and storage
	assert.Equal(t, summary, synthesizer.text)
	assert.Equal(t, []byte("mp3-bytes"), store.audio)

	// Cost computed from transcribed minutes and summary length, then recorded
	assert.InDelta(t, 60.0, costs.minutes, 0.01)
	assert.Equal(t, len(summary), costs.chars)
	assert.InDelta(t, 0.112, costs.recorded, 1e-9)

	assert.Equal(t, "https://storage.example.com/summary-1700000000000.mp3", result.AudioURL)
	assert.Equal(t, summary, result.SummaryText)
	assert.Equal(t, 120, result.ActualDuration)
	assert.Zero(t, result.ActualDuration%60)
	assert.Equal(t, 300, result.TargetDuration)
	assert.InDelta(t, 0.112, result.CostBreakdown.Total, 1e-9)
}

func TestRun_TruncatesOnlyLastEpisode(t *testing.T) {
	longTranscript := ""
	for i := 0; i < 100; i++ {
		longTranscript += fmt.Sprintf("Sentence number %d here. ", i)
	}
	longTranscript = strings.TrimSpace(longTranscript)

	transcriber := &stubTranscriber{transcript: func(ep models.Episode) (string, error) {
		return longTranscript, nil
	}}
	summarizer := &stubSummarizer{summary: "short recap"}
	synthesizer := &stubSynthesizer{audio: []byte("a")}
	store := &stubStore{url: "u"}

	o := newTestOrchestrator(transcriber, summarizer, synthesizer, store, &stubCosts{})

	_, err := o.Run(context.Background(), twoEpisodeRequest(), nil)
	require.NoError(t, err)

	require.Len(t, summarizer.episodes, 2)
	// First episode untouched, last cut to roughly half (timestamp 900 of 1800)
	assert.Equal(t, longTranscript, summarizer.episodes[0].Transcript)
	assert.Less(t, len(summarizer.episodes[1].Transcript), len(longTranscript))
}

func TestRun_FirstFailureInRequestOrder(t *testing.T) {
	transcriber := &stubTranscriber{transcript: func(ep models.Episode) (string, error) {
		return "", fmt.Errorf("upstream 500 for %s", ep.Title)
	}}

	o := newTestOrchestrator(transcriber, &stubSummarizer{}, &stubSynthesizer{}, &stubStore{}, &stubCosts{})

	_, err := o.Run(context.Background(), twoEpisodeRequest(), nil)
	require.Error(t, err)
	// Both episodes fail; the first in request order is reported
	assert.Contains(t, err.Error(), `"Part One"`)
}

func TestRun_MissingAudioURL(t *testing.T) {
	request := twoEpisodeRequest()
	request.Episodes[1].AudioURL = ""

	transcriber := &stubTranscriber{transcript: func(ep models.Episode) (string, error) {
		return "fine", nil
	}}

	o := newTestOrchestrator(transcriber, &stubSummarizer{}, &stubSynthesizer{}, &stubStore{}, &stubCosts{})

	_, err := o.Run(context.Background(), request, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Part Two"`)
	assert.Contains(t, err.Error(), "no audio URL available")
}

func TestRun_SummarizationFailure(t *testing.T) {
	transcriber := &stubTranscriber{transcript: func(ep models.Episode) (string, error) {
		return "fine", nil
	}}

	var progress []models.ProcessingProgress
	o := newTestOrchestrator(transcriber, &stubSummarizer{err: assert.AnError}, &stubSynthesizer{}, &stubStore{}, &stubCosts{})

	_, err := o.Run(context.Background(), twoEpisodeRequest(), func(p models.ProcessingProgress) {
		progress = append(progress, p)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "summarization failed")

	// Pipeline stopped after the summary stage's progress emission
	require.Len(t, progress, 2)
	assert.Equal(t, 50, progress[1].Percentage)
}

func TestRun_StorageFailure(t *testing.T) {
	transcriber := &stubTranscriber{transcript: func(ep models.Episode) (string, error) {
		return "fine", nil
	}}

	o := newTestOrchestrator(transcriber, &stubSummarizer{summary: "s"}, &stubSynthesizer{audio: []byte("a")}, &stubStore{err: assert.AnError}, &stubCosts{})

	_, err := o.Run(context.Background(), twoEpisodeRequest(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storing audio failed")
}
