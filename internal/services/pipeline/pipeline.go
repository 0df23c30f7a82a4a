package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/podbrief/summary-api/internal/models"
	"github.com/podbrief/summary-api/internal/services/summarize"
	"github.com/podbrief/summary-api/internal/services/transcription"
	"github.com/podbrief/summary-api/internal/services/tts"
	"github.com/podbrief/summary-api/pkg/transcript"
)

// ProgressFunc receives stage progress. Emissions arrive in stage order
// even though work inside a stage runs concurrently.
type ProgressFunc func(progress models.ProcessingProgress)

// AudioStore persists the synthesized summary and returns its public URL
type AudioStore interface {
	SaveSummaryAudio(ctx context.Context, audio []byte) (string, error)
}

// CostTracker computes realized cost and records it against the budget
type CostTracker interface {
	ActualCost(transcribedMinutes float64, summaryChars int) models.CostBreakdown
	RecordSpend(ctx context.Context, amount float64) error
}

// Orchestrator drives a summary request through transcription,
// summarization, speech synthesis and storage
type Orchestrator struct {
	transcriber    transcription.Transcriber
	summarizer     summarize.Summarizer
	synthesizer    tts.Synthesizer
	store          AudioStore
	costs          CostTracker
	wordsPerMinute int
}

// NewOrchestrator wires the pipeline stages together
func NewOrchestrator(
	transcriber transcription.Transcriber,
	summarizer summarize.Summarizer,
	synthesizer tts.Synthesizer,
	store AudioStore,
	costs CostTracker,
	wordsPerMinute int,
) *Orchestrator {
	return &Orchestrator{
		transcriber:    transcriber,
		summarizer:     summarizer,
		synthesizer:    synthesizer,
		store:          store,
		costs:          costs,
		wordsPerMinute: wordsPerMinute,
	}
}

type timing struct {
	step    string
	seconds float64
}

type episodeResult struct {
	transcript string
	minutes    float64
	seconds    float64
	err        error
}

// Run executes the pipeline for one request and returns the summary
// result. Any stage failure aborts the whole run; there is no partial
// success.
func (o *Orchestrator) Run(ctx context.Context, request models.SummaryRequest, onProgress ProgressFunc) (*models.SummaryResult, error) {
	if len(request.Episodes) == 0 {
		return nil, fmt.Errorf("no episodes to process")
	}

	pipelineStart := time.Now()
	var timings []timing

	emit := func(p models.ProcessingProgress) {
		if onProgress != nil {
			onProgress(p)
		}
	}

	emit(models.ProcessingProgress{
		Step:       "Transcribing episodes",
		Percentage: 5,
		Message:    fmt.Sprintf("Transcribing %d episode(s) in parallel...", len(request.Episodes)),
	})

	episodes, transcribedMinutes, epTimings, err := o.transcribeAll(ctx, request.Episodes)
	if err != nil {
		return nil, err
	}
	timings = append(timings, timing{"All episodes transcribed (parallel)", time.Since(pipelineStart).Seconds()})
	timings = append(timings, epTimings...)

	// Only the last episode in request order gets truncated
	last := len(episodes) - 1
	if episodes[last].Timestamp > 0 && episodes[last].Duration > 0 {
		episodes[last].Transcript = transcript.Truncate(
			episodes[last].Transcript, episodes[last].Timestamp, episodes[last].Duration)
	}

	emit(models.ProcessingProgress{
		Step:       "Generating summary",
		Percentage: 50,
		Message:    "Creating text summary...",
	})

	summarizationStart := time.Now()
	summaryText, err := o.summarizer.Summarize(ctx, episodes, request.TargetDuration)
	if err != nil {
		return nil, fmt.Errorf("summarization failed: %w", err)
	}
	timings = append(timings, timing{"Summarization", time.Since(summarizationStart).Seconds()})

	emit(models.ProcessingProgress{
		Step:       "Converting to speech",
		Percentage: 75,
		Message:    "Generating audio...",
	})

	ttsStart := time.Now()
	audio, err := o.synthesizer.Synthesize(ctx, summaryText, request.TargetDuration*60)
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}
	timings = append(timings, timing{"Speech synthesis", time.Since(ttsStart).Seconds()})

	emit(models.ProcessingProgress{
		Step:       "Storing audio",
		Percentage: 90,
		Message:    "Uploading to storage...",
	})

	storeStart := time.Now()
	audioURL, err := o.store.SaveSummaryAudio(ctx, audio)
	if err != nil {
		return nil, fmt.Errorf("storing audio failed: %w", err)
	}
	timings = append(timings, timing{"Storage upload", time.Since(storeStart).Seconds()})

	logTimingTable(timings, time.Since(pipelineStart).Seconds())

	costBreakdown := o.costs.ActualCost(transcribedMinutes, len(summaryText))
	if err := o.costs.RecordSpend(ctx, costBreakdown.Total); err != nil {
		log.Printf("[WARN] Failed to record spend: %v", err)
	}

	wordCount := transcript.CountWords(summaryText)

	return &models.SummaryResult{
		AudioURL:       audioURL,
		SummaryText:    summaryText,
		ActualDuration: transcript.SpokenDuration(wordCount, o.wordsPerMinute),
		TargetDuration: request.TargetDuration * 60,
		CostBreakdown:  costBreakdown,
	}, nil
}

// transcribeAll runs every episode's transcription concurrently, lets all
// calls settle, and surfaces the first failure in request order.
func (o *Orchestrator) transcribeAll(ctx context.Context, requested []models.Episode) ([]models.Episode, float64, []timing, error) {
	results := make([]episodeResult, len(requested))

	done := make(chan int, len(requested))
	for i := range requested {
		go func(i int) {
			defer func() { done <- i }()
			results[i] = o.transcribeOne(ctx, requested[i])
		}(i)
	}
	for range requested {
		<-done
	}

	for i, result := range results {
		if result.err != nil {
			return nil, 0, nil, fmt.Errorf("failed to transcribe episode %q: %w", requested[i].Title, result.err)
		}
	}

	episodes := make([]models.Episode, len(requested))
	var totalMinutes float64
	var timings []timing

	for i, result := range results {
		episodes[i] = requested[i]
		episodes[i].Transcript = result.transcript
		totalMinutes += result.minutes
		timings = append(timings, timing{
			step:    fmt.Sprintf("Transcription (ep %d: %s)", i+1, requested[i].Title),
			seconds: result.seconds,
		})
	}

	return episodes, totalMinutes, timings, nil
}

func (o *Orchestrator) transcribeOne(ctx context.Context, episode models.Episode) episodeResult {
	if episode.AudioURL == "" {
		return episodeResult{err: fmt.Errorf("no audio URL available")}
	}

	start := time.Now()
	log.Printf("[DEBUG] Starting transcription for %q via %s", episode.Title, o.transcriber.Provider())

	result, err := o.transcriber.Transcribe(ctx, episode)
	if err != nil {
		return episodeResult{err: err, seconds: time.Since(start).Seconds()}
	}

	log.Printf("[DEBUG] Transcription complete for %q in %.1fs", episode.Title, time.Since(start).Seconds())

	return episodeResult{
		transcript: result.Text,
		minutes:    result.Minutes,
		seconds:    time.Since(start).Seconds(),
	}
}

func logTimingTable(timings []timing, totalSeconds float64) {
	var sb strings.Builder
	rule := strings.Repeat("=", 60)
	thin := strings.Repeat("-", 60)

	sb.WriteString("\n" + rule + "\n")
	sb.WriteString("  PIPELINE TIMING SUMMARY\n")
	sb.WriteString(rule + "\n")
	sb.WriteString(fmt.Sprintf("  %-45s %10s\n", "Step", "Time"))
	sb.WriteString(thin + "\n")
	for _, t := range timings {
		sb.WriteString(fmt.Sprintf("  %-45s %8.1fs\n", t.step, t.seconds))
	}
	sb.WriteString(thin + "\n")
	sb.WriteString(fmt.Sprintf("  %-45s %8.1fs\n", "TOTAL", totalSeconds))
	sb.WriteString(rule)

	log.Printf("[INFO] %s", sb.String())
}
