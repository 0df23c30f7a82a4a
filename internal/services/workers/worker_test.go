package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podbrief/summary-api/internal/models"
	"github.com/podbrief/summary-api/internal/services/jobs"
	"github.com/podbrief/summary-api/internal/services/pipeline"
	"github.com/podbrief/summary-api/internal/services/transcription"
)

// stubJobService records job state transitions in memory
type stubJobService struct {
	mu        sync.Mutex
	queue     []*models.Job
	progress  map[string][]models.ProcessingProgress
	completed map[string]models.SummaryResult
	failed    map[string]string
}

func newStubJobService(queued ...*models.Job) *stubJobService {
	return &stubJobService{
		queue:     queued,
		progress:  make(map[string][]models.ProcessingProgress),
		completed: make(map[string]models.SummaryResult),
		failed:    make(map[string]string),
	}
}

func (s *stubJobService) CreateJob(ctx context.Context, request models.SummaryRequest) (*models.Job, error) {
	return nil, nil
}

func (s *stubJobService) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	return nil, jobs.ErrJobNotFound
}

func (s *stubJobService) ClaimNextJob(ctx context.Context, workerID string) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return nil, jobs.ErrNoJobsAvailable
	}
	job := s.queue[0]
	s.queue = s.queue[1:]
	job.WorkerID = workerID
	return job, nil
}

func (s *stubJobService) UpdateProgress(ctx context.Context, jobID string, progress models.ProcessingProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress[jobID] = append(s.progress[jobID], progress)
	return nil
}

func (s *stubJobService) CompleteJob(ctx context.Context, jobID string, result models.SummaryResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed[jobID] = result
	return nil
}

func (s *stubJobService) FailJob(ctx context.Context, jobID string, jobErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed[jobID] = jobErr.Error()
	return nil
}

func (s *stubJobService) CleanupOldJobs(ctx context.Context, retention time.Duration) (int64, error) {
	return 0, nil
}

// pipeline stage stubs

type okTranscriber struct{ err error }

func (t *okTranscriber) Provider() string { return "stub" }
func (t *okTranscriber) Transcribe(ctx context.Context, ep models.Episode) (*transcription.Result, error) {
	if t.err != nil {
		return nil, t.err
	}
	return &transcription.Result{Text: "a transcript.", Minutes: 30}, nil
}

type okSummarizer struct{}

func (okSummarizer) Summarize(ctx context.Context, eps []models.Episode, target int) (string, error) {
	return "the summary text.", nil
}

type okSynthesizer struct{}

func (okSynthesizer) Synthesize(ctx context.Context, text string, targetSeconds int) ([]byte, error) {
	return []byte("mp3"), nil
}

type okStore struct{}

func (okStore) SaveSummaryAudio(ctx context.Context, audio []byte) (string, error) {
	return "https://storage.example.com/summary-1.mp3", nil
}

type okCosts struct{}

func (okCosts) ActualCost(minutes float64, chars int) models.CostBreakdown {
	return models.CostBreakdown{Total: 0.1}
}
func (okCosts) RecordSpend(ctx context.Context, amount float64) error { return nil }

func testJob(id string) *models.Job {
	return &models.Job{
		ID:     id,
		Status: models.JobStatusProcessing,
		Request: models.SummaryRequest{
			Episodes: []models.Episode{
				{Title: "Ep", Duration: 1800, AudioURL: "https://cdn.example.com/ep.mp3"},
			},
			TargetDuration: 5,
		},
	}
}

func newOrchestrator(transcriber transcription.Transcriber) *pipeline.Orchestrator {
	return pipeline.NewOrchestrator(transcriber, okSummarizer{}, okSynthesizer{}, okStore{}, okCosts{}, 150)
}

func TestSummaryProcessor_Success(t *testing.T) {
	svc := newStubJobService()
	processor := NewSummaryProcessor(newOrchestrator(&okTranscriber{}), svc, time.Minute)

	job := testJob("job-1")
	require.NoError(t, processor.ProcessJob(context.Background(), job))

	result, ok := svc.completed["job-1"]
	require.True(t, ok)
	assert.Equal(t, "https://storage.example.com/summary-1.mp3", result.AudioURL)
	assert.Equal(t, "the summary text.", result.SummaryText)
	assert.Empty(t, svc.failed)

	// Progress snapshots were persisted in stage order
	steps := svc.progress["job-1"]
	require.Len(t, steps, 4)
	assert.Equal(t, 5, steps[0].Percentage)
	assert.Equal(t, 90, steps[3].Percentage)
}

func TestSummaryProcessor_Failure(t *testing.T) {
	svc := newStubJobService()
	processor := NewSummaryProcessor(newOrchestrator(&okTranscriber{err: assert.AnError}), svc, time.Minute)

	err := processor.ProcessJob(context.Background(), testJob("job-2"))
	require.Error(t, err)

	msg, ok := svc.failed["job-2"]
	require.True(t, ok)
	assert.Contains(t, msg, "Ep")
	assert.Empty(t, svc.completed)
}

func TestWorker_ProcessesQueuedJob(t *testing.T) {
	svc := newStubJobService(testJob("job-3"))
	processor := NewSummaryProcessor(newOrchestrator(&okTranscriber{}), svc, time.Minute)

	worker := NewWorker("worker-test", svc, processor, 10*time.Millisecond)
	worker.Start(context.Background())

	assert.Eventually(t, func() bool {
		svc.mu.Lock()
		defer svc.mu.Unlock()
		_, done := svc.completed["job-3"]
		return done
	}, 2*time.Second, 10*time.Millisecond)

	worker.Stop()
}

func TestWorkerPool_StartStop(t *testing.T) {
	svc := newStubJobService()
	processor := NewSummaryProcessor(newOrchestrator(&okTranscriber{}), svc, time.Minute)

	pool := NewWorkerPool(svc, processor, 2, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, pool.Start(ctx))
	assert.Error(t, pool.Start(ctx), "double start should fail")

	pool.Stop()
	pool.Stop() // idempotent
}
