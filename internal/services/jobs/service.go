package jobs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/podbrief/summary-api/internal/models"
)

// DefaultRetention bounds how long clients can poll a finished job
const DefaultRetention = 24 * time.Hour

type service struct {
	repo      Repository
	retention time.Duration
}

// NewService creates a job service. A non-positive retention falls back to
// DefaultRetention.
func NewService(repo Repository, retention time.Duration) Service {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &service{
		repo:      repo,
		retention: retention,
	}
}

func (s *service) CreateJob(ctx context.Context, request models.SummaryRequest) (*models.Job, error) {
	if err := request.Validate(); err != nil {
		return nil, fmt.Errorf("validating request: %w", err)
	}

	job := &models.Job{
		ID:      uuid.NewString(),
		Status:  models.JobStatusProcessing,
		Request: request,
	}

	if err := s.repo.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("creating job: %w", err)
	}

	log.Printf("[DEBUG] Created summary job %s for %d episode(s), target %d min",
		job.ID, len(request.Episodes), request.TargetDuration)

	return job, nil
}

func (s *service) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	job, err := s.repo.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("getting job: %w", err)
	}

	// Expired jobs read as missing even before the sweeper removes them
	if job.Expired(s.retention) {
		return nil, ErrJobNotFound
	}

	return job, nil
}

func (s *service) ClaimNextJob(ctx context.Context, workerID string) (*models.Job, error) {
	job, err := s.repo.ClaimNextJob(ctx, workerID)
	if err != nil {
		if errors.Is(err, ErrNoJobsAvailable) {
			return nil, err
		}
		return nil, fmt.Errorf("claiming job: %w", err)
	}

	log.Printf("[DEBUG] Worker %s claimed job %s", workerID, job.ID)

	return job, nil
}

func (s *service) UpdateProgress(ctx context.Context, jobID string, progress models.ProcessingProgress) error {
	if err := s.repo.UpdateJobProgress(ctx, jobID, progress); err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return err
		}
		return fmt.Errorf("updating job progress: %w", err)
	}

	log.Printf("[DEBUG] Job %s progress: %d%% (%s)", jobID, progress.Percentage, progress.Step)

	return nil
}

func (s *service) CompleteJob(ctx context.Context, jobID string, result models.SummaryResult) error {
	if err := s.repo.CompleteJob(ctx, jobID, result); err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return err
		}
		return fmt.Errorf("completing job: %w", err)
	}

	log.Printf("[DEBUG] Job %s completed: %ds of audio, total cost $%.4f",
		jobID, result.ActualDuration, result.CostBreakdown.Total)

	return nil
}

func (s *service) FailJob(ctx context.Context, jobID string, jobErr error) error {
	errorMsg := jobErr.Error()

	if err := s.repo.FailJob(ctx, jobID, errorMsg); err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return err
		}
		return fmt.Errorf("failing job: %w", err)
	}

	log.Printf("[ERROR] Job %s failed: %s", jobID, errorMsg)

	return nil
}

func (s *service) CleanupOldJobs(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, fmt.Errorf("retention must be positive")
	}

	cutoffTime := time.Now().Add(-retention)

	deleted, err := s.repo.DeleteOldJobs(ctx, cutoffTime)
	if err != nil {
		return 0, fmt.Errorf("cleaning up old jobs: %w", err)
	}

	if deleted > 0 {
		log.Printf("[DEBUG] Deleted %d expired jobs (older than %s)", deleted, retention)
	}

	return deleted, nil
}
