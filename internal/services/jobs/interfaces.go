package jobs

import (
	"context"
	"time"

	"github.com/podbrief/summary-api/internal/models"
)

// Service defines the business logic interface for summary job operations
type Service interface {
	// Submission
	CreateJob(ctx context.Context, request models.SummaryRequest) (*models.Job, error)

	// Status and retrieval. Jobs older than the retention window are
	// reported as not found even if the sweeper has not deleted them yet.
	GetJob(ctx context.Context, jobID string) (*models.Job, error)

	// Worker operations (used by worker pool)
	ClaimNextJob(ctx context.Context, workerID string) (*models.Job, error)
	UpdateProgress(ctx context.Context, jobID string, progress models.ProcessingProgress) error
	CompleteJob(ctx context.Context, jobID string, result models.SummaryResult) error
	FailJob(ctx context.Context, jobID string, jobErr error) error

	// Maintenance
	CleanupOldJobs(ctx context.Context, retention time.Duration) (int64, error)
}
