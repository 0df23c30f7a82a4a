package workers

import (
	"context"
	"log"
	"time"

	"github.com/podbrief/summary-api/internal/models"
	"github.com/podbrief/summary-api/internal/services/jobs"
	"github.com/podbrief/summary-api/internal/services/pipeline"
)

// SummaryProcessor runs the summary pipeline for claimed jobs and records
// the outcome on the job store
type SummaryProcessor struct {
	orchestrator *pipeline.Orchestrator
	jobService   jobs.Service
	timeout      time.Duration
}

// NewSummaryProcessor creates a summary job processor. The timeout is the
// wall-clock ceiling for one whole pipeline run; individual stages are not
// separately bounded.
func NewSummaryProcessor(orchestrator *pipeline.Orchestrator, jobService jobs.Service, timeout time.Duration) *SummaryProcessor {
	return &SummaryProcessor{
		orchestrator: orchestrator,
		jobService:   jobService,
		timeout:      timeout,
	}
}

// ProcessJob executes the pipeline for one job and marks it completed or
// failed. The returned error mirrors the failure for worker logging; the
// job record is always settled here.
func (p *SummaryProcessor) ProcessJob(ctx context.Context, job *models.Job) error {
	runCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	log.Printf("[INFO] Processing summary job %s (%d episodes, target %d min)",
		job.ID, len(job.Request.Episodes), job.Request.TargetDuration)

	result, err := p.orchestrator.Run(runCtx, job.Request, func(progress models.ProcessingProgress) {
		// Progress persistence is best-effort: a write failure must not
		// abort the pipeline
		if updateErr := p.jobService.UpdateProgress(ctx, job.ID, progress); updateErr != nil {
			log.Printf("[WARN] Failed to persist progress for job %s: %v", job.ID, updateErr)
		}
	})
	if err != nil {
		if failErr := p.jobService.FailJob(ctx, job.ID, err); failErr != nil {
			log.Printf("[ERROR] Failed to mark job %s as failed: %v", job.ID, failErr)
		}
		return err
	}

	if completeErr := p.jobService.CompleteJob(ctx, job.ID, *result); completeErr != nil {
		log.Printf("[ERROR] Failed to mark job %s as completed: %v", job.ID, completeErr)
		return completeErr
	}

	return nil
}
