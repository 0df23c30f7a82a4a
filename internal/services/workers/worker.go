package workers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/podbrief/summary-api/internal/models"
	"github.com/podbrief/summary-api/internal/services/jobs"
)

// JobProcessor executes one claimed summary job to completion
type JobProcessor interface {
	ProcessJob(ctx context.Context, job *models.Job) error
}

// Worker is a background worker that polls for queued summary jobs
type Worker struct {
	id           string
	jobService   jobs.Service
	processor    JobProcessor
	stopChan     chan struct{}
	wg           sync.WaitGroup
	pollInterval time.Duration
}

// NewWorker creates a new worker instance
func NewWorker(id string, jobService jobs.Service, processor JobProcessor, pollInterval time.Duration) *Worker {
	return &Worker{
		id:           id,
		jobService:   jobService,
		processor:    processor,
		stopChan:     make(chan struct{}),
		pollInterval: pollInterval,
	}
}

// Start starts the worker in a goroutine
func (w *Worker) Start(ctx context.Context) {
	w.wg.Add(1)
	go w.run(ctx)
}

// Stop stops the worker gracefully
func (w *Worker) Stop() {
	close(w.stopChan)
	w.wg.Wait()
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()

	log.Printf("Worker %s starting", w.id)
	defer log.Printf("Worker %s stopped", w.id)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case <-ticker.C:
			if err := w.processNextJob(ctx); err != nil {
				log.Printf("Worker %s: error processing job: %v", w.id, err)
			}
		}
	}
}

// processNextJob claims and processes the next available job
func (w *Worker) processNextJob(ctx context.Context) error {
	job, err := w.jobService.ClaimNextJob(ctx, w.id)
	if err != nil {
		if errors.Is(err, jobs.ErrNoJobsAvailable) {
			return nil
		}
		return err
	}

	if err := w.processor.ProcessJob(ctx, job); err != nil {
		return fmt.Errorf("job %s processing failed: %w", job.ID, err)
	}

	log.Printf("Worker %s finished job %s", w.id, job.ID)
	return nil
}

// WorkerPool manages multiple workers
type WorkerPool struct {
	workers []*Worker
	mu      sync.RWMutex
	started bool
}

// NewWorkerPool creates a pool of identical workers sharing one processor
func NewWorkerPool(jobService jobs.Service, processor JobProcessor, workerCount int, pollInterval time.Duration) *WorkerPool {
	pool := &WorkerPool{
		workers: make([]*Worker, workerCount),
	}

	for i := 0; i < workerCount; i++ {
		workerID := fmt.Sprintf("worker-%d", i+1)
		pool.workers[i] = NewWorker(workerID, jobService, processor, pollInterval)
	}

	return pool
}

// Start starts all workers
func (p *WorkerPool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return fmt.Errorf("worker pool already started")
	}

	log.Printf("Starting worker pool with %d workers", len(p.workers))

	for _, worker := range p.workers {
		worker.Start(ctx)
	}

	p.started = true
	return nil
}

// Stop stops all workers gracefully
func (p *WorkerPool) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	log.Printf("Stopping worker pool")

	for _, worker := range p.workers {
		worker.Stop()
	}

	p.started = false
}
