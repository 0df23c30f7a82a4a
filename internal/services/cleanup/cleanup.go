package cleanup

import (
	"context"
	"log"
	"time"

	"github.com/podbrief/summary-api/internal/services/jobs"
)

// Service periodically sweeps expired jobs out of the store
type Service struct {
	jobService    jobs.Service
	retention     time.Duration
	sweepInterval time.Duration
	cancel        context.CancelFunc
}

// NewService creates a new cleanup service
func NewService(jobService jobs.Service, retention, sweepInterval time.Duration) *Service {
	return &Service{
		jobService:    jobService,
		retention:     retention,
		sweepInterval: sweepInterval,
	}
}

// Start begins the periodic sweep
func (s *Service) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	// Run initial sweep
	s.sweep(ctx)

	go func() {
		ticker := time.NewTicker(s.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep(ctx)
			case <-ctx.Done():
				log.Println("[INFO] Cleanup service stopped")
				return
			}
		}
	}()

	log.Printf("[INFO] Cleanup service started (interval: %v, retention: %v)", s.sweepInterval, s.retention)
}

// Stop stops the cleanup service
func (s *Service) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

// sweep deletes jobs past the retention window
func (s *Service) sweep(ctx context.Context) {
	deleted, err := s.jobService.CleanupOldJobs(ctx, s.retention)
	if err != nil {
		log.Printf("[ERROR] Job cleanup sweep failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("[INFO] Cleanup sweep removed %d expired job(s)", deleted)
	}
}
