package services

import (
	"context"
	"time"

	"cashplan/internal/logger"
)

// Scheduler runs batch generation on a fixed interval until its context is
// cancelled. It is the periodic trigger for deployments without an external
// cron.
type Scheduler struct {
	generator GenerationServicer
	interval  time.Duration
}

// NewScheduler creates a Scheduler that calls generator every interval.
func NewScheduler(generator GenerationServicer, interval time.Duration) *Scheduler {
	return &Scheduler{generator: generator, interval: interval}
}

// Start runs one batch immediately, then one per tick. It blocks until ctx
// is done. Batch failures are logged and do not stop the loop.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Get().Info("generation scheduler stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := s.generator.GenerateAllActive(ctx); err != nil {
		logger.Get().Errorw("scheduled generation failed", "error", err)
	}
}
