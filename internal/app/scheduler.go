package app

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/example/curator/internal/ports/primary"
)

// Scheduler drives the automated routing and sweep cycles on fixed
// intervals. It owns its tickers and stops cleanly on context
// cancellation.
type Scheduler struct {
	extractionService primary.ExtractionService
	sweepService      primary.SweepService

	routerInterval time.Duration
	sweepInterval  time.Duration
}

// NewScheduler creates a scheduler over the given services.
func NewScheduler(
	extractionService primary.ExtractionService,
	sweepService primary.SweepService,
	routerInterval time.Duration,
	sweepInterval time.Duration,
) *Scheduler {
	return &Scheduler{
		extractionService: extractionService,
		sweepService:      sweepService,
		routerInterval:    routerInterval,
		sweepInterval:     sweepInterval,
	}
}

// Run blocks until the context is cancelled, ticking the router and the
// sweep on their intervals. Cycle errors are logged, never fatal: one bad
// tick must not take the daemon down.
func (s *Scheduler) Run(ctx context.Context) {
	routerTicker := time.NewTicker(s.routerInterval)
	defer routerTicker.Stop()
	sweepTicker := time.NewTicker(s.sweepInterval)
	defer sweepTicker.Stop()

	log.Printf("scheduler started (router every %s, sweep every %s)", s.routerInterval, s.sweepInterval)

	for {
		select {
		case <-ctx.Done():
			log.Printf("scheduler stopped: %v", ctx.Err())
			return
		case <-routerTicker.C:
			s.runRouterCycle(ctx)
		case <-sweepTicker.C:
			s.runSweepCycle(ctx)
		}
	}
}

func (s *Scheduler) runRouterCycle(ctx context.Context) {
	summary, err := s.extractionService.RunCycle(ctx)
	if err != nil {
		log.Printf("router cycle failed: %v", err)
		return
	}
	if summary.Pending == 0 {
		return
	}
	log.Printf("router cycle: %d pending, %d processed, %d skipped, %d failed",
		summary.Pending, summary.Processed, summary.Skipped, summary.Failed)
}

func (s *Scheduler) runSweepCycle(ctx context.Context) {
	summary, err := s.sweepService.RunCycle(ctx)
	if err != nil {
		if errors.Is(err, ErrSweepRunning) {
			log.Printf("sweep cycle skipped: previous cycle still running")
			return
		}
		log.Printf("sweep cycle failed: %v", err)
		return
	}
	log.Printf("sweep cycle: %d duplicates removed, %d sessions pruned, %d messages pruned, %d store errors",
		summary.DuplicatesRemoved, summary.SessionsPruned, summary.MessagesPruned, summary.StoreErrors)
}
