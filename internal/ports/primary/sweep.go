package primary

import "context"

// SweepSummary aggregates one dedup/retention sweep cycle.
type SweepSummary struct {
	DuplicatesRemoved int
	SessionsPruned    int
	MessagesPruned    int

	// StoreErrors counts stores whose pass failed. One bad store never
	// aborts the sweep.
	StoreErrors int
}

// SweepService is the primary port for the dedup/retention sweep.
type SweepService interface {
	// RunCycle performs one full sweep over all typed stores and the
	// session tables. Returns ErrSweepRunning when a cycle is already in
	// flight in this process.
	RunCycle(ctx context.Context) (*SweepSummary, error)
}
