package app

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/example/curator/internal/core/extraction"
	"github.com/example/curator/internal/ports/primary"
	"github.com/example/curator/internal/ports/secondary"
)

// SweepServiceImpl implements the SweepService interface.
// The running guard is owned by the service instance, not a package-level
// variable: overlapping cycles in this process are refused, cross-process
// overlap is out of scope.
type SweepServiceImpl struct {
	recordRepo  secondary.RecordRepository
	sessionRepo secondary.SessionRepository

	emptySessionRetention     time.Duration
	completedSessionRetention time.Duration

	running atomic.Bool
}

// NewSweepService creates a new SweepService with injected dependencies.
func NewSweepService(
	recordRepo secondary.RecordRepository,
	sessionRepo secondary.SessionRepository,
	emptySessionRetention time.Duration,
	completedSessionRetention time.Duration,
) *SweepServiceImpl {
	return &SweepServiceImpl{
		recordRepo:                recordRepo,
		sessionRepo:               sessionRepo,
		emptySessionRetention:     emptySessionRetention,
		completedSessionRetention: completedSessionRetention,
	}
}

// RunCycle performs one full sweep over all typed stores and the session
// tables. A failing store is counted and the sweep continues; only the
// guard refuses outright.
func (s *SweepServiceImpl) RunCycle(ctx context.Context) (*primary.SweepSummary, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrSweepRunning
	}
	defer s.running.Store(false)

	summary := &primary.SweepSummary{}

	for _, table := range extraction.TypedStores() {
		removed, err := s.dedupStore(ctx, table)
		if err != nil {
			summary.StoreErrors++
			continue
		}
		summary.DuplicatesRemoved += removed
	}

	now := time.Now().UTC()

	emptyCutoff := now.Add(-s.emptySessionRetention).Format(time.RFC3339)
	pruned, err := s.sessionRepo.DeleteEmptySessionsBefore(ctx, emptyCutoff)
	if err != nil {
		summary.StoreErrors++
	} else {
		summary.SessionsPruned = pruned
	}

	messageCutoff := now.Add(-s.completedSessionRetention).Format(time.RFC3339)
	prunedMessages, err := s.sessionRepo.DeleteMessagesOfCompletedBefore(ctx, messageCutoff)
	if err != nil {
		summary.StoreErrors++
	} else {
		summary.MessagesPruned = prunedMessages
	}

	return summary, nil
}

// dedupStore removes duplicates from one typed store. Rows are walked
// ascending by creation time, so the first occurrence of each key is the
// one kept and re-running the sweep converges to zero deletions.
func (s *SweepServiceImpl) dedupStore(ctx context.Context, table string) (int, error) {
	records, err := s.recordRepo.ListOrderedByCreation(ctx, table)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool, len(records))
	var duplicates []string
	for _, rec := range records {
		key := extraction.DedupKey(rec.ProjectID, rec.ClientID, rec.PlatformID, rec.Title)
		if seen[key] {
			duplicates = append(duplicates, rec.ID)
			continue
		}
		seen[key] = true
	}

	if len(duplicates) == 0 {
		return 0, nil
	}
	return s.recordRepo.DeleteByIDs(ctx, table, duplicates)
}

// Ensure SweepServiceImpl implements the interface
var _ primary.SweepService = (*SweepServiceImpl)(nil)
