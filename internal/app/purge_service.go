package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/curator/internal/core/purge"
	"github.com/example/curator/internal/ctxutil"
	"github.com/example/curator/internal/ports/primary"
	"github.com/example/curator/internal/ports/secondary"
)

// PurgeServiceImpl implements the PurgeService interface.
// The split matters: Flag proposes, Approve/Reject flip status, and only
// Execute deletes. No path through this service deletes on a status flip.
type PurgeServiceImpl struct {
	purgeRepo        secondary.PurgeRepository
	recordRepo       secondary.RecordRepository
	notificationRepo secondary.NotificationRepository

	defaultReviewer string
}

// NewPurgeService creates a new PurgeService with injected dependencies.
func NewPurgeService(
	purgeRepo secondary.PurgeRepository,
	recordRepo secondary.RecordRepository,
	notificationRepo secondary.NotificationRepository,
	defaultReviewer string,
) *PurgeServiceImpl {
	return &PurgeServiceImpl{
		purgeRepo:        purgeRepo,
		recordRepo:       recordRepo,
		notificationRepo: notificationRepo,
		defaultReviewer:  defaultReviewer,
	}
}

// Flag creates a pending purge request and notifies the reviewer.
func (s *PurgeServiceImpl) Flag(ctx context.Context, req primary.FlagPurgeRequest) (*primary.PurgeRequest, error) {
	guard := purge.CanFlag(purge.FlagContext{
		TargetTable: req.TargetTable,
		RecordIDs:   req.RecordIDs,
		Reason:      req.Reason,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	id, err := s.purgeRepo.GetNextID(ctx)
	if err != nil {
		return nil, err
	}

	rec := &secondary.PurgeRecord{
		ID:          id,
		TargetTable: req.TargetTable,
		RecordIDs:   req.RecordIDs,
		Reason:      req.Reason,
		Status:      string(purge.InitialStatus()),
		FlaggedBy:   ctxutil.ActorID(ctx),
	}
	if err := s.purgeRepo.Create(ctx, rec); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("purge of %d records from %s proposed: %s", len(req.RecordIDs), req.TargetTable, req.Reason)
	_ = s.notificationRepo.Create(ctx, &secondary.NotificationRecord{
		ID:        uuid.NewString(),
		Recipient: s.defaultReviewer,
		RefType:   "purge_request",
		RefID:     id,
		Message:   message,
		Status:    secondary.NotificationUnread,
	})

	return s.recordToPurge(rec), nil
}

// Approve flips a pending request to approved. Deletes nothing.
func (s *PurgeServiceImpl) Approve(ctx context.Context, requestID string) (*primary.PurgeRequest, error) {
	return s.review(ctx, requestID, purge.DecisionApprove)
}

// Reject flips a pending request to rejected.
func (s *PurgeServiceImpl) Reject(ctx context.Context, requestID string) (*primary.PurgeRequest, error) {
	return s.review(ctx, requestID, purge.DecisionReject)
}

func (s *PurgeServiceImpl) review(ctx context.Context, requestID string, decision purge.Decision) (*primary.PurgeRequest, error) {
	rec, err := s.purgeRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	reviewerID := ctxutil.ActorID(ctx)
	if reviewerID == "" {
		reviewerID = s.defaultReviewer
	}

	guard := purge.CanReview(purge.ReviewContext{
		RequestID:     rec.ID,
		CurrentStatus: purge.Status(rec.Status),
		ReviewerID:    reviewerID,
	})
	if !guard.Allowed {
		if purge.Status(rec.Status) != purge.StatusPending {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyReviewed, guard.Reason)
		}
		return nil, guard.Error()
	}

	result, err := purge.ApplyReview(decision, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	reviewedAt := result.ReviewedAt.Format(time.RFC3339)
	if err := s.purgeRepo.MarkReviewed(ctx, rec.ID, string(result.NewStatus), reviewerID, reviewedAt); err != nil {
		return nil, err
	}

	rec.Status = string(result.NewStatus)
	rec.ReviewedBy = reviewerID
	rec.ReviewedAt = reviewedAt
	return s.recordToPurge(rec), nil
}

// Execute performs the physical delete for an approved request and stamps
// the execution timestamp.
func (s *PurgeServiceImpl) Execute(ctx context.Context, requestID string) (*primary.PurgeExecution, error) {
	rec, err := s.purgeRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	guard := purge.CanExecute(purge.ExecuteContext{
		RequestID:     rec.ID,
		CurrentStatus: purge.Status(rec.Status),
		ExecutedAt:    rec.ExecutedAt,
	})
	if !guard.Allowed {
		return nil, fmt.Errorf("%w: %s", ErrNotExecutable, guard.Reason)
	}

	deleted, err := s.recordRepo.DeleteByIDs(ctx, rec.TargetTable, rec.RecordIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to execute purge: %w", err)
	}

	executedAt := time.Now().UTC().Format(time.RFC3339)
	if err := s.purgeRepo.MarkExecuted(ctx, rec.ID, executedAt); err != nil {
		return nil, err
	}

	rec.ExecutedAt = executedAt
	return &primary.PurgeExecution{
		Request: s.recordToPurge(rec),
		Deleted: deleted,
	}, nil
}

// Get retrieves a purge request by ID.
func (s *PurgeServiceImpl) Get(ctx context.Context, requestID string) (*primary.PurgeRequest, error) {
	rec, err := s.purgeRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return s.recordToPurge(rec), nil
}

// List retrieves purge requests matching the filters.
func (s *PurgeServiceImpl) List(ctx context.Context, filters primary.PurgeFilters) ([]*primary.PurgeRequest, error) {
	records, err := s.purgeRepo.List(ctx, secondary.PurgeFilters{
		Status: filters.Status,
		Limit:  filters.Limit,
	})
	if err != nil {
		return nil, err
	}

	requests := make([]*primary.PurgeRequest, len(records))
	for i, r := range records {
		requests[i] = s.recordToPurge(r)
	}
	return requests, nil
}

func (s *PurgeServiceImpl) recordToPurge(r *secondary.PurgeRecord) *primary.PurgeRequest {
	return &primary.PurgeRequest{
		ID:          r.ID,
		TargetTable: r.TargetTable,
		RecordIDs:   r.RecordIDs,
		Reason:      r.Reason,
		Status:      r.Status,
		FlaggedBy:   r.FlaggedBy,
		ReviewedBy:  r.ReviewedBy,
		ReviewedAt:  r.ReviewedAt,
		ExecutedAt:  r.ExecutedAt,
		CreatedAt:   r.CreatedAt,
	}
}

// Ensure PurgeServiceImpl implements the interface
var _ primary.PurgeService = (*PurgeServiceImpl)(nil)
