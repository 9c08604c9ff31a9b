package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/curator/internal/core/conflict"
	"github.com/example/curator/internal/ports/primary"
	"github.com/example/curator/internal/ports/secondary"
)

// ConflictServiceImpl implements the ConflictService interface.
type ConflictServiceImpl struct {
	conflictRepo     secondary.ConflictRepository
	recordRepo       secondary.RecordRepository
	notificationRepo secondary.NotificationRepository
	contextClient    secondary.ContextClient // optional, may be nil

	defaultReviewer string
}

// NewConflictService creates a new ConflictService with injected
// dependencies. contextClient may be nil; notification enrichment is then
// skipped.
func NewConflictService(
	conflictRepo secondary.ConflictRepository,
	recordRepo secondary.RecordRepository,
	notificationRepo secondary.NotificationRepository,
	contextClient secondary.ContextClient,
	defaultReviewer string,
) *ConflictServiceImpl {
	return &ConflictServiceImpl{
		conflictRepo:     conflictRepo,
		recordRepo:       recordRepo,
		notificationRepo: notificationRepo,
		contextClient:    contextClient,
		defaultReviewer:  defaultReviewer,
	}
}

// Flag creates a pending conflict and notifies the reviewer.
// Pure append: the referenced record is read for its current content but
// never mutated here.
func (s *ConflictServiceImpl) Flag(ctx context.Context, req primary.FlagConflictRequest) (*primary.Conflict, error) {
	guard := conflict.CanFlag(conflict.FlagContext{
		RefTable:     req.RefTable,
		RefID:        req.RefID,
		NewContent:   req.NewContent,
		ConflictType: conflict.Type(req.ConflictType),
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	referenced, err := s.recordRepo.GetByID(ctx, req.RefTable, req.RefID)
	if err != nil {
		return nil, fmt.Errorf("referenced record not found: %w", err)
	}

	id, err := s.conflictRepo.GetNextID(ctx)
	if err != nil {
		return nil, err
	}

	rec := &secondary.ConflictRecord{
		ID:              id,
		RefTable:        req.RefTable,
		RefID:           req.RefID,
		ExistingContent: referenced.Content,
		NewContent:      req.NewContent,
		ConflictType:    req.ConflictType,
		Description:     req.Description,
		Priority:        req.Priority,
		Status:          string(conflict.InitialStatus()),
	}
	if err := s.conflictRepo.Create(ctx, rec); err != nil {
		return nil, err
	}

	s.notify(ctx, "conflict", id, s.describeConflict(ctx, referenced, req))

	return s.recordToConflict(rec), nil
}

// describeConflict builds the notification message, enriched with
// supplementary project context when the sibling service answers.
func (s *ConflictServiceImpl) describeConflict(ctx context.Context, referenced *secondary.RecordEntry, req primary.FlagConflictRequest) string {
	msg := fmt.Sprintf("%s conflict on %s/%s: %s", req.ConflictType, req.RefTable, req.RefID, req.Description)
	if s.contextClient == nil {
		return msg
	}
	pc, _ := s.contextClient.FetchProjectContext(ctx, referenced.ProjectID)
	if pc == nil {
		return msg
	}
	return fmt.Sprintf("%s [project %s: %s, %d active tasks]", msg, pc.ProjectID, pc.Summary, pc.ActiveTasks)
}

// Resolve executes exactly one effect keyed by the resolution and
// transitions the conflict to its terminal status.
func (s *ConflictServiceImpl) Resolve(ctx context.Context, req primary.ResolveConflictRequest) (*primary.ResolveConflictResponse, error) {
	rec, err := s.conflictRepo.GetByID(ctx, req.ConflictID)
	if err != nil {
		return nil, err
	}

	guard := conflict.CanResolve(conflict.ResolveContext{
		ConflictID:    rec.ID,
		CurrentStatus: conflict.Status(rec.Status),
		ResolverID:    req.ResolverID,
	})
	if !guard.Allowed {
		if conflict.IsTerminal(conflict.Status(rec.Status)) {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyResolved, guard.Reason)
		}
		return nil, guard.Error()
	}

	transition, err := conflict.ApplyResolution(conflict.Resolution(req.Resolution), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	resp := &primary.ResolveConflictResponse{}

	// Exactly one effect per resolution. keep_existing and dismiss
	// deliberately touch nothing.
	switch conflict.Resolution(req.Resolution) {
	case conflict.ResolutionUpdate:
		if err := s.recordRepo.UpdateContent(ctx, rec.RefTable, rec.RefID, rec.NewContent); err != nil {
			return nil, fmt.Errorf("failed to apply update resolution: %w", err)
		}
	case conflict.ResolutionBothValid:
		referenced, err := s.recordRepo.GetByID(ctx, rec.RefTable, rec.RefID)
		if err != nil {
			return nil, fmt.Errorf("referenced record not found: %w", err)
		}
		sibling := &secondary.RecordEntry{
			ID:         uuid.NewString(),
			Title:      referenced.Title,
			Content:    rec.NewContent,
			Category:   referenced.Category,
			ProjectID:  referenced.ProjectID,
			ClientID:   referenced.ClientID,
			PlatformID: referenced.PlatformID,
			Confidence: referenced.Confidence,
		}
		if err := s.recordRepo.Insert(ctx, rec.RefTable, sibling); err != nil {
			return nil, fmt.Errorf("failed to insert coexisting record: %w", err)
		}
		resp.InsertedRecordID = sibling.ID
	}

	// The status flip lands after the effect, with no transaction across
	// the two repositories. A failed MarkResolved leaves the conflict
	// pending with the effect already applied: retrying update rewrites
	// the same content, retrying both_valid inserts a second sibling the
	// sweep later collapses.
	resolvedAt := transition.ResolvedAt.Format(time.RFC3339)
	if err := s.conflictRepo.MarkResolved(ctx, rec.ID, string(transition.NewStatus), req.ResolverID, req.Notes, resolvedAt); err != nil {
		return nil, err
	}

	rec.Status = string(transition.NewStatus)
	rec.ResolvedBy = req.ResolverID
	rec.ResolutionNotes = req.Notes
	rec.ResolvedAt = resolvedAt
	resp.Conflict = s.recordToConflict(rec)
	return resp, nil
}

// Get retrieves a conflict by ID.
func (s *ConflictServiceImpl) Get(ctx context.Context, conflictID string) (*primary.Conflict, error) {
	rec, err := s.conflictRepo.GetByID(ctx, conflictID)
	if err != nil {
		return nil, err
	}
	return s.recordToConflict(rec), nil
}

// List retrieves conflicts matching the filters.
func (s *ConflictServiceImpl) List(ctx context.Context, filters primary.ConflictFilters) ([]*primary.Conflict, error) {
	records, err := s.conflictRepo.List(ctx, secondary.ConflictFilters{
		Status:   filters.Status,
		RefTable: filters.RefTable,
		Limit:    filters.Limit,
	})
	if err != nil {
		return nil, err
	}

	conflicts := make([]*primary.Conflict, len(records))
	for i, r := range records {
		conflicts[i] = s.recordToConflict(r)
	}
	return conflicts, nil
}

func (s *ConflictServiceImpl) notify(ctx context.Context, refType, refID, message string) {
	// Notification failures never fail the flagging operation.
	_ = s.notificationRepo.Create(ctx, &secondary.NotificationRecord{
		ID:        uuid.NewString(),
		Recipient: s.defaultReviewer,
		RefType:   refType,
		RefID:     refID,
		Message:   message,
		Status:    secondary.NotificationUnread,
	})
}

func (s *ConflictServiceImpl) recordToConflict(r *secondary.ConflictRecord) *primary.Conflict {
	return &primary.Conflict{
		ID:              r.ID,
		RefTable:        r.RefTable,
		RefID:           r.RefID,
		ExistingContent: r.ExistingContent,
		NewContent:      r.NewContent,
		ConflictType:    r.ConflictType,
		Description:     r.Description,
		Priority:        r.Priority,
		Status:          r.Status,
		ResolvedBy:      r.ResolvedBy,
		ResolutionNotes: r.ResolutionNotes,
		CreatedAt:       r.CreatedAt,
		ResolvedAt:      r.ResolvedAt,
	}
}

// Ensure ConflictServiceImpl implements the interface
var _ primary.ConflictService = (*ConflictServiceImpl)(nil)
