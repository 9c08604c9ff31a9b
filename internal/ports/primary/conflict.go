package primary

import "context"

// Conflict is a flagged overlap between an existing record and new content.
type Conflict struct {
	ID              string
	RefTable        string
	RefID           string
	ExistingContent string
	NewContent      string
	ConflictType    string
	Description     string
	Priority        int
	Status          string
	ResolvedBy      string
	ResolutionNotes string
	CreatedAt       string
	ResolvedAt      string
}

// FlagConflictRequest carries the input for flagging a conflict.
type FlagConflictRequest struct {
	RefTable     string
	RefID        string
	NewContent   string
	ConflictType string
	Description  string
	Priority     int
}

// ResolveConflictRequest carries the input for resolving a conflict.
type ResolveConflictRequest struct {
	ConflictID string
	ResolverID string
	Resolution string // keep_existing, update, both_valid or dismiss
	Notes      string
}

// ResolveConflictResponse reports the effect a resolution had.
type ResolveConflictResponse struct {
	Conflict *Conflict

	// InsertedRecordID is set when resolution both_valid created a
	// coexisting record.
	InsertedRecordID string
}

// ConflictFilters contains filter options for listing conflicts.
type ConflictFilters struct {
	Status   string
	RefTable string
	Limit    int
}

// ConflictService is the primary port for the conflict gate.
type ConflictService interface {
	// Flag creates a pending conflict and notifies the reviewer.
	// Pure append: the referenced record is never mutated by flagging.
	Flag(ctx context.Context, req FlagConflictRequest) (*Conflict, error)

	// Resolve executes exactly one effect keyed by the resolution and
	// transitions the conflict to its terminal status. Resolving a
	// non-pending conflict fails with no side effect.
	Resolve(ctx context.Context, req ResolveConflictRequest) (*ResolveConflictResponse, error)

	// Get retrieves a conflict by ID.
	Get(ctx context.Context, conflictID string) (*Conflict, error)

	// List retrieves conflicts matching the filters.
	List(ctx context.Context, filters ConflictFilters) ([]*Conflict, error)
}
