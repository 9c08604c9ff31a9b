package primary

import "context"

// PurgeRequest is a proposal to delete a specific set of rows.
type PurgeRequest struct {
	ID          string
	TargetTable string
	RecordIDs   []string
	Reason      string
	Status      string
	FlaggedBy   string
	ReviewedBy  string
	ReviewedAt  string
	ExecutedAt  string
	CreatedAt   string
}

// FlagPurgeRequest carries the input for flagging a candidate deletion set.
type FlagPurgeRequest struct {
	TargetTable string
	RecordIDs   []string
	Reason      string
}

// PurgeExecution reports the outcome of executing an approved request.
type PurgeExecution struct {
	Request *PurgeRequest
	Deleted int
}

// PurgeFilters contains filter options for listing purge requests.
type PurgeFilters struct {
	Status string
	Limit  int
}

// PurgeService is the primary port for the purge gate. The subsystem that
// decides a record set is stale is never the subsystem that deletes it:
// Approve is a status flip only, and Execute is the distinct, explicitly
// invoked step that performs the physical delete.
type PurgeService interface {
	// Flag creates a pending purge request and notifies the reviewer.
	Flag(ctx context.Context, req FlagPurgeRequest) (*PurgeRequest, error)

	// Approve flips a pending request to approved. Deletes nothing.
	Approve(ctx context.Context, requestID string) (*PurgeRequest, error)

	// Reject flips a pending request to rejected.
	Reject(ctx context.Context, requestID string) (*PurgeRequest, error)

	// Execute performs the physical delete for an approved request and
	// stamps the execution timestamp. Refuses anything not approved and
	// refuses to run twice.
	Execute(ctx context.Context, requestID string) (*PurgeExecution, error)

	// Get retrieves a purge request by ID.
	Get(ctx context.Context, requestID string) (*PurgeRequest, error)

	// List retrieves purge requests matching the filters.
	List(ctx context.Context, filters PurgeFilters) ([]*PurgeRequest, error)
}
