// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the application
// drives the datastore and other external systems.
package secondary

import "context"

// RecordEntry represents a row in one of the typed stores. The knowledge,
// bugs, decisions and lessons tables are structurally identical; the table
// name is passed alongside.
type RecordEntry struct {
	ID         string
	Title      string
	Content    string
	Category   string
	ProjectID  string
	ClientID   string
	PlatformID string
	Importance int
	Tags       []string

	// Confidence is the attribution confidence that produced this row.
	// Always recorded by the automated pipeline, even when 0.
	Confidence float64

	CreatedAt string
}

// RecordFilters contains filter options for querying typed stores.
type RecordFilters struct {
	ProjectID string
	Category  string
	Limit     int
}

// RecordRepository defines the secondary port for the typed stores.
// Implementations must reject table names outside the typed-store set.
type RecordRepository interface {
	// Insert persists a new record into the given typed store.
	Insert(ctx context.Context, table string, rec *RecordEntry) error

	// GetByID retrieves a record from the given typed store.
	GetByID(ctx context.Context, table, id string) (*RecordEntry, error)

	// UpdateContent overwrites a record's content.
	UpdateContent(ctx context.Context, table, id, content string) error

	// List retrieves records matching the given filters.
	List(ctx context.Context, table string, filters RecordFilters) ([]*RecordEntry, error)

	// ListOrderedByCreation retrieves every record ascending by creation
	// time, for deterministic first-created-wins deduplication.
	ListOrderedByCreation(ctx context.Context, table string) ([]*RecordEntry, error)

	// FindDuplicate looks up a record in the same attribution scope whose
	// normalized title starts with the given prefix. Returns nil when no
	// duplicate exists.
	FindDuplicate(ctx context.Context, table, projectID, clientID, platformID, titlePrefix string) (*RecordEntry, error)

	// DeleteByIDs removes the given records and reports how many rows
	// were actually deleted.
	DeleteByIDs(ctx context.Context, table string, ids []string) (int, error)

	// CountByIDs reports how many of the given ids exist.
	CountByIDs(ctx context.Context, table string, ids []string) (int, error)
}

// ExtractionRecord represents a captured fragment awaiting routing.
type ExtractionRecord struct {
	ID          string
	Content     string
	Category    string // optional hint from the capture collaborator
	ProjectPath string // optional path the fragment was captured under
	Priority    int
	Status      string
	Attempts    int
	Metadata    string // JSON blob; routing failures are captured here
	CreatedAt   string
	ProcessedAt string
}

// Extraction status values. The status transition is the consumption
// marker: each record is consumed exactly once.
const (
	ExtractionPending   = "pending"
	ExtractionProcessed = "processed"
	ExtractionSkipped   = "skipped"
	ExtractionFailed    = "failed"
)

// ExtractionRepository defines the secondary port for the extraction queue.
type ExtractionRepository interface {
	// Create persists a new captured fragment.
	Create(ctx context.Context, rec *ExtractionRecord) error

	// GetByID retrieves an extraction by its ID.
	GetByID(ctx context.Context, id string) (*ExtractionRecord, error)

	// ListPending retrieves up to limit pending extractions, oldest first.
	ListPending(ctx context.Context, limit int) ([]*ExtractionRecord, error)

	// MarkProcessed transitions an extraction to processed.
	MarkProcessed(ctx context.Context, id string) error

	// MarkSkipped transitions an extraction to skipped with the filter
	// reason recorded in metadata. Skip is not an error.
	MarkSkipped(ctx context.Context, id, reason string) error

	// MarkFailed transitions an extraction to failed with the error
	// captured in metadata and the attempt counter bumped.
	MarkFailed(ctx context.Context, id, errMsg string) error

	// Requeue flips a failed extraction back to pending for manual
	// resurfacing. There is no automatic retry.
	Requeue(ctx context.Context, id string) error

	// CountByStatus reports queue depth per status.
	CountByStatus(ctx context.Context) (map[string]int, error)
}

// ConflictRecord represents a flagged conflict as stored.
type ConflictRecord struct {
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

// ConflictFilters contains filter options for querying conflicts.
type ConflictFilters struct {
	Status   string
	RefTable string
	Limit    int
}

// ConflictRepository defines the secondary port for conflict persistence.
type ConflictRepository interface {
	Create(ctx context.Context, rec *ConflictRecord) error
	GetByID(ctx context.Context, id string) (*ConflictRecord, error)
	List(ctx context.Context, filters ConflictFilters) ([]*ConflictRecord, error)

	// MarkResolved stamps the terminal status, resolver identity, notes
	// and resolution timestamp onto a conflict.
	MarkResolved(ctx context.Context, id, status, resolvedBy, notes, resolvedAt string) error

	// GetNextID returns the next available conflict ID.
	GetNextID(ctx context.Context) (string, error)
}

// PurgeRecord represents a purge request as stored.
type PurgeRecord struct {
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

// PurgeFilters contains filter options for querying purge requests.
type PurgeFilters struct {
	Status string
	Limit  int
}

// PurgeRepository defines the secondary port for purge request persistence.
type PurgeRepository interface {
	Create(ctx context.Context, rec *PurgeRecord) error
	GetByID(ctx context.Context, id string) (*PurgeRecord, error)
	List(ctx context.Context, filters PurgeFilters) ([]*PurgeRecord, error)

	// MarkReviewed records the reviewer's verdict. This is a status flip
	// only; it must never touch the referenced rows.
	MarkReviewed(ctx context.Context, id, status, reviewedBy, reviewedAt string) error

	// MarkExecuted stamps the execution timestamp after a physical delete.
	MarkExecuted(ctx context.Context, id, executedAt string) error

	// GetNextID returns the next available purge request ID.
	GetNextID(ctx context.Context) (string, error)
}

// NotificationRecord represents a reviewer notification as stored.
type NotificationRecord struct {
	ID        string
	Recipient string
	RefType   string // "conflict" or "purge_request"
	RefID     string
	Message   string
	Status    string
	CreatedAt string
}

// Notification status values.
const (
	NotificationUnread    = "unread"
	NotificationRead      = "read"
	NotificationDismissed = "dismissed"
)

// NotificationFilters contains filter options for querying notifications.
type NotificationFilters struct {
	Recipient string
	Status    string
	Limit     int
}

// NotificationRepository defines the secondary port for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, rec *NotificationRecord) error
	List(ctx context.Context, filters NotificationFilters) ([]*NotificationRecord, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// ProjectRecord represents a registered project signature as stored.
type ProjectRecord struct {
	ID            string
	Name          string
	ClientID      string
	PlatformID    string
	Aliases       []string
	Keywords      []string
	PathFragments []string
	Weight        float64
}

// ProjectPathRecord represents a registered project path as stored.
type ProjectPathRecord struct {
	Path      string
	ProjectID string
	Kind      string
}

// ProjectRepository defines the secondary port for the reference data
// registries. Read-heavy: loaded once at startup, immutable afterwards.
type ProjectRepository interface {
	ListProjects(ctx context.Context) ([]*ProjectRecord, error)
	ListPaths(ctx context.Context) ([]*ProjectPathRecord, error)
}

// SessionRepository defines the secondary port for capture-session
// retention. Used only by the retention sweep.
type SessionRepository interface {
	// DeleteEmptySessionsBefore removes sessions with zero messages
	// created before the cutoff and reports how many were removed.
	DeleteEmptySessionsBefore(ctx context.Context, cutoff string) (int, error)

	// DeleteMessagesOfCompletedBefore removes messages belonging to
	// completed sessions older than the cutoff.
	DeleteMessagesOfCompletedBefore(ctx context.Context, cutoff string) (int, error)
}
