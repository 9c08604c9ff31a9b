// Package primary defines the primary ports (driving adapters) for the
// application. The CLI talks to the services through these interfaces.
package primary

import "context"

// RouteResult describes where one extraction ended up.
type RouteResult struct {
	ExtractionID string
	Status       string // processed, skipped or failed
	Table        string // destination typed store, when routed
	RecordID     string // inserted record id, when a row was created
	Reason       string // skip reason or duplicate note
	ProjectID    string
	Confidence   float64
}

// CycleSummary aggregates one router tick.
type CycleSummary struct {
	Pending   int
	Processed int
	Skipped   int
	Failed    int
	Results   []RouteResult
}

// ExtractionService is the primary port for the extraction router.
type ExtractionService interface {
	// RunCycle processes one bounded batch of pending extractions.
	// A cycle that finds nothing pending is a silent no-op.
	RunCycle(ctx context.Context) (*CycleSummary, error)

	// Requeue flips a failed extraction back to pending so it is picked
	// up by the next cycle. Manual resurfacing only.
	Requeue(ctx context.Context, extractionID string) error

	// Status reports queue depth per extraction status.
	Status(ctx context.Context) (map[string]int, error)

	// Submit enqueues a raw fragment for routing. Used by operators and
	// tests; the capture collaborator normally writes the queue directly.
	Submit(ctx context.Context, req SubmitExtractionRequest) (string, error)
}

// SubmitExtractionRequest carries a manually submitted fragment.
type SubmitExtractionRequest struct {
	Content     string
	Category    string
	ProjectPath string
	Priority    int
}
