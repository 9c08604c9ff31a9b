// Package purge contains the pure state machine for purge requests.
// The core safety rule lives here: a purge request's status alone never
// deletes anything. Flagging proposes, review flips status, and only a
// distinct execution step acting on an approved request may delete.
// This is part of the Functional Core - no I/O, only pure functions.
package purge

import (
	"fmt"
	"time"

	"github.com/example/curator/internal/core/extraction"
)

// Status represents the lifecycle of a purge request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Decision is a reviewer's verdict on a pending request.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // populated when not allowed
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// FlagContext provides the context for flagging a candidate deletion set.
type FlagContext struct {
	TargetTable string
	RecordIDs   []string
	Reason      string
}

// CanFlag evaluates whether a purge request may be created.
func CanFlag(ctx FlagContext) GuardResult {
	if !extraction.IsTypedStore(ctx.TargetTable) {
		return GuardResult{Reason: fmt.Sprintf("unknown table %q - purges may only target typed stores", ctx.TargetTable)}
	}
	if len(ctx.RecordIDs) == 0 {
		return GuardResult{Reason: "at least one record id is required"}
	}
	for _, id := range ctx.RecordIDs {
		if id == "" {
			return GuardResult{Reason: "record ids must not be empty"}
		}
	}
	if ctx.Reason == "" {
		return GuardResult{Reason: "a cutoff rationale is required"}
	}
	return GuardResult{Allowed: true}
}

// ReviewContext provides the context for reviewing a purge request.
type ReviewContext struct {
	RequestID     string
	CurrentStatus Status
	ReviewerID    string
}

// CanReview evaluates whether a purge request can be reviewed.
// Rule: only pending requests accept a verdict; a second review fails and
// leaves the first verdict untouched.
func CanReview(ctx ReviewContext) GuardResult {
	if ctx.ReviewerID == "" {
		return GuardResult{Reason: "reviewer identity is required"}
	}
	if ctx.CurrentStatus != StatusPending {
		return GuardResult{Reason: fmt.Sprintf("purge request %s already reviewed (status: %s)", ctx.RequestID, ctx.CurrentStatus)}
	}
	return GuardResult{Allowed: true}
}

// ExecuteContext provides the context for executing an approved request.
type ExecuteContext struct {
	RequestID     string
	CurrentStatus Status
	ExecutedAt    string // empty when never executed
}

// CanExecute evaluates whether the physical delete may run.
// Rules: the request must be approved, and must not have executed before.
func CanExecute(ctx ExecuteContext) GuardResult {
	if ctx.CurrentStatus != StatusApproved {
		return GuardResult{Reason: fmt.Sprintf("purge request %s is not approved (status: %s) - nothing may be deleted", ctx.RequestID, ctx.CurrentStatus)}
	}
	if ctx.ExecutedAt != "" {
		return GuardResult{Reason: fmt.Sprintf("purge request %s already executed at %s", ctx.RequestID, ctx.ExecutedAt)}
	}
	return GuardResult{Allowed: true}
}

// ReviewResult captures the status flip and timestamp for a review.
type ReviewResult struct {
	NewStatus  Status
	ReviewedAt time.Time
}

// ApplyReview maps a reviewer decision to the resulting status.
// The status flip is the only effect of a review; deletion is a separate,
// explicitly invoked execution step.
func ApplyReview(decision Decision, now time.Time) (ReviewResult, error) {
	switch decision {
	case DecisionApprove:
		return ReviewResult{NewStatus: StatusApproved, ReviewedAt: now}, nil
	case DecisionReject:
		return ReviewResult{NewStatus: StatusRejected, ReviewedAt: now}, nil
	default:
		return ReviewResult{}, fmt.Errorf("unknown decision %q", decision)
	}
}

// InitialStatus returns the status for a freshly flagged purge request.
func InitialStatus() Status {
	return StatusPending
}
