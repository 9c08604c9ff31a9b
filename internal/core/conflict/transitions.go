// Package conflict contains the pure state machine for flagged conflicts.
// This is part of the Functional Core - no I/O, only pure functions.
package conflict

import (
	"fmt"
	"time"
)

// Status represents the lifecycle of a flagged conflict.
// Transitions are one-way: pending moves to exactly one terminal status
// and never out of it.
type Status string

const (
	StatusPending      Status = "pending"
	StatusKeepExisting Status = "resolved_keep_existing"
	StatusUpdate       Status = "resolved_update"
	StatusBothValid    Status = "resolved_both_valid"
	StatusDismiss      Status = "resolved_dismiss"
)

// Type classifies what kind of overlap was flagged.
type Type string

const (
	TypeContradiction Type = "contradiction"
	TypeOutdated      Type = "outdated"
	TypeDuplicate     Type = "duplicate"
	TypeAmbiguous     Type = "ambiguous"
)

// Resolution is the action a resolver picks for a pending conflict.
type Resolution string

const (
	ResolutionKeepExisting Resolution = "keep_existing"
	ResolutionUpdate       Resolution = "update"
	ResolutionBothValid    Resolution = "both_valid"
	ResolutionDismiss      Resolution = "dismiss"
)

// ValidType reports whether t is a known conflict type.
func ValidType(t Type) bool {
	switch t {
	case TypeContradiction, TypeOutdated, TypeDuplicate, TypeAmbiguous:
		return true
	}
	return false
}

// IsTerminal reports whether a status is a resolved end state.
func IsTerminal(s Status) bool {
	return s != StatusPending
}

// TransitionResult captures the terminal status and timestamp for a
// resolution.
type TransitionResult struct {
	NewStatus  Status
	ResolvedAt time.Time
}

// ApplyResolution maps a resolution to its terminal status.
// The caller passes the current time to keep this testable.
func ApplyResolution(res Resolution, now time.Time) (TransitionResult, error) {
	var status Status
	switch res {
	case ResolutionKeepExisting:
		status = StatusKeepExisting
	case ResolutionUpdate:
		status = StatusUpdate
	case ResolutionBothValid:
		status = StatusBothValid
	case ResolutionDismiss:
		status = StatusDismiss
	default:
		return TransitionResult{}, fmt.Errorf("unknown resolution %q", res)
	}
	return TransitionResult{NewStatus: status, ResolvedAt: now}, nil
}

// InitialStatus returns the status for a freshly flagged conflict.
func InitialStatus() Status {
	return StatusPending
}
