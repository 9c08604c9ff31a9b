package conflict

import (
	"fmt"

	"github.com/example/curator/internal/core/extraction"
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

// FlagContext provides the context for flagging a new conflict.
type FlagContext struct {
	RefTable     string
	RefID        string
	NewContent   string
	ConflictType Type
}

// CanFlag evaluates whether a conflict may be flagged.
// Rules: the reference must name a typed store and record, the new content
// must be present, and the conflict type must be known. Flagging never
// mutates the referenced record, so no state-based rules apply.
func CanFlag(ctx FlagContext) GuardResult {
	if !extraction.IsTypedStore(ctx.RefTable) {
		return GuardResult{Reason: fmt.Sprintf("unknown table %q - conflicts may only reference typed stores", ctx.RefTable)}
	}
	if ctx.RefID == "" {
		return GuardResult{Reason: "referenced record id is required"}
	}
	if ctx.NewContent == "" {
		return GuardResult{Reason: "new content is required"}
	}
	if !ValidType(ctx.ConflictType) {
		return GuardResult{Reason: fmt.Sprintf("unknown conflict type %q", ctx.ConflictType)}
	}
	return GuardResult{Allowed: true}
}

// ResolveContext provides the context for resolving a conflict.
type ResolveContext struct {
	ConflictID    string
	CurrentStatus Status
	ResolverID    string
}

// CanResolve evaluates whether a conflict can be resolved.
// Rule: only pending conflicts resolve; a second resolution attempt fails
// and leaves the first resolution untouched.
func CanResolve(ctx ResolveContext) GuardResult {
	if ctx.ResolverID == "" {
		return GuardResult{Reason: "resolver identity is required"}
	}
	if IsTerminal(ctx.CurrentStatus) {
		return GuardResult{Reason: fmt.Sprintf("conflict %s already resolved (status: %s)", ctx.ConflictID, ctx.CurrentStatus)}
	}
	return GuardResult{Allowed: true}
}
