// Package ctxutil provides context helpers for request-scoped values.
package ctxutil

import "context"

type contextKey string

const actorIDKey contextKey = "actorID"

// WithActorID returns a context carrying the acting identity (a human
// reviewer or an automated worker name).
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorIDKey, actorID)
}

// ActorID extracts the acting identity from the context. Returns an
// empty string when none was set.
func ActorID(ctx context.Context) string {
	if v, ok := ctx.Value(actorIDKey).(string); ok {
		return v
	}
	return ""
}
