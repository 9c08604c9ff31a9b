// Package cli provides CLI commands for the curator application.
package cli

import (
	gocontext "context"
	"os"
	"os/user"

	"github.com/example/curator/internal/ctxutil"
)

// globalActorID stores the detected actor ID for the current CLI invocation.
// Set once at startup by DetectAndStoreActor().
var globalActorID string

// DetectAndStoreActor detects the current actor identity and stores it
// globally. Should be called once at CLI startup in PersistentPreRun.
func DetectAndStoreActor() {
	if actor := os.Getenv("CURATOR_ACTOR"); actor != "" {
		globalActorID = actor
		return
	}
	u, err := user.Current()
	if err != nil {
		globalActorID = "operator"
		return
	}
	globalActorID = u.Username
}

// GetActorID returns the stored actor ID from CLI startup.
// Returns empty string if DetectAndStoreActor() was not called.
func GetActorID() string {
	return globalActorID
}

// NewContext creates a context.Background() with the current actor ID
// embedded. CLI commands should use this instead of context.Background()
// directly.
func NewContext() gocontext.Context {
	ctx := gocontext.Background()
	if globalActorID != "" {
		return ctxutil.WithActorID(ctx, globalActorID)
	}
	return ctx
}
