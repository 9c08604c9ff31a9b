package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/curator/internal/ports/secondary"
)

// SessionRepository implements secondary.SessionRepository with SQLite.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SQLite session repository.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// DeleteEmptySessionsBefore removes sessions with zero messages created
// before the cutoff. Timestamps are compared through datetime(): the
// columns hold both RFC3339 values and CURRENT_TIMESTAMP defaults from
// collaborator writes, and a raw string compare would mix the formats.
func (r *SessionRepository) DeleteEmptySessionsBefore(ctx context.Context, cutoff string) (int, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions
		 WHERE datetime(created_at) < datetime(?)
		 AND id NOT IN (SELECT DISTINCT session_id FROM session_messages)`,
		cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete empty sessions: %w", err)
	}
	deleted, _ := result.RowsAffected()
	return int(deleted), nil
}

// DeleteMessagesOfCompletedBefore removes messages belonging to completed
// sessions older than the cutoff. The session rows themselves stay.
func (r *SessionRepository) DeleteMessagesOfCompletedBefore(ctx context.Context, cutoff string) (int, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM session_messages
		 WHERE session_id IN (
			SELECT id FROM sessions WHERE status = 'completed' AND datetime(updated_at) < datetime(?)
		 )`,
		cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete completed session messages: %w", err)
	}
	deleted, _ := result.RowsAffected()
	return int(deleted), nil
}

// Ensure SessionRepository implements the interface
var _ secondary.SessionRepository = (*SessionRepository)(nil)
