package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/curator/internal/ctxutil"
	"github.com/example/curator/internal/ports/secondary"
)

// LogWriter implements secondary.LogWriter against the audit_log table.
// The actor is taken from the context when present.
type LogWriter struct {
	db *sql.DB
}

// NewLogWriter creates a new SQLite audit log writer.
func NewLogWriter(db *sql.DB) *LogWriter {
	return &LogWriter{db: db}
}

// LogCreate logs a create operation for an entity.
func (w *LogWriter) LogCreate(ctx context.Context, entityType, entityID string) error {
	return w.write(ctx, entityType, entityID, "create", "", "", "")
}

// LogUpdate logs an update operation for an entity field.
func (w *LogWriter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	return w.write(ctx, entityType, entityID, "update", fieldName, oldValue, newValue)
}

// LogDelete logs a delete operation for an entity.
func (w *LogWriter) LogDelete(ctx context.Context, entityType, entityID string) error {
	return w.write(ctx, entityType, entityID, "delete", "", "", "")
}

func (w *LogWriter) write(ctx context.Context, entityType, entityID, action, fieldName, oldValue, newValue string) error {
	_, err := w.db.ExecContext(ctx,
		`INSERT INTO audit_log (id, actor_id, entity_type, entity_id, action, field_name, old_value, new_value, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), ctxutil.ActorID(ctx), entityType, entityID,
		action, fieldName, oldValue, newValue,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

// Ensure LogWriter implements the interface
var _ secondary.LogWriter = (*LogWriter)(nil)
