package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/example/curator/internal/adapters/sqlite"
)

func TestSessionRepository_DeleteEmptySessionsBefore(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSessionRepository(db)
	ctx := context.Background()

	old := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	cutoff := "2026-06-01T00:00:00Z"

	seedSession(t, db, "sess-empty-old", "active", old)
	seedSession(t, db, "sess-empty-new", "active", recent)
	seedSession(t, db, "sess-full-old", "active", old)
	seedSessionMessage(t, db, "msg-001", "sess-full-old")

	deleted, err := repo.DeleteEmptySessionsBefore(ctx, cutoff)
	if err != nil {
		t.Fatalf("DeleteEmptySessionsBefore failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("remaining sessions = %d, want 2", count)
	}
}

// Sessions created by the capture collaborator get CURRENT_TIMESTAMP
// defaults ("2026-08-24 23:59:59") while the sweep passes RFC3339 cutoffs.
// The cutoff comparison must respect the time of day across both formats.
func TestSessionRepository_DeleteEmptySessionsBefore_DefaultTimestampFormat(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSessionRepository(db)
	ctx := context.Background()

	for _, s := range []struct{ id, createdAt string }{
		{"sess-same-day-later", "2026-08-24 23:59:59"},
		{"sess-day-before", "2026-08-23 12:00:00"},
	} {
		_, err := db.Exec(
			"INSERT INTO sessions (id, status, created_at, updated_at) VALUES (?, 'active', ?, ?)",
			s.id, s.createdAt, s.createdAt)
		if err != nil {
			t.Fatalf("raw insert failed: %v", err)
		}
	}

	deleted, err := repo.DeleteEmptySessionsBefore(ctx, "2026-08-24T05:00:00Z")
	if err != nil {
		t.Fatalf("DeleteEmptySessionsBefore failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sessions WHERE id = 'sess-same-day-later'").Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Error("session newer than the cutoff was deleted")
	}

	// Message retention keys on updated_at and honors the same formats.
	_, err = db.Exec(
		"INSERT INTO sessions (id, status, created_at, updated_at) VALUES ('sess-done', 'completed', ?, ?)",
		"2026-08-24 20:00:00", "2026-08-24 20:00:00")
	if err != nil {
		t.Fatalf("raw insert failed: %v", err)
	}
	seedSessionMessage(t, db, "msg-001", "sess-done")

	deleted, err = repo.DeleteMessagesOfCompletedBefore(ctx, "2026-08-24T05:00:00Z")
	if err != nil {
		t.Fatalf("DeleteMessagesOfCompletedBefore failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0", deleted)
	}
}

func TestSessionRepository_DeleteMessagesOfCompletedBefore(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSessionRepository(db)
	ctx := context.Background()

	old := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cutoff := "2026-06-01T00:00:00Z"

	seedSession(t, db, "sess-done", "completed", old)
	seedSessionMessage(t, db, "msg-001", "sess-done")
	seedSessionMessage(t, db, "msg-002", "sess-done")
	seedSession(t, db, "sess-live", "active", old)
	seedSessionMessage(t, db, "msg-003", "sess-live")

	deleted, err := repo.DeleteMessagesOfCompletedBefore(ctx, cutoff)
	if err != nil {
		t.Fatalf("DeleteMessagesOfCompletedBefore failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}

	// Active session messages survive.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM session_messages WHERE session_id = 'sess-live'").Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("active session messages = %d, want 1", count)
	}

	// Session rows themselves stay.
	if err := db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("sessions = %d, want 2", count)
	}
}
