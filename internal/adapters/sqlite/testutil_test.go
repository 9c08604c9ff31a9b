// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Instead, use
// setupTestDB() and the seed* helpers.
package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/curator/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// This is the single shared test database setup function for all repository tests.
// Uses db.GetSchemaSQL() to prevent test schemas from drifting.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedProject inserts a test project signature and returns its ID.
func seedProject(t *testing.T, database *sql.DB, id string) string {
	t.Helper()
	if id == "" {
		id = "nextbid"
	}
	_, err := database.Exec(
		`INSERT INTO projects (id, name, client_id, platform_id, aliases, keywords, path_fragments, weight)
		 VALUES (?, ?, 'studio', 'web', '["nextbid"]', '["auction", "bid"]', '["NextBid"]', 1.0)`,
		id, "Test Project "+id)
	if err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return id
}

// seedSession inserts a test session with the given status and timestamps.
func seedSession(t *testing.T, database *sql.DB, id, status string, createdAt time.Time) string {
	t.Helper()
	ts := createdAt.UTC().Format(time.RFC3339)
	_, err := database.Exec(
		"INSERT INTO sessions (id, status, created_at, updated_at) VALUES (?, ?, ?, ?)",
		id, status, ts, ts)
	if err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	return id
}

// seedSessionMessage inserts a message for a session.
func seedSessionMessage(t *testing.T, database *sql.DB, id, sessionID string) {
	t.Helper()
	_, err := database.Exec(
		"INSERT INTO session_messages (id, session_id, role, content) VALUES (?, ?, 'user', 'hello')",
		id, sessionID)
	if err != nil {
		t.Fatalf("failed to seed session message: %v", err)
	}
}
