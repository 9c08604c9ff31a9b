package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "add_attempts_column_to_extractions",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_stale_session_status",
		Up:      migrationV2,
	},
}

// InitSchema applies the authoritative schema to a fresh database, or runs
// pending migrations on an existing one.
func InitSchema(database *sql.DB) error {
	var hasVersionTable bool
	err := database.QueryRow(
		"SELECT COUNT(*) > 0 FROM sqlite_master WHERE type = 'table' AND name = 'schema_version'",
	).Scan(&hasVersionTable)
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}

	if !hasVersionTable {
		if _, err := database.Exec(SchemaSQL); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
		if _, err := database.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`); err != nil {
			return fmt.Errorf("failed to create schema_version: %w", err)
		}
		// Fresh installs already carry every migration's end state.
		for _, m := range migrations {
			if _, err := database.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
				return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
			}
		}
		return nil
	}

	return runMigrations(database)
}

// runMigrations applies any migration not yet recorded in schema_version.
func runMigrations(database *sql.DB) error {
	applied := make(map[int]bool)
	rows, err := database.Query("SELECT version FROM schema_version")
	if err != nil {
		return fmt.Errorf("failed to read schema_version: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return fmt.Errorf("failed to scan schema_version: %w", err)
		}
		applied[v] = true
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if err := m.Up(database); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		if _, err := database.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
	}
	return nil
}

// migrationV1 adds the attempts counter used by manual requeue.
func migrationV1(database *sql.DB) error {
	_, err := database.Exec("ALTER TABLE extractions ADD COLUMN attempts INTEGER NOT NULL DEFAULT 0")
	return err
}

// migrationV2 rebuilds sessions with the 'stale' status allowed.
func migrationV2(database *sql.DB) error {
	stmts := []string{
		`CREATE TABLE sessions_new (
			id TEXT PRIMARY KEY,
			status TEXT NOT NULL CHECK(status IN ('active', 'completed', 'stale')) DEFAULT 'active',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		"INSERT INTO sessions_new SELECT id, status, created_at, updated_at FROM sessions",
		"DROP TABLE sessions",
		"ALTER TABLE sessions_new RENAME TO sessions",
	}
	for _, stmt := range stmts {
		if _, err := database.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
