// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/example/curator/internal/core/extraction"
	"github.com/example/curator/internal/ports/secondary"
)

// RecordRepository implements secondary.RecordRepository with SQLite.
// One repository serves all four typed stores; the table name is validated
// against the typed-store whitelist before it ever reaches a query.
type RecordRepository struct {
	db        *sql.DB
	logWriter secondary.LogWriter
}

// NewRecordRepository creates a new SQLite record repository.
// logWriter is optional - if nil, no audit logging is performed.
func NewRecordRepository(db *sql.DB, logWriter secondary.LogWriter) *RecordRepository {
	return &RecordRepository{db: db, logWriter: logWriter}
}

const recordColumns = "id, title, content, category, project_id, client_id, platform_id, importance, tags, confidence, created_at"

func checkTable(table string) error {
	if !extraction.IsTypedStore(table) {
		return fmt.Errorf("unknown typed store %q", table)
	}
	return nil
}

// Insert persists a new record into the given typed store.
func (r *RecordRepository) Insert(ctx context.Context, table string, rec *secondary.RecordEntry) error {
	if err := checkTable(table); err != nil {
		return err
	}

	tags, err := json.Marshal(rec.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}
	if rec.CreatedAt == "" {
		rec.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	_, err = r.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, table, recordColumns),
		rec.ID, rec.Title, rec.Content, rec.Category,
		rec.ProjectID, rec.ClientID, rec.PlatformID,
		rec.Importance, string(tags), rec.Confidence, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert %s record: %w", table, err)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogCreate(ctx, table, rec.ID)
	}

	return nil
}

// GetByID retrieves a record from the given typed store.
func (r *RecordRepository) GetByID(ctx context.Context, table, id string) (*secondary.RecordEntry, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}

	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", recordColumns, table), id)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("record %s not found in %s", id, table)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s record: %w", table, err)
	}
	return rec, nil
}

// UpdateContent overwrites a record's content.
func (r *RecordRepository) UpdateContent(ctx context.Context, table, id, content string) error {
	if err := checkTable(table); err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET content = ? WHERE id = ?", table), content, id)
	if err != nil {
		return fmt.Errorf("failed to update %s record: %w", table, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("record %s not found in %s", id, table)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogUpdate(ctx, table, id, "content", "", content)
	}

	return nil
}

// List retrieves records matching the given filters.
func (r *RecordRepository) List(ctx context.Context, table string, filters secondary.RecordFilters) ([]*secondary.RecordEntry, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE 1=1", recordColumns, table)
	args := []any{}

	if filters.ProjectID != "" {
		query += " AND project_id = ?"
		args = append(args, filters.ProjectID)
	}
	if filters.Category != "" {
		query += " AND category = ?"
		args = append(args, filters.Category)
	}

	query += " ORDER BY created_at DESC"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	return r.queryRecords(ctx, table, query, args...)
}

// ListOrderedByCreation retrieves every record ascending by creation time.
// Ties break on id so "keep the earliest" stays deterministic. Ordering
// goes through datetime() because collaborator-written rows carry
// CURRENT_TIMESTAMP format while this repository writes RFC3339.
func (r *RecordRepository) ListOrderedByCreation(ctx context.Context, table string) ([]*secondary.RecordEntry, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	return r.queryRecords(ctx, table,
		fmt.Sprintf("SELECT %s FROM %s ORDER BY datetime(created_at) ASC, id ASC", recordColumns, table))
}

// FindDuplicate looks up a record in the same attribution scope whose
// normalized title starts with the given prefix.
func (r *RecordRepository) FindDuplicate(ctx context.Context, table, projectID, clientID, platformID, titlePrefix string) (*secondary.RecordEntry, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	if titlePrefix == "" {
		return nil, nil
	}

	// A literal backslash must itself be escaped or it consumes the
	// following pattern character.
	pattern := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(strings.ToLower(titlePrefix)) + "%"
	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM %s
			WHERE project_id = ? AND client_id = ? AND platform_id = ?
			AND LOWER(title) LIKE ? ESCAPE '\'
			ORDER BY datetime(created_at) ASC LIMIT 1`, recordColumns, table),
		projectID, clientID, platformID, pattern)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check %s duplicates: %w", table, err)
	}
	return rec, nil
}

// DeleteByIDs removes the given records and reports how many rows were
// actually deleted.
func (r *RecordRepository) DeleteByIDs(ctx context.Context, table string, ids []string) (int, error) {
	if err := checkTable(table); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.Repeat("?, ", len(ids)-1) + "?"
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	result, err := r.db.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE id IN (%s)", table, placeholders), args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete %s records: %w", table, err)
	}
	deleted, _ := result.RowsAffected()

	if r.logWriter != nil {
		for _, id := range ids {
			_ = r.logWriter.LogDelete(ctx, table, id)
		}
	}

	return int(deleted), nil
}

// CountByIDs reports how many of the given ids exist.
func (r *RecordRepository) CountByIDs(ctx context.Context, table string, ids []string) (int, error) {
	if err := checkTable(table); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.Repeat("?, ", len(ids)-1) + "?"
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	var count int
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE id IN (%s)", table, placeholders), args...,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s records: %w", table, err)
	}
	return count, nil
}

func (r *RecordRepository) queryRecords(ctx context.Context, table, query string, args ...any) ([]*secondary.RecordEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s records: %w", table, err)
	}
	defer rows.Close()

	var records []*secondary.RecordEntry
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s record: %w", table, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*secondary.RecordEntry, error) {
	var (
		rec       secondary.RecordEntry
		tags      string
		createdAt time.Time
	)
	err := s.Scan(&rec.ID, &rec.Title, &rec.Content, &rec.Category,
		&rec.ProjectID, &rec.ClientID, &rec.PlatformID,
		&rec.Importance, &tags, &rec.Confidence, &createdAt)
	if err != nil {
		return nil, err
	}
	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &rec.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags: %w", err)
		}
	}
	rec.CreatedAt = createdAt.Format(time.RFC3339)
	return &rec, nil
}

// Ensure RecordRepository implements the interface
var _ secondary.RecordRepository = (*RecordRepository)(nil)
