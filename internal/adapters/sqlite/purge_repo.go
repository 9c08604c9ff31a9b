package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/curator/internal/ports/secondary"
)

// PurgeRepository implements secondary.PurgeRepository with SQLite.
type PurgeRepository struct {
	db *sql.DB
}

// NewPurgeRepository creates a new SQLite purge request repository.
func NewPurgeRepository(db *sql.DB) *PurgeRepository {
	return &PurgeRepository{db: db}
}

const purgeColumns = "id, target_table, record_ids, reason, status, flagged_by, reviewed_by, reviewed_at, executed_at, created_at"

// Create persists a new purge request. The record id list is stored as a
// JSON array.
func (r *PurgeRepository) Create(ctx context.Context, rec *secondary.PurgeRecord) error {
	ids, err := json.Marshal(rec.RecordIDs)
	if err != nil {
		return fmt.Errorf("failed to encode record ids: %w", err)
	}
	if rec.CreatedAt == "" {
		rec.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO purge_requests (id, target_table, record_ids, reason, status, flagged_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.TargetTable, string(ids), rec.Reason, rec.Status, rec.FlaggedBy, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create purge request: %w", err)
	}
	return nil
}

// GetByID retrieves a purge request by its ID.
func (r *PurgeRepository) GetByID(ctx context.Context, id string) (*secondary.PurgeRecord, error) {
	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM purge_requests WHERE id = ?", purgeColumns), id)

	rec, err := scanPurge(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("purge request %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get purge request: %w", err)
	}
	return rec, nil
}

// List retrieves purge requests matching the given filters.
func (r *PurgeRepository) List(ctx context.Context, filters secondary.PurgeFilters) ([]*secondary.PurgeRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM purge_requests WHERE 1=1", purgeColumns)
	args := []any{}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	query += " ORDER BY created_at ASC"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list purge requests: %w", err)
	}
	defer rows.Close()

	var records []*secondary.PurgeRecord
	for rows.Next() {
		rec, err := scanPurge(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purge request: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// MarkReviewed records the reviewer's verdict. Status flip only; the
// referenced rows are untouched.
func (r *PurgeRepository) MarkReviewed(ctx context.Context, id, status, reviewedBy, reviewedAt string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE purge_requests SET status = ?, reviewed_by = ?, reviewed_at = ? WHERE id = ?",
		status, reviewedBy, reviewedAt, id)
	if err != nil {
		return fmt.Errorf("failed to review purge request: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("purge request %s not found", id)
	}
	return nil
}

// MarkExecuted stamps the execution timestamp after a physical delete.
func (r *PurgeRepository) MarkExecuted(ctx context.Context, id, executedAt string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE purge_requests SET executed_at = ? WHERE id = ?", executedAt, id)
	if err != nil {
		return fmt.Errorf("failed to mark purge request executed: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("purge request %s not found", id)
	}
	return nil
}

// GetNextID returns the next available purge request ID in PURGE-XXX format.
func (r *PurgeRepository) GetNextID(ctx context.Context) (string, error) {
	var maxNum sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		"SELECT MAX(CAST(SUBSTR(id, 7) AS INTEGER)) FROM purge_requests WHERE id LIKE 'PURGE-%'",
	).Scan(&maxNum)
	if err != nil {
		return "", fmt.Errorf("failed to get next purge request ID: %w", err)
	}

	next := int64(1)
	if maxNum.Valid {
		next = maxNum.Int64 + 1
	}
	return fmt.Sprintf("PURGE-%03d", next), nil
}

func scanPurge(s scanner) (*secondary.PurgeRecord, error) {
	var (
		rec        secondary.PurgeRecord
		ids        string
		reviewedAt sql.NullTime
		executedAt sql.NullTime
		createdAt  time.Time
	)
	err := s.Scan(&rec.ID, &rec.TargetTable, &ids, &rec.Reason, &rec.Status,
		&rec.FlaggedBy, &rec.ReviewedBy, &reviewedAt, &executedAt, &createdAt)
	if err != nil {
		return nil, err
	}
	if ids != "" {
		if err := json.Unmarshal([]byte(ids), &rec.RecordIDs); err != nil {
			return nil, fmt.Errorf("failed to decode record ids: %w", err)
		}
	}
	if reviewedAt.Valid {
		rec.ReviewedAt = reviewedAt.Time.Format(time.RFC3339)
	}
	if executedAt.Valid {
		rec.ExecutedAt = executedAt.Time.Format(time.RFC3339)
	}
	rec.CreatedAt = createdAt.Format(time.RFC3339)
	return &rec, nil
}

// Ensure PurgeRepository implements the interface
var _ secondary.PurgeRepository = (*PurgeRepository)(nil)
