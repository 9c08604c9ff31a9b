package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/curator/internal/ports/secondary"
)

// ConflictRepository implements secondary.ConflictRepository with SQLite.
type ConflictRepository struct {
	db *sql.DB
}

// NewConflictRepository creates a new SQLite conflict repository.
func NewConflictRepository(db *sql.DB) *ConflictRepository {
	return &ConflictRepository{db: db}
}

const conflictColumns = "id, ref_table, ref_id, existing_content, new_content, conflict_type, description, priority, status, resolved_by, resolution_notes, created_at, resolved_at"

// Create persists a new conflict.
func (r *ConflictRepository) Create(ctx context.Context, rec *secondary.ConflictRecord) error {
	if rec.CreatedAt == "" {
		rec.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO conflicts (id, ref_table, ref_id, existing_content, new_content, conflict_type, description, priority, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.RefTable, rec.RefID, rec.ExistingContent, rec.NewContent,
		rec.ConflictType, rec.Description, rec.Priority, rec.Status, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create conflict: %w", err)
	}
	return nil
}

// GetByID retrieves a conflict by its ID.
func (r *ConflictRepository) GetByID(ctx context.Context, id string) (*secondary.ConflictRecord, error) {
	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM conflicts WHERE id = ?", conflictColumns), id)

	rec, err := scanConflict(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("conflict %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conflict: %w", err)
	}
	return rec, nil
}

// List retrieves conflicts matching the given filters.
func (r *ConflictRepository) List(ctx context.Context, filters secondary.ConflictFilters) ([]*secondary.ConflictRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM conflicts WHERE 1=1", conflictColumns)
	args := []any{}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}
	if filters.RefTable != "" {
		query += " AND ref_table = ?"
		args = append(args, filters.RefTable)
	}

	query += " ORDER BY priority DESC, created_at ASC"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list conflicts: %w", err)
	}
	defer rows.Close()

	var records []*secondary.ConflictRecord
	for rows.Next() {
		rec, err := scanConflict(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conflict: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// MarkResolved stamps the terminal status, resolver identity, notes and
// resolution timestamp onto a conflict.
func (r *ConflictRepository) MarkResolved(ctx context.Context, id, status, resolvedBy, notes, resolvedAt string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE conflicts SET status = ?, resolved_by = ?, resolution_notes = ?, resolved_at = ? WHERE id = ?",
		status, resolvedBy, notes, resolvedAt, id)
	if err != nil {
		return fmt.Errorf("failed to resolve conflict: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("conflict %s not found", id)
	}
	return nil
}

// GetNextID returns the next available conflict ID in CONF-XXX format.
func (r *ConflictRepository) GetNextID(ctx context.Context) (string, error) {
	var maxNum sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		"SELECT MAX(CAST(SUBSTR(id, 6) AS INTEGER)) FROM conflicts WHERE id LIKE 'CONF-%'",
	).Scan(&maxNum)
	if err != nil {
		return "", fmt.Errorf("failed to get next conflict ID: %w", err)
	}

	next := int64(1)
	if maxNum.Valid {
		next = maxNum.Int64 + 1
	}
	return fmt.Sprintf("CONF-%03d", next), nil
}

func scanConflict(s scanner) (*secondary.ConflictRecord, error) {
	var (
		rec        secondary.ConflictRecord
		createdAt  time.Time
		resolvedAt sql.NullTime
	)
	err := s.Scan(&rec.ID, &rec.RefTable, &rec.RefID,
		&rec.ExistingContent, &rec.NewContent, &rec.ConflictType,
		&rec.Description, &rec.Priority, &rec.Status,
		&rec.ResolvedBy, &rec.ResolutionNotes, &createdAt, &resolvedAt)
	if err != nil {
		return nil, err
	}
	rec.CreatedAt = createdAt.Format(time.RFC3339)
	if resolvedAt.Valid {
		rec.ResolvedAt = resolvedAt.Time.Format(time.RFC3339)
	}
	return &rec, nil
}

// Ensure ConflictRepository implements the interface
var _ secondary.ConflictRepository = (*ConflictRepository)(nil)
