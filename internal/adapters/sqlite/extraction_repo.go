package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/curator/internal/ports/secondary"
)

// ExtractionRepository implements secondary.ExtractionRepository with SQLite.
type ExtractionRepository struct {
	db *sql.DB
}

// NewExtractionRepository creates a new SQLite extraction repository.
func NewExtractionRepository(db *sql.DB) *ExtractionRepository {
	return &ExtractionRepository{db: db}
}

const extractionColumns = "id, content, category, project_path, priority, status, attempts, metadata, created_at, processed_at"

// Create persists a new captured fragment.
func (r *ExtractionRepository) Create(ctx context.Context, rec *secondary.ExtractionRecord) error {
	if rec.Status == "" {
		rec.Status = secondary.ExtractionPending
	}
	if rec.Metadata == "" {
		rec.Metadata = "{}"
	}
	if rec.CreatedAt == "" {
		rec.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO extractions (id, content, category, project_path, priority, status, attempts, metadata, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Content, rec.Category, rec.ProjectPath,
		rec.Priority, rec.Status, rec.Attempts, rec.Metadata, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create extraction: %w", err)
	}
	return nil
}

// GetByID retrieves an extraction by its ID.
func (r *ExtractionRepository) GetByID(ctx context.Context, id string) (*secondary.ExtractionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM extractions WHERE id = ?", extractionColumns), id)

	rec, err := scanExtraction(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("extraction %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get extraction: %w", err)
	}
	return rec, nil
}

// ListPending retrieves up to limit pending extractions, oldest first.
// Higher-priority fragments within the same age order go first.
func (r *ExtractionRepository) ListPending(ctx context.Context, limit int) ([]*secondary.ExtractionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s FROM extractions WHERE status = ?
			ORDER BY priority DESC, created_at ASC, id ASC LIMIT ?`, extractionColumns),
		secondary.ExtractionPending, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending extractions: %w", err)
	}
	defer rows.Close()

	var records []*secondary.ExtractionRecord
	for rows.Next() {
		rec, err := scanExtraction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan extraction: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// MarkProcessed transitions an extraction to processed.
func (r *ExtractionRepository) MarkProcessed(ctx context.Context, id string) error {
	return r.transition(ctx, id, secondary.ExtractionProcessed, nil)
}

// MarkSkipped transitions an extraction to skipped with the filter reason
// recorded in metadata.
func (r *ExtractionRepository) MarkSkipped(ctx context.Context, id, reason string) error {
	return r.transition(ctx, id, secondary.ExtractionSkipped, map[string]string{"skip_reason": reason})
}

// MarkFailed transitions an extraction to failed with the error captured
// in metadata and the attempt counter bumped.
func (r *ExtractionRepository) MarkFailed(ctx context.Context, id, errMsg string) error {
	meta := map[string]string{"error": errMsg}
	encoded, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE extractions SET status = ?, metadata = ?, attempts = attempts + 1, processed_at = ? WHERE id = ?`,
		secondary.ExtractionFailed, string(encoded), time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("failed to mark extraction failed: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("extraction %s not found", id)
	}
	return nil
}

// Requeue flips a failed extraction back to pending for manual resurfacing.
func (r *ExtractionRepository) Requeue(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE extractions SET status = ?, processed_at = NULL WHERE id = ? AND status = ?",
		secondary.ExtractionPending, id, secondary.ExtractionFailed)
	if err != nil {
		return fmt.Errorf("failed to requeue extraction: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("extraction %s is not in failed status", id)
	}
	return nil
}

// CountByStatus reports queue depth per status.
func (r *ExtractionRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM extractions GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("failed to count extractions: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan extraction count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// transition stamps a terminal status and processed_at, optionally
// merging metadata.
func (r *ExtractionRepository) transition(ctx context.Context, id, status string, meta map[string]string) error {
	query := "UPDATE extractions SET status = ?, processed_at = ?"
	args := []any{status, time.Now().UTC().Format(time.RFC3339)}

	if meta != nil {
		encoded, err := json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("failed to encode metadata: %w", err)
		}
		query += ", metadata = ?"
		args = append(args, string(encoded))
	}

	query += " WHERE id = ?"
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to mark extraction %s: %w", status, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("extraction %s not found", id)
	}
	return nil
}

func scanExtraction(s scanner) (*secondary.ExtractionRecord, error) {
	var (
		rec         secondary.ExtractionRecord
		createdAt   time.Time
		processedAt sql.NullTime
	)
	err := s.Scan(&rec.ID, &rec.Content, &rec.Category, &rec.ProjectPath,
		&rec.Priority, &rec.Status, &rec.Attempts, &rec.Metadata,
		&createdAt, &processedAt)
	if err != nil {
		return nil, err
	}
	rec.CreatedAt = createdAt.Format(time.RFC3339)
	if processedAt.Valid {
		rec.ProcessedAt = processedAt.Time.Format(time.RFC3339)
	}
	return &rec, nil
}

// Ensure ExtractionRepository implements the interface
var _ secondary.ExtractionRepository = (*ExtractionRepository)(nil)
