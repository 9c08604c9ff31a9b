package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/curator/internal/ports/secondary"
)

// NotificationRepository implements secondary.NotificationRepository with SQLite.
type NotificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository creates a new SQLite notification repository.
func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const notificationColumns = "id, recipient, ref_type, ref_id, message, status, created_at"

// Create persists a new notification.
func (r *NotificationRepository) Create(ctx context.Context, rec *secondary.NotificationRecord) error {
	if rec.Status == "" {
		rec.Status = secondary.NotificationUnread
	}
	if rec.CreatedAt == "" {
		rec.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (id, recipient, ref_type, ref_id, message, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Recipient, rec.RefType, rec.RefID, rec.Message, rec.Status, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// List retrieves notifications matching the given filters, newest first.
func (r *NotificationRepository) List(ctx context.Context, filters secondary.NotificationFilters) ([]*secondary.NotificationRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM notifications WHERE 1=1", notificationColumns)
	args := []any{}

	if filters.Recipient != "" {
		query += " AND recipient = ?"
		args = append(args, filters.Recipient)
	}
	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	query += " ORDER BY created_at DESC"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var records []*secondary.NotificationRecord
	for rows.Next() {
		var (
			rec       secondary.NotificationRecord
			createdAt time.Time
		)
		err := rows.Scan(&rec.ID, &rec.Recipient, &rec.RefType, &rec.RefID,
			&rec.Message, &rec.Status, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		rec.CreatedAt = createdAt.Format(time.RFC3339)
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// UpdateStatus changes a notification's status.
func (r *NotificationRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("notification %s not found", id)
	}
	return nil
}

// Ensure NotificationRepository implements the interface
var _ secondary.NotificationRepository = (*NotificationRepository)(nil)
