package app

import (
	"context"

	"github.com/example/curator/internal/ports/primary"
	"github.com/example/curator/internal/ports/secondary"
)

// NotificationServiceImpl implements the NotificationService interface.
type NotificationServiceImpl struct {
	notificationRepo secondary.NotificationRepository
}

// NewNotificationService creates a new NotificationService with injected
// dependencies.
func NewNotificationService(notificationRepo secondary.NotificationRepository) *NotificationServiceImpl {
	return &NotificationServiceImpl{notificationRepo: notificationRepo}
}

// List retrieves notifications matching the filters.
func (s *NotificationServiceImpl) List(ctx context.Context, filters primary.NotificationFilters) ([]*primary.Notification, error) {
	records, err := s.notificationRepo.List(ctx, secondary.NotificationFilters{
		Recipient: filters.Recipient,
		Status:    filters.Status,
		Limit:     filters.Limit,
	})
	if err != nil {
		return nil, err
	}

	notifications := make([]*primary.Notification, len(records))
	for i, r := range records {
		notifications[i] = &primary.Notification{
			ID:        r.ID,
			Recipient: r.Recipient,
			RefType:   r.RefType,
			RefID:     r.RefID,
			Message:   r.Message,
			Status:    r.Status,
			CreatedAt: r.CreatedAt,
		}
	}
	return notifications, nil
}

// MarkRead marks a notification as read.
func (s *NotificationServiceImpl) MarkRead(ctx context.Context, notificationID string) error {
	return s.notificationRepo.UpdateStatus(ctx, notificationID, secondary.NotificationRead)
}

// Dismiss dismisses a notification.
func (s *NotificationServiceImpl) Dismiss(ctx context.Context, notificationID string) error {
	return s.notificationRepo.UpdateStatus(ctx, notificationID, secondary.NotificationDismissed)
}

// Ensure NotificationServiceImpl implements the interface
var _ primary.NotificationService = (*NotificationServiceImpl)(nil)
