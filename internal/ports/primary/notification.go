package primary

import "context"

// Notification is addressed to a reviewer and references a conflict or
// purge request.
type Notification struct {
	ID        string
	Recipient string
	RefType   string
	RefID     string
	Message   string
	Status    string
	CreatedAt string
}

// NotificationFilters contains filter options for listing notifications.
type NotificationFilters struct {
	Recipient string
	Status    string
	Limit     int
}

// NotificationService is the primary port for reviewer notifications.
type NotificationService interface {
	List(ctx context.Context, filters NotificationFilters) ([]*Notification, error)
	MarkRead(ctx context.Context, notificationID string) error
	Dismiss(ctx context.Context, notificationID string) error
}
