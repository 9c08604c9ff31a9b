package app

import (
	"context"
	"testing"

	"github.com/example/curator/internal/ports/primary"
	"github.com/example/curator/internal/ports/secondary"
)

func TestNotificationService(t *testing.T) {
	ctx := context.Background()
	repo := newMockNotificationRepo()
	svc := NewNotificationService(repo)

	repo.Create(ctx, &secondary.NotificationRecord{
		ID: "n-001", Recipient: "reviewer", RefType: "conflict", RefID: "CONF-001",
		Status: secondary.NotificationUnread,
	})
	repo.Create(ctx, &secondary.NotificationRecord{
		ID: "n-002", Recipient: "reviewer", RefType: "purge_request", RefID: "PURGE-001",
		Status: secondary.NotificationUnread,
	})

	t.Run("lists by status", func(t *testing.T) {
		got, err := svc.List(ctx, primary.NotificationFilters{Status: secondary.NotificationUnread})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("len = %d, want 2", len(got))
		}
	})

	t.Run("marks read", func(t *testing.T) {
		if err := svc.MarkRead(ctx, "n-001"); err != nil {
			t.Fatalf("MarkRead failed: %v", err)
		}
		unread, _ := svc.List(ctx, primary.NotificationFilters{Status: secondary.NotificationUnread})
		if len(unread) != 1 {
			t.Errorf("unread = %d, want 1", len(unread))
		}
	})

	t.Run("dismisses", func(t *testing.T) {
		if err := svc.Dismiss(ctx, "n-002"); err != nil {
			t.Fatalf("Dismiss failed: %v", err)
		}
		dismissed, _ := svc.List(ctx, primary.NotificationFilters{Status: secondary.NotificationDismissed})
		if len(dismissed) != 1 {
			t.Errorf("dismissed = %d, want 1", len(dismissed))
		}
	})

	t.Run("errors on unknown id", func(t *testing.T) {
		if err := svc.MarkRead(ctx, "n-404"); err == nil {
			t.Error("expected error for unknown notification")
		}
	})
}
