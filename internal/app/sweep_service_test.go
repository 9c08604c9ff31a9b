package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/curator/internal/ports/secondary"
)

func TestSweepService_Dedup(t *testing.T) {
	ctx := context.Background()

	insert := func(t *testing.T, repo *mockRecordRepo, table, id, title, projectID, createdAt string) {
		t.Helper()
		err := repo.Insert(ctx, table, &secondary.RecordEntry{
			ID: id, Title: title, Content: "c",
			ProjectID: projectID, ClientID: "studio", PlatformID: "web",
			CreatedAt: createdAt,
		})
		if err != nil {
			t.Fatalf("failed to seed record: %v", err)
		}
	}

	t.Run("keeps the first-created row per duplicate key", func(t *testing.T) {
		recordRepo := newMockRecordRepo()
		insert(t, recordRepo, "knowledge", "rec-late", "Fix the  Auction Timer", "nextbid", "2026-02-01T00:00:00Z")
		insert(t, recordRepo, "knowledge", "rec-early", "fix the auction timer", "nextbid", "2026-01-01T00:00:00Z")
		insert(t, recordRepo, "knowledge", "rec-other", "unrelated note", "nextbid", "2026-01-15T00:00:00Z")

		svc := NewSweepService(recordRepo, newMockSessionRepo(), 7*24*time.Hour, 30*24*time.Hour)
		summary, err := svc.RunCycle(ctx)
		if err != nil {
			t.Fatalf("RunCycle failed: %v", err)
		}
		if summary.DuplicatesRemoved != 1 {
			t.Errorf("DuplicatesRemoved = %d, want 1", summary.DuplicatesRemoved)
		}

		if _, err := recordRepo.GetByID(ctx, "knowledge", "rec-early"); err != nil {
			t.Errorf("first-created row removed: %v", err)
		}
		if _, err := recordRepo.GetByID(ctx, "knowledge", "rec-late"); err == nil {
			t.Error("later duplicate survived the sweep")
		}

		// Convergence: a second sweep finds nothing.
		again, err := svc.RunCycle(ctx)
		if err != nil {
			t.Fatalf("second RunCycle failed: %v", err)
		}
		if again.DuplicatesRemoved != 0 {
			t.Errorf("second sweep removed %d, want 0", again.DuplicatesRemoved)
		}
	})

	t.Run("identical titles in different scopes are not duplicates", func(t *testing.T) {
		recordRepo := newMockRecordRepo()
		insert(t, recordRepo, "knowledge", "rec-a", "shared title", "nextbid", "2026-01-01T00:00:00Z")
		insert(t, recordRepo, "knowledge", "rec-b", "shared title", "ai-team", "2026-01-02T00:00:00Z")

		svc := NewSweepService(recordRepo, newMockSessionRepo(), 7*24*time.Hour, 30*24*time.Hour)
		summary, err := svc.RunCycle(ctx)
		if err != nil {
			t.Fatalf("RunCycle failed: %v", err)
		}
		if summary.DuplicatesRemoved != 0 {
			t.Errorf("DuplicatesRemoved = %d, want 0", summary.DuplicatesRemoved)
		}
	})

	t.Run("a failing store is counted and the sweep continues", func(t *testing.T) {
		recordRepo := newMockRecordRepo()
		recordRepo.listErr = errors.New("corrupt index")
		sessionRepo := newMockSessionRepo()
		sessionRepo.emptyDeleted = 3
		sessionRepo.messageDeleted = 5

		svc := NewSweepService(recordRepo, sessionRepo, 7*24*time.Hour, 30*24*time.Hour)
		summary, err := svc.RunCycle(ctx)
		if err != nil {
			t.Fatalf("RunCycle failed: %v", err)
		}
		if summary.StoreErrors != 4 {
			t.Errorf("StoreErrors = %d, want 4 (one per typed store)", summary.StoreErrors)
		}
		// Session retention still ran.
		if summary.SessionsPruned != 3 || summary.MessagesPruned != 5 {
			t.Errorf("retention = %d/%d, want 3/5", summary.SessionsPruned, summary.MessagesPruned)
		}
	})
}

func TestSweepService_RunningGuard(t *testing.T) {
	ctx := context.Background()

	sessionRepo := newMockSessionRepo()
	sessionRepo.blockUntil = make(chan struct{})
	svc := NewSweepService(newMockRecordRepo(), sessionRepo, time.Hour, time.Hour)

	done := make(chan error, 1)
	go func() {
		_, err := svc.RunCycle(ctx)
		done <- err
	}()

	// Wait for the first cycle to take the guard.
	deadline := time.After(2 * time.Second)
	for !svc.running.Load() {
		select {
		case <-deadline:
			t.Fatal("first cycle never started")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	if _, err := svc.RunCycle(ctx); !errors.Is(err, ErrSweepRunning) {
		t.Errorf("overlapping cycle: err = %v, want ErrSweepRunning", err)
	}

	close(sessionRepo.blockUntil)
	if err := <-done; err != nil {
		t.Fatalf("first cycle failed: %v", err)
	}

	// Guard released: the next cycle runs.
	if _, err := svc.RunCycle(ctx); err != nil {
		t.Errorf("cycle after release failed: %v", err)
	}
}
