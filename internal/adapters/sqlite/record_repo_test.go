package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/curator/internal/adapters/sqlite"
	"github.com/example/curator/internal/ports/secondary"
)

func TestRecordRepository_InsertAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewRecordRepository(db, nil)
	ctx := context.Background()

	t.Run("inserts record successfully", func(t *testing.T) {
		record := &secondary.RecordEntry{
			ID:         "rec-001",
			Title:      "Auction timer drift",
			Content:    "The countdown desyncs when the tab is backgrounded",
			Category:   "bug",
			ProjectID:  "nextbid",
			ClientID:   "studio",
			PlatformID: "web",
			Tags:       []string{"timer", "frontend"},
			Confidence: 0.85,
		}

		if err := repo.Insert(ctx, "bugs", record); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}

		got, err := repo.GetByID(ctx, "bugs", "rec-001")
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if got.Title != "Auction timer drift" {
			t.Errorf("Title = %q, want %q", got.Title, "Auction timer drift")
		}
		if got.Confidence != 0.85 {
			t.Errorf("Confidence = %v, want 0.85", got.Confidence)
		}
		if len(got.Tags) != 2 || got.Tags[0] != "timer" {
			t.Errorf("Tags = %v, want [timer frontend]", got.Tags)
		}
	})

	t.Run("records zero confidence", func(t *testing.T) {
		record := &secondary.RecordEntry{
			ID:      "rec-002",
			Title:   "Unattributed note",
			Content: "something worth keeping",
		}
		if err := repo.Insert(ctx, "knowledge", record); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}

		got, err := repo.GetByID(ctx, "knowledge", "rec-002")
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if got.Confidence != 0 {
			t.Errorf("Confidence = %v, want 0", got.Confidence)
		}
	})

	t.Run("rejects unknown table", func(t *testing.T) {
		err := repo.Insert(ctx, "users; DROP TABLE users", &secondary.RecordEntry{ID: "x"})
		if err == nil {
			t.Error("expected error for unknown table, got nil")
		}
	})
}

func TestRecordRepository_UpdateContent(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewRecordRepository(db, nil)
	ctx := context.Background()

	record := &secondary.RecordEntry{ID: "rec-001", Title: "Old decision", Content: "use postgres"}
	if err := repo.Insert(ctx, "decisions", record); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	t.Run("overwrites content", func(t *testing.T) {
		if err := repo.UpdateContent(ctx, "decisions", "rec-001", "use sqlite"); err != nil {
			t.Fatalf("UpdateContent failed: %v", err)
		}
		got, _ := repo.GetByID(ctx, "decisions", "rec-001")
		if got.Content != "use sqlite" {
			t.Errorf("Content = %q, want %q", got.Content, "use sqlite")
		}
	})

	t.Run("errors on missing record", func(t *testing.T) {
		if err := repo.UpdateContent(ctx, "decisions", "rec-999", "x"); err == nil {
			t.Error("expected error for missing record, got nil")
		}
	})
}

func TestRecordRepository_FindDuplicate(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewRecordRepository(db, nil)
	ctx := context.Background()

	seed := &secondary.RecordEntry{
		ID:         "rec-001",
		Title:      "auction timer drift on backgrounded tabs",
		Content:    "details",
		ProjectID:  "nextbid",
		ClientID:   "studio",
		PlatformID: "web",
	}
	if err := repo.Insert(ctx, "bugs", seed); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	t.Run("finds duplicate by title prefix in same scope", func(t *testing.T) {
		got, err := repo.FindDuplicate(ctx, "bugs", "nextbid", "studio", "web", "auction timer drift")
		if err != nil {
			t.Fatalf("FindDuplicate failed: %v", err)
		}
		if got == nil {
			t.Fatal("expected a duplicate, got nil")
		}
		if got.ID != "rec-001" {
			t.Errorf("ID = %q, want rec-001", got.ID)
		}
	})

	t.Run("match is case-insensitive", func(t *testing.T) {
		got, err := repo.FindDuplicate(ctx, "bugs", "nextbid", "studio", "web", "Auction Timer")
		if err != nil {
			t.Fatalf("FindDuplicate failed: %v", err)
		}
		if got == nil {
			t.Error("expected a duplicate, got nil")
		}
	})

	t.Run("different project is not a duplicate", func(t *testing.T) {
		got, err := repo.FindDuplicate(ctx, "bugs", "ai-team", "studio", "web", "auction timer drift")
		if err != nil {
			t.Fatalf("FindDuplicate failed: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil, got %v", got.ID)
		}
	})

	t.Run("LIKE wildcards in the prefix are escaped", func(t *testing.T) {
		got, err := repo.FindDuplicate(ctx, "bugs", "nextbid", "studio", "web", "%")
		if err != nil {
			t.Fatalf("FindDuplicate failed: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil for literal %% prefix, got %v", got.ID)
		}
	})

	t.Run("backslash in the prefix matches literally", func(t *testing.T) {
		rec := &secondary.RecordEntry{
			ID:         "rec-002",
			Title:      `crash exporting to c:\temp\out.csv`,
			Content:    "details",
			ProjectID:  "nextbid",
			ClientID:   "studio",
			PlatformID: "web",
		}
		if err := repo.Insert(ctx, "bugs", rec); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}

		got, err := repo.FindDuplicate(ctx, "bugs", "nextbid", "studio", "web", `crash exporting to c:\temp`)
		if err != nil {
			t.Fatalf("FindDuplicate failed: %v", err)
		}
		if got == nil || got.ID != "rec-002" {
			t.Fatalf("got %v, want rec-002", got)
		}

		// A trailing backslash must not swallow the appended wildcard.
		got, err = repo.FindDuplicate(ctx, "bugs", "nextbid", "studio", "web", `crash exporting to c:\`)
		if err != nil {
			t.Fatalf("FindDuplicate failed: %v", err)
		}
		if got == nil || got.ID != "rec-002" {
			t.Fatalf("got %v, want rec-002", got)
		}
	})
}

func TestRecordRepository_DeleteByIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewRecordRepository(db, nil)
	ctx := context.Background()

	for _, id := range []string{"rec-001", "rec-002", "rec-003"} {
		rec := &secondary.RecordEntry{ID: id, Title: "t " + id, Content: "c"}
		if err := repo.Insert(ctx, "knowledge", rec); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	t.Run("deletes listed records and reports count", func(t *testing.T) {
		deleted, err := repo.DeleteByIDs(ctx, "knowledge", []string{"rec-001", "rec-003", "rec-999"})
		if err != nil {
			t.Fatalf("DeleteByIDs failed: %v", err)
		}
		if deleted != 2 {
			t.Errorf("deleted = %d, want 2", deleted)
		}

		count, err := repo.CountByIDs(ctx, "knowledge", []string{"rec-001", "rec-002", "rec-003"})
		if err != nil {
			t.Fatalf("CountByIDs failed: %v", err)
		}
		if count != 1 {
			t.Errorf("remaining = %d, want 1", count)
		}
	})

	t.Run("empty id list is a no-op", func(t *testing.T) {
		deleted, err := repo.DeleteByIDs(ctx, "knowledge", nil)
		if err != nil {
			t.Fatalf("DeleteByIDs failed: %v", err)
		}
		if deleted != 0 {
			t.Errorf("deleted = %d, want 0", deleted)
		}
	})
}

func TestRecordRepository_ListOrderedByCreation(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewRecordRepository(db, nil)
	ctx := context.Background()

	entries := []struct{ id, createdAt string }{
		{"rec-b", "2026-01-02T00:00:00Z"},
		{"rec-a", "2026-01-01T00:00:00Z"},
		{"rec-c", "2026-01-02T00:00:00Z"},
	}
	for _, e := range entries {
		rec := &secondary.RecordEntry{ID: e.id, Title: "t", Content: "c", CreatedAt: e.createdAt}
		if err := repo.Insert(ctx, "lessons", rec); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	// Collaborator-written rows carry CURRENT_TIMESTAMP format and must
	// still sort by actual creation time.
	_, err := db.Exec(
		"INSERT INTO lessons (id, title, content, created_at) VALUES (?, ?, ?, ?)",
		"rec-mid", "t", "c", "2026-01-01 12:00:00")
	if err != nil {
		t.Fatalf("raw insert failed: %v", err)
	}

	got, err := repo.ListOrderedByCreation(ctx, "lessons")
	if err != nil {
		t.Fatalf("ListOrderedByCreation failed: %v", err)
	}
	want := []string{"rec-a", "rec-mid", "rec-b", "rec-c"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("got[%d].ID = %q, want %q", i, got[i].ID, id)
		}
	}
}
