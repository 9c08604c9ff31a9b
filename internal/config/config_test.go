package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.FallbackProject != "misc" {
		t.Errorf("FallbackProject = %q, want misc", cfg.FallbackProject)
	}
	if cfg.BatchSize != 50 {
		t.Errorf("BatchSize = %d, want 50", cfg.BatchSize)
	}
	if cfg.RouterInterval != 5*time.Minute {
		t.Errorf("RouterInterval = %v, want 5m", cfg.RouterInterval)
	}
	if cfg.SweepInterval != 24*time.Hour {
		t.Errorf("SweepInterval = %v, want 24h", cfg.SweepInterval)
	}
	if cfg.ContextServiceURL != "" {
		t.Errorf("ContextServiceURL = %q, want empty (disabled)", cfg.ContextServiceURL)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CURATOR_FALLBACK_PROJECT", "catch-all")
	t.Setenv("CURATOR_BATCH_SIZE", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.FallbackProject != "catch-all" {
		t.Errorf("FallbackProject = %q, want catch-all", cfg.FallbackProject)
	}
	if cfg.BatchSize != 10 {
		t.Errorf("BatchSize = %d, want 10", cfg.BatchSize)
	}
	// Untouched keys keep defaults.
	if cfg.DefaultReviewer != "reviewer" {
		t.Errorf("DefaultReviewer = %q, want reviewer", cfg.DefaultReviewer)
	}
}

func TestLoad_RejectsInvalid(t *testing.T) {
	t.Setenv("CURATOR_BATCH_SIZE", "0")

	if _, err := Load(); err == nil {
		t.Error("expected error for zero batch_size, got nil")
	}
}
