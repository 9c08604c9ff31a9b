// Package config loads curator configuration.
//
// Configuration hierarchy (highest to lowest priority):
//  1. Environment variables (CURATOR_*)
//  2. Config file (~/.curator/config.yaml)
//  3. Built-in defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all curator settings.
type Config struct {
	// FallbackProject receives fragments nothing else claims.
	FallbackProject string `mapstructure:"fallback_project" yaml:"fallback_project"`

	// BatchSize caps how many pending extractions one routing cycle consumes.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// RouterInterval is the pause between automated routing cycles.
	RouterInterval time.Duration `mapstructure:"router_interval" yaml:"router_interval"`

	// SweepInterval is the pause between maintenance sweeps.
	SweepInterval time.Duration `mapstructure:"sweep_interval" yaml:"sweep_interval"`

	// DefaultReviewer receives conflict and purge notifications.
	DefaultReviewer string `mapstructure:"default_reviewer" yaml:"default_reviewer"`

	// EmptySessionRetention is how long empty sessions are kept.
	EmptySessionRetention time.Duration `mapstructure:"empty_session_retention" yaml:"empty_session_retention"`

	// CompletedSessionRetention is how long completed session messages are kept.
	CompletedSessionRetention time.Duration `mapstructure:"completed_session_retention" yaml:"completed_session_retention"`

	// PathCacheTTL bounds how long path resolutions are cached.
	PathCacheTTL time.Duration `mapstructure:"path_cache_ttl" yaml:"path_cache_ttl"`

	// ContextServiceURL points at the optional sibling context service.
	// Empty disables context enrichment.
	ContextServiceURL string `mapstructure:"context_service_url" yaml:"context_service_url"`

	// ContextServiceTimeout bounds each context fetch.
	ContextServiceTimeout time.Duration `mapstructure:"context_service_timeout" yaml:"context_service_timeout"`

	// ContextServiceRPS caps outbound context requests per second.
	ContextServiceRPS float64 `mapstructure:"context_service_rps" yaml:"context_service_rps"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		FallbackProject:           "misc",
		BatchSize:                 50,
		RouterInterval:            5 * time.Minute,
		SweepInterval:             24 * time.Hour,
		DefaultReviewer:           "reviewer",
		EmptySessionRetention:     7 * 24 * time.Hour,
		CompletedSessionRetention: 30 * 24 * time.Hour,
		PathCacheTTL:              10 * time.Minute,
		ContextServiceURL:         "",
		ContextServiceTimeout:     3 * time.Second,
		ContextServiceRPS:         2,
	}
}

// Load reads configuration from file and environment on top of defaults.
// A missing config file is not an error.
func Load() (Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("fallback_project", defaults.FallbackProject)
	v.SetDefault("batch_size", defaults.BatchSize)
	v.SetDefault("router_interval", defaults.RouterInterval)
	v.SetDefault("sweep_interval", defaults.SweepInterval)
	v.SetDefault("default_reviewer", defaults.DefaultReviewer)
	v.SetDefault("empty_session_retention", defaults.EmptySessionRetention)
	v.SetDefault("completed_session_retention", defaults.CompletedSessionRetention)
	v.SetDefault("path_cache_ttl", defaults.PathCacheTTL)
	v.SetDefault("context_service_url", defaults.ContextServiceURL)
	v.SetDefault("context_service_timeout", defaults.ContextServiceTimeout)
	v.SetDefault("context_service_rps", defaults.ContextServiceRPS)

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".curator"))
	}
	v.SetConfigType("yaml")
	v.SetConfigName("config")

	v.SetEnvPrefix("CURATOR")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.BatchSize <= 0 {
		return Config{}, fmt.Errorf("batch_size must be positive, got %d", cfg.BatchSize)
	}
	if cfg.FallbackProject == "" {
		return Config{}, fmt.Errorf("fallback_project must not be empty")
	}

	return cfg, nil
}

// ConfigPath returns where the config file is expected to live.
func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}
	return filepath.Join(home, ".curator", "config.yaml"), nil
}
