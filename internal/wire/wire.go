// Package wire provides dependency injection for the curator application.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"log"
	"sync"

	"github.com/example/curator/internal/adapters/httpclient"
	"github.com/example/curator/internal/adapters/sqlite"
	"github.com/example/curator/internal/app"
	"github.com/example/curator/internal/config"
	"github.com/example/curator/internal/core/attribution"
	"github.com/example/curator/internal/core/pathindex"
	"github.com/example/curator/internal/db"
	"github.com/example/curator/internal/ports/primary"
	"github.com/example/curator/internal/ports/secondary"
)

var (
	cfg                 config.Config
	extractionService   primary.ExtractionService
	conflictService     primary.ConflictService
	purgeService        primary.PurgeService
	sweepService        primary.SweepService
	projectService      primary.ProjectService
	notificationService primary.NotificationService
	scheduler           *app.Scheduler
	once                sync.Once
)

// Config returns the loaded configuration.
func Config() config.Config {
	once.Do(initServices)
	return cfg
}

// ExtractionService returns the singleton ExtractionService instance.
func ExtractionService() primary.ExtractionService {
	once.Do(initServices)
	return extractionService
}

// ConflictService returns the singleton ConflictService instance.
func ConflictService() primary.ConflictService {
	once.Do(initServices)
	return conflictService
}

// PurgeService returns the singleton PurgeService instance.
func PurgeService() primary.PurgeService {
	once.Do(initServices)
	return purgeService
}

// SweepService returns the singleton SweepService instance.
func SweepService() primary.SweepService {
	once.Do(initServices)
	return sweepService
}

// ProjectService returns the singleton ProjectService instance.
func ProjectService() primary.ProjectService {
	once.Do(initServices)
	return projectService
}

// NotificationService returns the singleton NotificationService instance.
func NotificationService() primary.NotificationService {
	once.Do(initServices)
	return notificationService
}

// Scheduler returns the singleton Scheduler instance used by the daemon.
func Scheduler() *app.Scheduler {
	once.Do(initServices)
	return scheduler
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	if err := db.SeedReferenceData(database); err != nil {
		log.Fatalf("failed to seed reference data: %v", err)
	}

	// Repository adapters (secondary ports)
	logWriter := sqlite.NewLogWriter(database)
	recordRepo := sqlite.NewRecordRepository(database, logWriter)
	extractionRepo := sqlite.NewExtractionRepository(database)
	conflictRepo := sqlite.NewConflictRepository(database)
	purgeRepo := sqlite.NewPurgeRepository(database)
	notificationRepo := sqlite.NewNotificationRepository(database)
	projectRepo := sqlite.NewProjectRepository(database)
	sessionRepo := sqlite.NewSessionRepository(database)

	// Reference registries, loaded once and immutable afterwards
	registry, resolver, err := loadRegistries(projectRepo)
	if err != nil {
		log.Fatalf("failed to load attribution registries: %v", err)
	}

	// Supplementary context is optional; nil disables enrichment
	var contextClient secondary.ContextClient
	if cfg.ContextServiceURL != "" {
		contextClient = httpclient.NewContextClient(cfg.ContextServiceURL, cfg.ContextServiceTimeout, cfg.ContextServiceRPS)
	}

	// Services (primary ports implementation)
	extractionService = app.NewExtractionService(extractionRepo, recordRepo, registry, resolver, cfg.FallbackProject, cfg.BatchSize)
	conflictService = app.NewConflictService(conflictRepo, recordRepo, notificationRepo, contextClient, cfg.DefaultReviewer)
	purgeService = app.NewPurgeService(purgeRepo, recordRepo, notificationRepo, cfg.DefaultReviewer)
	sweepService = app.NewSweepService(recordRepo, sessionRepo, cfg.EmptySessionRetention, cfg.CompletedSessionRetention)
	projectService = app.NewProjectService(registry, resolver, cfg.FallbackProject)
	notificationService = app.NewNotificationService(notificationRepo)
	scheduler = app.NewScheduler(extractionService, sweepService, cfg.RouterInterval, cfg.SweepInterval)
}

// loadRegistries builds the immutable signature registry and cached path
// resolver from the reference tables.
func loadRegistries(projectRepo secondary.ProjectRepository) (*attribution.Registry, *pathindex.CachedResolver, error) {
	ctx := context.Background()

	projects, err := projectRepo.ListProjects(ctx)
	if err != nil {
		return nil, nil, err
	}
	signatures := make([]attribution.Signature, len(projects))
	for i, p := range projects {
		signatures[i] = attribution.Signature{
			ID:            p.ID,
			Name:          p.Name,
			ClientID:      p.ClientID,
			PlatformID:    p.PlatformID,
			Aliases:       p.Aliases,
			Keywords:      p.Keywords,
			PathFragments: p.PathFragments,
			Weight:        p.Weight,
		}
	}

	paths, err := projectRepo.ListPaths(ctx)
	if err != nil {
		return nil, nil, err
	}
	entries := make([]pathindex.Entry, len(paths))
	for i, p := range paths {
		entries[i] = pathindex.Entry{
			Path:      p.Path,
			ProjectID: p.ProjectID,
			Kind:      pathindex.Kind(p.Kind),
		}
	}

	registry := attribution.NewRegistry(signatures)
	resolver := pathindex.NewCached(pathindex.New(entries), cfg.PathCacheTTL)
	return registry, resolver, nil
}
