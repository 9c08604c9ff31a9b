package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/example/curator/internal/core/attribution"
	"github.com/example/curator/internal/core/extraction"
	"github.com/example/curator/internal/core/pathindex"
	"github.com/example/curator/internal/ports/primary"
	"github.com/example/curator/internal/ports/secondary"
)

// PathResolver is what the router needs from the path index. Satisfied by
// both pathindex.Resolver and pathindex.CachedResolver.
type PathResolver interface {
	Resolve(rawPath string) *pathindex.Entry
}

// ExtractionServiceImpl implements the ExtractionService interface.
// It is the router: one RunCycle drains a bounded batch of pending
// extractions through filter, classification, attribution and insert.
type ExtractionServiceImpl struct {
	extractionRepo secondary.ExtractionRepository
	recordRepo     secondary.RecordRepository
	registry       *attribution.Registry
	resolver       PathResolver
	extractors     []extraction.Extractor

	fallbackProject string
	batchSize       int
}

// NewExtractionService creates a new ExtractionService with injected
// dependencies.
func NewExtractionService(
	extractionRepo secondary.ExtractionRepository,
	recordRepo secondary.RecordRepository,
	registry *attribution.Registry,
	resolver PathResolver,
	fallbackProject string,
	batchSize int,
) *ExtractionServiceImpl {
	return &ExtractionServiceImpl{
		extractionRepo:  extractionRepo,
		recordRepo:      recordRepo,
		registry:        registry,
		resolver:        resolver,
		extractors:      extraction.DefaultExtractors(),
		fallbackProject: fallbackProject,
		batchSize:       batchSize,
	}
}

// RunCycle processes one bounded batch of pending extractions.
// A failure routing one extraction marks that extraction failed and the
// batch continues; only queue-level errors abort the cycle.
func (s *ExtractionServiceImpl) RunCycle(ctx context.Context) (*primary.CycleSummary, error) {
	pending, err := s.extractionRepo.ListPending(ctx, s.batchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending extractions: %w", err)
	}

	summary := &primary.CycleSummary{Pending: len(pending)}
	if len(pending) == 0 {
		return summary, nil
	}

	for _, rec := range pending {
		result := s.routeOne(ctx, rec)
		summary.Results = append(summary.Results, result)
		switch result.Status {
		case secondary.ExtractionProcessed:
			summary.Processed++
		case secondary.ExtractionSkipped:
			summary.Skipped++
		case secondary.ExtractionFailed:
			summary.Failed++
		}
	}
	return summary, nil
}

// routeOne pushes a single extraction through the pipeline. Every path out
// of here stamps a terminal status on the extraction, so each record is
// consumed exactly once.
func (s *ExtractionServiceImpl) routeOne(ctx context.Context, rec *secondary.ExtractionRecord) primary.RouteResult {
	result := primary.RouteResult{ExtractionID: rec.ID}

	filtered := extraction.Filter(rec.Content)
	if !filtered.Accepted {
		if err := s.extractionRepo.MarkSkipped(ctx, rec.ID, filtered.Reason); err != nil {
			return s.fail(ctx, rec.ID, result, err)
		}
		result.Status = secondary.ExtractionSkipped
		result.Reason = filtered.Reason
		return result
	}

	category := rec.Category
	if category == "" {
		category = extraction.Classify(s.extractors, rec.Content)
	}
	table := extraction.TableFor(category)
	result.Table = table

	projectID, clientID, platformID, confidence := s.attribute(rec)
	result.ProjectID = projectID
	result.Confidence = confidence

	title := extraction.TitleFromContent(rec.Content)
	prefix := extraction.TruncatedTitle(title)
	existing, err := s.recordRepo.FindDuplicate(ctx, table, projectID, clientID, platformID, prefix)
	if err != nil {
		return s.fail(ctx, rec.ID, result, err)
	}
	if existing != nil {
		// Already known. Re-routing the same fragment converges on the
		// same record, so this counts as success.
		if err := s.extractionRepo.MarkProcessed(ctx, rec.ID); err != nil {
			return s.fail(ctx, rec.ID, result, err)
		}
		result.Status = secondary.ExtractionProcessed
		result.RecordID = existing.ID
		result.Reason = fmt.Sprintf("duplicate of %s", existing.ID)
		return result
	}

	record := &secondary.RecordEntry{
		ID:         uuid.NewString(),
		Title:      title,
		Content:    rec.Content,
		Category:   category,
		ProjectID:  projectID,
		ClientID:   clientID,
		PlatformID: platformID,
		Confidence: confidence,
	}
	if err := s.recordRepo.Insert(ctx, table, record); err != nil {
		return s.fail(ctx, rec.ID, result, err)
	}

	if err := s.extractionRepo.MarkProcessed(ctx, rec.ID); err != nil {
		return s.fail(ctx, rec.ID, result, err)
	}
	result.Status = secondary.ExtractionProcessed
	result.RecordID = record.ID
	return result
}

// attribute determines the owning project for an extraction. A carried
// path that resolves wins outright; a carried path that does not resolve
// leaves the fragment unattributed rather than guessing; otherwise the
// content is scored against the signature registry.
func (s *ExtractionServiceImpl) attribute(rec *secondary.ExtractionRecord) (projectID, clientID, platformID string, confidence float64) {
	if rec.ProjectPath != "" {
		entry := s.resolver.Resolve(rec.ProjectPath)
		if entry == nil {
			return "", "", "", 0
		}
		if sig := s.registry.Get(entry.ProjectID); sig != nil {
			return entry.ProjectID, sig.ClientID, sig.PlatformID, 1.0
		}
		return entry.ProjectID, "", "", 1.0
	}

	match := s.registry.Detect(rec.Content, s.fallbackProject)
	if sig := s.registry.Get(match.ProjectID); sig != nil {
		return match.ProjectID, sig.ClientID, sig.PlatformID, match.Confidence
	}
	return match.ProjectID, "", "", match.Confidence
}

// fail marks the extraction failed with the error in metadata. The batch
// keeps going; the marking error (if any) is swallowed because there is
// nothing left to do with this record.
func (s *ExtractionServiceImpl) fail(ctx context.Context, id string, result primary.RouteResult, err error) primary.RouteResult {
	_ = s.extractionRepo.MarkFailed(ctx, id, err.Error())
	result.Status = secondary.ExtractionFailed
	result.Reason = err.Error()
	return result
}

// Requeue flips a failed extraction back to pending. Manual only; there
// is no automatic retry.
func (s *ExtractionServiceImpl) Requeue(ctx context.Context, extractionID string) error {
	if extractionID == "" {
		return fmt.Errorf("extraction id is required")
	}
	return s.extractionRepo.Requeue(ctx, extractionID)
}

// Status reports queue depth per extraction status.
func (s *ExtractionServiceImpl) Status(ctx context.Context) (map[string]int, error) {
	return s.extractionRepo.CountByStatus(ctx)
}

// Submit enqueues a raw fragment for routing.
func (s *ExtractionServiceImpl) Submit(ctx context.Context, req primary.SubmitExtractionRequest) (string, error) {
	if req.Content == "" {
		return "", fmt.Errorf("content is required")
	}
	rec := &secondary.ExtractionRecord{
		ID:          uuid.NewString(),
		Content:     req.Content,
		Category:    req.Category,
		ProjectPath: req.ProjectPath,
		Priority:    req.Priority,
	}
	if err := s.extractionRepo.Create(ctx, rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}

// Ensure ExtractionServiceImpl implements the interface
var _ primary.ExtractionService = (*ExtractionServiceImpl)(nil)
