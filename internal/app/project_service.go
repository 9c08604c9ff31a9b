package app

import (
	"context"

	"github.com/example/curator/internal/core/attribution"
	"github.com/example/curator/internal/core/pathindex"
	"github.com/example/curator/internal/ports/primary"
)

// ProjectServiceImpl implements the ProjectService interface over the
// immutable registries loaded at startup.
type ProjectServiceImpl struct {
	registry        *attribution.Registry
	resolver        PathResolver
	fallbackProject string
}

// NewProjectService creates a new ProjectService with injected
// dependencies.
func NewProjectService(registry *attribution.Registry, resolver PathResolver, fallbackProject string) *ProjectServiceImpl {
	return &ProjectServiceImpl{
		registry:        registry,
		resolver:        resolver,
		fallbackProject: fallbackProject,
	}
}

// Detect scores content against the signature registry.
func (s *ProjectServiceImpl) Detect(ctx context.Context, content string) (*primary.Attribution, error) {
	match := s.registry.Detect(content, s.fallbackProject)

	attr := &primary.Attribution{
		ProjectID:      match.ProjectID,
		Confidence:     match.Confidence,
		MatchedSignals: match.MatchedSignals,
	}
	if sig := s.registry.Get(match.ProjectID); sig != nil {
		attr.ProjectName = sig.Name
	}
	return attr, nil
}

// ResolvePath maps a raw path to a registered project path.
func (s *ProjectServiceImpl) ResolvePath(ctx context.Context, rawPath string) (*primary.PathResolution, error) {
	resolution := &primary.PathResolution{
		NormalizedPath: pathindex.Normalize(rawPath),
	}
	if entry := s.resolver.Resolve(rawPath); entry != nil {
		resolution.ProjectID = entry.ProjectID
		resolution.Kind = string(entry.Kind)
		resolution.Matched = true
	}
	return resolution, nil
}

// ListProjects returns every registered signature.
func (s *ProjectServiceImpl) ListProjects(ctx context.Context) ([]*primary.Project, error) {
	signatures := s.registry.All()
	projects := make([]*primary.Project, len(signatures))
	for i, sig := range signatures {
		projects[i] = &primary.Project{
			ID:            sig.ID,
			Name:          sig.Name,
			ClientID:      sig.ClientID,
			PlatformID:    sig.PlatformID,
			Aliases:       sig.Aliases,
			Keywords:      sig.Keywords,
			PathFragments: sig.PathFragments,
			Weight:        sig.Weight,
		}
	}
	return projects, nil
}

// Ensure ProjectServiceImpl implements the interface
var _ primary.ProjectService = (*ProjectServiceImpl)(nil)
