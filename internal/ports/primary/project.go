package primary

import "context"

// Project is a registered project signature.
type Project struct {
	ID            string
	Name          string
	ClientID      string
	PlatformID    string
	Aliases       []string
	Keywords      []string
	PathFragments []string
	Weight        float64
}

// Attribution is the result of scoring free text.
type Attribution struct {
	ProjectID      string
	ProjectName    string
	Confidence     float64
	MatchedSignals []string
}

// PathResolution is the result of resolving a raw path.
type PathResolution struct {
	NormalizedPath string
	ProjectID      string
	Kind           string
	Matched        bool
}

// ProjectService is the primary port for the attribution registries.
type ProjectService interface {
	// Detect scores content against the signature registry.
	Detect(ctx context.Context, content string) (*Attribution, error)

	// ResolvePath maps a raw path to a registered project path.
	// An unmatched path returns Matched=false, never a default project.
	ResolvePath(ctx context.Context, rawPath string) (*PathResolution, error)

	// ListProjects returns every registered signature.
	ListProjects(ctx context.Context) ([]*Project, error)
}
