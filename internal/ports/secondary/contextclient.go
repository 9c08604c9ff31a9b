package secondary

import "context"

// ProjectContext is supplementary context fetched from a sibling service.
type ProjectContext struct {
	ProjectID   string `json:"project_id"`
	Summary     string `json:"summary"`
	ActiveTasks int    `json:"active_tasks"`
}

// ContextClient defines the secondary port for supplementary context
// lookups against sibling services. Fetches are optional and
// failure-tolerant: implementations return (nil, nil) when the service is
// unreachable or answers badly, and callers must cope with nil.
type ContextClient interface {
	FetchProjectContext(ctx context.Context, projectID string) (*ProjectContext, error)
}
