// Package httpclient contains HTTP implementations of outbound ports.
package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/example/curator/internal/ports/secondary"
)

// ContextClient fetches supplementary project context from a sibling
// service over HTTP. Every failure path returns (nil, nil): the pipeline
// works the same with or without this context, so an unreachable or
// misbehaving service must never block routing.
type ContextClient struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewContextClient creates a client for the given base URL. rps caps the
// outbound request rate; requests over the cap are skipped, not queued.
func NewContextClient(baseURL string, timeout time.Duration, rps float64) *ContextClient {
	if rps <= 0 {
		rps = 1
	}
	return &ContextClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// FetchProjectContext retrieves context for a project. Returns (nil, nil)
// when the service is unavailable, answers badly, or the rate cap is hit.
func (c *ContextClient) FetchProjectContext(ctx context.Context, projectID string) (*secondary.ProjectContext, error) {
	if c.baseURL == "" || projectID == "" {
		return nil, nil
	}
	if !c.limiter.Allow() {
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s/projects/%s/context", c.baseURL, url.PathEscape(projectID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var pc secondary.ProjectContext
	if err := json.NewDecoder(resp.Body).Decode(&pc); err != nil {
		return nil, nil
	}
	return &pc, nil
}

// Ensure ContextClient implements the interface
var _ secondary.ContextClient = (*ContextClient)(nil)
