package httpclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/example/curator/internal/adapters/httpclient"
	"github.com/example/curator/internal/ports/secondary"
)

func TestContextClient_FetchProjectContext(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches context on 200", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/projects/nextbid/context" {
				t.Errorf("path = %q, want /projects/nextbid/context", r.URL.Path)
			}
			json.NewEncoder(w).Encode(secondary.ProjectContext{
				ProjectID: "nextbid", Summary: "auction platform", ActiveTasks: 3,
			})
		}))
		defer srv.Close()

		client := httpclient.NewContextClient(srv.URL, time.Second, 10)
		got, err := client.FetchProjectContext(ctx, "nextbid")
		if err != nil {
			t.Fatalf("FetchProjectContext failed: %v", err)
		}
		if got == nil {
			t.Fatal("expected context, got nil")
		}
		if got.Summary != "auction platform" || got.ActiveTasks != 3 {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("returns nil on server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := httpclient.NewContextClient(srv.URL, time.Second, 10)
		got, err := client.FetchProjectContext(ctx, "nextbid")
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if got != nil {
			t.Errorf("expected nil context, got %+v", got)
		}
	})

	t.Run("returns nil on malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer srv.Close()

		client := httpclient.NewContextClient(srv.URL, time.Second, 10)
		got, err := client.FetchProjectContext(ctx, "nextbid")
		if err != nil || got != nil {
			t.Errorf("got (%+v, %v), want (nil, nil)", got, err)
		}
	})

	t.Run("returns nil when unconfigured", func(t *testing.T) {
		client := httpclient.NewContextClient("", time.Second, 10)
		got, err := client.FetchProjectContext(ctx, "nextbid")
		if err != nil || got != nil {
			t.Errorf("got (%+v, %v), want (nil, nil)", got, err)
		}
	})

	t.Run("skips requests over the rate cap", func(t *testing.T) {
		var hits int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			json.NewEncoder(w).Encode(secondary.ProjectContext{ProjectID: "nextbid"})
		}))
		defer srv.Close()

		// Burst of one; the second immediate call must be skipped.
		client := httpclient.NewContextClient(srv.URL, time.Second, 0.001)
		if got, _ := client.FetchProjectContext(ctx, "nextbid"); got == nil {
			t.Fatal("first call should pass the limiter")
		}
		if got, _ := client.FetchProjectContext(ctx, "nextbid"); got != nil {
			t.Error("second call should be skipped by the limiter")
		}
		if hits != 1 {
			t.Errorf("hits = %d, want 1", hits)
		}
	})
}
