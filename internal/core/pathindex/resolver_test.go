package pathindex

import (
	"testing"
	"time"
)

func testResolver() *Resolver {
	return New([]Entry{
		{Path: "/var/www/Studio/ai-team", ProjectID: "ai-team", Kind: KindServer},
		{Path: "/var/www/Studio/ai-team/sub", ProjectID: "ai-team-sub", Kind: KindServer},
		{Path: "/var/www/Studio/nextbid", ProjectID: "nextbid", Kind: KindServer},
		{Path: "/proj", ProjectID: "proj", Kind: KindLocal},
		{Path: "/project2", ProjectID: "project2", Kind: KindLocal},
	})
}

func TestResolve_LongestPrefixWins(t *testing.T) {
	r := testResolver()

	match := r.Resolve("/var/www/Studio/ai-team/sub/file.js")
	if match == nil {
		t.Fatal("expected a match")
	}
	if match.ProjectID != "ai-team-sub" {
		t.Errorf("expected deeper registration ai-team-sub, got %s", match.ProjectID)
	}
}

func TestResolve_ExactMatch(t *testing.T) {
	r := testResolver()

	match := r.Resolve("/var/www/Studio/ai-team")
	if match == nil || match.ProjectID != "ai-team" {
		t.Fatalf("expected ai-team, got %+v", match)
	}
}

func TestResolve_LegacyWindowsPath(t *testing.T) {
	r := testResolver()

	match := r.Resolve(`C:\Projects\NextBid_Dev\nextbid\src\auction.js`)
	if match == nil {
		t.Fatal("expected legacy path to resolve")
	}
	if match.ProjectID != "nextbid" {
		t.Errorf("expected nextbid, got %s", match.ProjectID)
	}
}

func TestResolve_BoundarySafety(t *testing.T) {
	r := testResolver()

	// "/project2/file.go" shares the "/proj" prefix as a raw string but
	// must resolve to project2, not proj.
	match := r.Resolve("/project2/file.go")
	if match == nil || match.ProjectID != "project2" {
		t.Fatalf("expected project2, got %+v", match)
	}

	// "/projectile" matches neither: no boundary after "/proj".
	if match := r.Resolve("/projectile/file.go"); match != nil {
		t.Errorf("expected no match for unregistered sibling, got %+v", match)
	}
}

func TestResolve_NoMatchReturnsNil(t *testing.T) {
	r := testResolver()

	for _, path := range []string{"", "   ", "/somewhere/else", "/var/www/Other"} {
		if match := r.Resolve(path); match != nil {
			t.Errorf("path %q: expected nil, got %+v", path, match)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`C:\Projects\NextBid_Dev\foo`, "/var/www/Studio/foo"},
		{`C:\Projects\other\bar`, "/var/www/Studio/other/bar"},
		{"/c/Projects/thing", "/var/www/Studio/thing"},
		{"/var/www/Studio/ai-team/", "/var/www/Studio/ai-team"},
		{`relative\path`, "relative/path"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.raw); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestCachedResolver(t *testing.T) {
	c := NewCached(testResolver(), time.Minute)

	first := c.Resolve("/var/www/Studio/ai-team/sub/file.js")
	second := c.Resolve("/var/www/Studio/ai-team/sub/file.js")
	if first == nil || second == nil {
		t.Fatal("expected matches")
	}
	if first.ProjectID != second.ProjectID {
		t.Errorf("cache changed the result: %s vs %s", first.ProjectID, second.ProjectID)
	}

	// Negative results are cached and stay negative.
	if c.Resolve("/nowhere") != nil || c.Resolve("/nowhere") != nil {
		t.Error("expected cached nil for unregistered path")
	}
}
