// Package pathindex maps filesystem path strings to registered projects.
// This is part of the Functional Core - the index is immutable after
// construction and matching is deterministic: the longest registered path
// always wins over a shorter one that is also a prefix.
package pathindex

import (
	"sort"
	"strings"
)

// Kind distinguishes where a registered path lives.
type Kind string

const (
	KindLocal  Kind = "local"
	KindServer Kind = "server"
)

// Entry is one registered project path.
type Entry struct {
	Path      string
	ProjectID string
	Kind      Kind
}

// rootMapping translates a known legacy absolute-path prefix into the
// canonical server root before matching.
type rootMapping struct {
	prefix    string
	canonical string
}

// Legacy Windows development roots predate the move to the server layout.
// Ordered longest prefix first so the most specific mapping applies.
var legacyRoots = []rootMapping{
	{prefix: "C:/Projects/NextBid_Dev", canonical: "/var/www/Studio"},
	{prefix: "C:/Projects", canonical: "/var/www/Studio"},
	{prefix: "/c/Projects", canonical: "/var/www/Studio"},
}

// Resolver matches normalized paths against the registered entries.
type Resolver struct {
	entries []Entry // sorted by path length descending
}

// New builds a resolver over the given entries. Entries are copied and
// sorted by path length descending so the most specific (deepest)
// registered path is tried first. Length ties break lexicographically to
// keep matching deterministic.
func New(entries []Entry) *Resolver {
	sorted := make([]Entry, 0, len(entries))
	for _, e := range entries {
		e.Path = strings.TrimSuffix(normalizeSlashes(e.Path), "/")
		if e.Path == "" {
			continue
		}
		sorted = append(sorted, e)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i].Path) != len(sorted[j].Path) {
			return len(sorted[i].Path) > len(sorted[j].Path)
		}
		return sorted[i].Path < sorted[j].Path
	})
	return &Resolver{entries: sorted}
}

// Resolve maps a raw path to the registered entry owning it.
// Returns nil when no registered path matches; callers must treat nil as
// "leave unattributed", never as "attribute to a default".
func (r *Resolver) Resolve(rawPath string) *Entry {
	path := Normalize(rawPath)
	if path == "" {
		return nil
	}

	for i := range r.entries {
		e := &r.entries[i]
		if path == e.Path {
			match := *e
			return &match
		}
		// Prefix matches require a path boundary: "/proj" must not
		// claim files under "/project2".
		if strings.HasPrefix(path, e.Path+"/") {
			match := *e
			return &match
		}
	}
	return nil
}

// Entries returns the registered entries in matching order.
func (r *Resolver) Entries() []Entry {
	return r.entries
}

// Normalize converts a raw path into the canonical representation used for
// matching: forward slashes, no trailing slash, legacy roots translated.
func Normalize(rawPath string) string {
	path := strings.TrimSpace(normalizeSlashes(rawPath))
	if path == "" {
		return ""
	}

	for _, m := range legacyRoots {
		if path == m.prefix {
			path = m.canonical
			break
		}
		if strings.HasPrefix(path, m.prefix+"/") {
			path = m.canonical + path[len(m.prefix):]
			break
		}
	}

	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

func normalizeSlashes(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}
