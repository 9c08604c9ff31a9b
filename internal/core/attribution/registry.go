// Package attribution contains the pure scoring logic that matches free
// text against registered project signatures.
// This is part of the Functional Core - no I/O, only pure functions over
// the immutable registry loaded at startup.
package attribution

import (
	"regexp"
	"strings"
)

// Signature is the immutable reference data for one registered project.
type Signature struct {
	ID            string
	Name          string
	ClientID      string
	PlatformID    string
	Aliases       []string
	Keywords      []string
	PathFragments []string

	// Weight dampens over-eager matching for generic projects.
	// A catch-all project should carry a weight below 1.0.
	Weight float64
}

// Registry holds all registered project signatures.
// Loaded once at startup and treated as immutable for the process lifetime.
type Registry struct {
	signatures []Signature
	byID       map[string]*Signature

	// keyword patterns are precompiled per signature, index-aligned
	// with signatures[i].Keywords.
	keywordPatterns [][]*regexp.Regexp
}

// NewRegistry builds a registry from the given signatures.
// Keyword patterns are compiled up front so Detect stays allocation-light.
func NewRegistry(signatures []Signature) *Registry {
	r := &Registry{
		signatures:      signatures,
		byID:            make(map[string]*Signature, len(signatures)),
		keywordPatterns: make([][]*regexp.Regexp, len(signatures)),
	}
	for i := range signatures {
		sig := &r.signatures[i]
		if sig.Weight == 0 {
			sig.Weight = 1.0
		}
		r.byID[sig.ID] = sig

		patterns := make([]*regexp.Regexp, len(sig.Keywords))
		for j, kw := range sig.Keywords {
			patterns[j] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(strings.ToLower(kw)) + `\b`)
		}
		r.keywordPatterns[i] = patterns
	}
	return r
}

// Get returns the signature for a project ID, or nil if unknown.
func (r *Registry) Get(projectID string) *Signature {
	return r.byID[projectID]
}

// All returns every registered signature.
func (r *Registry) All() []Signature {
	return r.signatures
}
