package extraction

import (
	"regexp"
	"strings"
)

// Extractor refines the category hint for a fragment. Extractors are
// assembled into a static registration table at startup; there is no
// runtime plugin discovery.
type Extractor interface {
	// Name identifies the extractor in routing metadata.
	Name() string

	// Matches reports whether this extractor recognizes the content.
	Matches(content string) bool

	// Extract produces the category candidate for matched content.
	Extract(content string) Candidate
}

// Candidate is an extractor's classification of a fragment.
type Candidate struct {
	Category string
}

// DefaultExtractors returns the built-in registration table, in priority
// order: the first extractor that matches supplies the category hint.
func DefaultExtractors() []Extractor {
	return []Extractor{
		todoExtractor{},
		errorExtractor{},
		decisionExtractor{},
		lessonExtractor{},
	}
}

// Classify runs the extractors in order and returns the first matching
// category, or empty when none match.
func Classify(extractors []Extractor, content string) string {
	for _, e := range extractors {
		if e.Matches(content) {
			return e.Extract(content).Category
		}
	}
	return ""
}

// todoExtractor recognizes task markers left in notes and code fragments.
type todoExtractor struct{}

var todoPattern = regexp.MustCompile(`(?i)\b(TODO|FIXME|XXX)\b\s*[:\-]?`)

func (todoExtractor) Name() string { return "todo-marker" }

func (todoExtractor) Matches(content string) bool {
	return todoPattern.MatchString(content) ||
		strings.HasPrefix(strings.ToLower(strings.TrimSpace(content)), "todo")
}

func (todoExtractor) Extract(string) Candidate {
	return Candidate{Category: "todo"}
}

// errorExtractor recognizes error mentions and stack trace fragments.
type errorExtractor struct{}

var errorMarkers = []string{
	"Error:",
	"ERROR:",
	"error:",
	"panic:",
	"fatal:",
	"Exception:",
	"Traceback",
	"stack trace",
	"FAILED",
}

func (errorExtractor) Name() string { return "error-trace" }

func (errorExtractor) Matches(content string) bool {
	for _, marker := range errorMarkers {
		if strings.Contains(content, marker) {
			return true
		}
	}
	return false
}

func (errorExtractor) Extract(string) Candidate {
	return Candidate{Category: "bug"}
}

// decisionExtractor recognizes recorded decisions.
type decisionExtractor struct{}

var decisionPhrases = []string{
	"decided to",
	"decision:",
	"we will use",
	"we chose",
	"going with",
	"agreed on",
}

func (decisionExtractor) Name() string { return "decision-phrase" }

func (decisionExtractor) Matches(content string) bool {
	lower := strings.ToLower(content)
	for _, phrase := range decisionPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func (decisionExtractor) Extract(string) Candidate {
	return Candidate{Category: "decision"}
}

// lessonExtractor recognizes retrospective learnings.
type lessonExtractor struct{}

var lessonPhrases = []string{
	"lesson:",
	"lesson learned",
	"til:",
	"today i learned",
	"turns out",
}

func (lessonExtractor) Name() string { return "lesson-phrase" }

func (lessonExtractor) Matches(content string) bool {
	lower := strings.ToLower(content)
	for _, phrase := range lessonPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func (lessonExtractor) Extract(string) Candidate {
	return Candidate{Category: "lesson"}
}
