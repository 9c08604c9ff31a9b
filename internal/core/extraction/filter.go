// Package extraction contains the pure classification logic for captured
// fragments: noise filtering, category mapping, duplicate keys, and the
// static extractor registration table.
// This is part of the Functional Core - no I/O, only pure functions.
package extraction

import (
	"fmt"
	"regexp"
	"strings"
)

// Content length bounds for the noise filter. Fragments outside these are
// skipped, not failed - skip is not an error.
const (
	minContentLength = 10
	maxContentLength = 8000
)

// ansiPattern matches terminal control sequences left in captured output.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// FilterResult is the outcome of the noise filter.
type FilterResult struct {
	Accepted bool
	Reason   string // populated when not accepted
}

// Filter rejects content that is too short, too long, or matching one of
// the fixed noise signatures.
func Filter(content string) FilterResult {
	trimmed := strings.TrimSpace(content)

	if len(trimmed) < minContentLength {
		return FilterResult{Reason: fmt.Sprintf("content under %d characters", minContentLength)}
	}
	if len(trimmed) > maxContentLength {
		return FilterResult{Reason: fmt.Sprintf("content over %d characters", maxContentLength)}
	}
	if ansiPattern.MatchString(trimmed) {
		return FilterResult{Reason: "terminal control sequences"}
	}
	if isTabularDump(trimmed) {
		return FilterResult{Reason: "tabular dump fragment"}
	}
	if isTruncatedLine(trimmed) {
		return FilterResult{Reason: "truncated line"}
	}
	return FilterResult{Accepted: true}
}

// isTabularDump detects box-drawing table fragments captured from
// terminal output.
func isTabularDump(content string) bool {
	if strings.Count(content, "│")+strings.Count(content, "|") >= 6 {
		return true
	}
	return strings.Contains(content, "├──") || strings.Contains(content, "┼") ||
		strings.Contains(content, "─────")
}

// isTruncatedLine detects single lines cut off mid-sentence by the capture.
func isTruncatedLine(content string) bool {
	if strings.Contains(content, "\n") {
		return false
	}
	return strings.HasSuffix(content, "…") || strings.HasSuffix(content, "[truncated]")
}
