package extraction

import "strings"

// DedupTitleLength is the fixed truncation applied to normalized titles
// when building duplicate keys.
const DedupTitleLength = 80

// titleLength bounds titles derived from raw content.
const titleLength = 120

// NormalizeTitle lowercases a title and collapses internal whitespace so
// cosmetic differences do not defeat duplicate detection.
func NormalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}

// TruncatedTitle returns the normalized title cut to the dedup length.
func TruncatedTitle(title string) string {
	normalized := NormalizeTitle(title)
	runes := []rune(normalized)
	if len(runes) > DedupTitleLength {
		return string(runes[:DedupTitleLength])
	}
	return normalized
}

// DedupKey builds the composite duplicate key: attribution scope plus the
// normalized, truncated title. Records sharing a key are duplicates; the
// first-created occurrence is authoritative.
func DedupKey(projectID, clientID, platformID, title string) string {
	return projectID + "|" + clientID + "|" + platformID + "|" + TruncatedTitle(title)
}

// TitleFromContent derives a record title from raw fragment content:
// the first non-empty line, whitespace-collapsed and length-bounded.
func TitleFromContent(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		runes := []rune(line)
		if len(runes) > titleLength {
			return string(runes[:titleLength])
		}
		return line
	}
	return ""
}
