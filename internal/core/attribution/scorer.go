package attribution

import (
	"fmt"
	"math"
	"strings"
)

// Scoring weights per signal kind. Alias hits are the strongest evidence,
// path fragments next, keywords accumulate per occurrence.
const (
	aliasWeight    = 3.0
	fragmentWeight = 2.0
	keywordWeight  = 0.5

	// A scored match below this confidence is not trusted over the
	// fallback project. Prevents low-confidence project-hopping.
	confidenceFloor = 0.3

	fallbackConfidence = 0.1
)

// Match is the result of scoring content against the registry.
type Match struct {
	ProjectID      string
	Confidence     float64
	MatchedSignals []string
}

// Detect scores content against every registered signature and returns the
// best-guess project with a confidence in [0,1].
//
// Empty or whitespace-only content returns the fallback project at
// confidence 0 (unattributed). A best match below the confidence floor is
// replaced by the fallback project at confidence 0.1, unless the weak
// match already is the fallback.
func (r *Registry) Detect(content, fallback string) Match {
	if strings.TrimSpace(content) == "" {
		return Match{ProjectID: fallback, Confidence: 0}
	}

	lower := strings.ToLower(content)

	best := Match{}
	bestScore := 0.0
	for i := range r.signatures {
		score, signals := r.scoreSignature(lower, i)
		if score > bestScore {
			bestScore = score
			best = Match{
				ProjectID:      r.signatures[i].ID,
				Confidence:     math.Min(score/10, 1),
				MatchedSignals: signals,
			}
		}
	}

	if bestScore == 0 || (best.Confidence < confidenceFloor && best.ProjectID != fallback) {
		return Match{ProjectID: fallback, Confidence: fallbackConfidence}
	}
	return best
}

// scoreSignature accumulates the weighted score of one signature against
// lowercased content and collects the matched signal descriptions.
func (r *Registry) scoreSignature(lower string, idx int) (float64, []string) {
	sig := &r.signatures[idx]

	score := 0.0
	var signals []string

	for _, alias := range sig.Aliases {
		if alias == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(alias)) {
			score += aliasWeight * sig.Weight
			signals = append(signals, "alias:"+alias)
		}
	}

	for _, fragment := range sig.PathFragments {
		if fragment == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(fragment)) {
			score += fragmentWeight * sig.Weight
			signals = append(signals, "path:"+fragment)
		}
	}

	for j, pattern := range r.keywordPatterns[idx] {
		count := len(pattern.FindAllStringIndex(lower, -1))
		if count > 0 {
			score += keywordWeight * sig.Weight * float64(count)
			signals = append(signals, fmt.Sprintf("keyword:%s(%d)", sig.Keywords[j], count))
		}
	}

	return score, signals
}
