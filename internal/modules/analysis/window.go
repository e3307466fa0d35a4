package analysis

import (
	"sort"
	"strings"
)

const (
	// DefaultContextRadius is one paragraph either side of a change.
	// Aggressive, deliberately: token savings are the whole point.
	DefaultContextRadius = 1
	// differentialThreshold is the changed fraction above which differential
	// analysis stops paying off and callers must fall back to full analysis.
	differentialThreshold = 0.6
)

// SplitParagraphs splits content on blank-line boundaries. Heuristic by
// intent: poetry and dialogue will misfire, matching client behavior.
func SplitParagraphs(content string) []string {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	parts := strings.Split(normalized, "\n\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// BuildContextWindow selects, for each changed paragraph index, the
// neighborhood [i-radius, i+radius], deduplicated and merged into contiguous
// runs. Pure function over its inputs.
func BuildContextWindow(paragraphs []string, changedIndices []int, radius int) []Window {
	if len(paragraphs) == 0 || len(changedIndices) == 0 {
		return nil
	}
	if radius < 0 {
		radius = DefaultContextRadius
	}

	changed := make(map[int]bool, len(changedIndices))
	include := make(map[int]bool)
	for _, idx := range changedIndices {
		if idx < 0 || idx >= len(paragraphs) {
			continue
		}
		changed[idx] = true
		for i := idx - radius; i <= idx+radius; i++ {
			if i >= 0 && i < len(paragraphs) {
				include[i] = true
			}
		}
	}

	indices := make([]int, 0, len(include))
	for i := range include {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	windows := make([]Window, 0, len(indices))
	for _, i := range indices {
		windows = append(windows, Window{
			Index:     i,
			Text:      paragraphs[i],
			IsChanged: changed[i],
		})
	}
	return windows
}

// ExceedsChangeThreshold reports whether too much of the document changed for
// differential analysis to be worth it (>60% of paragraphs).
func ExceedsChangeThreshold(changedCount, totalParagraphs int) bool {
	if totalParagraphs == 0 {
		return true
	}
	return float64(changedCount)/float64(totalParagraphs) > differentialThreshold
}
