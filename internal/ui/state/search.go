package state

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FilterIndices returns the indices of labels matching query, in their
// original order. Fuzzy matches win; when there are none a plain
// case-insensitive substring match is used instead.
func FilterIndices(labels []string, query string) []int {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		out := make([]int, len(labels))
		for i := range labels {
			out[i] = i
		}
		return out
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		out := make([]int, 0, len(matches))
		for i := range labels {
			if _, ok := matches[i]; ok {
				out = append(out, i)
			}
		}
		return out
	}
	lower := strings.ToLower(trimmed)
	out := make([]int, 0, len(labels))
	for i, label := range labels {
		if strings.Contains(strings.ToLower(label), lower) {
			out = append(out, i)
		}
	}
	return out
}

// MatchingLines returns the zero-based line numbers of text that contain
// query, compared case-insensitively.
func MatchingLines(text, query string) []int {
	if query == "" || text == "" {
		return nil
	}
	lower := strings.ToLower(query)
	var out []int
	for i, line := range strings.Split(text, "\n") {
		if strings.Contains(strings.ToLower(line), lower) {
			out = append(out, i)
		}
	}
	return out
}
