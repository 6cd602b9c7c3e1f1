package search

import (
	"sort"
	"strings"
)

const maxMatchesPerTerm = 10

// highlights finds every occurrence of each matched term in content,
// case-insensitively, capped at maxMatchesPerTerm occurrences per term, then
// sorts the combined ranges by start position and merges any overlaps so
// callers never see two spans that overlap.
func highlights(content string, matchedTerms []string) []Range {
	if len(matchedTerms) == 0 || len(content) == 0 {
		return []Range{}
	}

	lowerContent := strings.ToLower(content)
	ranges := make([]Range, 0, len(matchedTerms)*3)

	for _, term := range matchedTerms {
		if len(term) == 0 {
			continue
		}
		lowerTerm := strings.ToLower(term)
		start := 0
		matchCount := 0

		for matchCount < maxMatchesPerTerm {
			idx := strings.Index(lowerContent[start:], lowerTerm)
			if idx == -1 {
				break
			}
			absStart := start + idx
			ranges = append(ranges, Range{Start: absStart, End: absStart + len(term)})
			start = absStart + len(term)
			matchCount++
		}
	}

	if len(ranges) == 0 {
		return []Range{}
	}

	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].Start < ranges[j].Start
	})

	return mergeOverlapping(ranges)
}

func mergeOverlapping(sorted []Range) []Range {
	out := make([]Range, 0, len(sorted))
	cur := sorted[0]
	for _, r := range sorted[1:] {
		if r.Start <= cur.End {
			if r.End > cur.End {
				cur.End = r.End
			}
			continue
		}
		out = append(out, cur)
		cur = r
	}
	out = append(out, cur)
	return out
}

// snippet extracts a window of length around the first occurrence of any
// matched term, truncating with "…" markers where the window doesn't reach
// the start/end of content. With no matches it falls back to the leading
// window of content.
func snippet(content string, matchedTerms []string, length int) string {
	if length <= 0 {
		length = DefaultSnippetLength
	}
	if len(content) <= length {
		return content
	}

	pos := firstMatchPosition(content, matchedTerms)

	half := length / 2
	start := pos - half
	if start < 0 {
		start = 0
	}
	end := start + length
	if end > len(content) {
		end = len(content)
		start = end - length
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	if start > 0 {
		b.WriteString("…")
	}
	b.WriteString(content[start:end])
	if end < len(content) {
		b.WriteString("…")
	}
	return b.String()
}

func firstMatchPosition(content string, matchedTerms []string) int {
	lowerContent := strings.ToLower(content)
	best := -1
	for _, term := range matchedTerms {
		if len(term) == 0 {
			continue
		}
		idx := strings.Index(lowerContent, strings.ToLower(term))
		if idx == -1 {
			continue
		}
		if best == -1 || idx < best {
			best = idx
		}
	}
	if best == -1 {
		return 0
	}
	return best
}
