package entity

import "sort"

// Composite runs a fixed set of sub-extractors over the same text, then
// resolves their combined candidates into a single non-overlapping,
// deduplicated list.
type Composite struct {
	extractors []Extractor
}

// NewComposite builds a Composite over the given sub-extractors, tried in
// the order given.
func NewComposite(extractors ...Extractor) *Composite {
	return &Composite{extractors: extractors}
}

// DefaultComposite wires the built-in RegexExtractor and RuleExtractor.
func DefaultComposite() *Composite {
	return NewComposite(NewRegexExtractor(), NewRuleExtractor())
}

// duplicateWindow is the character distance within which two candidates of
// the same kind and surface form are considered the same mention rather
// than a distinct recurrence.
const duplicateWindow = 10

func (c *Composite) Extract(text string) ([]Candidate, error) {
	var all []Candidate
	for _, ex := range c.extractors {
		found, err := ex.Extract(text)
		if err != nil {
			return nil, err
		}
		all = append(all, found...)
	}

	resolved := resolveOverlaps(all)
	return dropNearDuplicates(resolved), nil
}

// resolveOverlaps picks, among any set of candidates whose spans intersect,
// the single best one: higher confidence wins; ties break to the earlier
// start, then to the longer span.
func resolveOverlaps(candidates []Candidate) []Candidate {
	ordered := make([]Candidate, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if a.SpanStart != b.SpanStart {
			return a.SpanStart < b.SpanStart
		}
		return (a.SpanEnd - a.SpanStart) > (b.SpanEnd - b.SpanStart)
	})

	var kept []Candidate
	for _, cand := range ordered {
		overlaps := false
		for _, k := range kept {
			if cand.SpanStart < k.SpanEnd && k.SpanStart < cand.SpanEnd {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, cand)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].SpanStart < kept[j].SpanStart })
	return kept
}

// dropNearDuplicates removes candidates that repeat an identical kind and
// surface form within duplicateWindow characters of an already-kept
// occurrence, keeping the earliest.
func dropNearDuplicates(candidates []Candidate) []Candidate {
	var out []Candidate
	lastSeen := make(map[string]int)
	for _, cand := range candidates {
		key := string(cand.Kind) + "\x00" + cand.CustomKind + "\x00" + cand.SurfaceForm
		if prevEnd, ok := lastSeen[key]; ok && cand.SpanStart-prevEnd < duplicateWindow {
			continue
		}
		out = append(out, cand)
		lastSeen[key] = cand.SpanEnd
	}
	return out
}
