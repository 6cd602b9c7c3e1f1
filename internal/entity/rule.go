package entity

import (
	"regexp"
	"strings"

	"github.com/docmind/docmind/internal/store"
)

// namePrefixes precede a capitalized name, strongly indicating PERSON
// rather than the coarse regex heuristic's bare two-capitalized-words guess.
var namePrefixes = []string{
	"Mr.", "Mrs.", "Ms.", "Miss", "Dr.", "Prof.", "Sir", "Madam",
}

// organizationSuffixes follow a capitalized name, strongly indicating
// ORGANIZATION.
var organizationSuffixes = []string{
	"Inc.", "Inc", "Corp.", "Corp", "LLC", "Ltd.", "Ltd", "Company", "Co.",
	"Group", "Foundation", "University", "Institute",
}

var capitalizedRunPattern = regexp.MustCompile(`[A-Z][a-zA-Z'-]*(?:\s[A-Z][a-zA-Z'-]*)*`)

// RuleExtractor recognizes PERSON and ORGANIZATION mentions from an
// honorific prefix or a corporate suffix adjacent to a run of capitalized
// words, at higher confidence than RegexExtractor's bare capitalization
// guess since the prefix/suffix removes most of the ambiguity.
type RuleExtractor struct {
	namePrefixes         []string
	organizationSuffixes []string
}

// NewRuleExtractor builds a RuleExtractor preloaded with the built-in
// prefix and suffix tables.
func NewRuleExtractor() *RuleExtractor {
	return &RuleExtractor{
		namePrefixes:         namePrefixes,
		organizationSuffixes: organizationSuffixes,
	}
}

func (r *RuleExtractor) Extract(text string) ([]Candidate, error) {
	var out []Candidate
	out = append(out, r.extractNames(text)...)
	out = append(out, r.extractOrganizations(text)...)
	return out, nil
}

func (r *RuleExtractor) extractNames(text string) []Candidate {
	var out []Candidate
	for _, prefix := range r.namePrefixes {
		idx := 0
		for {
			pos := strings.Index(text[idx:], prefix)
			if pos < 0 {
				break
			}
			start := idx + pos
			rest := start + len(prefix)
			for rest < len(text) && text[rest] == ' ' {
				rest++
			}
			loc := capitalizedRunPattern.FindStringIndex(text[rest:])
			if loc != nil && loc[0] == 0 {
				out = append(out, Candidate{
					Kind:        store.EntityPerson,
					SurfaceForm: text[start : rest+loc[1]],
					Confidence:  0.85,
					SpanStart:   start,
					SpanEnd:     rest + loc[1],
				})
			}
			idx = start + len(prefix)
		}
	}
	return out
}

// organizationPattern matches one or more capitalized words immediately
// followed by a corporate suffix, built per-suffix so the suffix word
// itself isn't swallowed into the preceding capitalized run.
func organizationPattern(suffix string) *regexp.Regexp {
	return regexp.MustCompile(`\b[A-Z][a-zA-Z]+(?:\s[A-Z][a-zA-Z]+)*\s` + regexp.QuoteMeta(suffix))
}

func (r *RuleExtractor) extractOrganizations(text string) []Candidate {
	var out []Candidate
	for _, suffix := range r.organizationSuffixes {
		re := organizationPattern(suffix)
		for _, loc := range re.FindAllStringIndex(text, -1) {
			out = append(out, Candidate{
				Kind:        store.EntityOrganization,
				SurfaceForm: text[loc[0]:loc[1]],
				Confidence:  0.88,
				SpanStart:   loc[0],
				SpanEnd:     loc[1],
			})
		}
	}
	return out
}
