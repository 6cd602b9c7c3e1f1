package entity

import (
	"regexp"

	"github.com/docmind/docmind/internal/store"
)

// pattern is one registered regex rule: a kind, the compiled matcher, and
// the confidence assigned to every match it produces.
type pattern struct {
	kind       store.EntityKind
	customKind string
	re         *regexp.Regexp
	confidence float64
}

// RegexExtractor recognizes structured mentions (emails, URLs, phone
// numbers, dates, money amounts, and the like) via a fixed table of
// patterns, plus any patterns registered at runtime with AddPattern. Coarse
// PERSON and ORGANIZATION patterns are included too, at lower confidence
// than RuleExtractor's prefix/suffix heuristics, to catch names that never
// appear with a title or corporate suffix.
type RegexExtractor struct {
	patterns []pattern
}

// NewRegexExtractor builds a RegexExtractor preloaded with the built-in
// pattern table.
func NewRegexExtractor() *RegexExtractor {
	r := &RegexExtractor{}
	for _, p := range defaultPatterns {
		r.patterns = append(r.patterns, p)
	}
	return r
}

var defaultPatterns = []pattern{
	{kind: store.EntityEmail, confidence: 0.95, re: regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)},
	{kind: store.EntityURL, confidence: 0.95, re: regexp.MustCompile(`https?://[^\s<>"]+`)},
	{kind: store.EntitySSN, confidence: 0.95, re: regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
	{kind: store.EntityPhone, confidence: 0.90, re: regexp.MustCompile(`(?:\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`)},
	{kind: store.EntityIPAddress, confidence: 0.90, re: regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)},
	{kind: store.EntityMoney, confidence: 0.90, re: regexp.MustCompile(`\$\d+(?:,\d{3})*(?:\.\d{2})?`)},
	{kind: store.EntityDate, confidence: 0.85, re: regexp.MustCompile(`\b\d{1,4}[-/]\d{1,2}[-/]\d{1,4}\b`)},
	{kind: store.EntityTime, confidence: 0.85, re: regexp.MustCompile(`\b\d{1,2}:\d{2}(?::\d{2})?\s?(?:[AaPp][Mm])?\b`)},
	{kind: store.EntityCreditCard, confidence: 0.80, re: regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`)},
	{kind: store.EntityFilePath, confidence: 0.75, re: regexp.MustCompile(`(?:[A-Za-z]:\\|/)[\w./\\-]+`)},
	{kind: store.EntityOrganization, confidence: 0.70, re: regexp.MustCompile(`\b[A-Z][a-zA-Z]+(?:\s[A-Z][a-zA-Z]+)*\s(?:Inc|Corp|LLC|Ltd|Company)\.?\b`)},
	{kind: store.EntityPerson, confidence: 0.60, re: regexp.MustCompile(`\b[A-Z][a-z]+\s[A-Z][a-z]+\b`)},
}

// AddPattern registers a custom pattern at runtime. kind should usually be
// store.EntityCustom, with customKind naming the caller's own category;
// built-in kinds may also be extended with additional patterns.
func (r *RegexExtractor) AddPattern(kind store.EntityKind, customKind, expr string, confidence float64) error {
	re, err := regexp.Compile(expr)
	if err != nil {
		return err
	}
	r.patterns = append(r.patterns, pattern{kind: kind, customKind: customKind, re: re, confidence: confidence})
	return nil
}

func (r *RegexExtractor) Extract(text string) ([]Candidate, error) {
	var out []Candidate
	for _, p := range r.patterns {
		locs := p.re.FindAllStringIndex(text, -1)
		for _, loc := range locs {
			out = append(out, Candidate{
				Kind:        p.kind,
				CustomKind:  p.customKind,
				SurfaceForm: text[loc[0]:loc[1]],
				Confidence:  p.confidence,
				SpanStart:   loc[0],
				SpanEnd:     loc[1],
			})
		}
	}
	return out, nil
}
