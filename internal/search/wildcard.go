package search

import (
	"regexp"
	"strings"

	"github.com/docmind/docmind/internal/invindex"
)

// wildcardSearch translates a query of `*` (any run of characters) and `?`
// (any single character) into a regular expression, matches it against
// every term in the index's vocabulary, and scores each matching term's
// contribution as TF(t,d) × IDF(t), same as standardSearch but over the
// expanded term set.
func wildcardSearch(index *invindex.Index, query string) *candidateSet {
	set := newCandidateSet()

	for _, raw := range strings.Fields(query) {
		pattern := wildcardToRegexp(raw)
		if pattern == nil {
			continue
		}
		for _, t := range index.Terms() {
			if !pattern.MatchString(t) {
				continue
			}
			if index.DF(t) == 0 {
				continue
			}
			idf := index.IDF(t)
			for _, p := range index.Postings(t) {
				set.add(p.DocumentID, p.TermFrequency*idf, t)
			}
		}
	}
	return set
}

func wildcardToRegexp(raw string) *regexp.Regexp {
	lower := strings.ToLower(raw)
	var b strings.Builder
	b.WriteString("^")
	for _, r := range lower {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil
	}
	return re
}
