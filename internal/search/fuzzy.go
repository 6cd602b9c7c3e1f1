package search

import (
	"github.com/antzucaro/matchr"
	"github.com/docmind/docmind/internal/invindex"
)

// fuzzySearch considers, for each query term, every index term within
// Levenshtein distance ⌊max(|q|,|t'|)/3⌋ and scores the contribution
// TF(t',d) × IDF(t') × (1 − dist/max_len).
func fuzzySearch(index *invindex.Index, query string) *candidateSet {
	set := newCandidateSet()
	terms := index.Terms()

	for _, qterm := range invindex.Tokenize(query) {
		for _, t := range terms {
			maxLen := len(qterm)
			if len(t) > maxLen {
				maxLen = len(t)
			}
			if maxLen == 0 {
				continue
			}
			threshold := maxLen / 3
			dist := matchr.Levenshtein(qterm, t)
			if dist > threshold {
				continue
			}
			if index.DF(t) == 0 {
				continue
			}

			idf := index.IDF(t)
			similarity := 1 - float64(dist)/float64(maxLen)
			for _, p := range index.Postings(t) {
				set.add(p.DocumentID, p.TermFrequency*idf*similarity, t)
			}
		}
	}
	return set
}
