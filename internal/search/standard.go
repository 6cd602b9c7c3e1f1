package search

import "github.com/docmind/docmind/internal/invindex"

// standardSearch tokenizes and stems query the same way ingestion does,
// retrieves each term's postings, and scores every candidate document as
// Σ_term TF(term,d) × IDF(term). Terms with zero document frequency are
// rejected outright rather than scored as zero.
func standardSearch(index *invindex.Index, query string) *candidateSet {
	set := newCandidateSet()
	for _, term := range invindex.Tokenize(query) {
		if index.DF(term) == 0 {
			continue
		}
		idf := index.IDF(term)
		for _, p := range index.Postings(term) {
			set.add(p.DocumentID, p.TermFrequency*idf, term)
		}
	}
	return set
}
