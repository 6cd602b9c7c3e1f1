package invindex

import "math"

// IndexDocument tokenizes a document's content and records its postings,
// first removing any prior postings for the same document id so that
// re-ingestion of a modified document leaves no stale entries.
func (ix *Index) IndexDocument(documentID, content string) {
	tokens := Tokenize(content)

	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.unindexLocked(documentID)

	if len(tokens) == 0 {
		return
	}

	for pos, tok := range tokens {
		docs, ok := ix.postings[tok]
		if !ok {
			docs = make(map[string]*posting)
			ix.postings[tok] = docs
		}
		p, ok := docs[documentID]
		if !ok {
			p = &posting{}
			docs[documentID] = p
		}
		p.count++
		p.positions = append(p.positions, pos)
	}
	ix.docTokenTotal[documentID] = len(tokens)
}

// Unindex removes all postings for a document, decrementing df for every
// term it contributed to and dropping terms whose df reaches zero.
func (ix *Index) Unindex(documentID string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.unindexLocked(documentID)
}

func (ix *Index) unindexLocked(documentID string) {
	for term, docs := range ix.postings {
		if _, ok := docs[documentID]; ok {
			delete(docs, documentID)
			if len(docs) == 0 {
				delete(ix.postings, term)
			}
		}
	}
	delete(ix.docTokenTotal, documentID)
}

// Postings returns the (document, term-frequency, positions) triples for
// term, in no particular order.
func (ix *Index) Postings(term string) []Posting {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	docs, ok := ix.postings[term]
	if !ok {
		return nil
	}

	out := make([]Posting, 0, len(docs))
	for docID, p := range docs {
		total := ix.docTokenTotal[docID]
		var tf float64
		if total > 0 {
			tf = float64(p.count) / float64(total)
		}
		positions := make([]int, len(p.positions))
		copy(positions, p.positions)
		out = append(out, Posting{DocumentID: docID, TermFrequency: tf, Positions: positions})
	}
	return out
}

// DF returns the document frequency of term: the number of documents
// containing at least one occurrence.
func (ix *Index) DF(term string) int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.postings[term])
}

// DocCount returns the number of documents currently indexed.
func (ix *Index) DocCount() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.docTokenTotal)
}

// IDF computes ln(N/df) for term, where N is DocCount(). Zero df or zero N
// yields a score of 0 rather than a division error or -Inf.
func (ix *Index) IDF(term string) float64 {
	df := ix.DF(term)
	n := ix.DocCount()
	if df == 0 || n == 0 {
		return 0
	}
	return math.Log(float64(n) / float64(df))
}

// Terms returns every term currently carrying at least one posting, in no
// particular order. Used by fuzzy and wildcard search to enumerate the
// vocabulary a query must be matched against.
func (ix *Index) Terms() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	out := make([]string, 0, len(ix.postings))
	for term := range ix.postings {
		out = append(out, term)
	}
	return out
}
