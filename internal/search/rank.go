package search

import (
	"sort"
	"time"

	"github.com/docmind/docmind/internal/invindex"
	"github.com/docmind/docmind/internal/store"
)

// titleBoostPerMatch is the flat relevance credit given per query-term
// occurrence found in a document's title, applied before min-max
// normalization. It exists so that, holding freshness and popularity equal,
// a document whose title matches the query strictly more often always ranks
// above a peer that matches less in the title (the content-only TF×IDF
// scores the two modes produce are otherwise incomparable in scale).
const titleBoostPerMatch = 1.0

// rankedCandidate pairs a raw mode candidate with the document it resolved
// to, once relevance has been normalized and freshness/popularity computed.
type rankedCandidate struct {
	doc        *store.Document
	relevance  float64
	freshness  float64
	popularity float64
	score      float64
	matched    []string
}

// rank normalizes relevance across the candidate set (min-max, so modes
// with unbounded TF×IDF sums become comparable to the [0,1]-scaled
// freshness/popularity terms), folds in a title-match boost, computes the
// blended score for each, and returns them sorted best-first. Ties break on:
// higher relevance, then more recent modification, then lexicographic title,
// then document id. queryTerms is the tokenized query text, used only for
// the title-match boost; a nil/empty slice disables it.
func rank(w Weights, candidates []*candidate, docs map[string]*store.Document, now time.Time, queryTerms []string) []rankedCandidate {
	termSet := make(map[string]struct{}, len(queryTerms))
	for _, t := range queryTerms {
		termSet[t] = struct{}{}
	}

	boosted := make(map[string]float64, len(candidates))
	minRel, maxRel := 0.0, 0.0
	first := true
	for _, c := range candidates {
		doc, ok := docs[c.documentID]
		if !ok {
			continue
		}
		rel := c.relevance + titleBoostPerMatch*float64(titleMatchCount(doc.Title, termSet))
		boosted[c.documentID] = rel
		if first {
			minRel, maxRel = rel, rel
			first = false
			continue
		}
		if rel < minRel {
			minRel = rel
		}
		if rel > maxRel {
			maxRel = rel
		}
	}
	spread := maxRel - minRel

	out := make([]rankedCandidate, 0, len(candidates))
	for _, c := range candidates {
		doc, ok := docs[c.documentID]
		if !ok {
			continue
		}

		rel := boosted[c.documentID]
		normRel := 1.0
		if spread > 0 {
			normRel = (rel - minRel) / spread
		}

		fresh := freshness(doc.ModifiedAt, now)
		pop := popularity(doc)
		s := score(w, normRel, fresh, pop)

		out = append(out, rankedCandidate{
			doc:        doc,
			relevance:  normRel,
			freshness:  fresh,
			popularity: pop,
			score:      s,
			matched:    c.matchedTerms,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.relevance != b.relevance {
			return a.relevance > b.relevance
		}
		if !a.doc.ModifiedAt.Equal(b.doc.ModifiedAt) {
			return a.doc.ModifiedAt.After(b.doc.ModifiedAt)
		}
		if a.doc.Title != b.doc.Title {
			return a.doc.Title < b.doc.Title
		}
		return a.doc.ID < b.doc.ID
	})

	return out
}

// titleMatchCount counts how many tokens of title (stemmed the same way the
// index tokenizes content) occur in terms, with repetition — so a title
// that repeats a query term outscores one that mentions it once.
func titleMatchCount(title string, terms map[string]struct{}) int {
	if len(terms) == 0 || title == "" {
		return 0
	}
	count := 0
	for _, tok := range invindex.Tokenize(title) {
		if _, ok := terms[tok]; ok {
			count++
		}
	}
	return count
}

// diversify caps how many results of the same kind (always "document" in
// this engine) and the same source type (derived from MimeKind) may appear,
// dropping any excess while preserving the incoming rank order.
func diversify(ranked []rankedCandidate, perKind, perSourceType int) []rankedCandidate {
	if perKind <= 0 {
		perKind = DefaultDiversifyPerKind
	}
	if perSourceType <= 0 {
		perSourceType = DefaultDiversifyPerSourceType
	}

	kindCount := 0
	sourceTypeCount := make(map[string]int)

	out := make([]rankedCandidate, 0, len(ranked))
	for _, rc := range ranked {
		if kindCount >= perKind {
			continue
		}
		st := rc.doc.MimeKind
		if sourceTypeCount[st] >= perSourceType {
			continue
		}
		kindCount++
		sourceTypeCount[st]++
		out = append(out, rc)
	}
	return out
}

// paginate slices [offset, offset+limit). An out-of-range offset yields an
// empty slice, never an error.
func paginate(ranked []rankedCandidate, offset, limit int) []rankedCandidate {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(ranked) {
		return []rankedCandidate{}
	}
	end := offset + limit
	if limit <= 0 || end > len(ranked) {
		end = len(ranked)
	}
	return ranked[offset:end]
}
