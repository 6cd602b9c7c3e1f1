package search

import (
	"testing"

	"github.com/docmind/docmind/internal/invindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardSearch_ScoresByTFIDF(t *testing.T) {
	ix := invindex.New()
	ix.IndexDocument("doc1", "apples and oranges and apples again")
	ix.IndexDocument("doc2", "bananas and grapes")

	set := standardSearch(ix, "apples")
	require.Len(t, set.list(), 1)
	assert.Equal(t, "doc1", set.list()[0].documentID)
	assert.Greater(t, set.list()[0].relevance, 0.0)
}

func TestStandardSearch_RejectsZeroDocumentFrequencyTerms(t *testing.T) {
	ix := invindex.New()
	ix.IndexDocument("doc1", "apples and oranges")

	set := standardSearch(ix, "nonexistentword")
	assert.Empty(t, set.list())
}

func TestStandardSearch_MultiTermAccumulates(t *testing.T) {
	ix := invindex.New()
	ix.IndexDocument("doc1", "apples and oranges")
	ix.IndexDocument("doc2", "apples only")

	set := standardSearch(ix, "apples oranges")
	require.Len(t, set.list(), 2)

	var doc1Rel, doc2Rel float64
	for _, c := range set.list() {
		if c.documentID == "doc1" {
			doc1Rel = c.relevance
		} else {
			doc2Rel = c.relevance
		}
	}
	assert.Greater(t, doc1Rel, doc2Rel)
}
