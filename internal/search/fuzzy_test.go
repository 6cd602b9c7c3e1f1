package search

import (
	"testing"

	"github.com/docmind/docmind/internal/invindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuzzySearch_MatchesWithinLevenshteinThreshold(t *testing.T) {
	ix := invindex.New()
	ix.IndexDocument("doc1", "keyboard")

	set := fuzzySearch(ix, "keybord")
	require.NotEmpty(t, set.list())
	assert.Equal(t, "doc1", set.list()[0].documentID)
}

func TestFuzzySearch_RejectsTooDistantTerms(t *testing.T) {
	ix := invindex.New()
	ix.IndexDocument("doc1", "apples")

	set := fuzzySearch(ix, "zzzzzzzzzz")
	assert.Empty(t, set.list())
}

func TestFuzzySearch_ExactMatchScoresHighestSimilarity(t *testing.T) {
	ix := invindex.New()
	ix.IndexDocument("doc1", "banana")
	ix.IndexDocument("doc2", "bananana")

	set := fuzzySearch(ix, "banana")

	var exact, close float64
	for _, c := range set.list() {
		if c.documentID == "doc1" {
			exact = c.relevance
		} else if c.documentID == "doc2" {
			close = c.relevance
		}
	}
	assert.Greater(t, exact, close)
}
