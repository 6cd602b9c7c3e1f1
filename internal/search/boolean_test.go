package search

import (
	"testing"

	"github.com/docmind/docmind/internal/invindex"
	"github.com/stretchr/testify/assert"
)

func TestBooleanSearch_And(t *testing.T) {
	ix := invindex.New()
	ix.IndexDocument("doc1", "apples oranges")
	ix.IndexDocument("doc2", "apples only")

	set := booleanSearch(ix, "apples AND oranges")
	ids := documentIDs(set)
	assert.ElementsMatch(t, []string{"doc1"}, ids)
}

func TestBooleanSearch_Or(t *testing.T) {
	ix := invindex.New()
	ix.IndexDocument("doc1", "apples only")
	ix.IndexDocument("doc2", "oranges only")
	ix.IndexDocument("doc3", "grapes only")

	set := booleanSearch(ix, "apples OR oranges")
	ids := documentIDs(set)
	assert.ElementsMatch(t, []string{"doc1", "doc2"}, ids)
}

func TestBooleanSearch_AndBindsTighterThanOr(t *testing.T) {
	ix := invindex.New()
	ix.IndexDocument("doc1", "apples oranges")
	ix.IndexDocument("doc2", "grapes only")
	ix.IndexDocument("doc3", "apples only")

	// "apples AND oranges OR grapes" == (apples AND oranges) OR grapes
	set := booleanSearch(ix, "apples AND oranges OR grapes")
	ids := documentIDs(set)
	assert.ElementsMatch(t, []string{"doc1", "doc2"}, ids)
}

func TestBooleanSearch_UniformRelevanceBeforeRanking(t *testing.T) {
	ix := invindex.New()
	ix.IndexDocument("doc1", "apples oranges oranges oranges")
	ix.IndexDocument("doc2", "apples oranges")

	set := booleanSearch(ix, "apples AND oranges")
	for _, c := range set.list() {
		assert.Equal(t, 1.0, c.relevance)
	}
}

func TestBooleanSearch_IsCaseInsensitiveForOperators(t *testing.T) {
	ix := invindex.New()
	ix.IndexDocument("doc1", "apples oranges")

	set := booleanSearch(ix, "apples and oranges")
	assert.ElementsMatch(t, []string{"doc1"}, documentIDs(set))
}

func documentIDs(set *candidateSet) []string {
	out := make([]string, 0, len(set.byID))
	for id := range set.byID {
		out = append(out, id)
	}
	return out
}
