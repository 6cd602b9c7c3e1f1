package invindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeLowercasesStemsAndDropsStopwords(t *testing.T) {
	tokens := Tokenize("The Runners were running quickly through the forests")
	assert.NotContains(t, tokens, "the")
	assert.NotContains(t, tokens, "through")
	assert.Contains(t, tokens, "run") // "running"/"runners" both stem toward "run"-ish roots
}

func TestTokenizeKeepsOneTokenPerContentWord(t *testing.T) {
	tokens := Tokenize("alpha beta gamma delta")
	require.Len(t, tokens, 4)
}

func TestIndexAndPostings(t *testing.T) {
	ix := New()
	ix.IndexDocument("doc1", "the quick brown fox jumps over the lazy dog")

	tokens := Tokenize("quick")
	require.Len(t, tokens, 1)

	postings := ix.Postings(tokens[0])
	require.Len(t, postings, 1)
	assert.Equal(t, "doc1", postings[0].DocumentID)
	assert.Greater(t, postings[0].TermFrequency, 0.0)
}

func TestDFAndDocCount(t *testing.T) {
	ix := New()
	ix.IndexDocument("doc1", "apples and oranges")
	ix.IndexDocument("doc2", "apples and bananas")

	appleTok := Tokenize("apples")[0]
	assert.Equal(t, 2, ix.DF(appleTok))
	assert.Equal(t, 2, ix.DocCount())

	bananaTok := Tokenize("bananas")[0]
	assert.Equal(t, 1, ix.DF(bananaTok))
}

func TestUnindexReversesAllState(t *testing.T) {
	ix := New()
	ix.IndexDocument("doc1", "apples and oranges")
	ix.IndexDocument("doc2", "apples and bananas")

	ix.Unindex("doc1")

	assert.Equal(t, 1, ix.DocCount())
	appleTok := Tokenize("apples")[0]
	assert.Equal(t, 1, ix.DF(appleTok))

	orangeTok := Tokenize("oranges")[0]
	assert.Equal(t, 0, ix.DF(orangeTok))
	assert.Empty(t, ix.Postings(orangeTok))
}

func TestReindexingReplacesPriorPostings(t *testing.T) {
	ix := New()
	ix.IndexDocument("doc1", "apples and oranges")
	ix.IndexDocument("doc1", "bananas only")

	appleTok := Tokenize("apples")[0]
	assert.Equal(t, 0, ix.DF(appleTok))

	bananaTok := Tokenize("bananas")[0]
	assert.Equal(t, 1, ix.DF(bananaTok))
}

func TestIDFZeroWhenDFOrDocCountIsZero(t *testing.T) {
	ix := New()
	assert.Equal(t, 0.0, ix.IDF("anything"))

	ix.IndexDocument("doc1", "apples")
	assert.Equal(t, 0.0, ix.IDF("nonexistent"))
}

func TestIDFPositiveWhenTermIsRare(t *testing.T) {
	ix := New()
	ix.IndexDocument("doc1", "apples and oranges")
	ix.IndexDocument("doc2", "apples and bananas")
	ix.IndexDocument("doc3", "apples and grapes")

	bananaTok := Tokenize("bananas")[0]
	assert.Greater(t, ix.IDF(bananaTok), 0.0)
}
