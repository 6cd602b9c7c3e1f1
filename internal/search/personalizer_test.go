package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonalizer_RecordInteractionAppliesExponentialMovingAverage(t *testing.T) {
	p := NewPersonalizer()
	p.RecordInteraction(ResultInteraction{MimeKind: "application/pdf", InteractionScore: 1.0})

	results := []Result{{MimeKind: "application/pdf", Title: "report", Score: 0.5}}
	boosted := p.Personalize(results)
	require.Len(t, boosted, 1)
	assert.Greater(t, boosted[0].Score, 0.5)
}

func TestPersonalizer_NoInteractionsLeavesScoreUnchanged(t *testing.T) {
	p := NewPersonalizer()
	results := []Result{{MimeKind: "text/plain", Title: "notes", Score: 0.5}}
	out := p.Personalize(results)
	require.Len(t, out, 1)
	assert.Equal(t, 0.5, out[0].Score)
}

func TestPersonalizer_QueryHistoryBoostsMatchingTitles(t *testing.T) {
	p := NewPersonalizer()
	p.RecordQuery("quarterly budget")

	results := []Result{
		{Title: "budget plan", Score: 0.5},
		{Title: "unrelated notes", Score: 0.5},
	}
	out := p.Personalize(results)
	require.Len(t, out, 2)
	assert.Equal(t, "budget plan", out[0].Title)
}

func TestPersonalizer_RecordQueryCapsHistoryLength(t *testing.T) {
	p := NewPersonalizer()
	for i := 0; i < maxSearchHistory+20; i++ {
		p.RecordQuery("query")
	}
	assert.Len(t, p.history, maxSearchHistory)
}
