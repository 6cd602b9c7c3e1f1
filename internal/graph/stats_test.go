package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatistics_CountsEntitiesRelationshipsAndLabels(t *testing.T) {
	fs := newFakeStore()
	fs.link("e1", "e2", "knows")
	fs.link("e2", "e3", "knows")
	fs.link("e1", "e3", "mentions")
	g := New(fs)

	stats, err := g.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalEntities)
	assert.Equal(t, 3, stats.TotalRelationships)
	assert.Equal(t, 2, stats.RelationshipLabels["knows"])
	assert.Equal(t, 1, stats.RelationshipLabels["mentions"])
}

func TestStatistics_AverageAndMaxDegree(t *testing.T) {
	fs := newFakeStore()
	fs.link("hub", "a", "knows")
	fs.link("hub", "b", "knows")
	fs.link("hub", "c", "knows")
	g := New(fs)

	stats, err := g.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.MaxDegree)
	assert.InDelta(t, 6.0/4.0, stats.AverageDegree, 0.001)
}

func TestStatistics_EmptyGraphYieldsZeroValues(t *testing.T) {
	fs := newFakeStore()
	g := New(fs)

	stats, err := g.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalEntities)
	assert.Equal(t, 0.0, stats.AverageDegree)
}

func TestMostConnected_RanksByDescendingDegree(t *testing.T) {
	fs := newFakeStore()
	fs.link("hub", "a", "knows")
	fs.link("hub", "b", "knows")
	fs.link("hub", "c", "knows")
	fs.link("a", "b", "knows")
	g := New(fs)

	ranked, err := g.MostConnected(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "hub", ranked[0].EntityID)
	assert.Equal(t, 3, ranked[0].Degree)
}
