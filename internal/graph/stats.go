package graph

import (
	"context"
	"sort"
)

// Statistics summarizes the relationship graph: entity/relationship counts,
// a per-label breakdown, and degree extremes. AverageDegree counts each
// relationship's two endpoints, matching the original source's
// (total_relationships * 2) / total_entities formula.
type Statistics struct {
	TotalEntities      int
	TotalRelationships int
	RelationshipLabels map[string]int
	AverageDegree      float64
	MaxDegree          int
}

// Statistics computes aggregate graph statistics with a single pass over
// every persisted relationship.
func (g *Graph) Statistics(ctx context.Context) (*Statistics, error) {
	rels, err := g.store.ListAllRelationships(ctx)
	if err != nil {
		return nil, err
	}

	entities := make(map[string]struct{})
	labels := make(map[string]int)
	degrees := make(map[string]int)

	for _, r := range rels {
		entities[r.SourceEntityID] = struct{}{}
		entities[r.TargetEntityID] = struct{}{}
		labels[r.Label]++
		degrees[r.SourceEntityID]++
		degrees[r.TargetEntityID]++
	}

	stats := &Statistics{
		TotalEntities:      len(entities),
		TotalRelationships: len(rels),
		RelationshipLabels: labels,
	}

	if stats.TotalEntities > 0 {
		stats.AverageDegree = float64(stats.TotalRelationships*2) / float64(stats.TotalEntities)
	}
	for _, d := range degrees {
		if d > stats.MaxDegree {
			stats.MaxDegree = d
		}
	}

	return stats, nil
}

// EntityDegree pairs an entity id with how many relationships touch it.
type EntityDegree struct {
	EntityID string
	Degree   int
}

// MostConnected returns up to limit entities ranked by descending degree,
// computed over every persisted relationship in a single pass.
func (g *Graph) MostConnected(ctx context.Context, limit int) ([]EntityDegree, error) {
	rels, err := g.store.ListAllRelationships(ctx)
	if err != nil {
		return nil, err
	}

	degrees := make(map[string]int)
	for _, r := range rels {
		degrees[r.SourceEntityID]++
		degrees[r.TargetEntityID]++
	}

	out := make([]EntityDegree, 0, len(degrees))
	for id, d := range degrees {
		out = append(out, EntityDegree{EntityID: id, Degree: d})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Degree != out[j].Degree {
			return out[i].Degree > out[j].Degree
		}
		return out[i].EntityID < out[j].EntityID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
