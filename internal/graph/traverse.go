package graph

import "context"

// ConnectedEntities performs a breadth-first walk outward from entityID up
// to maxDepth hops, returning every reachable entity id (excluding
// entityID itself). A relationship is traversed in either direction —
// being the source or the target of an edge both count as adjacency.
func (g *Graph) ConnectedEntities(ctx context.Context, entityID string, maxDepth int) ([]string, error) {
	type queued struct {
		id    string
		depth int
	}

	visited := map[string]struct{}{entityID: {}}
	queue := []queued{{id: entityID, depth: 0}}
	var result []string

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cur := queue[0]
		queue = queue[1:]

		if cur.depth > maxDepth {
			continue
		}
		if cur.depth > 0 {
			result = append(result, cur.id)
		}

		rels, err := g.store.ListRelationshipsByEntity(ctx, cur.id)
		if err != nil {
			return nil, err
		}
		for _, r := range rels {
			n := neighbor(r, cur.id)
			if _, seen := visited[n]; seen {
				continue
			}
			visited[n] = struct{}{}
			queue = append(queue, queued{id: n, depth: cur.depth + 1})
		}
	}

	return result, nil
}

// ShortestPath performs a breadth-first search from source to target and
// returns the sequence of entity ids along the shortest path, inclusive of
// both endpoints. Returns (nil, nil) if target is unreachable from source.
func (g *Graph) ShortestPath(ctx context.Context, source, target string) ([]string, error) {
	if source == target {
		return []string{source}, nil
	}

	visited := map[string]struct{}{source: {}}
	parent := map[string]string{}
	queue := []string{source}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cur := queue[0]
		queue = queue[1:]

		rels, err := g.store.ListRelationshipsByEntity(ctx, cur)
		if err != nil {
			return nil, err
		}
		for _, r := range rels {
			n := neighbor(r, cur)
			if _, seen := visited[n]; seen {
				continue
			}
			visited[n] = struct{}{}
			parent[n] = cur

			if n == target {
				return reconstructPath(parent, source, target), nil
			}
			queue = append(queue, n)
		}
	}

	return nil, nil
}

func reconstructPath(parent map[string]string, source, target string) []string {
	path := []string{target}
	node := target
	for node != source {
		node = parent[node]
		path = append(path, node)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
