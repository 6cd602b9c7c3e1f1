package search

import (
	"context"

	"github.com/docmind/docmind/internal/store"
)

// EntityQuery is the input to the entity-search path: a name substring and
// an optional kind filter. This is a separate path from Search — it scans
// the entity store directly rather than going through the inverted index.
type EntityQuery struct {
	NameSubstring string
	Kind          store.EntityKind
	Limit         int
}

// EntityResult is a single matched entity, with enough document context for
// callers to display or dereference it.
type EntityResult struct {
	ID          string
	DocumentID  string
	Kind        store.EntityKind
	CustomKind  string
	SurfaceForm string
	Confidence  float64
}

// SearchEntities scans the entity store for entities whose surface form
// contains NameSubstring, optionally restricted to Kind, sorted by name.
func (e *Engine) SearchEntities(ctx context.Context, q EntityQuery) ([]EntityResult, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	entities, err := e.docs.SearchEntitiesByName(ctx, q.NameSubstring, q.Kind, q.Limit)
	if err != nil {
		return nil, err
	}

	out := make([]EntityResult, 0, len(entities))
	for _, ent := range entities {
		out = append(out, EntityResult{
			ID:          ent.ID,
			DocumentID:  ent.DocumentID,
			Kind:        ent.Kind,
			CustomKind:  ent.CustomKind,
			SurfaceForm: ent.SurfaceForm,
			Confidence:  ent.Confidence,
		})
	}
	return out, nil
}
