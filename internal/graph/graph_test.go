package graph

import (
	"context"
	"time"

	"github.com/docmind/docmind/internal/store"
)

type fakeStore struct {
	byEntity map[string][]*store.Relationship
	all      []*store.Relationship
}

func newFakeStore() *fakeStore {
	return &fakeStore{byEntity: make(map[string][]*store.Relationship)}
}

func (f *fakeStore) link(source, target, label string) {
	r := &store.Relationship{
		ID:             source + "->" + target,
		SourceEntityID: source,
		TargetEntityID: target,
		Label:          label,
		CreatedAt:      time.Now(),
	}
	f.byEntity[source] = append(f.byEntity[source], r)
	f.byEntity[target] = append(f.byEntity[target], r)
	f.all = append(f.all, r)
}

func (f *fakeStore) GetRelationship(ctx context.Context, id string) (*store.Relationship, error) {
	for _, r := range f.all {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListRelationshipsByEntity(ctx context.Context, entityID string) ([]*store.Relationship, error) {
	return f.byEntity[entityID], nil
}

func (f *fakeStore) ListAllRelationships(ctx context.Context) ([]*store.Relationship, error) {
	return f.all, nil
}
