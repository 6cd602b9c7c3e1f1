// Package graph implements the Graph Store: BFS reachability, shortest-path,
// and aggregate statistics over the Relationship edges persisted by
// internal/store. A prior RocksDB-backed implementation held relationships
// in column families with source:/target:/type: prefix-scanned secondary
// indexes; this package reproduces the same "shared keyspace, prefix-scanned"
// effect with one SQL table and ordinary WHERE clauses instead of hand-rolled
// key-prefix scans.
package graph

import (
	"context"

	"github.com/docmind/docmind/internal/store"
)

// Store is the narrow persistence surface the Graph Store walks. It never
// mutates relationships itself — PutRelationship/DeleteRelationship remain
// the Store Facade's own operations, called directly by whatever owns
// entity extraction.
type Store interface {
	GetRelationship(ctx context.Context, id string) (*store.Relationship, error)
	ListRelationshipsByEntity(ctx context.Context, entityID string) ([]*store.Relationship, error)
	ListAllRelationships(ctx context.Context) ([]*store.Relationship, error)
}

// Graph wraps a Store with traversal and statistics operations.
type Graph struct {
	store Store
}

// New builds a Graph over the given Store.
func New(s Store) *Graph {
	return &Graph{store: s}
}

// neighbor returns the entity id on the other end of r from entityID.
func neighbor(r *store.Relationship, entityID string) string {
	if r.SourceEntityID == entityID {
		return r.TargetEntityID
	}
	return r.SourceEntityID
}
