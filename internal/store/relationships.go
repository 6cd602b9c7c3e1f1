package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/docmind/docmind/internal/xerrors"
)

// PutRelationship inserts or replaces a directed Relationship between two
// Entities. Both entities must already exist (foreign keys are enforced).
func (s *SQLiteStore) PutRelationship(ctx context.Context, r *Relationship) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	meta, err := json.Marshal(r.Metadata)
	if err != nil {
		return xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO relationships
			(id, source_entity_id, target_entity_id, label, strength, confidence, created_at, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source_entity_id = excluded.source_entity_id,
			target_entity_id = excluded.target_entity_id,
			label            = excluded.label,
			strength         = excluded.strength,
			confidence       = excluded.confidence,
			metadata         = excluded.metadata
	`, r.ID, r.SourceEntityID, r.TargetEntityID, r.Label, r.Strength, r.Confidence, r.CreatedAt.Unix(), string(meta))
	if err != nil {
		return xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
	}
	return nil
}

// GetRelationship retrieves a Relationship by ID.
func (s *SQLiteStore) GetRelationship(ctx context.Context, id string) (*Relationship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	r := &Relationship{ID: id}
	var createdAt int64
	var meta string
	err := s.db.QueryRowContext(ctx, `
		SELECT source_entity_id, target_entity_id, label, strength, confidence, created_at, metadata
		FROM relationships WHERE id = ?
	`, id).Scan(&r.SourceEntityID, &r.TargetEntityID, &r.Label, &r.Strength, &r.Confidence, &createdAt, &meta)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, xerrors.NotFound("relationship "+id+" not found", err)
	}
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
	}
	r.CreatedAt = unixToTime(createdAt)
	if meta != "" {
		if err := json.Unmarshal([]byte(meta), &r.Metadata); err != nil {
			return nil, xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
		}
	}
	return r, nil
}

// DeleteRelationship removes a single Relationship by ID.
func (s *SQLiteStore) DeleteRelationship(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM relationships WHERE id = ?`, id)
	if err != nil {
		return xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return xerrors.NotFound("relationship "+id+" not found", nil)
	}
	return nil
}

// ListRelationshipsByEntity returns every Relationship where entityID is
// either the source or the target, used by the Graph Store's neighbor walk.
func (s *SQLiteStore) ListRelationshipsByEntity(ctx context.Context, entityID string) ([]*Relationship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_entity_id, target_entity_id, label, strength, confidence, created_at, metadata
		FROM relationships WHERE source_entity_id = ? OR target_entity_id = ?
	`, entityID, entityID)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
	}
	defer rows.Close()

	return scanRelationships(rows)
}

// ListAllRelationships returns every Relationship, used by Graph Store
// statistics (a single pass over primary records).
func (s *SQLiteStore) ListAllRelationships(ctx context.Context) ([]*Relationship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_entity_id, target_entity_id, label, strength, confidence, created_at, metadata
		FROM relationships
	`)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
	}
	defer rows.Close()

	return scanRelationships(rows)
}

func scanRelationships(rows *sql.Rows) ([]*Relationship, error) {
	var out []*Relationship
	for rows.Next() {
		r := &Relationship{}
		var createdAt int64
		var meta string
		if err := rows.Scan(&r.ID, &r.SourceEntityID, &r.TargetEntityID, &r.Label, &r.Strength, &r.Confidence, &createdAt, &meta); err != nil {
			return nil, xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
		}
		r.CreatedAt = unixToTime(createdAt)
		if meta != "" {
			if err := json.Unmarshal([]byte(meta), &r.Metadata); err != nil {
				return nil, xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
