package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/docmind/docmind/internal/xerrors"
)

// PutEntity inserts or replaces an Entity. The entities_ai/au triggers keep
// entity_mentions (the FTS name-search projection) in sync.
func (s *SQLiteStore) PutEntity(ctx context.Context, e *Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	props, err := json.Marshal(e.Properties)
	if err != nil {
		return xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO entities
			(id, document_id, kind, custom_kind, surface_form, confidence, span_start, span_end, properties)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			document_id  = excluded.document_id,
			kind         = excluded.kind,
			custom_kind  = excluded.custom_kind,
			surface_form = excluded.surface_form,
			confidence   = excluded.confidence,
			span_start   = excluded.span_start,
			span_end     = excluded.span_end,
			properties   = excluded.properties
	`, e.ID, e.DocumentID, string(e.Kind), e.CustomKind, e.SurfaceForm, e.Confidence, e.SpanStart, e.SpanEnd, string(props))
	if err != nil {
		return xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
	}
	return nil
}

// GetEntity retrieves an Entity by ID.
func (s *SQLiteStore) GetEntity(ctx context.Context, id string) (*Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	e := &Entity{ID: id}
	var kind string
	var props string
	err := s.db.QueryRowContext(ctx, `
		SELECT document_id, kind, custom_kind, surface_form, confidence, span_start, span_end, properties
		FROM entities WHERE id = ?
	`, id).Scan(&e.DocumentID, &kind, &e.CustomKind, &e.SurfaceForm, &e.Confidence, &e.SpanStart, &e.SpanEnd, &props)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, xerrors.NotFound("entity "+id+" not found", err)
	}
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
	}
	e.Kind = EntityKind(kind)
	if props != "" {
		if err := json.Unmarshal([]byte(props), &e.Properties); err != nil {
			return nil, xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
		}
	}
	return e, nil
}

// ListEntities returns entities, optionally filtered by kind, newest first,
// capped at limit.
func (s *SQLiteStore) ListEntities(ctx context.Context, kind EntityKind, limit int) ([]*Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	var rows *sql.Rows
	var err error
	if kind != "" {
		rows, err = s.db.QueryContext(ctx, `
			SELECT id, document_id, kind, custom_kind, surface_form, confidence, span_start, span_end, properties
			FROM entities WHERE kind = ? ORDER BY rowid DESC LIMIT ?
		`, string(kind), limit)
	} else {
		rows, err = s.db.QueryContext(ctx, `
			SELECT id, document_id, kind, custom_kind, surface_form, confidence, span_start, span_end, properties
			FROM entities ORDER BY rowid DESC LIMIT ?
		`, limit)
	}
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
	}
	defer rows.Close()

	var entities []*Entity
	for rows.Next() {
		e := &Entity{}
		var k, props string
		if err := rows.Scan(&e.ID, &e.DocumentID, &k, &e.CustomKind, &e.SurfaceForm, &e.Confidence, &e.SpanStart, &e.SpanEnd, &props); err != nil {
			return nil, xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
		}
		e.Kind = EntityKind(k)
		if props != "" {
			if err := json.Unmarshal([]byte(props), &e.Properties); err != nil {
				return nil, xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
			}
		}
		entities = append(entities, e)
	}
	return entities, rows.Err()
}

// SearchEntitiesByName scans entity_mentions for a case-insensitive
// substring match on surface form, optionally filtered by kind, sorted by
// surface form. This backs the Search Engine's entity search path.
func (s *SQLiteStore) SearchEntitiesByName(ctx context.Context, substr string, kind EntityKind, limit int) ([]*Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	query := `
		SELECT e.id, e.document_id, e.kind, e.custom_kind, e.surface_form, e.confidence, e.span_start, e.span_end, e.properties
		FROM entities e
		JOIN entity_mentions m ON m.entity_id = e.id
		WHERE m.surface_form LIKE ?
	`
	args := []any{"%" + substr + "%"}
	if kind != "" {
		query += " AND e.kind = ?"
		args = append(args, string(kind))
	}
	query += " ORDER BY e.surface_form LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
	}
	defer rows.Close()

	var entities []*Entity
	for rows.Next() {
		e := &Entity{}
		var k, props string
		if err := rows.Scan(&e.ID, &e.DocumentID, &k, &e.CustomKind, &e.SurfaceForm, &e.Confidence, &e.SpanStart, &e.SpanEnd, &props); err != nil {
			return nil, xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
		}
		e.Kind = EntityKind(k)
		if props != "" {
			if err := json.Unmarshal([]byte(props), &e.Properties); err != nil {
				return nil, xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
			}
		}
		entities = append(entities, e)
	}
	return entities, rows.Err()
}
