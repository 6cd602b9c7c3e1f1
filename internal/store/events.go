package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/docmind/docmind/internal/xerrors"
)

// LogFileEvent records a normalized watcher observation for diagnostics.
func (s *SQLiteStore) LogFileEvent(ctx context.Context, kind FileEventKind, path string, metadata map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	meta, err := json.Marshal(metadata)
	if err != nil {
		return xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO file_events (kind, path, occurred_at, metadata) VALUES (?, ?, ?, ?)
	`, string(kind), path, time.Now().Unix(), string(meta))
	if err != nil {
		return xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
	}
	return nil
}

// ListFileEvents returns the most recent events for a path, oldest first.
func (s *SQLiteStore) ListFileEvents(ctx context.Context, path string, limit int) ([]*FileEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, path, occurred_at, metadata FROM (
			SELECT id, kind, path, occurred_at, metadata FROM file_events
			WHERE path = ? ORDER BY id DESC LIMIT ?
		) ORDER BY id ASC
	`, path, limit)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
	}
	defer rows.Close()

	var events []*FileEvent
	for rows.Next() {
		e := &FileEvent{}
		var kind string
		var occurredAt int64
		var meta string
		if err := rows.Scan(&e.ID, &kind, &e.Path, &occurredAt, &meta); err != nil {
			return nil, xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
		}
		e.Kind = FileEventKind(kind)
		e.OccurredAt = unixToTime(occurredAt)
		if meta != "" {
			if err := json.Unmarshal([]byte(meta), &e.Metadata); err != nil {
				return nil, xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
			}
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
