package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/docmind/docmind/internal/xerrors"
)

// PutDocument inserts or replaces a Document along with its Chunks in a
// single transaction, so readers never observe one without the other.
// If a document with the same ID already exists, it is replaced entirely:
// its chunks, entities, and postings are the caller's responsibility to
// have already been reconciled via DeleteDocument for a changed checksum.
func (s *SQLiteStore) PutDocument(ctx context.Context, doc *Document, chunks []*Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO documents
				(id, source_path, mime_kind, ingested_at, modified_at, checksum,
				 title, content, word_count, char_count, page_count, encoding)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				source_path = excluded.source_path,
				mime_kind   = excluded.mime_kind,
				ingested_at = excluded.ingested_at,
				modified_at = excluded.modified_at,
				checksum    = excluded.checksum,
				title       = excluded.title,
				content     = excluded.content,
				word_count  = excluded.word_count,
				char_count  = excluded.char_count,
				page_count  = excluded.page_count,
				encoding    = excluded.encoding
		`,
			doc.ID, doc.SourcePath, doc.MimeKind, doc.IngestedAt.Unix(), doc.ModifiedAt.Unix(),
			doc.Checksum, doc.Title, doc.Content, doc.WordCount, doc.CharCount, doc.PageCount, doc.Encoding,
		)
		if err != nil {
			return xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
		}

		if err := tx.QueryRowContext(ctx, `SELECT seq FROM documents WHERE id = ?`, doc.ID).Scan(&doc.IngestSeq); err != nil {
			return xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM document_chunks WHERE document_id = ?`, doc.ID); err != nil {
			return xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO document_chunks (id, document_id, ordinal, span_start, span_end, content)
			VALUES (?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
		}
		defer stmt.Close()

		for _, c := range chunks {
			if _, err := stmt.ExecContext(ctx, c.ID, doc.ID, c.Ordinal, c.SpanStart, c.SpanEnd, c.Content); err != nil {
				return xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
			}
		}
		return nil
	})
}

// GetDocument retrieves a Document by ID. Returns STORE_NOT_FOUND if absent.
func (s *SQLiteStore) GetDocument(ctx context.Context, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	doc := &Document{ID: id}
	var ingestedAt, modifiedAt int64
	err := s.db.QueryRowContext(ctx, `
		SELECT seq, source_path, mime_kind, ingested_at, modified_at, checksum,
		       title, content, word_count, char_count, page_count, encoding
		FROM documents WHERE id = ?
	`, id).Scan(
		&doc.IngestSeq, &doc.SourcePath, &doc.MimeKind, &ingestedAt, &modifiedAt, &doc.Checksum,
		&doc.Title, &doc.Content, &doc.WordCount, &doc.CharCount, &doc.PageCount, &doc.Encoding,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, xerrors.NotFound("document "+id+" not found", err)
	}
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
	}
	doc.IngestedAt = unixToTime(ingestedAt)
	doc.ModifiedAt = unixToTime(modifiedAt)
	return doc, nil
}

// GetDocumentByPath looks up a Document by its source path, used by the
// ingestion pipeline to detect unchanged re-ingestion and by the watcher's
// Deleted/Renamed dispatch.
func (s *SQLiteStore) GetDocumentByPath(ctx context.Context, path string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	doc := &Document{}
	var ingestedAt, modifiedAt int64
	err := s.db.QueryRowContext(ctx, `
		SELECT seq, id, source_path, mime_kind, ingested_at, modified_at, checksum,
		       title, content, word_count, char_count, page_count, encoding
		FROM documents WHERE source_path = ?
	`, path).Scan(
		&doc.IngestSeq, &doc.ID, &doc.SourcePath, &doc.MimeKind, &ingestedAt, &modifiedAt, &doc.Checksum,
		&doc.Title, &doc.Content, &doc.WordCount, &doc.CharCount, &doc.PageCount, &doc.Encoding,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, xerrors.NotFound("no document at path "+path, err)
	}
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
	}
	doc.IngestedAt = unixToTime(ingestedAt)
	doc.ModifiedAt = unixToTime(modifiedAt)
	return doc, nil
}

// ListDocuments returns documents ordered by ingestion sequence, most
// recent first, with limit/offset pagination. Out-of-range offsets return
// an empty slice, never an error.
func (s *SQLiteStore) ListDocuments(ctx context.Context, limit, offset int) ([]*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, id, source_path, mime_kind, ingested_at, modified_at, checksum,
		       title, content, word_count, char_count, page_count, encoding
		FROM documents ORDER BY seq DESC LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
	}
	defer rows.Close()

	var docs []*Document
	for rows.Next() {
		doc := &Document{}
		var ingestedAt, modifiedAt int64
		if err := rows.Scan(
			&doc.IngestSeq, &doc.ID, &doc.SourcePath, &doc.MimeKind, &ingestedAt, &modifiedAt, &doc.Checksum,
			&doc.Title, &doc.Content, &doc.WordCount, &doc.CharCount, &doc.PageCount, &doc.Encoding,
		); err != nil {
			return nil, xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
		}
		doc.IngestedAt = unixToTime(ingestedAt)
		doc.ModifiedAt = unixToTime(modifiedAt)
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// CountDocuments returns the total number of persisted documents.
func (s *SQLiteStore) CountDocuments(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&count); err != nil {
		return 0, xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
	}
	return count, nil
}

// DeleteDocument cascades: chunks, entity mentions, entities, postings (via
// the caller's index under the same logical operation), and any
// relationship incident to one of the document's entities are all removed
// atomically.
func (s *SQLiteStore) DeleteDocument(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `SELECT id FROM entities WHERE document_id = ?`, id)
		if err != nil {
			return xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
		}
		var entityIDs []string
		for rows.Next() {
			var eid string
			if err := rows.Scan(&eid); err != nil {
				rows.Close()
				return xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
			}
			entityIDs = append(entityIDs, eid)
		}
		rows.Close()

		for _, eid := range entityIDs {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM relationships WHERE source_entity_id = ? OR target_entity_id = ?`, eid, eid); err != nil {
				return xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
			}
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM entities WHERE document_id = ?`, id); err != nil {
			return xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM document_chunks WHERE document_id = ?`, id); err != nil {
			return xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
		if err != nil {
			return xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return xerrors.NotFound("document "+id+" not found", nil)
		}
		return nil
	})
}

// ListChunks returns a document's chunks ordered by ordinal.
func (s *SQLiteStore) ListChunks(ctx context.Context, documentID string) ([]*Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, ordinal, span_start, span_end, content
		FROM document_chunks WHERE document_id = ? ORDER BY ordinal
	`, documentID)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
	}
	defer rows.Close()

	var chunks []*Chunk
	for rows.Next() {
		c := &Chunk{}
		if err := rows.Scan(&c.ID, &c.DocumentID, &c.Ordinal, &c.SpanStart, &c.SpanEnd, &c.Content); err != nil {
			return nil, xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
		}
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}
