package store

import (
	"context"
	"strings"

	"github.com/docmind/docmind/internal/xerrors"
)

// FullTextMatch runs an FTS5 MATCH query against the documents.title/content
// mirror and returns up to limit results ranked by SQLite's bm25(). The Search
// Engine does not call it; its ranking path is internal/invindex +
// internal/search, which implement their own TF-IDF/freshness/popularity
// formula directly.
func (s *SQLiteStore) FullTextMatch(ctx context.Context, query string, limit int) ([]*MatchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT doc_id, snippet(fts_content, 2, '[', ']', '...', 10), bm25(fts_content)
		FROM fts_content WHERE fts_content MATCH ? ORDER BY bm25(fts_content) LIMIT ?
	`, query, limit)
	if err != nil {
		if strings.Contains(err.Error(), "fts5:") || strings.Contains(err.Error(), "syntax error") {
			return nil, xerrors.New(xerrors.ErrCodeSearchInvalidQuery, "invalid full-text query: "+query, err)
		}
		return nil, xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
	}
	defer rows.Close()

	var results []*MatchResult
	for rows.Next() {
		m := &MatchResult{}
		var rank float64
		if err := rows.Scan(&m.DocumentID, &m.Snippet, &rank); err != nil {
			return nil, xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
		}
		m.Rank = -rank // FTS5 bm25() is negative; higher positive = better match
		results = append(results, m)
	}
	return results, rows.Err()
}
