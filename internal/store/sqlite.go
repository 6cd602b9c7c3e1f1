package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"github.com/docmind/docmind/internal/xerrors"
	_ "modernc.org/sqlite" // pure-Go driver, no CGO
)

// SQLiteStore is the Store Facade: one modernc.org/sqlite database per
// watched root, single writer connection, WAL mode for concurrent readers.
type SQLiteStore struct {
	mu     sync.RWMutex
	db     *sql.DB
	path   string
	closed bool
	lock   *flock.Flock
}

// validateIntegrity runs PRAGMA integrity_check against an existing database
// file before it is reopened.
func validateIntegrity(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return fmt.Errorf("cannot open for validation: %w", err)
	}
	defer db.Close()

	var result string
	if err := db.QueryRow("PRAGMA integrity_check").Scan(&result); err != nil {
		return fmt.Errorf("integrity check failed: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("database corrupted: %s", result)
	}
	return nil
}

// Open creates or reopens a SQLiteStore at path. An empty path opens an
// in-memory store, useful for tests. A corrupted on-disk database is
// reported as STORE_CORRUPTION rather than silently discarded — the core
// is expected to surface this via get_health() and refuse writes.
func Open(path string) (*SQLiteStore, error) {
	var dsn string
	var lock *flock.Flock
	if path == "" {
		dsn = ":memory:"
	} else {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
		}

		lock = flock.New(path + ".lock")
		acquired, err := lock.TryLock()
		if err != nil {
			return nil, xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
		}
		if !acquired {
			return nil, xerrors.New(xerrors.ErrCodeStoreLocked,
				"store is already open in another process", nil).
				WithSuggestion("stop the other docmind process using this store, or point DBPath elsewhere")
		}

		if err := validateIntegrity(path); err != nil {
			_ = lock.Unlock()
			return nil, xerrors.New(xerrors.ErrCodeStoreCorruption, err.Error(), err).
				WithSuggestion("remove the database file and re-run ingestion to rebuild it")
		}
		dsn = path + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		if lock != nil {
			_ = lock.Unlock()
		}
		return nil, xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
	}

	// A single writer connection avoids SQLITE_BUSY under WAL; readers of
	// the same *sql.DB still see consistent snapshots.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA cache_size = -65536",
		"PRAGMA temp_store = MEMORY",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			if lock != nil {
				_ = lock.Unlock()
			}
			return nil, xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
		}
	}

	s := &SQLiteStore{db: db, path: path, lock: lock}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		if lock != nil {
			_ = lock.Unlock()
		}
		return nil, xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
	}
	return s, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	seq         INTEGER PRIMARY KEY AUTOINCREMENT,
	id          TEXT UNIQUE NOT NULL,
	source_path TEXT NOT NULL,
	mime_kind   TEXT NOT NULL DEFAULT '',
	ingested_at INTEGER NOT NULL,
	modified_at INTEGER NOT NULL,
	checksum    TEXT NOT NULL,
	title       TEXT NOT NULL DEFAULT '',
	content     TEXT NOT NULL DEFAULT '',
	word_count  INTEGER NOT NULL DEFAULT 0,
	char_count  INTEGER NOT NULL DEFAULT 0,
	page_count  INTEGER NOT NULL DEFAULT 0,
	encoding    TEXT NOT NULL DEFAULT 'utf-8'
);
CREATE INDEX IF NOT EXISTS idx_documents_source_path ON documents(source_path);
CREATE UNIQUE INDEX IF NOT EXISTS idx_documents_path_checksum ON documents(source_path, checksum);

CREATE TABLE IF NOT EXISTS document_chunks (
	id          TEXT PRIMARY KEY,
	document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	ordinal     INTEGER NOT NULL,
	span_start  INTEGER NOT NULL,
	span_end    INTEGER NOT NULL,
	content     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chunks_document_id ON document_chunks(document_id);

CREATE TABLE IF NOT EXISTS entities (
	id           TEXT PRIMARY KEY,
	document_id  TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	kind         TEXT NOT NULL,
	custom_kind  TEXT NOT NULL DEFAULT '',
	surface_form TEXT NOT NULL,
	confidence   REAL NOT NULL,
	span_start   INTEGER NOT NULL,
	span_end     INTEGER NOT NULL,
	properties   TEXT NOT NULL DEFAULT '{}'
);
CREATE INDEX IF NOT EXISTS idx_entities_document_id ON entities(document_id);
CREATE INDEX IF NOT EXISTS idx_entities_kind ON entities(kind);

-- FTS projection of entities.surface_form, kept current via triggers below.
-- SearchEntitiesByName joins it and filters surface_form with a LIKE
-- substring pattern.
CREATE VIRTUAL TABLE IF NOT EXISTS entity_mentions USING fts5(
	entity_id UNINDEXED,
	document_id UNINDEXED,
	kind UNINDEXED,
	surface_form,
	tokenize = 'unicode61'
);

CREATE TRIGGER IF NOT EXISTS entities_ai AFTER INSERT ON entities BEGIN
	INSERT INTO entity_mentions(entity_id, document_id, kind, surface_form)
	VALUES (new.id, new.document_id, new.kind, new.surface_form);
END;
CREATE TRIGGER IF NOT EXISTS entities_ad AFTER DELETE ON entities BEGIN
	DELETE FROM entity_mentions WHERE entity_id = old.id;
END;
CREATE TRIGGER IF NOT EXISTS entities_au AFTER UPDATE ON entities BEGIN
	DELETE FROM entity_mentions WHERE entity_id = old.id;
	INSERT INTO entity_mentions(entity_id, document_id, kind, surface_form)
	VALUES (new.id, new.document_id, new.kind, new.surface_form);
END;

CREATE TABLE IF NOT EXISTS relationships (
	id               TEXT PRIMARY KEY,
	source_entity_id TEXT NOT NULL REFERENCES entities(id) ON DELETE CASCADE,
	target_entity_id TEXT NOT NULL REFERENCES entities(id) ON DELETE CASCADE,
	label            TEXT NOT NULL,
	strength         REAL NOT NULL,
	confidence       REAL NOT NULL,
	created_at       INTEGER NOT NULL,
	metadata         TEXT NOT NULL DEFAULT '{}'
);
CREATE INDEX IF NOT EXISTS idx_relationships_source ON relationships(source_entity_id);
CREATE INDEX IF NOT EXISTS idx_relationships_target ON relationships(target_entity_id);
CREATE INDEX IF NOT EXISTS idx_relationships_label ON relationships(label);

CREATE TABLE IF NOT EXISTS file_events (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	kind        TEXT NOT NULL,
	path        TEXT NOT NULL,
	occurred_at INTEGER NOT NULL,
	metadata    TEXT NOT NULL DEFAULT '{}'
);
CREATE INDEX IF NOT EXISTS idx_file_events_path ON file_events(path);

CREATE VIRTUAL TABLE IF NOT EXISTS fts_content USING fts5(
	doc_id UNINDEXED,
	title,
	content,
	tokenize = 'unicode61'
);

CREATE TRIGGER IF NOT EXISTS documents_ai AFTER INSERT ON documents BEGIN
	INSERT INTO fts_content(doc_id, title, content) VALUES (new.id, new.title, new.content);
END;
CREATE TRIGGER IF NOT EXISTS documents_ad AFTER DELETE ON documents BEGIN
	DELETE FROM fts_content WHERE doc_id = old.id;
END;
CREATE TRIGGER IF NOT EXISTS documents_au AFTER UPDATE ON documents BEGIN
	DELETE FROM fts_content WHERE doc_id = old.id;
	INSERT INTO fts_content(doc_id, title, content) VALUES (new.id, new.title, new.content);
END;
`

func (s *SQLiteStore) initSchema() error {
	_, err := s.db.Exec(schema)
	return err
}

// Close checkpoints the WAL and closes the underlying connection. Idempotent.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	err := s.db.Close()
	if s.lock != nil {
		_ = s.lock.Unlock()
	}
	return err
}

func (s *SQLiteStore) checkOpen() error {
	if s.closed {
		return xerrors.New(xerrors.ErrCodeStoreIO, "store is closed", nil)
	}
	return nil
}

// withTx runs fn inside a transaction, committing on success and rolling
// back on any error (including a panic, which is re-raised after rollback).
func (s *SQLiteStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
	}
	return nil
}

// Health reports whether the store considers itself usable. A failed
// integrity check here is what get_health() surfaces as STORE_CORRUPTION.
func (s *SQLiteStore) Health(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	var result string
	if err := s.db.QueryRowContext(ctx, "PRAGMA integrity_check").Scan(&result); err != nil {
		return xerrors.Wrap(xerrors.ErrCodeStoreIO, err)
	}
	if result != "ok" {
		return xerrors.New(xerrors.ErrCodeStoreCorruption, result, nil)
	}
	return nil
}
