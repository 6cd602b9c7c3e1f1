// Package core wires the Store Facade, Ingestion Pipeline, File-Watcher
// Dispatch, Inverted Index, Search Engine, and Graph Store into the single
// embeddable facade the rest of docmind (CLI, and any future embedder)
// calls: one Core per watched root.
package core

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/docmind/docmind/internal/chunk"
	"github.com/docmind/docmind/internal/config"
	"github.com/docmind/docmind/internal/crypto"
	"github.com/docmind/docmind/internal/graph"
	"github.com/docmind/docmind/internal/ingest"
	"github.com/docmind/docmind/internal/ingestprogress"
	"github.com/docmind/docmind/internal/invindex"
	"github.com/docmind/docmind/internal/search"
	"github.com/docmind/docmind/internal/store"
	"github.com/docmind/docmind/internal/watcher"
	"github.com/docmind/docmind/internal/xerrors"
)

// contentStore is the union of every narrow Store interface a Core wires
// together. *store.SQLiteStore and *cryptoStore both satisfy it.
type contentStore interface {
	GetDocument(ctx context.Context, id string) (*store.Document, error)
	GetDocumentByPath(ctx context.Context, path string) (*store.Document, error)
	ListDocuments(ctx context.Context, limit, offset int) ([]*store.Document, error)
	CountDocuments(ctx context.Context) (int, error)
	DeleteDocument(ctx context.Context, id string) error
	PutDocument(ctx context.Context, doc *store.Document, chunks []*store.Chunk) error
	PutEntity(ctx context.Context, e *store.Entity) error
	GetEntity(ctx context.Context, id string) (*store.Entity, error)
	ListEntities(ctx context.Context, kind store.EntityKind, limit int) ([]*store.Entity, error)
	SearchEntitiesByName(ctx context.Context, substr string, kind store.EntityKind, limit int) ([]*store.Entity, error)
	PutRelationship(ctx context.Context, r *store.Relationship) error
	GetRelationship(ctx context.Context, id string) (*store.Relationship, error)
	DeleteRelationship(ctx context.Context, id string) error
	ListRelationshipsByEntity(ctx context.Context, entityID string) ([]*store.Relationship, error)
	ListAllRelationships(ctx context.Context) ([]*store.Relationship, error)
	Health(ctx context.Context) error
	Close() error
}

// Core is one watched root's complete facade: ingestion, watching, search,
// and the entity graph, all backed by one embedded store.
type Core struct {
	mu     sync.RWMutex
	cfg    *config.Config
	root   string
	store  contentStore
	index  *invindex.Index
	pipe   *ingest.Pipeline
	engine *search.Engine
	graph  *graph.Graph
	watch  *watcher.HybridWatcher
	disp   *watcher.Dispatcher
	prog   *ingestprogress.Tracker
	logger *slog.Logger

	watchCancel context.CancelFunc
	watchDone   chan struct{}
}

// New opens the store at cfg.DBPath (building the encryption collaborator
// first if cfg.Encryption.Enabled), rebuilds the inverted index from
// persisted documents, and wires every component together. root is the
// directory this Core watches and ingests.
func New(cfg *config.Config, root string, logger *slog.Logger) (*Core, error) {
	if logger == nil {
		logger = slog.Default()
	}

	raw, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	var backing contentStore = raw
	if cfg.Encryption.Enabled {
		engine, err := encryptionEngine(cfg)
		if err != nil {
			_ = raw.Close()
			return nil, err
		}
		backing = newCryptoStore(raw, engine)
	}

	index := invindex.New()

	pipe := ingest.New(ingest.Config{
		Store:                backing,
		Index:                index,
		Chunker:              chunk.NewWordChunker(cfg.ChunkSize, cfg.ChunkOverlap),
		MaxFileSize:          cfg.MaxFileSize,
		SupportedExtensions:  cfg.SupportedExtensions,
		Workers:              cfg.Index.Workers,
		ExtractEntities:      cfg.ExtractEntities,
		ExtractRelationships: cfg.ExtractRelationships,
	})

	c := &Core{
		cfg:    cfg,
		root:   root,
		store:  backing,
		index:  index,
		pipe:   pipe,
		engine: search.NewEngine(index, backing, search.WithWeights(search.Weights{
			Relevance:  cfg.Ranking.Relevance,
			Freshness:  cfg.Ranking.Freshness,
			Popularity: cfg.Ranking.Popularity,
		})),
		graph:  graph.New(backing),
		prog:   ingestprogress.New(),
		logger: logger,
	}

	if err := c.rebuildIndex(context.Background()); err != nil {
		_ = backing.Close()
		return nil, err
	}

	return c, nil
}

// encryptionEngine derives (or generates, on first run) the key backing the
// encryption collaborator. A production deployment supplies the key via
// DOCMIND_ENCRYPTION_KEY; this is the one piece of key management Core
// owns directly.
func encryptionEngine(cfg *config.Config) (*crypto.SecretBoxEngine, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ErrCodeEncryptionKeyMissing, err)
	}
	engine, err := crypto.NewSecretBoxEngine(key)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ErrCodeEncryptionKeyMissing, err)
	}
	return engine, nil
}

// rebuildIndex repopulates the in-memory inverted index from every
// persisted document. The index itself has no on-disk form; it is derived
// state, rebuilt once at startup and kept current afterward by the
// ingestion pipeline's own IndexDocument/Unindex calls.
func (c *Core) rebuildIndex(ctx context.Context) error {
	const pageSize = 200
	offset := 0
	for {
		docs, err := c.store.ListDocuments(ctx, pageSize, offset)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			c.index.IndexDocument(doc.ID, doc.Content)
		}
		if len(docs) < pageSize {
			return nil
		}
		offset += pageSize
	}
}

// IngestDirectory walks root and ingests every supported file under it,
// reporting progress through the snapshot returned by Progress.
func (c *Core) IngestDirectory(ctx context.Context, root string) ([]ingest.Outcome, error) {
	c.prog.Start()
	total := 0
	processed := 0

	pipeWithProgress := ingest.New(ingest.Config{
		Store:                c.store,
		Index:                c.index,
		Chunker:              chunk.NewWordChunker(c.cfg.ChunkSize, c.cfg.ChunkOverlap),
		MaxFileSize:          c.cfg.MaxFileSize,
		SupportedExtensions:  c.cfg.SupportedExtensions,
		Workers:              c.cfg.Index.Workers,
		ExtractEntities:      c.cfg.ExtractEntities,
		ExtractRelationships: c.cfg.ExtractRelationships,
		Callbacks: ingest.Callbacks{
			OnProgress: func(done, count int) {
				total = count
				processed = done
				c.prog.SetTotal(total)
				c.prog.Advance(processed)
			},
			OnError: func(path, code, message string) {
				c.logger.Warn("ingest error", "path", path, "code", code, "message", message)
			},
		},
	})

	outcomes := pipeWithProgress.IngestDirectory(ctx, root)

	var failed string
	for _, o := range outcomes {
		if o.Kind == ingest.OutcomeError {
			failed = o.ErrorMessage
		}
	}
	if failed != "" {
		c.prog.Fail(failed)
	} else {
		c.prog.Done()
	}

	return outcomes, nil
}

// IngestFile ingests a single file through the shared pipeline.
func (c *Core) IngestFile(ctx context.Context, path string) ingest.Outcome {
	return c.pipe.IngestFile(ctx, path)
}

// StartWatching starts the hybrid file watcher over root and dispatches
// every batch of coalesced events into the ingestion pipeline. Safe to
// call once per Core; a second call returns an error.
func (c *Core) StartWatching(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.watch != nil {
		return xerrors.New(xerrors.ErrCodeInvalidConfig, "watcher already started", nil)
	}

	opts := watcher.DefaultOptions()
	if d, err := time.ParseDuration(c.cfg.Watcher.DebounceWindow); err == nil {
		opts.DebounceWindow = d
	}
	if d, err := time.ParseDuration(c.cfg.Watcher.PollInterval); err == nil {
		opts.PollInterval = d
	}
	if c.cfg.Watcher.EventBufferSize > 0 {
		opts.EventBufferSize = c.cfg.Watcher.EventBufferSize
	}

	w, err := watcher.NewHybridWatcher(opts)
	if err != nil {
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)

	c.watch = w
	c.disp = watcher.NewDispatcher(c.pipe, c.pipe)
	c.watchCancel = cancel
	c.watchDone = make(chan struct{})

	// Start blocks for as long as the watcher runs.
	go func() {
		if err := w.Start(watchCtx, c.root); err != nil && watchCtx.Err() == nil {
			c.logger.Warn("watcher stopped", "error", err)
		}
	}()
	go c.dispatchLoop(watchCtx)

	return nil
}

func (c *Core) dispatchLoop(ctx context.Context) {
	defer close(c.watchDone)
	for {
		select {
		case <-ctx.Done():
			return
		case batch, ok := <-c.watch.Events():
			if !ok {
				return
			}
			for i := range batch {
				batch[i].Path = filepath.Join(c.root, batch[i].Path)
			}
			c.disp.DispatchBatch(ctx, batch)
		case err, ok := <-c.watch.Errors():
			if !ok {
				continue
			}
			c.logger.Warn("watcher error", "error", err)
		}
	}
}

// StopWatching stops the file watcher, if running. Idempotent.
func (c *Core) StopWatching() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.watch == nil {
		return nil
	}
	c.watchCancel()
	err := c.watch.Stop()
	<-c.watchDone
	c.watch = nil
	c.disp = nil
	return err
}

// Search runs q against the composite search engine.
func (c *Core) Search(ctx context.Context, q search.Query) (*search.Results, error) {
	return c.engine.Search(ctx, q)
}

// SearchEntities runs an entity-name search, bypassing the inverted index.
func (c *Core) SearchEntities(ctx context.Context, q search.EntityQuery) ([]search.EntityResult, error) {
	return c.engine.SearchEntities(ctx, q)
}

// GetDocument retrieves a single document by id.
func (c *Core) GetDocument(ctx context.Context, id string) (*store.Document, error) {
	return c.store.GetDocument(ctx, id)
}

// ListDocuments pages through every persisted document.
func (c *Core) ListDocuments(ctx context.Context, limit, offset int) ([]*store.Document, error) {
	return c.store.ListDocuments(ctx, limit, offset)
}

// DeleteDocument removes a document and its dependent chunks, entities,
// and relationships, unindexing it along the way.
func (c *Core) DeleteDocument(ctx context.Context, id string) error {
	if err := c.store.DeleteDocument(ctx, id); err != nil {
		return err
	}
	c.index.Unindex(id)
	return nil
}

// Graph returns the Graph Store, for traversal and statistics.
func (c *Core) Graph() *graph.Graph {
	return c.graph
}

// Progress returns a snapshot of the current (or most recent) ingestion.
func (c *Core) Progress() ingestprogress.Snapshot {
	return c.prog.Snapshot()
}

// HealthReport is the get_health() response shape: enough for a caller to
// decide whether the store is usable and whether ingestion is in flight.
type HealthReport struct {
	Healthy    bool                    `json:"healthy"`
	StoreError string                  `json:"store_error,omitempty"`
	Ingestion  ingestprogress.Snapshot `json:"ingestion"`
	WatcherOK  bool                    `json:"watcher_ok"`
	DocCount   int                     `json:"document_count"`
	IndexTerms int                     `json:"index_terms"`
}

// GetHealth reports store integrity, ingestion progress, watcher health,
// and coarse index/document counts.
func (c *Core) GetHealth(ctx context.Context) HealthReport {
	c.mu.RLock()
	w := c.watch
	c.mu.RUnlock()

	report := HealthReport{
		Healthy:   true,
		Ingestion: c.prog.Snapshot(),
		WatcherOK: w == nil || w.IsHealthy(),
	}

	if err := c.store.Health(ctx); err != nil {
		report.Healthy = false
		report.StoreError = err.Error()
	}

	if count, err := c.store.CountDocuments(ctx); err == nil {
		report.DocCount = count
	}
	report.IndexTerms = len(c.index.Terms())

	return report
}

// Shutdown stops the watcher (if running) and closes the underlying store.
func (c *Core) Shutdown() error {
	if err := c.StopWatching(); err != nil {
		c.logger.Warn("error stopping watcher during shutdown", "error", err)
	}
	return c.store.Close()
}

// DefaultDBPathFor returns the conventional store path for a watched root:
// <root>/.docmind/store unless cfg.DBPath is already set to something else.
func DefaultDBPathFor(cfg *config.Config, root string) string {
	if cfg.DBPath != "" {
		return cfg.DBPath
	}
	return filepath.Join(root, ".docmind", "store")
}
