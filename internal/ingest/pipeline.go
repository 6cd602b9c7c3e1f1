package ingest

import (
	"context"

	"github.com/docmind/docmind/internal/chunk"
	"github.com/docmind/docmind/internal/decode"
	"github.com/docmind/docmind/internal/entity"
	"github.com/docmind/docmind/internal/invindex"
	"github.com/docmind/docmind/internal/store"
)

// DefaultMaxFileSize is the default ceiling on a single ingestible file.
const DefaultMaxFileSize int64 = 100 * 1024 * 1024

// DefaultSupportedExtensions is the set of file extensions ingest_file will
// accept, matching the formats internal/decode actually ships decoders for.
var DefaultSupportedExtensions = []string{".md", ".markdown", ".mdx", ".txt"}

// Store is the subset of the Store Facade the pipeline depends on.
type Store interface {
	GetDocumentByPath(ctx context.Context, path string) (*store.Document, error)
	PutDocument(ctx context.Context, doc *store.Document, chunks []*store.Chunk) error
	DeleteDocument(ctx context.Context, id string) error
	PutEntity(ctx context.Context, e *store.Entity) error
	PutRelationship(ctx context.Context, r *store.Relationship) error
}

// Config configures a Pipeline.
type Config struct {
	Store               Store
	Decoders            *decode.Registry
	Chunker             chunk.Chunker
	Extractor           entity.Extractor
	Index               *invindex.Index
	MaxFileSize         int64
	SupportedExtensions []string
	// Workers bounds how many files IngestDirectory decodes concurrently.
	Workers int
	// ExtractEntities gates the entity-extraction stage. Entity-derived
	// relationships (below) are skipped automatically when this is false,
	// since there are no entities to relate.
	ExtractEntities bool
	// ExtractRelationships derives a co_occurs relationship between every
	// pair of distinct entities found in the same document.
	ExtractRelationships bool
	Callbacks            Callbacks
}

// Pipeline implements ingest_file and ingest_directory.
type Pipeline struct {
	cfg Config
}

// New builds a Pipeline, filling in defaults for MaxFileSize,
// SupportedExtensions, and Decoders when left zero.
func New(cfg Config) *Pipeline {
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = DefaultMaxFileSize
	}
	if len(cfg.SupportedExtensions) == 0 {
		cfg.SupportedExtensions = DefaultSupportedExtensions
	}
	if cfg.Decoders == nil {
		cfg.Decoders = decode.DefaultRegistry()
	}
	if cfg.Chunker == nil {
		cfg.Chunker = chunk.NewWordChunker(chunk.DefaultChunkSizeWords, chunk.DefaultOverlapWords)
	}
	if cfg.Extractor == nil {
		cfg.Extractor = entity.DefaultComposite()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	return &Pipeline{cfg: cfg}
}

func (p *Pipeline) notifyError(path, code, message string) {
	if p.cfg.Callbacks.OnError != nil {
		p.cfg.Callbacks.OnError(path, code, message)
	}
}

func (p *Pipeline) notifyProcessed(doc *store.Document) {
	if p.cfg.Callbacks.OnDocumentProcessed != nil {
		p.cfg.Callbacks.OnDocumentProcessed(doc)
	}
}

func errorOutcome(path, code, message string) Outcome {
	return Outcome{Path: path, Kind: OutcomeError, ErrorCode: code, ErrorMessage: message}
}
