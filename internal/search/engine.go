package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/docmind/docmind/internal/invindex"
	"github.com/docmind/docmind/internal/store"
	"github.com/docmind/docmind/internal/xerrors"
)

// Store is the narrow persistence surface the search engine needs: document
// lookup by id for ranking/snippet enrichment, and entity lookup for the
// separate entity-search path.
type Store interface {
	GetDocument(ctx context.Context, id string) (*store.Document, error)
	SearchEntitiesByName(ctx context.Context, substr string, kind store.EntityKind, limit int) ([]*store.Entity, error)
}

// Engine is the composite search engine: Standard, Fuzzy, Boolean,
// Wildcard, and (stubbed) Semantic query modes over a shared inverted
// index, ranked by a single relevance/freshness/popularity formula.
type Engine struct {
	mu      sync.RWMutex
	index   *invindex.Index
	docs    Store
	weights Weights
}

// EngineOption configures an Engine at construction time.
type EngineOption func(*Engine)

// WithWeights overrides the default ranking weights.
func WithWeights(w Weights) EngineOption {
	return func(e *Engine) {
		e.weights = w
	}
}

// NewEngine builds an Engine over the given index and document store.
func NewEngine(index *invindex.Index, docs Store, opts ...EngineOption) *Engine {
	e := &Engine{
		index:   index,
		docs:    docs,
		weights: DefaultWeights(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Search runs query against the index in the requested mode, fetches each
// surviving candidate's document, ranks, optionally diversifies, paginates,
// and attaches snippets/highlights. If ctx is done before results are
// assembled, the partial candidate set is discarded entirely and a
// cancellation/timeout error is returned instead.
func (e *Engine) Search(ctx context.Context, q Query) (*Results, error) {
	mode := q.Mode
	if mode == "" {
		mode = ModeStandard
	}

	if mode != ModeSemantic && strings.TrimSpace(q.Text) == "" {
		return nil, xerrors.New(xerrors.ErrCodeSearchInvalidQuery, "query text must not be empty", nil)
	}

	e.mu.RLock()
	index := e.index
	weights := e.weights
	e.mu.RUnlock()

	var set *candidateSet
	switch mode {
	case ModeStandard:
		set = standardSearch(index, q.Text)
	case ModeFuzzy:
		set = fuzzySearch(index, q.Text)
	case ModeBoolean:
		set = booleanSearch(index, q.Text)
	case ModeWildcard:
		set = wildcardSearch(index, q.Text)
	case ModeSemantic:
		if err := semanticSearch(); err != nil {
			return nil, err
		}
		return &Results{Results: []Result{}, Total: 0}, nil
	default:
		return nil, xerrors.New(xerrors.ErrCodeSearchInvalidQuery, "unknown search mode: "+string(mode), nil)
	}

	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	candidates := set.list()
	docs := make(map[string]*store.Document, len(candidates))
	for _, c := range candidates {
		if err := ctxErr(ctx); err != nil {
			return nil, err
		}
		doc, err := e.docs.GetDocument(ctx, c.documentID)
		if err != nil {
			continue
		}
		docs[c.documentID] = doc
	}

	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	if err := applyFilters(q.Filters, docs); err != nil {
		return nil, err
	}

	ranked := rank(weights, candidates, docs, now(), invindex.Tokenize(q.Text))

	total := len(ranked)

	if q.Options.Diversify {
		ranked = diversify(ranked, q.Options.DiversifyPerKind, q.Options.DiversifyPerSourceType)
	}

	page := paginate(ranked, q.Options.Offset, q.Options.Limit)

	results := make([]Result, 0, len(page))
	for _, rc := range page {
		r := Result{
			DocumentID:   rc.doc.ID,
			Title:        rc.doc.Title,
			SourcePath:   rc.doc.SourcePath,
			MimeKind:     rc.doc.MimeKind,
			ModifiedAt:   rc.doc.ModifiedAt,
			Score:        rc.score,
			Relevance:    rc.relevance,
			Freshness:    rc.freshness,
			Popularity:   rc.popularity,
			MatchedTerms: rc.matched,
		}
		if q.Options.IncludeSnippets {
			r.Snippet = snippet(rc.doc.Content, rc.matched, q.Options.SnippetLength)
		}
		if q.Options.HighlightMatches {
			r.Highlights = highlights(rc.doc.Content, rc.matched)
		}
		results = append(results, r)
	}

	return &Results{Results: results, Total: total}, nil
}

// applyFilters drops any document failing a non-kind filter. Kinds is
// special: every result this engine produces has kind "document", so a
// non-empty Kinds filter that excludes "document" yields zero results
// rather than being silently ignored.
func applyFilters(f Filters, docs map[string]*store.Document) error {
	if len(f.Kinds) > 0 && !containsFold(f.Kinds, "document") {
		for id := range docs {
			delete(docs, id)
		}
		return nil
	}

	for id, doc := range docs {
		if len(f.SourceTypes) > 0 && !containsFold(f.SourceTypes, doc.MimeKind) {
			delete(docs, id)
			continue
		}
		if len(f.FileTypes) > 0 && !matchesFileType(f.FileTypes, doc.SourcePath) {
			delete(docs, id)
			continue
		}
		if !f.DateFrom.IsZero() && doc.ModifiedAt.Before(f.DateFrom) {
			delete(docs, id)
			continue
		}
		if !f.DateTo.IsZero() && doc.ModifiedAt.After(f.DateTo) {
			delete(docs, id)
			continue
		}
	}
	return nil
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}

func matchesFileType(fileTypes []string, sourcePath string) bool {
	for _, ft := range fileTypes {
		ft = strings.TrimPrefix(ft, ".")
		if strings.HasSuffix(strings.ToLower(sourcePath), "."+strings.ToLower(ft)) {
			return true
		}
	}
	return false
}

func ctxErr(ctx context.Context) error {
	switch ctx.Err() {
	case nil:
		return nil
	case context.DeadlineExceeded:
		return xerrors.New(xerrors.ErrCodeTimeout, "search deadline exceeded", ctx.Err())
	default:
		return xerrors.New(xerrors.ErrCodeCancelled, "search cancelled", ctx.Err())
	}
}

// now is indirected so tests can exercise freshness scoring deterministically
// without depending on wall-clock time.
var now = time.Now
