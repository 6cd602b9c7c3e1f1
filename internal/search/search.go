// Package search implements the composite Search Engine: Standard, Fuzzy,
// Boolean, Wildcard, and (stubbed) Semantic query modes over the inverted
// index, a shared ranking formula, optional diversification, pagination,
// and snippet/highlight computation. Entity search is a separate path that
// scans the entity store directly.
package search

import "time"

// Mode selects how Query.Text is interpreted against the inverted index.
type Mode string

const (
	ModeStandard Mode = "STANDARD"
	ModeFuzzy    Mode = "FUZZY"
	ModeBoolean  Mode = "BOOLEAN"
	ModeWildcard Mode = "WILDCARD"
	ModeSemantic Mode = "SEMANTIC"
)

// Filters restricts the candidate set before scoring.
type Filters struct {
	// Kinds restricts by result kind. Every result this engine produces has
	// kind "document"; a non-empty Kinds that excludes "document" yields no
	// results rather than being ignored.
	Kinds []string

	// SourceTypes restricts by Document.MimeKind (e.g. "text/markdown").
	SourceTypes []string

	// FileTypes restricts by the source file's extension (e.g. ".md").
	FileTypes []string

	// DateFrom/DateTo restrict by Document.ModifiedAt, inclusive. Zero
	// values mean unbounded on that side.
	DateFrom time.Time
	DateTo   time.Time
}

// Options controls ranking, pagination, and result enrichment.
type Options struct {
	Limit  int
	Offset int

	IncludeSnippets  bool
	HighlightMatches bool
	FuzzyMatching    bool
	SemanticSearch   bool
	BoostRecent      bool

	// SnippetLength is the target character width of a generated snippet.
	// Zero selects DefaultSnippetLength.
	SnippetLength int

	// Diversify enables post-ranking diversification, capping results per
	// result-kind and per source-type while preserving rank order. The caps
	// default to DefaultDiversifyPerKind/DefaultDiversifyPerSourceType and
	// can be overridden via DiversifyPerKind/DiversifyPerSourceType (a
	// non-positive override keeps the default for that dimension).
	Diversify              bool
	DiversifyPerKind       int
	DiversifyPerSourceType int
}

// DefaultSnippetLength is used when Options.SnippetLength is zero.
const DefaultSnippetLength = 200

// DefaultDiversifyPerKind and DefaultDiversifyPerSourceType are the caps
// diversification applies when Options.Diversify is set but the
// corresponding override is left at zero.
const (
	DefaultDiversifyPerKind       = 10
	DefaultDiversifyPerSourceType = 5
)

// Query is a single search request.
type Query struct {
	Text    string
	Filters Filters
	Options Options
	Mode    Mode
}

// Result is one ranked document match.
type Result struct {
	DocumentID string
	Title      string
	SourcePath string
	MimeKind   string
	ModifiedAt time.Time

	Score      float64
	Relevance  float64
	Freshness  float64
	Popularity float64

	Snippet    string
	Highlights []Range

	MatchedTerms []string
}

// Range is a half-open character span, used for highlight spans.
type Range struct {
	Start int
	End   int
}

// Results is a page of ranked Results plus the total candidate count before
// pagination, so callers can tell an empty page from an out-of-range offset.
type Results struct {
	Results []Result
	Total   int
}
