// Package chunk splits a Document's normalized plaintext into overlapping,
// word-windowed spans for storage as store.Chunk rows and for positional
// indexing by internal/invindex.
package chunk

// Span is one chunk of text prior to being assigned a Document and
// persisted as a store.Chunk: its ordinal position, its half-open
// character span into the source text, and its content.
type Span struct {
	Ordinal   int
	SpanStart int
	SpanEnd   int
	Content   string
}

// Chunker splits normalized plaintext into Spans.
type Chunker interface {
	Chunk(text string) ([]Span, error)
}
