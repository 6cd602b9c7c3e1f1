// Package entity implements the Entity Extractor: a composite of regex and
// rule-based extractors that scans a Document's plaintext for mentions of
// people, organizations, and structured data (emails, URLs, dates, money
// amounts, and the like), each tagged with a confidence score and a
// character span into the source text.
package entity

import "github.com/docmind/docmind/internal/store"

// Candidate is a single entity mention found in a span of text, prior to
// being persisted as a store.Entity against a specific Document.
type Candidate struct {
	Kind        store.EntityKind
	CustomKind  string
	SurfaceForm string
	Confidence  float64
	SpanStart   int
	SpanEnd     int
	Properties  map[string]string
}

// Extractor scans text and returns the entity mentions it recognizes. Spans
// are byte offsets into text, half-open [SpanStart, SpanEnd).
type Extractor interface {
	Extract(text string) ([]Candidate, error)
}
