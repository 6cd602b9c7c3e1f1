// Package ingest implements the Ingestion Pipeline: validate, checksum,
// decode, chunk, extract entities, and persist a file as a Document, one
// file or one directory tree at a time.
package ingest

import (
	"github.com/docmind/docmind/internal/store"
)

// OutcomeKind classifies how ingest_file resolved for one path.
type OutcomeKind string

const (
	OutcomeIngested  OutcomeKind = "INGESTED"
	OutcomeUnchanged OutcomeKind = "UNCHANGED"
	OutcomeError     OutcomeKind = "ERROR"
)

// Outcome is the result of ingesting a single file.
type Outcome struct {
	Path         string
	Kind         OutcomeKind
	Document     *store.Document
	ErrorCode    string
	ErrorMessage string
}

// DefaultWorkers is used when Config.Workers is left at zero.
const DefaultWorkers = 4

// Callbacks are notified as ingestion proceeds. Any of them may be nil.
type Callbacks struct {
	// OnDocumentProcessed fires once per successfully ingested document
	// (not for UNCHANGED outcomes, which reprocess nothing).
	OnDocumentProcessed func(doc *store.Document)

	// OnError fires for every non-success outcome.
	OnError func(path, code, message string)

	// OnProgress fires after each file during directory ingestion only.
	OnProgress func(processed, total int)
}
