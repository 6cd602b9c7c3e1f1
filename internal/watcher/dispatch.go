package watcher

import (
	"context"
	"log/slog"

	"github.com/docmind/docmind/internal/ingest"
)

// DocumentRemover deletes a document identified by its source path. The
// narrow interface lets Dispatcher depend on the Store facade without
// pulling in its full surface.
type DocumentRemover interface {
	DeleteDocumentByPath(ctx context.Context, path string) error
}

// DocumentIngestor runs the ingestion pipeline for a single file.
type DocumentIngestor interface {
	IngestFile(ctx context.Context, path string) ingest.Outcome
}

// Dispatcher turns coalesced FileEvents into ingestion pipeline calls,
// implementing the dispatch policy: Created/Modified ingest the file,
// Deleted removes its document, and Renamed removes the old path's document
// before ingesting the new one.
type Dispatcher struct {
	ingestor DocumentIngestor
	remover  DocumentRemover
}

// NewDispatcher builds a Dispatcher over the given ingestion and removal
// backends.
func NewDispatcher(ingestor DocumentIngestor, remover DocumentRemover) *Dispatcher {
	return &Dispatcher{ingestor: ingestor, remover: remover}
}

// Dispatch applies one coalesced event. Errors are non-fatal to the caller's
// event loop; they're returned so the caller can log or surface them.
func (d *Dispatcher) Dispatch(ctx context.Context, event FileEvent) error {
	switch event.Operation {
	case OpDelete:
		return d.remover.DeleteDocumentByPath(ctx, event.Path)

	case OpRename:
		if event.OldPath != "" {
			if err := d.remover.DeleteDocumentByPath(ctx, event.OldPath); err != nil {
				slog.Warn("failed to remove renamed-from document",
					slog.String("path", event.OldPath),
					slog.String("error", err.Error()),
				)
			}
		}
		outcome := d.ingestor.IngestFile(ctx, event.Path)
		return outcomeError(outcome)

	case OpCreate, OpModify:
		outcome := d.ingestor.IngestFile(ctx, event.Path)
		return outcomeError(outcome)

	default:
		return nil
	}
}

// DispatchBatch applies every event in a coalesced batch, continuing past
// individual failures so one bad file never blocks its siblings.
func (d *Dispatcher) DispatchBatch(ctx context.Context, events []FileEvent) {
	for _, event := range events {
		if err := d.Dispatch(ctx, event); err != nil {
			slog.Warn("dispatch failed",
				slog.String("path", event.Path),
				slog.String("op", event.Operation.String()),
				slog.String("error", err.Error()),
			)
		}
	}
}

func outcomeError(outcome ingest.Outcome) error {
	if outcome.Kind != ingest.OutcomeError {
		return nil
	}
	return &dispatchError{code: outcome.ErrorCode, message: outcome.ErrorMessage}
}

type dispatchError struct {
	code    string
	message string
}

func (e *dispatchError) Error() string {
	return e.code + ": " + e.message
}
