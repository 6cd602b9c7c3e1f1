package ingest

import (
	"context"

	"github.com/docmind/docmind/internal/xerrors"
)

// DeleteDocumentByPath removes the document at path, if one exists, from
// both the Store and the inverted index. A path with no known document is a
// no-op, not an error, matching the watcher's Deleted dispatch policy where
// a stale or duplicate delete event must never abort the batch.
func (p *Pipeline) DeleteDocumentByPath(ctx context.Context, path string) error {
	doc, err := p.cfg.Store.GetDocumentByPath(ctx, path)
	if err != nil {
		if xerrors.Code(err) == xerrors.ErrCodeStoreNotFound {
			return nil
		}
		return err
	}

	if err := p.cfg.Store.DeleteDocument(ctx, doc.ID); err != nil {
		return err
	}
	p.cfg.Index.Unindex(doc.ID)
	return nil
}
