package search

import "github.com/docmind/docmind/internal/xerrors"

// semanticSearch is not implemented: there is no embedding model wired into
// this engine. Callers that request Mode=ModeSemantic get a typed error
// rather than a silently empty result set.
func semanticSearch() error {
	return xerrors.New(xerrors.ErrCodeSearchNotImplemented, "semantic search is not implemented", nil)
}
