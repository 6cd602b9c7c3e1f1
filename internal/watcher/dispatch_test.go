package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/docmind/docmind/internal/ingest"
	"github.com/docmind/docmind/internal/invindex"
	"github.com/docmind/docmind/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *ingest.Pipeline, *store.SQLiteStore) {
	t.Helper()
	st, err := store.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	p := ingest.New(ingest.Config{Store: st, Index: invindex.New()})
	return NewDispatcher(p, p), p, st
}

func TestDispatcher_CreatedIngestsFile(t *testing.T) {
	d, _, st := newTestDispatcher(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o644))

	require.NoError(t, d.Dispatch(context.Background(), FileEvent{Path: path, Operation: OpCreate}))

	doc, err := st.GetDocumentByPath(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.SourcePath)
}

func TestDispatcher_DeletedRemovesDocument(t *testing.T) {
	d, p, st := newTestDispatcher(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o644))

	outcome := p.IngestFile(context.Background(), path)
	require.Equal(t, ingest.OutcomeIngested, outcome.Kind)

	require.NoError(t, d.Dispatch(context.Background(), FileEvent{Path: path, Operation: OpDelete}))

	_, err := st.GetDocumentByPath(context.Background(), path)
	assert.Error(t, err)
}

func TestDispatcher_DeletedUnknownPathIsNoop(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	err := d.Dispatch(context.Background(), FileEvent{Path: "/never/ingested.txt", Operation: OpDelete})
	assert.NoError(t, err)
}

func TestDispatcher_RenamedRemovesOldAndIngestsNew(t *testing.T) {
	d, p, st := newTestDispatcher(t)
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.txt")
	newPath := filepath.Join(dir, "new.txt")
	require.NoError(t, os.WriteFile(oldPath, []byte("hello world"), 0o644))

	outcome := p.IngestFile(context.Background(), oldPath)
	require.Equal(t, ingest.OutcomeIngested, outcome.Kind)

	require.NoError(t, os.Rename(oldPath, newPath))
	err := d.Dispatch(context.Background(), FileEvent{Path: newPath, OldPath: oldPath, Operation: OpRename})
	require.NoError(t, err)

	_, err = st.GetDocumentByPath(context.Background(), oldPath)
	assert.Error(t, err)

	doc, err := st.GetDocumentByPath(context.Background(), newPath)
	require.NoError(t, err)
	assert.Equal(t, newPath, doc.SourcePath)
}

func TestDispatcher_ModifiedReingestsFile(t *testing.T) {
	d, p, st := newTestDispatcher(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("version one"), 0o644))

	outcome := p.IngestFile(context.Background(), path)
	require.Equal(t, ingest.OutcomeIngested, outcome.Kind)
	firstID := outcome.Document.ID

	require.NoError(t, os.WriteFile(path, []byte("version two, now longer"), 0o644))
	require.NoError(t, d.Dispatch(context.Background(), FileEvent{Path: path, Operation: OpModify}))

	doc, err := st.GetDocumentByPath(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, firstID, doc.ID)
	assert.Equal(t, "version two, now longer", doc.Content)
}

func TestDispatcher_IngestErrorIsReturned(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	err := d.Dispatch(context.Background(), FileEvent{Path: "/does/not/exist.txt", Operation: OpCreate})
	assert.Error(t, err)
}

func TestDispatchBatch_ContinuesPastFailures(t *testing.T) {
	d, _, st := newTestDispatcher(t)
	dir := t.TempDir()
	goodPath := filepath.Join(dir, "good.txt")
	require.NoError(t, os.WriteFile(goodPath, []byte("fine content"), 0o644))

	d.DispatchBatch(context.Background(), []FileEvent{
		{Path: "/bad/missing.txt", Operation: OpCreate},
		{Path: goodPath, Operation: OpCreate},
	})

	doc, err := st.GetDocumentByPath(context.Background(), goodPath)
	require.NoError(t, err)
	assert.Equal(t, goodPath, doc.SourcePath)
}
