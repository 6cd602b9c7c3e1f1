package store

import (
	"context"
	"testing"
	"time"

	"github.com/docmind/docmind/internal/xerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleDoc(id, path, checksum string) *Document {
	now := time.Now().UTC()
	return &Document{
		ID:         id,
		SourcePath: path,
		MimeKind:   "text/plain",
		IngestedAt: now,
		ModifiedAt: now,
		Checksum:   checksum,
		Title:      "sample",
		Content:    "this document contains information about rust programming",
		WordCount:  9,
		CharCount:  57,
		Encoding:   "utf-8",
	}
}

func TestPutAndGetDocument(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	doc := sampleDoc("doc-1", "/tmp/a.txt", "checksum-a")
	chunks := []*Chunk{{ID: "chunk-1", DocumentID: doc.ID, Ordinal: 0, SpanStart: 0, SpanEnd: len(doc.Content), Content: doc.Content}}

	require.NoError(t, s.PutDocument(ctx, doc, chunks))
	assert.Greater(t, doc.IngestSeq, int64(0))

	got, err := s.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, doc.Content, got.Content)
	assert.Equal(t, doc.Checksum, got.Checksum)

	gotChunks, err := s.ListChunks(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, gotChunks, 1)
	assert.Equal(t, "chunk-1", gotChunks[0].ID)
}

func TestGetDocumentNotFound(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.GetDocument(ctx, "missing")
	require.Error(t, err)
	assert.Equal(t, xerrors.ErrCodeStoreNotFound, xerrors.Code(err))
}

func TestListDocumentsPaginationOutOfRangeIsEmpty(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.PutDocument(ctx, sampleDoc("doc-1", "/tmp/a.txt", "c1"), nil))
	require.NoError(t, s.PutDocument(ctx, sampleDoc("doc-2", "/tmp/b.txt", "c2"), nil))

	docs, err := s.ListDocuments(ctx, 10, 100)
	require.NoError(t, err)
	assert.Empty(t, docs)

	docs, err = s.ListDocuments(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestDeleteDocumentCascadesChunksEntitiesRelationships(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	doc := sampleDoc("doc-1", "/tmp/a.txt", "c1")
	chunks := []*Chunk{{ID: "chunk-1", DocumentID: doc.ID, Ordinal: 0, SpanStart: 0, SpanEnd: 10, Content: "rust prog"}}
	require.NoError(t, s.PutDocument(ctx, doc, chunks))

	e1 := &Entity{ID: "ent-1", DocumentID: doc.ID, Kind: EntityEmail, SurfaceForm: "a@example.com", Confidence: 0.9, SpanStart: 0, SpanEnd: 13}
	e2 := &Entity{ID: "ent-2", DocumentID: doc.ID, Kind: EntityURL, SurfaceForm: "https://example.com", Confidence: 0.9, SpanStart: 20, SpanEnd: 39}
	require.NoError(t, s.PutEntity(ctx, e1))
	require.NoError(t, s.PutEntity(ctx, e2))

	rel := &Relationship{ID: "rel-1", SourceEntityID: "ent-1", TargetEntityID: "ent-2", Label: "mentions", Strength: 1, Confidence: 1, CreatedAt: time.Now()}
	require.NoError(t, s.PutRelationship(ctx, rel))

	require.NoError(t, s.DeleteDocument(ctx, doc.ID))

	_, err := s.GetDocument(ctx, doc.ID)
	assert.Error(t, err)

	chunksLeft, err := s.ListChunks(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, chunksLeft)

	_, err = s.GetEntity(ctx, "ent-1")
	assert.Error(t, err)

	_, err = s.GetRelationship(ctx, "rel-1")
	assert.Error(t, err)
}

func TestDeleteDocumentNotFound(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	err := s.DeleteDocument(ctx, "missing")
	require.Error(t, err)
	assert.Equal(t, xerrors.ErrCodeStoreNotFound, xerrors.Code(err))
}

func TestGetDocumentByPath(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	doc := sampleDoc("doc-1", "/tmp/a.txt", "c1")
	require.NoError(t, s.PutDocument(ctx, doc, nil))

	got, err := s.GetDocumentByPath(ctx, "/tmp/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", got.ID)

	_, err = s.GetDocumentByPath(ctx, "/tmp/missing.txt")
	assert.Error(t, err)
}

func TestFullTextMatch(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.PutDocument(ctx, sampleDoc("doc-1", "/tmp/a.txt", "c1"), nil))

	results, err := s.FullTextMatch(ctx, "rust", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "doc-1", results[0].DocumentID)
}

func TestFullTextMatchEmptyQuery(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	results, err := s.FullTextMatch(ctx, "   ", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestHealthReportsOK(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	assert.NoError(t, s.Health(ctx))
}
