package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/docmind/docmind/internal/config"
	"github.com/docmind/docmind/internal/ingest"
	"github.com/docmind/docmind/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCore(t *testing.T) (*Core, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.NewConfig()
	cfg.DBPath = ""
	cfg.WatchPaths = []string{dir}

	c, err := New(cfg, dir, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Shutdown() })
	return c, dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewBuildsWorkingCore(t *testing.T) {
	c, _ := newTestCore(t)
	assert.NotNil(t, c.store)
	assert.NotNil(t, c.index)
	assert.NotNil(t, c.engine)
	assert.NotNil(t, c.graph)
}

func TestIngestFileIsSearchable(t *testing.T) {
	c, dir := newTestCore(t)
	path := writeFile(t, dir, "notes.md", "# Meeting Notes\n\nDiscussed the quarterly roadmap with the team.")

	outcome := c.IngestFile(context.Background(), path)
	require.Equal(t, ingest.OutcomeIngested, outcome.Kind)

	results, err := c.Search(context.Background(), search.Query{
		Text: "roadmap",
		Mode: search.ModeStandard,
		Options: search.Options{
			Limit: 10,
		},
	})
	require.NoError(t, err)
	require.Len(t, results.Results, 1)
	assert.Equal(t, outcome.Document.ID, results.Results[0].DocumentID)
}

func TestIngestDirectoryReportsProgress(t *testing.T) {
	c, dir := newTestCore(t)
	writeFile(t, dir, "a.txt", "alpha content here")
	writeFile(t, dir, "b.txt", "beta content here")

	outcomes, err := c.IngestDirectory(context.Background(), dir)
	require.NoError(t, err)
	assert.Len(t, outcomes, 2)

	snapshot := c.Progress()
	assert.Equal(t, "ready", snapshot.Status)
	assert.Equal(t, 2, snapshot.FilesTotal)
}

func TestDeleteDocumentUnindexes(t *testing.T) {
	c, dir := newTestCore(t)
	path := writeFile(t, dir, "gone.txt", "ephemeral content")

	outcome := c.IngestFile(context.Background(), path)
	require.Equal(t, ingest.OutcomeIngested, outcome.Kind)

	require.NoError(t, c.DeleteDocument(context.Background(), outcome.Document.ID))

	results, err := c.Search(context.Background(), search.Query{
		Text: "ephemeral",
		Mode: search.ModeStandard,
		Options: search.Options{
			Limit: 10,
		},
	})
	require.NoError(t, err)
	assert.Empty(t, results.Results)
}

func TestGetHealthReportsDocumentCount(t *testing.T) {
	c, dir := newTestCore(t)
	writeFile(t, dir, "one.txt", "one content")
	writeFile(t, dir, "two.txt", "two content")

	_, err := c.IngestDirectory(context.Background(), dir)
	require.NoError(t, err)

	health := c.GetHealth(context.Background())
	assert.True(t, health.Healthy)
	assert.Equal(t, 2, health.DocCount)
	assert.True(t, health.WatcherOK)
}

func TestEncryptionRoundTrips(t *testing.T) {
	dir := t.TempDir()
	cfg := config.NewConfig()
	cfg.DBPath = ""
	cfg.Encryption.Enabled = true

	c, err := New(cfg, dir, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Shutdown() })

	path := writeFile(t, dir, "secret.txt", "the launch codes are hidden here")
	outcome := c.IngestFile(context.Background(), path)
	require.Equal(t, ingest.OutcomeIngested, outcome.Kind)

	doc, err := c.GetDocument(context.Background(), outcome.Document.ID)
	require.NoError(t, err)
	assert.Equal(t, "the launch codes are hidden here", doc.Content)
}
