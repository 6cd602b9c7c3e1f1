package decode

import (
	"testing"

	"github.com/docmind/docmind/internal/xerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaintextDecoderTitleFromStem(t *testing.T) {
	d := &PlaintextDecoder{}
	doc, err := d.Decode("/tmp/notes.txt", []byte("hello world"))
	require.NoError(t, err)
	assert.Equal(t, "notes", doc.Title)
	assert.Equal(t, "hello world", doc.Plaintext)
}

func TestPlaintextDecoderStripsControlBytesKeepsNewlines(t *testing.T) {
	d := &PlaintextDecoder{}
	doc, err := d.Decode("/tmp/a.txt", []byte("line one\x00\x07\nline two\tindented"))
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\tindented", doc.Plaintext)
}

func TestMarkdownDecoderCanHandle(t *testing.T) {
	d := &MarkdownDecoder{}
	assert.True(t, d.CanHandle("README.md"))
	assert.True(t, d.CanHandle("notes.MARKDOWN"))
	assert.False(t, d.CanHandle("data.txt"))
}

func TestMarkdownDecoderDerivesTitleFromATXHeading(t *testing.T) {
	d := &MarkdownDecoder{}
	doc, err := d.Decode("/tmp/doc.md", []byte("# My Document\n\nBody text."))
	require.NoError(t, err)
	assert.Equal(t, "My Document", doc.Title)
}

func TestMarkdownDecoderDerivesTitleFromSetextHeading(t *testing.T) {
	d := &MarkdownDecoder{}
	doc, err := d.Decode("/tmp/doc.md", []byte("My Document\n===\n\nBody text."))
	require.NoError(t, err)
	assert.Equal(t, "My Document", doc.Title)
}

func TestMarkdownDecoderFallsBackToStemWhenNoHeading(t *testing.T) {
	d := &MarkdownDecoder{}
	doc, err := d.Decode("/tmp/plain-notes.md", []byte("just a paragraph, no heading"))
	require.NoError(t, err)
	assert.Equal(t, "plain-notes", doc.Title)
}

func TestRegistryDispatchesFirstMatch(t *testing.T) {
	r := DefaultRegistry()
	doc, err := r.Decode("/tmp/readme.md", []byte("# Title\nbody"))
	require.NoError(t, err)
	assert.Equal(t, "Title", doc.Title)

	doc, err = r.Decode("/tmp/notes.txt", []byte("plain text"))
	require.NoError(t, err)
	assert.Equal(t, "notes", doc.Title)
}

func TestRegistryUnsupportedFormat(t *testing.T) {
	r := NewRegistry(&MarkdownDecoder{})
	_, err := r.Decode("/tmp/image.png", []byte{0x89, 'P', 'N', 'G'})
	require.Error(t, err)
	assert.Equal(t, xerrors.ErrCodeDecodeUnsupported, xerrors.Code(err))
}
