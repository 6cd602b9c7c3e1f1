// Package decode implements the Format Decoders collaborator: per-type text
// extraction returning a normalized RawDocument. PDF/DOCX/HTML decoders are
// out of scope (spec §1 treats them as external collaborators); Registry is
// the extension point a host embeds them through.
package decode

import (
	"path/filepath"
	"strings"
)

// RawDocument is a decoder's normalized output: UTF-8 plaintext plus a
// derived title and format-specific metadata.
type RawDocument struct {
	Title          string
	Plaintext      string
	FormatMetadata map[string]string
}

// Decoder extracts text from a single file format.
type Decoder interface {
	// CanHandle reports whether this decoder claims path.
	CanHandle(path string) bool

	// Decode extracts a RawDocument from path.
	Decode(path string, raw []byte) (*RawDocument, error)
}

// titleFromStem derives a title from a file's base name with its extension
// removed, the fallback every decoder uses when the format carries no title.
func titleFromStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
