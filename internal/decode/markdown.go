package decode

import (
	"path/filepath"
	"regexp"
	"strings"
)

// atxHeaderPattern matches ATX headings: # Title, ## Title, etc.
var atxHeaderPattern = regexp.MustCompile(`(?m)^#{1,6}\s+(.+?)\s*$`)

// setextHeaderPattern matches Setext-style level-1 headings: a line of text
// immediately followed by a line of === underlines.
var setextHeaderPattern = regexp.MustCompile(`(?m)^(.+)\n=+\s*$`)

// MarkdownDecoder handles .md, .markdown, and .mdx files: the content is
// passed through unchanged (chunking and search treat markdown as plain
// text), but the title is derived from the document's first heading when
// one is present, ahead of the file-stem fallback.
type MarkdownDecoder struct{}

func (d *MarkdownDecoder) CanHandle(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".mdx":
		return true
	default:
		return false
	}
}

func (d *MarkdownDecoder) Decode(path string, raw []byte) (*RawDocument, error) {
	content := normalizeText(raw)

	title := firstHeading(content)
	if title == "" {
		title = titleFromStem(path)
	}

	return &RawDocument{
		Title:          title,
		Plaintext:      content,
		FormatMetadata: map[string]string{"format": "markdown"},
	}, nil
}

// firstHeading returns the text of the first ATX or Setext heading found,
// whichever appears earlier in the document, or "" if neither is present.
func firstHeading(content string) string {
	atxLoc := atxHeaderPattern.FindStringSubmatchIndex(content)
	setextLoc := setextHeaderPattern.FindStringSubmatchIndex(content)

	switch {
	case atxLoc == nil && setextLoc == nil:
		return ""
	case atxLoc == nil:
		return strings.TrimSpace(content[setextLoc[2]:setextLoc[3]])
	case setextLoc == nil:
		return strings.TrimSpace(content[atxLoc[2]:atxLoc[3]])
	case atxLoc[0] <= setextLoc[0]:
		return strings.TrimSpace(content[atxLoc[2]:atxLoc[3]])
	default:
		return strings.TrimSpace(content[setextLoc[2]:setextLoc[3]])
	}
}
