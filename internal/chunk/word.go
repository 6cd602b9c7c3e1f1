package chunk

import "regexp"

// DefaultChunkSizeWords and DefaultOverlapWords define the word-count
// window used when no explicit chunk size is configured.
const (
	DefaultChunkSizeWords = 200
	DefaultOverlapWords   = 40
)

var wordPattern = regexp.MustCompile(`\S+`)

// WordChunker splits text into fixed-size, overlapping windows of
// whitespace-delimited words. Spans are widened at both chunking seams so
// that consecutive chunks touch or overlap with no gap: the first chunk's
// span starts at byte 0, the last chunk's span ends at len(text), and every
// interior chunk's span ends no earlier than where the next chunk's span
// begins: exactly there when OverlapWords is 0, past it when the windows
// share words.
// This keeps the union of all spans equal to the entire input regardless of
// how ChunkSizeWords and OverlapWords are set.
type WordChunker struct {
	ChunkSizeWords int
	OverlapWords   int
}

// NewWordChunker builds a WordChunker with the given window and overlap, in
// words. Non-positive chunkSize falls back to DefaultChunkSizeWords;
// overlap out of [0, chunkSize) falls back to DefaultOverlapWords.
func NewWordChunker(chunkSizeWords, overlapWords int) *WordChunker {
	if chunkSizeWords <= 0 {
		chunkSizeWords = DefaultChunkSizeWords
	}
	if overlapWords < 0 || overlapWords >= chunkSizeWords {
		overlapWords = DefaultOverlapWords
	}
	return &WordChunker{ChunkSizeWords: chunkSizeWords, OverlapWords: overlapWords}
}

func (c *WordChunker) Chunk(text string) ([]Span, error) {
	words := wordPattern.FindAllStringIndex(text, -1)
	if len(words) == 0 {
		return nil, nil
	}

	step := c.ChunkSizeWords - c.OverlapWords
	if step < 1 {
		step = 1
	}

	var spans []Span
	ordinal := 0
	for start := 0; start < len(words); start += step {
		end := start + c.ChunkSizeWords
		last := end >= len(words)
		if last {
			end = len(words)
		}

		spanStart := words[start][0]
		if start == 0 {
			spanStart = 0
		}

		var spanEnd int
		if last {
			spanEnd = len(text)
		} else {
			naturalEnd := words[end-1][1]
			bridgeStart := words[start+step][0]
			spanEnd = naturalEnd
			if bridgeStart > spanEnd {
				spanEnd = bridgeStart
			}
		}

		spans = append(spans, Span{
			Ordinal:   ordinal,
			SpanStart: spanStart,
			SpanEnd:   spanEnd,
			Content:   text[spanStart:spanEnd],
		})
		ordinal++

		if last {
			break
		}
	}

	return spans, nil
}
