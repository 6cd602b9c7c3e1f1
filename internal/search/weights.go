package search

import (
	"math"
	"time"

	"github.com/docmind/docmind/internal/store"
)

// Weights are the ranking formula's blend coefficients, normalized to sum
// to 1.
type Weights struct {
	Relevance  float64
	Freshness  float64
	Popularity float64
}

// DefaultWeights matches the documented (0.6, 0.2, 0.2) split.
func DefaultWeights() Weights {
	return Weights{Relevance: 0.6, Freshness: 0.2, Popularity: 0.2}
}

func (w Weights) normalized() Weights {
	sum := w.Relevance + w.Freshness + w.Popularity
	if sum <= 0 {
		return DefaultWeights()
	}
	return Weights{
		Relevance:  w.Relevance / sum,
		Freshness:  w.Freshness / sum,
		Popularity: w.Popularity / sum,
	}
}

// freshness decays a document's score with age: exp(-age_days/30).
func freshness(modifiedAt, now time.Time) float64 {
	ageDays := now.Sub(modifiedAt).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	return math.Exp(-ageDays / 30)
}

// mimeKindBias ranks MIME kinds: PDF > Markdown > plaintext > anything else.
func mimeKindBias(mimeKind string) float64 {
	switch mimeKind {
	case "application/pdf":
		return 1.0
	case "text/markdown":
		return 0.7
	case "text/plain":
		return 0.4
	default:
		return 0.2
	}
}

// popularity blends file-size and word-count (both log-scaled to tame
// heavy-tailed documents) with a small MIME-kind bias.
func popularity(doc *store.Document) float64 {
	sizeScore := math.Log1p(float64(doc.CharCount))
	wordScore := math.Log1p(float64(doc.WordCount))
	bias := mimeKindBias(doc.MimeKind)

	// Normalize the log components against a generous reference scale so
	// the blended result stays roughly within [0, 1] for typical documents
	// rather than growing unbounded with corpus size.
	const refScale = 12.0 // ln(1 + ~162k chars/words), comfortably above typical documents
	normalized := (sizeScore + wordScore) / (2 * refScale)
	if normalized > 1 {
		normalized = 1
	}
	return 0.8*normalized + 0.2*bias
}

// score combines relevance/freshness/popularity per the ranking formula.
func score(w Weights, relevance, fresh, pop float64) float64 {
	w = w.normalized()
	return w.Relevance*relevance + w.Freshness*fresh + w.Popularity*pop
}
