package entity

import (
	"testing"

	"github.com/docmind/docmind/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexExtractorEmailAndURL(t *testing.T) {
	r := NewRegexExtractor()
	cands, err := r.Extract("Contact us at test@example.com or visit https://example.com")
	require.NoError(t, err)

	var kinds []store.EntityKind
	for _, c := range cands {
		kinds = append(kinds, c.Kind)
	}
	assert.Contains(t, kinds, store.EntityEmail)
	assert.Contains(t, kinds, store.EntityURL)
}

func TestRegexExtractorPhoneAndMoney(t *testing.T) {
	r := NewRegexExtractor()
	cands, err := r.Extract("Call 555-123-4567 for a quote of $1,250.00")
	require.NoError(t, err)

	var hasPhone, hasMoney bool
	for _, c := range cands {
		if c.Kind == store.EntityPhone {
			hasPhone = true
		}
		if c.Kind == store.EntityMoney {
			assert.Equal(t, "$1,250.00", c.SurfaceForm)
			hasMoney = true
		}
	}
	assert.True(t, hasPhone)
	assert.True(t, hasMoney)
}

func TestRegexExtractorAddPattern(t *testing.T) {
	r := NewRegexExtractor()
	err := r.AddPattern(store.EntityCustom, "TICKET", `TICKET-\d+`, 0.99)
	require.NoError(t, err)

	cands, err := r.Extract("See TICKET-4821 for details.")
	require.NoError(t, err)

	require.Len(t, cands, 1)
	assert.Equal(t, store.EntityCustom, cands[0].Kind)
	assert.Equal(t, "TICKET", cands[0].CustomKind)
	assert.Equal(t, "TICKET-4821", cands[0].SurfaceForm)
}

func TestRegexExtractorRejectsInvalidPattern(t *testing.T) {
	r := NewRegexExtractor()
	err := r.AddPattern(store.EntityCustom, "BAD", `(unclosed`, 0.5)
	assert.Error(t, err)
}

func TestRuleExtractorRecognizesPersonPrefix(t *testing.T) {
	r := NewRuleExtractor()
	cands, err := r.Extract("Please speak with Dr. Alice Monroe about the results.")
	require.NoError(t, err)

	require.NotEmpty(t, cands)
	assert.Equal(t, store.EntityPerson, cands[0].Kind)
	assert.Contains(t, cands[0].SurfaceForm, "Alice Monroe")
}

func TestRuleExtractorRecognizesOrganizationSuffix(t *testing.T) {
	r := NewRuleExtractor()
	cands, err := r.Extract("We signed the contract with Initech Corp for the pilot.")
	require.NoError(t, err)

	var found bool
	for _, c := range cands {
		if c.Kind == store.EntityOrganization && c.SurfaceForm == "Initech Corp" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCompositeExtractsTwoDistinctNonOverlappingEntities(t *testing.T) {
	c := DefaultComposite()
	cands, err := c.Extract("Contact us at test@example.com or visit https://example.com")
	require.NoError(t, err)

	require.Len(t, cands, 2)
	for i := 0; i < len(cands); i++ {
		for j := i + 1; j < len(cands); j++ {
			overlap := cands[i].SpanStart < cands[j].SpanEnd && cands[j].SpanStart < cands[i].SpanEnd
			assert.False(t, overlap, "candidates must not overlap")
		}
	}
}

func TestResolveOverlapsPrefersHigherConfidence(t *testing.T) {
	candidates := []Candidate{
		{Kind: store.EntityPerson, SurfaceForm: "weak", Confidence: 0.5, SpanStart: 0, SpanEnd: 10},
		{Kind: store.EntityOrganization, SurfaceForm: "strong", Confidence: 0.9, SpanStart: 2, SpanEnd: 8},
	}
	kept := resolveOverlaps(candidates)
	require.Len(t, kept, 1)
	assert.Equal(t, "strong", kept[0].SurfaceForm)
}

func TestResolveOverlapsTieBreaksOnEarlierStartThenLongerSpan(t *testing.T) {
	candidates := []Candidate{
		{Kind: store.EntityPerson, SurfaceForm: "b", Confidence: 0.8, SpanStart: 5, SpanEnd: 9},
		{Kind: store.EntityPerson, SurfaceForm: "a", Confidence: 0.8, SpanStart: 0, SpanEnd: 6},
	}
	kept := resolveOverlaps(candidates)
	require.Len(t, kept, 1)
	assert.Equal(t, "a", kept[0].SurfaceForm)
}

func TestResolveOverlapsKeepsNonOverlappingCandidates(t *testing.T) {
	candidates := []Candidate{
		{Kind: store.EntityPerson, SurfaceForm: "first", Confidence: 0.8, SpanStart: 0, SpanEnd: 5},
		{Kind: store.EntityPerson, SurfaceForm: "second", Confidence: 0.8, SpanStart: 20, SpanEnd: 26},
	}
	kept := resolveOverlaps(candidates)
	require.Len(t, kept, 2)
}

func TestDropNearDuplicatesCollapsesCloseRepeats(t *testing.T) {
	candidates := []Candidate{
		{Kind: store.EntityPerson, SurfaceForm: "Alice", SpanStart: 0, SpanEnd: 5},
		{Kind: store.EntityPerson, SurfaceForm: "Alice", SpanStart: 8, SpanEnd: 13},
		{Kind: store.EntityPerson, SurfaceForm: "Alice", SpanStart: 100, SpanEnd: 105},
	}
	out := dropNearDuplicates(candidates)
	require.Len(t, out, 2)
	assert.Equal(t, 0, out[0].SpanStart)
	assert.Equal(t, 100, out[1].SpanStart)
}
