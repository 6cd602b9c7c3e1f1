package search

import (
	"strings"

	"github.com/docmind/docmind/internal/invindex"
)

// booleanSearch parses an infix AND/OR expression (case-insensitive, AND
// binding tighter than OR) and evaluates it as set intersection/union over
// the inverted index's posting lists. Every surviving candidate receives a
// uniform relevance of 1.0 before ranking blends in freshness/popularity.
func booleanSearch(index *invindex.Index, query string) *candidateSet {
	tokens := booleanTokens(query)
	p := &booleanParser{tokens: tokens}
	docIDs, terms := p.parseOr(index)

	set := newCandidateSet()
	for docID := range docIDs {
		set.add(docID, 1.0, "")
	}
	for docID := range docIDs {
		if c, ok := set.byID[docID]; ok {
			c.matchedTerms = terms
		}
	}
	return set
}

// booleanTokens splits on whitespace, uppercasing bare AND/OR operators so
// the parser can match them case-insensitively while leaving search terms
// (which are lowercased/stemmed downstream by Tokenize) untouched here.
func booleanTokens(query string) []string {
	fields := strings.Fields(query)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		switch strings.ToUpper(f) {
		case "AND", "OR":
			out = append(out, strings.ToUpper(f))
		default:
			out = append(out, f)
		}
	}
	return out
}

type booleanParser struct {
	tokens []string
	pos    int
}

func (p *booleanParser) peek() (string, bool) {
	if p.pos >= len(p.tokens) {
		return "", false
	}
	return p.tokens[p.pos], true
}

func (p *booleanParser) next() (string, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

// parseOr: term-expr (OR term-expr)*
func (p *booleanParser) parseOr(index *invindex.Index) (map[string]struct{}, []string) {
	result, terms := p.parseAnd(index)
	for {
		tok, ok := p.peek()
		if !ok || tok != "OR" {
			break
		}
		p.next()
		rhs, rhsTerms := p.parseAnd(index)
		result = union(result, rhs)
		terms = append(terms, rhsTerms...)
	}
	return result, terms
}

// parseAnd: operand (AND operand)*
func (p *booleanParser) parseAnd(index *invindex.Index) (map[string]struct{}, []string) {
	result, terms := p.parseOperand(index)
	for {
		tok, ok := p.peek()
		if !ok || tok != "AND" {
			break
		}
		p.next()
		rhs, rhsTerms := p.parseOperand(index)
		result = intersect(result, rhs)
		terms = append(terms, rhsTerms...)
	}
	return result, terms
}

// parseOperand: a single search term, tokenized/stemmed and looked up
// against the index's postings.
func (p *booleanParser) parseOperand(index *invindex.Index) (map[string]struct{}, []string) {
	tok, ok := p.next()
	if !ok || tok == "AND" || tok == "OR" {
		return map[string]struct{}{}, nil
	}

	var terms []string
	docs := map[string]struct{}{}
	for _, stemmed := range invindex.Tokenize(tok) {
		terms = append(terms, stemmed)
		for _, posting := range index.Postings(stemmed) {
			docs[posting.DocumentID] = struct{}{}
		}
	}
	return docs, terms
}

func union(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		out[k] = struct{}{}
	}
	for k := range b {
		out[k] = struct{}{}
	}
	return out
}

func intersect(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for k := range a {
		if _, ok := b[k]; ok {
			out[k] = struct{}{}
		}
	}
	return out
}
