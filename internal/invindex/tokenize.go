package invindex

import (
	"bufio"
	"strings"
	"unicode"

	porterstemmer "github.com/blevesearch/go-porterstemmer"
	"github.com/blevesearch/segment"
)

// stopwords is a fixed set of high-frequency English words excluded from
// indexing and querying.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "being": {}, "in": {}, "on": {}, "at": {}, "to": {},
	"for": {}, "of": {}, "with": {}, "by": {}, "from": {}, "up": {}, "about": {},
	"into": {}, "through": {}, "during": {}, "and": {}, "or": {}, "but": {},
	"if": {}, "then": {}, "else": {}, "as": {}, "it": {}, "this": {}, "that": {},
	"these": {}, "those": {}, "i": {}, "you": {}, "he": {}, "she": {}, "we": {},
	"they": {}, "them": {}, "his": {}, "her": {}, "its": {}, "our": {}, "their": {},
}

// Tokenize splits text into the token stream the index is built from:
// Unicode word segmentation, lowercasing, stopword removal, and English
// (Porter) stemming, in that order. Exported so internal/search can apply
// the identical pipeline to query text before looking up postings.
func Tokenize(text string) []string {
	var tokens []string

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(segment.SplitWords)

	for scanner.Scan() {
		word := scanner.Text()
		if !hasLetterOrDigit(word) {
			continue
		}
		lower := strings.ToLower(word)
		if _, stop := stopwords[lower]; stop {
			continue
		}
		tokens = append(tokens, porterstemmer.StemString(lower))
	}

	return tokens
}

func hasLetterOrDigit(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
