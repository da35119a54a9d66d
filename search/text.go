package search

import (
	"strings"
	"unicode"

	"github.com/poiesic/mergen/location"
)

// Stop words to filter out when checking for verbatim matches. Entries are
// normalized.
var stopWords = map[string]bool{
	"ve": true, "ile": true, "bir": true, "bu": true, "su": true, "icin": true,
	"da": true, "de": true, "ta": true, "te": true, "ya": true, "ye": true,
	"a": true, "e": true, "mi": true, "mu": true, "cok": true, "en": true,
	"gibi": true, "olan": true, "istiyorum": true, "ariyorum": true, "bana": true,
	"otel": true, "oteli": true, "hotel": true, "tatil": true,
	"the": true, "and": true, "with": true, "in": true, "for": true,
}

// tokenizeAndFilter normalizes text, splits it into words and removes stop words.
func tokenizeAndFilter(text string) []string {
	words := strings.FieldsFunc(location.Normalize(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	filtered := words[:0]
	for _, word := range words {
		if !stopWords[word] {
			filtered = append(filtered, word)
		}
	}
	return filtered
}

// containsAllQueryWords checks if all query words (after filtering) appear in the document.
func containsAllQueryWords(document, query string) bool {
	queryWords := tokenizeAndFilter(query)
	if len(queryWords) == 0 {
		return false
	}

	docWords := tokenizeAndFilter(document)
	docWordSet := make(map[string]bool, len(docWords))
	for _, word := range docWords {
		docWordSet[word] = true
	}

	for _, qWord := range queryWords {
		if !docWordSet[qWord] {
			return false
		}
	}
	return true
}
