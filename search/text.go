package search

import (
	"strings"
	"unicode"

	"github.com/poiesic/notesearch/core"
)

// stopWords are connective words too common to signal a verbatim match.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "but": {}, "by": {}, "do": {}, "for": {}, "from": {},
	"have": {}, "in": {}, "is": {}, "it": {}, "not": {}, "of": {},
	"on": {}, "or": {}, "that": {}, "the": {}, "this": {}, "to": {},
	"was": {}, "with": {}, "you": {},
}

// splitWords lowercases text and splits it into letter-and-digit runs,
// so punctuation and quoting never hide a match.
func splitWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// boostWords collects the distinct significant words across the positive
// term values of a query. An empty result disables the boost.
func boostWords(values []string) []string {
	seen := make(map[string]struct{})
	var words []string
	for _, value := range values {
		for _, word := range splitWords(value) {
			if _, stop := stopWords[word]; stop {
				continue
			}
			if _, dup := seen[word]; dup {
				continue
			}
			seen[word] = struct{}{}
			words = append(words, word)
		}
	}
	return words
}

// containsAllWords reports whether the note's title and content together
// carry every word.
func containsAllWords(note *core.Note, words []string) bool {
	if len(words) == 0 {
		return false
	}

	have := make(map[string]struct{})
	for _, word := range splitWords(note.Title + " " + note.Content) {
		have[word] = struct{}{}
	}

	for _, word := range words {
		if _, ok := have[word]; !ok {
			return false
		}
	}
	return true
}
