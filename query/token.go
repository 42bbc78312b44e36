// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package query

import (
	"strings"
	"unicode"

	"github.com/poiesic/notesearch/core"
)

// tokenKind classifies one scanned span of the raw query.
type tokenKind int

const (
	tokenWord tokenKind = iota
	tokenPhrase
	tokenField
	tokenAnd
	tokenOr
	tokenNot
)

// token is a typed span produced by the scanner. Spans never overlap:
// field shapes are claimed before quoted phrases, phrases before
// operators and bare words, so later stages never re-match text that an
// earlier shape already consumed.
type token struct {
	kind    tokenKind
	value   string     // word text, phrase contents, or field value
	field   core.Field // set for tokenField
	quoted  bool       // field value was quoted
	negated bool       // field name or phrase carried a leading '-'
}

// scan walks the query string once, left to right, and produces the
// token stream. It never fails; text that fits no richer shape comes
// out as plain words.
func scan(input string) []token {
	runes := []rune(input)
	var tokens []token

	i := 0
	for i < len(runes) {
		ch := runes[i]
		switch {
		case unicode.IsSpace(ch):
			i++

		case ch == '"':
			phrase, next := readQuoted(runes, i+1)
			if strings.TrimSpace(phrase) != "" {
				tokens = append(tokens, token{kind: tokenPhrase, value: phrase})
			}
			i = next

		case ch == '-' && i+1 < len(runes) && runes[i+1] == '"':
			phrase, next := readQuoted(runes, i+2)
			if strings.TrimSpace(phrase) != "" {
				tokens = append(tokens, token{kind: tokenPhrase, value: phrase, negated: true})
			}
			i = next

		default:
			if tok, next, ok := readField(runes, i); ok {
				tokens = append(tokens, tok)
				i = next
				continue
			}

			word, next := readWord(runes, i)
			i = next
			switch strings.ToUpper(word) {
			case "AND":
				tokens = append(tokens, token{kind: tokenAnd})
			case "OR":
				tokens = append(tokens, token{kind: tokenOr})
			case "NOT":
				tokens = append(tokens, token{kind: tokenNot})
			default:
				if word != "" {
					tokens = append(tokens, token{kind: tokenWord, value: word})
				}
			}
		}
	}

	return tokens
}

// readField tries to match a -name:value shape starting at start, where
// value is either a quoted string or a run of non-whitespace.
//
// Unrecognized field names are a deliberate permissive fallback, not an
// error: the whole name:value text is returned as a single plain word.
// The one exception is an unknown name with a quoted value, where only
// the name and colon are claimed and the quoted span is left for the
// phrase logic, matching the extraction precedence.
func readField(runes []rune, start int) (token, int, bool) {
	i := start
	negated := false
	if runes[i] == '-' {
		negated = true
		i++
	}

	j := i
	for j < len(runes) && (unicode.IsLetter(runes[j]) || runes[j] == '_') {
		j++
	}
	if j == i || j >= len(runes) || runes[j] != ':' {
		return token{}, start, false
	}

	field, known := core.ParseField(string(runes[i:j]))

	k := j + 1
	if k < len(runes) && runes[k] == '"' {
		if !known {
			return token{kind: tokenWord, value: string(runes[start : j+1])}, k, true
		}
		phrase, next := readQuoted(runes, k+1)
		return token{
			kind:    tokenField,
			field:   field,
			value:   phrase,
			quoted:  true,
			negated: negated,
		}, next, true
	}

	v := k
	for v < len(runes) && !unicode.IsSpace(runes[v]) {
		v++
	}
	if v == k {
		// bare "name:" with no value, leave it to the word logic
		return token{}, start, false
	}
	if !known {
		return token{kind: tokenWord, value: string(runes[start:v])}, v, true
	}
	return token{
		kind:    tokenField,
		field:   field,
		value:   string(runes[k:v]),
		negated: negated,
	}, v, true
}

// readQuoted consumes up to the closing quote. An unterminated quote
// claims the rest of the input.
func readQuoted(runes []rune, start int) (string, int) {
	var b strings.Builder
	for i := start; i < len(runes); i++ {
		if runes[i] == '"' {
			return b.String(), i + 1
		}
		b.WriteRune(runes[i])
	}
	return b.String(), len(runes)
}

// readWord consumes characters up to whitespace or a quote. Stopping at
// the quote leaves an attached "..." span to be scanned as a phrase.
func readWord(runes []rune, start int) (string, int) {
	var b strings.Builder
	for i := start; i < len(runes); i++ {
		if unicode.IsSpace(runes[i]) || runes[i] == '"' {
			return b.String(), i
		}
		b.WriteRune(runes[i])
	}
	return b.String(), len(runes)
}
