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


package search

import (
	"strings"
	"time"

	"github.com/poiesic/notesearch/core"
)

// matchQuery reports whether a note satisfies every term and date range,
// mirroring the relational lowering's flat top-level AND semantics.
// Matching is case-insensitive, like LIKE in the usual collations.
func matchQuery(q *core.SearchQuery, note *core.Note) bool {
	for _, term := range q.Terms {
		if matchTerm(term, note) == term.Negated {
			return false
		}
	}

	for _, r := range q.Dates {
		if r.IsZero() {
			continue
		}
		t := dateValue(note, r.DateField())
		if r.Start != nil && t.Before(*r.Start) {
			return false
		}
		if r.End != nil && t.After(*r.End) {
			return false
		}
	}

	return true
}

// matchTerm evaluates one term against the note, ignoring negation;
// the caller applies it.
func matchTerm(term core.SearchTerm, note *core.Note) bool {
	value := strings.ToLower(term.Value)

	for _, candidate := range fieldValues(note, term.Field) {
		candidate = strings.ToLower(candidate)
		switch {
		case term.IsWildcard:
			if globMatch(value, candidate) {
				return true
			}
		case term.Field == "" || term.IsPhrase:
			if strings.Contains(candidate, value) {
				return true
			}
		default:
			if candidate == value {
				return true
			}
		}
	}
	return false
}

// fieldValues returns the note values a term's field compares against.
// An empty field means the default text columns, matching the
// title-or-content OR in the relational lowering.
func fieldValues(note *core.Note, field core.Field) []string {
	switch field {
	case core.FieldTitle:
		return []string{note.Title}
	case core.FieldContent:
		return []string{note.Content}
	case core.FieldTag:
		return note.Tags
	case core.FieldType:
		return []string{note.Type}
	case core.FieldAuthor:
		return []string{note.Author}
	case core.FieldStatus:
		return []string{note.Status}
	case core.FieldSource:
		return []string{note.Source}
	default:
		return []string{note.Title, note.Content}
	}
}

// dateValue picks the timestamp a date range compares against.
// The date field is an alias for the creation time.
func dateValue(note *core.Note, field core.Field) time.Time {
	if field == core.FieldUpdated {
		return note.Updated
	}
	return note.Created
}

// globMatch matches a * / ? glob pattern against the whole string,
// the in-process equivalent of the lowered LIKE pattern. * matches any
// run of characters, ? exactly one.
func globMatch(pattern, s string) bool {
	p := []rune(pattern)
	v := []rune(s)

	pi, vi := 0, 0
	star, starMatch := -1, 0

	for vi < len(v) {
		switch {
		case pi < len(p) && (p[pi] == '?' || p[pi] == v[vi]):
			pi++
			vi++
		case pi < len(p) && p[pi] == '*':
			star = pi
			starMatch = vi
			pi++
		case star >= 0:
			// Backtrack: let the last * swallow one more rune.
			starMatch++
			vi = starMatch
			pi = star + 1
		default:
			return false
		}
	}

	for pi < len(p) && p[pi] == '*' {
		pi++
	}
	return pi == len(p)
}
