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

	"github.com/poiesic/notesearch/core"
)

// MatchAll is the sentinel full-text query returned when no term is
// eligible, so callers always get a usable non-empty expression.
const MatchAll = "*"

// FTSQuery lowers a query into the full-text engine's syntax.
//
// Only terms scoped to the content field participate. Phrases are
// quoted, glob markers pass through unchanged (the engine understands *
// and ? natively), negated terms get a NOT prefix, and everything joins
// with AND.
func FTSQuery(q *core.SearchQuery) string {
	var parts []string

	for _, term := range q.Terms {
		if term.Field != core.FieldContent {
			continue
		}
		part := term.Value
		if term.IsPhrase {
			part = `"` + part + `"`
		}
		if term.Negated {
			part = "NOT " + part
		}
		parts = append(parts, part)
	}

	if len(parts) == 0 {
		return MatchAll
	}
	return strings.Join(parts, " AND ")
}
