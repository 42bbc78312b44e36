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
	"fmt"
	"strings"

	"github.com/poiesic/notesearch/core"
)

// SQLFilter is a parameterized boolean expression over the note columns,
// ready to bind into a prepared statement. Parameter placeholders use
// the :name form; names are unique per lowering call.
type SQLFilter struct {
	Clause string
	Params map[string]string
}

// WhereClause lowers a query into a relational filter.
//
// Every term and date bound becomes one condition and all conditions are
// joined with AND. The per-term Operator is captured in the model but
// not honored here: proper OR/NOT precedence would need an expression
// tree, and this lowering intentionally keeps the flat top-level-AND
// behavior.
//
// The output is deterministic: lowering the same query twice yields
// byte-identical clauses and parameter maps.
func WhereClause(q *core.SearchQuery) SQLFilter {
	var conds []string
	params := make(map[string]string)

	next := 0
	param := func(value string) string {
		name := fmt.Sprintf("p%d", next)
		next++
		params[name] = value
		return name
	}

	for _, term := range q.Terms {
		var cond string
		switch {
		case term.Field == "":
			// Unscoped terms search the default text columns. Wildcard
			// values keep their own shape; everything else matches as a
			// substring.
			value := "%" + term.Value + "%"
			if term.IsWildcard {
				value = globToSQL(term.Value)
			}
			name := param(value)
			cond = fmt.Sprintf("(title LIKE :%s OR content LIKE :%s)", name, name)
		case term.IsWildcard:
			name := param(globToSQL(term.Value))
			cond = fmt.Sprintf("%s LIKE :%s", column(term.Field), name)
		case term.IsPhrase:
			name := param("%" + term.Value + "%")
			cond = fmt.Sprintf("%s LIKE :%s", column(term.Field), name)
		default:
			name := param(term.Value)
			cond = fmt.Sprintf("%s = :%s", column(term.Field), name)
		}
		if term.Negated {
			cond = "NOT (" + cond + ")"
		}
		conds = append(conds, cond)
	}

	for _, r := range q.Dates {
		if r.IsZero() {
			continue
		}
		col := column(r.DateField())
		if r.Start != nil {
			name := param(r.Start.Format(core.ISOLayout))
			conds = append(conds, fmt.Sprintf("%s >= :%s", col, name))
		}
		if r.End != nil {
			name := param(r.End.Format(core.ISOLayout))
			conds = append(conds, fmt.Sprintf("%s <= :%s", col, name))
		}
	}

	if len(conds) == 0 {
		// Always-true predicate, never an empty clause.
		return SQLFilter{Clause: "1 = 1", Params: params}
	}
	return SQLFilter{Clause: strings.Join(conds, " AND "), Params: params}
}

// globToSQL translates * and ? glob markers to SQL LIKE wildcards.
func globToSQL(value string) string {
	value = strings.ReplaceAll(value, "*", "%")
	return strings.ReplaceAll(value, "?", "_")
}

// column maps a field to its storage column name.
func column(f core.Field) string {
	if f == core.FieldTag {
		return "tags"
	}
	return string(f)
}
