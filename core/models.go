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


package core

import (
	"encoding/binary"
	"strconv"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Field names a searchable note attribute. A search term with an empty
// Field matches against all text fields rather than a single column.
type Field string

const (
	FieldTitle   Field = "title"
	FieldContent Field = "content"
	FieldTag     Field = "tag"
	FieldType    Field = "type"
	FieldDate    Field = "date"
	FieldCreated Field = "created"
	FieldUpdated Field = "updated"
	FieldAuthor  Field = "author"
	FieldStatus  Field = "status"
	FieldSource  Field = "source"
)

var knownFields = map[string]Field{
	"title":   FieldTitle,
	"content": FieldContent,
	"tag":     FieldTag,
	"type":    FieldType,
	"date":    FieldDate,
	"created": FieldCreated,
	"updated": FieldUpdated,
	"author":  FieldAuthor,
	"status":  FieldStatus,
	"source":  FieldSource,
}

// ParseField maps a field name to a known field.
// Returns false for names outside the enum; callers are expected to fall
// back to plain-text handling rather than reject the input.
func ParseField(name string) (Field, bool) {
	f, ok := knownFields[strings.ToLower(name)]
	return f, ok
}

// IsDateField reports whether the field carries a timestamp and therefore
// accepts date-range values instead of text.
func (f Field) IsDateField() bool {
	return f == FieldDate || f == FieldCreated || f == FieldUpdated
}

// Operator describes how a search term combines with the term before it.
// The zero value is And, the default combinator.
type Operator int

const (
	OperatorAnd Operator = iota
	OperatorOr
	OperatorNot
)

// String returns the operator keyword as it appears in query syntax.
func (op Operator) String() string {
	switch op {
	case OperatorOr:
		return "OR"
	case OperatorNot:
		return "NOT"
	default:
		return "AND"
	}
}

// SearchTerm is one matched unit of a parsed query.
type SearchTerm struct {
	Field      Field // empty means "search all text fields"
	Value      string
	Operator   Operator // how this term combines with the previous one
	Negated    bool
	IsPhrase   bool // value must match as an exact phrase, not tokenized
	IsWildcard bool // value contains * or ? glob markers
}

// DateRange is a resolved time window over a date-bearing field.
// Either bound may be nil; both bounds are inclusive.
type DateRange struct {
	Field Field // defaults to FieldCreated when empty
	Start *time.Time
	End   *time.Time
}

// IsZero reports whether the range carries no bounds at all.
// Such ranges are meaningless and are never emitted downstream.
func (r DateRange) IsZero() bool {
	return r.Start == nil && r.End == nil
}

// DateField returns the field this range filters, applying the
// FieldCreated default.
func (r DateRange) DateField() Field {
	if r.Field == "" {
		return FieldCreated
	}
	return r.Field
}

// DefaultLimit is the result-window size used when a query does not
// specify one.
const DefaultLimit = 50

// SearchQuery is the complete parsed result of one raw query string.
// It is constructed fresh per parse and never mutated afterwards; the
// lowering functions only read it.
type SearchQuery struct {
	Terms    []SearchTerm
	Dates    []DateRange
	Filters  map[Field][]string // non-negated field values, for facet/filter-chip callers
	Limit    int
	Offset   int
	MinScore float64
}

// NewSearchQuery creates an empty query with default window parameters.
func NewSearchQuery() *SearchQuery {
	return &SearchQuery{
		Filters: make(map[Field][]string),
		Limit:   DefaultLimit,
	}
}

// Note is the record the surrounding system stores and searches.
type Note struct {
	Id      ID
	Title   string
	Content string
	Tags    []string
	Type    string
	Author  string
	Status  string
	Source  string
	Created time.Time
	Updated time.Time
}

// ISOLayout is the timestamp representation used in lowered queries and
// result rows.
const ISOLayout = "2006-01-02T15:04:05"

// Row returns the note as a column-name-to-value mapping, the result
// object shape consumed by callers running lowered queries against their
// own storage.
func (n *Note) Row() map[string]string {
	return map[string]string{
		"id":      strconv.FormatUint(uint64(n.Id), 10),
		"title":   n.Title,
		"content": n.Content,
		"tags":    strings.Join(n.Tags, ","),
		"type":    n.Type,
		"author":  n.Author,
		"status":  n.Status,
		"source":  n.Source,
		"created": n.Created.Format(ISOLayout),
		"updated": n.Updated.Format(ISOLayout),
	}
}

// SearchResult represents a search result with the full note and relevance score.
type SearchResult struct {
	Note  *Note
	Score float64
}
