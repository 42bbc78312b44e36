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
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/notesearch/core"
)

// DefaultMaxLength bounds the raw query size. Scanning is linear, but a
// cap keeps adversarial inputs cheap.
const DefaultMaxLength = 4096

// Parser compiles raw query strings into core.SearchQuery values.
// It holds no per-call state and is safe for concurrent use.
type Parser struct {
	maxLength int
	clock     func() time.Time
	logger    *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser) error

// WithMaxLength sets the maximum accepted query length in bytes.
// Default is DefaultMaxLength.
func WithMaxLength(n int) Option {
	return func(p *Parser) error {
		if n < 1 {
			return fmt.Errorf("max length must be positive, got %d", n)
		}
		p.maxLength = n
		return nil
	}
}

// WithClock sets the time source used to resolve relative date ranges.
// Default is time.Now. Tests inject a fixed clock to make resolution
// deterministic.
func WithClock(clock func() time.Time) Option {
	return func(p *Parser) error {
		if clock == nil {
			clock = time.Now
		}
		p.clock = clock
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewParser creates a new parser.
func NewParser(opts ...Option) (*Parser, error) {
	p := &Parser{
		maxLength: DefaultMaxLength,
		clock:     time.Now,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Parse compiles a raw query string into a SearchQuery.
//
// Malformed syntax never fails: unknown field names degrade to plain
// terms and unparseable date values drop that date filter. The only
// error is ErrQueryTooLong.
func (p *Parser) Parse(raw string) (*core.SearchQuery, error) {
	if len(raw) > p.maxLength {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrQueryTooLong, len(raw), p.maxLength)
	}

	q := core.NewSearchQuery()
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return q, nil
	}

	// Captured once so every relative range in this query resolves
	// against the same instant.
	now := p.clock()

	op := core.OperatorAnd
	negateNext := false

	for _, tok := range scan(raw) {
		switch tok.kind {
		case tokenAnd:
			op = core.OperatorAnd

		case tokenOr:
			op = core.OperatorOr

		case tokenNot:
			op = core.OperatorNot
			negateNext = true

		case tokenField:
			negated := tok.negated || negateNext
			negateNext = false
			if tok.value == "" {
				continue
			}
			if tok.field.IsDateField() {
				if negated {
					// "Not in this window" has no DateRange representation;
					// the filter is consumed and dropped like an unparseable
					// value.
					p.logger.Debug("dropping negated date filter",
						"field", string(tok.field), "value", tok.value)
					continue
				}
				r, ok := resolveDateRange(tok.field, tok.value, now)
				if !ok {
					// The value is consumed and dropped, not retried as text.
					p.logger.Debug("dropping unparseable date filter",
						"field", string(tok.field), "value", tok.value)
					continue
				}
				q.Dates = append(q.Dates, r)
				continue
			}
			q.Terms = append(q.Terms, core.SearchTerm{
				Field:      tok.field,
				Value:      tok.value,
				Operator:   op,
				Negated:    negated,
				IsPhrase:   tok.quoted,
				IsWildcard: isWildcard(tok.value),
			})
			if !negated {
				// "not this value" is not an assertion of the value, so
				// negated terms stay out of the filter mapping.
				q.Filters[tok.field] = append(q.Filters[tok.field], tok.value)
			}

		case tokenPhrase:
			negated := tok.negated || negateNext
			negateNext = false
			q.Terms = append(q.Terms, core.SearchTerm{
				Value:      tok.value,
				Operator:   op,
				Negated:    negated,
				IsPhrase:   true,
				IsWildcard: isWildcard(tok.value),
			})

		case tokenWord:
			negated := negateNext
			negateNext = false
			value := tok.value
			if strings.HasPrefix(value, "-") {
				negated = true
				value = strings.TrimPrefix(value, "-")
			}
			if value == "" {
				continue
			}
			q.Terms = append(q.Terms, core.SearchTerm{
				Value:      value,
				Operator:   op,
				Negated:    negated,
				IsWildcard: isWildcard(value),
			})
		}
	}

	return q, nil
}

func isWildcard(value string) bool {
	return strings.ContainsAny(value, "*?")
}
