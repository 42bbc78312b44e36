package query

import (
	"strings"
	"testing"
	"time"

	"github.com/poiesic/notesearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow is a Saturday afternoon; date resolution tests depend on it.
var fixedNow = time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	p, err := NewParser(WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return p
}

func TestNewParser(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p, err := NewParser()
		require.NoError(t, err)
		assert.NotNil(t, p)
	})

	t.Run("invalid max length", func(t *testing.T) {
		_, err := NewParser(WithMaxLength(0))
		assert.Error(t, err)
	})

	t.Run("nil clock falls back to time.Now", func(t *testing.T) {
		p, err := NewParser(WithClock(nil))
		require.NoError(t, err)
		assert.NotNil(t, p)
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		p, err := NewParser(WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, p)
	})
}

func TestParse_FieldTerm(t *testing.T) {
	p := newTestParser(t)

	q, err := p.Parse("tag:work")
	require.NoError(t, err)

	require.Len(t, q.Terms, 1)
	assert.Equal(t, core.SearchTerm{
		Field:    core.FieldTag,
		Value:    "work",
		Operator: core.OperatorAnd,
	}, q.Terms[0])
	assert.Equal(t, map[core.Field][]string{core.FieldTag: {"work"}}, q.Filters)
	assert.Empty(t, q.Dates)
}

func TestParse_NegatedFieldTerm(t *testing.T) {
	p := newTestParser(t)

	q, err := p.Parse("-tag:draft")
	require.NoError(t, err)

	require.Len(t, q.Terms, 1)
	assert.Equal(t, core.FieldTag, q.Terms[0].Field)
	assert.Equal(t, "draft", q.Terms[0].Value)
	assert.True(t, q.Terms[0].Negated)

	// Negated values stay out of the filter mapping.
	assert.NotContains(t, q.Filters, core.FieldTag)
}

func TestParse_QuotedPhrase(t *testing.T) {
	p := newTestParser(t)

	q, err := p.Parse(`"machine learning"`)
	require.NoError(t, err)

	require.Len(t, q.Terms, 1)
	assert.Equal(t, "machine learning", q.Terms[0].Value)
	assert.Equal(t, core.Field(""), q.Terms[0].Field)
	assert.True(t, q.Terms[0].IsPhrase)
	assert.False(t, q.Terms[0].Negated)
}

func TestParse_QuotedFieldValue(t *testing.T) {
	p := newTestParser(t)

	q, err := p.Parse(`title:"project plan" draft`)
	require.NoError(t, err)

	require.Len(t, q.Terms, 2)
	assert.Equal(t, core.FieldTitle, q.Terms[0].Field)
	assert.Equal(t, "project plan", q.Terms[0].Value)
	assert.True(t, q.Terms[0].IsPhrase)
	assert.Equal(t, "draft", q.Terms[1].Value)
}

func TestParse_BooleanOperatorPropagation(t *testing.T) {
	p := newTestParser(t)

	q, err := p.Parse("cats AND dogs OR birds")
	require.NoError(t, err)

	require.Len(t, q.Terms, 3)
	assert.Equal(t, []string{"cats", "dogs", "birds"}, termValues(q.Terms))
	assert.Equal(t, core.OperatorAnd, q.Terms[0].Operator)
	assert.Equal(t, core.OperatorAnd, q.Terms[1].Operator)
	assert.Equal(t, core.OperatorOr, q.Terms[2].Operator)
}

func TestParse_OperatorCaseInsensitive(t *testing.T) {
	p := newTestParser(t)

	q, err := p.Parse("cats and dogs or birds")
	require.NoError(t, err)

	require.Len(t, q.Terms, 3)
	assert.Equal(t, core.OperatorOr, q.Terms[2].Operator)
}

func TestParse_NotNegatesFollowingTerm(t *testing.T) {
	p := newTestParser(t)

	q, err := p.Parse("cats NOT dogs fish")
	require.NoError(t, err)

	require.Len(t, q.Terms, 3)
	assert.False(t, q.Terms[0].Negated)
	assert.True(t, q.Terms[1].Negated)
	assert.Equal(t, core.OperatorNot, q.Terms[1].Operator)
	// Only the term immediately after NOT is negated.
	assert.False(t, q.Terms[2].Negated)
}

func TestParse_NegatedPhrase(t *testing.T) {
	p := newTestParser(t)

	q, err := p.Parse(`cats -"machine learning"`)
	require.NoError(t, err)

	require.Len(t, q.Terms, 2)
	assert.Equal(t, "machine learning", q.Terms[1].Value)
	assert.True(t, q.Terms[1].IsPhrase)
	assert.True(t, q.Terms[1].Negated)
}

func TestParse_DashNegation(t *testing.T) {
	p := newTestParser(t)

	q, err := p.Parse("cats -dogs")
	require.NoError(t, err)

	require.Len(t, q.Terms, 2)
	assert.True(t, q.Terms[1].Negated)
	assert.Equal(t, "dogs", q.Terms[1].Value)
}

func TestParse_WildcardDetection(t *testing.T) {
	p := newTestParser(t)

	q, err := p.Parse("pyth* re?d title:plan*")
	require.NoError(t, err)

	require.Len(t, q.Terms, 3)
	for i, term := range q.Terms {
		assert.True(t, term.IsWildcard, "term %d", i)
	}
}

func TestParse_DateField(t *testing.T) {
	p := newTestParser(t)

	q, err := p.Parse("created:today report")
	require.NoError(t, err)

	require.Len(t, q.Dates, 1)
	r := q.Dates[0]
	assert.Equal(t, core.FieldCreated, r.Field)
	require.NotNil(t, r.Start)
	require.NotNil(t, r.End)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), *r.Start)
	assert.Equal(t, fixedNow, *r.End)

	// Date filters never become terms.
	require.Len(t, q.Terms, 1)
	assert.Equal(t, "report", q.Terms[0].Value)
}

func TestParse_UnparseableDateIsDropped(t *testing.T) {
	p := newTestParser(t)

	q, err := p.Parse("created:whenever report")
	require.NoError(t, err)

	// The value is consumed and dropped, not retried as a text term.
	assert.Empty(t, q.Dates)
	require.Len(t, q.Terms, 1)
	assert.Equal(t, "report", q.Terms[0].Value)
}

func TestParse_NegatedDateIsDropped(t *testing.T) {
	p := newTestParser(t)

	for _, raw := range []string{"-created:today report", "NOT created:today report"} {
		q, err := p.Parse(raw)
		require.NoError(t, err)

		assert.Empty(t, q.Dates, "query %q", raw)
		require.Len(t, q.Terms, 1, "query %q", raw)
		assert.Equal(t, "report", q.Terms[0].Value)
		assert.False(t, q.Terms[0].Negated)
	}
}

func TestParse_UnknownFieldFallback(t *testing.T) {
	p := newTestParser(t)

	q, err := p.Parse("bogus:value")
	require.NoError(t, err)

	// One literal bare token, not split at the colon.
	require.Len(t, q.Terms, 1)
	assert.Equal(t, core.Field(""), q.Terms[0].Field)
	assert.Equal(t, "bogus:value", q.Terms[0].Value)
	assert.Empty(t, q.Filters)
}

func TestParse_EmptyInput(t *testing.T) {
	p := newTestParser(t)

	for _, raw := range []string{"", "   ", "\t\n"} {
		q, err := p.Parse(raw)
		require.NoError(t, err)
		assert.Empty(t, q.Terms)
		assert.Empty(t, q.Dates)
		assert.Empty(t, q.Filters)
		assert.Equal(t, core.DefaultLimit, q.Limit)
		assert.Equal(t, 0, q.Offset)
	}
}

func TestParse_QueryTooLong(t *testing.T) {
	p, err := NewParser(WithMaxLength(16))
	require.NoError(t, err)

	_, err = p.Parse(strings.Repeat("a", 17))
	assert.ErrorIs(t, err, ErrQueryTooLong)
}

func TestParse_MultiValueFilterMapping(t *testing.T) {
	p := newTestParser(t)

	q, err := p.Parse("tag:work tag:urgent -tag:done")
	require.NoError(t, err)

	assert.Equal(t, []string{"work", "urgent"}, q.Filters[core.FieldTag])
	require.Len(t, q.Terms, 3)
}

func TestParse_MixedQuery(t *testing.T) {
	p := newTestParser(t)

	q, err := p.Parse(`tag:work "status report" OR standup -draft created:2024-01-01..2024-01-31`)
	require.NoError(t, err)

	require.Len(t, q.Terms, 4)
	assert.Equal(t, core.FieldTag, q.Terms[0].Field)
	assert.True(t, q.Terms[1].IsPhrase)
	assert.Equal(t, core.OperatorOr, q.Terms[2].Operator)
	assert.True(t, q.Terms[3].Negated)

	require.Len(t, q.Dates, 1)
	assert.Equal(t, core.FieldCreated, q.Dates[0].Field)
}

func termValues(terms []core.SearchTerm) []string {
	values := make([]string, 0, len(terms))
	for _, term := range terms {
		values = append(values, term.Value)
	}
	return values
}
