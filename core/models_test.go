package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, IDFromContent("hello"), IDFromContent("hello"))
	})

	t.Run("content sensitive", func(t *testing.T) {
		assert.NotEqual(t, IDFromContent("hello"), IDFromContent("hello "))
	})

	t.Run("empty content hashes", func(t *testing.T) {
		assert.NotZero(t, IDFromContent(""))
	})
}

func TestParseField(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		known bool
	}{
		{"tag", FieldTag, true},
		{"TITLE", FieldTitle, true},
		{"Created", FieldCreated, true},
		{"bogus", Field(""), false},
		{"", Field(""), false},
	}

	for _, tt := range tests {
		f, ok := ParseField(tt.name)
		assert.Equal(t, tt.known, ok, "name %q", tt.name)
		assert.Equal(t, tt.field, f, "name %q", tt.name)
	}
}

func TestField_IsDateField(t *testing.T) {
	assert.True(t, FieldDate.IsDateField())
	assert.True(t, FieldCreated.IsDateField())
	assert.True(t, FieldUpdated.IsDateField())
	assert.False(t, FieldTag.IsDateField())
	assert.False(t, Field("").IsDateField())
}

func TestOperator_String(t *testing.T) {
	assert.Equal(t, "AND", OperatorAnd.String())
	assert.Equal(t, "OR", OperatorOr.String())
	assert.Equal(t, "NOT", OperatorNot.String())
}

func TestDateRange(t *testing.T) {
	now := time.Now()

	t.Run("zero", func(t *testing.T) {
		assert.True(t, DateRange{Field: FieldCreated}.IsZero())
		assert.False(t, DateRange{Start: &now}.IsZero())
	})

	t.Run("field default", func(t *testing.T) {
		assert.Equal(t, FieldCreated, DateRange{}.DateField())
		assert.Equal(t, FieldUpdated, DateRange{Field: FieldUpdated}.DateField())
	})
}

func TestNewSearchQuery(t *testing.T) {
	q := NewSearchQuery()

	require.NotNil(t, q.Filters)
	assert.Equal(t, DefaultLimit, q.Limit)
	assert.Zero(t, q.Offset)
	assert.Zero(t, q.MinScore)
	assert.Empty(t, q.Terms)
	assert.Empty(t, q.Dates)
}

func TestNote_Row(t *testing.T) {
	note := &Note{
		Id:      42,
		Title:   "weekly sync",
		Content: "notes from the call",
		Tags:    []string{"work", "meeting"},
		Type:    "note",
		Author:  "sam",
		Status:  "open",
		Source:  "import",
		Created: time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC),
		Updated: time.Date(2024, 1, 16, 10, 0, 0, 0, time.UTC),
	}

	row := note.Row()
	assert.Equal(t, "42", row["id"])
	assert.Equal(t, "work,meeting", row["tags"])
	assert.Equal(t, "2024-01-15T09:30:00", row["created"])
	assert.Equal(t, "2024-01-16T10:00:00", row["updated"])
	assert.Equal(t, "weekly sync", row["title"])
}
