package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateNote(t *testing.T) {
	t.Run("nil note", func(t *testing.T) {
		assert.ErrorIs(t, ValidateNote(nil), ErrInvalidNote)
	})

	t.Run("empty note", func(t *testing.T) {
		assert.ErrorIs(t, ValidateNote(&Note{}), ErrEmptyNote)
	})

	t.Run("title only is enough", func(t *testing.T) {
		assert.NoError(t, ValidateNote(&Note{Title: "just a title"}))
	})

	t.Run("content only is enough", func(t *testing.T) {
		assert.NoError(t, ValidateNote(&Note{Content: "just content"}))
	})

	t.Run("empty tag", func(t *testing.T) {
		note := &Note{Title: "x", Tags: []string{"ok", ""}}
		assert.ErrorIs(t, ValidateNote(note), ErrEmptyTag)
	})

	t.Run("future created", func(t *testing.T) {
		note := &Note{Title: "x", Created: time.Now().Add(48 * time.Hour)}
		assert.ErrorIs(t, ValidateNote(note), ErrInvalidTimestamp)
	})

	t.Run("zero created allowed", func(t *testing.T) {
		assert.NoError(t, ValidateNote(&Note{Title: "x"}))
	})
}

func TestIsValidTimestamp(t *testing.T) {
	assert.True(t, IsValidTimestamp(time.Time{}))
	assert.True(t, IsValidTimestamp(time.Now().Add(-time.Hour)))
	assert.False(t, IsValidTimestamp(time.Now().Add(time.Hour)))
}
