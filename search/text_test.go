package search

import (
	"testing"

	"github.com/poiesic/notesearch/core"
	"github.com/stretchr/testify/assert"
)

func TestSplitWords(t *testing.T) {
	assert.Equal(t, []string{"project", "plan", "v2"}, splitWords(`"Project-Plan" (v2)`))
	assert.Empty(t, splitWords("... !!"))
}

func TestBoostWords(t *testing.T) {
	t.Run("drops stop words and duplicates", func(t *testing.T) {
		words := boostWords([]string{"the release plan", "release notes"})
		assert.Equal(t, []string{"release", "plan", "notes"}, words)
	})

	t.Run("all stop words", func(t *testing.T) {
		assert.Empty(t, boostWords([]string{"the", "and of"}))
	})

	t.Run("no values", func(t *testing.T) {
		assert.Empty(t, boostWords(nil))
	})
}

func TestContainsAllWords(t *testing.T) {
	note := &core.Note{
		Title:   "Release Checklist",
		Content: "sign-off, deploy, announce.",
	}

	t.Run("all present despite punctuation and case", func(t *testing.T) {
		assert.True(t, containsAllWords(note, []string{"release", "deploy"}))
	})

	t.Run("one missing", func(t *testing.T) {
		assert.False(t, containsAllWords(note, []string{"release", "rollback"}))
	})

	t.Run("no words never boosts", func(t *testing.T) {
		assert.False(t, containsAllWords(note, nil))
	})
}
