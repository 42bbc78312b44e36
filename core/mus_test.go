package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteMUS_RoundTrip(t *testing.T) {
	note := Note{
		Id:      IDFromContent("round trip"),
		Title:   "serialization check",
		Content: "body with unicode: héllo",
		Tags:    []string{"a", "b"},
		Type:    "note",
		Author:  "sam",
		Status:  "open",
		Source:  "test",
		Created: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Updated: time.Date(2024, 3, 2, 8, 30, 0, 0, time.UTC),
	}

	bs := make([]byte, NoteMUS.Size(note))
	n := NoteMUS.Marshal(note, bs)
	assert.Equal(t, len(bs), n)

	got, n, err := NoteMUS.Unmarshal(bs)
	require.NoError(t, err)
	assert.Equal(t, len(bs), n)
	assert.Equal(t, note, got)
}

func TestNoteMUS_UnmarshalTruncated(t *testing.T) {
	note := Note{Title: "t", Content: "c"}
	bs := make([]byte, NoteMUS.Size(note))
	NoteMUS.Marshal(note, bs)

	_, _, err := NoteMUS.Unmarshal(bs[:2])
	assert.Error(t, err)
}

func TestIDMUS_RoundTrip(t *testing.T) {
	id := ID(1<<60 + 7)

	bs := make([]byte, IDMUS.Size(id))
	IDMUS.Marshal(id, bs)

	got, _, err := IDMUS.Unmarshal(bs)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}
