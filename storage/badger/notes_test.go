package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/notesearch/core"
	"github.com/poiesic/notesearch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) storage.NoteRepository {
	t.Helper()
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func seedNote(title, content string, created time.Time, tags ...string) *core.Note {
	return &core.Note{
		Title:   title,
		Content: content,
		Tags:    tags,
		Created: created,
	}
}

func TestAddNotes(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	t.Run("assigns content ID and timestamps", func(t *testing.T) {
		note := &core.Note{Title: "first", Content: "body"}
		added, err := repo.AddNotes(ctx, note)
		require.NoError(t, err)
		require.Len(t, added, 1)

		assert.Equal(t, core.IDFromContent("first\nbody"), added[0].Id)
		assert.False(t, added[0].Created.IsZero())
		assert.False(t, added[0].Updated.IsZero())
	})

	t.Run("keeps explicit creation time", func(t *testing.T) {
		created := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
		note := seedNote("dated", "body", created)
		_, err := repo.AddNotes(ctx, note)
		require.NoError(t, err)

		got, err := repo.GetNote(ctx, note.Id)
		require.NoError(t, err)
		assert.True(t, got.Created.Equal(created))
	})
}

func TestGetNote(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	note := seedNote("lookup", "body", time.Time{})
	_, err := repo.AddNotes(ctx, note)
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		got, err := repo.GetNote(ctx, note.Id)
		require.NoError(t, err)
		assert.Equal(t, "lookup", got.Title)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := repo.GetNote(ctx, core.ID(12345))
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestGetNotes_SkipsMissing(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	note := seedNote("only one", "body", time.Time{})
	_, err := repo.AddNotes(ctx, note)
	require.NoError(t, err)

	got, err := repo.GetNotes(ctx, note.Id, core.ID(999))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, note.Id, got[0].Id)
}

func TestUpdateNotes(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	note := seedNote("to update", "body", created, "old")
	_, err := repo.AddNotes(ctx, note)
	require.NoError(t, err)

	t.Run("missing note", func(t *testing.T) {
		_, err := repo.UpdateNotes(ctx, &core.Note{Id: core.ID(404), Title: "nope"})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("reindexes changed creation time", func(t *testing.T) {
		moved := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
		note.Created = moved
		_, err := repo.UpdateNotes(ctx, note)
		require.NoError(t, err)

		inApril, err := repo.GetNotesByDateRange(ctx,
			time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.Len(t, inApril, 1)

		inMarch, err := repo.GetNotesByDateRange(ctx,
			time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Empty(t, inMarch)
	})

	t.Run("reindexes changed tags", func(t *testing.T) {
		note.Tags = []string{"new"}
		_, err := repo.UpdateNotes(ctx, note)
		require.NoError(t, err)

		oldIDs, err := repo.GetNotesByTag(ctx, "old")
		require.NoError(t, err)
		assert.Empty(t, oldIDs)

		newIDs, err := repo.GetNotesByTag(ctx, "new")
		require.NoError(t, err)
		assert.Equal(t, []core.ID{note.Id}, newIDs)
	})
}

func TestDeleteNotes(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	note := seedNote("doomed", "body", created, "gone")
	_, err := repo.AddNotes(ctx, note)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteNotes(ctx, note.Id))

	_, err = repo.GetNote(ctx, note.Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	ids, err := repo.GetNotesByTag(ctx, "gone")
	require.NoError(t, err)
	assert.Empty(t, ids)

	inRange, err := repo.GetNotesByDateRange(ctx, created.AddDate(0, 0, -1), created.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, inRange)

	t.Run("missing note", func(t *testing.T) {
		assert.ErrorIs(t, repo.DeleteNotes(ctx, core.ID(777)), storage.ErrNotFound)
	})
}

func TestGetNotesByDateRange(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2024, 6, d, 10, 0, 0, 0, time.UTC) }
	for d := 1; d <= 5; d++ {
		_, err := repo.AddNotes(ctx, seedNote("note", time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC).String(), day(d)))
		require.NoError(t, err)
	}

	got, err := repo.GetNotesByDateRange(ctx, day(2), day(4))
	require.NoError(t, err)
	require.Len(t, got, 3)
	// Date-index order is oldest first.
	assert.True(t, got[0].Created.Equal(day(2)))
	assert.True(t, got[2].Created.Equal(day(4)))

	t.Run("point query", func(t *testing.T) {
		got, err := repo.GetNotesByDateRange(ctx, day(3), day(3))
		require.NoError(t, err)
		require.Len(t, got, 1)
	})

	t.Run("end bound inclusive", func(t *testing.T) {
		// A note created exactly at the range end must come back.
		got, err := repo.GetNotesByDateRange(ctx, day(5).Add(-time.Hour), day(5))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, got[0].Created.Equal(day(5)))
	})
}

func TestGetRecentNotes(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for d := 1; d <= 4; d++ {
		created := time.Date(2024, 7, d, 12, 0, 0, 0, time.UTC)
		_, err := repo.AddNotes(ctx, seedNote("note", created.String(), created))
		require.NoError(t, err)
	}

	got, err := repo.GetRecentNotes(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 4, got[0].Created.Day())
	assert.Equal(t, 3, got[1].Created.Day())
}

func TestGetNotesByTag(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	tagged := seedNote("tagged", "body", time.Time{}, "work", "urgent")
	plain := seedNote("plain", "body", time.Time{})
	_, err := repo.AddNotes(ctx, tagged, plain)
	require.NoError(t, err)

	ids, err := repo.GetNotesByTag(ctx, "work")
	require.NoError(t, err)
	assert.Equal(t, []core.ID{tagged.Id}, ids)

	ids, err = repo.GetNotesByTag(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, ids)
}
