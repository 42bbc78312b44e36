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


package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/notesearch/core"
	"github.com/poiesic/notesearch/storage"
)

// NoteRepository implements storage.NoteRepository for BadgerDB.
type NoteRepository struct {
	backend *Backend
}

var _ storage.NoteRepository = (*NoteRepository)(nil)

// NewNoteRepository creates a new NoteRepository.
func NewNoteRepository(backend *Backend) (storage.NoteRepository, error) {
	return &NoteRepository{backend: backend}, nil
}

// Close is a no-op; the backend owns all resources.
func (r *NoteRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *NoteRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddNotes adds one or more notes to storage.
func (r *NoteRepository) AddNotes(ctx context.Context, notes ...*core.Note) ([]*core.Note, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC()
		for _, note := range notes {
			if note.Id == 0 {
				note.Id = core.IDFromContent(note.Title + "\n" + note.Content)
			}
			if note.Created.IsZero() {
				note.Created = now
			}
			note.Updated = now

			// Store primary record
			key := makeNoteKey(note.Id)
			if err := tx.Set(key, storage.MarshalNote(note)); err != nil {
				return err
			}

			// Update date index
			dateKey := makeNoteDateKey(note.Created, note.Id)
			if err := tx.Set(dateKey, storage.MarshalID(note.Id)); err != nil {
				return err
			}

			// Update tag index
			if err := r.updateTagIndex(tx, note); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return notes, err
}

// UpdateNotes updates existing notes.
func (r *NoteRepository) UpdateNotes(ctx context.Context, notes ...*core.Note) ([]*core.Note, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, note := range notes {
			key := makeNoteKey(note.Id)

			// Read old note to detect index changes
			old, err := r.readNote(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			note.Updated = time.Now().UTC()

			if err := tx.Set(key, storage.MarshalNote(note)); err != nil {
				return err
			}

			// Update date index if creation time changed
			if !old.Created.Equal(note.Created) {
				if err := tx.Delete(makeNoteDateKey(old.Created, old.Id)); err != nil {
					return err
				}
				if err := tx.Set(makeNoteDateKey(note.Created, note.Id), storage.MarshalID(note.Id)); err != nil {
					return err
				}
			}

			// Update tag index if tags changed
			if !slices.Equal(old.Tags, note.Tags) {
				if err := r.deleteTagIndex(tx, old); err != nil {
					return err
				}
				if err := r.updateTagIndex(tx, note); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return notes, err
}

// DeleteNotes removes notes by their IDs.
func (r *NoteRepository) DeleteNotes(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeNoteKey(id)

			// Read note to get metadata for index cleanup
			note, err := r.readNote(tx, key)
			if err != nil {
				return err
			}
			if note == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makeNoteDateKey(note.Created, note.Id)); err != nil {
				return err
			}
			if err := r.deleteTagIndex(tx, note); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetNote retrieves a single note by ID.
func (r *NoteRepository) GetNote(ctx context.Context, id core.ID) (*core.Note, error) {
	var result *core.Note
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readNote(tx, makeNoteKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetNotes retrieves multiple notes by their IDs.
func (r *NoteRepository) GetNotes(ctx context.Context, ids ...core.ID) ([]*core.Note, error) {
	var result []*core.Note
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			note, err := r.readNote(tx, makeNoteKey(id))
			if err != nil {
				return err
			}
			if note != nil {
				result = append(result, note)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetNotesByDateRange retrieves notes created within [start, end].
func (r *NoteRepository) GetNotesByDateRange(ctx context.Context, start, end time.Time) ([]*core.Note, error) {
	var results []*core.Note
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialNoteDateKey(start)
		endKey := makePartialNoteDateKey(end)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			// Full index keys carry an ID suffix past the timestamp, so
			// the end bound compares against the timestamp portion only;
			// otherwise notes created exactly at end would be excluded.
			bound := key
			if len(bound) > len(endKey) {
				bound = bound[:len(endKey)]
			}
			if slices.Compare(bound, endKey) > 0 {
				break
			}

			note, err := r.readIndexedNote(tx, iter.Item())
			if err != nil {
				return err
			}
			if note != nil {
				results = append(results, note)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetRecentNotes retrieves the N most recently created notes, newest first.
func (r *NoteRepository) GetRecentNotes(ctx context.Context, limit int) ([]*core.Note, error) {
	var results []*core.Note
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek past the newest possible date-index key, then walk backwards.
		startKey := makePartialNoteDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))
		prefix := []byte(noteDatePrefix + ":")

		count := 0
		for iter.Seek(startKey); iter.Valid() && count < limit; iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			note, err := r.readIndexedNote(tx, iter.Item())
			if err != nil {
				return err
			}
			if note != nil {
				results = append(results, note)
				count++
			}
		}
		return nil
	}, false)

	return results, err
}

// GetNotesByTag retrieves IDs of notes carrying a tag.
func (r *NoteRepository) GetNotesByTag(ctx context.Context, tag string) ([]core.ID, error) {
	var ids []core.ID
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialNoteTagKey(tag)

		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var id core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	}, false)

	return ids, err
}

// readNote reads and deserializes a note by its primary key.
// Returns nil without error when the key is absent.
func (r *NoteRepository) readNote(tx *badger.Txn, key []byte) (*core.Note, error) {
	item, err := tx.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var note *core.Note
	err = item.Value(func(val []byte) error {
		var err error
		note, err = storage.UnmarshalNote(val)
		return err
	})
	return note, err
}

// readIndexedNote follows an index entry (value = marshaled ID) to the
// full note.
func (r *NoteRepository) readIndexedNote(tx *badger.Txn, item *badger.Item) (*core.Note, error) {
	var id core.ID
	if err := item.Value(func(val []byte) error {
		var err error
		id, err = storage.UnmarshalID(val)
		return err
	}); err != nil {
		return nil, err
	}
	return r.readNote(tx, makeNoteKey(id))
}

func (r *NoteRepository) updateTagIndex(tx *badger.Txn, note *core.Note) error {
	for _, tag := range note.Tags {
		if err := tx.Set(makeNoteTagKey(tag, note.Id), storage.MarshalID(note.Id)); err != nil {
			return err
		}
	}
	return nil
}

func (r *NoteRepository) deleteTagIndex(tx *badger.Txn, note *core.Note) error {
	for _, tag := range note.Tags {
		if err := tx.Delete(makeNoteTagKey(tag, note.Id)); err != nil {
			return err
		}
	}
	return nil
}
