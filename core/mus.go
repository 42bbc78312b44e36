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
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the domain types persisted by the storage layer.
// Timestamps are stored as Unix microseconds in UTC.

// IDMUS serializes IDs.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

// NoteMUS serializes Notes.
var NoteMUS = noteMUS{}

type noteMUS struct{}

func (noteMUS) Marshal(note Note, bs []byte) int {
	n := varint.Uint64.Marshal(uint64(note.Id), bs)
	n += ord.String.Marshal(note.Title, bs[n:])
	n += ord.String.Marshal(note.Content, bs[n:])
	n += varint.Int.Marshal(len(note.Tags), bs[n:])
	for _, tag := range note.Tags {
		n += ord.String.Marshal(tag, bs[n:])
	}
	n += ord.String.Marshal(note.Type, bs[n:])
	n += ord.String.Marshal(note.Author, bs[n:])
	n += ord.String.Marshal(note.Status, bs[n:])
	n += ord.String.Marshal(note.Source, bs[n:])
	n += varint.Int64.Marshal(note.Created.UnixMicro(), bs[n:])
	n += varint.Int64.Marshal(note.Updated.UnixMicro(), bs[n:])
	return n
}

func (noteMUS) Unmarshal(bs []byte) (Note, int, error) {
	var note Note

	id, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return note, n, err
	}
	note.Id = ID(id)

	var c int
	if note.Title, c, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return note, n + c, err
	}
	n += c
	if note.Content, c, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return note, n + c, err
	}
	n += c

	count, c, err := varint.Int.Unmarshal(bs[n:])
	if err != nil {
		return note, n + c, err
	}
	n += c
	if count > 0 {
		note.Tags = make([]string, count)
		for i := 0; i < count; i++ {
			if note.Tags[i], c, err = ord.String.Unmarshal(bs[n:]); err != nil {
				return note, n + c, err
			}
			n += c
		}
	}

	if note.Type, c, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return note, n + c, err
	}
	n += c
	if note.Author, c, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return note, n + c, err
	}
	n += c
	if note.Status, c, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return note, n + c, err
	}
	n += c
	if note.Source, c, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return note, n + c, err
	}
	n += c

	created, c, err := varint.Int64.Unmarshal(bs[n:])
	if err != nil {
		return note, n + c, err
	}
	n += c
	note.Created = time.UnixMicro(created).UTC()

	updated, c, err := varint.Int64.Unmarshal(bs[n:])
	if err != nil {
		return note, n + c, err
	}
	n += c
	note.Updated = time.UnixMicro(updated).UTC()

	return note, n, nil
}

func (noteMUS) Size(note Note) int {
	n := varint.Uint64.Size(uint64(note.Id))
	n += ord.String.Size(note.Title)
	n += ord.String.Size(note.Content)
	n += varint.Int.Size(len(note.Tags))
	for _, tag := range note.Tags {
		n += ord.String.Size(tag)
	}
	n += ord.String.Size(note.Type)
	n += ord.String.Size(note.Author)
	n += ord.String.Size(note.Status)
	n += ord.String.Size(note.Source)
	n += varint.Int64.Size(note.Created.UnixMicro())
	n += varint.Int64.Size(note.Updated.UnixMicro())
	return n
}
