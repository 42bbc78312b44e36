package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/notesearch/core"
)

// Key prefixes for different data types
const (
	notePrefix     = "noterec"
	noteDatePrefix = "noterecd"
	noteTagPrefix  = "noterect"
)

// makeNoteKey generates a key for a note by ID.
func makeNoteKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", notePrefix, id))
}

// makeNoteDateKey generates a composite key for the creation-date index.
// Format: prefix:timestamp:id
func makeNoteDateKey(created time.Time, id core.ID) []byte {
	prefix := noteDatePrefix + ":"
	buf := make([]byte, len(prefix)+16) // 8 bytes for timestamp + 8 bytes for ID
	offset := copy(buf, prefix)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(created.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialNoteDateKey generates a partial key for date range queries.
// Format: prefix:timestamp
func makePartialNoteDateKey(created time.Time) []byte {
	prefix := noteDatePrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(created.UnixMicro()))
	return buf
}

// makeNoteTagKey generates a composite key for the tag index.
// Format: prefix:tag:id
func makeNoteTagKey(tag string, id core.ID) []byte {
	prefix := noteTagPrefix + ":" + tag + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialNoteTagKey generates the prefix shared by all entries for a tag.
func makePartialNoteTagKey(tag string) []byte {
	return []byte(noteTagPrefix + ":" + tag + ":")
}
