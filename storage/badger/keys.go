package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/core"
)

// Key prefixes for different data types
const (
	runRecordPrefix = "extrun"
	runDatePrefix   = "extrund"
	runURLPrefix    = "extrunu"
)

// makeRunKey generates a key for an extraction run by ID.
func makeRunKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", runRecordPrefix, id))
}

// makeRunDateKey generates a composite key for the date index.
// Format: prefix:timestamp:id
func makeRunDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := runDatePrefix + ":"
	buf := make([]byte, len(prefix)+16) // 8 bytes for timestamp + 8 bytes for ID
	offset := copy(buf, prefix)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialRunDateKey generates a partial key for date range queries.
// Format: prefix:timestamp
func makePartialRunDateKey(timestamp time.Time) []byte {
	prefix := runDatePrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// makeRunURLKey generates a composite key for the URL index. The URL itself
// is hashed so keys stay fixed-width and comparisons stay cheap.
// Format: prefix:urlHash:timestamp:id
func makeRunURLKey(url string, timestamp time.Time, id core.ID) []byte {
	prefix := runURLPrefix + ":"
	buf := make([]byte, len(prefix)+24)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(core.IDFromContent(url)))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialRunURLKey generates a partial key for per-URL queries.
// Format: prefix:urlHash
func makePartialRunURLKey(url string) []byte {
	prefix := runURLPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(core.IDFromContent(url)))
	return buf
}
