package cache

import (
	"strconv"
	"strings"
	"time"
)

// recordLines is the number of lines in a cache file.
const recordLines = 4

// Record is a persisted status together with the repository metadata it
// was computed from.
type Record struct {
	IndexMTime  int64
	HeadRef     string
	TrackingRef string
	Status      string

	// ModTime is the cache file's modification time, set by Load.
	ModTime time.Time
}

// marshal renders the record in file order. There is no trailing newline.
func (r Record) marshal() []byte {
	return []byte(strings.Join([]string{
		strconv.FormatInt(r.IndexMTime, 10),
		r.HeadRef,
		r.TrackingRef,
		r.Status,
	}, "\n"))
}

// unmarshalRecord parses trimmed cache lines. ok is false when the content
// does not form a complete record.
func unmarshalRecord(lines []string) (r Record, ok bool) {
	if len(lines) < recordLines {
		return Record{}, false
	}
	mtime, err := strconv.ParseInt(lines[0], 10, 64)
	if err != nil {
		return Record{}, false
	}
	return Record{
		IndexMTime:  mtime,
		HeadRef:     lines[1],
		TrackingRef: lines[2],
		Status:      lines[3],
	}, true
}
