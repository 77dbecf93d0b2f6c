package prompt

import (
	"fmt"
	"time"

	"github.com/raphi011/gitstatus/internal/cache"
	"github.com/raphi011/gitstatus/internal/git"
)

// DefaultTTL is how long a cached status stays valid when no metadata
// signal has changed.
const DefaultTTL = 60 * time.Second

// Staleness records which signals invalidated a cached record.
type Staleness struct {
	ColdStart     bool // no usable cached record
	Expired       bool // cache file older than the TTL
	IndexDirty    bool // index mtime changed
	HeadDirty     bool // HEAD moved
	TrackingDirty bool // tracking ref moved
}

// Dirty reports whether the cached status must be recomputed.
func (s Staleness) Dirty() bool {
	return s.ColdStart || s.Expired || s.IndexDirty || s.HeadDirty || s.TrackingDirty
}

func (s Staleness) String() string {
	if s.ColdStart {
		return "cold-start=true"
	}
	return fmt.Sprintf("expired=%t index=%t head=%t tracking=%t",
		s.Expired, s.IndexDirty, s.HeadDirty, s.TrackingDirty)
}

// Evaluate compares a fresh snapshot against the cached record.
// A nil record is a cold start; the other checks are skipped.
// Status is never consulted. A non-positive ttl means DefaultTTL.
func Evaluate(fresh git.Snapshot, cached *cache.Record, ttl time.Duration) Staleness {
	if cached == nil {
		return Staleness{ColdStart: true}
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return Staleness{
		Expired:       fresh.Timestamp.Add(-ttl).After(cached.ModTime),
		IndexDirty:    fresh.IndexMTime != cached.IndexMTime,
		HeadDirty:     fresh.HeadRef != cached.HeadRef,
		TrackingDirty: fresh.TrackingRef != cached.TrackingRef,
	}
}
