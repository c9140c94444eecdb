package ttlcache

import "time"

type entry struct {
	value      string
	expiresAt  time.Time // zero means no expiry
	lastAccess time.Time
	hits       uint64 // successful reads since the last write
	seq        uint64 // insertion order, final eviction tie-break
}

func (e *entry) isExpired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// ranksBelow reports whether e is a better eviction victim than o:
// least recently used first, then least frequently used, then oldest insert.
func (e *entry) ranksBelow(o *entry) bool {
	if !e.lastAccess.Equal(o.lastAccess) {
		return e.lastAccess.Before(o.lastAccess)
	}
	if e.hits != o.hits {
		return e.hits < o.hits
	}
	return e.seq < o.seq
}
