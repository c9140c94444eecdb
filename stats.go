package ttlcache

// Stats is a point-in-time copy of cache statistics.
// Counters are monotonic for the lifetime of the engine.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRate returns the cache hit rate as a percentage between 0 and 100.
// Returns 0 if there have been no accesses.
func (s Stats) HitRate() float64 {
	total := s.Accesses()
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Accesses returns the number of reads that reached the store.
func (s Stats) Accesses() uint64 {
	return s.Hits + s.Misses
}
