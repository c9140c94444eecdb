package ttlcache

import "time"

// Engine is the operation contract shared by Cache and Worker.
//
// Every operation is linearizable with respect to every other: it runs to
// completion inside the engine's single serialization boundary. Each
// operation reads the clock once, and a bulk operation reads it once for the
// whole batch, so expiry checks and recency updates within it agree. Errors are
// reserved for infrastructure failures (see IsLockError) and for the stricter
// Increment semantics; a missing key, an expired key or a CAS mismatch is a
// regular result.
type Engine interface {
	// Set stores value under key using the default TTL, if any.
	Set(key, value string) error

	// SetWithTTL stores value under key with an explicit TTL.
	// A non-positive ttl falls back to the default TTL.
	SetWithTTL(key, value string, ttl time.Duration) error

	// Get returns the live value for key. Expired entries are removed and
	// reported as misses.
	Get(key string) (string, bool, error)

	// BulkSet applies Set to every item, in order, as a single operation.
	BulkSet(items []Item) error

	// BulkGet applies Get to every key as a single operation. The result
	// holds an entry for every requested key.
	BulkGet(keys []string) (map[string]Lookup, error)

	// UpdateTTL moves the deadline of a live key to now+ttl.
	// Returns false if the key is absent or already expired.
	UpdateTTL(key string, ttl time.Duration) (bool, error)

	// CompareAndSwap replaces the value of a live key if it equals expected.
	// It does not refresh the TTL or the eviction ranking.
	CompareAndSwap(key, expected, value string) (bool, error)

	// Increment adds delta to an integer value and returns the result.
	Increment(key string, delta int64) (int64, error)

	// Delete removes key. Returns true if a live entry was removed.
	Delete(key string) (bool, error)

	// Clear removes all entries. Statistics are kept.
	Clear() error

	// Len returns the number of stored entries.
	// May include expired entries that haven't been swept yet.
	Len() (int, error)

	// Stats returns a snapshot of the statistics.
	Stats() (Stats, error)

	// Close stops the background sweeper and waits for it to exit.
	Close() error
}

// Item is one key/value pair of a bulk write.
type Item struct {
	Key   string
	Value string
}

// Lookup is the outcome of reading one key in a bulk read.
type Lookup struct {
	Value string
	Found bool
}

// Compile-time interface assertions.
var (
	_ Engine = (*Cache)(nil)
	_ Engine = (*Worker)(nil)
)
