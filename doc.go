// Package ttlcache provides an in-memory string cache with per-entry
// expiration, count-bounded eviction, compare-and-swap and hit/miss
// statistics.
//
// # Overview
//
// Two engines implement the same Engine contract:
//
//   - Cache guards its state with a mutex and sweeps expired entries from a
//     background janitor goroutine.
//   - Worker owns its state on a single goroutine. Callers talk to it through
//     a command mailbox, and the same goroutine runs the periodic sweep.
//
// Both see identical semantics; pick whichever concurrency model fits the
// surrounding program.
//
// # Basic Usage
//
//	cache := ttlcache.New(
//		ttlcache.WithMaxSize(1000),
//		ttlcache.WithDefaultTTL(5*time.Minute),
//	)
//	defer cache.Close()
//
//	cache.Set("key", "value")
//
//	v, ok, err := cache.Get("key")
//	if err != nil {
//		return err
//	}
//	if ok {
//		fmt.Println(v)
//	}
//
// # Expiration
//
// An entry stored with a TTL expires strictly after now+ttl. Set uses the
// configured default TTL; SetWithTTL with a non-positive ttl does too, and
// without a default the entry never expires. Expired entries disappear on
// the next read that touches them or on the next sweep, whichever comes
// first. UpdateTTL moves the deadline of a live entry.
//
// # Eviction
//
// With WithMaxSize set, inserting a new key into a full cache evicts exactly
// one entry first. Entries that have already expired go first. Otherwise the
// least recently accessed entry is evicted, and among entries accessed at the
// same instant the one with fewer hits goes. Overwriting an existing key
// never evicts.
//
// # Compare-And-Swap
//
//	ok, err := cache.CompareAndSwap("state", "old", "new")
//
// The swap happens only when the live value equals expected. It does not
// change the entry's TTL, its eviction rank, or the statistics.
//
// # Bulk Operations
//
// BulkSet and BulkGet run as one critical section (one lock acquisition or one
// worker command), so they never interleave with other callers:
//
//	cache.BulkSet([]ttlcache.Item{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}})
//	found, _ := cache.BulkGet([]string{"a", "b", "c"})
//	// found["c"].Found == false
//
// BulkGetKeys accepts any key type together with a projection to string.
//
// # Statistics
//
// Stats reports hits, misses and evictions. HitRate is expressed in percent.
// Only reads count as hits or misses; every removal caused by capacity or by
// the sweeper counts as an eviction.
//
// # Errors
//
// Errors carry codes from github.com/jmgilman/go/errors. Operations on a
// closed engine, or a worker command that panicked, fail with a lock error:
//
//	if ttlcache.IsLockError(err) {
//		// the engine is gone
//	}
//
// # Testing
//
// Inject a custom clock to control time in tests:
//
//	type fakeClock struct{ now time.Time }
//	func (c *fakeClock) Now() time.Time { return c.now }
//
//	clock := &fakeClock{now: time.Now()}
//	cache := ttlcache.New(ttlcache.WithClock(clock))
//
//	cache.SetWithTTL("key", "v", time.Minute)
//	clock.now = clock.now.Add(2 * time.Minute)
//	_, ok, _ := cache.Get("key") // ok == false
package ttlcache
