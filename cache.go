package ttlcache

import (
	"context"
	"sync"
	"time"
)

// Cache is an in-memory TTL cache whose state is guarded by a single mutex.
// A background janitor sweeps expired entries every cleanup interval under
// the same mutex.
//
// Cache owns its janitor goroutine. Call Close to stop it.
type Cache struct {
	mu     sync.Mutex
	st     *state
	cfg    config
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new Cache with the given options and starts its janitor.
func New(opts ...Option) *Cache {
	cfg := newConfig(opts)
	ctx, cancel := context.WithCancel(context.Background())

	c := &Cache{
		st:     newState(cfg),
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
	}

	c.wg.Add(1)
	go c.janitor()

	return c
}

// acquire takes the mutex. On success the caller must unlock.
func (c *Cache) acquire() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return closedErr()
	}
	return nil
}

// Set adds or updates a value using the default TTL.
func (c *Cache) Set(key, value string) error {
	return c.SetWithTTL(key, value, 0)
}

// SetWithTTL adds or updates a value with a specific TTL.
func (c *Cache) SetWithTTL(key, value string, ttl time.Duration) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.mu.Unlock()

	c.st.set(key, value, ttl, c.cfg.clock.Now())
	return nil
}

// Get retrieves a live value from the cache.
func (c *Cache) Get(key string) (string, bool, error) {
	if err := c.acquire(); err != nil {
		return "", false, err
	}
	defer c.mu.Unlock()

	v, ok := c.st.get(key, c.cfg.clock.Now())
	return v, ok, nil
}

// BulkSet stores every item under one lock acquisition.
func (c *Cache) BulkSet(items []Item) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.mu.Unlock()

	c.st.bulkSet(items, c.cfg.clock.Now())
	return nil
}

// BulkGet reads every key under one lock acquisition.
func (c *Cache) BulkGet(keys []string) (map[string]Lookup, error) {
	if err := c.acquire(); err != nil {
		return nil, err
	}
	defer c.mu.Unlock()

	return c.st.bulkGet(keys, c.cfg.clock.Now()), nil
}

// UpdateTTL sets a new deadline for a live key.
func (c *Cache) UpdateTTL(key string, ttl time.Duration) (bool, error) {
	if err := c.acquire(); err != nil {
		return false, err
	}
	defer c.mu.Unlock()

	return c.st.updateTTL(key, ttl, c.cfg.clock.Now()), nil
}

// CompareAndSwap replaces the value of key if it currently equals expected.
func (c *Cache) CompareAndSwap(key, expected, value string) (bool, error) {
	if err := c.acquire(); err != nil {
		return false, err
	}
	defer c.mu.Unlock()

	return c.st.compareAndSwap(key, expected, value, c.cfg.clock.Now()), nil
}

// Increment adds delta to the integer stored under key.
func (c *Cache) Increment(key string, delta int64) (int64, error) {
	if err := c.acquire(); err != nil {
		return 0, err
	}
	defer c.mu.Unlock()

	return c.st.increment(key, delta, c.cfg.clock.Now())
}

// Delete removes a key from the cache.
func (c *Cache) Delete(key string) (bool, error) {
	if err := c.acquire(); err != nil {
		return false, err
	}
	defer c.mu.Unlock()

	return c.st.delete(key, c.cfg.clock.Now()), nil
}

// Clear removes all entries from the cache.
func (c *Cache) Clear() error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.mu.Unlock()

	c.st.clear()
	return nil
}

// Len returns the number of entries in the cache.
func (c *Cache) Len() (int, error) {
	if err := c.acquire(); err != nil {
		return 0, err
	}
	defer c.mu.Unlock()

	return c.st.len(), nil
}

// Stats returns a snapshot of cache statistics.
func (c *Cache) Stats() (Stats, error) {
	if err := c.acquire(); err != nil {
		return Stats{}, err
	}
	defer c.mu.Unlock()

	return c.st.snapshot(), nil
}

// Close stops the janitor and waits for it to exit. Operations after Close
// fail with a lock error.
//
// Close is safe to call multiple times.
func (c *Cache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	// cancel outside the lock so a sweep in progress can finish
	c.cancel()
	c.wg.Wait()

	c.cfg.logger.Info("cache closed")
	return nil
}

func (c *Cache) janitor() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.cfg.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *Cache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.st.sweep(c.cfg.clock.Now())
}
