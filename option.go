package ttlcache

import (
	"log/slog"
	"time"
)

const (
	// DefaultCleanupInterval is the default cadence of the expiry sweep.
	DefaultCleanupInterval = time.Second

	// DefaultMailboxSize is the default command queue depth of a Worker.
	DefaultMailboxSize = 1024
)

// Clock provides the current time to an engine.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type config struct {
	maxSize         int           // 0 means unbounded
	defaultTTL      time.Duration // 0 means entries never expire
	cleanupInterval time.Duration
	mailboxSize     int
	clock           Clock
	logger          *slog.Logger
	onEvict         func(key, value string)
	onHit           func(key, value string)
	onMiss          func(key string)
}

func defaultConfig() config {
	return config{
		cleanupInterval: DefaultCleanupInterval,
		mailboxSize:     DefaultMailboxSize,
		clock:           realClock{},
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return cfg
}

// Option configures a cache engine.
type Option func(*config)

// WithMaxSize bounds the number of entries. Inserting a new key into a full
// cache evicts one entry first. Non-positive values leave the cache unbounded.
func WithMaxSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxSize = n
		}
	}
}

// WithDefaultTTL sets the time-to-live applied when a write omits one.
func WithDefaultTTL(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.defaultTTL = d
		}
	}
}

// WithCleanupInterval sets how often expired entries are swept.
func WithCleanupInterval(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.cleanupInterval = d
		}
	}
}

// WithMailboxSize sets the command queue depth of a Worker.
// It has no effect on a Cache.
func WithMailboxSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.mailboxSize = n
		}
	}
}

// WithClock sets a custom clock for time operations.
// Useful for testing TTL behavior.
func WithClock(clk Clock) Option {
	return func(c *config) {
		c.clock = clk
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// OnEvict sets a callback invoked when an entry is evicted for capacity or
// removed by the sweeper. It runs inside the serialization boundary and must
// not call back into the cache.
func OnEvict(fn func(key, value string)) Option {
	return func(c *config) {
		c.onEvict = fn
	}
}

// OnHit sets a callback invoked on cache hits.
func OnHit(fn func(key, value string)) Option {
	return func(c *config) {
		c.onHit = fn
	}
}

// OnMiss sets a callback invoked on cache misses.
func OnMiss(fn func(key string)) Option {
	return func(c *config) {
		c.onMiss = fn
	}
}
