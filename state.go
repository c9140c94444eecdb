package ttlcache

import (
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/jmgilman/go/errors"
)

// state is the mutable core shared by every engine: the entry store, the
// expiration index and the statistics. It is not safe for concurrent use;
// each engine provides exactly one serialization boundary around it.
//
// Every method receives the instant of the enclosing operation so that one
// operation never observes two different "now"s.
type state struct {
	cfg   config
	data  map[string]*entry
	index expiryIndex
	stats Stats
	seq   uint64
}

type presence int

const (
	absent presence = iota
	expired
	live
)

func newState(cfg config) *state {
	return &state{
		cfg:  cfg,
		data: make(map[string]*entry),
	}
}

// lookup returns the live entry for key. An expired entry is removed on the
// spot and reported as expired.
func (s *state) lookup(key string, now time.Time) (*entry, presence) {
	ent, ok := s.data[key]
	if !ok {
		return nil, absent
	}
	if ent.isExpired(now) {
		delete(s.data, key)
		return nil, expired
	}
	return ent, live
}

func (s *state) expiresAt(ttl time.Duration, now time.Time) time.Time {
	switch {
	case ttl > 0:
		return now.Add(ttl)
	case s.cfg.defaultTTL > 0:
		return now.Add(s.cfg.defaultTTL)
	default:
		return time.Time{}
	}
}

// set inserts or overwrites key. A non-positive ttl falls back to the
// configured default.
func (s *state) set(key, value string, ttl time.Duration, now time.Time) {
	expiresAt := s.expiresAt(ttl, now)
	if !expiresAt.IsZero() {
		s.index.push(key, expiresAt)
	}

	if _, ok := s.data[key]; !ok && s.cfg.maxSize > 0 && len(s.data) >= s.cfg.maxSize {
		s.evictOne(now)
	}

	s.seq++
	s.data[key] = &entry{
		value:      value,
		expiresAt:  expiresAt,
		lastAccess: now,
		seq:        s.seq,
	}
}

func (s *state) get(key string, now time.Time) (string, bool) {
	ent, p := s.lookup(key, now)
	if p != live {
		s.stats.Misses++
		if s.cfg.onMiss != nil {
			s.cfg.onMiss(key)
		}
		return "", false
	}

	ent.lastAccess = now
	ent.hits++
	s.stats.Hits++
	if s.cfg.onHit != nil {
		s.cfg.onHit(key, ent.value)
	}
	return ent.value, true
}

func (s *state) bulkSet(items []Item, now time.Time) {
	for _, it := range items {
		s.set(it.Key, it.Value, 0, now)
	}
}

func (s *state) bulkGet(keys []string, now time.Time) map[string]Lookup {
	out := make(map[string]Lookup, len(keys))
	for _, key := range keys {
		v, ok := s.get(key, now)
		out[key] = Lookup{Value: v, Found: ok}
	}
	return out
}

func (s *state) updateTTL(key string, ttl time.Duration, now time.Time) bool {
	ent, p := s.lookup(key, now)
	if p != live {
		return false
	}
	ent.expiresAt = now.Add(ttl)
	s.index.push(key, ent.expiresAt)
	return true
}

// compareAndSwap replaces the value without touching expiry, recency,
// frequency or statistics.
func (s *state) compareAndSwap(key, expected, value string, now time.Time) bool {
	ent, p := s.lookup(key, now)
	if p != live || ent.value != expected {
		return false
	}
	ent.value = value
	return true
}

func (s *state) increment(key string, delta int64, now time.Time) (int64, error) {
	ent, p := s.lookup(key, now)
	switch p {
	case absent:
		return 0, ErrKeyNotFound
	case expired:
		return 0, ErrKeyExpired
	}

	n, err := strconv.ParseInt(ent.value, 10, 64)
	if err != nil {
		return 0, ErrValueNotInteger
	}
	if (delta > 0 && n > math.MaxInt64-delta) || (delta < 0 && n < math.MinInt64-delta) {
		return 0, errors.Wrap(ErrValueNotInteger, CodeValueNotInteger, "increment would overflow")
	}

	n += delta
	ent.value = strconv.FormatInt(n, 10)
	return n, nil
}

func (s *state) delete(key string, now time.Time) bool {
	if _, p := s.lookup(key, now); p != live {
		return false
	}
	delete(s.data, key)
	return true
}

func (s *state) clear() {
	s.data = make(map[string]*entry)
	s.index.reset()
}

func (s *state) len() int {
	return len(s.data)
}

// sweep removes every entry whose current deadline has passed. Index entries
// that no longer match the stored deadline are discarded without effect.
func (s *state) sweep(now time.Time) int {
	removed := 0
	for {
		d, ok := s.index.popExpired(now)
		if !ok {
			break
		}
		ent, ok := s.data[d.key]
		if !ok || !ent.expiresAt.Equal(d.at) || !ent.isExpired(now) {
			continue
		}
		s.evict(d.key, ent)
		removed++
	}

	if removed > 0 {
		s.cfg.logger.Debug("swept expired entries",
			slog.Int("removed", removed),
			slog.Int("remaining", len(s.data)),
		)
	}
	return removed
}

// evictOne removes a single victim to make room for a new key. Expired
// entries go first; among the rest the least recently used wins, ties broken
// by the lowest access count and then by insertion order.
func (s *state) evictOne(now time.Time) {
	var (
		victimKey     string
		victim        *entry
		victimExpired bool
	)
	for key, ent := range s.data {
		exp := ent.isExpired(now)
		switch {
		case victim == nil,
			exp && !victimExpired,
			exp == victimExpired && ent.ranksBelow(victim):
			victimKey, victim, victimExpired = key, ent, exp
		}
	}
	if victim == nil {
		return
	}

	s.cfg.logger.Debug("evicting entry at capacity",
		slog.String("key", victimKey),
		slog.Bool("expired", victimExpired),
	)
	s.evict(victimKey, victim)
}

func (s *state) evict(key string, ent *entry) {
	delete(s.data, key)
	s.stats.Evictions++
	if s.cfg.onEvict != nil {
		s.cfg.onEvict(key, ent.value)
	}
}

func (s *state) snapshot() Stats {
	return s.stats
}
