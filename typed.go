package ttlcache

import (
	"encoding/json"
	"time"
)

// Typed stores values of type T in an Engine as JSON documents.
// Encoding and decoding failures are reported as serialization errors.
type Typed[T any] struct {
	e Engine
}

// NewTyped wraps e with a type-safe view.
func NewTyped[T any](e Engine) *Typed[T] { return &Typed[T]{e: e} }

// Set encodes val and stores it using the default TTL.
func (t *Typed[T]) Set(key string, val T) error {
	return t.SetWithTTL(key, val, 0)
}

// SetWithTTL encodes val and stores it with a specific TTL.
func (t *Typed[T]) SetWithTTL(key string, val T, ttl time.Duration) error {
	data, err := t.encode(key, val)
	if err != nil {
		return err
	}
	return t.e.SetWithTTL(key, data, ttl)
}

// Get returns the decoded value for key.
func (t *Typed[T]) Get(key string) (out T, ok bool, err error) {
	data, ok, err := t.e.Get(key)
	if err != nil || !ok {
		return out, false, err
	}
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		var zero T
		return zero, false, serializationErr(err, key)
	}
	return out, true, nil
}

// CompareAndSwap replaces the stored value if its encoding equals the
// encoding of expected.
func (t *Typed[T]) CompareAndSwap(key string, expected, val T) (bool, error) {
	old, err := t.encode(key, expected)
	if err != nil {
		return false, err
	}
	data, err := t.encode(key, val)
	if err != nil {
		return false, err
	}
	return t.e.CompareAndSwap(key, old, data)
}

func (t *Typed[T]) encode(key string, val T) (string, error) {
	b, err := json.Marshal(val)
	if err != nil {
		return "", serializationErr(err, key)
	}
	return string(b), nil
}
