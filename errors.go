package ttlcache

import (
	"github.com/jmgilman/go/errors"
)

// Error codes reported by the cache. Missing keys, expired keys and CAS
// mismatches are results, not errors; these codes cover the stricter
// operations and infrastructure failures.
const (
	CodeKeyNotFound     = errors.CodeNotFound
	CodeValueNotInteger errors.ErrorCode = "VALUE_NOT_INTEGER"
	CodeKeyExpired      errors.ErrorCode = "KEY_EXPIRED"
	CodeSerialization   errors.ErrorCode = "SERIALIZATION_ERROR"
	CodeLock            errors.ErrorCode = "LOCK_ERROR"
)

var (
	// ErrKeyNotFound is returned by operations that require a live key.
	ErrKeyNotFound = errors.New(CodeKeyNotFound, "key not found in the cache")

	// ErrValueNotInteger is returned by Increment when the stored value is
	// not a base-10 integer.
	ErrValueNotInteger = errors.New(CodeValueNotInteger, "value is not an integer")

	// ErrKeyExpired is returned by operations that require a live key when
	// the key was present but its deadline had passed.
	ErrKeyExpired = errors.New(CodeKeyExpired, "key has expired")

	// ErrLock reports that the serialization boundary could not be used.
	// It is fatal to the session; the engine never retries.
	ErrLock = errors.New(CodeLock, "failed to acquire the lock")

	// ErrClosed is the cause of lock errors returned after Close.
	// It wraps ErrLock.
	ErrClosed = errors.Wrap(ErrLock, CodeLock, "cache is closed")
)

func closedErr() error {
	return errors.Wrap(ErrClosed, CodeLock, "failed to acquire the lock")
}

func serializationErr(err error, key string) error {
	return errors.WithContext(
		errors.Wrap(err, CodeSerialization, "serialization error"),
		"key", key,
	)
}

// IsLockError reports whether err is an infrastructure failure of the
// serialization boundary.
func IsLockError(err error) bool {
	return errors.GetCode(err) == CodeLock
}

// IsSerializationError reports whether err is a value encoding failure.
func IsSerializationError(err error) bool {
	return errors.GetCode(err) == CodeSerialization
}
