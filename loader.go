package ttlcache

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// LoaderFunc produces the value for a key that is not cached.
type LoaderFunc func(ctx context.Context, key string) (string, error)

// Loading adds read-through loading on top of an Engine.
type Loading struct {
	Engine

	load LoaderFunc
	sf   singleflight.Group
}

// NewLoading wraps e so that GetOrLoad fills misses with load.
func NewLoading(e Engine, load LoaderFunc) *Loading {
	return &Loading{Engine: e, load: load}
}

// GetOrLoad returns the cached value for key, or loads, stores and returns
// it. Concurrent misses for the same key share a single loader call.
func (l *Loading) GetOrLoad(ctx context.Context, key string) (string, error) {
	v, ok, err := l.Get(key)
	if err != nil {
		return "", err
	}
	if ok {
		return v, nil
	}

	res, err, _ := l.sf.Do(key, func() (any, error) {
		v, err := l.load(ctx, key)
		if err != nil {
			return "", err
		}
		if err := l.Set(key, v); err != nil {
			return "", err
		}
		return v, nil
	})
	if err != nil {
		return "", err
	}
	return res.(string), nil
}
