package ttlcache

// BulkGetKeys reads keys of any comparable type through their string
// projection and returns the results keyed by the caller's original keys.
//
// The input is walked once; each original key is kept alongside its
// projection.
func BulkGetKeys[K comparable](e Engine, keys []K, project func(K) string) (map[K]Lookup, error) {
	type pair struct {
		key  K
		name string
	}

	pairs := make([]pair, 0, len(keys))
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		name := project(k)
		pairs = append(pairs, pair{key: k, name: name})
		names = append(names, name)
	}

	found, err := e.BulkGet(names)
	if err != nil {
		return nil, err
	}

	out := make(map[K]Lookup, len(pairs))
	for _, p := range pairs {
		out[p.key] = found[p.name]
	}
	return out, nil
}

// BulkGetStrings is BulkGetKeys for string-based key types.
func BulkGetStrings[K ~string](e Engine, keys []K) (map[K]Lookup, error) {
	return BulkGetKeys(e, keys, func(k K) string { return string(k) })
}

// Items builds bulk write items from a map. Map iteration order is random,
// so callers that need ordered writes should build the slice themselves.
func Items(m map[string]string) []Item {
	out := make([]Item, 0, len(m))
	for k, v := range m {
		out = append(out, Item{Key: k, Value: v})
	}
	return out
}
