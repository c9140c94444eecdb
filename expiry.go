package ttlcache

import (
	"container/heap"
	"time"
)

// deadline is one scheduled expiration. A key may own several deadlines over
// its lifetime; only the one matching the entry's current expiresAt counts.
type deadline struct {
	at  time.Time
	key string
}

// deadlines is a min-heap ordered by soonest expiration first.
type deadlines []deadline

func (d deadlines) Len() int           { return len(d) }
func (d deadlines) Less(i, j int) bool { return d[i].at.Before(d[j].at) }
func (d deadlines) Swap(i, j int)      { d[i], d[j] = d[j], d[i] }

func (d *deadlines) Push(x any) { *d = append(*d, x.(deadline)) }

func (d *deadlines) Pop() any {
	old := *d
	n := len(old)
	item := old[n-1]
	old[n-1] = deadline{}
	*d = old[:n-1]
	return item
}

// expiryIndex finds expired keys without scanning the whole store.
// It is advisory: callers validate every popped deadline against the store.
type expiryIndex struct {
	items deadlines
}

func (x *expiryIndex) push(key string, at time.Time) {
	heap.Push(&x.items, deadline{at: at, key: key})
}

// popExpired removes and returns the earliest deadline if it lies strictly
// before now.
func (x *expiryIndex) popExpired(now time.Time) (deadline, bool) {
	if len(x.items) == 0 || !now.After(x.items[0].at) {
		return deadline{}, false
	}
	return heap.Pop(&x.items).(deadline), true
}

func (x *expiryIndex) len() int {
	return len(x.items)
}

func (x *expiryIndex) reset() {
	x.items = nil
}
