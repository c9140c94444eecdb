package ttlcache

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/jmgilman/go/errors"
)

// Worker is an in-memory TTL cache whose state is owned by one goroutine.
// Callers submit commands through a mailbox and block until the worker
// replies; the worker also runs the periodic sweep between commands. No
// locks guard the state because nothing else can reach it.
//
// Bulk operations travel as a single command, so they never interleave with
// other callers' operations.
type Worker struct {
	cfg     config
	mailbox chan command

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

type command struct {
	run   func(st *state, now time.Time)
	reply chan error
}

// NewWorker creates a new Worker with the given options and starts its loop.
func NewWorker(opts ...Option) *Worker {
	cfg := newConfig(opts)

	w := &Worker{
		cfg:     cfg,
		mailbox: make(chan command, cfg.mailboxSize),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	go w.loop(newState(cfg))
	return w
}

// Set adds or updates a value using the default TTL.
func (w *Worker) Set(key, value string) error {
	return w.SetWithTTL(key, value, 0)
}

// SetWithTTL adds or updates a value with a specific TTL.
func (w *Worker) SetWithTTL(key, value string, ttl time.Duration) error {
	return w.do(func(st *state, now time.Time) {
		st.set(key, value, ttl, now)
	})
}

// Get retrieves a live value from the cache.
func (w *Worker) Get(key string) (v string, ok bool, err error) {
	err = w.do(func(st *state, now time.Time) {
		v, ok = st.get(key, now)
	})
	return v, ok, err
}

// BulkSet stores every item as one command.
func (w *Worker) BulkSet(items []Item) error {
	return w.do(func(st *state, now time.Time) {
		st.bulkSet(items, now)
	})
}

// BulkGet reads every key as one command.
func (w *Worker) BulkGet(keys []string) (out map[string]Lookup, err error) {
	err = w.do(func(st *state, now time.Time) {
		out = st.bulkGet(keys, now)
	})
	return out, err
}

// UpdateTTL sets a new deadline for a live key.
func (w *Worker) UpdateTTL(key string, ttl time.Duration) (ok bool, err error) {
	err = w.do(func(st *state, now time.Time) {
		ok = st.updateTTL(key, ttl, now)
	})
	return ok, err
}

// CompareAndSwap replaces the value of key if it currently equals expected.
func (w *Worker) CompareAndSwap(key, expected, value string) (ok bool, err error) {
	err = w.do(func(st *state, now time.Time) {
		ok = st.compareAndSwap(key, expected, value, now)
	})
	return ok, err
}

// Increment adds delta to the integer stored under key.
func (w *Worker) Increment(key string, delta int64) (n int64, err error) {
	var opErr error
	err = w.do(func(st *state, now time.Time) {
		n, opErr = st.increment(key, delta, now)
	})
	if err != nil {
		return 0, err
	}
	return n, opErr
}

// Delete removes a key from the cache.
func (w *Worker) Delete(key string) (ok bool, err error) {
	err = w.do(func(st *state, now time.Time) {
		ok = st.delete(key, now)
	})
	return ok, err
}

// Clear removes all entries from the cache.
func (w *Worker) Clear() error {
	return w.do(func(st *state, _ time.Time) {
		st.clear()
	})
}

// Len returns the number of entries in the cache.
func (w *Worker) Len() (n int, err error) {
	err = w.do(func(st *state, _ time.Time) {
		n = st.len()
	})
	return n, err
}

// Stats returns a snapshot of cache statistics.
func (w *Worker) Stats() (s Stats, err error) {
	err = w.do(func(st *state, _ time.Time) {
		s = st.snapshot()
	})
	return s, err
}

// Close stops the worker loop and waits for it to exit. Commands queued but
// not yet processed fail with a lock error, as does every later call.
//
// Close is safe to call multiple times.
func (w *Worker) Close() error {
	w.stopOnce.Do(func() {
		close(w.stop)
		<-w.done
		w.cfg.logger.Info("cache worker stopped")
	})
	<-w.done
	return nil
}

// do submits run to the worker and waits for it to complete.
func (w *Worker) do(run func(st *state, now time.Time)) error {
	select {
	case <-w.stop:
		return closedErr()
	default:
	}

	cmd := command{run: run, reply: make(chan error, 1)}
	select {
	case <-w.stop:
		return closedErr()
	case w.mailbox <- cmd:
	}

	select {
	case err := <-cmd.reply:
		return err
	case <-w.done:
		// the loop may have replied right before exiting
		select {
		case err := <-cmd.reply:
			return err
		default:
			return closedErr()
		}
	}
}

func (w *Worker) loop(st *state) {
	defer close(w.done)

	ticker := time.NewTicker(w.cfg.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case cmd := <-w.mailbox:
			cmd.reply <- w.exec(cmd.run, st)
		case <-ticker.C:
			_ = w.exec(func(st *state, now time.Time) {
				st.sweep(now)
			}, st)
		}
	}
}

// exec runs one command with crash containment. A panicking command is
// reported to its caller as a lock error and the loop keeps running.
func (w *Worker) exec(run func(st *state, now time.Time), st *state) (err error) {
	defer func() {
		if r := recover(); r != nil {
			w.cfg.logger.Error("cache command panicked",
				slog.Any("recovered", r),
				slog.String("stack", string(debug.Stack())),
			)
			err = errors.WithContext(
				errors.Wrap(ErrLock, CodeLock, "cache command panicked"),
				"recovered", fmt.Sprint(r),
			)
		}
	}()

	run(st, w.cfg.clock.Now())
	return nil
}
