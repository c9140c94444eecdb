package ttlcache

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorker_PanicIsContained(t *testing.T) {
	var buf bytes.Buffer
	w := NewWorker(
		WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
		OnHit(func(key, _ string) {
			if key == "boom" {
				panic("hook failed")
			}
		}),
	)
	defer w.Close()

	require.NoError(t, w.Set("boom", "v"))
	require.NoError(t, w.Set("ok", "v"))

	_, _, err := w.Get("boom")
	require.Error(t, err)
	assert.True(t, IsLockError(err))
	assert.ErrorIs(t, err, ErrLock)
	assert.Contains(t, buf.String(), "cache command panicked")

	v, ok, err := w.Get("ok")
	require.NoError(t, err, "the loop survives a panicking command")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestWorker_BulkIsOneCommand(t *testing.T) {
	clk := &mockClock{now: time.Now()}
	var seen []time.Time
	w := NewWorker(
		WithClock(clk),
		OnMiss(func(string) { seen = append(seen, clk.Now()) }),
	)
	defer w.Close()

	_, err := w.BulkGet([]string{"a", "b", "c"})
	require.NoError(t, err)

	st, err := w.Stats()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), st.Misses)
	require.Len(t, seen, 3)
	assert.Equal(t, seen[0], seen[2], "the whole batch runs inside one command")
}

func TestWorker_CloseUnblocksCallers(t *testing.T) {
	w := NewWorker(WithMailboxSize(1))
	require.NoError(t, w.Set("a", "1"))

	done := make(chan struct{})
	go func() {
		defer close(done)
		require.NoError(t, w.Close())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close did not return")
	}

	_, err := w.Len()
	assert.True(t, IsLockError(err))
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, err, ErrLock)
}

func TestWorker_SweepRunsOnLoop(t *testing.T) {
	w := NewWorker(WithCleanupInterval(5 * time.Millisecond))
	defer w.Close()

	require.NoError(t, w.SetWithTTL("t", "v", 10*time.Millisecond))

	assert.Eventually(t, func() bool {
		n, err := w.Len()
		return err == nil && n == 0
	}, time.Second, 5*time.Millisecond)

	st, err := w.Stats()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), st.Evictions)
	assert.Equal(t, uint64(0), st.Misses, "removed by the sweeper, not by a read")
}
