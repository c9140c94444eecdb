package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/ttlcache"
)

type failingSource struct{}

func (failingSource) Stats() (ttlcache.Stats, error) { return ttlcache.Stats{}, ttlcache.ErrLock }
func (failingSource) Len() (int, error)              { return 0, ttlcache.ErrLock }

func TestCollector(t *testing.T) {
	c := ttlcache.New(ttlcache.WithMaxSize(1))
	defer c.Close()

	require.NoError(t, c.Set("a", "1"))
	_, _, err := c.Get("a")
	require.NoError(t, err)
	_, _, err = c.Get("missing")
	require.NoError(t, err)
	require.NoError(t, c.Set("b", "2")) // evicts a

	col := NewCollector("ttlcache", c)

	assert.Equal(t, float64(1), testutil.ToFloat64(col.hits))
	assert.Equal(t, float64(1), testutil.ToFloat64(col.misses))
	assert.Equal(t, float64(1), testutil.ToFloat64(col.evictions))
	assert.InDelta(t, 50.0, testutil.ToFloat64(col.hitRate), 0.001)
	assert.Equal(t, float64(1), testutil.ToFloat64(col.entries))
	assert.Equal(t, 5, testutil.CollectAndCount(col))
}

func TestCollector_ReadsOnScrape(t *testing.T) {
	w := ttlcache.NewWorker()
	defer w.Close()

	col := NewCollector("worker", w)
	assert.Equal(t, float64(0), testutil.ToFloat64(col.hits))

	require.NoError(t, w.Set("k", "v"))
	_, _, err := w.Get("k")
	require.NoError(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(col.hits))
	assert.Equal(t, float64(100), testutil.ToFloat64(col.hitRate))
}

func TestCollector_FailingSource(t *testing.T) {
	col := NewCollector("broken", failingSource{})

	assert.Equal(t, float64(0), testutil.ToFloat64(col.hits))
	assert.Equal(t, float64(0), testutil.ToFloat64(col.entries))
}

func TestRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := ttlcache.New()
	defer c.Close()

	col, err := Register(reg, "ttlcache", c)
	require.NoError(t, err)
	require.NotNil(t, col)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"ttlcache_hits_total",
		"ttlcache_misses_total",
		"ttlcache_evictions_total",
		"ttlcache_hit_rate_percent",
		"ttlcache_entries",
	}, names)

	// same namespace twice collides
	_, err = Register(reg, "ttlcache", c)
	require.Error(t, err)
}
