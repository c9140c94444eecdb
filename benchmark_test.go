package ttlcache

import (
	"strconv"
	"testing"
)

func benchEngines(b *testing.B, run func(b *testing.B, e Engine)) {
	b.Run("Cache", func(b *testing.B) {
		c := New(WithMaxSize(1000))
		defer c.Close()
		run(b, c)
	})
	b.Run("Worker", func(b *testing.B) {
		w := NewWorker(WithMaxSize(1000))
		defer w.Close()
		run(b, w)
	})
}

func BenchmarkEngine_Get(b *testing.B) {
	benchEngines(b, func(b *testing.B, e Engine) {
		keys := make([]string, 100)
		for i := range keys {
			keys[i] = strconv.Itoa(i)
			_ = e.Set(keys[i], keys[i])
		}

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _, _ = e.Get(keys[i%100])
		}
	})
}

func BenchmarkEngine_Set(b *testing.B) {
	benchEngines(b, func(b *testing.B, e Engine) {
		keys := make([]string, 100)
		for i := range keys {
			keys[i] = strconv.Itoa(i)
		}

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = e.Set(keys[i%100], "value")
		}
	})
}

func BenchmarkEngine_SetWithEviction(b *testing.B) {
	c := New(WithMaxSize(100))
	defer c.Close()

	keys := make([]string, b.N)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Set(keys[i], "value")
	}
}

func BenchmarkEngine_BulkSet(b *testing.B) {
	benchEngines(b, func(b *testing.B, e Engine) {
		items := make([]Item, 100)
		for i := range items {
			items[i] = Item{Key: "key" + strconv.Itoa(i), Value: "value" + strconv.Itoa(i)}
		}

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = e.BulkSet(items)
		}
	})
}

func BenchmarkEngine_BulkGet(b *testing.B) {
	benchEngines(b, func(b *testing.B, e Engine) {
		keys := make([]string, 100)
		for i := range keys {
			keys[i] = "key" + strconv.Itoa(i)
			_ = e.Set(keys[i], "value")
		}

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = e.BulkGet(keys)
		}
	})
}

func BenchmarkEngine_Parallel(b *testing.B) {
	benchEngines(b, func(b *testing.B, e Engine) {
		keys := make([]string, 100)
		for i := range keys {
			keys[i] = strconv.Itoa(i)
			_ = e.Set(keys[i], keys[i])
		}

		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			i := 0
			for pb.Next() {
				if i%10 == 0 {
					_ = e.Set(keys[i%100], "value")
				} else {
					_, _, _ = e.Get(keys[i%100])
				}
				i++
			}
		})
	})
}
