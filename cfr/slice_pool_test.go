package cfr

import (
	"testing"
)

func TestSlicePool_RecycledSlicesAreZeroed(t *testing.T) {
	pool := &floatSlicePool{}
	v := pool.alloc(3)
	if len(v) != 3 {
		t.Fatalf("expected slice of len 3, got %d", len(v))
	}

	v[0] = 1.0
	pool.free(v)

	w := pool.alloc(3)
	for i, x := range w {
		if x != 0 {
			t.Errorf("recycled slice not zeroed at %d: %v", i, x)
		}
	}
}

func BenchmarkAllocFree(b *testing.B) {
	pool := &floatSlicePool{}
	for i := 0; i < b.N; i++ {
		v := pool.alloc(10)
		pool.free(v)
	}
}

func BenchmarkThreadSafeAllocFree(b *testing.B) {
	pool := &threadSafeFloatSlicePool{}
	for i := 0; i < b.N; i++ {
		v := pool.alloc(10)
		pool.free(v)
	}
}

func BenchmarkThreadSafeAllocFree_Parallel(b *testing.B) {
	pool := &threadSafeFloatSlicePool{}
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			v := pool.alloc(10)
			pool.free(v)
		}
	})
}
