package solo_test

import (
	"errors"
	"testing"

	"github.com/sghaida/solo/solo"
)

/*
   Shared helpers (NOT counted in benchmarks)
*/

func newBenchHolder() *solo.Holder[conn] {
	return solo.Lazy(func() (*conn, error) {
		return &conn{DSN: "postgres"}, nil
	})
}

var errBench = errors.New("bench: construction failed")

func newFailingBenchHolder() *solo.Holder[conn] {
	return solo.Lazy(func() (*conn, error) {
		return nil, errBench
	})
}

/*
   Benchmarks
*/

func BenchmarkLazy(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = newBenchHolder()
	}
}

func BenchmarkGet_FirstAccess(b *testing.B) {
	for i := 0; i < b.N; i++ {
		h := newBenchHolder()
		_, _ = h.Get()
	}
}

func BenchmarkGet_SteadyState(b *testing.B) {
	h := newBenchHolder()
	_, _ = h.Get()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.Get()
	}
}

func BenchmarkGet_SteadyState_Parallel(b *testing.B) {
	h := newBenchHolder()
	_, _ = h.Get()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = h.Get()
		}
	})
}

func BenchmarkGet_StickyError(b *testing.B) {
	h := newFailingBenchHolder()
	_, _ = h.Get()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.Get() // recorded-error path
	}
}

func BenchmarkMustGet_SteadyState(b *testing.B) {
	h := newBenchHolder()
	_ = h.MustGet()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = h.MustGet()
	}
}

func BenchmarkPeek(b *testing.B) {
	h := newBenchHolder()
	_, _ = h.Get()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.Peek()
	}
}

func BenchmarkFuncAccessor_SteadyState(b *testing.B) {
	accessor := solo.Func(func() (*conn, error) {
		return &conn{DSN: "postgres"}, nil
	})
	_, _ = accessor()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = accessor()
	}
}

func BenchmarkGroup_InitAll_AlreadyInitialized(b *testing.B) {
	g := solo.NewGroup().
		Register("a", newBenchHolder()).
		Register("b", newBenchHolder()).
		Register("c", newBenchHolder())
	_ = g.InitAll()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.InitAll()
	}
}

func BenchmarkReset_ThenGet(b *testing.B) {
	h := newBenchHolder()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Reset()
		_, _ = h.Get()
	}
}
