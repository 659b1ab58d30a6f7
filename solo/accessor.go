package solo

// Func returns a shared accessor for a lazily-built instance.
//
// Each call to Func creates a fresh holder; the returned function is the
// classic package-level Instance() shape:
//
//	var Conn = solo.Func(openConn)
//
//	c, err := Conn() // same *Conn on every call
//
// Repeated calls to the returned accessor yield the identical pointer (or the
// recorded construction error).
func Func[T any](ctor Constructor[T]) func() (*T, error) {
	h := Lazy(ctor)
	return h.Get
}

// FuncOf is Func for constructors that cannot fail.
func FuncOf[T any](ctor func() *T) func() (*T, error) {
	h := LazyOf(ctor)
	return h.Get
}

// MustFunc returns a shared accessor that panics if construction fails.
//
// Intended for package-level accessors whose constructor cannot reasonably
// fail (and where failure should take the process down).
func MustFunc[T any](ctor func() *T) func() *T {
	h := LazyOf(ctor)
	return h.MustGet
}
