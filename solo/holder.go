// Package solo provides a small, generic single-instance helper.
//
// It models a value that is constructed at most once per process (Holder) plus
// optional grouping for coordinated warm-up and test reset (Group). Accessors
// return the identical pointer on every call after the first; construction
// failures are recorded and returned as typed errors.
//
// Design goals:
//   - Lightweight: small API surface, no container graph, no reflection.
//   - Explicit ownership: holders live where you declare them, usually at the
//     package level or in your composition root.
//   - Safe defaults: thread-safe lazy construction, panics converted to errors,
//     nil-constructor mistakes detected early.
//   - Test-friendly: Reset re-arms a holder so tests can rebuild instances.
//
// Notes on performance:
//   - The steady-state path is a mutex lock plus two field reads.
//   - Error paths avoid fmt.Errorf where possible so failure handling stays
//     inexpensive when used for control flow (e.g., Peek missing checks).
package solo

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNilConstructor is returned by Get when a holder was created with a
	// nil constructor function.
	ErrNilConstructor = errors.New("solo: nil constructor")

	// ErrNilInstance is returned by Get when the constructor returned a nil
	// instance together with a nil error. A holder never hands out (nil, nil).
	ErrNilInstance = errors.New("solo: constructor returned nil instance")

	// ErrConstructorPanic is returned if the constructor panics. The recovered
	// value is attached via wrapping.
	ErrConstructorPanic = errors.New("solo: panic during construction")
)

// Constructor builds the single instance guarded by a Holder.
//
// It is invoked at most once between Resets, under the holder's lock. It must
// not call back into the same holder (that would self-deadlock).
type Constructor[T any] func() (*T, error)

// Holder guards a single instance of *T.
//
// The zero Holder is not usable; create one via Lazy, LazyOf or Eager.
// All methods are safe for concurrent use. Once construction has happened,
// every successful access returns the identical pointer until Reset.
type Holder[T any] struct {
	mu   sync.Mutex
	ctor Constructor[T]
	val  *T
	err  error
	done bool
}

// Lazy returns a holder that builds its instance on first access.
func Lazy[T any](ctor Constructor[T]) *Holder[T] {
	return &Holder[T]{ctor: ctor}
}

// LazyOf is Lazy for constructors that cannot fail.
func LazyOf[T any](ctor func() *T) *Holder[T] {
	if ctor == nil {
		return &Holder[T]{}
	}
	return &Holder[T]{ctor: func() (*T, error) { return ctor(), nil }}
}

// Eager returns a holder around an already-built instance.
//
// Eager(nil) yields a holder whose Get reports ErrNilInstance. An eager holder
// has no constructor, so after Reset its Get reports ErrNilConstructor.
func Eager[T any](val *T) *Holder[T] {
	h := &Holder[T]{val: val, done: true}
	if val == nil {
		h.err = ErrNilInstance
	}
	return h
}

// Get returns the single instance, constructing it on first call.
//
// The construction outcome is sticky: a failed constructor is not retried and
// later calls return the recorded error until Reset. Constructor panics are
// recovered and surfaced as an error wrapping ErrConstructorPanic.
//
// Get never returns (nil, nil).
func (h *Holder[T]) Get() (*T, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.done {
		return h.val, h.err
	}
	h.done = true

	if h.ctor == nil {
		h.err = ErrNilConstructor
		return nil, h.err
	}

	h.val, h.err = h.construct()
	return h.val, h.err
}

// construct runs the constructor with panic recovery. Caller holds h.mu.
func (h *Holder[T]) construct() (val *T, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			val = nil
			err = fmt.Errorf("%w: %v", ErrConstructorPanic, rec)
		}
	}()

	v, cerr := h.ctor()
	if cerr != nil {
		return nil, cerr
	}
	if v == nil {
		return nil, ErrNilInstance
	}
	return v, nil
}

// MustGet returns the single instance or panics with the construction error.
// Useful in examples/tests and package init paths where failure should be fatal.
func (h *Holder[T]) MustGet() *T {
	v, err := h.Get()
	if err != nil {
		panic(err)
	}
	return v
}

// Peek returns the instance only if construction already succeeded.
// It never triggers construction.
func (h *Holder[T]) Peek() (*T, bool) {
	if h == nil {
		return nil, false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.done || h.err != nil {
		return nil, false
	}
	return h.val, true
}

// Initialized reports whether construction has run (successfully or not).
func (h *Holder[T]) Initialized() bool {
	if h == nil {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.done
}

// Err returns the recorded construction error, or nil if construction
// succeeded or has not run yet.
func (h *Holder[T]) Err() error {
	if h == nil {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Initialize triggers construction and discards the value.
//
// It exists so holders satisfy the Group Entry contract; callers that want the
// instance should use Get.
func (h *Holder[T]) Initialize() error {
	_, err := h.Get()
	return err
}

// Reset re-arms the holder: the instance and any recorded error are dropped,
// so the next Get constructs again.
//
// Reset exists for tests and controlled reloads. Production code that resets a
// holder while other goroutines hold the previous instance gets two live
// instances, which defeats the point of a holder.
func (h *Holder[T]) Reset() {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.val = nil
	h.err = nil
	h.done = false
}
