package solo

import (
	"errors"
	"fmt"
	"strconv"
)

// Key identifies an entry registered in a Group.
//
// Keys are typically defined as package-level constants to avoid typos.
//
// Example:
//
//	const (
//	  KeyConfig solo.Key = "config"
//	  KeyLogger solo.Key = "logger"
//	)
type Key string

// Entry is the contract a Group manages. *Holder[T] satisfies it for any T.
//
// Implementations must be safe for concurrent use. Initialize triggers
// construction and reports its outcome; it is expected to be idempotent.
type Entry interface {
	Initialize() error
	Initialized() bool
	Reset()
}

var (
	// ErrNilEntry is returned by Add when the entry is nil.
	ErrNilEntry = errors.New("solo: nil group entry")

	// ErrInitializePanic is returned (wrapped inside InitError) if an entry
	// implementation panics during Initialize. Holders never do; foreign Entry
	// implementations might.
	ErrInitializePanic = errors.New("solo: panic during Initialize")
)

// DuplicateKeyError is returned by Add when a key is registered twice.
type DuplicateKeyError struct{ Key Key }

// Error implements the error interface.
func (e DuplicateKeyError) Error() string {
	// Example: solo: duplicate group key "config"
	return "solo: duplicate group key " + strconv.Quote(string(e.Key))
}

// InitError is returned by InitAll when an entry fails to initialize.
// It carries the failing key and unwraps to the underlying cause.
type InitError struct {
	Key Key
	Err error
}

// Error implements the error interface.
func (e InitError) Error() string {
	// Example: solo: initialize "config" failed: ...
	return "solo: initialize " + strconv.Quote(string(e.Key)) + " failed: " + e.Err.Error()
}

// Unwrap returns the underlying construction error.
func (e InitError) Unwrap() error { return e.Err }

// Group is a process-local, ordered collection of holders.
//
// It is intentionally:
//   - local: nothing networked, nothing persisted
//   - injection-free: a Group never wires one entry into another
//   - startup/test oriented: warm everything up, tear everything down
//
// Expected usage:
//
//	g := solo.NewGroup().
//		Register("config", cfgHolder).
//		Register("logger", logHolder)
//	if err := g.InitAll(); err != nil { ... }
type Group struct {
	entries map[Key]Entry
	order   []Key
}

// NewGroup returns an empty Group.
func NewGroup() *Group {
	return &Group{entries: map[Key]Entry{}}
}

// Add registers an entry under a key.
//
// It returns ErrNilEntry for a nil entry and DuplicateKeyError when the key is
// already taken. Registration order is preserved for InitAll/ResetAll.
func (g *Group) Add(key Key, e Entry) error {
	if e == nil {
		return ErrNilEntry
	}
	if g.entries == nil {
		g.entries = map[Key]Entry{}
	}
	if _, exists := g.entries[key]; exists {
		return DuplicateKeyError{Key: key}
	}
	g.entries[key] = e
	g.order = append(g.order, key)
	return nil
}

// Register is the chaining form of Add. It panics on error.
// Useful in composition roots and tests where bad wiring should fail fast.
func (g *Group) Register(key Key, e Entry) *Group {
	if err := g.Add(key, e); err != nil {
		panic(err)
	}
	return g
}

// Get returns the entry if present (no panic).
func (g *Group) Get(key Key) (Entry, bool) {
	if g == nil || g.entries == nil {
		return nil, false
	}
	e, ok := g.entries[key]
	return e, ok
}

// MustGet returns the entry or panics with a helpful message.
func (g *Group) MustGet(key Key) Entry {
	e, ok := g.Get(key)
	if !ok {
		panic(fmt.Errorf("solo: group missing key %q", key))
	}
	return e
}

// Has reports whether a key is registered.
func (g *Group) Has(key Key) bool {
	_, ok := g.Get(key)
	return ok
}

// Len returns the number of registered entries.
func (g *Group) Len() int {
	if g == nil {
		return 0
	}
	return len(g.order)
}

// Keys returns the registered keys in registration order.
func (g *Group) Keys() []Key {
	if g == nil || len(g.order) == 0 {
		return nil
	}
	out := make([]Key, len(g.order))
	copy(out, g.order)
	return out
}

// InitAll initializes every entry in registration order.
//
// It stops at the first failure and returns an InitError naming the key.
// Entries already initialized are still asked to Initialize; for holders that
// is a cheap lookup of the recorded outcome.
func (g *Group) InitAll() error {
	if g == nil {
		return nil
	}
	for _, key := range g.order {
		if err := safeInitialize(g.entries[key]); err != nil {
			return InitError{Key: key, Err: err}
		}
	}
	return nil
}

// safeInitialize converts panics from foreign Entry implementations
// into errors.
func safeInitialize(e Entry) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrInitializePanic, rec)
		}
	}()
	return e.Initialize()
}

// ResetAll resets every entry in reverse registration order, so dependents
// registered later are dropped before what they were built from.
func (g *Group) ResetAll() {
	if g == nil {
		return
	}
	for i := len(g.order) - 1; i >= 0; i-- {
		g.entries[g.order[i]].Reset()
	}
}

// Pending returns, in registration order, the keys whose entries have not been
// initialized yet. Useful for debug UX before calling InitAll.
func (g *Group) Pending() []Key {
	if g == nil {
		return nil
	}
	pending := []Key{}
	for _, key := range g.order {
		if !g.entries[key].Initialized() {
			pending = append(pending, key)
		}
	}
	return pending
}
