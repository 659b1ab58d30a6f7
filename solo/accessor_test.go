package solo_test

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/sghaida/solo/solo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Func
func TestFunc_RepeatedCallsReturnIdenticalInstance(t *testing.T) {
	t.Parallel()

	var calls int32
	accessor := solo.Func(func() (*conn, error) {
		atomic.AddInt32(&calls, 1)
		return &conn{DSN: "shared"}, nil
	})

	first, err := accessor()
	require.NoError(t, err)

	second, err := accessor()
	require.NoError(t, err)

	require.Same(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFunc_IndependentAccessorsOwnIndependentInstances(t *testing.T) {
	t.Parallel()

	ctor := func() (*conn, error) { return &conn{DSN: "x"}, nil }

	a := solo.Func(ctor)
	b := solo.Func(ctor)

	va, err := a()
	require.NoError(t, err)
	vb, err := b()
	require.NoError(t, err)

	assert.NotSame(t, va, vb)
}

func TestFunc_ErrorIsSticky(t *testing.T) {
	t.Parallel()

	boom := errors.New("construction failed")
	var calls int32
	accessor := solo.Func(func() (*conn, error) {
		atomic.AddInt32(&calls, 1)
		return nil, boom
	})

	_, err := accessor()
	require.ErrorIs(t, err, boom)
	_, err = accessor()
	require.ErrorIs(t, err, boom)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

// FuncOf
func TestFuncOf_SameInstance(t *testing.T) {
	t.Parallel()

	accessor := solo.FuncOf(func() *conn { return &conn{DSN: "of"} })

	first, err := accessor()
	require.NoError(t, err)
	second, err := accessor()
	require.NoError(t, err)
	assert.Same(t, first, second)

	nilCtor := solo.FuncOf[conn](nil)
	_, err = nilCtor()
	assert.ErrorIs(t, err, solo.ErrNilConstructor)
}

// MustFunc
func TestMustFunc_SameInstanceAndPanicPath(t *testing.T) {
	t.Parallel()

	accessor := solo.MustFunc(func() *conn { return &conn{DSN: "must"} })
	assert.Same(t, accessor(), accessor())

	nilInstance := solo.MustFunc(func() *conn { return nil })
	require.PanicsWithError(t, solo.ErrNilInstance.Error(), func() {
		_ = nilInstance()
	})
}
