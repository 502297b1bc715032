package fiber

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiber_RunToCompletion(t *testing.T) {
	var ran bool
	f := Create(func() {
		ran = true
	}, 0, false)

	assert.Equal(t, StateInit, f.State())
	f.SwapIn()
	assert.True(t, ran)
	assert.Equal(t, StateTerm, f.State())
}

func TestFiber_YieldToHoldThenResume(t *testing.T) {
	var phase int
	f := Create(func() {
		phase = 1
		YieldToHold()
		phase = 2
	}, 0, false)

	f.SwapIn()
	assert.Equal(t, 1, phase)
	assert.Equal(t, StateHold, f.State())

	f.SwapIn()
	assert.Equal(t, 2, phase)
	assert.Equal(t, StateTerm, f.State())
}

func TestFiber_PanicTransitionsToExcept(t *testing.T) {
	f := Create(func() {
		panic(errors.New("boom"))
	}, 0, false)

	f.SwapIn()
	assert.Equal(t, StateExcept, f.State())
	require.NotNil(t, f.PanicValue())
}

func TestFiber_ResetReusesFiber(t *testing.T) {
	var first, second bool
	f := Create(func() { first = true }, 0, false)
	f.SwapIn()
	require.Equal(t, StateTerm, f.State())

	f.Reset(func() { second = true })
	assert.Equal(t, StateInit, f.State())
	f.SwapIn()
	assert.True(t, first)
	assert.True(t, second)
	assert.Equal(t, StateTerm, f.State())
}

func TestFiber_SwapInWhileExecPanics(t *testing.T) {
	inner := Create(func() {}, 0, false)
	inner.state.store(StateExec)
	assert.Panics(t, func() { inner.SwapIn() })
}

func TestThisFiber_LazyBootstrap(t *testing.T) {
	done := make(chan *Fiber, 1)
	go func() {
		done <- ThisFiber()
	}()
	f := <-done
	require.NotNil(t, f)
	assert.True(t, f.IsBootstrap())
	assert.Equal(t, StateExec, f.State())
}

func TestFiber_ThisFiberInsideEntrySeesSelf(t *testing.T) {
	var seen *Fiber
	f := Create(func() {
		seen = ThisFiber()
	}, 0, false)
	f.SwapIn()
	assert.Same(t, f, seen)
}
