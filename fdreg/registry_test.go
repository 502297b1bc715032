package fdreg

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_GetOrCreate_InitializesFromPipe(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	reg := New()
	e := reg.GetOrCreate(int(r.Fd()))
	require.NotNil(t, e)
	assert.True(t, e.IsInit())
	assert.False(t, e.IsSocket())

	same := reg.GetOrCreate(int(r.Fd()))
	assert.Same(t, e, same)
}

func TestRegistry_GetReturnsFalseWhenAbsent(t *testing.T) {
	reg := New()
	_, ok := reg.Get(999999)
	assert.False(t, ok)
}

func TestRegistry_Del_RemovesEntry(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	reg := New()
	reg.GetOrCreate(int(r.Fd()))
	reg.Del(int(r.Fd()))
	_, ok := reg.Get(int(r.Fd()))
	assert.False(t, ok)
}

func TestEntry_TimeoutRoundTrips(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	e := newEntry(int(r.Fd()))
	assert.Zero(t, e.Timeout(TimeoutRead))
	e.SetTimeout(TimeoutRead, 5_000_000)
	assert.EqualValues(t, 5_000_000, e.Timeout(TimeoutRead))
}

func TestEntry_MarkClosed(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	e := newEntry(int(r.Fd()))
	assert.False(t, e.IsClosed())
	e.MarkClosed()
	assert.True(t, e.IsClosed())
}
