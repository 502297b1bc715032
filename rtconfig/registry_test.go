package rtconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_ReturnsSameVarForSameName(t *testing.T) {
	v1 := Register("test.registry.dup", 1, "")
	v2 := Register("Test.Registry.DUP", 2, "")
	assert.Same(t, v1, v2)
	assert.Equal(t, 1, v1.Get())
}

func TestRegister_PanicsOnTypeMismatch(t *testing.T) {
	Register("test.registry.typed", 1, "")
	assert.Panics(t, func() {
		Register("test.registry.typed", "a string", "")
	})
}

func TestVar_SetNotifiesListenersOnlyOnChange(t *testing.T) {
	v := Register("test.registry.listener", 10, "")
	var calls int
	var gotOld, gotNew int
	v.AddListener(func(oldVal, newVal int) {
		calls++
		gotOld, gotNew = oldVal, newVal
	})

	v.Set(10) // no change
	assert.Equal(t, 0, calls)

	v.Set(20)
	require.Equal(t, 1, calls)
	assert.Equal(t, 10, gotOld)
	assert.Equal(t, 20, gotNew)
}

func TestLoadYAML_AppliesRegisteredKeysOnly(t *testing.T) {
	str := Register("test.loadyaml.str", "default", "")
	num := Register("test.loadyaml.num", 0, "")

	err := LoadYAML([]byte("test:\n  loadyaml:\n    str: hello\n    num: 42\n    unregistered: true\n"))
	require.NoError(t, err)

	assert.Equal(t, "hello", str.Get())
	assert.Equal(t, 42, num.Get())
}
