package runtimelog

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/joeycumines/logiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Error_WritesMessageAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, logiface.LevelInformational)

	l.Error("fiber panic", "fiber_id", uint64(7), "panic", errors.New("boom"))

	out := buf.String()
	require.NotEmpty(t, out)
	assert.True(t, strings.Contains(out, "fiber panic"))
	assert.True(t, strings.Contains(out, "fiber_id"))
}

func TestLogger_Debug_SuppressedBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, logiface.LevelInformational)

	l.Debug("should not appear")

	assert.Empty(t, buf.String())
}

func TestSetDefault_OverridesDefault(t *testing.T) {
	var buf bytes.Buffer
	custom := New(&buf, logiface.LevelInformational)
	SetDefault(custom)
	defer SetDefault(nil)

	Default().Info("hello")

	assert.Contains(t, buf.String(), "hello")
}
