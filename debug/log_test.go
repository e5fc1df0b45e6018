package debug

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogWritesOnlyWhenEnabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "debug.log")

	Log("test", "before %d", 1)
	require.NoError(t, Enable(path))
	assert.True(t, Enabled())

	Log("test", "hello %d", 2)
	Error("audio", errors.New("no device"), "running without audio")
	Error("audio", nil, "ignored")
	Disable()
	assert.False(t, Enabled())
	Log("test", "after %d", 3)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "hello 2")
	assert.Contains(t, out, "cat=test")
	assert.Contains(t, out, "no device")
	assert.NotContains(t, out, "before")
	assert.NotContains(t, out, "after")
	assert.NotContains(t, out, "ignored")
}

func TestLogEvery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, Enable(path))
	defer Disable()

	for i := 0; i < 7; i++ {
		LogEvery(3, "clock", "tick")
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "tick (every 3"))
}
