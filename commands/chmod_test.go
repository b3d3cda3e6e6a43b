package commands

import (
	"context"
	"io/fs"
	"testing"

	"github.com/josephlewis42/kbuild/core/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChmodExec(t *testing.T) {
	h := newTestEnv(t)
	seedFs(t, h.Fs, map[string]string{"/first": "", "/last": ""})

	_, err := h.Run("chmod_exec /first /last")
	require.NoError(t, err)

	first, err := h.Fs.Stat("/first")
	require.NoError(t, err)
	last, err := h.Fs.Stat("/last")
	require.NoError(t, err)

	assert.Equal(t, fs.FileMode(0644), first.Mode().Perm(), "only the last argument changes")
	assert.Equal(t, ExecutableMode, last.Mode().Perm())
}

func TestChmodExec_keepsFileType(t *testing.T) {
	h := newTestEnv(t)
	require.NoError(t, h.Fs.MkdirAll("/bin", 0700))

	result := ChmodExec(context.Background(), h.Env, []string{"/bin"})
	require.True(t, result.IsOk(), result.Message())

	info, err := h.Fs.Stat("/bin")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, ExecutableMode, info.Mode().Perm())
}

func TestChmodExec_errors(t *testing.T) {
	h := newTestEnv(t)
	h.Env.Options.Fatal = script.FatalRaise

	_, err := h.Run("chmod_exec")
	assert.Error(t, err, "no arguments")

	_, err = h.Run("chmod_exec /missing")
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "can't chmod executable")
	}
}
