package logger

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock returns start on the first call and advances by step after.
func fakeClock(start time.Time, step time.Duration) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(step)
		return now
	}
}

func TestLogFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	lf, err := openLogFile(fsys, "/logs/run.log", nil, fakeClock(start, 1500*time.Millisecond))
	require.NoError(t, err)

	require.NoError(t, lf.WriteLog("first\n\nsecond\n"))

	got, err := lf.ReadLog()
	require.NoError(t, err)
	assert.Equal(t, "[2024-01-02 03:04:06 (1.500s from start)] first\n"+
		"[2024-01-02 03:04:06 (1.500s from start)] second", got)
	assert.Equal(t, "/logs/run.log", lf.Path())
}

func TestLogFile_appends(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/run.log", []byte("old line\n"), 0644))

	lf, err := OpenLogFile(fsys, "/run.log", nil)
	require.NoError(t, err)
	require.NoError(t, lf.WriteLog("new line"))

	got, err := lf.ReadLog()
	require.NoError(t, err)
	assert.Contains(t, got, "old line\n")
	assert.Contains(t, got, "new line")
}

func TestLogFile_directory(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/logs", 0755))

	_, err := OpenLogFile(fsys, "/logs", nil)

	assert.Error(t, err)
}

func TestLogFile_saveToParent(t *testing.T) {
	fsys := afero.NewMemMapFs()
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	parent, err := openLogFile(fsys, "/parent.log", nil, fakeClock(start, 0))
	require.NoError(t, err)
	child, err := openLogFile(fsys, "/child.log", parent, fakeClock(start, 0))
	require.NoError(t, err)

	require.NoError(t, child.WriteLog("built"))
	require.NoError(t, child.SaveToParent(""))

	got, err := parent.ReadLog()
	require.NoError(t, err)
	prefix := "[2024-01-02 03:04:05 (0.000s from start)] "
	assert.Equal(t, prefix+"Output of previous script:\n"+prefix+prefix+"built", got)

	orphan, err := OpenLogFile(fsys, "/orphan.log", nil)
	require.NoError(t, err)
	assert.NoError(t, orphan.SaveToParent("x86"))
}

func TestNew(t *testing.T) {
	fsys := afero.NewMemMapFs()
	lf, err := OpenLogFile(fsys, "/run.log", nil)
	require.NoError(t, err)

	var console bytes.Buffer
	log := New(&console, true, lf)
	log.Info().Msg("building")
	log.Debug().Str("arch", "x86").Msg("details")

	assert.Equal(t, "[*] building\n[.] details\n", console.String())

	got, err := lf.ReadLog()
	require.NoError(t, err)
	assert.Contains(t, got, "] [*] building")
	assert.Contains(t, got, "] [.] details arch=x86")

	var filtered bytes.Buffer
	quiet := New(&filtered, true, nil).Level(zerolog.InfoLevel)
	quiet.Debug().Msg("hidden")
	assert.Empty(t, filtered.String())
}
