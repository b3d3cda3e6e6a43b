package logger

import (
	"io"
	"sync/atomic"

	"github.com/aidarkhanov/nanoid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// logNameAlphabet is the alphabet of generated log names.
const logNameAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// LogName generates a unique run log file name like kbuild-<id>.log.
func LogName() (string, error) {
	id, err := nanoid.Generate(logNameAlphabet, 20)
	if err != nil {
		return "", eris.Wrap(err, "couldn't generate log name")
	}
	return "kbuild-" + id + ".log", nil
}

var errorTraces atomic.Value

// SetErrorTraces controls whether logged errors include stack traces.
func SetErrorTraces(enabled bool) {
	errorTraces.Store(enabled)
}

func init() {
	errorTraces.Store(false)
	zerolog.ErrorMarshalFunc = func(err error) interface{} {
		return eris.ToString(err, errorTraces.Load().(bool))
	}
}

// New creates a logger that prints to console and, when file is non-nil,
// mirrors every line into the run log with the event fields appended.
func New(console io.Writer, noColor bool, file *LogFile) zerolog.Logger {
	writers := []io.Writer{NewConsoleWriter(console, noColor)}
	if file != nil {
		fileWriter := NewConsoleWriter(file, true)
		fileWriter.ShowFields = true
		writers = append(writers, fileWriter)
	}

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
}
