package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/mitchellh/colorstring"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// ContinuationGlyph starts every line after the first of a multi-line message.
const ContinuationGlyph = "[`]"

// Glyph returns the line prefix for a level.
func Glyph(level zerolog.Level) string {
	switch level {
	case zerolog.InfoLevel:
		return "[*]"
	case zerolog.WarnLevel:
		return "[!]"
	case zerolog.ErrorLevel:
		return "[@]"
	case zerolog.TraceLevel:
		return "[~]"
	case zerolog.DebugLevel:
		return "[.]"
	case zerolog.FatalLevel, zerolog.PanicLevel:
		return "[&]"
	default:
		return "[?]"
	}
}

func levelColor(level zerolog.Level) string {
	switch level {
	case zerolog.FatalLevel, zerolog.PanicLevel:
		return "[red][bold]"
	case zerolog.ErrorLevel:
		return "[red]"
	case zerolog.WarnLevel:
		return "[yellow]"
	case zerolog.DebugLevel, zerolog.TraceLevel:
		return "[blue]"
	default:
		return "[green]"
	}
}

// ConsoleWriter renders zerolog JSON events as human readable lines.
type ConsoleWriter struct {
	// Out receives the rendered lines.
	Out io.Writer
	// NoColor disables colour codes.
	NoColor bool
	// ShowFields appends the event's extra fields as key=value pairs.
	ShowFields bool

	buffer strings.Builder
	lock   sync.Mutex
}

// NewConsoleWriter creates a writer printing to out.
func NewConsoleWriter(out io.Writer, noColor bool) *ConsoleWriter {
	return &ConsoleWriter{Out: out, NoColor: noColor}
}

// reserved fields are rendered specially or not at all.
var reserved = map[string]bool{
	zerolog.LevelFieldName:     true,
	zerolog.MessageFieldName:   true,
	zerolog.ErrorFieldName:     true,
	zerolog.TimestampFieldName: true,
}

func (w *ConsoleWriter) Write(p []byte) (n int, err error) {
	w.lock.Lock()
	defer w.lock.Unlock()

	var evt map[string]interface{}
	d := json.NewDecoder(bytes.NewReader(p))
	d.UseNumber()
	if err := d.Decode(&evt); err != nil {
		return 0, eris.Wrapf(err, "cannot decode event: %s", p)
	}

	level, err := zerolog.ParseLevel(fmt.Sprint(evt[zerolog.LevelFieldName]))
	if err != nil {
		level = zerolog.NoLevel
	}

	msg, _ := evt[zerolog.MessageFieldName].(string)

	if details, ok := evt[zerolog.ErrorFieldName]; ok {
		if msg != "" {
			msg += "\n"
		}
		msg += fmt.Sprint(details)
	}

	if w.ShowFields {
		var keys []string
		for k := range evt {
			if !reserved[k] {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg += fmt.Sprintf(" %s=%v", k, evt[k])
		}
	}

	w.buffer.Reset()
	w.buffer.WriteString(levelColor(level))
	w.buffer.WriteString(FormatLine(level, msg))
	w.buffer.WriteString("[reset]\n")

	colorize := colorstring.Colorize{
		Colors:  colorstring.DefaultColors,
		Disable: w.NoColor,
		Reset:   false,
	}
	if _, err := io.WriteString(w.Out, colorize.Color(w.buffer.String())); err != nil {
		return 0, err
	}
	return len(p), nil
}

// FormatLine prefixes msg with the level glyph and marks continuation lines.
func FormatLine(level zerolog.Level, msg string) string {
	msg = strings.TrimRight(msg, "\n")
	return Glyph(level) + " " + strings.ReplaceAll(msg, "\n", "\n"+ContinuationGlyph+" ")
}
