package script

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Severity of a recoverable lexing or parsing problem.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// DiagKind identifies the recoverable condition that produced a Diagnostic.
type DiagKind int

const (
	DiagUnknownCharacter DiagKind = iota
	DiagUnmatchedGroupClose
	DiagUnterminatedGroup
	DiagIgnoredVariable
	DiagUnterminatedQuote
	DiagDanglingEscape
)

// Diagnostic is a recoverable problem found while lexing or parsing. None of
// them stop the scan.
type Diagnostic struct {
	Pos      Position
	Severity Severity
	Kind     DiagKind
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Pos, d.Message)
}

// logDiagnostics writes one log line per diagnostic.
func logDiagnostics(log *zerolog.Logger, diags []Diagnostic) {
	for _, d := range diags {
		evt := log.Warn()
		if d.Severity == SeverityError {
			evt = log.Error()
		}
		evt.Int("line", d.Pos.Line).Int("col", d.Pos.Col).Msg(d.Message)
	}
}
