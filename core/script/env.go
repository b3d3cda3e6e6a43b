package script

import (
	"context"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// FatalMode selects what happens when an instruction fails fatally.
type FatalMode string

const (
	// FatalExit logs the message and exits the process.
	FatalExit FatalMode = "exit"
	// FatalRaise aborts the run and returns a *FatalError to the caller.
	FatalRaise FatalMode = "raise"
	// FatalAuto raises in verbose mode and exits otherwise.
	FatalAuto FatalMode = "auto"
)

// ParseFatalMode validates a mode name; "" selects FatalExit.
func ParseFatalMode(s string) (FatalMode, error) {
	switch FatalMode(s) {
	case "":
		return FatalExit, nil
	case FatalExit, FatalRaise, FatalAuto:
		return FatalMode(s), nil
	default:
		return "", eris.Errorf("unknown fatal mode %q, expected exit, raise or auto", s)
	}
}

// Options are the host flags the interpreter and its commands read.
type Options struct {
	Debug   bool
	Verbose bool
	Fatal   FatalMode
}

// ShouldRaise resolves the fatal mode to "raise" or "exit".
func (o *Options) ShouldRaise() bool {
	switch o.Fatal {
	case FatalRaise:
		return true
	case FatalAuto:
		return o.Verbose
	default:
		return false
	}
}

// Level is the minimum log level implied by the flags.
func (o *Options) Level() zerolog.Level {
	switch {
	case o.Debug:
		return zerolog.TraceLevel
	case o.Verbose:
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}

// Executor runs a shell command line on the host.
type Executor interface {
	Exec(ctx context.Context, cmdline string, stdout, stderr io.Writer) (exitCode int, err error)
}

// Env is everything a handler may touch. It is owned by one interpreter.
type Env struct {
	Vars    *Variables
	Options *Options
	Fs      afero.Fs
	Stdout  io.Writer
	Stderr  io.Writer
	Exec    Executor

	base zerolog.Logger
	log  zerolog.Logger
}

// NewEnv creates an environment backed by the host filesystem and standard
// streams. Nil arguments get defaults.
func NewEnv(vars *Variables, opts *Options, logger *zerolog.Logger) *Env {
	if vars == nil {
		vars = NewVariables()
	}
	if opts == nil {
		opts = &Options{Fatal: FatalExit}
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	env := &Env{
		Vars:    vars,
		Options: opts,
		Fs:      afero.NewOsFs(),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		base:    *logger,
	}
	env.log = env.base.Level(opts.Level())
	return env
}

// Log returns the logger filtered by the current flags.
func (e *Env) Log() *zerolog.Logger {
	return &e.log
}

// SetDebug changes the debug flag and the log level with it.
func (e *Env) SetDebug(debug bool) {
	e.Options.Debug = debug
	e.log = e.base.Level(e.Options.Level())
}

// SetVerbose changes the verbose flag and the log level with it.
func (e *Env) SetVerbose(verbose bool) {
	e.Options.Verbose = verbose
	e.log = e.base.Level(e.Options.Level())
}
