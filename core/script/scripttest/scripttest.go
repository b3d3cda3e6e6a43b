// Package scripttest builds deterministic interpreters for tests.
package scripttest

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/josephlewis42/kbuild/core/script"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// RecordingExecutor records command lines instead of running them.
type RecordingExecutor struct {
	// Calls holds every command line in order.
	Calls []string
	// ExitCodes maps a command line to its exit code; missing lines exit 0.
	ExitCodes map[string]int
	// Output is written to stdout for every call.
	Output string
}

// Exec implements script.Executor.
func (r *RecordingExecutor) Exec(ctx context.Context, cmdline string, stdout, stderr io.Writer) (int, error) {
	r.Calls = append(r.Calls, cmdline)
	if r.Output != "" {
		io.WriteString(stdout, r.Output)
	}
	return r.ExitCodes[cmdline], nil
}

var _ script.Executor = (*RecordingExecutor)(nil)

// Harness is an interpreter wired to in-memory resources.
type Harness struct {
	Interp   *script.Interpreter
	Env      *script.Env
	Fs       afero.Fs
	Stdout   *bytes.Buffer
	Logs     *bytes.Buffer
	Executor *RecordingExecutor

	// ExitCodes records every call to the exit function.
	ExitCodes []int
	// Steps records every step event.
	Steps []script.StepEvent
}

// New creates a harness around registry with FatalExit mode, a MemMapFs
// and a JSON logger writing into Logs.
func New(registry *script.Registry, vars *script.Variables) *Harness {
	h := &Harness{
		Fs:       afero.NewMemMapFs(),
		Stdout:   &bytes.Buffer{},
		Logs:     &bytes.Buffer{},
		Executor: &RecordingExecutor{ExitCodes: map[string]int{}},
	}

	logger := zerolog.New(h.Logs)
	h.Env = script.NewEnv(vars, &script.Options{Fatal: script.FatalExit}, &logger)
	h.Env.Fs = h.Fs
	h.Env.Stdout = h.Stdout
	h.Env.Stderr = h.Stdout
	h.Env.Exec = h.Executor

	h.Interp = script.New(registry, h.Env,
		script.WithExitFunc(func(code int) {
			h.ExitCodes = append(h.ExitCodes, code)
		}),
		script.WithStepHook(func(evt script.StepEvent) {
			h.Steps = append(h.Steps, evt)
		}),
	)
	return h
}

// Run loads and runs source.
func (h *Harness) Run(source string) (script.Result, error) {
	h.Interp.Load(source)
	return h.Interp.RunQueue(context.Background(), h.Interp.Queue())
}

// LogLines returns the non-empty log lines.
func (h *Harness) LogLines() []string {
	var out []string
	for _, line := range strings.Split(h.Logs.String(), "\n") {
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// LogLinesAt returns the log lines whose level field equals level.
func (h *Harness) LogLinesAt(level zerolog.Level) []string {
	var out []string
	needle := `"level":"` + level.String() + `"`
	for _, line := range h.LogLines() {
		if strings.Contains(line, needle) {
			out = append(out, line)
		}
	}
	return out
}

// Dispatched returns the names of the instructions that reached a handler at
// the given depth, in order.
func (h *Harness) Dispatched(depth int) []string {
	var out []string
	for _, evt := range h.Steps {
		if evt.Depth == depth && evt.Status == script.StepDispatched {
			out = append(out, evt.Instruction.Name())
		}
	}
	return out
}

// Recorder returns a handler that appends its name and arguments to calls and
// returns result.
func Recorder(calls *[]string, name string, result script.Result) script.Handler {
	return script.HandlerFunc(func(ctx context.Context, env *script.Env, args []string) script.Result {
		*calls = append(*calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
		return result
	})
}
