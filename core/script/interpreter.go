package script

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// ExitCode is the process status used by FatalExit.
const ExitCode = 2

// FatalError aborts a run in FatalRaise mode. In FatalExit mode it is only
// seen when the exit function returns, which happens in tests.
type FatalError struct {
	// Index of the failing instruction in its queue.
	Index int
	// Command is the failing command name.
	Command string
	// Message is the reported text; empty when suppressed.
	Message string
}

func (e *FatalError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s failed", e.Command)
	}
	return e.Message
}

// StepStatus says what the run loop did with one instruction.
type StepStatus int

const (
	StepDispatched StepStatus = iota
	StepSkipped
	StepUnresolved
)

// StepEvent describes one iteration of the run loop.
type StepEvent struct {
	// Depth is 0 for the primary queue and grows with each nested group.
	Depth       int
	Index       int
	Total       int
	Instruction Instruction
	Status      StepStatus
	// Result is only meaningful for StepDispatched.
	Result Result
}

// Interpreter owns a registry, an environment and the primary queue.
type Interpreter struct {
	registry *Registry
	env      *Env
	queue    []Instruction

	exit   func(code int)
	onStep func(StepEvent)
	depth  int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithExitFunc replaces os.Exit for FatalExit mode.
func WithExitFunc(exit func(code int)) Option {
	return func(in *Interpreter) {
		in.exit = exit
	}
}

// WithStepHook registers a callback for every instruction.
func WithStepHook(hook func(StepEvent)) Option {
	return func(in *Interpreter) {
		in.onStep = hook
	}
}

// New creates an interpreter.
func New(registry *Registry, env *Env, opts ...Option) *Interpreter {
	in := &Interpreter{
		registry: registry,
		env:      env,
		exit:     os.Exit,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Env returns the environment the interpreter owns.
func (in *Interpreter) Env() *Env {
	return in.env
}

// Queue returns the primary queue.
func (in *Interpreter) Queue() []Instruction {
	return in.queue
}

// Load parses source into the primary queue, replacing any previous one.
func (in *Interpreter) Load(source string) []Diagnostic {
	queue, diags := ParseString(source)
	logDiagnostics(in.env.Log(), diags)
	in.queue = queue
	return diags
}

// Run executes the primary queue.
func (in *Interpreter) Run(ctx context.Context) (Result, error) {
	return in.RunQueue(ctx, in.queue)
}

// RunQueue executes queue in order. It is re-entrant: grouped variables call
// it again with their own queue. The Result is that of the last dispatched
// handler; the error is a *FatalError when a failure was fatal.
func (in *Interpreter) RunQueue(ctx context.Context, queue []Instruction) (Result, error) {
	depth := in.depth
	in.depth++
	defer func() { in.depth-- }()

	resolver := &Resolver{
		Vars: in.env.Vars,
		Env:  in.env,
		Dispatch: func(sub []Instruction) (Result, error) {
			return in.RunQueue(ctx, sub)
		},
	}

	last := Ok(List{})
	skip := 0

	for i, ins := range queue {
		event := StepEvent{Depth: depth, Index: i, Total: len(queue), Instruction: ins}
		log := in.env.Log()

		if skip > 0 {
			skip--
			log.Debug().Int("index", i).Str("instruction", ins.String()).Msg("skipped")
			in.step(event, StepSkipped)
			continue
		}

		if len(ins.Command) == 0 {
			log.Error().Int("line", ins.Pos.Line).Msg("Unresolved command: instruction has no command")
			in.step(event, StepUnresolved)
			continue
		}

		name, err := resolver.Expand(ins.Command[0])
		if err != nil {
			return Err(err), err
		}

		handler, ok := in.registry.Lookup(name)
		if !ok {
			log.Error().Int("line", ins.Pos.Line).Str("command", name).Msgf("Unresolved command: %s", name)
			in.step(event, StepUnresolved)
			continue
		}

		args, err := resolver.ExpandAll(ins.Command[1:])
		if err != nil {
			return Err(err), err
		}

		log.Trace().Str("command", name).Strs("args", args).Msg("dispatch")
		result := handler.Call(ctx, in.env, args)
		last = result
		event.Result = result

		modWords, err := resolver.ExpandAll(ins.Modifiers)
		if err != nil {
			return Err(err), err
		}
		mods := ParseModifiers(in.env.Log(), modWords)

		if result.IsOk() {
			skip = mods.IgnoreCount
			in.step(event, StepDispatched)
			continue
		}

		skip = 0
		in.step(event, StepDispatched)
		message := mods.ReportedMessage(result.Message())

		if mods.NotFatal {
			evt := in.env.Log().Debug()
			if message != "" {
				evt = in.env.Log().Warn()
			}
			evt.Str("command", name).Msg(message)
			continue
		}

		fatal := &FatalError{Index: i, Command: name, Message: message}
		in.reportFatal(fatal)
		return result, fatal
	}

	return last, nil
}

func (in *Interpreter) step(event StepEvent, status StepStatus) {
	if in.onStep == nil {
		return
	}
	event.Status = status
	in.onStep(event)
}

// reportFatal is the fatal sink: the message is logged, then the process
// exits unless the options ask to raise.
func (in *Interpreter) reportFatal(fatal *FatalError) {
	if fatal.Message != "" {
		in.env.Log().WithLevel(zerolog.FatalLevel).Str("command", fatal.Command).Msg(fatal.Message)
	}
	if !in.env.Options.ShouldRaise() {
		in.exit(ExitCode)
	}
}
