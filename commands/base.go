package commands

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/josephlewis42/kbuild/core/script"
	getopt "github.com/pborman/getopt/v2"
	"github.com/rotisserie/eris"
)

// BuiltinCommand describes a registered command.
type BuiltinCommand struct {
	Name string
	// Use holds a one line usage string.
	Use string
	// Short holds a one line description of the command.
	Short   string
	Handler script.Handler
}

// allCommands holds every registered builtin by name.
var allCommands = make(map[string]BuiltinCommand)

// mustAddCmd registers a builtin, panicking on duplicates.
func mustAddCmd(name, use, short string, handler script.HandlerFunc) {
	if _, ok := allCommands[name]; ok {
		panic(fmt.Sprintf("command %q registered twice", name))
	}

	allCommands[name] = BuiltinCommand{
		Name:    name,
		Use:     use,
		Short:   short,
		Handler: handler,
	}
}

// ListBuiltinCommands returns the builtins sorted by name.
func ListBuiltinCommands() []BuiltinCommand {
	var out []BuiltinCommand
	for _, cmd := range allCommands {
		out = append(out, cmd)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	return out
}

// Registry builds a fresh registry holding every builtin.
func Registry() *script.Registry {
	reg := script.NewRegistry()
	for _, cmd := range ListBuiltinCommands() {
		reg.MustRegister(cmd.Name, cmd.Handler)
	}
	return reg
}

// BytesToHuman formats a byte count with a decimal unit suffix.
func BytesToHuman(bytes int64) string {
	for _, e := range []struct {
		unit  string
		power int64
	}{
		{"P", 1e15},
		{"T", 1e12},
		{"G", 1e9},
		{"M", 1e6},
		{"K", 1e3},
	} {
		quotient := bytes / e.power
		switch {
		case quotient == 0:
			continue
		case quotient > 10:
			return fmt.Sprintf("%d%s", quotient, e.unit)
		default:
			return fmt.Sprintf("%0.1f%s", float64(bytes)/float64(e.power), e.unit)
		}
	}

	return fmt.Sprintf("%d", bytes)
}

type SimpleCommand struct {
	// Name is the command name used in messages.
	Name string
	// Use holds a one line usage string
	Use string
	// Short holds a one line description of the command.
	Short string
	// ShowHelp sets whether help is displayed or not.
	// If this is non-nil when Run() is called, then the default help flag isn't
	// added.
	ShowHelp *bool

	flags *getopt.Set
}

// Flags gets the command's flag set.
func (s *SimpleCommand) Flags() *getopt.Set {
	if s.flags == nil {
		s.flags = getopt.New()
	}

	return s.flags
}

// PrintHelp writes help for the command to the given writer.
func (s *SimpleCommand) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, s.Use)
	fmt.Fprintln(w, s.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	s.Flags().PrintOptions(w)
}

// Run parses args, if flag parsing was successful call the callback.
func (s *SimpleCommand) Run(env *script.Env, args []string, callback func() script.Result) script.Result {
	opts := s.Flags()

	// Add help flag if not overridden.
	if s.ShowHelp == nil {
		s.ShowHelp = opts.BoolLong("help", 'h', "show this help and exit")
	}

	// getopt expects the program name in the first slot.
	if err := opts.Getopt(append([]string{s.Name}, args...), nil); err != nil {
		fmt.Fprintf(env.Stderr, "error: %s\n\n", err)
		s.PrintHelp(env.Stderr)
		return script.Err(eris.Wrapf(err, "%s: bad arguments", s.Name))
	}

	if *s.ShowHelp {
		s.PrintHelp(env.Stdout)
		return script.Success()
	}

	return callback()
}

// fixedArgs wraps a handler with an argument count check.
func fixedArgs(name string, min int, handler script.HandlerFunc) script.HandlerFunc {
	return func(ctx context.Context, env *script.Env, args []string) script.Result {
		if len(args) < min {
			return script.Errorf("%s: expected at least %d argument(s), got %d", name, min, len(args))
		}
		return handler(ctx, env, args)
	}
}
