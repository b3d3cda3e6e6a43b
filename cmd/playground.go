package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/kbuild/commands"
	"github.com/josephlewis42/kbuild/core/script"
	"github.com/spf13/cobra"
)

// playground reads lines from rl and runs each one in the same interpreter.
// A fatal failure ends the line, not the session.
func playground(ctx context.Context, rl *readline.Instance, in *script.Interpreter, out io.Writer) error {
	for {
		line, err := rl.Readline()

		switch {
		case err == io.EOF:
			return nil // Input closed, quit.

		case err == readline.ErrInterrupt:
			if line == "" {
				return nil
			}
			continue

		case err != nil:
			return err

		case strings.TrimSpace(line) == "":
			continue
		}

		in.Load(line)
		result, err := in.Run(ctx)

		var fatal *script.FatalError
		switch {
		case errors.As(err, &fatal):
			// Already logged by the interpreter.
		case err != nil:
			fmt.Fprintf(out, "error: %v\n", err)
		default:
			fmt.Fprintf(out, "=> %s\n", result)
		}
	}
}

// playgroundCmd runs an interactive interpreter for trying out commands
var playgroundCmd = &cobra.Command{
	Use:   "playground",
	Short: "Run commands interactively, one line at a time.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		opts, err := cfg.Options()
		if err != nil {
			return err
		}
		applyFlags(cmd, opts)
		opts.Fatal = script.FatalRaise

		arch, err := cfg.HostArch()
		if err != nil {
			return err
		}
		seed, err := hostSeed("playground", arch)
		if err != nil {
			return err
		}

		log := consoleLogger(cmd.ErrOrStderr())
		env := newEnv(cmd, cfg, opts, &log, seed)
		in := script.New(commands.Registry(), env)

		rl, err := readline.NewEx(&readline.Config{
			Prompt: "kbuild> ",
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}
		defer rl.Close()

		log.Info().Msg("Type commands to run them, Ctrl-D to quit.")
		return playground(context.Background(), rl, in, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(playgroundCmd)
}
