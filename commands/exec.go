package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/josephlewis42/kbuild/core/script"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// killTimeout is how long a cancelled child gets between SIGINT and SIGKILL.
const killTimeout = 2 * time.Second

// ShellExecutor runs command lines with an embedded POSIX shell.
type ShellExecutor struct {
	// Dir is the working directory, empty for the current one.
	Dir string
	// Params are the shell options, e.g. "-e".
	Params []string
	// Log receives one trace line per spawned program.
	Log *zerolog.Logger
}

var _ script.Executor = (*ShellExecutor)(nil)

// Exec parses and runs cmdline. A non-zero exit status is returned as the
// exit code, not as an error.
func (s *ShellExecutor) Exec(ctx context.Context, cmdline string, stdout, stderr io.Writer) (int, error) {
	file, err := syntax.NewParser().Parse(strings.NewReader(cmdline), "")
	if err != nil {
		return -1, eris.Wrapf(err, "failed to parse command %s", cmdline)
	}

	defaultExec := interp.DefaultExecHandler(killTimeout)
	execHandler := func(ctx context.Context, args []string) error {
		if s.Log != nil {
			s.Log.Trace().Strs("args", args).Msg("spawn")
		}
		return defaultExec(ctx, args)
	}

	opts := []interp.RunnerOption{
		interp.StdIO(nil, stdout, stderr),
		interp.ExecHandler(execHandler),
		interp.Params(s.Params...),
	}
	if s.Dir != "" {
		opts = append(opts, interp.Dir(s.Dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return -1, eris.Wrap(err, "failed to initialize runner")
	}

	err = runner.Run(ctx, file)
	if status, ok := interp.IsExitStatus(err); ok {
		return int(status), nil
	}
	if err != nil {
		return -1, eris.Wrapf(err, "failed to run %s", cmdline)
	}
	return 0, nil
}

// executor returns the environment's executor, or a shell in the current
// directory.
func executor(env *script.Env) script.Executor {
	if env.Exec != nil {
		return env.Exec
	}
	return &ShellExecutor{Params: []string{"-e"}, Log: env.Log()}
}

// runLine runs cmdline and maps a non-zero exit to a failure.
func runLine(ctx context.Context, env *script.Env, cmdline string) script.Result {
	env.Log().Debug().Str("cmdline", cmdline).Msg("exec")

	code, err := executor(env).Exec(ctx, cmdline, env.Stdout, env.Stderr)
	switch {
	case err != nil:
		return script.Err(err)
	case code != 0:
		return script.Errorf("command ended with code %d", code)
	default:
		return script.Success()
	}
}

// Exec joins its arguments with spaces and runs them as a shell command line.
func Exec(ctx context.Context, env *script.Env, args []string) script.Result {
	return runLine(ctx, env, strings.Join(args, " "))
}

// Run quotes each argument and runs the resulting command.
func Run(ctx context.Context, env *script.Env, args []string) script.Result {
	quoted := make([]string, 0, len(args))
	for _, arg := range args {
		q, err := syntax.Quote(arg, syntax.LangPOSIX)
		if err != nil {
			return script.Err(eris.Wrapf(err, "run: can't quote %q", arg))
		}
		quoted = append(quoted, q)
	}
	return runLine(ctx, env, strings.Join(quoted, " "))
}

// CheckCmd fails on the first name that isn't an available command.
func CheckCmd(ctx context.Context, env *script.Env, args []string) script.Result {
	for _, name := range args {
		q, err := syntax.Quote(name, syntax.LangPOSIX)
		if err != nil {
			return script.Err(eris.Wrapf(err, "check_cmd: can't quote %q", name))
		}

		code, err := executor(env).Exec(ctx, fmt.Sprintf("command -v %s >/dev/null", q), env.Stdout, env.Stderr)
		if err != nil {
			return script.Err(err)
		}
		if code != 0 {
			return script.Errorf("no command %s found", name)
		}
	}
	return script.Success()
}

func init() {
	mustAddCmd("exec", "exec COMMAND LINE...", "Run the arguments as one shell command line.", fixedArgs("exec", 1, Exec))
	mustAddCmd("run", "run PROGRAM [ARG]...", "Run a program with each argument quoted.", fixedArgs("run", 1, Run))
	mustAddCmd("check_cmd", "check_cmd NAME...", "Fail if any NAME is not an available command.", CheckCmd)
}
