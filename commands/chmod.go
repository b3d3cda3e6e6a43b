package commands

import (
	"context"
	"io/fs"

	"github.com/josephlewis42/kbuild/core/script"
	"github.com/rotisserie/eris"
)

// ExecutableMode is applied by chmod_exec.
const ExecutableMode fs.FileMode = 0755

// ChmodExec makes the last argument executable. Earlier arguments are
// ignored.
func ChmodExec(ctx context.Context, env *script.Env, args []string) script.Result {
	path := args[len(args)-1]

	if err := env.Fs.Chmod(path, ExecutableMode); err != nil {
		return script.Err(eris.Wrapf(err, "can't chmod executable %s", path))
	}

	env.Log().Debug().Str("path", path).Stringer("mode", ExecutableMode).Msg("made executable")
	return script.Success()
}

func init() {
	mustAddCmd("chmod_exec", "chmod_exec FILE", "Set mode 0755 on the last argument.", fixedArgs("chmod_exec", 1, ChmodExec))
}
