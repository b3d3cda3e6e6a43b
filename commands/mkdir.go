package commands

import (
	"context"
	"fmt"

	"github.com/josephlewis42/kbuild/core/script"
	"github.com/rotisserie/eris"
)

// Mkdir creates directories and their parents. Existing directories are not
// an error.
func Mkdir(ctx context.Context, env *script.Env, args []string) script.Result {
	cmd := &SimpleCommand{
		Name:  "mkdir",
		Use:   "mkdir [-v] DIRECTORY...",
		Short: "Create directories if they don't exist.",
	}

	// Accepted for familiarity, parents are always created.
	cmd.Flags().BoolLong("parents", 'p', "make parents if needed")
	verbose := cmd.Flags().BoolLong("verbose", 'v', "print line for every created directory")

	return cmd.Run(env, args, func() script.Result {
		directories := cmd.Flags().Args()
		if len(directories) == 0 {
			return script.Errorf("mkdir: missing operand")
		}

		for _, dir := range directories {
			if err := env.Fs.MkdirAll(dir, 0777); err != nil {
				return script.Err(eris.Wrapf(err, "mkdir: cannot create directory %q", dir))
			}

			if *verbose {
				fmt.Fprintf(env.Stdout, "mkdir: created directory: %s\n", dir)
			}
		}

		return script.Success()
	})
}

func init() {
	mustAddCmd("mkdir", "mkdir [-v] DIRECTORY...", "Create directories and their parents.", Mkdir)
}
