package commands

import (
	"context"
	"fmt"
	"sort"

	"github.com/josephlewis42/kbuild/core/script"
)

// Env prints the script variables as NAME=VALUE lines and returns their names.
func Env(ctx context.Context, env *script.Env, args []string) script.Result {
	cmd := &SimpleCommand{
		Name:  "env",
		Use:   "env",
		Short: "Print the script variables.",
	}

	return cmd.Run(env, args, func() script.Result {
		keys := env.Vars.Keys()
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(env.Stdout, "%s=%s\n", key, env.Vars.Get(key))
		}

		return script.Ok(script.List(keys))
	})
}

func init() {
	mustAddCmd("env", "env", "Print the script variables.", Env)
}
