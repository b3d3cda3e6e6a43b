package commands

import (
	"context"
	"strings"

	"github.com/josephlewis42/kbuild/core/script"
)

// Export sets a variable. It accepts NAME VALUE... (joined by spaces) or a
// single NAME=VALUE.
func Export(ctx context.Context, env *script.Env, args []string) script.Result {
	var name, value string

	switch {
	case len(args) == 0:
		return script.Errorf("export: missing variable name")
	case len(args) == 1:
		var found bool
		name, value, found = strings.Cut(args[0], "=")
		if !found {
			return script.Errorf("export: missing value for %q", name)
		}
	default:
		name = args[0]
		value = strings.Join(args[1:], " ")
	}

	if name == "" {
		return script.Errorf("export: variable name can't be empty")
	}

	env.Vars.Set(name, value)
	env.Log().Debug().Str("name", name).Str("value", value).Msg("exported")
	return script.Success()
}

func init() {
	mustAddCmd("export", "export NAME VALUE... | export NAME=VALUE", "Set a variable for later instructions.", Export)
}
