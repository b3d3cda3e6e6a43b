package commands

import (
	"context"
	"strings"

	"github.com/josephlewis42/kbuild/core/script"
)

// Debug toggles the debug flag of the running interpreter, or sets it when
// given on/off.
func Debug(ctx context.Context, env *script.Env, args []string) script.Result {
	enabled := !env.Options.Debug

	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "on", "true", "1", "yes":
			enabled = true
		case "off", "false", "0", "no":
			enabled = false
		default:
			return script.Errorf("debug: expected on or off, got %q", args[0])
		}
	}

	env.SetDebug(enabled)
	env.Log().Trace().Bool("debug", enabled).Msg("debug flag changed")
	return script.Ok(script.Flag(enabled))
}

func init() {
	mustAddCmd("debug", "debug [on|off]", "Toggle or set debug logging.", Debug)
}
