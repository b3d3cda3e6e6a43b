package commands

import (
	"context"

	"github.com/josephlewis42/kbuild/core/script"
)

// No-op commands.
//
// These names appear in arch scripts but have never done anything. They
// accept any arguments and succeed without side effects.
type NoOpCommand struct {
	Name  string
	Use   string
	Short string
	// Payload is returned on success; nil means Flag(true).
	Payload script.Payload
}

// Convert the no-op command description to a functioning command.
func (c *NoOpCommand) ToCommand() script.HandlerFunc {
	return func(ctx context.Context, env *script.Env, args []string) script.Result {
		env.Log().Debug().Str("command", c.Name).Strs("args", args).Msg("stub command, nothing done")

		if c.Payload == nil {
			return script.Success()
		}
		return script.Ok(c.Payload)
	}
}

var noOpCommands = []NoOpCommand{
	{
		Name:  "touch",
		Use:   "touch FILE...",
		Short: "Stub, files are not created.",
	},
	{
		Name:    "ls",
		Use:     "ls [DIR]",
		Short:   "Stub, always lists nothing.",
		Payload: script.List{},
	},
	{
		Name:  "rm",
		Use:   "rm FILE...",
		Short: "Stub, nothing is removed.",
	},
	{
		Name:  "rmdir",
		Use:   "rmdir DIR...",
		Short: "Stub, nothing is removed.",
	},
	{
		Name:  "build",
		Use:   "build [TARGET]",
		Short: "Stub, reserved for a future build step.",
	},
}

func init() {
	for i := range noOpCommands {
		cmd := noOpCommands[i]
		mustAddCmd(cmd.Name, cmd.Use, cmd.Short, cmd.ToCommand())
	}
}
