package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/josephlewis42/kbuild/core/script"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var (
	positionColor = color.New(color.Faint)
	commandColor  = color.New(color.FgGreen, color.Bold)
	argColor      = color.New(color.FgCyan)
	modifierColor = color.New(color.FgYellow)
	warningColor  = color.New(color.FgYellow)
	errorColor    = color.New(color.FgRed)
)

func wordStrings(words []script.Word) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, w.String())
	}
	return out
}

// printInstructions writes one line per instruction followed by the
// diagnostics.
func printInstructions(w io.Writer, queue []script.Instruction, diags []script.Diagnostic) {
	for _, ins := range queue {
		positionColor.Fprintf(w, "%-6s", ins.Pos)

		words := wordStrings(ins.Command)
		if len(words) > 0 {
			commandColor.Fprint(w, words[0])
		}
		if len(words) > 1 {
			fmt.Fprint(w, " ")
			argColor.Fprint(w, strings.Join(words[1:], " "))
		}
		if len(ins.Modifiers) > 0 {
			fmt.Fprint(w, " ")
			modifierColor.Fprint(w, "-- "+strings.Join(wordStrings(ins.Modifiers), " "))
		}
		fmt.Fprintln(w)
	}

	for _, d := range diags {
		c := warningColor
		if d.Severity == script.SeverityError {
			c = errorColor
		}
		c.Fprintln(w, d.String())
	}
}

// parseCmd shows how a script is split into instructions.
var parseCmd = &cobra.Command{
	Use:   "parse SCRIPT",
	Short: "Print the instructions of a script without running it.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		if noColorFlag {
			color.NoColor = true
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrapf(err, "couldn't read %s", args[0])
		}

		queue, diags := script.ParseString(string(data))
		printInstructions(cmd.OutOrStdout(), queue, diags)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
