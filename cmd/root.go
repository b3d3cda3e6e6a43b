package cmd

import (
	"errors"
	"io"
	"os"

	"github.com/josephlewis42/kbuild/core/config"
	"github.com/josephlewis42/kbuild/core/logger"
	"github.com/josephlewis42/kbuild/core/script"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	cfgPath     string
	debugFlag   bool
	verboseFlag bool
	noColorFlag bool
)

func loadConfig() (*config.Configuration, error) {
	return config.LoadOrDefault(afero.NewOsFs(), cfgPath)
}

// noColor reports whether out should get plain text.
func noColor(out io.Writer) bool {
	if noColorFlag {
		return true
	}
	f, ok := out.(*os.File)
	return !ok || !term.IsTerminal(int(f.Fd()))
}

// consoleLogger creates a logger printing to out, without a run log.
func consoleLogger(out io.Writer) zerolog.Logger {
	return logger.New(out, noColor(out), nil)
}

// applyFlags overrides the configured options with the persistent flags.
func applyFlags(cmd *cobra.Command, opts *script.Options) {
	flags := cmd.Flags()
	if flags.Changed("debug") {
		opts.Debug = debugFlag
	}
	if flags.Changed("verbose") {
		opts.Verbose = verboseFlag
	}
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kbuild",
	Short: "Kernel build orchestrator",
	Long: `Runs the build script for the host architecture, or any script given,
one command at a time.`,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()

	var fatal *script.FatalError
	if errors.As(err, &fatal) {
		os.Exit(script.ExitCode)
	}
	cobra.CheckErr(err)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "print every dispatched command")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "print skipped commands and suppressed failures")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
}
