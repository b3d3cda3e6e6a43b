package cmd

import (
	"github.com/josephlewis42/kbuild/core/config"
	"github.com/spf13/cobra"
)

// initCmd writes a default configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the build configuration in the config directory.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		logger := consoleLogger(cmd.ErrOrStderr())

		_, err := config.Initialize(cfgPath, &logger)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
