package cmd

import (
	"fmt"
	"strings"

	"github.com/josephlewis42/kbuild/core/config"
	"github.com/spf13/cobra"
)

// archCmd shows how the host architecture was detected.
var archCmd = &cobra.Command{
	Use:   "arch",
	Short: "Print the detected and the supported architectures.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		paths, err := cfg.ResolvePaths("")
		if err != nil {
			return err
		}

		arch, err := cfg.HostArch()
		if err != nil {
			return err
		}
		supported, err := cfg.SupportedArches(paths)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "machine:   %s\n", config.Machine())
		fmt.Fprintf(out, "arch:      %s\n", arch)
		fmt.Fprintf(out, "supported: %s\n", strings.Join(supported, " "))
		if err := config.CheckSystem(); err != nil {
			fmt.Fprintf(out, "warning:   %v\n", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(archCmd)
}
