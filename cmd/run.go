package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/josephlewis42/kbuild/commands"
	"github.com/josephlewis42/kbuild/core/config"
	"github.com/josephlewis42/kbuild/core/logger"
	"github.com/josephlewis42/kbuild/core/script"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	runVars     []string
	runFatal    string
	runProgress bool
)

// parseVars splits NAME=VALUE flags into a flat key/value list.
func parseVars(pairs []string) ([]string, error) {
	var out []string
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, eris.Errorf("bad variable %q, expected NAME=VALUE", pair)
		}
		out = append(out, name, value)
	}
	return out, nil
}

// newEnv builds the interpreter environment from the configuration.
func newEnv(cmd *cobra.Command, cfg *config.Configuration, opts *script.Options, log *zerolog.Logger, seed []string) *script.Env {
	env := script.NewEnv(cfg.NewVariables(seed...), opts, log)
	env.Stdout = cmd.OutOrStdout()
	env.Stderr = cmd.ErrOrStderr()
	env.Exec = &commands.ShellExecutor{Params: cfg.ShellParams, Log: env.Log()}
	return env
}

// hostSeed is the variables every script starts with.
func hostSeed(filename, arch string) ([]string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, eris.Wrap(err, "couldn't get the working directory")
	}
	return []string{script.VarWorkdir, wd, script.VarFilename, filename, script.VarArch, arch}, nil
}

// openRunLog opens the shared parent log and this run's log under it.
func openRunLog(paths *config.Paths) (*logger.LogFile, error) {
	fsys := afero.NewOsFs()
	parent, err := logger.OpenLogFile(fsys, paths.ParentLog, nil)
	if err != nil {
		return nil, err
	}
	return logger.OpenLogFile(fsys, paths.LogFile, parent)
}

func newProgressBar(cmd *cobra.Command, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("building"),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

// runCmd runs a build script.
var runCmd = &cobra.Command{
	Use:   "run [SCRIPT]",
	Short: "Run a build script, by default the one for the host architecture.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("fatal") {
			cfg.Fatal = runFatal
		}
		opts, err := cfg.Options()
		if err != nil {
			return err
		}
		applyFlags(cmd, opts)
		logger.SetErrorTraces(opts.Debug)

		extra, err := parseVars(runVars)
		if err != nil {
			return err
		}

		paths, err := cfg.ResolvePaths("")
		if err != nil {
			return err
		}
		logFile, err := openRunLog(paths)
		if err != nil {
			return err
		}
		log := logger.New(cmd.ErrOrStderr(), noColor(cmd.ErrOrStderr()), logFile)

		if err := config.CheckSystem(); err != nil {
			log.Warn().Err(err).Msg("builds may not work on this system")
		}

		arch, err := cfg.HostArch()
		if err != nil {
			return err
		}

		var filename, source string
		if len(args) == 1 {
			filename = args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return eris.Wrapf(err, "couldn't read %s", filename)
			}
			source = string(data)
		} else {
			filename = paths.ArchScript(arch)
			if source, err = cfg.ReadArchScript(paths, arch); err != nil {
				log.WithLevel(zerolog.FatalLevel).Err(err).Msgf("Arch %s not supported yet!", arch)
				return &script.FatalError{Command: "run", Message: err.Error()}
			}
		}

		seed, err := hostSeed(filename, arch)
		if err != nil {
			return err
		}
		env := newEnv(cmd, cfg, opts, &log, append(seed, extra...))

		// The run log is copied to the parent log however the run ends.
		saveLog := func() {
			if err := logFile.SaveToParent(filename); err != nil {
				log.Warn().Err(err).Msg("couldn't save the run log")
			}
		}

		var bar *progressbar.ProgressBar
		in := script.New(commands.Registry(), env,
			script.WithStepHook(func(evt script.StepEvent) {
				if bar != nil && evt.Depth == 0 {
					_ = bar.Add(1)
				}
			}),
			script.WithExitFunc(func(code int) {
				saveLog()
				os.Exit(code)
			}),
		)

		in.Load(source)
		if runProgress {
			bar = newProgressBar(cmd, len(in.Queue()))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		log.Debug().Str("script", filename).Str("arch", arch).Int("instructions", len(in.Queue())).Msg("running")
		_, runErr := in.Run(ctx)
		if bar != nil {
			_ = bar.Finish()
		}

		log.Info().Msgf("Log saved to %s", logFile.Path())
		saveLog()
		if runErr != nil {
			return runErr
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Build finished")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringArrayVar(&runVars, "var", nil, "set a script variable, NAME=VALUE")
	runCmd.Flags().StringVar(&runFatal, "fatal", "", "fatal mode: exit, raise or auto")
	runCmd.Flags().BoolVar(&runProgress, "progress", false, "show a progress bar")
}
