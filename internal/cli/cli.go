// Package cli implements the debounce command.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/romdo/go-debounce/v2"
)

// Version is injected at build time via ldflags.
var Version = "dev"

type rootFlags struct {
	configPath string
	verbose    bool
	wait       time.Duration
	maxWait    time.Duration
	leading    bool
	noTrailing bool

	// watch only
	paths           []string
	extensions      []string
	flushOnExit     bool
	shutdownTimeout time.Duration
}

// Execute runs the debounce command, stopping on SIGINT or SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd returns the debounce command with its subcommands.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&rootFlags{})
}

func newRootCmd(flags *rootFlags) *cobra.Command {
	root := &cobra.Command{
		Use:           "debounce",
		Short:         "Collapse bursts of events into single actions",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "config file (.yaml, .yml or .json)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	pf.DurationVarP(&flags.wait, "wait", "w", 0, "quiet period before the trailing edge fires")
	pf.DurationVar(&flags.maxWait, "max-wait", 0, "maximum time an invocation can be delayed")
	pf.BoolVar(&flags.leading, "leading", false, "fire on the leading edge of a burst")
	pf.BoolVar(&flags.noTrailing, "no-trailing", false, "do not fire on the trailing edge of a burst")

	root.AddCommand(newLinesCmd(flags), newWatchCmd(flags))

	return root
}

// load resolves the configuration from defaults, the config file and the
// flags that were set explicitly.
func (f *rootFlags) load(cmd *cobra.Command) (*Config, error) {
	overrides := map[string]any{}
	changed := cmd.Flags().Changed

	if changed("verbose") {
		overrides["verbose"] = f.verbose
	}
	if changed("wait") {
		overrides["debounce.wait"] = f.wait
	}
	if changed("max-wait") {
		overrides["debounce.max_wait"] = f.maxWait
	}
	if changed("leading") {
		overrides["debounce.leading"] = f.leading
	}
	if changed("no-trailing") {
		overrides["debounce.trailing"] = !f.noTrailing
	}
	if changed("path") {
		overrides["watch.paths"] = f.paths
	}
	if changed("ext") {
		overrides["watch.extensions"] = f.extensions
	}
	if changed("flush-on-exit") {
		overrides["watch.flush_on_exit"] = f.flushOnExit
	}
	if changed("shutdown-timeout") {
		overrides["watch.shutdown_timeout"] = f.shutdownTimeout
	}

	return LoadConfig(f.configPath, overrides)
}

func setup(cmd *cobra.Command, flags *rootFlags) (*Config, zerolog.Logger, []debounce.Option, error) {
	cfg, err := flags.load(cmd)
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	opts := append(cfg.Debounce.Options(), debounce.WithLogger(logger))

	return cfg, logger, opts, nil
}

func newLinesCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "lines",
		Short: "Copy stdin to stdout, keeping only the lines that end (or start) a burst",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, opts, err := setup(cmd, flags)
			if err != nil {
				return err
			}

			n, err := Lines(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(),
				cfg.Debounce.Wait, opts...,
			)
			logger.Debug().Int64("lines", n).Msg("Done")

			return err
		},
	}
}

func newWatchCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [flags] -- command [args...]",
		Short: "Run a command once a burst of file changes settles",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, opts, err := setup(cmd, flags)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			run := CommandRunner(ctx, cfg.Watch.ShutdownTimeout, logger,
				cmd.OutOrStdout(), cmd.ErrOrStderr(), args,
			)
			runs, err := Watch(ctx, WatchOptions{
				Paths:       cfg.Watch.Paths,
				Extensions:  cfg.Watch.Extensions,
				FlushOnExit: cfg.Watch.FlushOnExit,
				Wait:        cfg.Debounce.Wait,
				Debounce:    opts,
				Logger:      logger,
			}, run)
			logger.Info().Int64("runs", runs).Msg("Stopped")

			return errors.Wrap(err, "watch")
		},
	}

	f := cmd.Flags()
	f.StringSliceVarP(&flags.paths, "path", "p", nil, "paths to watch (default .)")
	f.StringSliceVar(&flags.extensions, "ext", nil, "only react to files with these extensions")
	f.BoolVar(&flags.flushOnExit, "flush-on-exit", false, "run a pending command before exiting")
	f.DurationVar(&flags.shutdownTimeout, "shutdown-timeout", 0,
		"how long a command may keep running after shutdown starts (default 10s)",
	)

	return cmd
}
