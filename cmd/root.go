// Package cmd holds the root command wiring shared by the excel-skill and
// word-skill binaries.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/klytics/officeskills/internal/config"
	"github.com/klytics/officeskills/internal/logger"
	"github.com/klytics/officeskills/internal/output"
	"github.com/klytics/officeskills/internal/pathutil"
	"github.com/klytics/officeskills/internal/skillerr"
)

// Settings is the per-invocation state resolved from global flags and the
// config file.
type Settings struct {
	Config *config.Config
	Pretty bool
}

type settingsKey struct{}

// errUsage marks a run that printed usage text instead of a result.
var errUsage = errors.New("usage")

// NewRootCommand creates a tool root with the global flags installed. The
// caller registers the tool's subcommands.
func NewRootCommand(use, short, long string) *cobra.Command {
	var (
		verbose    bool
		noColor    bool
		pretty     bool
		configPath string
	)

	root := &cobra.Command{
		Use:           use,
		Short:         short,
		Long:          long,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			if noColor {
				color.NoColor = true
			}

			path := ""
			if configPath != "" {
				path = pathutil.Expand(configPath)
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}

			logger.Init(logger.Options{Level: cfg.Log.Level, Verbose: verbose, NoColor: noColor})

			settings := &Settings{Config: cfg, Pretty: pretty || cfg.Output.Pretty}
			c.SetContext(context.WithValue(c.Context(), settingsKey{}, settings))
			log.Debug().Str("command", c.CommandPath()).Strs("args", args).Msg("starting")
			return nil
		},
		// Reached with no command or an unknown one.
		RunE: func(c *cobra.Command, args []string) error {
			_ = c.Help()
			return errUsage
		},
	}

	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging on stderr")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable ANSI color in log output")
	root.PersistentFlags().BoolVar(&pretty, "pretty", false, "Indent JSON output")
	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.officeskills/config.yaml)")

	// Replaced in the pre-run hook once the config is known.
	logger.Init(logger.Options{})

	root.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return skillerr.MalformedInput("%s", err.Error())
	})

	return root
}

// Execute runs root against os.Args and exits with the resulting code.
func Execute(root *cobra.Command) {
	os.Exit(Run(root))
}

// Run executes root and renders a failure as {"error": ...} on the root's
// output. It returns the process exit code.
func Run(root *cobra.Command) int {
	c, err := root.ExecuteC()
	if err == nil {
		return output.ExitOK
	}
	if errors.Is(err, errUsage) {
		return output.ExitError
	}

	if c == nil {
		c = root
	}
	log.Debug().Str("kind", skillerr.KindOf(err).String()).Err(err).Msg("command failed")

	w := output.NewWriter(root.OutOrStdout(), SettingsFrom(c).Pretty)
	if werr := w.WriteError(err); werr != nil {
		fmt.Fprintln(root.ErrOrStderr(), werr)
	}
	return output.ExitError
}

// SettingsFrom returns the settings resolved for c, or defaults when the
// pre-run hook has not executed (argument validation failures).
func SettingsFrom(c *cobra.Command) *Settings {
	if ctx := c.Context(); ctx != nil {
		if s, ok := ctx.Value(settingsKey{}).(*Settings); ok {
			return s
		}
	}
	return &Settings{Config: config.Default()}
}

// Print writes v as the command's single JSON result.
func Print(c *cobra.Command, v any) error {
	w := output.NewWriter(c.OutOrStdout(), SettingsFrom(c).Pretty)
	if err := w.WriteJSON(v); err != nil {
		return skillerr.IOFailure(fmt.Errorf("could not encode result: %w", err))
	}
	return nil
}

// ExactArgs requires exactly n positional arguments, reporting a mismatch as
// malformed input together with the command's usage line.
func ExactArgs(n int) cobra.PositionalArgs {
	return func(c *cobra.Command, args []string) error {
		if len(args) != n {
			return skillerr.MalformedInput("%s: expected %d argument(s), got %d (usage: %s)",
				c.CommandPath(), n, len(args), c.UseLine())
		}
		return nil
	}
}
