// Package cli provides the Cobra command structure for pytidy.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pytidy/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
	noConfig   bool
}

// NewRootCommand creates the root pytidy command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	globals := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "pytidy",
		Short: "Require an empty line after Python block statements",
		Long: `pytidy checks that every if, for, while, try, with and match block in a
Python file is followed by an empty line, and can insert the missing lines.

The lint command reports offending lines; the format command rewrites files
in place. A block that ends a file, or that is directly followed by a
dedent to an enclosing block, needs no empty line.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "info"
			if globals.debug {
				level = "debug"
			}
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)
			logging.SetDefault(logger)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logging.WithLogger(ctx, logger))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&globals.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&globals.configPath, "config", "", "path to config file (.yml or pyproject-style .toml)")
	rootCmd.PersistentFlags().StringVar(&globals.color, "color", "auto", "colorize output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&globals.noConfig, "no-config", false,
		"ignore system, user and project config files (--config is still read)")

	rootCmd.AddCommand(newLintCommand(globals))
	rootCmd.AddCommand(newFormatCommand(globals))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
