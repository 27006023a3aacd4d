package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pytidy/internal/configloader"
	"github.com/yaklabco/pytidy/internal/logging"
	"github.com/yaklabco/pytidy/pkg/config"
)

// defaultConfigFile is written by init when --output is not given.
const defaultConfigFile = ".pytidy.yml"

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .pytidy.yml configuration file",
		Long: `Create a .pytidy.yml configuration file in the current directory.

The default template lists every setting commented out. With --full every
setting is written with its default value.

Examples:
  pytidy init                       Create a commented .pytidy.yml
  pytidy init --full                Write every setting with its default
  pytidy init --output ci/tidy.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "write every setting with its default value")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigFile, "output file path")

	return cmd
}

func runInit(flags *initFlags) error {
	logger := logging.NewInteractive()

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{Full: flags.full})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := configloader.WriteConfig(absPath, content, flags.force); err != nil {
		if errors.Is(err, configloader.ErrConfigExists) {
			return fmt.Errorf("file %q already exists; use --force to overwrite", flags.output)
		}
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("settings can also live in pyproject.toml under [tool.pytidy]")

	return nil
}
