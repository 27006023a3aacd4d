package cli

import "github.com/spf13/cobra"

func newLintCommand(globals *globalFlags) *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Report lines that need an empty line after them",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, globals, flags, false)
		},
	}

	addCheckFlags(cmd, flags)

	return cmd
}

const lintLongDescription = `Report every line that ends a block statement and is not followed by an
empty line. Each finding is printed as "<path>:<line>: empty line required".

Without paths, all .py files below the current directory are checked,
skipping anything matched by ./.gitignore. Files given explicitly are always
checked. The command exits with status 1 when any line is reported.

Examples:
  pytidy lint                          # Check the current directory
  pytidy lint src/ tests/test_api.py   # Check a directory and a file
  pytidy lint --output json            # Machine-readable output for CI
  pytidy lint --python-version 3.9     # Parse with the 3.9 grammar`
