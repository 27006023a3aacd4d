package cli

import "github.com/spf13/cobra"

func newFormatCommand(globals *globalFlags) *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "format [paths...]",
		Short: "Insert the missing empty lines",
		Long:  formatLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, globals, flags, true)
		},
	}

	addCheckFlags(cmd, flags)
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print a unified diff instead of writing files")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "keep a .pytidy.bak copy of each rewritten file")

	return cmd
}

const formatLongDescription = `Rewrite files so that every block statement is followed by an empty line.
For each rewritten file "<path>: <n> auto fixes applied." is printed.

Files are only replaced if they did not change while being processed. Line
endings and the presence of a final newline are preserved.

Examples:
  pytidy format                    # Fix the current directory
  pytidy format --diff src/        # Preview the changes
  pytidy format --backup app.py    # Keep app.py.pytidy.bak`
