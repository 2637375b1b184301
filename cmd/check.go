package cmd

import (
	"github.com/spf13/cobra"

	"meowcode.dev/pkg/meowcode/internal/domain"
)

const checkLongDescription = `Run the generator without writing anything and print a unified diff for
every file that would change. Exits non-zero when a file is out of date or
could not be processed, which makes it suitable for CI.

` + pathPatternsHelp

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report files whose generated code is out of date",
		Long:  checkLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := newWorkflow(cmd).Run(cmd.Context(), domain.RunArgs{
				SourceArgs: sourceArgs(args),
				Registry:   registryPath(),
				Enabled:    true,
				DryRun:     true,
			})

			return err
		},
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
