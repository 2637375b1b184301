package cmd

import (
	"github.com/spf13/cobra"

	"meowcode.dev/pkg/meowcode/internal/domain"
)

var stripDryRunFlag bool

const stripLongDescription = `Remove every generated block from the given paths, leaving only
hand-written code. The registry is not consulted.

` + pathPatternsHelp

// stripCmd represents the strip command.
var stripCmd = newStripCmd()

func newStripCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strip [paths...]",
		Short: "Remove generated code",
		Long:  stripLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := newWorkflow(cmd).Strip(cmd.Context(), domain.StripArgs{
				SourceArgs: sourceArgs(args),
				DryRun:     stripDryRunFlag,
			})

			return err
		},
	}

	cmd.Flags().BoolVar(&stripDryRunFlag, dryRunFlagName, false, "print what would be removed without writing")

	return cmd
}

func init() {
	rootCmd.AddCommand(stripCmd)
}
