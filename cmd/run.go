package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"meowcode.dev/pkg/meowcode/internal/domain"
)

var enabledFlag bool

const runLongDescription = `Regenerate the release boilerplate of every registered type found under the
given paths (default: current directory). Files whose generated blocks are
already up to date are left untouched.

` + pathPatternsHelp

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Regenerate release boilerplate",
		Long:  runLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := newWorkflow(cmd).Run(cmd.Context(), domain.RunArgs{
				SourceArgs: sourceArgs(args),
				Registry:   registryPath(),
				Enabled:    viper.GetBool(generateEnabledKey),
			})

			return err
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&enabledFlag, enabledFlagName, defaultGenerateEnabled, "enable code generation (set false to make run a no-op)")
	bindFlagToConfig(cmd.Flags().Lookup(enabledFlagName), generateEnabledKey)
}
