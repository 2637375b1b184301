package cmd

import (
	"github.com/spf13/cobra"

	"meowcode.dev/pkg/meowcode/internal/domain"
)

// registryCmd represents the registry command.
var registryCmd = newRegistryCmd()

func newRegistryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "registry",
		Short: "Show the registered types and their releasable fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return newWorkflow(cmd).ShowRegistry(cmd.Context(), domain.RegistryArgs{
				Registry: registryPath(),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(registryCmd)
}
