package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"meowcode.dev/pkg/meowcode/internal/adapter"
)

// starterRegistry is written next to a fresh configuration. It parses to an
// empty registry, so a first run touches nothing.
const starterRegistry = `version: 1
# Registered types and the fields their generated Dispose(bool) releases,
# in release order. Generic types carry their arity suffix:
#
#   Widget: [handle, buffer]
#   Pool` + "`1" + `: [items]
types: {}
`

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a default meowcode.yaml and a starter registry",
		Long: `Create a meowcode.yaml in the current working directory populated with the
current CLI defaults, and a starter type registry at the configured registry
path unless one already exists.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			err := viper.SafeWriteConfigAs(targetPath)
			if err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			cmd.Println("wrote", targetPath)

			created, err := writeStarterRegistry(viper.GetString(registryPathKey))
			if err != nil {
				return err
			}

			if created {
				cmd.Println("wrote", viper.GetString(registryPathKey))
			}

			return nil
		},
	}
}

// writeStarterRegistry creates the registry manifest at path. An existing
// manifest is kept as is.
func writeStarterRegistry(path string) (bool, error) {
	if _, err := adapter.ParseRegistry([]byte(starterRegistry)); err != nil {
		return false, fmt.Errorf("starter registry: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("failed to create registry folder: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to create registry: %w", err)
	}

	if _, err := file.WriteString(starterRegistry); err != nil {
		_ = file.Close()
		return false, fmt.Errorf("failed to write registry: %w", err)
	}

	if err := file.Close(); err != nil {
		return false, fmt.Errorf("failed to write registry: %w", err)
	}

	return true, nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
