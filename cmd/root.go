// Package cmd provides the root command and CLI setup for meowcode.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"meowcode.dev/pkg/meowcode/internal/adapter"
	"meowcode.dev/pkg/meowcode/internal/controller"
	"meowcode.dev/pkg/meowcode/internal/domain"
	m "meowcode.dev/pkg/meowcode/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var registryStore adapter.RegistryStore
var codegen domain.Codegen

// Root-level flags shared by every command that walks source files.
var (
	registryPathFlag string
	includePatterns  []string
	excludePatterns  []string
	useGitignoreFlag bool
	logPathFlag      string
	verboseFlag      bool
)

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	registryStore = adapter.NewYAMLRegistryStore()
	codegen = domain.NewCodegen(fsAdapter)
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...            recursively scan current directory
  - ./Assets/...     recursively scan Assets directory
  - ./Assets/A.cs    a single source file`

const rootLongDescription = `Meowcode generates release boilerplate for registered types.

Every type listed in the registry gets, between #region meowcode markers,
one disposal flag per releasable field, a Dispose(bool) method releasing
each field at most once, constructor-entry flag resets and, for classes,
a finalizer. Generated blocks are rebuilt on every run; hand-written code
outside them is never touched.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "meowcode",
		Short:        "Release boilerplate generator",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVarP(&registryPathFlag, registryFlagName, "r", viper.GetString(registryPathKey), "path to the type registry manifest")
	bindFlagToConfig(flags.Lookup(registryFlagName), registryPathKey)

	flags.StringArrayVarP(&includePatterns, includeFlagName, "i", viper.GetStringSlice(includeConfigKey), "include files matching glob (can be repeated)")
	bindFlagToConfig(flags.Lookup(includeFlagName), includeConfigKey)

	flags.StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(flags.Lookup(excludeFlagName), excludeConfigKey)

	flags.BoolVar(&useGitignoreFlag, gitignoreFlagName, viper.GetBool(gitignoreConfigKey), "skip files ignored by the root .gitignore")
	bindFlagToConfig(flags.Lookup(gitignoreFlagName), gitignoreConfigKey)

	flags.StringVar(&logPathFlag, logFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(flags.Lookup(logFlagName), logFilenameKey)

	flags.BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// newWorkflow wires the shared adapters to a UI printing on cmd's output.
func newWorkflow(cmd *cobra.Command) domain.Workflow {
	ui := controller.NewUI(cmd, controller.IsTTY(cmd.OutOrStdout()))

	return domain.NewWorkflow(fsAdapter, registryStore, ui, codegen)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

func sourceArgs(args []string) domain.SourceArgs {
	return domain.SourceArgs{
		Paths: parsePaths(args),
		Discover: adapter.DiscoverOptions{
			Include:      viper.GetStringSlice(includeConfigKey),
			Exclude:      viper.GetStringSlice(excludeConfigKey),
			UseGitignore: viper.GetBool(gitignoreConfigKey),
		},
	}
}

func registryPath() m.Path {
	return m.Path(viper.GetString(registryPathKey))
}
