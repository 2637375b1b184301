package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"meowcode.dev/pkg/meowcode/internal/adapter"
	"meowcode.dev/pkg/meowcode/internal/domain"
)

// versionLines lists the build version next to the formats this build reads
// and writes.
func versionLines(info *debug.BuildInfo, ok bool) [][2]string {
	build, goVersion := "unknown", "unknown"
	if ok && info != nil {
		if info.Main.Version != "" {
			build = info.Main.Version
		}

		goVersion = info.GoVersion
	}

	return [][2]string{
		{"meowcode version", build},
		{"go version", goVersion},
		{"registry version", fmt.Sprint(adapter.RegistryVersion)},
		{"marker", domain.BeginMarker},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long: `Displays the build version, the Go version used to build this tool, the
newest registry manifest version it reads, and the marker framing generated code.`,
		Run: func(cmd *cobra.Command, _ []string) {
			info, ok := debug.ReadBuildInfo()

			for _, line := range versionLines(info, ok) {
				cmd.Println(line[0]+"\t", line[1])
			}
		},
	}
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
