package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"

	"compaug.dev/pkg/compaug/internal/domain"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the build version of compaug, the revision it was built from and the variants it generates per component.",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("variants\t %d (%d with --%s)\n",
				domain.VariantCount(false), domain.VariantCount(true), geometricFlagName)

			info, ok := debug.ReadBuildInfo()
			if !ok || info.Main.Version == "" {
				cmd.Println("version: unknown")
				return
			}

			cmd.Println("compaug version\t", info.Main.Version)
			cmd.Println("revision\t", buildSetting(info, "vcs.revision"))
			cmd.Println("go version\t", info.GoVersion)
		},
	}
}

// buildSetting returns the value of key from the build settings, or "unknown".
func buildSetting(info *debug.BuildInfo, key string) string {
	for _, setting := range info.Settings {
		if setting.Key == key && setting.Value != "" {
			return setting.Value
		}
	}

	return "unknown"
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
