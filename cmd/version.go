package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ArchonAI/archon-cli/settings"
	"github.com/ArchonAI/archon-cli/telemetry"
	"github.com/ArchonAI/archon-cli/version"
)

func newVersionCommand(config *settings.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			config.SkipUpdateCheck = true
		},
		Run: func(cmd *cobra.Command, _ []string) {
			telemetryClient, ok := telemetry.FromContext(cmd.Context())
			if ok {
				_ = telemetryClient.Track(telemetry.CreateVersionEvent(version.Version))
			}

			cmd.Printf("%s+%s (%s)\n", version.Version, version.Commit, version.PackageManager())
		},
	}
}
