package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ArchonAI/archon-cli/logger"
	"github.com/ArchonAI/archon-cli/settings"
	"github.com/ArchonAI/archon-cli/telemetry"
	"github.com/ArchonAI/archon-cli/update"
	"github.com/ArchonAI/archon-cli/version"
)

type updateCommandOptions struct {
	cfg    *settings.Config
	log    *logger.Logger
	dryRun bool
}

func newUpdateCommand(config *settings.Config) *cobra.Command {
	opts := updateCommandOptions{
		cfg:    config,
		dryRun: false,
	}

	updateCommand := &cobra.Command{
		Use:   "update",
		Short: "Update the tool to the latest version",
		PreRun: func(_ *cobra.Command, _ []string) {
			opts.log = logger.NewLogger(config.Debug)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := updateCLI(opts)

			telemetryClient, ok := telemetry.FromContext(cmd.Context())
			if ok {
				_ = telemetryClient.Track(telemetry.CreateUpdateEvent(telemetry.GetCommandInformation(cmd, false)))
			}

			return err
		},
	}

	updateCommand.AddCommand(&cobra.Command{
		Use:    "check",
		Hidden: true,
		Short:  "Check if there are any updates available",
		PreRun: func(_ *cobra.Command, _ []string) {
			opts.dryRun = true
			opts.log = logger.NewLogger(config.Debug)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return updateCLI(opts)
		},
	})

	updateCommand.AddCommand(&cobra.Command{
		Use:    "install",
		Hidden: true,
		Short:  "Update the tool to the latest version",
		PreRun: func(_ *cobra.Command, _ []string) {
			opts.log = logger.NewLogger(config.Debug)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return updateCLI(opts)
		},
	})

	updateCommand.PersistentFlags().BoolVar(&opts.dryRun, "check", false,
		"Check if there are any updates available without installing")

	return updateCommand
}

func updateCLI(opts updateCommandOptions) error {
	check, err := update.CheckForUpdates(opts.cfg.GitHubAPI, GitHubReleasesSlug, version.Version, version.PackageManager())
	if err != nil {
		return err
	}

	if !check.Found {
		return errors.New("no updates were found")
	}

	opts.log.Debug(update.DebugVersion(check))

	if update.IsLatestVersion(check) {
		opts.log.Infoln("Already up-to-date.")
		return nil
	}

	opts.log.Infoln(update.ReportVersion(check))

	if opts.dryRun {
		opts.log.Infoln(update.HowToUpdate(check))
		return nil
	}

	release, err := check.UpdateToLatest()
	if err != nil {
		return errors.Wrap(err, "failed to install update")
	}

	opts.log.Infof("Updated to %s\n", release.Version)

	return nil
}
