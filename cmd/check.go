package cmd

import (
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"

	"github.com/ArchonAI/archon-cli/settings"
	"github.com/ArchonAI/archon-cli/update"
	"github.com/ArchonAI/archon-cli/version"
)

func checkForUpdates(opts *settings.Config) error {
	if opts.SkipUpdateCheck {
		return nil
	}

	updateCheck := &settings.UpdateCheck{
		LastUpdateCheck: time.Time{},
	}

	err := updateCheck.Load()
	if err != nil {
		return err
	}

	if update.ShouldCheckForUpdates(updateCheck) {
		log := log.New(os.Stderr, "", 0)

		spr := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		spr.Writer = os.Stderr
		spr.Suffix = " Checking for updates..."
		spr.Start()

		check, err := update.CheckForUpdates(opts.GitHubAPI, GitHubReleasesSlug, version.Version, version.PackageManager())

		if err != nil {
			spr.Stop()
			return err
		}

		if !check.Found {
			spr.Suffix = "No updates found."
			time.Sleep(300 * time.Millisecond)
			spr.Stop()

			updateCheck.LastUpdateCheck = time.Now()
			err = updateCheck.WriteToDisk()
			return err
		}

		if update.IsLatestVersion(check) {
			spr.Suffix = "Already up-to-date."
			time.Sleep(300 * time.Millisecond)
			spr.Stop()

			updateCheck.LastUpdateCheck = time.Now()
			err = updateCheck.WriteToDisk()
			return err
		}
		spr.Stop()

		if opts.Debug {
			log.Println(update.DebugVersion(check))
			log.Println("")
		}

		log.Println(update.ReportVersion(check))
		log.Println(update.HowToUpdate(check))

		log.Println("")

		updateCheck.LastUpdateCheck = time.Now()
		err = updateCheck.WriteToDisk()
		if err != nil {
			return err
		}
	}

	return nil
}
