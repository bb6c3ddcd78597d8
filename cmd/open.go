package cmd

import (
	"fmt"
	"net/url"

	"github.com/pkg/browser"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ArchonAI/archon-cli/git"
	"github.com/ArchonAI/archon-cli/settings"
	"github.com/ArchonAI/archon-cli/telemetry"
)

// errorMessage is displayed when the current directory has no usable remote.
var errorMessage = `
This command is intended to be run from a git repository with a remote named 'origin' that is hosted on GitHub, GitLab or Bitbucket.
We are not currently supporting any other hosts.`

// dashboardURL builds the web dashboard deep link for the inferred repository.
func dashboardURL(remote *git.Remote) string {
	return fmt.Sprintf("https://app.archonai.io/dashboard?repo=%s",
		url.QueryEscape(remote.HTTPSURL()))
}

// openRepositoryInBrowser opens the dashboard page for the repository in the
// current working directory.
func openRepositoryInBrowser() error {
	remote, err := git.InferProjectFromGitRemotes()
	if err != nil {
		return errors.Wrap(err, errorMessage)
	}

	return browser.OpenURL(dashboardURL(remote))
}

func newOpenCommand(config *settings.Config) *cobra.Command {
	openCommand := &cobra.Command{
		Use:   "open",
		Short: "Open the current repository's dashboard in the browser.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := openRepositoryInBrowser()
			telemetryClient, ok := telemetry.FromContext(cmd.Context())
			if ok {
				_ = telemetryClient.Track(telemetry.CreateOpenEvent(err))
			}
			return err
		},
	}
	return openCommand
}
