package repo

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ArchonAI/archon-cli/cmd/validator"
	"github.com/ArchonAI/archon-cli/git"
)

func newAnalyzeCommand(ops *repoOpts, preRunE validator.Validator) *cobra.Command {
	var githubToken string

	cmd := &cobra.Command{
		Use:   "analyze [url]",
		Short: "Submit a repository URL for analysis.",
		Long: `Submit a repository URL for analysis.

With no argument the URL is inferred from the 'origin' remote of the git
repository in the current directory. Submitting a URL that is already
tracked returns the existing record instead of creating a duplicate.

Examples:
  archon repo analyze https://github.com/acme/widget
  archon repo analyze --github-token $GITHUB_TOKEN https://github.com/acme/private-widget`,
		PreRunE: preRunE,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := analyzeRepository(cmd, ops, args, githubToken)
			trackRepoEvent(cmd, err)
			return err
		},
		Args: cobra.MaximumNArgs(1),
	}

	cmd.Flags().StringVar(&githubToken, "github-token", "", "token used by the backend to clone a private repository")

	return cmd
}

// inferRemote is swapped out in tests.
var inferRemote = git.InferProjectFromGitRemotes

func analyzeRepository(cmd *cobra.Command, ops *repoOpts, args []string, githubToken string) error {
	var repoURL string
	if len(args) == 1 {
		repoURL = args[0]
	} else {
		remote, err := inferRemote()
		if err != nil {
			repoURL = ops.reader.ReadStringFromUser("Repository URL to analyze:")
			if repoURL == "" {
				return errors.Wrap(err, "no URL given and none could be inferred from the current directory")
			}
		} else {
			repoURL = remote.HTTPSURL()
		}
	}

	// The flag wins over a token persisted in the settings file.
	if githubToken == "" {
		githubToken = ops.cfg.GitHubToken
	}

	created, err := ops.client.CreateRepository(repoURL, githubToken)
	if err != nil {
		return err
	}

	cmd.Printf("Submitted %s for analysis.\n", created.DisplayName())
	cmd.Printf("ID:     %s\n", created.ID)
	cmd.Printf("Status: %s\n", created.Status)
	cmd.Println("\nRun `archon repo watch` to follow progress.")

	return nil
}
