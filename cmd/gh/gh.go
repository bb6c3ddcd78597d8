package gh

import (
	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/ArchonAI/archon-cli/api/github"
	"github.com/ArchonAI/archon-cli/api/repository"
	"github.com/ArchonAI/archon-cli/cmd/validator"
	"github.com/ArchonAI/archon-cli/settings"
)

// RepoSelector displays a multi-select of repository names and returns the
// chosen ones. It exists so tests can stub out the interactive prompt.
type RepoSelector interface {
	Select(message string, options []string) ([]string, error)
}

type surveySelector struct{}

func (surveySelector) Select(message string, options []string) ([]string, error) {
	var chosen []string
	prompt := &survey.MultiSelect{
		Message: message,
		Options: options,
	}
	err := survey.AskOne(prompt, &chosen)
	return chosen, err
}

type ghOpts struct {
	cfg        *settings.Config
	client     github.GitHubClient
	repoClient repository.RepositoryClient
	selector   RepoSelector
}

// GhOption configures a command created by NewGitHubCommand
type GhOption interface {
	apply(*ghOpts)
}

type selectorOption struct{ selector RepoSelector }

func (o selectorOption) apply(opts *ghOpts) { opts.selector = o.selector }

// WithSelector overrides the interactive repository picker.
func WithSelector(selector RepoSelector) GhOption {
	return selectorOption{selector: selector}
}

// NewGitHubCommand generates a cobra command for browsing GitHub accounts and
// feeding their repositories into analysis.
func NewGitHubCommand(config *settings.Config, preRunE validator.Validator, opts ...GhOption) *cobra.Command {
	pos := ghOpts{
		cfg:      config,
		selector: surveySelector{},
	}
	for _, o := range opts {
		o.apply(&pos)
	}

	command := &cobra.Command{
		Use:   "gh",
		Short: "Browse GitHub accounts and submit their repositories for analysis",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			client, err := github.NewGitHubClient(*config)
			if err != nil {
				return err
			}
			pos.client = client

			repoClient, err := repository.NewRepositoryRestClient(*config)
			if err != nil {
				return err
			}
			pos.repoClient = repoClient
			return nil
		},
	}

	command.AddCommand(newReposCommand(&pos, preRunE))

	return command
}
