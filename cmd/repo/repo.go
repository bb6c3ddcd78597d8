package repo

import (
	"github.com/spf13/cobra"

	"github.com/ArchonAI/archon-cli/api/repository"
	"github.com/ArchonAI/archon-cli/cmd/validator"
	"github.com/ArchonAI/archon-cli/prompt"
	"github.com/ArchonAI/archon-cli/settings"
	"github.com/ArchonAI/archon-cli/telemetry"
)

// UserInputReader displays a message and reads a user input value
type UserInputReader interface {
	ReadStringFromUser(msg string) string
}

type promptReader struct{}

func (p promptReader) ReadStringFromUser(msg string) string {
	return prompt.ReadStringFromUser(msg, "")
}

type repoOpts struct {
	cfg    *settings.Config
	client repository.RepositoryClient
	reader UserInputReader
}

// RepoOption configures a command created by NewRepoCommand
type RepoOption interface {
	apply(*repoOpts)
}

type readerOption struct{ reader UserInputReader }

func (o readerOption) apply(opts *repoOpts) { opts.reader = o.reader }

// WithReader overrides the interactive input prompt.
func WithReader(reader UserInputReader) RepoOption {
	return readerOption{reader: reader}
}

// NewRepoCommand generates a cobra command for operating on repositories
// submitted for analysis.
func NewRepoCommand(config *settings.Config, preRunE validator.Validator, options ...RepoOption) *cobra.Command {
	opts := repoOpts{
		cfg:    config,
		reader: promptReader{},
	}
	for _, o := range options {
		o.apply(&opts)
	}

	command := &cobra.Command{
		Use:   "repo",
		Short: "Operate on repositories submitted for analysis",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			client, err := repository.NewRepositoryRestClient(*config)
			if err != nil {
				return err
			}
			opts.client = client
			return nil
		},
	}

	command.AddCommand(newAnalyzeCommand(&opts, preRunE))
	command.AddCommand(newUploadCommand(&opts, preRunE))
	command.AddCommand(newListCommand(&opts, preRunE))
	command.AddCommand(newGetCommand(&opts, preRunE))
	command.AddCommand(newWatchCommand(&opts, preRunE))

	return command
}

func trackRepoEvent(cmd *cobra.Command, err error) {
	telemetryClient, ok := telemetry.FromContext(cmd.Context())
	if ok {
		_ = telemetryClient.Track(telemetry.CreateRepoEvent(telemetry.GetCommandInformation(cmd, true), err))
	}
}
