package gh

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ArchonAI/archon-cli/api/github"
	"github.com/ArchonAI/archon-cli/cmd/validator"
	"github.com/ArchonAI/archon-cli/errs"
	"github.com/ArchonAI/archon-cli/telemetry"
)

func newReposCommand(ops *ghOpts, preRunE validator.Validator) *cobra.Command {
	var (
		jsonFormat  bool
		importRepos bool
	)

	cmd := &cobra.Command{
		Use:   "repos <username>",
		Short: "List the public repositories of a GitHub user.",
		Long: `List the public repositories of a GitHub user.

With --import, pick repositories from the list and submit them for
analysis in one go.

Examples:
  archon gh repos torvalds
  archon gh repos acme-corp --import`,
		PreRunE: preRunE,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := listUserRepositories(cmd, ops, args[0], jsonFormat, importRepos)

			telemetryClient, ok := telemetry.FromContext(cmd.Context())
			if ok {
				_ = telemetryClient.Track(telemetry.CreateGitHubLookupEvent(telemetry.GetCommandInformation(cmd, true), err))
			}

			return err
		},
		Args: cobra.ExactArgs(1),
	}

	cmd.Flags().BoolVar(&jsonFormat, "json", false, "Return output back in JSON format")
	cmd.Flags().BoolVar(&importRepos, "import", false, "Pick repositories from the list and submit them for analysis")

	return cmd
}

func listUserRepositories(cmd *cobra.Command, ops *ghOpts, username string, jsonFormat, importRepos bool) error {
	repos, err := ops.client.GetUserRepositories(username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return fmt.Errorf("no GitHub user %q", username)
		}
		return err
	}

	if jsonFormat {
		out, err := json.MarshalIndent(repos, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(out))
		return nil
	}

	if len(repos) == 0 {
		cmd.Printf("%s has no public repositories.\n", username)
		return nil
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Name", "Stars", "Language", "Description"})
	table.SetColWidth(60)

	for _, repo := range repos {
		table.Append([]string{
			repo.Name,
			strconv.Itoa(repo.Stars),
			repo.Language,
			repo.Description,
		})
	}
	table.Render()

	if !importRepos {
		return nil
	}

	return importSelected(cmd, ops, repos)
}

func importSelected(cmd *cobra.Command, ops *ghOpts, repos []github.Repo) error {
	byName := make(map[string]github.Repo, len(repos))
	options := make([]string, 0, len(repos))
	for _, repo := range repos {
		byName[repo.FullName] = repo
		options = append(options, repo.FullName)
	}

	chosen, err := ops.selector.Select("Select repositories to submit for analysis:", options)
	if err != nil {
		return err
	}
	if len(chosen) == 0 {
		cmd.Println("Nothing selected.")
		return nil
	}

	for _, name := range chosen {
		repo, ok := byName[name]
		if !ok {
			return fmt.Errorf("unknown repository %q", name)
		}

		created, err := ops.repoClient.CreateRepository(repo.HTMLURL, ops.cfg.GitHubToken)
		if err != nil {
			return err
		}
		cmd.Printf("Submitted %s (%s)\n", name, created.ID)
	}

	cmd.Println("\nRun `archon repo watch` to follow progress.")

	return nil
}
