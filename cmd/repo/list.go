package repo

import (
	"encoding/json"
	"strconv"

	"github.com/araddon/dateparse"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ArchonAI/archon-cli/api/repository"
	"github.com/ArchonAI/archon-cli/cmd/validator"
)

func newListCommand(ops *repoOpts, preRunE validator.Validator) *cobra.Command {
	var (
		jsonFormat bool
		skip       int
		limit      int
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List your tracked repositories and their analysis status.",
		PreRunE: preRunE,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := listRepositories(cmd, ops, jsonFormat, skip, limit)
			trackRepoEvent(cmd, err)
			return err
		},
		Args:    cobra.ExactArgs(0),
		Example: `archon repo list --limit 10`,
	}

	cmd.Flags().BoolVar(&jsonFormat, "json", false, "Return output back in JSON format")
	cmd.Flags().IntVar(&skip, "skip", 0, "Number of repositories to skip")
	cmd.Flags().IntVar(&limit, "limit", 100, "Maximum number of repositories to return")

	return cmd
}

func listRepositories(cmd *cobra.Command, ops *repoOpts, jsonFormat bool, skip, limit int) error {
	repos, err := ops.client.ListRepositories(skip, limit)
	if err != nil {
		return errors.Wrap(err, "Backend neuro-link failure")
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
		cmd.Println("No repositories tracked yet. Submit one with `archon repo analyze`.")
		return nil
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"ID", "Name", "Status", "Score", "Created"})

	for _, repo := range repos {
		table.Append([]string{
			repo.ID,
			repo.DisplayName(),
			statusLabel(repo.Status),
			scoreLabel(&repo),
			createdLabel(repo.CreatedAt),
		})
	}
	table.Render()

	return nil
}

// statusLabel colors terminal output per state; tablewriter passes ANSI
// sequences through untouched.
func statusLabel(status repository.Status) string {
	switch status {
	case repository.StatusCompleted:
		return color.GreenString(string(status))
	case repository.StatusFailed:
		return color.RedString(string(status))
	case repository.StatusCloning:
		return color.YellowString(string(status))
	default:
		return string(status)
	}
}

func scoreLabel(repo *repository.Repository) string {
	if repo.Status != repository.StatusCompleted {
		return "-"
	}
	return strconv.Itoa(repo.OverallScore)
}

// createdLabel renders a backend timestamp in the local timezone. The
// backend has served several timestamp layouts over time, so parsing is
// tolerant and falls back to the raw value.
func createdLabel(createdAt string) string {
	if createdAt == "" {
		return "-"
	}
	parsed, err := dateparse.ParseAny(createdAt)
	if err != nil {
		return createdAt
	}
	return parsed.Local().Format("2006-01-02 15:04")
}
