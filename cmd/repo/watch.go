package repo

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ArchonAI/archon-cli/api/repository"
	"github.com/ArchonAI/archon-cli/cmd/validator"
)

const (
	pollInterval = 5 * time.Second
	watchLimit   = 100
)

var (
	watchTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#25A065")).
			Padding(0, 1)

	watchHeaderStyle = lipgloss.NewStyle().Bold(true).Faint(true)
	watchFooterStyle = lipgloss.NewStyle().Faint(true)
	watchErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func newWatchCommand(ops *repoOpts, preRunE validator.Validator) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "watch",
		Short:   "Watch your repositories' analysis progress, refreshing every 5 seconds.",
		PreRunE: preRunE,
		RunE: func(cmd *cobra.Command, _ []string) error {
			program := tea.NewProgram(newWatchModel(ops.client))
			_, err := program.Run()
			trackRepoEvent(cmd, err)
			return err
		},
		Args: cobra.ExactArgs(0),
	}

	return cmd
}

// pollResult carries one list response along with the sequence number of the
// poll that produced it. Responses can come back out of order when the
// backend is slow; only the newest one may update the screen.
type pollResult struct {
	seq   int
	repos []repository.Repository
	err   error
}

type pollTick struct{}

type watchModel struct {
	client  repository.RepositoryClient
	spinner spinner.Model

	repos []repository.Repository
	err   error

	// issued is the sequence number of the most recent poll sent; applied is
	// the newest response rendered so far. A response with seq <= applied is
	// stale and gets discarded.
	issued  int
	applied int

	loaded   bool
	quitting bool
}

func newWatchModel(client repository.RepositoryClient) watchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return watchModel{
		client:  client,
		spinner: s,
		issued:  1,
	}
}

func (m watchModel) poll(seq int) tea.Cmd {
	return func() tea.Msg {
		repos, err := m.client.ListRepositories(0, watchLimit)
		return pollResult{seq: seq, repos: repos, err: err}
	}
}

func scheduleTick() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return pollTick{}
	})
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.poll(m.issued),
		scheduleTick(),
	)
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		default:
			return m, nil
		}

	case pollTick:
		m.issued++
		return m, tea.Batch(m.poll(m.issued), scheduleTick())

	case pollResult:
		if msg.seq <= m.applied {
			return m, nil
		}
		m.applied = msg.seq
		if msg.err != nil {
			m.err = errors.Wrap(msg.err, "Backend neuro-link failure")
			return m, nil
		}
		m.err = nil
		m.loaded = true
		m.repos = msg.repos
		return m, nil

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m watchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(watchTitleStyle.Render("ArchonAI repositories"))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(watchErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	case !m.loaded:
		b.WriteString(fmt.Sprintf("%s Fetching repositories…\n", m.spinner.View()))
	case len(m.repos) == 0:
		b.WriteString("No repositories tracked yet. Submit one with `archon repo analyze`.\n")
	default:
		b.WriteString(watchHeaderStyle.Render(watchRow("NAME", "STATUS", "SCORE")))
		b.WriteString("\n")
		for _, repo := range m.repos {
			b.WriteString(watchRow(repo.DisplayName(), statusLabel(repo.Status), scoreLabel(&repo)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(watchFooterStyle.Render(fmt.Sprintf("%s refreshing every %s • q to quit", m.spinner.View(), pollInterval)))
	b.WriteString("\n")

	return b.String()
}

func watchRow(name, status, score string) string {
	if len(name) > 48 {
		name = name[:45] + "..."
	}
	return fmt.Sprintf("  %-50s %-22s %5s", name, status, score)
}
