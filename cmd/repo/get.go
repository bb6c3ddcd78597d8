package repo

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ArchonAI/archon-cli/api/repository"
	"github.com/ArchonAI/archon-cli/cmd/validator"
	"github.com/ArchonAI/archon-cli/errs"
)

var (
	drawerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#25A065")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().Faint(true)

	severityStyles = map[string]lipgloss.Style{
		"critical": lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true),
		"high":     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		"medium":   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		"low":      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
)

func newGetCommand(ops *repoOpts, preRunE validator.Validator) *cobra.Command {
	jsonFormat := false

	cmd := &cobra.Command{
		Use:     "get <repository-id>",
		Short:   "Show the full analysis report for a repository.",
		PreRunE: preRunE,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := getRepository(cmd, ops, args[0], jsonFormat)
			trackRepoEvent(cmd, err)
			return err
		},
		Args:    cobra.ExactArgs(1),
		Example: `archon repo get 12345678-1234-1234-1234-123456789012`,
	}

	cmd.Flags().BoolVar(&jsonFormat, "json", false, "Return output back in JSON format")

	return cmd
}

func getRepository(cmd *cobra.Command, ops *repoOpts, id string, jsonFormat bool) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%q is not a valid repository id", id)
	}

	repo, err := ops.client.GetRepository(id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return fmt.Errorf("no repository with id %s; run `archon repo list` to see what is tracked", id)
		}
		if errors.Is(err, errs.ErrAuthRequired) {
			return errors.Wrap(err, "authentication failed; run `archon setup` to set a valid token")
		}
		return errors.Wrap(err, "Backend neuro-link failure")
	}

	if jsonFormat {
		out, err := json.MarshalIndent(repo, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(out))
		return nil
	}

	report, err := renderReport(repo)
	if err != nil {
		return err
	}
	cmd.Println(report)

	return nil
}

func renderReport(repo *repository.Repository) (string, error) {
	var b strings.Builder

	b.WriteString(titleStyle.Render(repo.DisplayName()))
	b.WriteString("\n\n")
	writeField(&b, "URL", repo.URL)
	writeField(&b, "Status", string(repo.Status))
	writeField(&b, "Created", createdLabel(repo.CreatedAt))

	analysis, err := repo.Analysis()
	if err != nil {
		return "", err
	}

	switch {
	case repo.Status == repository.StatusFailed:
		b.WriteString(sectionStyle.Render("Analysis failed"))
		b.WriteString("\n")
		for _, line := range repo.Logs {
			b.WriteString("  " + line + "\n")
		}
	case analysis == nil:
		b.WriteString("\nAnalysis still in progress. Run `archon repo watch` to follow it.\n")
	default:
		renderAnalysis(&b, repo, analysis)
	}

	return drawerStyle.Render(strings.TrimRight(b.String(), "\n")), nil
}

func renderAnalysis(b *strings.Builder, repo *repository.Repository, analysis *repository.AnalysisResults) {
	writeField(b, "Score", fmt.Sprintf("%d / 100 (%s)", repo.OverallScore, analysis.MaturityLabel))

	writeSection(b, "Tech stack")
	writeField(b, "Detected", strings.Join(analysis.StaticScan.Stack, ", "))
	if analysis.StaticScan.Testing.Detected {
		writeField(b, "Testing", strings.Join(analysis.StaticScan.Testing.Frameworks, ", "))
	} else {
		writeField(b, "Testing", "none detected")
	}

	writeSection(b, "Standards")
	b.WriteString(renderStandards(analysis.StaticScan.Standards))

	writeSection(b, "Structure")
	writeField(b, "Patterns", strings.Join(analysis.StructuralEvaluation.PatternsDetected, ", "))
	writeField(b, "Modularity", fmt.Sprintf("%d / 100", analysis.StructuralEvaluation.ModularityScore))
	writeField(b, "Separation", analysis.StructuralEvaluation.ConcernsSeparation)

	writeSection(b, "Score breakdown")
	writeField(b, "Infrastructure", fmt.Sprintf("%+d", analysis.ScoreBreakdown.Infrastructure))
	writeField(b, "Standards & tests", fmt.Sprintf("%+d", analysis.ScoreBreakdown.StandardsTests))
	writeField(b, "Architecture", fmt.Sprintf("%+d", analysis.ScoreBreakdown.Architecture))
	writeField(b, "Security penalty", fmt.Sprintf("%+d", analysis.ScoreBreakdown.Security))

	if analysis.ArchitecturalCritique != "" {
		writeSection(b, "Architectural critique")
		b.WriteString(analysis.ArchitecturalCritique + "\n")
	}

	if len(analysis.SecurityFindings) > 0 {
		writeSection(b, "Security findings")
		for _, finding := range analysis.SecurityFindings {
			severity := strings.ToLower(finding.Severity)
			rendered := severity
			if style, ok := severityStyles[severity]; ok {
				rendered = style.Render(severity)
			}
			b.WriteString(fmt.Sprintf("  [%s] %s", rendered, finding.Label))
			if finding.File != "" {
				b.WriteString(" in " + finding.File)
			}
			b.WriteString("\n")
			if finding.Description != "" {
				b.WriteString("      " + finding.Description + "\n")
			}
		}
	}

	if len(analysis.ActionableRoadmap) > 0 {
		writeSection(b, "Roadmap")
		for i, step := range analysis.ActionableRoadmap {
			b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, step.Title))
			if step.Description != "" {
				b.WriteString("     " + step.Description + "\n")
			}
			if step.Guide != "" {
				b.WriteString("     " + labelStyle.Render(step.Guide) + "\n")
			}
		}
	}

	renderInsights(b, analysis.AIInsights)
}

func renderInsights(b *strings.Builder, insights *repository.AIInsights) {
	if insights == nil || insights.Error != "" {
		return
	}

	writeSection(b, "AI insights")
	for _, line := range insights.ExecutiveSummary {
		b.WriteString("  • " + line + "\n")
	}
	if insights.ScoreJustification != "" {
		b.WriteString("\n" + insights.ScoreJustification + "\n")
	}
	if insights.SuggestedAction != nil {
		b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render(insights.SuggestedAction.Title) + "\n")
		b.WriteString(insights.SuggestedAction.Paragraph + "\n")
	}
	for _, debt := range insights.TechnicalDebt {
		b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("Debt: "+debt.Title) + "\n")
		b.WriteString(debt.Paragraph + "\n")
	}
	for _, step := range insights.EngineeringRoadmap {
		b.WriteString(fmt.Sprintf("\n→ %s\n  %s\n", step.Title, step.Detail))
	}
}

func renderStandards(standards repository.InfraStandard) string {
	checks := []struct {
		label string
		ok    bool
	}{
		{"README", standards.HasReadme},
		{"gitignore", standards.HasGitignore},
		{"Docker", standards.HasDocker},
		{"CI/CD", standards.HasCICD},
		{"Terraform", standards.HasTerraform},
		{"Kubernetes", standards.HasKubernetes},
		{"OpenAPI", standards.HasOpenAPI},
		{"Linting", standards.HasLinting},
	}

	var b strings.Builder
	for _, check := range checks {
		mark := "✗"
		if check.ok {
			mark = "✓"
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", mark, check.label))
	}
	return b.String()
}

func writeSection(b *strings.Builder, title string) {
	b.WriteString(sectionStyle.Render(title))
	b.WriteString("\n")
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render(fmt.Sprintf("%-12s", label+":")), value))
}
