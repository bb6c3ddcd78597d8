package cmd

import (
	"net/url"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ArchonAI/archon-cli/api/rest"
	"github.com/ArchonAI/archon-cli/settings"
	"github.com/ArchonAI/archon-cli/telemetry"
)

func newDiagnosticCommand(config *settings.Config) *cobra.Command {
	diagnosticCommand := &cobra.Command{
		Use:   "diagnostic",
		Short: "Check the status of your ArchonAI CLI.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := diagnostic(cmd, config)
			telemetryClient, ok := telemetry.FromContext(cmd.Context())
			if ok {
				_ = telemetryClient.Track(telemetry.CreateDiagnosticEvent(err))
			}
			return err
		},
	}

	return diagnosticCommand
}

func diagnostic(cmd *cobra.Command, config *settings.Config) error {
	cmd.Println("\n---\nArchonAI CLI Diagnostics\n---")
	cmd.Printf("Debug mode: %v\n", config.Debug)
	cmd.Printf("Config found: %v\n", config.FileUsed)

	serverURL, err := config.ServerURL()
	if err != nil {
		return err
	}
	cmd.Printf("API address: %s\n", serverURL.String())

	if config.Token == "token" || config.Token == "" {
		return errors.New("please set a token with 'archon setup'")
	}
	cmd.Println("OK, got a token.")

	cmd.Println("Trying to reach the analysis backend...")

	client := rest.New(config.Host, "", config.Token)
	req, err := client.NewRequest("GET", &url.URL{Path: "health"}, nil)
	if err != nil {
		return err
	}

	var health struct {
		Status string `json:"status"`
	}
	if _, err := client.DoRequest(req, &health); err != nil {
		return errors.Wrap(err, "Backend neuro-link failure")
	}
	if health.Status != "ok" {
		return errors.Errorf("backend reported status %q", health.Status)
	}

	cmd.Println("Ok.")

	return nil
}
