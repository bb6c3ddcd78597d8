package cmd

import (
	"os"
	"runtime"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ArchonAI/archon-cli/prompt"
	"github.com/ArchonAI/archon-cli/settings"
	"github.com/ArchonAI/archon-cli/telemetry"
	"github.com/ArchonAI/archon-cli/version"
)

var (
	// CreateUUID is overridable for tests
	CreateUUID  = func() string { return uuid.New().String() }
	isStdinATTY = term.IsTerminal(int(os.Stdin.Fd()))
)

type telemetryUI interface {
	AskUserToApproveTelemetry(message string) bool
}

type telemetryInteractiveUI struct{}

func (telemetryInteractiveUI) AskUserToApproveTelemetry(message string) bool {
	return prompt.AskUserToConfirm(message)
}

// createTelemetry returns the telemetry client commands should use, taking
// care of the user's recorded approval. With no recorded answer and an
// interactive stdin, the user is asked once and the answer is stored.
func createTelemetry(config *settings.Config) telemetry.Client {
	mockTelemetry := config.MockTelemetry
	if mockTelemetry == "" {
		mockTelemetry = os.Getenv("MOCK_TELEMETRY")
	}
	if mockTelemetry != "" {
		return telemetry.CreateFileTelemetry(mockTelemetry)
	}

	if config.IsTelemetryDisabled || len(os.Getenv("ARCHON_CLI_TELEMETRY_OPTOUT")) != 0 {
		return telemetry.CreateClient(telemetry.User{}, false)
	}

	telemetrySettings := settings.TelemetrySettings{}
	if err := telemetrySettings.Load(); err != nil && !os.IsNotExist(err) {
		return telemetry.CreateClient(telemetry.User{}, false)
	}

	user := telemetry.User{
		UniqueID:     telemetrySettings.UniqueID,
		IsSelfHosted: config.Host != defaultHost,
		OS:           runtime.GOOS,
		Version:      version.Version,
	}

	if !telemetrySettings.HasAnsweredPrompt {
		if !isStdinATTY {
			_ = telemetry.SendTelemetryApproval(user, telemetry.NoStdin)
			return telemetry.CreateClient(user, false)
		}

		approved := telemetryInteractiveUI{}.AskUserToApproveTelemetry(
			"Allow anonymous usage data to be sent to ArchonAI to help improve the CLI?")

		telemetrySettings.HasAnsweredPrompt = true
		telemetrySettings.IsEnabled = approved
		if telemetrySettings.UniqueID == "" {
			telemetrySettings.UniqueID = CreateUUID()
		}
		user.UniqueID = telemetrySettings.UniqueID
		_ = telemetrySettings.Write()

		approval := telemetry.Disabled
		if approved {
			approval = telemetry.Enabled
		}
		_ = telemetry.SendTelemetryApproval(user, approval)
	}

	return telemetry.CreateClient(user, telemetrySettings.IsEnabled)
}

func newTelemetryCommand() *cobra.Command {
	telemetryEnable := &cobra.Command{
		Use:   "enable",
		Short: "Allow telemetry events to be sent to ArchonAI servers",
		RunE: func(_ *cobra.Command, _ []string) error {
			return setIsTelemetryActive(true)
		},
		Args: cobra.ExactArgs(0),
	}

	telemetryDisable := &cobra.Command{
		Use:   "disable",
		Short: "Make sure no telemetry events are sent to ArchonAI servers",
		RunE: func(_ *cobra.Command, _ []string) error {
			return setIsTelemetryActive(false)
		},
		Args: cobra.ExactArgs(0),
	}

	telemetryCommand := &cobra.Command{
		Use:   "telemetry",
		Short: "Configure telemetry preferences",
		Long: `Configure telemetry preferences.

Note: If you have not configured your telemetry preferences and call the CLI with a closed stdin, telemetry will be disabled`,
	}

	telemetryCommand.AddCommand(telemetryEnable)
	telemetryCommand.AddCommand(telemetryDisable)

	return telemetryCommand
}

func setIsTelemetryActive(isActive bool) error {
	telemetrySettings := settings.TelemetrySettings{}
	if err := telemetrySettings.Load(); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "Loading telemetry configuration")
	}

	telemetrySettings.HasAnsweredPrompt = true
	telemetrySettings.IsEnabled = isActive

	if telemetrySettings.UniqueID == "" {
		telemetrySettings.UniqueID = CreateUUID()
	}

	if err := telemetrySettings.Write(); err != nil {
		return errors.Wrap(err, "Writing telemetry configuration")
	}

	return nil
}
