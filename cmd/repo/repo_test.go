package repo

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/ArchonAI/archon-cli/cmd/validator"
	"github.com/ArchonAI/archon-cli/settings"
	"github.com/ArchonAI/archon-cli/telemetry"
)

func defaultValidator(_ *cobra.Command, _ []string) error {
	return nil
}

type testTelemetryClient struct {
	events []telemetry.Event
}

func (cli *testTelemetryClient) Track(event telemetry.Event) error {
	cli.events = append(cli.events, event)
	return nil
}

func (cli *testTelemetryClient) Enabled() bool { return true }

func (cli *testTelemetryClient) Close() error { return nil }

func scaffoldCMD(baseURL string, preRunE validator.Validator, options ...RepoOption) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	config := &settings.Config{
		Token:               "testtoken",
		Host:                baseURL,
		RestEndpoint:        "api/v1",
		HTTPClient:          http.DefaultClient,
		IsTelemetryDisabled: true,
	}
	return scaffoldCMDWithConfig(config, preRunE, options...)
}

func scaffoldCMDWithConfig(config *settings.Config, preRunE validator.Validator, options ...RepoOption) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	cmd := NewRepoCommand(config, preRunE, options...)

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	return cmd, stdout, stderr
}

func TestRepoSubcommands(t *testing.T) {
	cmd, _, _ := scaffoldCMD("http://localhost:8000", defaultValidator)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}

	assert.ElementsMatch(t, []string{"analyze", "upload", "list", "get", "watch"}, names)
}
