package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArchonAI/archon-cli/settings"
	"github.com/ArchonAI/archon-cli/telemetry"
)

func TestSetIsTelemetryActive(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	oldCreateUUID := CreateUUID
	CreateUUID = func() string { return "fixed-uuid" }
	defer func() { CreateUUID = oldCreateUUID }()

	require.NoError(t, setIsTelemetryActive(true))

	saved := settings.TelemetrySettings{}
	require.NoError(t, saved.Load())
	assert.True(t, saved.IsEnabled)
	assert.True(t, saved.HasAnsweredPrompt)
	assert.Equal(t, "fixed-uuid", saved.UniqueID)

	// Disabling keeps the recorded unique id.
	require.NoError(t, setIsTelemetryActive(false))
	require.NoError(t, saved.Load())
	assert.False(t, saved.IsEnabled)
	assert.Equal(t, "fixed-uuid", saved.UniqueID)
}

func TestCreateTelemetryDisabledByConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	client := createTelemetry(&settings.Config{IsTelemetryDisabled: true})
	assert.False(t, client.Enabled())
}

func TestCreateTelemetryOptOutEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ARCHON_CLI_TELEMETRY_OPTOUT", "1")

	client := createTelemetry(&settings.Config{})
	assert.False(t, client.Enabled())
}

func TestCreateTelemetryMockFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := t.TempDir() + "/events.json"
	client := createTelemetry(&settings.Config{MockTelemetry: path})
	assert.True(t, client.Enabled())

	require.NoError(t, client.Track(telemetry.Event{Object: "cli-test"}))
	require.NoError(t, client.Close())
}

func TestTelemetryCommands(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cmd := newTelemetryCommand()

	cmd.SetArgs([]string{"enable"})
	require.NoError(t, cmd.Execute())

	saved := settings.TelemetrySettings{}
	require.NoError(t, saved.Load())
	assert.True(t, saved.IsEnabled)

	cmd.SetArgs([]string{"disable"})
	require.NoError(t, cmd.Execute())

	require.NoError(t, saved.Load())
	assert.False(t, saved.IsEnabled)
}
