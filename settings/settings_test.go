package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := Config{}
	require.NoError(t, cfg.LoadFromDisk())
	assert.Equal(t, filepath.Join(SettingsPath(), "cli.yml"), cfg.FileUsed)

	cfg.Host = "https://archon.example.com"
	cfg.RestEndpoint = "api/v1"
	cfg.Token = "secret"
	require.NoError(t, cfg.WriteToDisk())

	loaded := Config{}
	require.NoError(t, loaded.LoadFromDisk())
	assert.Equal(t, "https://archon.example.com", loaded.Host)
	assert.Equal(t, "api/v1", loaded.RestEndpoint)
	assert.Equal(t, "secret", loaded.Token)

	info, err := os.Stat(cfg.FileUsed)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ARCHON_CLI_HOST", "https://selfhosted.example.com")
	t.Setenv("ARCHON_CLI_TOKEN", "env-token")
	t.Setenv("ARCHON_CLI_GITHUB_TOKEN", "gh-token")

	cfg := Config{Host: "https://api.archonai.io"}
	require.NoError(t, cfg.Load())

	assert.Equal(t, "https://selfhosted.example.com", cfg.Host)
	assert.Equal(t, "env-token", cfg.Token)
	assert.Equal(t, "gh-token", cfg.GitHubToken)
}

func TestServerURL(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		endpoint string
		want     string
	}{
		{
			name:     "default endpoint",
			host:     "http://localhost:8000",
			endpoint: "api/v1",
			want:     "http://localhost:8000/api/v1/",
		},
		{
			name:     "endpoint with trailing slash",
			host:     "http://localhost:8000",
			endpoint: "api/v1/",
			want:     "http://localhost:8000/api/v1/",
		},
		{
			name:     "empty endpoint resolves to host root",
			host:     "https://archon.example.com",
			endpoint: "",
			want:     "https://archon.example.com/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Host: tt.host, RestEndpoint: tt.endpoint}
			serverURL, err := cfg.ServerURL()
			require.NoError(t, err)
			assert.Equal(t, tt.want, serverURL.String())
		})
	}
}

func TestUpdateCheckRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	check := UpdateCheck{}
	require.NoError(t, check.Load())
	assert.True(t, check.LastUpdateCheck.IsZero())

	check.LastUpdateCheck = check.LastUpdateCheck.Add(1)
	require.NoError(t, check.WriteToDisk())

	loaded := UpdateCheck{}
	require.NoError(t, loaded.Load())
	assert.Equal(t, check.LastUpdateCheck, loaded.LastUpdateCheck)
}

func TestTelemetrySettingsRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	// No settings saved yet.
	fresh := TelemetrySettings{}
	err := fresh.Load()
	assert.True(t, os.IsNotExist(err))

	saved := TelemetrySettings{
		IsEnabled:         true,
		HasAnsweredPrompt: true,
		UniqueID:          "11111111-2222-3333-4444-555555555555",
	}
	require.NoError(t, saved.Write())

	loaded := TelemetrySettings{}
	require.NoError(t, loaded.Load())
	assert.Equal(t, saved, loaded)
}
