package cmd

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArchonAI/archon-cli/settings"
)

func TestCheckForUpdatesSkipped(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	config := &settings.Config{SkipUpdateCheck: true}
	require.NoError(t, checkForUpdates(config))
}

func TestCheckForUpdatesReturnsReleaseLookupError(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	config := &settings.Config{GitHubAPI: server.URL + "/"}

	err := checkForUpdates(config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error finding latest release")
}
