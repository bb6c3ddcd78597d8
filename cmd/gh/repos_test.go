package gh

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArchonAI/archon-cli/cmd/validator"
	"github.com/ArchonAI/archon-cli/settings"
	"github.com/ArchonAI/archon-cli/telemetry"
)

const userReposPayload = `[
	{"name": "widget", "full_name": "acme/widget", "html_url": "https://github.com/acme/widget", "description": "A widget service", "stargazers_count": 412, "language": "Go"},
	{"name": "gadget", "full_name": "acme/gadget", "html_url": "https://github.com/acme/gadget", "description": "", "stargazers_count": 3, "language": "Python"}
]`

type stubSelector struct {
	chosen  []string
	message string
	options []string
}

func (s *stubSelector) Select(message string, options []string) ([]string, error) {
	s.message = message
	s.options = options
	return s.chosen, nil
}

func defaultValidator(_ *cobra.Command, _ []string) error {
	return nil
}

func scaffoldCMD(baseURL string, preRunE validator.Validator, opts ...GhOption) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	config := &settings.Config{
		Token:               "testtoken",
		Host:                baseURL,
		RestEndpoint:        "api/v1",
		HTTPClient:          http.DefaultClient,
		IsTelemetryDisabled: true,
	}
	return scaffoldCMDWithConfig(config, preRunE, opts...)
}

func scaffoldCMDWithConfig(config *settings.Config, preRunE validator.Validator, opts ...GhOption) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	cmd := NewGitHubCommand(config, preRunE, opts...)

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	return cmd, stdout, stderr
}

func TestListUserRepositories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/api/v1/github/repos/acme", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(userReposPayload))
	}))
	defer server.Close()

	cmd, stdout, _ := scaffoldCMD(server.URL, defaultValidator)
	cmd.SetArgs([]string{"repos", "acme"})

	require.NoError(t, cmd.Execute())

	out := stdout.String()
	assert.Contains(t, out, "widget")
	assert.Contains(t, out, "412")
	assert.Contains(t, out, "Go")
	assert.Contains(t, out, "A widget service")
}

func TestListUserRepositoriesJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(userReposPayload))
	}))
	defer server.Close()

	cmd, stdout, _ := scaffoldCMD(server.URL, defaultValidator)
	cmd.SetArgs([]string{"repos", "acme", "--json"})

	require.NoError(t, cmd.Execute())

	var repos []map[string]interface{}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &repos))
	assert.Len(t, repos, 2)
}

func TestListUserRepositoriesEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	cmd, stdout, _ := scaffoldCMD(server.URL, defaultValidator)
	cmd.SetArgs([]string{"repos", "ghost"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "ghost has no public repositories.")
}

func TestImportSelectedRepositories(t *testing.T) {
	var submitted []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/v1/github/repos/acme":
			_, _ = w.Write([]byte(userReposPayload))
		case "/api/v1/repositories/":
			assert.Equal(t, "POST", r.Method)
			var payload map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			submitted = append(submitted, payload["url"])

			w.WriteHeader(http.StatusAccepted)
			_, _ = w.Write([]byte(`{"id": "11111111-1111-1111-1111-111111111111", "url": "` + payload["url"] + `", "status": "pending", "overall_score": 0, "created_at": "2026-08-12T10:30:00Z"}`))
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))
	defer server.Close()

	selector := &stubSelector{chosen: []string{"acme/widget"}}

	cmd, stdout, _ := scaffoldCMD(server.URL, defaultValidator, WithSelector(selector))
	cmd.SetArgs([]string{"repos", "acme", "--import"})

	require.NoError(t, cmd.Execute())

	assert.Equal(t, []string{"acme/widget", "acme/gadget"}, selector.options)
	assert.Equal(t, []string{"https://github.com/acme/widget"}, submitted)
	assert.Contains(t, stdout.String(), "Submitted acme/widget")
}

func TestListUserRepositoriesUnknownUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Not Found"}`))
	}))
	defer server.Close()

	cmd, _, _ := scaffoldCMD(server.URL, defaultValidator)
	cmd.SetArgs([]string{"repos", "ghost"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, `no GitHub user "ghost"`, err.Error())
}

func TestImportUsesConfiguredGitHubToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/v1/github/repos/acme":
			_, _ = w.Write([]byte(userReposPayload))
		case "/api/v1/repositories/":
			var payload map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "ghp_from_config", payload["github_token"])

			w.WriteHeader(http.StatusAccepted)
			_, _ = w.Write([]byte(`{"id": "11111111-1111-1111-1111-111111111111", "url": "` + payload["url"] + `", "status": "pending", "overall_score": 0, "created_at": "2026-08-12T10:30:00Z"}`))
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))
	defer server.Close()

	config := &settings.Config{
		Token:               "testtoken",
		GitHubToken:         "ghp_from_config",
		Host:                server.URL,
		RestEndpoint:        "api/v1",
		HTTPClient:          http.DefaultClient,
		IsTelemetryDisabled: true,
	}
	selector := &stubSelector{chosen: []string{"acme/widget"}}

	cmd, _, _ := scaffoldCMDWithConfig(config, defaultValidator, WithSelector(selector))
	cmd.SetArgs([]string{"repos", "acme", "--import"})

	require.NoError(t, cmd.Execute())
}

func TestImportNothingSelected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(userReposPayload))
	}))
	defer server.Close()

	selector := &stubSelector{}

	cmd, stdout, _ := scaffoldCMD(server.URL, defaultValidator, WithSelector(selector))
	cmd.SetArgs([]string{"repos", "acme", "--import"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "Nothing selected.")
}

func TestGitHubLookupTelemetry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	telemetryClient := testTelemetryClient{events: make([]telemetry.Event, 0)}

	cmd, _, _ := scaffoldCMD(server.URL, defaultValidator)
	cmd.SetArgs([]string{"repos", "acme"})
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(telemetry.NewContext(ctx, &telemetryClient))

	require.NoError(t, cmd.Execute())

	require.Len(t, telemetryClient.events, 1)
	assert.Equal(t, "cli-github", telemetryClient.events[0].Object)
	assert.Equal(t, "repos", telemetryClient.events[0].Action)
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
