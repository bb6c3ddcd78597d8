package github

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/ArchonAI/archon-cli/api/header"
	"github.com/ArchonAI/archon-cli/errs"
	"github.com/ArchonAI/archon-cli/settings"
	"github.com/ArchonAI/archon-cli/version"
)

// errorResponse used to handle error messages from the API.
type errorResponse struct {
	Message *string `json:"message"`
	Detail  *string `json:"detail"`
}

// GitHubRESTClient A restful implementation of the GitHubClient
type GitHubRESTClient struct {
	token  string
	server string
	client *http.Client
}

// GetUserRepositories asks the backend for the public repositories of the
// given GitHub username. The backend proxies api.github.com and simplifies
// the response.
func (c *GitHubRESTClient) GetUserRepositories(username string) ([]Repo, error) {
	queryURL, err := url.Parse(c.server)
	if err != nil {
		return nil, err
	}
	queryURL, err = queryURL.Parse("github/repos/" + url.PathEscape(username))
	if err != nil {
		return nil, err
	}
	req, err := c.newHTTPRequest("GET", queryURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to construct new request: %v", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	defer resp.Body.Close()
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != 200 {
		var dest errorResponse
		if err := json.Unmarshal(bodyBytes, &dest); err != nil {
			return nil, err
		}

		apiErr := fmt.Errorf("HTTP %d", resp.StatusCode)
		if dest.Message != nil {
			apiErr = errors.New(*dest.Message)
		} else if dest.Detail != nil {
			apiErr = errors.New(*dest.Detail)
		}

		if resp.StatusCode == http.StatusNotFound {
			return nil, errs.NotFound(apiErr)
		}
		return nil, apiErr
	}

	repos := make([]Repo, 0)
	if err := json.Unmarshal(bodyBytes, &repos); err != nil {
		return nil, err
	}

	return repos, nil
}

// newHTTPRequest Creates a new standard HTTP request object used to communicate with the API
func (c *GitHubRESTClient) newHTTPRequest(method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Add("Archon-Token", c.token)
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("User-Agent", version.UserAgent())
	commandStr := header.GetCommandStr()
	if commandStr != "" {
		req.Header.Add("Archon-Cli-Command", commandStr)
	}
	return req, nil
}

// NewGitHubClient creates a new client to talk with the github proxy endpoints.
func NewGitHubClient(config settings.Config) (GitHubClient, error) {
	serverURL, err := config.ServerURL()
	if err != nil {
		return nil, err
	}

	client := &GitHubRESTClient{
		token:  config.Token,
		server: serverURL.String(),
		client: config.HTTPClient,
	}

	return client, nil
}
