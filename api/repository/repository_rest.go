package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/ArchonAI/archon-cli/api/header"
	"github.com/ArchonAI/archon-cli/errs"
	"github.com/ArchonAI/archon-cli/settings"
	"github.com/ArchonAI/archon-cli/version"
)

// RepositoryClient is the interface to interact with the repository endpoints.
type RepositoryClient interface {
	ListRepositories(skip, limit int) ([]Repository, error)
	GetRepository(id string) (*Repository, error)
	CreateRepository(repoURL, githubToken string) (*Repository, error)
	UploadProject(filename string, archive io.Reader) (*Repository, error)
}

type repositoryRestClient struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

var _ RepositoryClient = &repositoryRestClient{}

// NewRepositoryRestClient returns a RepositoryClient speaking to the
// /api/v1/repositories endpoints of the configured host.
func NewRepositoryRestClient(config settings.Config) (*repositoryRestClient, error) {
	serverURL, err := config.ServerURL()
	if err != nil {
		return nil, err
	}

	return &repositoryRestClient{
		token:      config.Token,
		baseURL:    serverURL.String(),
		httpClient: config.HTTPClient,
	}, nil
}

// ListRepositories fetches the tracked repositories, newest last. The backend
// paginates with skip/limit; limit <= 0 falls back to the server default.
func (c *repositoryRestClient) ListRepositories(skip, limit int) ([]Repository, error) {
	path := "repositories/"
	query := url.Values{}
	if skip > 0 {
		query.Set("skip", fmt.Sprintf("%d", skip))
	}
	if limit > 0 {
		query.Set("limit", fmt.Sprintf("%d", limit))
	}
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	req, err := c.newHTTPRequest("GET", path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var repositories []Repository
	if err := c.doRequest(req, &repositories); err != nil {
		return nil, err
	}

	return repositories, nil
}

// GetRepository fetches a single repository with its full analysis payload.
func (c *repositoryRestClient) GetRepository(id string) (*Repository, error) {
	req, err := c.newHTTPRequest("GET", "repositories/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var repo Repository
	if err := c.doRequest(req, &repo); err != nil {
		return nil, err
	}

	return &repo, nil
}

// CreateRepository submits a repository URL for ingestion. The backend dedups
// by URL and answers 202 with the created or pre-existing record.
func (c *repositoryRestClient) CreateRepository(repoURL, githubToken string) (*Repository, error) {
	payload := struct {
		URL         string `json:"url"`
		GitHubToken string `json:"github_token,omitempty"`
	}{
		URL:         repoURL,
		GitHubToken: githubToken,
	}

	body := &bytes.Buffer{}
	if err := json.NewEncoder(body).Encode(payload); err != nil {
		return nil, err
	}

	req, err := c.newHTTPRequest("POST", "repositories/", body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var repo Repository
	if err := c.doRequest(req, &repo); err != nil {
		return nil, err
	}

	return &repo, nil
}

// UploadProject posts a project archive for analysis as multipart form data.
func (c *repositoryRestClient) UploadProject(filename string, archive io.Reader) (*Repository, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, archive); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := c.newHTTPRequest("POST", "repositories/upload", body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var repo Repository
	if err := c.doRequest(req, &repo); err != nil {
		return nil, err
	}

	return &repo, nil
}

func (c *repositoryRestClient) doRequest(req *http.Request, dest interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errorResp struct {
			Message string `json:"message"`
			Detail  string `json:"detail"`
		}
		if err := json.Unmarshal(bodyBytes, &errorResp); err != nil {
			return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
		}
		message := errorResp.Message
		if message == "" {
			message = errorResp.Detail
		}
		if message == "" {
			message = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		if resp.StatusCode == http.StatusNotFound {
			return errs.NotFoundf("%s", message)
		}
		if resp.StatusCode == http.StatusUnauthorized {
			return errs.AuthRequired(fmt.Errorf("%s", message))
		}
		return fmt.Errorf("API request failed: %s", message)
	}

	if dest != nil {
		if err := json.Unmarshal(bodyBytes, dest); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func (c *repositoryRestClient) newHTTPRequest(method, path string, body io.Reader) (*http.Request, error) {
	fullURL := c.baseURL + path

	req, err := http.NewRequest(method, fullURL, body)
	if err != nil {
		return nil, err
	}

	if c.token != "" {
		req.Header.Set("Archon-Token", c.token)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	if commandStr := header.GetCommandStr(); commandStr != "" {
		req.Header.Set("Archon-Cli-Command", commandStr)
	}

	return req, nil
}
