package repository

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ArchonAI/archon-cli/errs"
	"github.com/ArchonAI/archon-cli/settings"
	"github.com/ArchonAI/archon-cli/version"
)

func newTestClient(serverURL string) *repositoryRestClient {
	return &repositoryRestClient{
		token:      "test-token",
		baseURL:    serverURL + "/api/v1/",
		httpClient: http.DefaultClient,
	}
}

func TestListRepositories(t *testing.T) {
	mockRepositories := []Repository{
		{
			ID:           "7f9c2b3a-0000-4000-8000-000000000001",
			URL:          "https://github.com/acme/widget",
			Name:         "widget",
			Status:       StatusCompleted,
			OverallScore: 72,
			CreatedAt:    "2026-03-01T10:00:00Z",
		},
		{
			ID:        "7f9c2b3a-0000-4000-8000-000000000002",
			URL:       "https://github.com/acme/gadget",
			Status:    StatusCloning,
			CreatedAt: "2026-03-02T09:30:00Z",
		},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/api/v1/repositories/", r.URL.Path)
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		assert.Equal(t, "test-token", r.Header.Get("Archon-Token"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, version.UserAgent(), r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(mockRepositories)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	repos, err := client.ListRepositories(0, 25)
	assert.NoError(t, err)
	assert.Len(t, repos, 2)
	assert.Equal(t, "widget", repos[0].Name)
	assert.Equal(t, StatusCloning, repos[1].Status)
	assert.Equal(t, "https://github.com/acme/gadget", repos[1].DisplayName())
}

func TestListRepositoriesPagination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", r.URL.Query().Get("skip"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[]`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	repos, err := client.ListRepositories(10, 5)
	assert.NoError(t, err)
	assert.Len(t, repos, 0)
}

func TestGetRepository(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/api/v1/repositories/some-id", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "some-id",
			"url": "https://github.com/acme/widget",
			"name": "widget",
			"status": "completed",
			"overall_score": 64,
			"created_at": "2026-03-01T10:00:00Z",
			"analysis_results": {
				"static_scan": {
					"stack": ["Go", "React/Next.js"],
					"standards": {"has_readme": true, "has_docker": false},
					"testing": {"detected": true, "frameworks": ["go test"]}
				},
				"structural_evaluation": {
					"patterns_detected": ["Standard Source Layout"],
					"modularity_score": 50,
					"concerns_separation": "Moderate"
				},
				"architectural_critique": "Missing containerization.",
				"overall_score": 64,
				"maturity_label": "Intermediate",
				"score_breakdown": {"infrastructure": 15, "standards_tests": 30, "architecture": 34, "security": -15},
				"actionable_roadmap": [
					{"title": "Deployment Consistency", "description": "d", "action": "a", "guide": "g"}
				],
				"security_findings": [
					{"type": "Secret Leak", "severity": "CRITICAL", "label": "AWS Access Key", "file": ".env", "description": "x"}
				]
			}
		}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	repo, err := client.GetRepository("some-id")
	assert.NoError(t, err)
	assert.Equal(t, StatusCompleted, repo.Status)

	analysis, err := repo.Analysis()
	assert.NoError(t, err)
	assert.NotNil(t, analysis)
	assert.Equal(t, "Intermediate", analysis.MaturityLabel)
	assert.Equal(t, []string{"Go", "React/Next.js"}, analysis.StaticScan.Stack)
	assert.True(t, analysis.StaticScan.Standards.HasReadme)
	assert.False(t, analysis.StaticScan.Standards.HasDocker)
	assert.Equal(t, -15, analysis.ScoreBreakdown.Security)
	assert.Len(t, analysis.ActionableRoadmap, 1)
	assert.Equal(t, "CRITICAL", analysis.SecurityFindings[0].Severity)
	assert.Nil(t, analysis.AIInsights)
}

func TestGetRepositoryNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail": "Repository not found"}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.GetRepository("missing")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Repository not found")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestGetRepositoryUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail": "Invalid token"}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.GetRepository("7f9c2b3a-0000-4000-8000-000000000001")
	assert.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrAuthRequired)
}

func TestCreateRepository(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/v1/repositories/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "https://github.com/acme/widget", payload["url"])
		_, hasToken := payload["github_token"]
		assert.False(t, hasToken)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_, _ = io.WriteString(w, `{"id": "new-id", "url": "https://github.com/acme/widget", "status": "pending", "overall_score": 0, "created_at": "2026-03-03T08:00:00Z"}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	repo, err := client.CreateRepository("https://github.com/acme/widget", "")
	assert.NoError(t, err)
	assert.Equal(t, "new-id", repo.ID)
	assert.Equal(t, StatusPending, repo.Status)
}

func TestUploadProject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/v1/repositories/upload", r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")

		file, fileHeader, err := r.FormFile("file")
		assert.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "project.zip", fileHeader.Filename)

		content, err := io.ReadAll(file)
		assert.NoError(t, err)
		assert.Equal(t, "fake archive bytes", string(content))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_, _ = io.WriteString(w, `{"id": "upload-id", "url": "upload://project.zip", "status": "pending", "overall_score": 0, "created_at": "2026-03-03T08:00:00Z"}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	repo, err := client.UploadProject("/tmp/builds/project.zip", strings.NewReader("fake archive bytes"))
	assert.NoError(t, err)
	assert.Equal(t, "upload-id", repo.ID)
}

func TestAnalysisNilWhenAbsent(t *testing.T) {
	repo := &Repository{ID: "x", Status: StatusPending}
	analysis, err := repo.Analysis()
	assert.NoError(t, err)
	assert.Nil(t, analysis)
}

func TestConfigServerURL(t *testing.T) {
	cfg := settings.Config{Host: "http://localhost:8000", RestEndpoint: "api/v1"}
	client, err := NewRepositoryRestClient(cfg)
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api/v1/", client.baseURL)
}
