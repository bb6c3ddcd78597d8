package github

// Repo is one public repository of a GitHub user, as simplified by the
// backend's proxy endpoint.
type Repo struct {
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	Language    string `json:"language"`
}

// GitHubClient is the interface to look up a user's public repositories.
type GitHubClient interface {
	GetUserRepositories(username string) ([]Repo, error)
}
