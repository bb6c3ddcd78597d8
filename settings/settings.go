package settings

import (
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Config is used to represent the current state of a CLI instance.
type Config struct {
	Host                string       `yaml:"host"`
	RestEndpoint        string       `yaml:"rest_endpoint"`
	Token               string       `yaml:"token"`
	GitHubToken         string       `yaml:"github_token,omitempty"`
	HTTPClient          *http.Client `yaml:"-"`
	Debug               bool         `yaml:"-"`
	FileUsed            string       `yaml:"-"`
	GitHubAPI           string       `yaml:"-"`
	SkipUpdateCheck     bool         `yaml:"-"`
	IsTelemetryDisabled bool         `yaml:"-"`
	MockTelemetry       string       `yaml:"-"`
}

// UpdateCheck is used to represent settings for checking for updates of the CLI.
type UpdateCheck struct {
	LastUpdateCheck time.Time `yaml:"last_update_check"`
	FileUsed        string    `yaml:"-"`
}

// Load will read the update check settings from the user's disk and then deserialize it into the current instance.
func (upd *UpdateCheck) Load() error {
	path := filepath.Join(SettingsPath(), updateCheckFilename())

	if err := ensureSettingsFileExists(path); err != nil {
		return err
	}

	upd.FileUsed = path

	content, err := os.ReadFile(path) // #nosec
	if err != nil {
		return err
	}

	err = yaml.Unmarshal(content, &upd)
	return err
}

// WriteToDisk will write the last update check to disk by serializing the YAML
func (upd *UpdateCheck) WriteToDisk() error {
	enc, err := yaml.Marshal(&upd)
	if err != nil {
		return err
	}

	err = os.WriteFile(upd.FileUsed, enc, 0600)
	return err
}

// Load will read the config from the user's disk and then evaluate possible configuration from the environment.
func (cfg *Config) Load() error {
	if err := cfg.LoadFromDisk(); err != nil {
		return err
	}

	cfg.LoadFromEnv("archon_cli")

	return nil
}

// LoadFromDisk is used to read config from the user's disk and deserialize the YAML into our runtime config.
func (cfg *Config) LoadFromDisk() error {
	path := filepath.Join(SettingsPath(), configFilename())

	if err := ensureSettingsFileExists(path); err != nil {
		return err
	}

	cfg.FileUsed = path

	content, err := os.ReadFile(path) // #nosec
	if err != nil {
		return err
	}

	err = yaml.Unmarshal(content, &cfg)
	return err
}

// WriteToDisk will write the runtime config instance to disk by serializing the YAML
func (cfg *Config) WriteToDisk() error {
	enc, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	err = os.WriteFile(cfg.FileUsed, enc, 0600)
	return err
}

// LoadFromEnv will read from environment variables of the given prefix for host, endpoint, and token specifically.
func (cfg *Config) LoadFromEnv(prefix string) {
	if host := ReadFromEnv(prefix, "host"); host != "" {
		cfg.Host = host
	}

	if restEndpoint := ReadFromEnv(prefix, "rest_endpoint"); restEndpoint != "" {
		cfg.RestEndpoint = restEndpoint
	}

	if token := ReadFromEnv(prefix, "token"); token != "" {
		cfg.Token = token
	}

	if githubToken := ReadFromEnv(prefix, "github_token"); githubToken != "" {
		cfg.GitHubToken = githubToken
	}
}

// ReadFromEnv takes a prefix and field to search the environment for after capitalizing and joining them with an underscore.
func ReadFromEnv(prefix, field string) string {
	name := strings.Join([]string{prefix, field}, "_")
	return os.Getenv(strings.ToUpper(name))
}

// ServerURL resolves the REST endpoint against the configured host.
func (cfg *Config) ServerURL() (*url.URL, error) {
	serverURL, err := url.Parse(cfg.Host)
	if err != nil {
		return nil, err
	}

	endpoint := cfg.RestEndpoint
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}

	return serverURL.ResolveReference(&url.URL{Path: endpoint}), nil
}

// TelemetrySettings record the telemetry approval state of the user.
type TelemetrySettings struct {
	IsEnabled         bool   `yaml:"is_enabled"`
	HasAnsweredPrompt bool   `yaml:"has_answered_prompt"`
	UniqueID          string `yaml:"unique_id"`
}

// Load reads the telemetry settings from the user's disk.
func (s *TelemetrySettings) Load() error {
	path := filepath.Join(SettingsPath(), telemetryFilename())

	content, err := os.ReadFile(path) // #nosec
	if err != nil {
		return err
	}

	return yaml.Unmarshal(content, s)
}

// Write stores the telemetry settings on the user's disk.
func (s *TelemetrySettings) Write() error {
	path := filepath.Join(SettingsPath(), telemetryFilename())

	if err := ensureSettingsFileExists(path); err != nil {
		return err
	}

	enc, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, enc, 0600)
}

// telemetryFilename returns the name of the telemetry settings file
func telemetryFilename() string {
	return "telemetry.yml"
}

// updateCheckFilename returns the name of the cli update checks file
func updateCheckFilename() string {
	return "update_check.yml"
}

// configFilename returns the name of the cli config file
func configFilename() string {
	return "cli.yml"
}

// SettingsPath returns the path of the CLI settings directory
func SettingsPath() string {
	home, _ := os.UserHomeDir()
	return path.Join(home, ".archon")
}

// ensureSettingsFileExists does just that.
func ensureSettingsFileExists(path string) error {
	_, err := os.Stat(path)

	if err == nil {
		return nil
	}

	if !os.IsNotExist(err) {
		// Filesystem error
		return err
	}

	dir := filepath.Dir(path)

	// Create folder
	if err = os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	_, err = os.Create(path)
	if err != nil {
		return err
	}

	err = os.Chmod(path, 0600)

	return err
}
