package update

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/blang/semver"
	"github.com/google/go-github/v30/github"
	"github.com/pkg/errors"
	"github.com/rhysd/go-github-selfupdate/selfupdate"

	"github.com/ArchonAI/archon-cli/settings"
)

// checkInterval is how often the CLI checks GitHub releases for a newer build.
const checkInterval = 28 * time.Hour

// ShouldCheckForUpdates tells us if the last update check happened long enough
// ago for another one to be worthwhile.
func ShouldCheckForUpdates(upd *settings.UpdateCheck) bool {
	diff := time.Since(upd.LastUpdateCheck)
	return diff >= checkInterval
}

// Options contains everything we need to check for or perform updates of the CLI.
type Options struct {
	Current        semver.Version
	Latest         *selfupdate.Release
	Found          bool
	PackageManager string

	updater *selfupdate.Updater
	slug    string
}

// NewOptions returns a new instance of Options after setting up the updater.
func NewOptions(githubAPI, slug, current, packageManager string) (*Options, error) {
	updater, err := selfupdate.NewUpdater(selfupdate.Config{
		EnterpriseBaseURL: githubAPI,
	})
	if err != nil {
		return nil, err
	}

	return &Options{
		Current:        semver.MustParse(current),
		PackageManager: packageManager,

		slug:    slug,
		updater: updater,
	}, nil
}

// CheckForUpdates resolves the latest published release for the given slug.
func CheckForUpdates(githubAPI, slug, current, packageManager string) (*Options, error) {
	options, err := NewOptions(githubAPI, slug, current, packageManager)
	if err != nil {
		return nil, err
	}

	options.Found, err = options.LatestRelease()
	return options, err
}

// LatestRelease will set the last known release as a member on the Options
// instance. We'll also return true or false if any release was found.
func (options *Options) LatestRelease() (bool, error) {
	latest, found, err := options.updater.DetectLatest(options.slug)
	options.Latest = latest

	if err != nil {
		if errResponse, ok := err.(*github.ErrorResponse); ok && errResponse.Response.StatusCode == http.StatusUnauthorized {
			return false, errors.Wrap(err, "Your Github token is invalid. Check the [github] section in ~/.gitconfig\n")
		}

		return false, errors.Wrap(err, "error finding latest release")
	}

	return found, nil
}

// IsLatestVersion will tell us if the current version is already the latest
// version found from the GitHub releases API.
func IsLatestVersion(opts *Options) bool {
	if opts.Latest == nil {
		return true
	}
	return opts.Latest.Version.Equals(opts.Current)
}

// UpdateToLatest will execute the updater and replace the current CLI with the latest version available.
func (options *Options) UpdateToLatest() (*selfupdate.Release, error) {
	return options.updater.UpdateSelf(options.Current, options.slug)
}

// ReportVersion returns a message describing the current and latest versions.
func ReportVersion(opts *Options) string {
	return strings.Join([]string{
		fmt.Sprintf("You are running %s", opts.Current),
		fmt.Sprintf("A new release is available (%s)", opts.Latest.Version),
	}, "\n")
}

// DebugVersion returns extra information about the update check for verbose mode.
func DebugVersion(opts *Options) string {
	return strings.Join([]string{
		fmt.Sprintf("Latest version: %s", opts.Latest.Version),
		fmt.Sprintf("Published: %s", opts.Latest.PublishedAt),
		fmt.Sprintf("Current Version: %s", opts.Current),
	}, "\n")
}

// HowToUpdate returns instructions appropriate for how the CLI was installed.
func HowToUpdate(opts *Options) string {
	switch opts.PackageManager {
	case "homebrew":
		return "You can update with `brew upgrade archon`"
	case "snap":
		return "You can update with `sudo snap refresh archon`"
	}
	return "You can update with `archon update install`"
}
