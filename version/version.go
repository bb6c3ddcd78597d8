package version

import (
	"fmt"
)

// These vars set by `goreleaser`:
var (
	// Version is the current Git tag (the v prefix is stripped) or the name of the snapshot, if you’re using the --snapshot flag
	Version = "0.0.0-dev"
	// Commit is the current git commit SHA
	Commit = "dirty-local-tree"

	// packageManager is overridden at build time for packaged distributions (homebrew, snap).
	packageManager = "source"
)

// UserAgent returns the user agent that should be used for requests to the Archon API
func UserAgent() string {
	return fmt.Sprintf("archon-cli/%s+%s", Version, Commit)
}

// PackageManager returns the package manager the CLI was installed with.
func PackageManager() string {
	return packageManager
}
