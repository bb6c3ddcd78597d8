package cmd

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ArchonAI/archon-cli/api/header"
	"github.com/ArchonAI/archon-cli/cmd/gh"
	"github.com/ArchonAI/archon-cli/cmd/repo"
	"github.com/ArchonAI/archon-cli/cmd/validator"
	"github.com/ArchonAI/archon-cli/logger"
	"github.com/ArchonAI/archon-cli/settings"
	"github.com/ArchonAI/archon-cli/telemetry"
	"github.com/ArchonAI/archon-cli/version"
)

var (
	defaultHost         = "https://api.archonai.io"
	defaultRestEndpoint = "api/v1"

	// GitHubReleasesSlug is the repository the self-updater checks for new builds.
	GitHubReleasesSlug = "ArchonAI/archon-cli"
)

// rootOptions is a global value spanning all the commands of the CLI.
// It is read from disk once in MakeCommands and mutated by persistent flags.
var rootOptions *settings.Config

// rootTokenFromFlag holds the value of the --token flag so that an empty flag
// never wipes a token loaded from the settings file.
var rootTokenFromFlag string

// Execute adds all child commands to rootCmd and
// sets flags appropriately. This function is called
// by main.main().
func Execute() error {
	command := MakeCommands()
	return command.Execute()
}

// MakeCommands creates the top level commands
func MakeCommands() *cobra.Command {
	// Subcommand groups install their own PersistentPreRunE for API client
	// setup; run the root hook as well instead of letting theirs shadow it.
	cobra.EnableTraverseRunHooks = true

	rootOptions = &settings.Config{
		Host:         defaultHost,
		RestEndpoint: defaultRestEndpoint,
		GitHubAPI:    "https://api.github.com/",
	}

	if err := rootOptions.Load(); err != nil {
		panic(err)
	}

	rootOptions.HTTPClient = &http.Client{
		Timeout: 60 * time.Second,
	}

	rootCmd := &cobra.Command{
		Use:   "archon",
		Short: "Submit repositories to ArchonAI and read their analysis reports from the command line.",
		Long: `Submit repositories to ArchonAI and read their analysis reports from the command line.

The analysis itself (cloning, scanning, scoring, AI critique) runs on the
ArchonAI backend; this tool submits work and renders the results.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if rootTokenFromFlag != "" {
				rootOptions.Token = rootTokenFromFlag
			}

			header.SetCommandStr(commandStr(cmd))

			if isUpdateIncluded(version.PackageManager()) {
				// A failed check must not block the command itself.
				if err := checkForUpdates(rootOptions); err != nil && rootOptions.Debug {
					logger.NewLogger(rootOptions.Debug).Error("update check failed: ", err)
				}
			} else {
				rootOptions.SkipUpdateCheck = true
			}

			telemetryClient := createTelemetry(rootOptions)
			cmd.SetContext(telemetry.NewContext(cmd.Context(), telemetryClient))
			cobra.OnFinalize(func() {
				_ = telemetryClient.Close()
			})

			return nil
		},
	}

	hostValidator := requireHost(rootOptions)

	rootCmd.AddCommand(repo.NewRepoCommand(rootOptions, hostValidator))
	rootCmd.AddCommand(gh.NewGitHubCommand(rootOptions, hostValidator))
	rootCmd.AddCommand(newSetupCommand(rootOptions))
	rootCmd.AddCommand(newDiagnosticCommand(rootOptions))
	rootCmd.AddCommand(newOpenCommand(rootOptions))
	rootCmd.AddCommand(newVersionCommand(rootOptions))
	rootCmd.AddCommand(newTelemetryCommand())
	if isUpdateIncluded(version.PackageManager()) {
		rootCmd.AddCommand(newUpdateCommand(rootOptions))
	} else {
		rootCmd.AddCommand(newDisabledCommand(rootOptions, "update"))
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootOptions.Host, "host", rootOptions.Host, "URL to the ArchonAI API host")
	flags.StringVar(&rootTokenFromFlag, "token", "", "your token for using the ArchonAI API")
	flags.BoolVar(&rootOptions.Debug, "debug", rootOptions.Debug, "Enable debug logging.")
	flags.BoolVar(&rootOptions.SkipUpdateCheck, "skip-update-check", false, "Skip the check for updates check run before every command.")
	flags.StringVar(&rootOptions.MockTelemetry, "mock-telemetry", "", "The path where telemetry must be written")

	hidden := []string{"mock-telemetry"}
	for _, f := range hidden {
		if err := flags.MarkHidden(f); err != nil {
			panic(err)
		}
	}

	return rootCmd
}

// requireHost refuses to run API commands without a usable host.
func requireHost(config *settings.Config) validator.Validator {
	return func(cmd *cobra.Command, args []string) error {
		if config.Host == "" {
			return &noHostError{}
		}
		if _, err := config.ServerURL(); err != nil {
			return err
		}
		return nil
	}
}

type noHostError struct{}

func (*noHostError) Error() string {
	return "no API host configured; run `archon setup` first"
}

// commandStr renders the invoked subcommand path without the binary name,
// e.g. `repo analyze`. Used as a request header for the API.
func commandStr(cmd *cobra.Command) string {
	parts := strings.Fields(cmd.CommandPath())
	if len(parts) <= 1 {
		return ""
	}
	return strings.Join(parts[1:], " ")
}

func isUpdateIncluded(packageManager string) bool {
	switch packageManager {
	case "homebrew", "snap":
		return false
	default:
		return true
	}
}

// newDisabledCommand stands in for commands that are unavailable for the
// current installation method.
func newDisabledCommand(config *settings.Config, command string) *cobra.Command {
	disabled := &cobra.Command{
		Use:    command,
		Short:  "This command is unavailable on your platform",
		Hidden: os.Getenv("CI") == "true",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Printf("`%s` is not available because this tool was installed using `%s`.\n", command, version.PackageManager())
			cmd.Println("Please consult the package manager's documentation on how to update the CLI.")
			return nil
		},
	}

	return disabled
}
