package cmd

import (
	"fmt"
	"net/url"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ArchonAI/archon-cli/api/rest"
	"github.com/ArchonAI/archon-cli/settings"
	"github.com/ArchonAI/archon-cli/telemetry"
	"github.com/ArchonAI/archon-cli/ui"
)

type setupOptions struct {
	cfg      *settings.Config
	noPrompt bool
	// Host and token are only read with --no-prompt
	host  string
	token string
	// This lets us pass in our own interface for testing
	tty ui.UserInterface
	// Linked with --integration-testing flag for stubbing UI in tests
	integrationTesting bool
}

func newSetupCommand(config *settings.Config) *cobra.Command {
	opts := setupOptions{
		cfg: config,
		tty: ui.InteractiveUI{},
	}

	setupCommand := &cobra.Command{
		Use:   "setup",
		Short: "Setup the CLI with your credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.integrationTesting {
				opts.tty = ui.TestingUI{
					Input:   "boondoggle",
					Confirm: true,
				}
			}

			err := setup(opts)
			telemetryClient, ok := telemetry.FromContext(cmd.Context())
			if ok {
				_ = telemetryClient.Track(telemetry.CreateSetupEvent(opts.cfg.Host != defaultHost))
			}
			return err
		},
	}

	setupCommand.Flags().BoolVar(&opts.integrationTesting, "integration-testing", false, "Enable test mode to bypass interactive UI.")
	if err := setupCommand.Flags().MarkHidden("integration-testing"); err != nil {
		panic(err)
	}

	setupCommand.Flags().BoolVar(&opts.noPrompt, "no-prompt", false, "Disable prompt to bypass interactive UI. (MUST supply --host and --token)")

	setupCommand.Flags().StringVar(&opts.host, "host", "", "URL to your ArchonAI host")
	if err := setupCommand.Flags().MarkHidden("host"); err != nil {
		panic(err)
	}

	setupCommand.Flags().StringVar(&opts.token, "token", "", "your token for using ArchonAI")
	if err := setupCommand.Flags().MarkHidden("token"); err != nil {
		panic(err)
	}

	return setupCommand
}

func setup(opts setupOptions) error {
	if opts.noPrompt {
		return setupNoPrompt(opts)
	}

	if ui.ShouldAskForToken(opts.cfg.Token, opts.tty) {
		token, err := opts.tty.ReadSecretStringFromUser("ArchonAI API Token")
		if err != nil {
			return errors.Wrap(err, "Error reading token")
		}
		opts.cfg.Token = token
		fmt.Println("API token has been set.")
	}
	opts.cfg.Host = opts.tty.ReadStringFromUser("ArchonAI Host", defaultHost)
	fmt.Println("ArchonAI host has been set.")

	// Reset endpoint to default when running setup
	// This ensures any accidental changes to this field can be fixed simply by rerunning this command.
	if ui.ShouldAskForEndpoint(opts.cfg.RestEndpoint, opts.tty, defaultRestEndpoint) {
		opts.cfg.RestEndpoint = defaultRestEndpoint
	}

	if err := opts.cfg.WriteToDisk(); err != nil {
		return errors.Wrap(err, "Failed to save config file")
	}

	fmt.Printf("Setup complete.\nYour configuration has been saved to %s.\n", opts.cfg.FileUsed)

	if !opts.integrationTesting {
		fmt.Printf("\n")
		fmt.Printf("Pinging the analysis backend to verify your setup... ")

		if err := verifyBackend(opts.cfg); err != nil {
			fmt.Println("\nUnable to reach the analysis backend, please check your settings")
		} else {
			fmt.Println("Ok.")
		}
	}

	return nil
}

// verifyBackend makes a health call against the configured host.
func verifyBackend(config *settings.Config) error {
	client := rest.New(config.Host, "", config.Token)
	req, err := client.NewRequest("GET", &url.URL{Path: "health"}, nil)
	if err != nil {
		return err
	}

	var health struct {
		Status string `json:"status"`
	}
	_, err = client.DoRequest(req, &health)
	return err
}

func shouldKeepExistingConfig(opts setupOptions) bool {
	// Host always has a default value, so an empty token means no existing config.
	if opts.cfg.Token == "" {
		return false
	}

	// If they pass either host or token with a value this will be false, overwriting their existing config
	return opts.host == "" && opts.token == ""
}

func setupNoPrompt(opts setupOptions) error {
	if shouldKeepExistingConfig(opts) {
		fmt.Printf("Setup has kept your existing configuration at %s.\n", opts.cfg.FileUsed)
		return nil
	}

	if opts.host == "" && opts.token == "" {
		return errors.New("No existing host or token saved.\nThe proper format is `archon setup --host HOST --token TOKEN --no-prompt`")
	}

	config := settings.Config{}

	// First calling load will ensure the new config can be saved to disk
	if err := config.LoadFromDisk(); err != nil {
		return errors.Wrap(err, "Failed to create config file on disk")
	}

	// Use the default endpoint since we don't expose that to users
	config.RestEndpoint = defaultRestEndpoint
	config.Host = opts.host
	config.Token = opts.token

	if opts.host == "" {
		fmt.Println("Host unchanged from existing config. Use --host with --no-prompt to overwrite it.")
		config.Host = opts.cfg.Host
	}

	if opts.token == "" {
		fmt.Println("Token unchanged from existing config. Use --token with --no-prompt to overwrite it.")
		config.Token = opts.cfg.Token
	}

	if err := config.WriteToDisk(); err != nil {
		return errors.Wrap(err, "Failed to save config file")
	}

	fmt.Printf("Setup complete.\nYour configuration has been saved to %s.\n", config.FileUsed)
	return nil
}
