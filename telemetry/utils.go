package telemetry

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// GetCommandInformation takes a cobra Command and creates a telemetry.CommandInfo.
// Only flags explicitly set by the user are included (via pflag.Visit, not VisitAll).
// Values are sent for all flags except those in sensitiveFlags, which are redacted.
// If getParent is true, explicitly-set flags from the parent command are also included
// (child flags take precedence over parent flags with the same name).
func GetCommandInformation(cmd *cobra.Command, getParent bool) CommandInfo {
	localArgs := map[string]string{}

	// Build a set of inherited flag names so we can exclude them.
	// We only want flags defined on this command itself (local or persistent),
	// not flags inherited from parent commands (e.g. --token, --host).
	inherited := map[string]struct{}{}
	cmd.InheritedFlags().VisitAll(func(f *pflag.Flag) {
		inherited[f.Name] = struct{}{}
	})

	if getParent {
		if parent := cmd.Parent(); parent != nil {
			parent.Flags().Visit(func(flag *pflag.Flag) {
				if sensitiveFlags[flag.Name] {
					localArgs[flag.Name] = redactedValue
				} else {
					localArgs[flag.Name] = flag.Value.String()
				}
			})
		}
	}

	cmd.Flags().Visit(func(flag *pflag.Flag) {
		if _, isInherited := inherited[flag.Name]; isInherited {
			return
		}
		if sensitiveFlags[flag.Name] {
			localArgs[flag.Name] = redactedValue
		} else {
			localArgs[flag.Name] = flag.Value.String()
		}
	})

	return CommandInfo{
		Name:      cmd.Name(),
		LocalArgs: localArgs,
	}
}

// UsedFlagValues returns a map of flag names to values for flags explicitly set
// by the user. Sensitive flags (tokens, secrets) have their values redacted.
func UsedFlagValues(cmd *cobra.Command) map[string]string {
	flags := map[string]string{}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if sensitiveFlags[f.Name] {
			flags[f.Name] = redactedValue
		} else {
			flags[f.Name] = f.Value.String()
		}
	})
	return flags
}

const redactedValue = "[REDACTED]"

// sensitiveFlags is the denylist of flag names whose values must never be sent
// to analytics. These contain credentials, secrets, or internal paths.
// All other flags are considered safe to send.
var sensitiveFlags = map[string]bool{
	"token":          true,
	"github-token":   true,
	"mock-telemetry": true,
}
