package telemetry

import "fmt"

// This file contains all the telemetry event constructors.
// If you want to add an event, first make sure it appears in this file.

type CommandInfo struct {
	Name      string
	LocalArgs map[string]string
}

func localArgsToProperties(cmdInfo CommandInfo) map[string]interface{} {
	properties := map[string]interface{}{}
	for key, value := range cmdInfo.LocalArgs {
		properties[fmt.Sprintf("cmd.flag.%s", key)] = value
	}
	return properties
}

func errorToProperties(err error) map[string]interface{} {
	if err == nil {
		return nil
	}
	return map[string]interface{}{
		"error": err.Error(),
	}
}

func CreateSetupEvent(isSelfHosted bool) Event {
	return Event{
		Object: "cli-setup",
		Properties: map[string]interface{}{
			"is_self_hosted": isSelfHosted,
		},
	}
}

func CreateVersionEvent(version string) Event {
	return Event{
		Object: "cli-version",
		Properties: map[string]interface{}{
			"version": version,
		},
	}
}

func CreateUpdateEvent(cmdInfo CommandInfo) Event {
	return Event{
		Object:     "cli-update",
		Action:     cmdInfo.Name,
		Properties: localArgsToProperties(cmdInfo),
	}
}

func CreateDiagnosticEvent(err error) Event {
	return Event{
		Object: "cli-diagnostic", Properties: errorToProperties(err),
	}
}

func CreateOpenEvent(err error) Event {
	return Event{Object: "cli-open", Properties: errorToProperties(err)}
}

func CreateRepoEvent(cmdInfo CommandInfo, err error) Event {
	properties := localArgsToProperties(cmdInfo)
	for key, value := range errorToProperties(err) {
		properties[key] = value
	}
	return Event{
		Object:     "cli-repo",
		Action:     cmdInfo.Name,
		Properties: properties,
	}
}

func CreateGitHubLookupEvent(cmdInfo CommandInfo, err error) Event {
	properties := localArgsToProperties(cmdInfo)
	for key, value := range errorToProperties(err) {
		properties[key] = value
	}
	return Event{
		Object:     "cli-github",
		Action:     cmdInfo.Name,
		Properties: properties,
	}
}
