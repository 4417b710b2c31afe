package utils

import "context"

type commandContextValueKey string

const configurationFilePathContextValueKey = commandContextValueKey("configuration_file_path")

// CommandContextAccessor reads and writes values carried through command
// execution contexts.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath attaches the resolved configuration file path to the context.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, configurationFilePathContextValueKey, configurationFilePath)
}

// ConfigurationFilePath reports the configuration file path attached to the context, if any.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	attachedFilePath, attachedFilePathAvailable := executionContext.Value(configurationFilePathContextValueKey).(string)
	if !attachedFilePathAvailable {
		return "", false
	}
	return attachedFilePath, true
}
