package setup

import "strings"

const (
	defaultCloneDestinationConstant     = "dotfiles"
	configurationDestinationKeyConstant = "destination"
	configurationKeySeparatorConstant   = "."
	cloneConfigurationSection           = "clone"
)

// CloneCommandConfiguration captures configurable clone defaults.
type CloneCommandConfiguration struct {
	Destination string `mapstructure:"destination"`
}

// DefaultCloneCommandConfiguration returns the built-in clone defaults.
func DefaultCloneCommandConfiguration() CloneCommandConfiguration {
	return CloneCommandConfiguration{Destination: defaultCloneDestinationConstant}
}

// DefaultConfigurationValues produces Viper defaults for the clone command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCloneCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + cloneConfigurationSection + configurationKeySeparatorConstant + configurationDestinationKeyConstant: defaults.Destination,
	}
}

// Sanitize normalizes configured values, falling back to defaults for blanks.
func (configuration CloneCommandConfiguration) Sanitize() CloneCommandConfiguration {
	sanitized := configuration
	sanitized.Destination = strings.TrimSpace(sanitized.Destination)
	if len(sanitized.Destination) == 0 {
		sanitized.Destination = defaultCloneDestinationConstant
	}
	return sanitized
}
