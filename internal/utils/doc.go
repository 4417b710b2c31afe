// Package utils exposes reusable helpers consumed by multiple commands.
//
// It houses the ConfigurationLoader, LoggerFactory, and command context
// accessors that integrate Viper, environment variables, and zap logging.
package utils
