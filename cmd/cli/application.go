package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/dotfiles/internal/dependencies"
	"github.com/temirov/dotfiles/internal/infofiles"
	"github.com/temirov/dotfiles/internal/passthrough"
	"github.com/temirov/dotfiles/internal/readme"
	"github.com/temirov/dotfiles/internal/setup"
	"github.com/temirov/dotfiles/internal/utils"
	flagutilities "github.com/temirov/dotfiles/internal/utils/flags"
)

const (
	applicationNameConstant             = "dotfiles"
	applicationShortDescriptionConstant = "Manage home-directory configuration files with git"
	applicationLongDescriptionConstant  = "dotfiles keeps the git metadata directory outside the home directory while " +
		"using the home directory as the working tree. Built-in subcommands bootstrap and curate the repository; " +
		"every other invocation is forwarded to git unchanged."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagDescriptionConstant         = "Log level"
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagDescriptionConstant        = "Log output format"
	environmentPrefixConstant               = "DOTFILES"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	defaultConfigurationSearchPathConstant  = "."
	commonLogLevelConfigKeyConstant         = "common.log_level"
	commonLogFormatConfigKeyConstant        = "common.log_format"
	toolsConfigurationKeyConstant           = "tools"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	loggerNotInitializedMessageConstant     = "logger not initialized"
	forwardedCommandDebugMessageConstant    = "forwarding invocation to git"
	logFieldArgumentCountConstant           = "argument_count"
	logFieldArgumentsConstant               = "arguments"
)

// CommonConfiguration holds settings shared by every subcommand.
type CommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// EditorsConfiguration selects the editor command used by ignore, attributes, and readme.
type EditorsConfiguration struct {
	Command string `mapstructure:"command"`
}

// ToolsConfiguration groups per-subcommand configuration sections.
type ToolsConfiguration struct {
	Clone   setup.CloneCommandConfiguration `mapstructure:"clone"`
	Editors EditorsConfiguration            `mapstructure:"editors"`
}

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common CommonConfiguration `mapstructure:"common"`
	Tools  ToolsConfiguration  `mapstructure:"tools"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	commandContextAccessor utils.CommandContextAccessor
}

// NewApplication constructs the CLI application with its full command hierarchy.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant},
	)

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.Flags().SetInterspersed(false)
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(
		&application.logLevelFlagValue,
		logLevelFlagNameConstant,
		"",
		flagutilities.FormatChoiceUsage(
			string(utils.LogLevelInfo),
			[]string{string(utils.LogLevelDebug), string(utils.LogLevelInfo), string(utils.LogLevelWarn), string(utils.LogLevelError)},
			logLevelFlagDescriptionConstant,
		),
	)
	cobraCommand.PersistentFlags().StringVar(
		&application.logFormatFlagValue,
		logFormatFlagNameConstant,
		"",
		flagutilities.FormatChoiceUsage(
			string(utils.LogFormatConsole),
			[]string{string(utils.LogFormatConsole), string(utils.LogFormatStructured)},
			logFormatFlagDescriptionConstant,
		),
	)

	initBuilder := setup.InitCommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
	}
	initCommand, initBuildError := initBuilder.Build()
	if initBuildError == nil {
		cobraCommand.AddCommand(initCommand)
	}

	cloneBuilder := setup.CloneCommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider: func() setup.CloneCommandConfiguration {
			return application.configuration.Tools.Clone
		},
	}
	cloneCommand, cloneBuildError := cloneBuilder.Build()
	if cloneBuildError == nil {
		cobraCommand.AddCommand(cloneCommand)
	}

	ignoreBuilder := infofiles.NewIgnoreCommandBuilder()
	ignoreBuilder.LoggerProvider = func() *zap.Logger {
		return application.logger
	}
	ignoreBuilder.HumanReadableLoggingProvider = application.humanReadableLoggingEnabled
	ignoreBuilder.EditorCommandProvider = func() string {
		return application.configuration.Tools.Editors.Command
	}
	ignoreCommand, ignoreBuildError := ignoreBuilder.Build()
	if ignoreBuildError == nil {
		cobraCommand.AddCommand(ignoreCommand)
	}

	attributesBuilder := infofiles.NewAttributesCommandBuilder()
	attributesBuilder.LoggerProvider = func() *zap.Logger {
		return application.logger
	}
	attributesBuilder.HumanReadableLoggingProvider = application.humanReadableLoggingEnabled
	attributesBuilder.EditorCommandProvider = func() string {
		return application.configuration.Tools.Editors.Command
	}
	attributesCommand, attributesBuildError := attributesBuilder.Build()
	if attributesBuildError == nil {
		cobraCommand.AddCommand(attributesCommand)
	}

	readmeBuilder := readme.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		EditorCommandProvider: func() string {
			return application.configuration.Tools.Editors.Command
		},
	}
	readmeCommand, readmeBuildError := readmeBuilder.Build()
	if readmeBuildError == nil {
		cobraCommand.AddCommand(readmeCommand)
	}

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatConsole),
	}
	for configurationKey, configurationValue := range setup.DefaultConfigurationValues(toolsConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
		)
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

// runRootCommand forwards any unrecognized invocation verbatim to git against
// the configured metadata directory.
func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	application.logger.Debug(
		forwardedCommandDebugMessageConstant,
		zap.Int(logFieldArgumentCountConstant, len(arguments)),
		zap.Strings(logFieldArgumentsConstant, arguments),
	)

	stateStore, storeError := dependencies.ResolveStateStore(nil)
	if storeError != nil {
		return storeError
	}

	repositoryPath, loadError := stateStore.Load()
	if loadError != nil {
		return loadError
	}

	interactiveExecutor, executorError := dependencies.ResolveInteractiveExecutor(application.logger)
	if executorError != nil {
		return executorError
	}

	forwardingService, serviceError := passthrough.NewService(passthrough.ServiceDependencies{
		GitExecutor:    interactiveExecutor,
		RepositoryPath: repositoryPath,
		HomeDirectory:  dependencies.ResolveHomeDirectory(""),
	})
	if serviceError != nil {
		return serviceError
	}

	return forwardingService.Forward(command.Context(), arguments)
}

func (application *Application) flushLogger() error {
	if syncError := application.syncLoggerInstance(application.logger); syncError != nil {
		return syncError
	}
	return nil
}

func (application *Application) syncLoggerInstance(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}

	syncError := logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
