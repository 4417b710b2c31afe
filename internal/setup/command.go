package setup

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/dotfiles/internal/dependencies"
	"github.com/temirov/dotfiles/internal/gitrepo"
)

const (
	initCommandUseConstant               = "init [path]"
	initCommandShortDescriptionConstant  = "Create a dotfiles repository"
	initCommandLongDescriptionConstant   = "init creates a bare git metadata directory at the given path (default: the current directory), records it for later invocations, and configures it to use the home directory as its working tree."
	initCommandExampleConstant           = "dotfiles init ~/.dotfiles"
	initSuccessMessageTemplateConstant   = "Initialized dotfiles repository at %s\n"
	cloneCommandUseConstant              = "clone <url> [destination]"
	cloneCommandShortDescriptionConstant = "Clone an existing dotfiles repository"
	cloneCommandLongDescriptionConstant  = "clone clones an existing dotfiles repository as a bare metadata directory, configures it against the home directory, snapshots any pre-existing home files on a backup branch, and checks the cloned content out."
	cloneCommandExampleConstant          = "dotfiles clone git@github.com:user/dotfiles.git ~/.dotfiles"
	cloneSuccessMessageTemplateConstant  = "Cloned dotfiles repository into %s\n"
)

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// InitCommandBuilder assembles the init command.
type InitCommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  gitrepo.GitExecutor
	StateStore                   StateStore
	PathResolver                 PathResolver
	HomeDirectory                string
	HumanReadableLoggingProvider func() bool
}

// Build constructs the init command.
func (builder *InitCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     initCommandUseConstant,
		Short:   initCommandShortDescriptionConstant,
		Long:    initCommandLongDescriptionConstant,
		Example: initCommandExampleConstant,
		Args:    cobra.MaximumNArgs(1),
		RunE:    builder.run,
	}
	return command, nil
}

func (builder *InitCommandBuilder) run(command *cobra.Command, arguments []string) error {
	logger := resolveLogger(builder.LoggerProvider)

	service, serviceError := builder.buildService(logger)
	if serviceError != nil {
		return serviceError
	}

	requestedPath := ""
	if len(arguments) > 0 {
		requestedPath = arguments[0]
	}

	resolvedPath, initializationError := service.Initialize(command.Context(), requestedPath)
	if initializationError != nil {
		return initializationError
	}

	fmt.Fprintf(command.OutOrStdout(), initSuccessMessageTemplateConstant, resolvedPath)
	return nil
}

func (builder *InitCommandBuilder) buildService(logger *zap.Logger) (*InitService, error) {
	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, resolveHumanReadableLogging(builder.HumanReadableLoggingProvider))
	if executorError != nil {
		return nil, executorError
	}

	repositoryManager, managerError := dependencies.ResolveRepositoryManager(nil, gitExecutor)
	if managerError != nil {
		return nil, managerError
	}

	stateStore, storeError := resolveStateStore(builder.StateStore)
	if storeError != nil {
		return nil, storeError
	}

	pathResolver := builder.PathResolver
	if pathResolver == nil {
		pathResolver = dependencies.ResolvePathResolver(nil)
	}

	homeDirectory := dependencies.ResolveHomeDirectory(builder.HomeDirectory)

	return NewInitService(InitServiceDependencies{
		RepositoryManager: repositoryManager,
		StateStore:        stateStore,
		PathResolver:      pathResolver,
		HomeDirectory:     homeDirectory,
		UserDirectories:   ResolveUserDirectories(),
	})
}

// CloneCommandBuilder assembles the clone command.
type CloneCommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  gitrepo.GitExecutor
	StateStore                   StateStore
	PathResolver                 PathResolver
	HomeDirectory                string
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CloneCommandConfiguration
}

// Build constructs the clone command.
func (builder *CloneCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     cloneCommandUseConstant,
		Short:   cloneCommandShortDescriptionConstant,
		Long:    cloneCommandLongDescriptionConstant,
		Example: cloneCommandExampleConstant,
		Args:    cobra.RangeArgs(1, 2),
		RunE:    builder.run,
	}
	return command, nil
}

func (builder *CloneCommandBuilder) run(command *cobra.Command, arguments []string) error {
	logger := resolveLogger(builder.LoggerProvider)

	service, serviceError := builder.buildService(logger)
	if serviceError != nil {
		return serviceError
	}

	remoteURL := arguments[0]
	requestedDestination := ""
	if len(arguments) > 1 {
		requestedDestination = arguments[1]
	}

	resolvedDestination, cloneError := service.Clone(command.Context(), remoteURL, requestedDestination)
	if cloneError != nil {
		return cloneError
	}

	fmt.Fprintf(command.OutOrStdout(), cloneSuccessMessageTemplateConstant, resolvedDestination)
	return nil
}

func (builder *CloneCommandBuilder) buildService(logger *zap.Logger) (*CloneService, error) {
	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, resolveHumanReadableLogging(builder.HumanReadableLoggingProvider))
	if executorError != nil {
		return nil, executorError
	}

	repositoryManager, managerError := dependencies.ResolveRepositoryManager(nil, gitExecutor)
	if managerError != nil {
		return nil, managerError
	}

	stateStore, storeError := resolveStateStore(builder.StateStore)
	if storeError != nil {
		return nil, storeError
	}

	pathResolver := builder.PathResolver
	if pathResolver == nil {
		pathResolver = dependencies.ResolvePathResolver(nil)
	}

	homeDirectory := dependencies.ResolveHomeDirectory(builder.HomeDirectory)

	configuration := DefaultCloneCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	return NewCloneService(CloneServiceDependencies{
		RepositoryManager: repositoryManager,
		StateStore:        stateStore,
		PathResolver:      pathResolver,
		HomeDirectory:     homeDirectory,
		UserDirectories:   ResolveUserDirectories(),
		Configuration:     configuration,
	})
}

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func resolveHumanReadableLogging(provider func() bool) bool {
	if provider == nil {
		return false
	}
	return provider()
}

func resolveStateStore(existing StateStore) (StateStore, error) {
	if existing != nil {
		return existing, nil
	}
	return dependencies.ResolveStateStore(nil)
}
