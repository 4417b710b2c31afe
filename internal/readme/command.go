package readme

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/dotfiles/internal/dependencies"
	"github.com/temirov/dotfiles/internal/gitrepo"
)

const (
	commandUseConstant              = "readme"
	commandShortDescriptionConstant = "Edit the repository README"
	commandLongDescriptionConstant  = "readme extracts the tracked README.md into a scratch file, opens it in the editor, and stages the edited copy back without materializing it in the home directory."
	commandExampleConstant          = "dotfiles readme"
)

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// RepositoryPathLoader reads the recorded metadata-directory path.
type RepositoryPathLoader interface {
	Load() (string, error)
}

// CommandBuilder assembles the readme command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  gitrepo.GitExecutor
	RepositoryPathLoader         RepositoryPathLoader
	EditorLauncher               EditorLauncher
	HomeDirectory                string
	EditorCommandProvider        func() string
	HumanReadableLoggingProvider func() bool
}

// Build constructs the readme command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUseConstant,
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Example: commandExampleConstant,
		Args:    cobra.NoArgs,
		RunE:    builder.run,
	}
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	logger := resolveLogger(builder.LoggerProvider)

	service, serviceError := builder.buildService(logger)
	if serviceError != nil {
		return serviceError
	}

	return service.Edit(command.Context())
}

func (builder *CommandBuilder) buildService(logger *zap.Logger) (*Service, error) {
	repositoryPath, loadError := builder.loadRepositoryPath()
	if loadError != nil {
		return nil, loadError
	}

	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, humanReadableLogging)
	if executorError != nil {
		return nil, executorError
	}

	repositoryManager, managerError := dependencies.ResolveRepositoryManager(nil, gitExecutor)
	if managerError != nil {
		return nil, managerError
	}

	editorLauncher := builder.EditorLauncher
	if editorLauncher == nil {
		editorCommand := ""
		if builder.EditorCommandProvider != nil {
			editorCommand = builder.EditorCommandProvider()
		}
		resolvedLauncher, launcherError := dependencies.ResolveEditorLauncher(nil, logger, editorCommand)
		if launcherError != nil {
			return nil, launcherError
		}
		editorLauncher = resolvedLauncher
	}

	return NewService(ServiceDependencies{
		GitManager:     repositoryManager,
		EditorLauncher: editorLauncher,
		RepositoryPath: repositoryPath,
		HomeDirectory:  dependencies.ResolveHomeDirectory(builder.HomeDirectory),
	})
}

func (builder *CommandBuilder) loadRepositoryPath() (string, error) {
	loader := builder.RepositoryPathLoader
	if loader == nil {
		store, storeError := dependencies.ResolveStateStore(nil)
		if storeError != nil {
			return "", storeError
		}
		loader = store
	}
	return loader.Load()
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
