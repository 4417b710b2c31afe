package infofiles

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/dotfiles/internal/dependencies"
	"github.com/temirov/dotfiles/internal/gitrepo"
)

const (
	ignoreCommandUseConstant              = "ignore [patterns...]"
	ignoreCommandShortDescriptionConstant = "Edit or extend the ignore list"
	ignoreCommandLongDescriptionConstant  = "ignore opens the repository's exclude file in the editor, or appends the given patterns to it, then restages the result under .gitignore."
	ignoreCommandExampleConstant          = "dotfiles ignore '.ssh/' '*.pem'"
	attributesCommandUseConstant          = "attributes [patterns...]"
	attributesCommandShortDescription     = "Edit or extend the attributes file"
	attributesCommandLongDescription      = "attributes opens the repository's attributes file in the editor, or appends the given lines to it, then restages the result under .gitattributes."
	attributesCommandExampleConstant      = "dotfiles attributes '*.secret filter=crypt'"
)

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// RepositoryPathLoader reads the recorded metadata-directory path.
type RepositoryPathLoader interface {
	Load() (string, error)
}

// CommandBuilder assembles a control-file editing command for one target.
type CommandBuilder struct {
	Use                          string
	ShortDescription             string
	LongDescription              string
	Example                      string
	Target                       Target
	LoggerProvider               LoggerProvider
	GitExecutor                  gitrepo.GitExecutor
	RepositoryPathLoader         RepositoryPathLoader
	EditorLauncher               EditorLauncher
	HomeDirectory                string
	EditorCommandProvider        func() string
	HumanReadableLoggingProvider func() bool
}

// NewIgnoreCommandBuilder assembles the ignore command builder.
func NewIgnoreCommandBuilder() *CommandBuilder {
	return &CommandBuilder{
		Use:              ignoreCommandUseConstant,
		ShortDescription: ignoreCommandShortDescriptionConstant,
		LongDescription:  ignoreCommandLongDescriptionConstant,
		Example:          ignoreCommandExampleConstant,
		Target:           IgnoreTarget,
	}
}

// NewAttributesCommandBuilder assembles the attributes command builder.
func NewAttributesCommandBuilder() *CommandBuilder {
	return &CommandBuilder{
		Use:              attributesCommandUseConstant,
		ShortDescription: attributesCommandShortDescription,
		LongDescription:  attributesCommandLongDescription,
		Example:          attributesCommandExampleConstant,
		Target:           AttributesTarget,
	}
}

// Build constructs the configured cobra command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     builder.Use,
		Short:   builder.ShortDescription,
		Long:    builder.LongDescription,
		Example: builder.Example,
		Args:    cobra.ArbitraryArgs,
		RunE:    builder.run,
	}
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	logger := resolveLogger(builder.LoggerProvider)

	service, serviceError := builder.buildService(logger)
	if serviceError != nil {
		return serviceError
	}

	return service.Update(command.Context(), builder.Target, arguments)
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
		ControlFiles:   gitrepo.NewControlFiles(repositoryPath),
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
