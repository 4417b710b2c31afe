package dependencies

import (
	"github.com/adrg/xdg"
	"go.uber.org/zap"

	"github.com/temirov/dotfiles/internal/editor"
	"github.com/temirov/dotfiles/internal/execshell"
	"github.com/temirov/dotfiles/internal/gitrepo"
	"github.com/temirov/dotfiles/internal/state"
	"github.com/temirov/dotfiles/internal/ui"
	pathutils "github.com/temirov/dotfiles/internal/utils/path"
)

// ResolveGitExecutor returns the provided executor or constructs a
// shell-backed default capturing command output. Human-readable logging
// attaches the console event observer.
func ResolveGitExecutor(existing gitrepo.GitExecutor, logger *zap.Logger, humanReadableLogging bool) (gitrepo.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	if humanReadableLogging {
		return execshell.NewShellExecutorWithObserver(logger, commandRunner, ui.NewConsoleCommandEventLogger(logger))
	}
	return execshell.NewShellExecutor(logger, commandRunner)
}

// ResolveInteractiveExecutor constructs an executor with the terminal's
// standard streams attached, for forwarded git commands and editors.
func ResolveInteractiveExecutor(logger *zap.Logger) (*execshell.ShellExecutor, error) {
	return execshell.NewShellExecutor(logger, execshell.NewInteractiveOSCommandRunner())
}

// ResolveRepositoryManager returns the provided manager or constructs one over the executor.
func ResolveRepositoryManager(existing *gitrepo.RepositoryManager, executor gitrepo.GitExecutor) (*gitrepo.RepositoryManager, error) {
	if existing != nil {
		return existing, nil
	}
	return gitrepo.NewRepositoryManager(executor)
}

// ResolveStateStore returns the provided store or the XDG-backed default.
func ResolveStateStore(existing *state.Store) (*state.Store, error) {
	if existing != nil {
		return existing, nil
	}
	return state.NewStore()
}

// ResolvePathResolver returns the provided resolver or the OS-backed default.
func ResolvePathResolver(existing *pathutils.Resolver) *pathutils.Resolver {
	if existing != nil {
		return existing
	}
	return pathutils.NewResolver()
}

// ResolveEditorLauncher returns the provided launcher or constructs one over
// an interactive executor.
func ResolveEditorLauncher(existing *editor.Launcher, logger *zap.Logger, configuredCommand string) (*editor.Launcher, error) {
	if existing != nil {
		return existing, nil
	}

	interactiveExecutor, executorError := ResolveInteractiveExecutor(logger)
	if executorError != nil {
		return nil, executorError
	}
	return editor.NewLauncher(interactiveExecutor, configuredCommand)
}

// ResolveHomeDirectory returns the provided home directory or the XDG lookup.
func ResolveHomeDirectory(existing string) string {
	if len(existing) > 0 {
		return existing
	}
	return xdg.Home
}
