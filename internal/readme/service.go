package readme

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	readmeFileNameConstant               = "README.md"
	headReferenceConstant                = "HEAD"
	scratchDirectoryPatternConstant      = "dotfiles-readme-*"
	scratchFilePermissionsConstant       = 0o600
	gitManagerMissingMessageConstant     = "git manager not configured"
	editorLauncherMissingMessageConstant = "editor launcher not configured"
	repositoryPathMissingMessageConstant = "repository path not configured"
	homeDirectoryMissingMessageConstant  = "home directory not configured"
	scratchErrorTemplateConstant         = "unable to prepare scratch copy of %s: %w"
)

// Sentinel errors for service construction.
var (
	ErrGitManagerNotConfigured     = errors.New(gitManagerMissingMessageConstant)
	ErrEditorLauncherNotConfigured = errors.New(editorLauncherMissingMessageConstant)
	ErrRepositoryPathNotConfigured = errors.New(repositoryPathMissingMessageConstant)
	ErrHomeDirectoryNotConfigured  = errors.New(homeDirectoryMissingMessageConstant)
)

// GitManager captures the git operations needed to edit the tracked README.
type GitManager interface {
	ShowTrackedFile(executionContext context.Context, repositoryPath string, reference string, trackedFilePath string) (string, error)
	HashObject(executionContext context.Context, repositoryPath string, filePath string) (string, error)
	StageBlob(executionContext context.Context, repositoryPath string, objectHash string, trackedFileName string) error
	CheckoutWorkingTree(executionContext context.Context, repositoryPath string, workTreeDirectory string) error
}

// EditorLauncher opens a file in the user's editor and blocks until it closes.
type EditorLauncher interface {
	Edit(executionContext context.Context, filePath string) error
}

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	GitManager     GitManager
	EditorLauncher EditorLauncher
	RepositoryPath string
	HomeDirectory  string
}

// Service edits the tracked README without ever materializing it in the
// working tree: the current content is extracted into a scratch file, edited,
// and staged back under README.md.
type Service struct {
	gitManager     GitManager
	editorLauncher EditorLauncher
	repositoryPath string
	homeDirectory  string
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.GitManager == nil {
		return nil, ErrGitManagerNotConfigured
	}
	if dependencies.EditorLauncher == nil {
		return nil, ErrEditorLauncherNotConfigured
	}
	if len(strings.TrimSpace(dependencies.RepositoryPath)) == 0 {
		return nil, ErrRepositoryPathNotConfigured
	}
	if len(strings.TrimSpace(dependencies.HomeDirectory)) == 0 {
		return nil, ErrHomeDirectoryNotConfigured
	}

	return &Service{
		gitManager:     dependencies.GitManager,
		editorLauncher: dependencies.EditorLauncher,
		repositoryPath: dependencies.RepositoryPath,
		homeDirectory:  dependencies.HomeDirectory,
	}, nil
}

// Edit extracts the tracked README into a scratch file, opens the editor, and
// stages the edited copy back under README.md. The scratch directory is
// removed unconditionally.
func (service *Service) Edit(executionContext context.Context) error {
	// A README may not exist yet; start from empty content.
	readmeContent, showError := service.gitManager.ShowTrackedFile(executionContext, service.repositoryPath, headReferenceConstant, readmeFileNameConstant)
	if showError != nil {
		readmeContent = ""
	}

	scratchDirectory, scratchError := os.MkdirTemp("", scratchDirectoryPatternConstant)
	if scratchError != nil {
		return fmt.Errorf(scratchErrorTemplateConstant, readmeFileNameConstant, scratchError)
	}
	defer os.RemoveAll(scratchDirectory)

	scratchFilePath := filepath.Join(scratchDirectory, readmeFileNameConstant)
	if writeError := os.WriteFile(scratchFilePath, []byte(readmeContent), scratchFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(scratchErrorTemplateConstant, readmeFileNameConstant, writeError)
	}

	if editError := service.editorLauncher.Edit(executionContext, scratchFilePath); editError != nil {
		return editError
	}

	objectHash, hashError := service.gitManager.HashObject(executionContext, service.repositoryPath, scratchFilePath)
	if hashError != nil {
		return hashError
	}

	if stageError := service.gitManager.StageBlob(executionContext, service.repositoryPath, objectHash, readmeFileNameConstant); stageError != nil {
		return stageError
	}

	return service.gitManager.CheckoutWorkingTree(executionContext, service.repositoryPath, service.homeDirectory)
}
