package infofiles

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/dotfiles/internal/gitrepo"
)

const (
	gitManagerMissingMessageConstant     = "git manager not configured"
	controlFilesMissingMessageConstant   = "control files accessor not configured"
	editorLauncherMissingMessageConstant = "editor launcher not configured"
	repositoryPathMissingMessageConstant = "repository path not configured"
	homeDirectoryMissingMessageConstant  = "home directory not configured"
)

// Sentinel errors for service construction.
var (
	ErrGitManagerNotConfigured     = errors.New(gitManagerMissingMessageConstant)
	ErrControlFilesNotConfigured   = errors.New(controlFilesMissingMessageConstant)
	ErrEditorLauncherNotConfigured = errors.New(editorLauncherMissingMessageConstant)
	ErrRepositoryPathNotConfigured = errors.New(repositoryPathMissingMessageConstant)
	ErrHomeDirectoryNotConfigured  = errors.New(homeDirectoryMissingMessageConstant)
)

// Target pairs a control file with the tracked name it is staged under.
type Target struct {
	ControlFile     gitrepo.ControlFileName
	TrackedFileName string
}

// Targets for the ignore and attributes commands. The tracked name never
// materializes in the working tree; the control file is the editable surface.
var (
	IgnoreTarget     = Target{ControlFile: gitrepo.ControlFileExclude, TrackedFileName: ".gitignore"}
	AttributesTarget = Target{ControlFile: gitrepo.ControlFileAttributes, TrackedFileName: ".gitattributes"}
)

// GitManager captures the git operations needed to stage a control file.
type GitManager interface {
	HashObject(executionContext context.Context, repositoryPath string, filePath string) (string, error)
	StageBlob(executionContext context.Context, repositoryPath string, objectHash string, trackedFileName string) error
	CheckoutWorkingTree(executionContext context.Context, repositoryPath string, workTreeDirectory string) error
}

// ControlFileAccessor reads locations of and appends to control files.
type ControlFileAccessor interface {
	Path(fileName gitrepo.ControlFileName) string
	AppendLines(fileName gitrepo.ControlFileName, lines []string) error
}

// EditorLauncher opens a file in the user's editor and blocks until it closes.
type EditorLauncher interface {
	Edit(executionContext context.Context, filePath string) error
}

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	GitManager     GitManager
	ControlFiles   ControlFileAccessor
	EditorLauncher EditorLauncher
	RepositoryPath string
	HomeDirectory  string
}

// Service edits a control file and restages it under its tracked name.
type Service struct {
	gitManager     GitManager
	controlFiles   ControlFileAccessor
	editorLauncher EditorLauncher
	repositoryPath string
	homeDirectory  string
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.GitManager == nil {
		return nil, ErrGitManagerNotConfigured
	}
	if dependencies.ControlFiles == nil {
		return nil, ErrControlFilesNotConfigured
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
		controlFiles:   dependencies.ControlFiles,
		editorLauncher: dependencies.EditorLauncher,
		repositoryPath: dependencies.RepositoryPath,
		homeDirectory:  dependencies.HomeDirectory,
	}, nil
}

// Update modifies the target's control file and restages it. Without
// patterns the control file opens in the editor; with patterns each one is
// appended as a new line, order preserved. Afterwards the control file is
// hashed into the object database, staged under the tracked name, and the
// working tree reconciled.
func (service *Service) Update(executionContext context.Context, target Target, patterns []string) error {
	controlFilePath := service.controlFiles.Path(target.ControlFile)

	if len(patterns) == 0 {
		if editError := service.editorLauncher.Edit(executionContext, controlFilePath); editError != nil {
			return editError
		}
	} else {
		if appendError := service.controlFiles.AppendLines(target.ControlFile, patterns); appendError != nil {
			return appendError
		}
	}

	objectHash, hashError := service.gitManager.HashObject(executionContext, service.repositoryPath, controlFilePath)
	if hashError != nil {
		return hashError
	}

	if stageError := service.gitManager.StageBlob(executionContext, service.repositoryPath, objectHash, target.TrackedFileName); stageError != nil {
		return stageError
	}

	return service.gitManager.CheckoutWorkingTree(executionContext, service.repositoryPath, service.homeDirectory)
}
