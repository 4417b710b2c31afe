package setup

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/dotfiles/internal/gitrepo"
)

const (
	backupBranchNameConstant         = "backup-before-clone"
	backupCommitMessageConstant      = "backup of pre-existing dotfiles"
	headReferenceConstant            = "HEAD"
	trackedIgnoreFileNameConstant    = ".gitignore"
	trackedAttributesFileName        = ".gitattributes"
	remoteURLRequiredMessageConstant = "remote url must be provided"
)

// ErrRemoteURLRequired indicates the clone remote URL was empty.
var ErrRemoteURLRequired = errors.New(remoteURLRequiredMessageConstant)

// CloneServiceDependencies enumerates collaborators required by the clone service.
type CloneServiceDependencies struct {
	RepositoryManager RepositoryManager
	StateStore        StateStore
	PathResolver      PathResolver
	ControlFiles      ControlFilesFactory
	HomeDirectory     string
	UserDirectories   []string
	Configuration     CloneCommandConfiguration
}

// CloneService clones an existing dotfiles repository and materializes it
// over the home directory, snapshotting any pre-existing files first.
type CloneService struct {
	repositoryManager   RepositoryManager
	stateStore          StateStore
	pathResolver        PathResolver
	controlFilesFactory ControlFilesFactory
	homeDirectory       string
	userDirectories     []string
	configuration       CloneCommandConfiguration
}

// NewCloneService constructs a CloneService from the provided dependencies.
func NewCloneService(dependencies CloneServiceDependencies) (*CloneService, error) {
	if dependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	if dependencies.StateStore == nil {
		return nil, ErrStateStoreNotConfigured
	}
	if dependencies.PathResolver == nil {
		return nil, ErrPathResolverNotConfigured
	}
	if len(strings.TrimSpace(dependencies.HomeDirectory)) == 0 {
		return nil, ErrHomeDirectoryNotConfigured
	}

	controlFilesFactory := dependencies.ControlFiles
	if controlFilesFactory == nil {
		controlFilesFactory = DefaultControlFilesFactory
	}

	return &CloneService{
		repositoryManager:   dependencies.RepositoryManager,
		stateStore:          dependencies.StateStore,
		pathResolver:        dependencies.PathResolver,
		controlFilesFactory: controlFilesFactory,
		homeDirectory:       dependencies.HomeDirectory,
		userDirectories:     dependencies.UserDirectories,
		configuration:       dependencies.Configuration.Sanitize(),
	}, nil
}

// Clone clones remoteURL into requestedDestination (default from
// configuration), configures the repository, snapshots pre-existing home
// files on a backup branch, and checks the original branch back out. Returns
// the resolved destination path.
func (service *CloneService) Clone(executionContext context.Context, remoteURL string, requestedDestination string) (string, error) {
	trimmedRemoteURL := strings.TrimSpace(remoteURL)
	if len(trimmedRemoteURL) == 0 {
		return "", ErrRemoteURLRequired
	}

	destinationCandidate := strings.TrimSpace(requestedDestination)
	if len(destinationCandidate) == 0 {
		destinationCandidate = service.configuration.Destination
	}

	resolvedDestination, resolutionError := service.pathResolver.Resolve(destinationCandidate)
	if resolutionError != nil {
		return "", resolutionError
	}

	if cloneError := service.repositoryManager.CloneRepository(executionContext, trimmedRemoteURL, resolvedDestination); cloneError != nil {
		return "", &CloneError{RemoteURL: trimmedRemoteURL, Cause: cloneError}
	}

	if saveError := service.stateStore.Save(resolvedDestination); saveError != nil {
		return "", saveError
	}

	controlFiles := service.controlFilesFactory(resolvedDestination)
	if configurationError := configureRepository(executionContext, service.repositoryManager, controlFiles, resolvedDestination, service.homeDirectory, service.userDirectories); configurationError != nil {
		return "", configurationError
	}

	service.importTrackedControlFiles(executionContext, controlFiles, resolvedDestination)

	if resetError := service.repositoryManager.ResetIndex(executionContext, resolvedDestination, service.homeDirectory); resetError != nil {
		return "", resetError
	}

	originalBranch, branchError := service.repositoryManager.CurrentBranch(executionContext, resolvedDestination)
	if branchError != nil {
		return "", branchError
	}

	if backupError := service.repositoryManager.CreateBranch(executionContext, resolvedDestination, service.homeDirectory, backupBranchNameConstant); backupError != nil {
		return "", backupError
	}

	// The snapshot commit is best effort: with no pre-existing tracked
	// files there is nothing to stage and git commit exits nonzero.
	if stageError := service.repositoryManager.StageModifications(executionContext, resolvedDestination, service.homeDirectory); stageError == nil {
		_ = service.repositoryManager.CreateCommit(executionContext, resolvedDestination, service.homeDirectory, backupCommitMessageConstant)
	}

	if checkoutError := service.repositoryManager.CheckoutBranch(executionContext, resolvedDestination, service.homeDirectory, originalBranch); checkoutError != nil {
		return "", &CheckoutError{BranchName: originalBranch, Cause: checkoutError}
	}

	return resolvedDestination, nil
}

// importTrackedControlFiles overwrites the generated exclude and attributes
// files with the versions tracked in the cloned history. Missing tracked
// files are silently skipped.
func (service *CloneService) importTrackedControlFiles(executionContext context.Context, controlFiles ControlFileWriter, repositoryPath string) {
	if ignoreContent, showError := service.repositoryManager.ShowTrackedFile(executionContext, repositoryPath, headReferenceConstant, trackedIgnoreFileNameConstant); showError == nil {
		_ = controlFiles.WriteContent(gitrepo.ControlFileExclude, ignoreContent)
	}
	if attributesContent, showError := service.repositoryManager.ShowTrackedFile(executionContext, repositoryPath, headReferenceConstant, trackedAttributesFileName); showError == nil {
		_ = controlFiles.WriteContent(gitrepo.ControlFileAttributes, attributesContent)
	}
}
