package setup

import (
	"context"
	"strings"
)

const (
	defaultInitPathConstant = "."
)

// InitServiceDependencies enumerates collaborators required by the init service.
type InitServiceDependencies struct {
	RepositoryManager RepositoryManager
	StateStore        StateStore
	PathResolver      PathResolver
	ControlFiles      ControlFilesFactory
	HomeDirectory     string
	UserDirectories   []string
}

// InitService creates and configures a fresh metadata directory.
type InitService struct {
	repositoryManager   RepositoryManager
	stateStore          StateStore
	pathResolver        PathResolver
	controlFilesFactory ControlFilesFactory
	homeDirectory       string
	userDirectories     []string
}

// NewInitService constructs an InitService from the provided dependencies.
func NewInitService(dependencies InitServiceDependencies) (*InitService, error) {
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

	return &InitService{
		repositoryManager:   dependencies.RepositoryManager,
		stateStore:          dependencies.StateStore,
		pathResolver:        dependencies.PathResolver,
		controlFilesFactory: controlFilesFactory,
		homeDirectory:       dependencies.HomeDirectory,
		userDirectories:     dependencies.UserDirectories,
	}, nil
}

// Initialize creates a bare repository at requestedPath, records it in the
// state store, and applies the repository configuration. Partial failures are
// not rolled back. Returns the resolved repository path.
func (service *InitService) Initialize(executionContext context.Context, requestedPath string) (string, error) {
	candidatePath := strings.TrimSpace(requestedPath)
	if len(candidatePath) == 0 {
		candidatePath = defaultInitPathConstant
	}

	resolvedPath, resolutionError := service.pathResolver.Resolve(candidatePath)
	if resolutionError != nil {
		return "", resolutionError
	}

	if initializationError := service.repositoryManager.InitializeRepository(executionContext, resolvedPath); initializationError != nil {
		return "", &InitError{Path: resolvedPath, Cause: initializationError}
	}

	if saveError := service.stateStore.Save(resolvedPath); saveError != nil {
		return "", saveError
	}

	controlFiles := service.controlFilesFactory(resolvedPath)
	if configurationError := configureRepository(executionContext, service.repositoryManager, controlFiles, resolvedPath, service.homeDirectory, service.userDirectories); configurationError != nil {
		return "", configurationError
	}

	return resolvedPath, nil
}
