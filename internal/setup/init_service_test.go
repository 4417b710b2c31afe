package setup_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/dotfiles/internal/gitrepo"
	"github.com/temirov/dotfiles/internal/setup"
)

const (
	testInitSuccessCaseNameConstant     = "initializes_configures_and_persists"
	testInitDefaultPathCaseNameConstant = "default_path_is_current_directory"
	testInitFailureCaseNameConstant     = "init_failure_wraps_path"
	testInitNoRollbackCaseNameConstant  = "configuration_failure_keeps_saved_state"
	testInitRequestedPathValueConstant  = "/home/user/.dotfiles"
	testInitResolvedPathValueConstant   = "/resolved/home/user/.dotfiles"
	testInitResolvedDefaultPathConstant = "/resolved/."
)

func newInitService(testInstance *testing.T, manager *fakeRepositoryManager, store *fakeStateStore, controlFiles *fakeControlFiles) *setup.InitService {
	testInstance.Helper()
	service, creationError := setup.NewInitService(setup.InitServiceDependencies{
		RepositoryManager: manager,
		StateStore:        store,
		PathResolver:      &fakePathResolver{},
		ControlFiles:      controlFilesFactoryFor(controlFiles),
		HomeDirectory:     fakeHomeDirectoryConstant,
		UserDirectories:   []string{fakeHomeDirectoryConstant + "/Downloads"},
	})
	require.NoError(testInstance, creationError)
	return service
}

func TestInitServiceInitialize(testInstance *testing.T) {
	testInstance.Run(testInitSuccessCaseNameConstant, func(subtest *testing.T) {
		manager := newFakeRepositoryManager()
		store := &fakeStateStore{}
		controlFiles := newFakeControlFiles()
		service := newInitService(subtest, manager, store, controlFiles)

		resolvedPath, initializationError := service.Initialize(context.Background(), testInitRequestedPathValueConstant)

		require.NoError(subtest, initializationError)
		require.Equal(subtest, testInitResolvedPathValueConstant, resolvedPath)
		require.Equal(subtest, []string{testInitResolvedPathValueConstant}, store.savedPaths)

		require.Equal(subtest, "false", manager.configurations["core.bare"])
		require.Equal(subtest, fakeHomeDirectoryConstant, manager.configurations["core.worktree"])
		require.Equal(subtest, "true", manager.configurations["core.sparseCheckout"])
		require.Equal(subtest, "no", manager.configurations["status.showUntrackedFiles"])

		require.Equal(subtest, setup.SparseCheckoutPatterns(), controlFiles.writtenLines[gitrepo.ControlFileSparseCheckout])
		require.Contains(subtest, controlFiles.writtenLines[gitrepo.ControlFileExclude], "Downloads/")
		require.Equal(subtest, "init "+testInitResolvedPathValueConstant, manager.operationLog[0])
	})

	testInstance.Run(testInitDefaultPathCaseNameConstant, func(subtest *testing.T) {
		manager := newFakeRepositoryManager()
		store := &fakeStateStore{}
		service := newInitService(subtest, manager, store, newFakeControlFiles())

		resolvedPath, initializationError := service.Initialize(context.Background(), "  ")

		require.NoError(subtest, initializationError)
		require.Equal(subtest, testInitResolvedDefaultPathConstant, resolvedPath)
	})

	testInstance.Run(testInitFailureCaseNameConstant, func(subtest *testing.T) {
		manager := newFakeRepositoryManager()
		manager.initializeError = gitrepo.ErrRepositoryPathRequired
		store := &fakeStateStore{}
		service := newInitService(subtest, manager, store, newFakeControlFiles())

		_, initializationError := service.Initialize(context.Background(), testInitRequestedPathValueConstant)

		require.Error(subtest, initializationError)
		initFailure := &setup.InitError{}
		require.ErrorAs(subtest, initializationError, &initFailure)
		require.Equal(subtest, testInitResolvedPathValueConstant, initFailure.Path)
		require.Empty(subtest, store.savedPaths)
	})

	testInstance.Run(testInitNoRollbackCaseNameConstant, func(subtest *testing.T) {
		manager := newFakeRepositoryManager()
		manager.configurationError = gitrepo.ErrRepositoryPathRequired
		store := &fakeStateStore{}
		service := newInitService(subtest, manager, store, newFakeControlFiles())

		_, initializationError := service.Initialize(context.Background(), testInitRequestedPathValueConstant)

		require.Error(subtest, initializationError)
		require.Equal(subtest, []string{testInitResolvedPathValueConstant}, store.savedPaths)
	})
}

func TestNewInitServiceValidatesDependencies(testInstance *testing.T) {
	baseDependencies := func() setup.InitServiceDependencies {
		return setup.InitServiceDependencies{
			RepositoryManager: newFakeRepositoryManager(),
			StateStore:        &fakeStateStore{},
			PathResolver:      &fakePathResolver{},
			HomeDirectory:     fakeHomeDirectoryConstant,
		}
	}

	testCases := []struct {
		name          string
		mutate        func(dependencies *setup.InitServiceDependencies)
		expectedError error
	}{
		{
			name:          "missing_repository_manager",
			mutate:        func(dependencies *setup.InitServiceDependencies) { dependencies.RepositoryManager = nil },
			expectedError: setup.ErrRepositoryManagerNotConfigured,
		},
		{
			name:          "missing_state_store",
			mutate:        func(dependencies *setup.InitServiceDependencies) { dependencies.StateStore = nil },
			expectedError: setup.ErrStateStoreNotConfigured,
		},
		{
			name:          "missing_path_resolver",
			mutate:        func(dependencies *setup.InitServiceDependencies) { dependencies.PathResolver = nil },
			expectedError: setup.ErrPathResolverNotConfigured,
		},
		{
			name:          "missing_home_directory",
			mutate:        func(dependencies *setup.InitServiceDependencies) { dependencies.HomeDirectory = " " },
			expectedError: setup.ErrHomeDirectoryNotConfigured,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			serviceDependencies := baseDependencies()
			testCase.mutate(&serviceDependencies)

			service, creationError := setup.NewInitService(serviceDependencies)

			require.ErrorIs(subtest, creationError, testCase.expectedError)
			require.Nil(subtest, service)
		})
	}
}
