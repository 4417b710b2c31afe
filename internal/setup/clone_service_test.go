package setup_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/dotfiles/internal/gitrepo"
	"github.com/temirov/dotfiles/internal/setup"
)

const (
	testCloneSuccessCaseNameConstant         = "clone_configures_and_snapshots"
	testCloneDefaultDestinationCaseName      = "default_destination_from_configuration"
	testCloneTrackedIgnoreCaseNameConstant   = "tracked_ignore_replaces_generated"
	testCloneMissingTrackedCaseNameConstant  = "missing_tracked_files_skipped"
	testCloneFailureCaseNameConstant         = "clone_failure_wraps_remote"
	testCloneCheckoutFailureCaseNameConstant = "final_checkout_failure_surfaces_recovery"
	testCloneEmptyRemoteCaseNameConstant     = "empty_remote_rejected"
	testCloneNoBackupCommitCaseNameConstant  = "stage_failure_skips_commit"
	testCloneDestinationValueConstant        = "/home/user/dotfiles-repo"
	testCloneResolvedDestinationConstant     = "/resolved/home/user/dotfiles-repo"
	testCloneResolvedDefaultDestination      = "/resolved/dotfiles"
	testTrackedIgnoreContentConstant         = "secret.txt\n*.key\n"
	testTrackedAttributesContentConstant     = "*.pem filter=secret\n"
)

func newCloneService(testInstance *testing.T, manager *fakeRepositoryManager, store *fakeStateStore, controlFiles *fakeControlFiles) *setup.CloneService {
	testInstance.Helper()
	service, creationError := setup.NewCloneService(setup.CloneServiceDependencies{
		RepositoryManager: manager,
		StateStore:        store,
		PathResolver:      &fakePathResolver{},
		ControlFiles:      controlFilesFactoryFor(controlFiles),
		HomeDirectory:     fakeHomeDirectoryConstant,
		Configuration:     setup.DefaultCloneCommandConfiguration(),
	})
	require.NoError(testInstance, creationError)
	return service
}

func TestCloneServiceClone(testInstance *testing.T) {
	testInstance.Run(testCloneSuccessCaseNameConstant, func(subtest *testing.T) {
		manager := newFakeRepositoryManager()
		store := &fakeStateStore{}
		controlFiles := newFakeControlFiles()
		service := newCloneService(subtest, manager, store, controlFiles)

		resolvedDestination, cloneError := service.Clone(context.Background(), fakeRemoteURLConstant, testCloneDestinationValueConstant)

		require.NoError(subtest, cloneError)
		require.Equal(subtest, testCloneResolvedDestinationConstant, resolvedDestination)
		require.Equal(subtest, []string{testCloneResolvedDestinationConstant}, store.savedPaths)
		require.Equal(subtest, setup.SparseCheckoutPatterns(), controlFiles.writtenLines[gitrepo.ControlFileSparseCheckout])

		require.Equal(subtest, []string{
			"clone " + fakeRemoteURLConstant + " " + testCloneResolvedDestinationConstant,
			"config core.bare",
			"config core.worktree",
			"config core.sparseCheckout",
			"config status.showUntrackedFiles",
			"show HEAD:.gitignore",
			"show HEAD:.gitattributes",
			"reset " + fakeHomeDirectoryConstant,
			"current-branch",
			"create-branch backup-before-clone",
			"stage",
			"commit backup of pre-existing dotfiles",
			"checkout " + fakeCurrentBranchConstant,
		}, manager.operationLog)
	})

	testInstance.Run(testCloneDefaultDestinationCaseName, func(subtest *testing.T) {
		manager := newFakeRepositoryManager()
		store := &fakeStateStore{}
		service := newCloneService(subtest, manager, store, newFakeControlFiles())

		resolvedDestination, cloneError := service.Clone(context.Background(), fakeRemoteURLConstant, "")

		require.NoError(subtest, cloneError)
		require.Equal(subtest, testCloneResolvedDefaultDestination, resolvedDestination)
	})

	testInstance.Run(testCloneTrackedIgnoreCaseNameConstant, func(subtest *testing.T) {
		manager := newFakeRepositoryManager()
		manager.trackedFiles["HEAD:.gitignore"] = testTrackedIgnoreContentConstant
		manager.trackedFiles["HEAD:.gitattributes"] = testTrackedAttributesContentConstant
		controlFiles := newFakeControlFiles()
		service := newCloneService(subtest, manager, &fakeStateStore{}, controlFiles)

		_, cloneError := service.Clone(context.Background(), fakeRemoteURLConstant, testCloneDestinationValueConstant)

		require.NoError(subtest, cloneError)
		require.Equal(subtest, testTrackedIgnoreContentConstant, controlFiles.writtenContent[gitrepo.ControlFileExclude])
		require.Equal(subtest, testTrackedAttributesContentConstant, controlFiles.writtenContent[gitrepo.ControlFileAttributes])
	})

	testInstance.Run(testCloneMissingTrackedCaseNameConstant, func(subtest *testing.T) {
		manager := newFakeRepositoryManager()
		controlFiles := newFakeControlFiles()
		service := newCloneService(subtest, manager, &fakeStateStore{}, controlFiles)

		_, cloneError := service.Clone(context.Background(), fakeRemoteURLConstant, testCloneDestinationValueConstant)

		require.NoError(subtest, cloneError)
		require.Empty(subtest, controlFiles.writtenContent)
		require.NotEmpty(subtest, controlFiles.writtenLines[gitrepo.ControlFileExclude])
	})

	testInstance.Run(testCloneFailureCaseNameConstant, func(subtest *testing.T) {
		manager := newFakeRepositoryManager()
		manager.cloneError = gitrepo.ErrRepositoryPathRequired
		store := &fakeStateStore{}
		service := newCloneService(subtest, manager, store, newFakeControlFiles())

		_, cloneError := service.Clone(context.Background(), fakeRemoteURLConstant, testCloneDestinationValueConstant)

		require.Error(subtest, cloneError)
		cloneFailure := &setup.CloneError{}
		require.ErrorAs(subtest, cloneError, &cloneFailure)
		require.Equal(subtest, fakeRemoteURLConstant, cloneFailure.RemoteURL)
		require.Empty(subtest, store.savedPaths)
	})

	testInstance.Run(testCloneCheckoutFailureCaseNameConstant, func(subtest *testing.T) {
		manager := newFakeRepositoryManager()
		manager.checkoutBranchError = gitrepo.ErrWorkTreeRequired
		store := &fakeStateStore{}
		service := newCloneService(subtest, manager, store, newFakeControlFiles())

		_, cloneError := service.Clone(context.Background(), fakeRemoteURLConstant, testCloneDestinationValueConstant)

		require.Error(subtest, cloneError)
		checkoutFailure := &setup.CheckoutError{}
		require.ErrorAs(subtest, cloneError, &checkoutFailure)
		require.Equal(subtest, fakeCurrentBranchConstant, checkoutFailure.BranchName)
		require.Contains(subtest, cloneError.Error(), "manually")
		require.Equal(subtest, []string{testCloneResolvedDestinationConstant}, store.savedPaths)
	})

	testInstance.Run(testCloneNoBackupCommitCaseNameConstant, func(subtest *testing.T) {
		manager := newFakeRepositoryManager()
		manager.stageError = gitrepo.ErrWorkTreeRequired
		service := newCloneService(subtest, manager, &fakeStateStore{}, newFakeControlFiles())

		_, cloneError := service.Clone(context.Background(), fakeRemoteURLConstant, testCloneDestinationValueConstant)

		require.NoError(subtest, cloneError)
		require.NotContains(subtest, manager.operationLog, "commit backup of pre-existing dotfiles")
		require.Equal(subtest, []string{fakeCurrentBranchConstant}, manager.checkedOutBranchNames)
	})

	testInstance.Run(testCloneEmptyRemoteCaseNameConstant, func(subtest *testing.T) {
		service := newCloneService(subtest, newFakeRepositoryManager(), &fakeStateStore{}, newFakeControlFiles())

		_, cloneError := service.Clone(context.Background(), "  ", testCloneDestinationValueConstant)

		require.ErrorIs(subtest, cloneError, setup.ErrRemoteURLRequired)
	})
}
