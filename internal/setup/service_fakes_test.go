package setup_test

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/dotfiles/internal/gitrepo"
	"github.com/temirov/dotfiles/internal/setup"
)

const (
	fakeHomeDirectoryConstant     = "/home/user"
	fakeRepositoryPathConstant    = "/home/user/.dotfiles"
	fakeRemoteURLConstant         = "git@example.com:user/dotfiles.git"
	fakeCurrentBranchConstant     = "main"
	fakeResolvedPrefixConstant    = "/resolved"
	missingTrackedFileMessageFake = "path does not exist"
)

// fakeRepositoryManager records operations in call order and serves canned
// tracked-file content.
type fakeRepositoryManager struct {
	operationLog          []string
	configurations        map[string]string
	trackedFiles          map[string]string
	currentBranch         string
	initializeError       error
	cloneError            error
	resetError            error
	currentBranchError    error
	createBranchError     error
	stageError            error
	commitError           error
	checkoutBranchError   error
	configurationError    error
	checkedOutBranchNames []string
}

func newFakeRepositoryManager() *fakeRepositoryManager {
	return &fakeRepositoryManager{
		configurations: map[string]string{},
		trackedFiles:   map[string]string{},
		currentBranch:  fakeCurrentBranchConstant,
	}
}

func (manager *fakeRepositoryManager) record(format string, values ...any) {
	manager.operationLog = append(manager.operationLog, fmt.Sprintf(format, values...))
}

func (manager *fakeRepositoryManager) InitializeRepository(_ context.Context, repositoryPath string) error {
	manager.record("init %s", repositoryPath)
	return manager.initializeError
}

func (manager *fakeRepositoryManager) CloneRepository(_ context.Context, remoteURL string, destinationPath string) error {
	manager.record("clone %s %s", remoteURL, destinationPath)
	return manager.cloneError
}

func (manager *fakeRepositoryManager) SetLocalConfiguration(_ context.Context, _ string, configurationKey string, configurationValue string) error {
	manager.record("config %s", configurationKey)
	if manager.configurationError != nil {
		return manager.configurationError
	}
	manager.configurations[configurationKey] = configurationValue
	return nil
}

func (manager *fakeRepositoryManager) ShowTrackedFile(_ context.Context, _ string, reference string, trackedFilePath string) (string, error) {
	manager.record("show %s:%s", reference, trackedFilePath)
	content, exists := manager.trackedFiles[reference+":"+trackedFilePath]
	if !exists {
		return "", errors.New(missingTrackedFileMessageFake)
	}
	return content, nil
}

func (manager *fakeRepositoryManager) ResetIndex(_ context.Context, _ string, workTreeDirectory string) error {
	manager.record("reset %s", workTreeDirectory)
	return manager.resetError
}

func (manager *fakeRepositoryManager) CurrentBranch(_ context.Context, _ string) (string, error) {
	manager.record("current-branch")
	if manager.currentBranchError != nil {
		return "", manager.currentBranchError
	}
	return manager.currentBranch, nil
}

func (manager *fakeRepositoryManager) CreateBranch(_ context.Context, _ string, _ string, branchName string) error {
	manager.record("create-branch %s", branchName)
	return manager.createBranchError
}

func (manager *fakeRepositoryManager) CheckoutBranch(_ context.Context, _ string, _ string, branchName string) error {
	manager.record("checkout %s", branchName)
	if manager.checkoutBranchError != nil {
		return manager.checkoutBranchError
	}
	manager.checkedOutBranchNames = append(manager.checkedOutBranchNames, branchName)
	return nil
}

func (manager *fakeRepositoryManager) StageModifications(_ context.Context, _ string, _ string) error {
	manager.record("stage")
	return manager.stageError
}

func (manager *fakeRepositoryManager) CreateCommit(_ context.Context, _ string, _ string, commitMessage string) error {
	manager.record("commit %s", commitMessage)
	return manager.commitError
}

// fakeStateStore records saved repository paths.
type fakeStateStore struct {
	savedPaths []string
	saveError  error
}

func (store *fakeStateStore) Save(repositoryPath string) error {
	if store.saveError != nil {
		return store.saveError
	}
	store.savedPaths = append(store.savedPaths, repositoryPath)
	return nil
}

// fakePathResolver prefixes candidate paths to make resolution observable.
type fakePathResolver struct {
	resolutionError error
}

func (resolver *fakePathResolver) Resolve(candidatePath string) (string, error) {
	if resolver.resolutionError != nil {
		return "", resolver.resolutionError
	}
	if strings.HasPrefix(candidatePath, "/") {
		return fakeResolvedPrefixConstant + candidatePath, nil
	}
	return fakeResolvedPrefixConstant + "/" + candidatePath, nil
}

// fakeControlFiles records control file writes in order.
type fakeControlFiles struct {
	writtenLines   map[gitrepo.ControlFileName][]string
	writtenContent map[gitrepo.ControlFileName]string
	writeError     error
}

func newFakeControlFiles() *fakeControlFiles {
	return &fakeControlFiles{
		writtenLines:   map[gitrepo.ControlFileName][]string{},
		writtenContent: map[gitrepo.ControlFileName]string{},
	}
}

func (controlFiles *fakeControlFiles) WriteLines(fileName gitrepo.ControlFileName, lines []string) error {
	if controlFiles.writeError != nil {
		return controlFiles.writeError
	}
	controlFiles.writtenLines[fileName] = append([]string{}, lines...)
	return nil
}

func (controlFiles *fakeControlFiles) WriteContent(fileName gitrepo.ControlFileName, content string) error {
	if controlFiles.writeError != nil {
		return controlFiles.writeError
	}
	controlFiles.writtenContent[fileName] = content
	return nil
}

func controlFilesFactoryFor(controlFiles *fakeControlFiles) setup.ControlFilesFactory {
	return func(string) setup.ControlFileWriter {
		return controlFiles
	}
}
