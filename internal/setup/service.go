package setup

import (
	"context"
	"errors"
	"fmt"

	"github.com/temirov/dotfiles/internal/gitrepo"
)

const (
	coreBareConfigurationKeyConstant           = "core.bare"
	coreBareConfigurationValueConstant         = "false"
	coreWorkTreeConfigurationKeyConstant       = "core.worktree"
	coreSparseCheckoutConfigurationKeyConstant = "core.sparseCheckout"
	coreSparseCheckoutConfigurationValue       = "true"
	showUntrackedConfigurationKeyConstant      = "status.showUntrackedFiles"
	showUntrackedConfigurationValueConstant    = "no"
	repositoryManagerMissingMessageConstant    = "repository manager not configured"
	stateStoreMissingMessageConstant           = "state store not configured"
	pathResolverMissingMessageConstant         = "path resolver not configured"
	homeDirectoryMissingMessageConstant        = "home directory not configured"
	initErrorTemplateConstant                  = "unable to initialize repository at %s: %v"
	cloneErrorTemplateConstant                 = "unable to clone %s: %v"
	checkoutErrorTemplateConstant              = "unable to check out branch %s: %v; the repository is configured and the backup commit exists, switch branches manually with: dotfiles checkout %s"
)

// Sentinel errors for service construction.
var (
	ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)
	ErrStateStoreNotConfigured        = errors.New(stateStoreMissingMessageConstant)
	ErrPathResolverNotConfigured      = errors.New(pathResolverMissingMessageConstant)
	ErrHomeDirectoryNotConfigured     = errors.New(homeDirectoryMissingMessageConstant)
)

// InitError reports a failed repository initialization.
type InitError struct {
	Path  string
	Cause error
}

// Error describes the failed initialization.
func (initError *InitError) Error() string {
	return fmt.Sprintf(initErrorTemplateConstant, initError.Path, initError.Cause)
}

// Unwrap exposes the underlying cause.
func (initError *InitError) Unwrap() error {
	return initError.Cause
}

// CloneError reports a failed repository clone.
type CloneError struct {
	RemoteURL string
	Cause     error
}

// Error describes the failed clone.
func (cloneError *CloneError) Error() string {
	return fmt.Sprintf(cloneErrorTemplateConstant, cloneError.RemoteURL, cloneError.Cause)
}

// Unwrap exposes the underlying cause.
func (cloneError *CloneError) Unwrap() error {
	return cloneError.Cause
}

// CheckoutError reports a failed final branch switch after a clone. The
// message includes the manual recovery instruction.
type CheckoutError struct {
	BranchName string
	Cause      error
}

// Error describes the failed checkout and how to recover.
func (checkoutError *CheckoutError) Error() string {
	return fmt.Sprintf(checkoutErrorTemplateConstant, checkoutError.BranchName, checkoutError.Cause, checkoutError.BranchName)
}

// Unwrap exposes the underlying cause.
func (checkoutError *CheckoutError) Unwrap() error {
	return checkoutError.Cause
}

// RepositoryManager captures the git operations the setup services perform.
type RepositoryManager interface {
	InitializeRepository(executionContext context.Context, repositoryPath string) error
	CloneRepository(executionContext context.Context, remoteURL string, destinationPath string) error
	SetLocalConfiguration(executionContext context.Context, repositoryPath string, configurationKey string, configurationValue string) error
	ShowTrackedFile(executionContext context.Context, repositoryPath string, reference string, trackedFilePath string) (string, error)
	ResetIndex(executionContext context.Context, repositoryPath string, workTreeDirectory string) error
	CurrentBranch(executionContext context.Context, repositoryPath string) (string, error)
	CreateBranch(executionContext context.Context, repositoryPath string, workTreeDirectory string, branchName string) error
	CheckoutBranch(executionContext context.Context, repositoryPath string, workTreeDirectory string, branchName string) error
	StageModifications(executionContext context.Context, repositoryPath string, workTreeDirectory string) error
	CreateCommit(executionContext context.Context, repositoryPath string, workTreeDirectory string, commitMessage string) error
}

// StateStore persists the resolved metadata-directory path.
type StateStore interface {
	Save(repositoryPath string) error
}

// PathResolver converts user-supplied paths into canonical absolute paths.
type PathResolver interface {
	Resolve(candidatePath string) (string, error)
}

// ControlFileWriter writes control files beneath a metadata directory.
type ControlFileWriter interface {
	WriteLines(fileName gitrepo.ControlFileName, lines []string) error
	WriteContent(fileName gitrepo.ControlFileName, content string) error
}

// ControlFilesFactory builds a ControlFileWriter for a metadata directory.
type ControlFilesFactory func(repositoryPath string) ControlFileWriter

// DefaultControlFilesFactory builds the filesystem-backed control file writer.
func DefaultControlFilesFactory(repositoryPath string) ControlFileWriter {
	return gitrepo.NewControlFiles(repositoryPath)
}

// configureRepository applies the four local configuration values, the fixed
// sparse-checkout pattern list, and the generated default ignore list. Shared
// by init and clone.
func configureRepository(executionContext context.Context, manager RepositoryManager, controlFiles ControlFileWriter, repositoryPath string, homeDirectory string, userDirectories []string) error {
	configurationEntries := [][2]string{
		{coreBareConfigurationKeyConstant, coreBareConfigurationValueConstant},
		{coreWorkTreeConfigurationKeyConstant, homeDirectory},
		{coreSparseCheckoutConfigurationKeyConstant, coreSparseCheckoutConfigurationValue},
		{showUntrackedConfigurationKeyConstant, showUntrackedConfigurationValueConstant},
	}
	for _, configurationEntry := range configurationEntries {
		if configurationError := manager.SetLocalConfiguration(executionContext, repositoryPath, configurationEntry[0], configurationEntry[1]); configurationError != nil {
			return configurationError
		}
	}

	if sparseError := controlFiles.WriteLines(gitrepo.ControlFileSparseCheckout, SparseCheckoutPatterns()); sparseError != nil {
		return sparseError
	}

	return controlFiles.WriteLines(gitrepo.ControlFileExclude, DefaultIgnoreLines(homeDirectory, userDirectories))
}
