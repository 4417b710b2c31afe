package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/dotfiles/internal/execshell"
)

const (
	gitDirectoryFlagTemplateConstant      = "--git-dir=%s"
	gitInitSubcommandConstant             = "init"
	gitCloneSubcommandConstant            = "clone"
	gitConfigSubcommandConstant           = "config"
	gitShowSubcommandConstant             = "show"
	gitHashObjectSubcommandConstant       = "hash-object"
	gitUpdateIndexSubcommandConstant      = "update-index"
	gitResetSubcommandConstant            = "reset"
	gitRevParseSubcommandConstant         = "rev-parse"
	gitCheckoutSubcommandConstant         = "checkout"
	gitAddSubcommandConstant              = "add"
	gitCommitSubcommandConstant           = "commit"
	gitBareFlagConstant                   = "--bare"
	gitLocalFlagConstant                  = "--local"
	gitWriteObjectFlagConstant            = "-w"
	gitAddEntryFlagConstant               = "--add"
	gitCacheInfoFlagConstant              = "--cacheinfo"
	gitQuietFlagConstant                  = "--quiet"
	gitAbbreviatedReferenceFlagConstant   = "--abbrev-ref"
	gitHeadReferenceConstant              = "HEAD"
	gitCreateBranchFlagConstant           = "-b"
	gitUpdateFlagConstant                 = "--update"
	gitMessageFlagConstant                = "-m"
	trackedBlobFileModeConstant           = "100644"
	cacheInfoArgumentTemplateConstant     = "%s,%s,%s"
	trackedFileReferenceTemplateConstant  = "%s:%s"
	executorNotConfiguredMessageConstant  = "git executor not configured"
	repositoryPathRequiredMessageConstant = "repository path required"
	homeDirectoryRequiredMessageConstant  = "working tree directory required"
)

// Sentinel errors for repository manager construction and argument validation.
var (
	ErrExecutorNotConfigured  = errors.New(executorNotConfiguredMessageConstant)
	ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)
	ErrWorkTreeRequired       = errors.New(homeDirectoryRequiredMessageConstant)
)

// GitExecutor abstracts git invocation for repository operations.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager performs the narrow set of git operations the CLI relies
// on. Every invocation targets the metadata directory through --git-dir;
// operations that touch the working tree run with the home directory as the
// process working directory.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager with the provided executor.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// InitializeRepository creates a bare repository at repositoryPath.
func (manager *RepositoryManager) InitializeRepository(executionContext context.Context, repositoryPath string) error {
	if validationError := requirePath(repositoryPath); validationError != nil {
		return validationError
	}
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{gitInitSubcommandConstant, gitBareFlagConstant, repositoryPath},
	})
	return executionError
}

// CloneRepository clones remoteURL as a bare repository into destinationPath.
func (manager *RepositoryManager) CloneRepository(executionContext context.Context, remoteURL string, destinationPath string) error {
	if validationError := requirePath(destinationPath); validationError != nil {
		return validationError
	}
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{gitCloneSubcommandConstant, gitBareFlagConstant, remoteURL, destinationPath},
	})
	return executionError
}

// SetLocalConfiguration sets a repository-local configuration value.
func (manager *RepositoryManager) SetLocalConfiguration(executionContext context.Context, repositoryPath string, configurationKey string, configurationValue string) error {
	if validationError := requirePath(repositoryPath); validationError != nil {
		return validationError
	}
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{gitDirectoryFlag(repositoryPath), gitConfigSubcommandConstant, gitLocalFlagConstant, configurationKey, configurationValue},
	})
	return executionError
}

// ShowTrackedFile returns the content of trackedFilePath at the given reference.
func (manager *RepositoryManager) ShowTrackedFile(executionContext context.Context, repositoryPath string, reference string, trackedFilePath string) (string, error) {
	if validationError := requirePath(repositoryPath); validationError != nil {
		return "", validationError
	}
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{gitDirectoryFlag(repositoryPath), gitShowSubcommandConstant, fmt.Sprintf(trackedFileReferenceTemplateConstant, reference, trackedFilePath)},
	})
	if executionError != nil {
		return "", executionError
	}
	return executionResult.StandardOutput, nil
}

// HashObject writes filePath into the object database and returns the object hash.
func (manager *RepositoryManager) HashObject(executionContext context.Context, repositoryPath string, filePath string) (string, error) {
	if validationError := requirePath(repositoryPath); validationError != nil {
		return "", validationError
	}
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{gitDirectoryFlag(repositoryPath), gitHashObjectSubcommandConstant, gitWriteObjectFlagConstant, filePath},
	})
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// StageBlob records objectHash in the index under trackedFileName as a regular file.
func (manager *RepositoryManager) StageBlob(executionContext context.Context, repositoryPath string, objectHash string, trackedFileName string) error {
	if validationError := requirePath(repositoryPath); validationError != nil {
		return validationError
	}
	cacheInfoArgument := fmt.Sprintf(cacheInfoArgumentTemplateConstant, trackedBlobFileModeConstant, objectHash, trackedFileName)
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{gitDirectoryFlag(repositoryPath), gitUpdateIndexSubcommandConstant, gitAddEntryFlagConstant, gitCacheInfoFlagConstant, cacheInfoArgument},
	})
	return executionError
}

// ResetIndex resets the index to HEAD without touching the working tree.
func (manager *RepositoryManager) ResetIndex(executionContext context.Context, repositoryPath string, workTreeDirectory string) error {
	if validationError := requireWorkTree(repositoryPath, workTreeDirectory); validationError != nil {
		return validationError
	}
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitDirectoryFlag(repositoryPath), gitResetSubcommandConstant, gitQuietFlagConstant},
		WorkingDirectory: workTreeDirectory,
	})
	return executionError
}

// CurrentBranch reports the abbreviated name of the checked-out branch.
func (manager *RepositoryManager) CurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	if validationError := requirePath(repositoryPath); validationError != nil {
		return "", validationError
	}
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{gitDirectoryFlag(repositoryPath), gitRevParseSubcommandConstant, gitAbbreviatedReferenceFlagConstant, gitHeadReferenceConstant},
	})
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// CreateBranch creates branchName and switches the working tree to it.
func (manager *RepositoryManager) CreateBranch(executionContext context.Context, repositoryPath string, workTreeDirectory string, branchName string) error {
	if validationError := requireWorkTree(repositoryPath, workTreeDirectory); validationError != nil {
		return validationError
	}
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitDirectoryFlag(repositoryPath), gitCheckoutSubcommandConstant, gitCreateBranchFlagConstant, branchName},
		WorkingDirectory: workTreeDirectory,
	})
	return executionError
}

// CheckoutBranch switches the working tree to branchName.
func (manager *RepositoryManager) CheckoutBranch(executionContext context.Context, repositoryPath string, workTreeDirectory string, branchName string) error {
	if validationError := requireWorkTree(repositoryPath, workTreeDirectory); validationError != nil {
		return validationError
	}
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitDirectoryFlag(repositoryPath), gitCheckoutSubcommandConstant, branchName},
		WorkingDirectory: workTreeDirectory,
	})
	return executionError
}

// StageModifications stages every modified tracked file.
func (manager *RepositoryManager) StageModifications(executionContext context.Context, repositoryPath string, workTreeDirectory string) error {
	if validationError := requireWorkTree(repositoryPath, workTreeDirectory); validationError != nil {
		return validationError
	}
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitDirectoryFlag(repositoryPath), gitAddSubcommandConstant, gitUpdateFlagConstant},
		WorkingDirectory: workTreeDirectory,
	})
	return executionError
}

// CreateCommit records the staged changes with commitMessage.
func (manager *RepositoryManager) CreateCommit(executionContext context.Context, repositoryPath string, workTreeDirectory string, commitMessage string) error {
	if validationError := requireWorkTree(repositoryPath, workTreeDirectory); validationError != nil {
		return validationError
	}
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitDirectoryFlag(repositoryPath), gitCommitSubcommandConstant, gitMessageFlagConstant, commitMessage},
		WorkingDirectory: workTreeDirectory,
	})
	return executionError
}

// CheckoutWorkingTree reconciles the working tree with the index.
func (manager *RepositoryManager) CheckoutWorkingTree(executionContext context.Context, repositoryPath string, workTreeDirectory string) error {
	if validationError := requireWorkTree(repositoryPath, workTreeDirectory); validationError != nil {
		return validationError
	}
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitDirectoryFlag(repositoryPath), gitCheckoutSubcommandConstant, gitQuietFlagConstant},
		WorkingDirectory: workTreeDirectory,
	})
	return executionError
}

func gitDirectoryFlag(repositoryPath string) string {
	return fmt.Sprintf(gitDirectoryFlagTemplateConstant, repositoryPath)
}

func requirePath(repositoryPath string) error {
	if len(strings.TrimSpace(repositoryPath)) == 0 {
		return ErrRepositoryPathRequired
	}
	return nil
}

func requireWorkTree(repositoryPath string, workTreeDirectory string) error {
	if validationError := requirePath(repositoryPath); validationError != nil {
		return validationError
	}
	if len(strings.TrimSpace(workTreeDirectory)) == 0 {
		return ErrWorkTreeRequired
	}
	return nil
}
