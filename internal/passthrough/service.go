package passthrough

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/dotfiles/internal/execshell"
)

const (
	gitDirectoryFlagTemplateConstant      = "--git-dir=%s"
	gitExecutorMissingMessageConstant     = "git executor not configured"
	repositoryPathRequiredMessageConstant = "repository path not configured"
	homeDirectoryRequiredMessageConstant  = "home directory not configured"
	exitCodeErrorTemplateConstant         = "git exited with code %d"
)

// Sentinel errors for service construction.
var (
	ErrGitExecutorNotConfigured    = errors.New(gitExecutorMissingMessageConstant)
	ErrRepositoryPathNotConfigured = errors.New(repositoryPathRequiredMessageConstant)
	ErrHomeDirectoryNotConfigured  = errors.New(homeDirectoryRequiredMessageConstant)
)

// ExitCodeError carries the exit code of a forwarded git invocation so the
// process can propagate it unmodified.
type ExitCodeError struct {
	ExitCode int
}

// Error describes the nonzero git exit.
func (exitCodeError *ExitCodeError) Error() string {
	return fmt.Sprintf(exitCodeErrorTemplateConstant, exitCodeError.ExitCode)
}

// GitExecutor runs git with the caller's standard streams attached.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	GitExecutor    GitExecutor
	RepositoryPath string
	HomeDirectory  string
}

// Service forwards unrecognized subcommands verbatim to git against the
// metadata directory, with the home directory as the working tree.
type Service struct {
	gitExecutor    GitExecutor
	repositoryPath string
	homeDirectory  string
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if len(strings.TrimSpace(dependencies.RepositoryPath)) == 0 {
		return nil, ErrRepositoryPathNotConfigured
	}
	if len(strings.TrimSpace(dependencies.HomeDirectory)) == 0 {
		return nil, ErrHomeDirectoryNotConfigured
	}

	return &Service{
		gitExecutor:    dependencies.GitExecutor,
		repositoryPath: dependencies.RepositoryPath,
		homeDirectory:  dependencies.HomeDirectory,
	}, nil
}

// Forward runs git with the provided arguments unmodified. A nonzero git exit
// code surfaces as an ExitCodeError; execution failures pass through.
func (service *Service) Forward(executionContext context.Context, arguments []string) error {
	forwardedArguments := make([]string, 0, len(arguments)+1)
	forwardedArguments = append(forwardedArguments, fmt.Sprintf(gitDirectoryFlagTemplateConstant, service.repositoryPath))
	forwardedArguments = append(forwardedArguments, arguments...)

	_, executionError := service.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        forwardedArguments,
		WorkingDirectory: service.homeDirectory,
	})
	if executionError != nil {
		commandFailure := execshell.CommandFailedError{}
		if errors.As(executionError, &commandFailure) {
			return &ExitCodeError{ExitCode: commandFailure.Result.ExitCode}
		}
		return executionError
	}

	return nil
}
