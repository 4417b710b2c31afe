package execshell_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/dotfiles/internal/execshell"
)

func TestCommandMessageFormatterDescribesGitSubcommands(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}

	testCases := []struct {
		name            string
		command         execshell.ShellCommand
		buildMessage    func(execshell.ShellCommand) string
		expectedMessage string
	}{
		{
			name: "init_start",
			command: execshell.ShellCommand{
				Name:    execshell.CommandGit,
				Details: execshell.CommandDetails{Arguments: []string{"init", "--bare", "/home/user/.dotfiles"}},
			},
			buildMessage:    formatter.BuildStartedMessage,
			expectedMessage: "Creating repository at /home/user/.dotfiles",
		},
		{
			name: "clone_success",
			command: execshell.ShellCommand{
				Name:    execshell.CommandGit,
				Details: execshell.CommandDetails{Arguments: []string{"clone", "--bare", "git@example.com:user/dotfiles.git", "/home/user/dotfiles"}},
			},
			buildMessage:    formatter.BuildSuccessMessage,
			expectedMessage: "Cloned git@example.com:user/dotfiles.git into /home/user/dotfiles",
		},
		{
			name: "config_start",
			command: execshell.ShellCommand{
				Name:    execshell.CommandGit,
				Details: execshell.CommandDetails{Arguments: []string{"--git-dir=/home/user/.dotfiles", "config", "--local", "core.bare", "false"}},
			},
			buildMessage:    formatter.BuildStartedMessage,
			expectedMessage: "Setting core.bare in /home/user/.dotfiles",
		},
		{
			name: "branch_creation_start",
			command: execshell.ShellCommand{
				Name:    execshell.CommandGit,
				Details: execshell.CommandDetails{Arguments: []string{"--git-dir=/home/user/.dotfiles", "checkout", "-b", "backup-before-clone"}},
			},
			buildMessage:    formatter.BuildStartedMessage,
			expectedMessage: "Creating branch backup-before-clone in /home/user/.dotfiles",
		},
		{
			name: "quiet_checkout_start",
			command: execshell.ShellCommand{
				Name:    execshell.CommandGit,
				Details: execshell.CommandDetails{Arguments: []string{"--git-dir=/home/user/.dotfiles", "checkout", "--quiet"}},
			},
			buildMessage:    formatter.BuildStartedMessage,
			expectedMessage: "Checking out working tree in /home/user/.dotfiles",
		},
		{
			name: "generic_for_unknown_subcommand",
			command: execshell.ShellCommand{
				Name:    execshell.CommandGit,
				Details: execshell.CommandDetails{Arguments: []string{"status"}, WorkingDirectory: "/home/user"},
			},
			buildMessage:    formatter.BuildStartedMessage,
			expectedMessage: "Running git status (in /home/user)",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedMessage, testCase.buildMessage(testCase.command))
		})
	}
}

func TestCommandMessageFormatterFailureMessages(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}
	command := execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{"init", "--bare", "/tmp/repo"}},
	}

	failureMessage := formatter.BuildFailureMessage(command, execshell.ExecutionResult{ExitCode: 128, StandardError: "permission denied"})
	require.Equal(testInstance, "Failed to create repository at /tmp/repo (exit code 128: permission denied)", failureMessage)

	executionFailureMessage := formatter.BuildExecutionFailureMessage(command, errors.New("binary not found"))
	require.Equal(testInstance, "Unable to create repository at /tmp/repo: binary not found", executionFailureMessage)
}
