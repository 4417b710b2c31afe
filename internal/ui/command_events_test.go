package ui_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/dotfiles/internal/execshell"
	"github.com/temirov/dotfiles/internal/ui"
)

const (
	startedCaseNameConstant          = "command_started"
	successCaseNameConstant          = "command_completed_success"
	failureCaseNameConstant          = "command_completed_failure"
	executionFailureCaseNameConstant = "command_execution_failed"
	statusArgumentConstant           = "status"
	workingDirectoryConstant         = "/home/user"
)

func TestConsoleCommandEventLoggerMessages(testInstance *testing.T) {
	statusCommand := execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments:        []string{statusArgumentConstant},
			WorkingDirectory: workingDirectoryConstant,
		},
	}

	testCases := []struct {
		name            string
		notify          func(eventLogger *ui.ConsoleCommandEventLogger)
		expectedLevel   zap.AtomicLevel
		expectedMessage string
	}{
		{
			name: startedCaseNameConstant,
			notify: func(eventLogger *ui.ConsoleCommandEventLogger) {
				eventLogger.CommandStarted(statusCommand)
			},
			expectedLevel:   zap.NewAtomicLevelAt(zap.InfoLevel),
			expectedMessage: "Running git status (in /home/user)",
		},
		{
			name: successCaseNameConstant,
			notify: func(eventLogger *ui.ConsoleCommandEventLogger) {
				eventLogger.CommandCompleted(statusCommand, execshell.ExecutionResult{ExitCode: 0})
			},
			expectedLevel:   zap.NewAtomicLevelAt(zap.InfoLevel),
			expectedMessage: "Completed git status (in /home/user)",
		},
		{
			name: failureCaseNameConstant,
			notify: func(eventLogger *ui.ConsoleCommandEventLogger) {
				eventLogger.CommandCompleted(statusCommand, execshell.ExecutionResult{ExitCode: 1, StandardError: "boom"})
			},
			expectedLevel:   zap.NewAtomicLevelAt(zap.WarnLevel),
			expectedMessage: "git status (in /home/user) failed with exit code 1: boom",
		},
		{
			name: executionFailureCaseNameConstant,
			notify: func(eventLogger *ui.ConsoleCommandEventLogger) {
				eventLogger.CommandExecutionFailed(statusCommand, errTestLaunch)
			},
			expectedLevel:   zap.NewAtomicLevelAt(zap.ErrorLevel),
			expectedMessage: "git status (in /home/user) failed: launch failed",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			observedCore, observedLogs := observer.New(zap.DebugLevel)
			eventLogger := ui.NewConsoleCommandEventLogger(zap.New(observedCore))

			testCase.notify(eventLogger)

			entries := observedLogs.All()
			require.Len(subtest, entries, 1)
			require.Equal(subtest, testCase.expectedLevel.Level(), entries[0].Level)
			require.Equal(subtest, testCase.expectedMessage, entries[0].Message)
		})
	}
}

var errTestLaunch = launchError{}

type launchError struct{}

func (launchError) Error() string { return "launch failed" }
