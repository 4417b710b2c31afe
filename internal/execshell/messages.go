package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitInitSubcommandNameConstant     = "init"
	gitCloneSubcommandNameConstant    = "clone"
	gitConfigSubcommandNameConstant   = "config"
	gitCheckoutSubcommandNameConstant = "checkout"
	gitCommitSubcommandNameConstant   = "commit"
	gitDirFlagPrefixConstant          = "--git-dir="
	gitCreateBranchFlagConstant       = "-b"
	gitMessageFlagConstant            = "-m"
)

const (
	gitInitStartTemplateConstant             = "Creating repository at %s"
	gitInitSuccessTemplateConstant           = "Created repository at %s"
	gitInitFailureTemplateConstant           = "Failed to create repository at %s (exit code %d%s)"
	gitInitExecutionFailureTemplateConstant  = "Unable to create repository at %s: %s"
	gitCloneStartTemplateConstant            = "Cloning %s into %s"
	gitCloneSuccessTemplateConstant          = "Cloned %s into %s"
	gitCloneFailureTemplateConstant          = "Failed to clone %s into %s (exit code %d%s)"
	gitCloneExecutionFailureTemplateConstant = "Unable to clone %s into %s: %s"
	gitConfigStartTemplateConstant           = "Setting %s in %s"
	gitConfigSuccessTemplateConstant         = "Set %s in %s"
	gitConfigFailureTemplateConstant         = "Failed to set %s in %s (exit code %d%s)"
	gitConfigExecutionFailureTemplate        = "Unable to set %s in %s: %s"
	gitCheckoutStartTemplateConstant         = "Checking out %s in %s"
	gitCheckoutSuccessTemplateConstant       = "Checked out %s in %s"
	gitCheckoutFailureTemplateConstant       = "Failed to check out %s in %s (exit code %d%s)"
	gitCheckoutExecutionFailureTemplate      = "Unable to check out %s in %s: %s"
	gitBranchCreationStartTemplateConstant   = "Creating branch %s in %s"
	gitBranchCreationSuccessTemplateConstant = "Created branch %s in %s"
	gitBranchCreationFailureTemplateConstant = "Failed to create branch %s in %s (exit code %d%s)"
	gitBranchCreationExecutionFailureTmpl    = "Unable to create branch %s in %s: %s"
	gitWorkingTreeRefreshLabelConstant       = "working tree"
	gitCommitStartTemplateConstant           = "Creating commit in %s with message %q"
	gitCommitSuccessTemplateConstant         = "Created commit in %s with message %q"
	gitCommitFailureTemplateConstant         = "Failed to create commit in %s with message %q (exit code %d%s)"
	gitCommitExecutionFailureTemplate        = "Unable to create commit in %s with message %q: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGit {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
	return formatter.describeGitMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	subcommand, remainder := splitGitSubcommand(command.Details.Arguments)
	switch subcommand {
	case gitInitSubcommandNameConstant:
		return formatter.describeSingleTarget(command, result, failure, stage, lastNonFlagArgument(remainder), subcommandTemplates{
			start: gitInitStartTemplateConstant, success: gitInitSuccessTemplateConstant,
			failureTemplate: gitInitFailureTemplateConstant, executionFailure: gitInitExecutionFailureTemplateConstant,
		})
	case gitCloneSubcommandNameConstant:
		return formatter.describeGitCloneMessage(command, result, failure, stage, remainder)
	case gitConfigSubcommandNameConstant:
		return formatter.describeLocationTarget(command, result, failure, stage, firstNonFlagArgument(remainder), subcommandTemplates{
			start: gitConfigStartTemplateConstant, success: gitConfigSuccessTemplateConstant,
			failureTemplate: gitConfigFailureTemplateConstant, executionFailure: gitConfigExecutionFailureTemplate,
		})
	case gitCheckoutSubcommandNameConstant:
		return formatter.describeGitCheckoutMessage(command, result, failure, stage, remainder)
	case gitCommitSubcommandNameConstant:
		return formatter.describeGitCommitMessage(command, result, failure, stage, remainder)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

type subcommandTemplates struct {
	start            string
	success          string
	failureTemplate  string
	executionFailure string
}

func (formatter CommandMessageFormatter) describeSingleTarget(command ShellCommand, result ExecutionResult, failure error, stage messageStage, target string, templates subcommandTemplates) string {
	resolvedTarget := ensureValue(target)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(templates.start, resolvedTarget)
	case messageStageSuccess:
		return fmt.Sprintf(templates.success, resolvedTarget)
	case messageStageFailure:
		return fmt.Sprintf(templates.failureTemplate, resolvedTarget, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(templates.executionFailure, resolvedTarget, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeLocationTarget(command ShellCommand, result ExecutionResult, failure error, stage messageStage, target string, templates subcommandTemplates) string {
	resolvedTarget := ensureValue(target)
	location := ensureValue(gitDirectoryFromArguments(command.Details.Arguments))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(templates.start, resolvedTarget, location)
	case messageStageSuccess:
		return fmt.Sprintf(templates.success, resolvedTarget, location)
	case messageStageFailure:
		return fmt.Sprintf(templates.failureTemplate, resolvedTarget, location, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(templates.executionFailure, resolvedTarget, location, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCloneMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage, arguments []string) string {
	positional := nonFlagArguments(arguments)
	remoteLabel := fallbackUnknownValueLabelConstant
	destinationLabel := fallbackUnknownValueLabelConstant
	if len(positional) > 0 {
		remoteLabel = positional[0]
	}
	if len(positional) > 1 {
		destinationLabel = positional[1]
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCloneStartTemplateConstant, remoteLabel, destinationLabel)
	case messageStageSuccess:
		return fmt.Sprintf(gitCloneSuccessTemplateConstant, remoteLabel, destinationLabel)
	case messageStageFailure:
		return fmt.Sprintf(gitCloneFailureTemplateConstant, remoteLabel, destinationLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCloneExecutionFailureTemplateConstant, remoteLabel, destinationLabel, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCheckoutMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage, arguments []string) string {
	if containsArgument(arguments, gitCreateBranchFlagConstant) {
		branchName := argumentAfterFlag(arguments, gitCreateBranchFlagConstant)
		return formatter.describeLocationTarget(command, result, failure, stage, branchName, subcommandTemplates{
			start: gitBranchCreationStartTemplateConstant, success: gitBranchCreationSuccessTemplateConstant,
			failureTemplate: gitBranchCreationFailureTemplateConstant, executionFailure: gitBranchCreationExecutionFailureTmpl,
		})
	}

	target := firstNonFlagArgument(arguments)
	if len(target) == 0 {
		target = gitWorkingTreeRefreshLabelConstant
	}
	return formatter.describeLocationTarget(command, result, failure, stage, target, subcommandTemplates{
		start: gitCheckoutStartTemplateConstant, success: gitCheckoutSuccessTemplateConstant,
		failureTemplate: gitCheckoutFailureTemplateConstant, executionFailure: gitCheckoutExecutionFailureTemplate,
	})
}

func (formatter CommandMessageFormatter) describeGitCommitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage, arguments []string) string {
	location := ensureValue(gitDirectoryFromArguments(command.Details.Arguments))
	commitMessage := ensureValue(argumentAfterFlag(arguments, gitMessageFlagConstant))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCommitStartTemplateConstant, location, commitMessage)
	case messageStageSuccess:
		return fmt.Sprintf(gitCommitSuccessTemplateConstant, location, commitMessage)
	case messageStageFailure:
		return fmt.Sprintf(gitCommitFailureTemplateConstant, location, commitMessage, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCommitExecutionFailureTemplate, location, commitMessage, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

// splitGitSubcommand skips the global --git-dir style flags and returns the
// git subcommand name together with the arguments that follow it.
func splitGitSubcommand(arguments []string) (string, []string) {
	for index, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, "-") {
			continue
		}
		return trimmed, arguments[index+1:]
	}
	return emptyStringConstant, nil
}

func gitDirectoryFromArguments(arguments []string) string {
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if strings.HasPrefix(trimmed, gitDirFlagPrefixConstant) {
			return strings.TrimPrefix(trimmed, gitDirFlagPrefixConstant)
		}
	}
	return emptyStringConstant
}

func nonFlagArguments(arguments []string) []string {
	positional := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, "-") {
			continue
		}
		positional = append(positional, trimmed)
	}
	return positional
}

func firstNonFlagArgument(arguments []string) string {
	positional := nonFlagArguments(arguments)
	if len(positional) == 0 {
		return emptyStringConstant
	}
	return positional[0]
}

func lastNonFlagArgument(arguments []string) string {
	positional := nonFlagArguments(arguments)
	if len(positional) == 0 {
		return emptyStringConstant
	}
	return positional[len(positional)-1]
}

func argumentAfterFlag(arguments []string, flag string) string {
	for index := 0; index < len(arguments); index++ {
		if strings.TrimSpace(arguments[index]) == flag && index+1 < len(arguments) {
			return strings.TrimSpace(arguments[index+1])
		}
	}
	return emptyStringConstant
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}

func ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}
