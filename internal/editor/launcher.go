package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/temirov/dotfiles/internal/execshell"
)

const (
	editorEnvironmentVariableConstant    = "EDITOR"
	defaultEditorCommandConstant         = "vi"
	editorErrorTemplateConstant          = "editor %s failed: %v"
	executorNotConfiguredMessageConstant = "program executor not configured"
	filePathRequiredMessageConstant      = "file path required"
)

// Sentinel errors for launcher construction and argument validation.
var (
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
	ErrFilePathRequired      = errors.New(filePathRequiredMessageConstant)
)

// EditorError reports an editor session that could not run to completion.
type EditorError struct {
	Editor string
	Cause  error
}

// Error describes the failed editor session.
func (editorError *EditorError) Error() string {
	return fmt.Sprintf(editorErrorTemplateConstant, editorError.Editor, editorError.Cause)
}

// Unwrap exposes the underlying cause.
func (editorError *EditorError) Unwrap() error {
	return editorError.Cause
}

// ProgramExecutor runs arbitrary programs with attached standard streams.
type ProgramExecutor interface {
	ExecuteProgram(executionContext context.Context, programName string, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Launcher opens files in the user's editor and blocks until the session ends.
//
// The editor command resolves, in order, from the configured override, the
// EDITOR environment variable, and a fixed default. Commands may carry
// arguments ("code --wait"); they split on whitespace.
type Launcher struct {
	executor          ProgramExecutor
	configuredCommand string
}

// NewLauncher constructs a Launcher running editors through the provided executor.
func NewLauncher(executor ProgramExecutor, configuredCommand string) (*Launcher, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Launcher{executor: executor, configuredCommand: strings.TrimSpace(configuredCommand)}, nil
}

// ResolveCommand reports the editor command an Edit call would run.
func (launcher *Launcher) ResolveCommand() string {
	if len(launcher.configuredCommand) > 0 {
		return launcher.configuredCommand
	}
	environmentEditor := strings.TrimSpace(os.Getenv(editorEnvironmentVariableConstant))
	if len(environmentEditor) > 0 {
		return environmentEditor
	}
	return defaultEditorCommandConstant
}

// Edit opens filePath in the resolved editor and blocks until the editor exits.
func (launcher *Launcher) Edit(executionContext context.Context, filePath string) error {
	if len(strings.TrimSpace(filePath)) == 0 {
		return ErrFilePathRequired
	}

	editorCommand := launcher.ResolveCommand()
	commandFields := strings.Fields(editorCommand)
	programName := commandFields[0]
	programArguments := append(commandFields[1:], filePath)

	_, executionError := launcher.executor.ExecuteProgram(executionContext, programName, execshell.CommandDetails{
		Arguments: programArguments,
	})
	if executionError != nil {
		return &EditorError{Editor: editorCommand, Cause: executionError}
	}

	return nil
}
