// Command dotfiles manages home-directory configuration files with git by
// keeping the repository metadata outside the home directory.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/temirov/dotfiles/cmd/cli"
	"github.com/temirov/dotfiles/internal/passthrough"
)

const (
	errorReportTemplateConstant = "ERROR: %v\n"
	abortingMessageConstant     = "Aborting..."
	failureExitCodeConstant     = 1
)

func main() {
	executionError := cli.Execute()
	if executionError == nil {
		return
	}

	var exitCodeError *passthrough.ExitCodeError
	if errors.As(executionError, &exitCodeError) {
		os.Exit(exitCodeError.ExitCode)
	}

	fmt.Fprintf(os.Stderr, errorReportTemplateConstant, executionError)
	fmt.Fprintln(os.Stderr, abortingMessageConstant)
	os.Exit(failureExitCodeConstant)
}
