package gitrepo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	controlDirectoryNameConstant           = "info"
	controlDirectoryPermissionsConstant    = 0o755
	controlFilePermissionsConstant         = 0o644
	lineSeparatorConstant                  = "\n"
	controlFileWriteErrorTemplateConstant  = "unable to write control file %s: %w"
	controlFileAppendErrorTemplateConstant = "unable to append to control file %s: %w"
)

// ControlFileName identifies a control file beneath the metadata directory's info/ subdirectory.
type ControlFileName string

// Control files managed by the CLI.
const (
	ControlFileSparseCheckout ControlFileName = "sparse-checkout"
	ControlFileExclude        ControlFileName = "exclude"
	ControlFileAttributes     ControlFileName = "attributes"
)

// ControlFiles reads and writes the info/ control files of a metadata directory.
type ControlFiles struct {
	repositoryPath string
}

// NewControlFiles constructs a ControlFiles helper for repositoryPath.
func NewControlFiles(repositoryPath string) *ControlFiles {
	return &ControlFiles{repositoryPath: repositoryPath}
}

// Path reports the absolute location of the named control file.
func (controlFiles *ControlFiles) Path(fileName ControlFileName) string {
	return filepath.Join(controlFiles.repositoryPath, controlDirectoryNameConstant, string(fileName))
}

// WriteLines replaces the named control file with the provided lines.
func (controlFiles *ControlFiles) WriteLines(fileName ControlFileName, lines []string) error {
	content := strings.Join(lines, lineSeparatorConstant) + lineSeparatorConstant
	return controlFiles.WriteContent(fileName, content)
}

// WriteContent replaces the named control file with the provided content.
func (controlFiles *ControlFiles) WriteContent(fileName ControlFileName, content string) error {
	controlFilePath := controlFiles.Path(fileName)
	if directoryError := os.MkdirAll(filepath.Dir(controlFilePath), controlDirectoryPermissionsConstant); directoryError != nil {
		return fmt.Errorf(controlFileWriteErrorTemplateConstant, controlFilePath, directoryError)
	}
	if writeError := os.WriteFile(controlFilePath, []byte(content), controlFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(controlFileWriteErrorTemplateConstant, controlFilePath, writeError)
	}
	return nil
}

// AppendLines appends the provided lines to the named control file, creating it when absent.
func (controlFiles *ControlFiles) AppendLines(fileName ControlFileName, lines []string) error {
	if len(lines) == 0 {
		return nil
	}

	controlFilePath := controlFiles.Path(fileName)
	if directoryError := os.MkdirAll(filepath.Dir(controlFilePath), controlDirectoryPermissionsConstant); directoryError != nil {
		return fmt.Errorf(controlFileAppendErrorTemplateConstant, controlFilePath, directoryError)
	}

	controlFile, openError := os.OpenFile(controlFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, controlFilePermissionsConstant)
	if openError != nil {
		return fmt.Errorf(controlFileAppendErrorTemplateConstant, controlFilePath, openError)
	}
	defer controlFile.Close()

	for _, line := range lines {
		if _, writeError := controlFile.WriteString(line + lineSeparatorConstant); writeError != nil {
			return fmt.Errorf(controlFileAppendErrorTemplateConstant, controlFilePath, writeError)
		}
	}

	return nil
}
