package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	stateFileRelativePathConstant       = "dotfiles/repository.yaml"
	stateDirectoryPermissionsConstant   = 0o755
	stateFilePermissionsConstant        = 0o644
	repositoryNotConfiguredMessage      = "no repository configured; run init or clone first"
	stateLocateErrorTemplateConstant    = "unable to determine state file location: %w"
	stateReadErrorTemplateConstant      = "unable to read state file %s: %w"
	stateParseErrorTemplateConstant     = "unable to parse state file %s: %w"
	stateWriteErrorTemplateConstant     = "unable to write state file %s: %w"
	stateEncodeErrorTemplateConstant    = "unable to encode repository state: %w"
	stateDirectoryErrorTemplateConstant = "unable to create state directory %s: %w"
	emptyRepositoryPathMessageConstant  = "repository path must not be empty"
)

// ErrRepositoryNotConfigured reports that no repository path has been recorded yet.
var ErrRepositoryNotConfigured = errors.New(repositoryNotConfiguredMessage)

type repositoryState struct {
	Repository string `yaml:"repository"`
}

// Store persists the metadata-directory path between invocations.
type Store struct {
	filePath string
}

// NewStore locates the state file beneath the XDG configuration home.
func NewStore() (*Store, error) {
	stateFilePath, locateError := xdg.ConfigFile(stateFileRelativePathConstant)
	if locateError != nil {
		return nil, fmt.Errorf(stateLocateErrorTemplateConstant, locateError)
	}
	return NewStoreWithPath(stateFilePath), nil
}

// NewStoreWithPath constructs a Store reading and writing the provided file path.
func NewStoreWithPath(filePath string) *Store {
	return &Store{filePath: filePath}
}

// FilePath reports the location backing the store.
func (store *Store) FilePath() string {
	return store.filePath
}

// Save records the repository metadata-directory path.
func (store *Store) Save(repositoryPath string) error {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return errors.New(emptyRepositoryPathMessageConstant)
	}

	encodedState, encodeError := yaml.Marshal(repositoryState{Repository: trimmedRepositoryPath})
	if encodeError != nil {
		return fmt.Errorf(stateEncodeErrorTemplateConstant, encodeError)
	}

	stateDirectory := filepath.Dir(store.filePath)
	if directoryError := os.MkdirAll(stateDirectory, stateDirectoryPermissionsConstant); directoryError != nil {
		return fmt.Errorf(stateDirectoryErrorTemplateConstant, stateDirectory, directoryError)
	}

	if writeError := os.WriteFile(store.filePath, encodedState, stateFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(stateWriteErrorTemplateConstant, store.filePath, writeError)
	}

	return nil
}

// Load returns the recorded repository metadata-directory path.
func (store *Store) Load() (string, error) {
	stateContent, readError := os.ReadFile(store.filePath)
	if readError != nil {
		if os.IsNotExist(readError) {
			return "", ErrRepositoryNotConfigured
		}
		return "", fmt.Errorf(stateReadErrorTemplateConstant, store.filePath, readError)
	}

	decodedState := repositoryState{}
	if parseError := yaml.Unmarshal(stateContent, &decodedState); parseError != nil {
		return "", fmt.Errorf(stateParseErrorTemplateConstant, store.filePath, parseError)
	}

	trimmedRepositoryPath := strings.TrimSpace(decodedState.Repository)
	if len(trimmedRepositoryPath) == 0 {
		return "", ErrRepositoryNotConfigured
	}

	return trimmedRepositoryPath, nil
}
