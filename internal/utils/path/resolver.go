package pathutils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	resolutionErrorTemplateConstant = "unable to resolve path %s: %v"
)

// ResolutionError reports a path that could not be converted to an absolute location.
type ResolutionError struct {
	Path  string
	Cause error
}

// Error describes the failed resolution.
func (resolutionError *ResolutionError) Error() string {
	return fmt.Sprintf(resolutionErrorTemplateConstant, resolutionError.Path, resolutionError.Cause)
}

// Unwrap exposes the underlying cause.
func (resolutionError *ResolutionError) Unwrap() error {
	return resolutionError.Cause
}

// Resolver converts user-supplied paths into absolute, symlink-free locations.
// Paths that do not exist yet resolve against their deepest existing ancestor
// so freshly created repositories land where the caller expects.
type Resolver struct {
	homeExpander *HomeExpander
}

// NewResolver constructs a Resolver backed by the operating system home lookup.
func NewResolver() *Resolver {
	return NewResolverWithExpander(nil)
}

// NewResolverWithExpander constructs a Resolver using the provided home expander.
func NewResolverWithExpander(homeExpander *HomeExpander) *Resolver {
	resolvedExpander := homeExpander
	if resolvedExpander == nil {
		resolvedExpander = NewHomeExpander()
	}
	return &Resolver{homeExpander: resolvedExpander}
}

// Resolve expands home shortcuts and returns the absolute canonical form of candidatePath.
func (resolver *Resolver) Resolve(candidatePath string) (string, error) {
	trimmedCandidate := strings.TrimSpace(candidatePath)
	if len(trimmedCandidate) == 0 {
		return "", &ResolutionError{Path: candidatePath, Cause: os.ErrInvalid}
	}

	expandedPath := resolver.homeExpander.Expand(trimmedCandidate)
	absolutePath, absoluteError := filepath.Abs(expandedPath)
	if absoluteError != nil {
		return "", &ResolutionError{Path: candidatePath, Cause: absoluteError}
	}

	canonicalPath, canonicalError := canonicalizeExistingPrefix(absolutePath)
	if canonicalError != nil {
		return "", &ResolutionError{Path: candidatePath, Cause: canonicalError}
	}

	return canonicalPath, nil
}

// canonicalizeExistingPrefix walks up from absolutePath until it finds an
// existing ancestor, canonicalizes that ancestor, and rejoins the missing
// remainder.
func canonicalizeExistingPrefix(absolutePath string) (string, error) {
	remainderComponents := make([]string, 0)
	currentPath := filepath.Clean(absolutePath)

	for {
		canonicalPath, evaluationError := filepath.EvalSymlinks(currentPath)
		if evaluationError == nil {
			for index := len(remainderComponents) - 1; index >= 0; index-- {
				canonicalPath = filepath.Join(canonicalPath, remainderComponents[index])
			}
			return canonicalPath, nil
		}
		if !os.IsNotExist(evaluationError) {
			return "", evaluationError
		}

		parentPath := filepath.Dir(currentPath)
		if parentPath == currentPath {
			return "", evaluationError
		}
		remainderComponents = append(remainderComponents, filepath.Base(currentPath))
		currentPath = parentPath
	}
}
