package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
)

const (
	tildePrefixConstant         = "~"
	tildeRelativePrefixConstant = "~/"
)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// HomeExpander rewrites leading tilde shortcuts into the home directory path.
// The home lookup runs once and is cached for the expander's lifetime.
type HomeExpander struct {
	homeDirectoryProvider HomeDirectoryProvider
	homeDirectory         string
	homeDirectoryError    error
	lookupGuard           sync.Once
}

// NewHomeExpander constructs a HomeExpander backed by the XDG home lookup.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(defaultHomeDirectoryProvider)
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom provider.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = defaultHomeDirectoryProvider
	}
	return &HomeExpander{homeDirectoryProvider: provider}
}

func defaultHomeDirectoryProvider() (string, error) {
	if len(xdg.Home) > 0 {
		return xdg.Home, nil
	}
	return os.UserHomeDir()
}

// Expand resolves a leading tilde to the user's home directory. Paths without
// a tilde prefix, and paths whose home directory cannot be resolved, pass
// through unchanged.
func (expander *HomeExpander) Expand(candidatePath string) string {
	if expander == nil || len(candidatePath) == 0 {
		return candidatePath
	}
	if !strings.HasPrefix(candidatePath, tildePrefixConstant) {
		return candidatePath
	}

	homeDirectory := expander.cachedHomeDirectory()
	if len(homeDirectory) == 0 {
		return candidatePath
	}

	if candidatePath == tildePrefixConstant {
		return homeDirectory
	}
	if strings.HasPrefix(candidatePath, tildeRelativePrefixConstant) {
		return filepath.Join(homeDirectory, strings.TrimPrefix(candidatePath, tildeRelativePrefixConstant))
	}

	// Paths like ~user are left for the shell; this expander only handles the
	// invoking user's home.
	return candidatePath
}

func (expander *HomeExpander) cachedHomeDirectory() string {
	expander.lookupGuard.Do(func() {
		expander.homeDirectory, expander.homeDirectoryError = expander.homeDirectoryProvider()
	})
	if expander.homeDirectoryError != nil {
		return ""
	}
	return expander.homeDirectory
}
