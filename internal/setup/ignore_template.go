package setup

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const (
	directorySuffixConstant        = "/"
	currentDirectoryReferenceValue = "."
	parentDirectoryPrefixConstant  = ".."
)

var cacheDirectoryIgnoreEntries = []string{
	".cache/",
	".local/share/Trash/",
	".npm/",
	".cargo/registry/",
	".gradle/",
	".m2/repository/",
	".mozilla/",
	".thumbnails/",
}

var historyFileIgnoreEntries = []string{
	".bash_history",
	".zsh_history",
	".python_history",
	".node_repl_history",
	".lesshst",
	".viminfo",
	".wget-hsts",
}

var junkSuffixIgnoreEntries = []string{
	"*.log",
	"*.swp",
	"*.tmp",
	"*~",
	".DS_Store",
}

// DefaultIgnoreLines produces the generated ignore list written to the
// repository's exclude file on init and clone: cache directories, shell and
// tool history files, junk suffixes, and the user directories resolved
// relative to homeDirectory.
func DefaultIgnoreLines(homeDirectory string, userDirectories []string) []string {
	ignoreLines := make([]string, 0, len(cacheDirectoryIgnoreEntries)+len(historyFileIgnoreEntries)+len(junkSuffixIgnoreEntries)+len(userDirectories))
	ignoreLines = append(ignoreLines, cacheDirectoryIgnoreEntries...)
	ignoreLines = append(ignoreLines, historyFileIgnoreEntries...)
	ignoreLines = append(ignoreLines, junkSuffixIgnoreEntries...)

	for _, userDirectory := range userDirectories {
		relativeDirectory := homeRelativeDirectory(homeDirectory, userDirectory)
		if len(relativeDirectory) == 0 {
			continue
		}
		ignoreLines = append(ignoreLines, relativeDirectory)
	}

	return ignoreLines
}

// ResolveUserDirectories collects the XDG user directory paths (desktop,
// downloads, documents, media, …) for the default ignore template.
func ResolveUserDirectories() []string {
	return []string{
		xdg.UserDirs.Desktop,
		xdg.UserDirs.Download,
		xdg.UserDirs.Documents,
		xdg.UserDirs.Music,
		xdg.UserDirs.Pictures,
		xdg.UserDirs.Videos,
		xdg.UserDirs.Templates,
		xdg.UserDirs.PublicShare,
	}
}

// homeRelativeDirectory rewrites an absolute user directory as a
// home-relative ignore entry with a trailing slash. Directories outside the
// home directory, or the home directory itself, produce no entry.
func homeRelativeDirectory(homeDirectory string, userDirectory string) string {
	trimmedUserDirectory := strings.TrimSpace(userDirectory)
	if len(trimmedUserDirectory) == 0 {
		return ""
	}

	relativePath, relativeError := filepath.Rel(homeDirectory, trimmedUserDirectory)
	if relativeError != nil {
		return ""
	}
	if relativePath == currentDirectoryReferenceValue || strings.HasPrefix(relativePath, parentDirectoryPrefixConstant) {
		return ""
	}

	return filepath.ToSlash(relativePath) + directorySuffixConstant
}
