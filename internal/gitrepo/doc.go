// Package gitrepo wraps the git operations the CLI depends on.
//
// RepositoryManager issues git invocations against an external metadata
// directory, and ControlFiles maintains the sparse-checkout, exclude, and
// attributes files beneath that directory's info/ subdirectory.
package gitrepo
