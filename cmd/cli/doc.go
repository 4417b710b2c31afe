// Package cli constructs the dotfiles command-line interface, wiring the
// Cobra command hierarchy, configuration loader, and structured logging
// primitives. Built-in subcommands manage the external metadata repository;
// any other invocation falls through to git verbatim.
package cli
