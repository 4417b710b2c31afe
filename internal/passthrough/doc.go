// Package passthrough forwards unrecognized subcommands verbatim to git.
package passthrough
