// Package state persists the metadata-directory path between CLI invocations.
package state
