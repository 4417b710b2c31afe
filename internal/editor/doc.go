// Package editor resolves and launches the user's interactive editor.
package editor
