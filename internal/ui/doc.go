// Package ui adapts shell command lifecycle events into console-friendly log output.
package ui
