// Package execshell executes external commands, primarily git, while logging
// lifecycle events and translating failures into typed errors.
package execshell
