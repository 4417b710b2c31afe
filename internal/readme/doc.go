// Package readme implements the readme command, which edits the tracked
// README.md through a scratch copy.
package readme
