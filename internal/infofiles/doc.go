// Package infofiles powers the ignore and attributes commands, which edit a
// control file beneath the metadata directory and restage it under a tracked
// name that never appears in the working tree.
package infofiles
