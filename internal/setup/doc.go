// Package setup implements the init and clone commands that create and
// configure the external metadata directory.
package setup
