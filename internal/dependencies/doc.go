// Package dependencies resolves optional collaborators to their defaults.
package dependencies
