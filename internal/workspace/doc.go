// Package workspace integrates config and lock loading with path resolution.
// It provides the Context type that holds the resolved repository root and
// loaded configuration, and the Bump type that computes the next version.
package workspace
