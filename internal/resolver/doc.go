// Package resolver defines the contract every ecosystem plugin implements:
// discover packages and their current versions, order them so dependencies
// come first, persist a bumped version and run publish commands.
//
// Plugins live in subpackages (golang for Go modules). Set dispatches to the
// plugin registered for each package's resolver kind.
package resolver
