// Package golang is the Go modules resolver.
//
// A package is a directory holding a go.mod. A go.work at the repository
// root lists the packages of a multi-module repository. Versions are read
// from a version.go file in the package, then from git tags, then default
// to 0.0.0. Bumping rewrites (or creates) version.go.
package golang
