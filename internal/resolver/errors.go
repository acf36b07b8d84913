package resolver

import (
	"fmt"
	"strings"
)

// FileOrDirNotFoundError means a required manifest or directory is absent.
type FileOrDirNotFoundError struct {
	Path string
}

func (e *FileOrDirNotFoundError) Error() string {
	return fmt.Sprintf("file or directory not found: %s", e.Path)
}

// ParseError is a structural parse failure or an I/O failure while reading
// or writing a package file.
type ParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.Path, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// VersionFormatError means a resolved version string is not valid semver.
type VersionFormatError struct {
	Version string
	Err     error
}

func (e *VersionFormatError) Error() string {
	return fmt.Sprintf("invalid version %q: %v", e.Version, e.Err)
}

func (e *VersionFormatError) Unwrap() error { return e.Err }

// CycleError means packages depend on each other in a loop.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return "package dependency cycle detected"
	}
	return "package dependency cycle detected: " + strings.Join(e.Path, " -> ")
}

// CommandError means a prepublish or publish command failed.
type CommandError struct {
	Command string
	Dir     string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q in %s: %v", e.Command, e.Dir, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }
