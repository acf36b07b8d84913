// Package lock handles parsing and writing of monorel.lock.yaml files.
// Lock files record the version and commit each package was last released
// at, so status can show what changed since.
package lock
