// Package config handles loading, validation and writing of the release
// configuration (monorel.yaml). It describes which packages exist, which
// resolver handles each one, and the commands run when publishing.
package config
