// Package runner executes configured publish commands. Resolvers depend on
// the Runner interface so tests can substitute a Recorder.
package runner
