// Package git provides a wrapper around the Git CLI commands used by monorel.
// It lists version tags, reports HEAD and dirty state, and creates commits
// and tags, without depending on other internal packages.
package git
