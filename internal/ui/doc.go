// Package ui renders CLI output: aligned tables and per-package release
// progress lines.
package ui
