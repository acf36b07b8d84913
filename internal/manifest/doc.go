// Package manifest parses Go module manifests (go.mod) and workspace files
// (go.work) into the small subset monorel needs: the module identity, the
// declared go version, requirements and workspace members.
//
// The parser is line oriented and forgiving. Unknown directives are skipped;
// only a go.mod without a module directive is an error.
package manifest
