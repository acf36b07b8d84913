package manifest

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// ErrNoModule is returned by Parse when a go.mod has no module directive.
var ErrNoModule = errors.New("module directive not found")

var (
	moduleRe        = regexp.MustCompile(`^module\s+(.+)$`)
	goRe            = regexp.MustCompile(`^go\s+(\d+(?:\.\d+)*)`)
	requireOpenRe   = regexp.MustCompile(`^require\s*\($`)
	requireSingleRe = regexp.MustCompile(`^require\s+(\S+)\s+(\S+)`)
	requireLineRe   = regexp.MustCompile(`^(\S+)\s+(\S+)`)
	useOpenRe       = regexp.MustCompile(`^use\s*\($`)
	useSingleRe     = regexp.MustCompile(`^use\s+(\S+)`)
	useLineRe       = regexp.MustCompile(`^(\S+)`)
)

// Load reads and parses a go.mod file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is a go.mod inside the repository
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ModFile, err)
	}
	return Parse(data)
}

// LoadWorkspace reads and parses a go.work file.
func LoadWorkspace(path string) (*Workspace, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the repository go.work
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", WorkFile, err)
	}
	return ParseWorkspace(data), nil
}

// Parse parses go.mod content.
//
// Each trimmed line is matched against, in order: comment or blank, module,
// go, "require (", ")" inside a require block, single-line require, and a
// require block entry. The first match wins; anything else is ignored.
// A repeated module or go directive overwrites the earlier one.
func Parse(data []byte) (*Manifest, error) {
	m := &Manifest{}
	inRequire := false

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)

		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if caps := moduleRe.FindStringSubmatch(line); caps != nil {
			m.Module = unquote(stripComment(caps[1]))
			continue
		}
		if caps := goRe.FindStringSubmatch(line); caps != nil {
			m.GoVersion = caps[1]
			continue
		}
		if requireOpenRe.MatchString(line) {
			inRequire = true
			continue
		}
		if line == ")" && inRequire {
			inRequire = false
			continue
		}
		if caps := requireSingleRe.FindStringSubmatch(line); caps != nil {
			m.Require = append(m.Require, Requirement{Path: caps[1], Version: caps[2]})
			continue
		}
		if inRequire {
			// "// indirect" and similar annotations must not become a path.
			if caps := requireLineRe.FindStringSubmatch(line); caps != nil && !strings.HasPrefix(caps[1], "//") {
				m.Require = append(m.Require, Requirement{Path: caps[1], Version: caps[2]})
			}
		}
	}

	if m.Module == "" {
		return nil, ErrNoModule
	}
	return m, nil
}

// ParseWorkspace parses go.work content. It never fails: a file without use
// directives yields an empty member list.
func ParseWorkspace(data []byte) *Workspace {
	w := &Workspace{Use: []string{}}
	inUse := false

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)

		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if caps := goRe.FindStringSubmatch(line); caps != nil {
			w.GoVersion = caps[1]
			continue
		}
		if useOpenRe.MatchString(line) {
			inUse = true
			continue
		}
		if line == ")" && inUse {
			inUse = false
			continue
		}
		if caps := useSingleRe.FindStringSubmatch(line); caps != nil {
			w.Use = append(w.Use, caps[1])
			continue
		}
		if inUse {
			if caps := useLineRe.FindStringSubmatch(line); caps != nil && caps[1] != ")" && !strings.HasPrefix(caps[1], "//") {
				w.Use = append(w.Use, caps[1])
			}
		}
	}
	return w
}

// ModuleName returns the short package name for a module identity: the
// last path segment.
func ModuleName(module string) string {
	if i := strings.LastIndex(module, "/"); i >= 0 {
		return module[i+1:]
	}
	return module
}

func stripComment(s string) string {
	if i := strings.Index(s, "//"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' && s[len(s)-1] == '"' || s[0] == '`' && s[len(s)-1] == '`') {
		return s[1 : len(s)-1]
	}
	return s
}
