package golang

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fbkclanna/monorel/internal/resolver"
)

// WriteVersion records version in dir/version.go. A missing file is created
// with a single Version constant. In an existing file only the first
// Version declaration is rewritten; every other byte is kept.
func (r *Resolver) WriteVersion(dir, version string) error {
	p := filepath.Join(dir, VersionFile)

	data, err := os.ReadFile(p) //nolint:gosec // path is inside the repository
	if os.IsNotExist(err) {
		content := fmt.Sprintf("package %s\n\n// Version is the current version of the module.\nconst Version = %q\n", packageClause(dir), version)
		if err := os.WriteFile(p, []byte(content), 0644); err != nil { //nolint:gosec // source file
			return &resolver.ParseError{Path: p, Reason: err.Error(), Err: err}
		}
		r.log.Info().Str("file", p).Str("version", version).Msg("created version file")
		return nil
	}
	if err != nil {
		return &resolver.ParseError{Path: p, Reason: err.Error(), Err: err}
	}

	loc := versionDeclRe.FindSubmatchIndex(data)
	if loc == nil {
		return &resolver.ParseError{Path: p, Reason: "no Version declaration found"}
	}
	// loc[4]:loc[5] is the version literal; a leading "v" sits between
	// the end of group 1 and the start of group 2 and is dropped.
	var buf bytes.Buffer
	buf.Grow(len(data) + len(version))
	buf.Write(data[:loc[3]])
	buf.WriteString(version)
	buf.Write(data[loc[6]:])

	mode := os.FileMode(0644)
	if info, err := os.Stat(p); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(p, buf.Bytes(), mode); err != nil {
		return &resolver.ParseError{Path: p, Reason: err.Error(), Err: err}
	}
	r.log.Info().Str("file", p).Str("version", version).Msg("updated version file")
	return nil
}

// packageClause returns the package name used by the other Go files in dir,
// or "main" when there are none.
func packageClause(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "main"
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		n := e.Name()
		if e.IsDir() || !strings.HasSuffix(n, ".go") || strings.HasSuffix(n, "_test.go") {
			continue
		}
		names = append(names, n)
	}
	sort.Strings(names)

	for _, n := range names {
		if pkg := readPackageName(filepath.Join(dir, n)); pkg != "" {
			return pkg
		}
	}
	return "main"
}

func readPackageName(file string) string {
	f, err := os.Open(file) //nolint:gosec // file is inside the repository
	if err != nil {
		return ""
	}
	defer func() { _ = f.Close() }()

	s := bufio.NewScanner(f)
	for s.Scan() {
		fields := strings.Fields(s.Text())
		if len(fields) >= 2 && fields[0] == "package" {
			return fields[1]
		}
	}
	return ""
}
