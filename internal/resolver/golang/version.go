package golang

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fbkclanna/monorel/internal/resolver"
)

// VersionFile is the per-package source of truth for the version.
const VersionFile = "version.go"

const semverPattern = `\d+\.\d+\.\d+(?:-[a-zA-Z0-9.-]+)?(?:\+[a-zA-Z0-9.-]+)?`

var (
	// versionDeclRe matches `const Version = "v1.2.3"` or `var version = "1.2.3"`.
	// Groups: 1 everything up to the opening quote, 2 the version without
	// a leading v, 3 the closing quote.
	versionDeclRe = regexp.MustCompile(`(?i)((?:const|var)\s+version\s*=\s*")v?(` + semverPattern + `)(")`)
	tagRe         = regexp.MustCompile(`^v?(` + semverPattern + `)$`)
)

// ResolveVersion returns the current version of the package at
// root/pkgPath: version.go first, then the highest matching git tag, then
// 0.0.0. Only an unreadable version.go is an error.
func (r *Resolver) ResolveVersion(root, pkgPath, module string) (string, error) {
	log := r.log.With().Str("path", pkgPath).Logger()

	v, err := versionFromFile(filepath.Join(root, pkgPath))
	if err != nil {
		return "", err
	}
	if v != "" {
		log.Debug().Str("version", v).Msg("found version in " + VersionFile)
		return v, nil
	}

	if v := r.versionFromTags(root, pkgPath, module); v != "" {
		log.Debug().Str("version", v).Msg("found version in git tag")
		return v, nil
	}

	log.Debug().Msg("using default version " + resolver.DefaultVersion)
	return resolver.DefaultVersion, nil
}

// versionFromFile returns the version declared in dir/version.go, or an
// empty string when the file is missing or declares none.
func versionFromFile(dir string) (string, error) {
	p := filepath.Join(dir, VersionFile)
	data, err := os.ReadFile(p) //nolint:gosec // path is inside the repository
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", &resolver.ParseError{Path: p, Reason: err.Error(), Err: err}
	}
	if caps := versionDeclRe.FindSubmatch(data); caps != nil {
		return string(caps[2]), nil
	}
	return "", nil
}

// versionFromTags scans tags in the lister's order. A tag prefixed with the
// module identity or the package directory counts for this package; a bare
// version tag counts for any package. Lister failures mean no tag.
func (r *Resolver) versionFromTags(root, pkgPath, module string) string {
	tags, err := r.tags(root)
	if err != nil {
		r.log.Debug().Err(err).Msg("git tag lookup failed")
		return ""
	}

	prefixes := []string{module + "/"}
	if rel := path.Clean(filepath.ToSlash(pkgPath)); rel != "." {
		prefixes = append(prefixes, rel+"/")
	}

	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		for _, prefix := range prefixes {
			if stripped, ok := strings.CutPrefix(tag, prefix); ok {
				if caps := tagRe.FindStringSubmatch(stripped); caps != nil {
					return caps[1]
				}
			}
		}
		if caps := tagRe.FindStringSubmatch(tag); caps != nil {
			return caps[1]
		}
	}
	return ""
}
