package golang

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"

	"github.com/fbkclanna/monorel/internal/config"
	"github.com/fbkclanna/monorel/internal/git"
	"github.com/fbkclanna/monorel/internal/manifest"
	"github.com/fbkclanna/monorel/internal/resolver"
	"github.com/fbkclanna/monorel/internal/runner"
)

// TagLister lists repository tags, highest version first.
type TagLister func(repoDir string) ([]string, error)

// Option customizes a Resolver.
type Option func(*Resolver)

// WithTagLister replaces the git tag lookup.
func WithTagLister(l TagLister) Option {
	return func(r *Resolver) { r.tags = l }
}

// Resolver implements resolver.Resolver for Go modules.
type Resolver struct {
	runner runner.Runner
	log    zerolog.Logger
	tags   TagLister
}

var _ resolver.Resolver = (*Resolver)(nil)

// New returns a Go resolver that runs publish commands through run.
func New(run runner.Runner, log zerolog.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		runner: run,
		log:    log.With().Str("resolver", string(config.ResolverGo)).Logger(),
		tags:   git.Tags,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Kind returns config.ResolverGo.
func (r *Resolver) Kind() config.ResolverKind { return config.ResolverGo }

// Resolve reads root/pkg.Path/go.mod and the package's current version.
func (r *Resolver) Resolve(root string, pkg config.PackageConfig) (resolver.ResolvedPackage, error) {
	m, err := loadManifest(filepath.Join(root, pkg.Path, manifest.ModFile))
	if err != nil {
		return resolver.ResolvedPackage{}, err
	}

	raw, err := r.ResolveVersion(root, pkg.Path, m.Module)
	if err != nil {
		return resolver.ResolvedPackage{}, err
	}
	v, err := semver.StrictNewVersion(raw)
	if err != nil {
		return resolver.ResolvedPackage{}, &resolver.VersionFormatError{Version: raw, Err: err}
	}

	return resolver.ResolvedPackage{
		Name:    manifest.ModuleName(m.Module),
		Version: v,
		Path:    pkg.Path,
		Private: false,
	}, nil
}

// ResolveAll resolves every go.work member, or the root module when there
// is no go.work. Neither file present yields an empty result. The first
// member that fails to resolve aborts the whole call.
func (r *Resolver) ResolveAll(root string) ([]resolver.ResolvedPackage, error) {
	workPath := filepath.Join(root, manifest.WorkFile)
	if exists(workPath) {
		w, err := manifest.LoadWorkspace(workPath)
		if err != nil {
			return nil, &resolver.ParseError{Path: workPath, Reason: err.Error(), Err: err}
		}

		pkgs := make([]resolver.ResolvedPackage, 0, len(w.Use))
		seen := make(map[string]bool, len(w.Use))
		for _, dir := range w.Use {
			rel := memberPath(dir)
			if seen[rel] {
				continue
			}
			seen[rel] = true

			p, err := r.Resolve(root, packageConfig(rel))
			if err != nil {
				return nil, err
			}
			pkgs = append(pkgs, p)
		}
		return pkgs, nil
	}

	if !exists(filepath.Join(root, manifest.ModFile)) {
		r.log.Warn().Str("root", root).Msg("cannot resolve package, go.mod not found")
		return []resolver.ResolvedPackage{}, nil
	}

	p, err := r.Resolve(root, packageConfig("."))
	if err != nil {
		return nil, err
	}
	return []resolver.ResolvedPackage{p}, nil
}

// Bump writes version into the package's version.go.
func (r *Resolver) Bump(ctx resolver.Context, root string, pkg resolver.ResolvedPackage, version *semver.Version) error {
	if ctx.DryRun {
		r.log.Warn().Str("package", pkg.Name).Str("version", version.String()).Msg("skip bump due to dry run")
		return nil
	}
	return r.WriteVersion(filepath.Join(root, pkg.Path), version.String())
}

// memberPath normalizes a go.work use entry: "." stays ".", a leading "./"
// is dropped.
func memberPath(dir string) string {
	return path.Clean(filepath.ToSlash(dir))
}

func packageConfig(rel string) config.PackageConfig {
	return config.PackageConfig{
		Path:        rel,
		Resolver:    config.ResolverGo,
		VersionMode: config.VersionSemantic,
	}
}

// loadManifest reads a go.mod, mapping a missing file to
// FileOrDirNotFoundError and everything else to ParseError.
func loadManifest(modPath string) (*manifest.Manifest, error) {
	m, err := manifest.Load(modPath)
	if err == nil {
		return m, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &resolver.FileOrDirNotFoundError{Path: modPath}
	}
	return nil, &resolver.ParseError{Path: modPath, Reason: err.Error(), Err: err}
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
