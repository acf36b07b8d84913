package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/fbkclanna/monorel/internal/config"
	"github.com/fbkclanna/monorel/internal/lock"
)

// LockFile is the release lock file name, kept next to the config.
const LockFile = "monorel.lock.yaml"

// ErrNoConfig is returned by Load when no config file exists.
var ErrNoConfig = errors.New("no monorel config found")

// Context holds the resolved paths and loaded config for a repository.
type Context struct {
	Root       string
	ConfigPath string
	LockPath   string
	Config     *config.File
	Lock       *lock.File // may be nil
}

// Load resolves the repository root and loads the config (and lock if
// present). An empty configPath means discovery in root.
func Load(root, configPath string) (*Context, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving repository root: %w", err)
	}

	if configPath == "" {
		configPath = config.Discover(root)
		if configPath == "" {
			return nil, fmt.Errorf("%w in %s", ErrNoConfig, root)
		}
	} else if !filepath.IsAbs(configPath) {
		configPath = filepath.Join(root, configPath)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	ctx := &Context{
		Root:       root,
		ConfigPath: configPath,
		LockPath:   filepath.Join(root, LockFile),
		Config:     cfg,
	}

	for _, p := range cfg.Packages {
		info, err := os.Stat(ctx.PackageDir(p.PackageConfig))
		if err != nil || !info.IsDir() {
			return nil, fmt.Errorf("package %s: path %q is not a directory", p.Name, p.Path)
		}
	}

	if _, statErr := os.Stat(ctx.LockPath); statErr == nil {
		lf, err := lock.Load(ctx.LockPath)
		if err != nil {
			return nil, err
		}
		ctx.Lock = lf
	}

	return ctx, nil
}

// PackageDir returns the absolute directory of a package.
func (c *Context) PackageDir(p config.PackageConfig) string {
	return filepath.Join(c.Root, p.Path)
}

// Bump describes how to derive the next version.
type Bump struct {
	Level   string          // major, minor or patch; empty when Version is set
	Version *semver.Version // explicit target version
}

// Bump levels.
const (
	BumpMajor = "major"
	BumpMinor = "minor"
	BumpPatch = "patch"
)

// ParseBump parses a level name or an explicit version such as 1.4.0.
func ParseBump(s string) (Bump, error) {
	switch strings.ToLower(s) {
	case BumpMajor, BumpMinor, BumpPatch:
		return Bump{Level: strings.ToLower(s)}, nil
	case "":
		return Bump{}, fmt.Errorf("bump is required (major, minor, patch or a version)")
	}
	v, err := semver.StrictNewVersion(strings.TrimPrefix(s, "v"))
	if err != nil {
		return Bump{}, fmt.Errorf("unknown bump: %q (must be major, minor, patch or a semantic version)", s)
	}
	return Bump{Version: v}, nil
}

// Next returns the version following current.
func (b Bump) Next(current *semver.Version) *semver.Version {
	var v semver.Version
	switch {
	case b.Version != nil:
		return b.Version
	case b.Level == BumpMajor:
		v = current.IncMajor()
	case b.Level == BumpMinor:
		v = current.IncMinor()
	default:
		v = current.IncPatch()
	}
	return &v
}

// String renders the bump as given on the command line.
func (b Bump) String() string {
	if b.Version != nil {
		return b.Version.String()
	}
	return b.Level
}
