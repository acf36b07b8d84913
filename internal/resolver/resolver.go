package resolver

import (
	"github.com/Masterminds/semver/v3"
	"github.com/fbkclanna/monorel/internal/config"
)

// DefaultVersion is used when a package has no recorded version anywhere.
const DefaultVersion = "0.0.0"

// ResolvedPackage is a discovered package at its current version.
// Path is relative to the repository root.
type ResolvedPackage struct {
	Name    string          `json:"name"`
	Version *semver.Version `json:"version"`
	Path    string          `json:"path"`
	Private bool            `json:"private"`
}

// NamedPackage is one element of the sequence SortPackages reorders.
type NamedPackage struct {
	Name   string
	Config config.PackageConfig
}

// Context carries execution flags for mutating operations.
type Context struct {
	DryRun bool
}

// Resolver is implemented once per ecosystem.
type Resolver interface {
	// Kind is the resolver kind packages name in their config.
	Kind() config.ResolverKind

	// Resolve reads the package at root/pkg.Path.
	Resolve(root string, pkg config.PackageConfig) (ResolvedPackage, error)

	// ResolveAll discovers every package of this ecosystem under root.
	// No manifest at all yields an empty result, not an error.
	ResolveAll(root string) ([]ResolvedPackage, error)

	// Bump persists version for pkg. It does nothing under ctx.DryRun.
	Bump(ctx Context, root string, pkg ResolvedPackage, version *semver.Version) error

	// SortPackages reorders pkgs in place so that dependencies precede
	// dependents. Entries of other kinds keep their positions.
	SortPackages(root string, pkgs []NamedPackage) error

	// Publish runs the prepublish then publish commands in the package directory.
	Publish(root string, pkg ResolvedPackage, cfg config.ResolverConfig, dryRun bool) error
}

// NamedPackages converts configured packages into the sortable form.
func NamedPackages(pkgs []config.Package) []NamedPackage {
	out := make([]NamedPackage, len(pkgs))
	for i, p := range pkgs {
		out[i] = NamedPackage{Name: p.Name, Config: p.PackageConfig}
	}
	return out
}
