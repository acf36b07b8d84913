package config

// ResolverKind names the ecosystem resolver responsible for a package.
type ResolverKind string

// ResolverGo is the Go modules resolver.
const ResolverGo ResolverKind = "go"

// KnownResolvers lists every resolver kind the configuration accepts.
var KnownResolvers = []ResolverKind{ResolverGo}

// VersionMode selects how a package is versioned.
type VersionMode string

// VersionSemantic is the only supported mode and the default.
const VersionSemantic VersionMode = "semantic"

// File represents the top-level monorel.yaml configuration.
type File struct {
	Version   int                             `yaml:"version" toml:"version" json:"version"`
	Packages  []Package                       `yaml:"packages,omitempty" toml:"packages,omitempty" json:"packages,omitempty"`
	Resolvers map[ResolverKind]ResolverConfig `yaml:"resolvers,omitempty" toml:"resolvers,omitempty" json:"resolvers,omitempty"`
}

// Package is a named package entry.
type Package struct {
	Name          string `yaml:"name" toml:"name" json:"name"`
	PackageConfig `yaml:",inline"`
}

// PackageConfig locates a package and selects its resolver.
// Path is relative to the repository root.
type PackageConfig struct {
	Path        string       `yaml:"path" toml:"path" json:"path"`
	Resolver    ResolverKind `yaml:"resolver" toml:"resolver" json:"resolver"`
	VersionMode VersionMode  `yaml:"version_mode,omitempty" toml:"version_mode,omitempty" json:"version_mode,omitempty"`
	Assets      []string     `yaml:"assets,omitempty" toml:"assets,omitempty" json:"assets,omitempty"`
}

// ResolverConfig holds the commands run for every package of one resolver kind.
type ResolverConfig struct {
	Prepublish []Command `yaml:"prepublish,omitempty" toml:"prepublish,omitempty" json:"prepublish,omitempty"`
	Publish    []Command `yaml:"publish,omitempty" toml:"publish,omitempty" json:"publish,omitempty"`
}

// Command is an external command run during publishing. It is executed
// directly, without a shell.
type Command struct {
	Command string            `yaml:"command" toml:"command" json:"command"`
	Args    []string          `yaml:"args,omitempty" toml:"args,omitempty" json:"args,omitempty"`
	DryRun  *bool             `yaml:"dry_run,omitempty" toml:"dry_run,omitempty" json:"dry_run,omitempty"`
	WorkDir string            `yaml:"workdir,omitempty" toml:"workdir,omitempty" json:"workdir,omitempty"`
	Env     map[string]string `yaml:"env,omitempty" toml:"env,omitempty" json:"env,omitempty"`
}

// RunsInDryRun reports whether the command explicitly opted in to running
// during a dry run.
func (c Command) RunsInDryRun() bool {
	return c.DryRun != nil && *c.DryRun
}

// String renders the command line for logs.
func (c Command) String() string {
	s := c.Command
	for _, a := range c.Args {
		s += " " + a
	}
	return s
}

// EffectiveVersionMode returns the version mode, defaulting to semantic.
func (p PackageConfig) EffectiveVersionMode() VersionMode {
	if p.VersionMode != "" {
		return p.VersionMode
	}
	return VersionSemantic
}

// Resolver returns the resolver config for kind. Missing kinds yield an
// empty config (no commands).
func (f *File) Resolver(kind ResolverKind) ResolverConfig {
	if f == nil || f.Resolvers == nil {
		return ResolverConfig{}
	}
	return f.Resolvers[kind]
}

// Lookup finds a package by name.
func (f *File) Lookup(name string) (Package, bool) {
	for _, p := range f.Packages {
		if p.Name == name {
			return p, true
		}
	}
	return Package{}, false
}
