package lock

// File represents monorel.lock.yaml.
type File struct {
	Version     int                 `yaml:"version"`
	GeneratedAt string              `yaml:"generated_at"`
	ToolVersion string              `yaml:"tool_version"`
	Packages    map[string]*Package `yaml:"packages"`
}

// Package records the released state of a single package.
type Package struct {
	Path     string `yaml:"path"`
	Resolver string `yaml:"resolver"`
	Version  string `yaml:"version"`
	Commit   string `yaml:"commit,omitempty"`
}
