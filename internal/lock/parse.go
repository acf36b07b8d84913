package lock

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a monorel.lock.yaml file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the repository lock file path
	if err != nil {
		return nil, fmt.Errorf("reading lock file: %w", err)
	}
	return Parse(data)
}

// Parse parses monorel.lock.yaml content.
func Parse(data []byte) (*File, error) {
	var lf File
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parsing lock YAML: %w", err)
	}
	if lf.Version != 0 && lf.Version != 1 {
		return nil, fmt.Errorf("unsupported lock file version: %d (expected 1)", lf.Version)
	}
	if lf.Packages == nil {
		lf.Packages = map[string]*Package{}
	}
	return &lf, nil
}

// Save writes the lock file to disk.
func Save(path string, lf *File) error {
	data, err := yaml.Marshal(lf)
	if err != nil {
		return fmt.Errorf("marshaling lock file: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec // lock file needs to be readable
		return fmt.Errorf("writing lock file: %w", err)
	}
	return nil
}

// Record sets the released state of a package, creating the map if needed.
func (f *File) Record(name string, p *Package) {
	if f.Packages == nil {
		f.Packages = map[string]*Package{}
	}
	f.Packages[name] = p
}

// Drift describes how version differs from the locked version of name:
// empty when equal or not locked.
func (f *File) Drift(name, version string) string {
	if f == nil {
		return ""
	}
	p, ok := f.Packages[name]
	if !ok || p.Version == version {
		return ""
	}
	return fmt.Sprintf("lock=%s", p.Version)
}
