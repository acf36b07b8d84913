package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileNames are the config file names looked up by Discover, in order.
var FileNames = []string{"monorel.yaml", "monorel.yml", "monorel.toml", "monorel.json"}

// Discover returns the path of the first config file present in root, or
// an empty string if there is none.
func Discover(root string) string {
	for _, name := range FileNames {
		p := filepath.Join(root, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// Validate checks the configuration for errors.
func Validate(f *File) error { return validate(f) }

// Save validates and writes a configuration file as YAML.
func Save(path string, f *File) error {
	if err := validate(f); err != nil {
		return err
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec // config is meant to be committed
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Load reads and validates a config file. The format follows the extension.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the config file path
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data, Format(path))
}

// Format returns the config format for a file name: yaml, toml or json.
func Format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml"
	case ".json":
		return "json"
	default:
		return "yaml"
	}
}

// Parse parses and validates config content in the given format.
func Parse(data []byte, format string) (*File, error) {
	var f File
	switch format {
	case "yaml", "":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing config YAML: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing config TOML: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing config JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}
	if err := validate(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

func validate(f *File) error {
	if f.Version != 1 {
		return fmt.Errorf("unsupported config version: %d (expected 1)", f.Version)
	}

	seen := make(map[string]bool, len(f.Packages))
	for i, p := range f.Packages {
		if err := validatePackage(i, p, seen); err != nil {
			return err
		}
		seen[p.Name] = true
	}

	for kind, rc := range f.Resolvers {
		if !slices.Contains(KnownResolvers, kind) {
			return fmt.Errorf("config: unknown resolver %q in resolvers", kind)
		}
		if err := validateCommands(rc.Prepublish, fmt.Sprintf("resolvers.%s.prepublish", kind)); err != nil {
			return err
		}
		if err := validateCommands(rc.Publish, fmt.Sprintf("resolvers.%s.publish", kind)); err != nil {
			return err
		}
	}
	return nil
}

func validatePackage(i int, p Package, seen map[string]bool) error {
	if p.Name == "" {
		return fmt.Errorf("config: packages[%d].name is required", i)
	}
	if seen[p.Name] {
		return fmt.Errorf("config: duplicate package name %q", p.Name)
	}
	if p.Path == "" {
		return fmt.Errorf("config: packages[%d] (%s).path is required", i, p.Name)
	}
	if err := validatePath(p.Path, p.Name); err != nil {
		return err
	}
	if !slices.Contains(KnownResolvers, p.Resolver) {
		return fmt.Errorf("config: packages[%d] (%s).resolver: unknown resolver %q", i, p.Name, p.Resolver)
	}
	if m := p.EffectiveVersionMode(); m != VersionSemantic {
		return fmt.Errorf("config: packages[%d] (%s).version_mode: unsupported mode %q", i, p.Name, m)
	}
	return nil
}

func validateCommands(cmds []Command, label string) error {
	for j, c := range cmds {
		if c.Command == "" {
			return fmt.Errorf("config: %s[%d].command is required", label, j)
		}
		if c.WorkDir != "" {
			if err := validatePath(c.WorkDir, fmt.Sprintf("%s[%d].workdir", label, j)); err != nil {
				return err
			}
		}
	}
	return nil
}

// validatePath ensures a path is relative and does not escape the repository.
func validatePath(p, label string) error {
	if filepath.IsAbs(p) {
		return fmt.Errorf("config: %s: absolute path is not allowed: %s", label, p)
	}
	cleaned := filepath.Clean(p)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("config: %s: path must not escape the repository (contains ..): %s", label, p)
	}
	return nil
}

// FilterByNames returns packages matching --only / --skip flags.
func FilterByNames(pkgs []Package, only, skip []string) []Package {
	if len(only) == 0 && len(skip) == 0 {
		return pkgs
	}
	onlySet := toSet(only)
	skipSet := toSet(skip)

	var result []Package
	for _, p := range pkgs {
		if len(onlySet) > 0 && !onlySet[p.Name] {
			continue
		}
		if skipSet[p.Name] {
			continue
		}
		result = append(result, p)
	}
	return result
}

func toSet(ss []string) map[string]bool {
	m := make(map[string]bool, len(ss))
	for _, s := range ss {
		m[s] = true
	}
	return m
}
