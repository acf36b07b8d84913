package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/monorel/internal/config"
)

const defaultConfigName = "monorel.yaml"

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Discover packages and write a starter config",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
	cmd.Flags().Bool("force", false, "Overwrite an existing config")
	return cmd
}

func runInit(cmd *cobra.Command, _ []string) error {
	a := newApp(cmd)
	force, _ := cmd.Flags().GetBool("force")

	root, err := a.absRoot()
	if err != nil {
		return err
	}

	f, err := a.discoverConfig(root)
	if err != nil {
		return err
	}
	if len(f.Packages) == 0 {
		return fmt.Errorf("no packages found in %s", root)
	}

	interactive := isInteractive()
	name := defaultConfigName
	if a.configPath != "" {
		name = a.configPath
	} else if interactive {
		name, err = promptInput("Config file name", defaultConfigName, configNameValidator)
		if err != nil {
			return err
		}
		name = strings.TrimSpace(name)
		if name == "" {
			name = defaultConfigName
		}
	}
	if err := configNameValidator(name); err != nil {
		return err
	}

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, name)
	}

	existing := config.Discover(root)
	if _, err := os.Stat(path); err == nil {
		existing = path
	}
	if existing != "" && !force {
		if !interactive {
			return fmt.Errorf("config %s already exists (use --force to overwrite)", filepath.Base(existing))
		}
		ok, err := promptConfirm(fmt.Sprintf("%s already exists. Overwrite?", filepath.Base(existing)))
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("init cancelled")
		}
	}

	if err := config.Validate(f); err != nil {
		return fmt.Errorf("discovered packages: %w", err)
	}
	if a.dryRun {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Would write %s with %d package(s)\n", path, len(f.Packages))
		return nil
	}
	if err := config.Save(path, f); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s with %d package(s)\n", path, len(f.Packages))
	return nil
}

// discoverConfig builds a config from every resolver's discovery. Names
// that collide fall back to the package path.
func (a *app) discoverConfig(root string) (*config.File, error) {
	f := &config.File{Version: 1}
	seen := make(map[string]bool)
	for _, kind := range a.resolvers.Kinds() {
		r, err := a.resolvers.For(kind)
		if err != nil {
			return nil, err
		}
		pkgs, err := r.ResolveAll(root)
		if err != nil {
			return nil, fmt.Errorf("%s resolver: %w", kind, err)
		}
		for _, rp := range pkgs {
			name := rp.Name
			if seen[name] {
				name = strings.ReplaceAll(rp.Path, "/", "-")
			}
			seen[name] = true
			f.Packages = append(f.Packages, config.Package{
				Name:          name,
				PackageConfig: config.PackageConfig{Path: rp.Path, Resolver: kind},
			})
		}
	}
	return f, nil
}

// configNameValidator accepts YAML file names; init always writes YAML.
func configNameValidator(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("file name is required")
	}
	switch strings.ToLower(filepath.Ext(s)) {
	case ".yaml", ".yml":
		return nil
	}
	return fmt.Errorf("config file must end in .yaml or .yml, got %q", s)
}
