package main

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fbkclanna/monorel/internal/config"
	"github.com/fbkclanna/monorel/internal/logging"
	"github.com/fbkclanna/monorel/internal/resolver"
	"github.com/fbkclanna/monorel/internal/resolver/golang"
	"github.com/fbkclanna/monorel/internal/runner"
	"github.com/fbkclanna/monorel/internal/workspace"
)

// app carries the persistent flags and the wired resolvers for one command run.
type app struct {
	root       string
	configPath string
	dryRun     bool
	log        zerolog.Logger
	resolvers  *resolver.Set
}

func newApp(cmd *cobra.Command) *app {
	root, _ := cmd.Flags().GetString("root")
	configPath, _ := cmd.Flags().GetString("config")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	level, _ := cmd.Flags().GetString("log-level")

	log := logging.New(cmd.ErrOrStderr(), logging.Level(level))
	run := runner.Exec{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}

	return &app{
		root:       root,
		configPath: configPath,
		dryRun:     dryRun,
		log:        log,
		resolvers:  resolver.NewSet(golang.New(run, log)),
	}
}

func (a *app) load() (*workspace.Context, error) {
	return workspace.Load(a.root, a.configPath)
}

func (a *app) absRoot() (string, error) {
	root, err := filepath.Abs(a.root)
	if err != nil {
		return "", fmt.Errorf("resolving repository root: %w", err)
	}
	return root, nil
}

// lookup finds a configured package and its resolver.
func (a *app) lookup(ctx *workspace.Context, name string) (config.Package, resolver.Resolver, error) {
	p, ok := ctx.Config.Lookup(name)
	if !ok {
		return config.Package{}, nil, fmt.Errorf("unknown package %q", name)
	}
	r, err := a.resolvers.For(p.Resolver)
	if err != nil {
		return config.Package{}, nil, fmt.Errorf("package %s: %w", name, err)
	}
	return p, r, nil
}

func dryRunSuffix(dryRun bool) string {
	if dryRun {
		return " (dry run)"
	}
	return ""
}
