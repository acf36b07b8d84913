package main

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/monorel/internal/resolver"
	"github.com/fbkclanna/monorel/internal/ui"
	"github.com/fbkclanna/monorel/internal/workspace"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List packages and their current versions",
		Long: "List the configured packages with their resolved versions. Without a\n" +
			"config file, packages are discovered from the repository manifests.",
		Args: cobra.NoArgs,
		RunE: runList,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	a := newApp(cmd)
	asJSON, _ := cmd.Flags().GetBool("json")

	pkgs, err := a.listPackages()
	if err != nil {
		return err
	}
	if pkgs == nil {
		pkgs = []resolver.ResolvedPackage{}
	}

	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(pkgs)
	}

	tbl := ui.NewTable(out, "PACKAGE", "VERSION", "PATH")
	for _, p := range pkgs {
		tbl.Row(p.Name, p.Version, p.Path)
	}
	return tbl.Flush()
}

func (a *app) listPackages() ([]resolver.ResolvedPackage, error) {
	ctx, err := a.load()
	if errors.Is(err, workspace.ErrNoConfig) {
		a.log.Debug().Msg("no config found, discovering packages")
		root, err := a.absRoot()
		if err != nil {
			return nil, err
		}
		return a.resolvers.ResolveAll(root)
	}
	if err != nil {
		return nil, err
	}
	return a.resolvers.ResolvePackages(ctx.Root, ctx.Config.Packages)
}
