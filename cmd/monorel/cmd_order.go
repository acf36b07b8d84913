package main

import (
	"github.com/spf13/cobra"

	"github.com/fbkclanna/monorel/internal/resolver"
	"github.com/fbkclanna/monorel/internal/ui"
)

func newOrderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "order",
		Short: "Print the publish order of the configured packages",
		Args:  cobra.NoArgs,
		RunE:  runOrder,
	}
}

func runOrder(cmd *cobra.Command, _ []string) error {
	a := newApp(cmd)
	ctx, err := a.load()
	if err != nil {
		return err
	}

	pkgs := resolver.NamedPackages(ctx.Config.Packages)
	if err := a.resolvers.Sort(ctx.Root, pkgs); err != nil {
		return err
	}

	tbl := ui.NewTable(cmd.OutOrStdout(), "#", "PACKAGE", "PATH", "RESOLVER")
	for i, p := range pkgs {
		tbl.Row(i+1, p.Name, p.Config.Path, p.Config.Resolver)
	}
	return tbl.Flush()
}
