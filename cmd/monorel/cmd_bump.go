package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/monorel/internal/resolver"
	"github.com/fbkclanna/monorel/internal/workspace"
)

func newBumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bump <package> <major|minor|patch|version>",
		Short: "Write the next version of a package",
		Args:  cobra.ExactArgs(2),
		RunE:  runBump,
	}
}

func runBump(cmd *cobra.Command, args []string) error {
	a := newApp(cmd)
	b, err := workspace.ParseBump(args[1])
	if err != nil {
		return err
	}

	ctx, err := a.load()
	if err != nil {
		return err
	}
	p, r, err := a.lookup(ctx, args[0])
	if err != nil {
		return err
	}

	current, err := a.resolvers.Resolve(ctx.Root, p)
	if err != nil {
		return err
	}
	next := b.Next(current.Version)

	if err := r.Bump(resolver.Context{DryRun: a.dryRun}, ctx.Root, current, next); err != nil {
		return fmt.Errorf("bumping %s: %w", p.Name, err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s%s\n", p.Name, current.Version, next, dryRunSuffix(a.dryRun))
	return nil
}
