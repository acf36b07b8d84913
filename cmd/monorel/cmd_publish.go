package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPublishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish <package>",
		Short: "Run the publish commands of a package",
		Args:  cobra.ExactArgs(1),
		RunE:  runPublish,
	}
}

func runPublish(cmd *cobra.Command, args []string) error {
	a := newApp(cmd)
	ctx, err := a.load()
	if err != nil {
		return err
	}
	p, r, err := a.lookup(ctx, args[0])
	if err != nil {
		return err
	}

	rp, err := a.resolvers.Resolve(ctx.Root, p)
	if err != nil {
		return err
	}

	if err := r.Publish(ctx.Root, rp, ctx.Config.Resolver(p.Resolver), a.dryRun); err != nil {
		return fmt.Errorf("publishing %s: %w", p.Name, err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Published %s %s%s\n", p.Name, rp.Version, dryRunSuffix(a.dryRun))
	return nil
}
