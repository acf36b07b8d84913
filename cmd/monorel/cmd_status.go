package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/monorel/internal/config"
	"github.com/fbkclanna/monorel/internal/git"
	"github.com/fbkclanna/monorel/internal/ui"
	"github.com/fbkclanna/monorel/internal/workspace"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show package versions against the lock file",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

type packageStatus struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Version  string `json:"version"`
	Locked   string `json:"locked,omitempty"`
	Dirty    bool   `json:"dirty"`
	LockDiff string `json:"lock_diff,omitempty"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	a := newApp(cmd)
	asJSON, _ := cmd.Flags().GetBool("json")

	ctx, err := a.load()
	if err != nil {
		return err
	}

	inRepo := git.IsRepo(ctx.Root)
	statuses := make([]packageStatus, 0, len(ctx.Config.Packages))
	for _, p := range ctx.Config.Packages {
		s, err := a.collectStatus(ctx, p, inRepo)
		if err != nil {
			return err
		}
		statuses = append(statuses, s)
	}

	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(statuses)
	}

	tbl := ui.NewTable(out, "PACKAGE", "VERSION", "PATH", "DIRTY", "LOCK DIFF")
	for _, s := range statuses {
		tbl.Row(s.Name, s.Version, s.Path, s.Dirty, s.LockDiff)
	}
	return tbl.Flush()
}

func (a *app) collectStatus(ctx *workspace.Context, p config.Package, inRepo bool) (packageStatus, error) {
	rp, err := a.resolvers.Resolve(ctx.Root, p)
	if err != nil {
		return packageStatus{}, err
	}
	s := packageStatus{Name: p.Name, Path: p.Path, Version: rp.Version.String()}

	if inRepo {
		if dirty, err := git.IsDirty(ctx.Root, p.Path); err == nil {
			s.Dirty = dirty
		} else {
			a.log.Warn().Err(err).Str("package", p.Name).Msg("git status failed")
		}
	}

	if ctx.Lock != nil {
		if lp, ok := ctx.Lock.Packages[p.Name]; ok {
			s.Locked = lp.Version
		}
		s.LockDiff = ctx.Lock.Drift(p.Name, s.Version)
	}
	return s, nil
}
