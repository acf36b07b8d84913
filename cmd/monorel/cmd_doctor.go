package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/monorel/internal/git"
	"github.com/fbkclanna/monorel/internal/workspace"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the environment and configuration",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	a := newApp(cmd)
	out := cmd.OutOrStdout()
	ok := true

	_, _ = fmt.Fprint(out, "Checking git... ")
	if !git.IsGitInstalled() {
		_, _ = fmt.Fprintln(out, "NOT FOUND")
		_, _ = fmt.Fprintln(out, "  git is required for tag lookup. Install it from https://git-scm.com/")
		ok = false
	} else if v, err := git.Version(); err != nil {
		_, _ = fmt.Fprintln(out, "ERROR")
		ok = false
	} else {
		_, _ = fmt.Fprintln(out, v)
	}

	root, err := a.absRoot()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(out, "Checking repository... ")
	if git.IsRepo(root) {
		if head, err := git.HeadCommit(root); err == nil {
			_, _ = fmt.Fprintf(out, "OK (HEAD %s)\n", head)
		} else {
			_, _ = fmt.Fprintln(out, "OK (no commits yet)")
		}
	} else {
		_, _ = fmt.Fprintln(out, "not a git repository (tags will not be used)")
	}

	_, _ = fmt.Fprint(out, "Checking config... ")
	ctx, err := a.load()
	switch {
	case errors.Is(err, workspace.ErrNoConfig):
		_, _ = fmt.Fprintln(out, "none (run 'monorel init')")
	case err != nil:
		_, _ = fmt.Fprintf(out, "INVALID\n  %v\n", err)
		ok = false
	default:
		_, _ = fmt.Fprintf(out, "%s (%d packages)\n", ctx.ConfigPath, len(ctx.Config.Packages))
		if !a.checkPackages(cmd, ctx) {
			ok = false
		}
	}

	if ok {
		_, _ = fmt.Fprintln(out, "\nAll checks passed.")
		return nil
	}
	_, _ = fmt.Fprintln(out, "\nSome checks failed. See above for details.")
	return errors.New("doctor checks failed")
}

// checkPackages resolves every configured package and reports each result.
func (a *app) checkPackages(cmd *cobra.Command, ctx *workspace.Context) bool {
	out := cmd.OutOrStdout()
	ok := true
	for _, p := range ctx.Config.Packages {
		_, _ = fmt.Fprintf(out, "  Resolving %s (%s)... ", p.Name, p.Path)
		rp, err := a.resolvers.Resolve(ctx.Root, p)
		if err != nil {
			_, _ = fmt.Fprintf(out, "FAILED\n    %v\n", err)
			ok = false
			continue
		}
		_, _ = fmt.Fprintln(out, rp.Version)
	}
	return ok
}
