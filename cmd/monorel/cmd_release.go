package main

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/fbkclanna/monorel/internal/config"
	"github.com/fbkclanna/monorel/internal/git"
	"github.com/fbkclanna/monorel/internal/lock"
	"github.com/fbkclanna/monorel/internal/resolver"
	"github.com/fbkclanna/monorel/internal/ui"
	"github.com/fbkclanna/monorel/internal/workspace"
)

func newReleaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "release",
		Short: "Bump and publish packages in dependency order",
		Args:  cobra.NoArgs,
		RunE:  runRelease,
	}
	cmd.Flags().String("bump", "", "Bump level: major, minor, patch or an explicit version")
	cmd.Flags().StringSlice("only", nil, "Release only these packages")
	cmd.Flags().StringSlice("skip", nil, "Skip these packages")
	cmd.Flags().Bool("yes", false, "Do not ask for confirmation")
	cmd.Flags().Bool("update-lock", false, "Record released versions in "+workspace.LockFile)
	cmd.Flags().Bool("commit", false, "Commit the version changes after publishing")
	cmd.Flags().Bool("tag", false, "Create a <path>/vX.Y.Z tag per released package")
	_ = cmd.MarkFlagRequired("bump")
	return cmd
}

// releaseStep is one package of a release plan.
type releaseStep struct {
	pkg     config.Package
	current resolver.ResolvedPackage
	next    *semver.Version
}

func runRelease(cmd *cobra.Command, _ []string) error {
	a := newApp(cmd)
	bumpFlag, _ := cmd.Flags().GetString("bump")
	only, _ := cmd.Flags().GetStringSlice("only")
	skip, _ := cmd.Flags().GetStringSlice("skip")
	yes, _ := cmd.Flags().GetBool("yes")
	updateLock, _ := cmd.Flags().GetBool("update-lock")
	commit, _ := cmd.Flags().GetBool("commit")
	tag, _ := cmd.Flags().GetBool("tag")

	b, err := workspace.ParseBump(bumpFlag)
	if err != nil {
		return err
	}

	ctx, err := a.load()
	if err != nil {
		return err
	}

	for _, name := range append(append([]string{}, only...), skip...) {
		if _, ok := ctx.Config.Lookup(name); !ok {
			return fmt.Errorf("unknown package %q", name)
		}
	}

	plan, err := a.planRelease(ctx, config.FilterByNames(ctx.Config.Packages, only, skip), b)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	tbl := ui.NewTable(out, "PACKAGE", "CURRENT", "NEXT", "PATH")
	for _, s := range plan {
		tbl.Row(s.pkg.Name, s.current.Version, s.next, s.pkg.Path)
	}
	if err := tbl.Flush(); err != nil {
		return err
	}

	if !yes && !a.dryRun && isInteractive() {
		ok, err := promptConfirm(fmt.Sprintf("Release %d package(s)?", len(plan)))
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("release cancelled")
		}
	}

	progress := ui.NewProgress(out, len(plan))
	released := make([]resolver.ResolvedPackage, 0, len(plan))
	for _, s := range plan {
		rp, err := a.releaseOne(ctx, s)
		if err != nil {
			progress.Fail(s.pkg.Name, err)
			return fmt.Errorf("releasing %s: %w", s.pkg.Name, err)
		}
		label := fmt.Sprintf("%s %s", s.pkg.Name, rp.Version)
		if a.dryRun {
			progress.Skip(label + dryRunSuffix(true))
		} else {
			progress.Done(label)
		}
		released = append(released, rp)
	}

	if updateLock && !a.dryRun {
		if err := writeLock(ctx, plan, released); err != nil {
			return err
		}
		progress.Log("Updated %s", workspace.LockFile)
	}

	if commit {
		if err := a.commitRelease(ctx, progress, plan, released, updateLock); err != nil {
			return err
		}
	}
	if tag {
		if err := a.tagRelease(ctx, progress, plan, released); err != nil {
			return err
		}
	}
	return nil
}

// commitRelease stages the released package paths (and the lock when it was
// written) and commits them.
func (a *app) commitRelease(ctx *workspace.Context, progress *ui.Progress, plan []releaseStep, released []resolver.ResolvedPackage, withLock bool) error {
	msg := releaseMessage(plan, released)
	if a.dryRun {
		progress.Log("Would commit %q", msg)
		return nil
	}

	paths := make([]string, 0, len(plan)+1)
	for _, s := range plan {
		paths = append(paths, s.pkg.Path)
	}
	if withLock {
		paths = append(paths, workspace.LockFile)
	}
	if err := git.Add(ctx.Root, paths...); err != nil {
		return fmt.Errorf("staging release: %w", err)
	}
	if err := git.Commit(ctx.Root, msg); err != nil {
		return fmt.Errorf("committing release: %w", err)
	}
	progress.Log("Committed %q", msg)
	return nil
}

func (a *app) tagRelease(ctx *workspace.Context, progress *ui.Progress, plan []releaseStep, released []resolver.ResolvedPackage) error {
	for i, s := range plan {
		name := releaseTag(s.pkg.Path, released[i].Version)
		if a.dryRun {
			progress.Log("Would tag %s", name)
			continue
		}
		if err := git.Tag(ctx.Root, name); err != nil {
			return fmt.Errorf("tagging %s: %w", s.pkg.Name, err)
		}
		progress.Log("Tagged %s", name)
	}
	return nil
}

// releaseTag names the tag for a package version: vX.Y.Z at the repository
// root, <path>/vX.Y.Z below it.
func releaseTag(pkgPath string, v *semver.Version) string {
	p := path.Clean(filepath.ToSlash(pkgPath))
	if p == "." {
		return "v" + v.String()
	}
	return p + "/v" + v.String()
}

func releaseMessage(plan []releaseStep, released []resolver.ResolvedPackage) string {
	parts := make([]string, len(plan))
	for i, s := range plan {
		parts[i] = s.pkg.Name + "@" + released[i].Version.String()
	}
	return "Release " + strings.Join(parts, ", ")
}

// planRelease sorts pkgs into publish order and resolves their next versions.
func (a *app) planRelease(ctx *workspace.Context, pkgs []config.Package, b workspace.Bump) ([]releaseStep, error) {
	if len(pkgs) == 0 {
		return nil, errors.New("no packages selected")
	}

	named := resolver.NamedPackages(pkgs)
	if err := a.resolvers.Sort(ctx.Root, named); err != nil {
		return nil, err
	}

	plan := make([]releaseStep, 0, len(named))
	for _, n := range named {
		p, _ := ctx.Config.Lookup(n.Name)
		current, err := a.resolvers.Resolve(ctx.Root, p)
		if err != nil {
			return nil, err
		}
		plan = append(plan, releaseStep{pkg: p, current: current, next: b.Next(current.Version)})
	}
	return plan, nil
}

// releaseOne bumps, re-resolves and publishes a single package.
func (a *app) releaseOne(ctx *workspace.Context, s releaseStep) (resolver.ResolvedPackage, error) {
	r, err := a.resolvers.For(s.pkg.Resolver)
	if err != nil {
		return resolver.ResolvedPackage{}, err
	}

	if err := r.Bump(resolver.Context{DryRun: a.dryRun}, ctx.Root, s.current, s.next); err != nil {
		return resolver.ResolvedPackage{}, err
	}

	rp := s.current
	rp.Version = s.next
	if !a.dryRun {
		if rp, err = a.resolvers.Resolve(ctx.Root, s.pkg); err != nil {
			return resolver.ResolvedPackage{}, err
		}
	}

	if err := r.Publish(ctx.Root, rp, ctx.Config.Resolver(s.pkg.Resolver), a.dryRun); err != nil {
		return resolver.ResolvedPackage{}, err
	}
	return rp, nil
}

func writeLock(ctx *workspace.Context, plan []releaseStep, released []resolver.ResolvedPackage) error {
	lf := ctx.Lock
	if lf == nil {
		lf = &lock.File{Version: 1}
	}
	lf.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
	lf.ToolVersion = version

	commit, _ := git.HeadCommitFull(ctx.Root)
	for i, s := range plan {
		lf.Record(s.pkg.Name, &lock.Package{
			Path:     s.pkg.Path,
			Resolver: string(s.pkg.Resolver),
			Version:  released[i].Version.String(),
			Commit:   commit,
		})
	}
	return lock.Save(ctx.LockPath, lf)
}
