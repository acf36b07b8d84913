package golang

import (
	"path/filepath"

	"github.com/fbkclanna/monorel/internal/config"
	"github.com/fbkclanna/monorel/internal/resolver"
	"github.com/fbkclanna/monorel/internal/runner"
)

// Publish runs cfg.Prepublish then cfg.Publish in root/pkg.Path. Go
// modules have no registry upload; releasing is whatever the commands do
// (typically tagging and pushing). Under dryRun only commands with
// dry_run: true are run. The first failing command aborts publishing.
func (r *Resolver) Publish(root string, pkg resolver.ResolvedPackage, cfg config.ResolverConfig, dryRun bool) error {
	dir := filepath.Join(root, pkg.Path)

	r.log.Info().Str("package", pkg.Name).Msg("running prepublish commands")
	if err := r.runCommands(pkg, "prepublish", cfg.Prepublish, dir, dryRun); err != nil {
		return err
	}
	r.log.Info().Str("package", pkg.Name).Msg("running publish commands")
	return r.runCommands(pkg, "publish", cfg.Publish, dir, dryRun)
}

func (r *Resolver) runCommands(pkg resolver.ResolvedPackage, stage string, cmds []config.Command, dir string, dryRun bool) error {
	for _, c := range cmds {
		log := r.log.With().Str("package", pkg.Name).Str("stage", stage).Str("command", c.String()).Logger()
		if dryRun && !c.RunsInDryRun() {
			log.Warn().Msg("skip command due to dry run")
			continue
		}
		log.Info().Msg("running")
		if err := r.runner.Run(c, dir); err != nil {
			return &resolver.CommandError{Command: c.String(), Dir: runner.WorkDir(c, dir), Err: err}
		}
	}
	return nil
}
