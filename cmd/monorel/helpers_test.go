package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/fbkclanna/monorel/internal/config"
	"github.com/fbkclanna/monorel/internal/testutil"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// setupMonorepo writes three Go modules where api requires auth and auth
// requires core, plus a config listing them as api, auth, core.
func setupMonorepo(t *testing.T, resolvers map[config.ResolverKind]config.ResolverConfig) string {
	t.Helper()
	dir := t.TempDir()
	writeMonorepo(t, dir, resolvers)
	return dir
}

// setupGitMonorepo is setupMonorepo inside a committed git repository.
func setupGitMonorepo(t *testing.T) string {
	t.Helper()
	dir := testutil.CreateRepo(t)
	writeMonorepo(t, dir, nil)
	testutil.CommitAll(t, dir, "add packages")
	return dir
}

func writeMonorepo(t *testing.T, dir string, resolvers map[config.ResolverKind]config.ResolverConfig) {
	t.Helper()
	testutil.WriteModule(t, filepath.Join(dir, "core"), "example.com/mono/core")
	testutil.WriteModule(t, filepath.Join(dir, "auth"), "example.com/mono/auth", "example.com/mono/core")
	testutil.WriteModule(t, filepath.Join(dir, "api"), "example.com/mono/api", "example.com/mono/auth")

	f := &config.File{
		Version: 1,
		Packages: []config.Package{
			{Name: "api", PackageConfig: config.PackageConfig{Path: "api", Resolver: config.ResolverGo}},
			{Name: "auth", PackageConfig: config.PackageConfig{Path: "auth", Resolver: config.ResolverGo}},
			{Name: "core", PackageConfig: config.PackageConfig{Path: "core", Resolver: config.ResolverGo}},
		},
		Resolvers: resolvers,
	}
	if err := config.Save(filepath.Join(dir, "monorel.yaml"), f); err != nil {
		t.Fatal(err)
	}
}

func publishWith(cmds ...config.Command) map[config.ResolverKind]config.ResolverConfig {
	return map[config.ResolverKind]config.ResolverConfig{
		config.ResolverGo: {Publish: cmds},
	}
}
