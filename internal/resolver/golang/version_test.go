package golang

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fbkclanna/monorel/internal/testutil"
)

func TestResolveVersion_priorityChain(t *testing.T) {
	t.Run("version file wins over tag", func(t *testing.T) {
		root := testutil.CreateTaggedRepo(t, "v9.9.9")
		testutil.WriteModule(t, root, "example.com/app")
		testutil.WriteFile(t, filepath.Join(root, VersionFile), "package main\n\nconst Version = \"1.2.3\"\n")
		r, _ := newTestResolver(t)

		v, err := r.ResolveVersion(root, ".", "example.com/app")
		require.NoError(t, err)
		assert.Equal(t, "1.2.3", v)
	})

	t.Run("tag when no version file", func(t *testing.T) {
		root := testutil.CreateTaggedRepo(t, "v0.4.0", "v0.10.1")
		testutil.WriteModule(t, root, "example.com/app")
		r, _ := newTestResolver(t)

		v, err := r.ResolveVersion(root, ".", "example.com/app")
		require.NoError(t, err)
		assert.Equal(t, "0.10.1", v)
	})

	t.Run("default when neither", func(t *testing.T) {
		root := testutil.CreateRepo(t)
		testutil.WriteModule(t, root, "example.com/app")
		r, _ := newTestResolver(t)

		v, err := r.ResolveVersion(root, ".", "example.com/app")
		require.NoError(t, err)
		assert.Equal(t, "0.0.0", v)
	})

	t.Run("version file without declaration falls through", func(t *testing.T) {
		root := t.TempDir()
		testutil.WriteFile(t, filepath.Join(root, VersionFile), "package main\n\nconst Name = \"x\"\n")
		r, _ := newTestResolver(t, WithTagLister(staticTags("v3.1.0")))

		v, err := r.ResolveVersion(root, ".", "example.com/app")
		require.NoError(t, err)
		assert.Equal(t, "3.1.0", v)
	})
}

func TestResolveVersion_tagListerFailureIsNotAnError(t *testing.T) {
	failing := func(string) ([]string, error) { return nil, errors.New("git: not found") }
	r, _ := newTestResolver(t, WithTagLister(failing))

	v, err := r.ResolveVersion(t.TempDir(), ".", "example.com/app")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0", v)
}

func TestResolveVersion_outsideRepository(t *testing.T) {
	r, _ := newTestResolver(t)

	v, err := r.ResolveVersion(t.TempDir(), ".", "example.com/app")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0", v)
}

func TestVersionFromTags(t *testing.T) {
	tests := []struct {
		name    string
		tags    []string
		pkgPath string
		module  string
		want    string
	}{
		{"bare tag", []string{"v1.2.3"}, ".", "example.com/app", "1.2.3"},
		{"bare tag without v", []string{"1.2.3"}, ".", "example.com/app", "1.2.3"},
		{"prerelease and build", []string{"v1.0.0-rc.1+build.5"}, ".", "example.com/app", "1.0.0-rc.1+build.5"},
		{"module prefixed", []string{"example.com/app/auth/v0.3.0"}, "auth", "example.com/app/auth", "0.3.0"},
		{"directory prefixed", []string{"auth/v0.5.0"}, "auth", "example.com/app/auth", "0.5.0"},
		{"skips non versions", []string{"latest", "release-2024", "v2.0.0"}, ".", "example.com/app", "2.0.0"},
		{"first match in lister order", []string{"v1.0.0", "auth/v5.0.0"}, "auth", "example.com/app/auth", "1.0.0"},
		{"other package prefix ignored", []string{"billing/v4.0.0"}, "auth", "example.com/app/auth", ""},
		{"partial version ignored", []string{"v1.2"}, ".", "example.com/app", ""},
		{"none", nil, ".", "example.com/app", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestResolver(t, WithTagLister(staticTags(tt.tags...)))
			assert.Equal(t, tt.want, r.versionFromTags("/repo", tt.pkgPath, tt.module))
		})
	}
}

func TestVersionFromFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"const", "package x\n\nconst Version = \"1.2.3\"\n", "1.2.3"},
		{"var with v", "package x\n\nvar Version = \"v0.9.0\"\n", "0.9.0"},
		{"upper case", "package x\n\nconst VERSION = \"2.0.0-beta.1\"\n", "2.0.0-beta.1"},
		{"lower case", "package x\n\nvar version=\"3.0.0+meta\"\n", "3.0.0+meta"},
		{"not semver", "package x\n\nconst Version = \"dev\"\n", ""},
		{"other constant", "package x\n\nconst AppVersion = \"1.0.0\"\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			testutil.WriteFile(t, filepath.Join(dir, VersionFile), tt.content)
			got, err := versionFromFile(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVersionFromFile_missing(t *testing.T) {
	got, err := versionFromFile(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWriteVersion_roundTrip(t *testing.T) {
	versions := []string{"0.0.1", "1.2.3", "10.20.30", "1.0.0-alpha", "1.0.0-rc.1+build.7", "2.0.0+20240101"}
	for _, v := range versions {
		t.Run(v, func(t *testing.T) {
			dir := t.TempDir()
			r, _ := newTestResolver(t)

			require.NoError(t, r.WriteVersion(dir, v))
			got, err := versionFromFile(dir)
			require.NoError(t, err)
			assert.Equal(t, v, got)

			// Rewriting an existing file round-trips too.
			require.NoError(t, r.WriteVersion(dir, "9.9.9"))
			require.NoError(t, r.WriteVersion(dir, v))
			got, err = versionFromFile(dir)
			require.NoError(t, err)
			assert.Equal(t, v, got)
		})
	}
}

func TestWriteVersion_preservesSurroundingBytes(t *testing.T) {
	dir := t.TempDir()
	original := "// Code owned by the platform team.\npackage build\n\nimport \"fmt\"\n\n" +
		"var Version = \"v1.0.0\" // bumped by release tooling\n\n" +
		"const version = \"0.1.0\"\n\nfunc Print() { fmt.Println(Version) }\n"
	testutil.WriteFile(t, filepath.Join(dir, VersionFile), original)
	r, _ := newTestResolver(t)

	require.NoError(t, r.WriteVersion(dir, "1.1.0"))

	want := "// Code owned by the platform team.\npackage build\n\nimport \"fmt\"\n\n" +
		"var Version = \"1.1.0\" // bumped by release tooling\n\n" +
		"const version = \"0.1.0\"\n\nfunc Print() { fmt.Println(Version) }\n"
	assert.Equal(t, want, testutil.ReadFile(t, filepath.Join(dir, VersionFile)))
}

func TestWriteVersion_keepsFileMode(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, VersionFile)
	require.NoError(t, os.WriteFile(p, []byte("package x\n\nconst Version = \"1.0.0\"\n"), 0600))
	r, _ := newTestResolver(t)

	require.NoError(t, r.WriteVersion(dir, "1.0.1"))
	info, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestWriteVersion_noDeclaration(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, VersionFile), "package x\n")
	r, _ := newTestResolver(t)

	err := r.WriteVersion(dir, "1.0.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no Version declaration found")
	assert.Equal(t, "package x\n", testutil.ReadFile(t, filepath.Join(dir, VersionFile)))
}

func TestWriteVersion_createUsesPackageClause(t *testing.T) {
	t.Run("from sibling file", func(t *testing.T) {
		dir := t.TempDir()
		testutil.WriteFile(t, filepath.Join(dir, "a_test.go"), "package widgets_test\n")
		testutil.WriteFile(t, filepath.Join(dir, "widgets.go"), "//go:build linux\n\n// Package widgets does things.\npackage widgets\n")
		r, _ := newTestResolver(t)

		require.NoError(t, r.WriteVersion(dir, "0.1.0"))
		content := testutil.ReadFile(t, filepath.Join(dir, VersionFile))
		assert.Equal(t, "package widgets\n\n// Version is the current version of the module.\nconst Version = \"0.1.0\"\n", content)
	})

	t.Run("main when alone", func(t *testing.T) {
		dir := t.TempDir()
		r, _ := newTestResolver(t)

		require.NoError(t, r.WriteVersion(dir, "0.1.0"))
		assert.Contains(t, testutil.ReadFile(t, filepath.Join(dir, VersionFile)), "package main\n")
	})
}
