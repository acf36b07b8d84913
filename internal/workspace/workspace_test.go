package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Masterminds/semver/v3"

	"github.com/fbkclanna/monorel/internal/config"
	"github.com/fbkclanna/monorel/internal/testutil"
)

func TestParseBump(t *testing.T) {
	tests := []struct {
		input string
		want  string
		err   bool
	}{
		{"major", "major", false},
		{"Minor", "minor", false},
		{"patch", "patch", false},
		{"1.4.0", "1.4.0", false},
		{"v2.0.0-rc.1", "2.0.0-rc.1", false},
		{"", "", true},
		{"huge", "", true},
		{"1.4", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBump(tt.input)
			if (err != nil) != tt.err {
				t.Errorf("ParseBump(%q) error = %v, wantErr %v", tt.input, err, tt.err)
			}
			if err == nil && got.String() != tt.want {
				t.Errorf("ParseBump(%q) = %q, want %q", tt.input, got.String(), tt.want)
			}
		})
	}
}

func TestBump_Next(t *testing.T) {
	current := semver.MustParse("1.2.3")
	tests := []struct {
		bump string
		want string
	}{
		{"major", "2.0.0"},
		{"minor", "1.3.0"},
		{"patch", "1.2.4"},
		{"5.0.0", "5.0.0"},
	}
	for _, tt := range tests {
		b, err := ParseBump(tt.bump)
		if err != nil {
			t.Fatal(err)
		}
		if got := b.Next(current).String(); got != tt.want {
			t.Errorf("%s.Next(1.2.3) = %s, want %s", tt.bump, got, tt.want)
		}
	}
	if current.String() != "1.2.3" {
		t.Errorf("Next must not modify current, got %s", current)
	}
}

// writeConfig is a test helper that writes a monorel.yaml to the given dir.
func writeConfig(t *testing.T, dir string, f *config.File) {
	t.Helper()
	if err := config.Save(filepath.Join(dir, "monorel.yaml"), f); err != nil {
		t.Fatalf("writing config: %v", err)
	}
}

func testConfig() *config.File {
	return &config.File{
		Version: 1,
		Packages: []config.Package{
			{Name: "auth", PackageConfig: config.PackageConfig{Path: "services/auth", Resolver: config.ResolverGo}},
		},
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteModule(t, filepath.Join(dir, "services", "auth"), "example.com/auth")
	writeConfig(t, dir, testConfig())

	ctx, err := Load(dir, "")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(ctx.Config.Packages) != 1 {
		t.Errorf("packages = %d, want 1", len(ctx.Config.Packages))
	}
	if ctx.Lock != nil {
		t.Error("Lock should be nil when no lock file exists")
	}
	if ctx.ConfigPath != filepath.Join(ctx.Root, "monorel.yaml") {
		t.Errorf("ConfigPath = %q, unexpected", ctx.ConfigPath)
	}
	if ctx.LockPath != filepath.Join(ctx.Root, LockFile) {
		t.Errorf("LockPath = %q, unexpected", ctx.LockPath)
	}
	got := ctx.PackageDir(ctx.Config.Packages[0].PackageConfig)
	if want := filepath.Join(ctx.Root, "services/auth"); got != want {
		t.Errorf("PackageDir() = %q, want %q", got, want)
	}
}

func TestLoad_explicitConfigPath(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteModule(t, filepath.Join(dir, "services", "auth"), "example.com/auth")
	if err := config.Save(filepath.Join(dir, "release.yaml"), testConfig()); err != nil {
		t.Fatal(err)
	}

	ctx, err := Load(dir, "release.yaml")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if filepath.Base(ctx.ConfigPath) != "release.yaml" {
		t.Errorf("ConfigPath = %q", ctx.ConfigPath)
	}
}

func TestLoad_withLock(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteModule(t, filepath.Join(dir, "services", "auth"), "example.com/auth")
	writeConfig(t, dir, testConfig())

	lockData := []byte(`version: 1
generated_at: "2026-02-15T00:00:00Z"
tool_version: "0.1.0"
packages:
  auth:
    path: services/auth
    resolver: go
    version: 0.3.0
    commit: "abc1234"
`)
	if err := os.WriteFile(filepath.Join(dir, LockFile), lockData, 0600); err != nil {
		t.Fatal(err)
	}

	ctx, err := Load(dir, "")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if ctx.Lock == nil {
		t.Fatal("Lock should not be nil when lock file exists")
	}
	if p, ok := ctx.Lock.Packages["auth"]; !ok || p.Version != "0.3.0" {
		t.Errorf("Lock.Packages[auth] = %+v", p)
	}
}

func TestLoad_missingConfig(t *testing.T) {
	_, err := Load(t.TempDir(), "")
	if !errors.Is(err, ErrNoConfig) {
		t.Fatalf("Load() error = %v, want ErrNoConfig", err)
	}
}

func TestLoad_invalidConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "monorel.yaml"), []byte(":::invalid"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(dir, ""); err == nil {
		t.Fatal("Load() should fail with invalid YAML")
	}
}

func TestLoad_missingPackageDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, testConfig())

	if _, err := Load(dir, ""); err == nil {
		t.Fatal("Load() should fail when a package path does not exist")
	}
}
