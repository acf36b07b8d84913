package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParse_valid(t *testing.T) {
	data := []byte(`
version: 1
packages:
  - name: auth
    path: services/auth
    resolver: go
    assets: ["dist/*"]
  - name: core
    path: .
    resolver: go
resolvers:
  go:
    prepublish:
      - command: go
        args: [test, ./...]
    publish:
      - command: git
        args: [push, --tags]
        dry_run: true
`)
	f, err := Parse(data, "yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Packages) != 2 {
		t.Fatalf("packages count = %d, want 2", len(f.Packages))
	}
	auth := f.Packages[0]
	if auth.Name != "auth" || auth.Path != "services/auth" || auth.Resolver != ResolverGo {
		t.Errorf("unexpected package: %+v", auth)
	}
	if auth.EffectiveVersionMode() != VersionSemantic {
		t.Errorf("version mode = %q, want semantic", auth.EffectiveVersionMode())
	}
	rc := f.Resolver(ResolverGo)
	if len(rc.Prepublish) != 1 || len(rc.Publish) != 1 {
		t.Fatalf("unexpected resolver config: %+v", rc)
	}
	if rc.Prepublish[0].RunsInDryRun() {
		t.Error("prepublish without dry_run should not run in dry run")
	}
	if !rc.Publish[0].RunsInDryRun() {
		t.Error("publish with dry_run: true should run in dry run")
	}
	if got := rc.Publish[0].String(); got != "git push --tags" {
		t.Errorf("command string = %q", got)
	}
}

func TestParse_toml(t *testing.T) {
	data := []byte(`
version = 1

[[packages]]
name = "auth"
path = "services/auth"
resolver = "go"

[resolvers.go]
publish = [{ command = "echo", args = ["hi"] }]
`)
	f, err := Parse(data, "toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Packages) != 1 || f.Packages[0].Path != "services/auth" {
		t.Errorf("unexpected packages: %+v", f.Packages)
	}
	if len(f.Resolver(ResolverGo).Publish) != 1 {
		t.Error("expected one publish command")
	}
}

func TestParse_json(t *testing.T) {
	data := []byte(`{"version":1,"packages":[{"name":"a","path":"a","resolver":"go"}]}`)
	f, err := Parse(data, "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Packages[0].Resolver != ResolverGo {
		t.Errorf("resolver = %q", f.Packages[0].Resolver)
	}
}

func TestParse_invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing version", `
packages: []
`},
		{"missing name", `
version: 1
packages:
  - path: a
    resolver: go
`},
		{"missing path", `
version: 1
packages:
  - name: a
    resolver: go
`},
		{"duplicate name", `
version: 1
packages:
  - name: a
    path: a
    resolver: go
  - name: a
    path: b
    resolver: go
`},
		{"unknown resolver", `
version: 1
packages:
  - name: a
    path: a
    resolver: cobol
`},
		{"absolute path", `
version: 1
packages:
  - name: a
    path: /tmp/a
    resolver: go
`},
		{"dotdot path", `
version: 1
packages:
  - name: a
    path: ../outside
    resolver: go
`},
		{"unsupported version mode", `
version: 1
packages:
  - name: a
    path: a
    resolver: go
    version_mode: calendar
`},
		{"empty command", `
version: 1
resolvers:
  go:
    publish:
      - args: [x]
`},
		{"unknown resolver section", `
version: 1
resolvers:
  npm: {}
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml), "yaml"); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestSaveLoadAndDiscover(t *testing.T) {
	dir := t.TempDir()
	if got := Discover(dir); got != "" {
		t.Fatalf("Discover on empty dir = %q, want empty", got)
	}

	f := &File{
		Version: 1,
		Packages: []Package{
			{Name: "core", PackageConfig: PackageConfig{Path: ".", Resolver: ResolverGo}},
		},
	}
	path := filepath.Join(dir, "monorel.yaml")
	if err := Save(path, f); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := Discover(dir); got != path {
		t.Errorf("Discover = %q, want %q", got, path)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	p, ok := loaded.Lookup("core")
	if !ok || p.Path != "." {
		t.Errorf("Lookup(core) = %+v, %v", p, ok)
	}
}

func TestSave_invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monorel.yaml")
	if err := Save(path, &File{Version: 2}); err == nil {
		t.Fatal("expected validation error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("invalid config should not be written")
	}
}

func TestFilterByNames(t *testing.T) {
	pkgs := []Package{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	t.Run("only", func(t *testing.T) {
		if got := FilterByNames(pkgs, []string{"a", "c"}, nil); len(got) != 2 {
			t.Errorf("got %d, want 2", len(got))
		}
	})
	t.Run("skip", func(t *testing.T) {
		if got := FilterByNames(pkgs, nil, []string{"b"}); len(got) != 2 {
			t.Errorf("got %d, want 2", len(got))
		}
	})
	t.Run("none", func(t *testing.T) {
		if got := FilterByNames(pkgs, nil, nil); len(got) != 3 {
			t.Errorf("got %d, want 3", len(got))
		}
	})
}

func TestFormat(t *testing.T) {
	tests := map[string]string{
		"monorel.yaml": "yaml",
		"monorel.yml":  "yaml",
		"monorel.TOML": "toml",
		"monorel.json": "json",
	}
	for in, want := range tests {
		if got := Format(in); got != want {
			t.Errorf("Format(%q) = %q, want %q", in, got, want)
		}
	}
}
