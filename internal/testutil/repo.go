package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// CreateRepo creates a git repository with an initial commit in a temp directory.
// Returns the path to the work tree.
func CreateRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	run(t, dir, "git", "init", "-b", "main", ".")
	run(t, dir, "git", "config", "user.email", "test@example.com")
	run(t, dir, "git", "config", "user.name", "Test")
	run(t, dir, "git", "config", "tag.gpgSign", "false")
	run(t, dir, "git", "config", "commit.gpgSign", "false")

	WriteFile(t, filepath.Join(dir, "README.md"), "# test\n")
	CommitAll(t, dir, "initial commit")
	return dir
}

// CreateTaggedRepo creates a repository like CreateRepo and adds the given tags at HEAD.
func CreateTaggedRepo(t *testing.T, tags ...string) string {
	t.Helper()
	dir := CreateRepo(t)
	for _, tag := range tags {
		run(t, dir, "git", "tag", tag)
	}
	return dir
}

// CommitAll stages everything in dir and commits it.
func CommitAll(t *testing.T, dir, message string) {
	t.Helper()
	run(t, dir, "git", "add", ".")
	run(t, dir, "git", "commit", "-m", message)
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil { //nolint:gosec // test dir
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
}

// WriteModule writes a go.mod for module into dir, with one require line per dependency.
func WriteModule(t *testing.T, dir, module string, requires ...string) {
	t.Helper()
	content := "module " + module + "\n\ngo 1.22\n"
	if len(requires) > 0 {
		content += "\nrequire (\n"
		for _, r := range requires {
			content += "\t" + r + " v0.0.0\n"
		}
		content += ")\n"
	}
	WriteFile(t, filepath.Join(dir, "go.mod"), content)
}

// ReadFile returns the content of path or fails the test.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) //nolint:gosec // test file
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func run(t *testing.T, dir string, name string, args ...string) {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("command %s %v failed: %v", name, args, err)
	}
}
