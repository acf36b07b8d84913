package git

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Tags lists all tags in the repository, highest version first
// (git tag --sort=-v:refname).
func Tags(repoDir string) ([]string, error) {
	out, err := outputQuiet(repoDir, "tag", "--list", "--sort=-v:refname")
	if err != nil {
		return nil, err
	}
	var tags []string
	for _, line := range strings.Split(out, "\n") {
		if tag := strings.TrimSpace(line); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

// Tag creates a lightweight tag at HEAD.
func Tag(repoDir, name string) error {
	return runQuiet(repoDir, "tag", name)
}

// HeadCommit returns the short SHA of HEAD.
func HeadCommit(repoDir string) (string, error) {
	out, err := outputQuiet(repoDir, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// HeadCommitFull returns the full SHA of HEAD.
func HeadCommitFull(repoDir string) (string, error) {
	out, err := outputQuiet(repoDir, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// IsDirty returns true if the working tree has uncommitted changes under
// the given paths (the whole tree when none are given).
func IsDirty(repoDir string, paths ...string) (bool, error) {
	args := []string{"status", "--porcelain"}
	if len(paths) > 0 {
		args = append(append(args, "--"), paths...)
	}
	out, err := outputQuiet(repoDir, args...)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// IsRepo returns true if dir is inside a git work tree.
func IsRepo(dir string) bool {
	out, err := outputQuiet(dir, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(out) == "true"
}

// IsGitInstalled returns true if git is available on the system PATH.
func IsGitInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Version returns the output of git version.
func Version() (string, error) {
	out, err := outputQuiet(".", "version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Add stages the given paths in the repository.
func Add(dir string, paths ...string) error {
	args := append([]string{"add", "--"}, paths...)
	return runQuiet(dir, args...)
}

// Commit creates a commit with the given message.
// If user.name or user.email is not configured globally, it sets repo-local fallback values.
func Commit(dir, message string) error {
	if err := ensureCommitIdentity(dir); err != nil {
		return fmt.Errorf("setting commit identity: %w", err)
	}
	return runQuiet(dir, "commit", "-m", message)
}

// ensureCommitIdentity sets repo-local user.name/user.email if they are not configured.
func ensureCommitIdentity(dir string) error {
	if _, err := outputQuiet(dir, "config", "user.name"); err != nil {
		if err2 := runQuiet(dir, "config", "user.name", "monorel"); err2 != nil {
			return err2
		}
	}
	if _, err := outputQuiet(dir, "config", "user.email"); err != nil {
		if err2 := runQuiet(dir, "config", "user.email", "monorel@localhost"); err2 != nil {
			return err2
		}
	}
	return nil
}

// runQuiet executes a git command without printing stdout.
// Stderr is captured and included in the error message on failure.
func runQuiet(dir string, args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// outputQuiet executes a git command and returns its stdout without printing to the console.
func outputQuiet(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
