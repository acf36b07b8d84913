package runner

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fbkclanna/monorel/internal/config"
)

// Runner runs one command with dir as the base working directory.
type Runner interface {
	Run(cmd config.Command, dir string) error
}

// Exec runs commands as child processes, without a shell.
type Exec struct {
	Stdout io.Writer // defaults to os.Stdout
	Stderr io.Writer // defaults to os.Stderr
}

// Run executes cmd in dir (joined with cmd.WorkDir when set), inheriting the
// environment plus cmd.Env. A non-zero exit is returned as *exec.ExitError.
func (e Exec) Run(cmd config.Command, dir string) error {
	if cmd.Command == "" {
		return fmt.Errorf("empty command")
	}

	c := exec.Command(cmd.Command, cmd.Args...) //nolint:gosec // commands come from the release config
	c.Dir = WorkDir(cmd, dir)
	c.Env = os.Environ()
	keys := make([]string, 0, len(cmd.Env))
	for k := range cmd.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		c.Env = append(c.Env, fmt.Sprintf("%s=%s", k, cmd.Env[k]))
	}
	c.Stdout = e.Stdout
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	c.Stderr = e.Stderr
	if c.Stderr == nil {
		c.Stderr = os.Stderr
	}
	return c.Run()
}

// WorkDir returns the directory cmd runs in when based at dir.
func WorkDir(cmd config.Command, dir string) string {
	if cmd.WorkDir != "" {
		return filepath.Join(dir, cmd.WorkDir)
	}
	return dir
}

// Call is one recorded invocation.
type Call struct {
	Command config.Command
	Dir     string
}

// Recorder is a Runner that records calls instead of executing them.
// Fail maps a command name to the error returned when it is run.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
	Fail  map[string]error
}

// Run records the call and returns the configured failure, if any.
func (r *Recorder) Run(cmd config.Command, dir string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Command: cmd, Dir: WorkDir(cmd, dir)})
	if err, ok := r.Fail[cmd.Command]; ok {
		return err
	}
	return nil
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}
