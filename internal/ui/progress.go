package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	doneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	skipStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// Progress reports release steps as "[n/total] label" lines.
type Progress struct {
	out       io.Writer
	total     int
	completed int
	mu        sync.Mutex
}

// NewProgress creates a progress tracker for n packages.
func NewProgress(out io.Writer, total int) *Progress {
	return &Progress{out: out, total: total}
}

// Done marks one package as released.
func (p *Progress) Done(label string) {
	p.step(doneStyle.Render("done"), label)
}

// Skip marks one package as skipped, e.g. under dry run.
func (p *Progress) Skip(label string) {
	p.step(skipStyle.Render("skip"), label)
}

// Fail prints a failure line without advancing the counter.
func (p *Progress) Fail(label string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, "[%d/%d] %s %s: %v\n", p.completed, p.total, failStyle.Render("fail"), label, err)
}

// Log prints an informational message within the progress context.
func (p *Progress) Log(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Progress) step(status, label string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.completed++
	_, _ = fmt.Fprintf(p.out, "[%d/%d] %s %s\n", p.completed, p.total, status, label)
}
