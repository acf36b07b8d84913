package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Table renders rows of data in aligned columns.
type Table struct {
	w    *tabwriter.Writer
	cols int
}

// NewTable creates a new table writer with the given column headers.
func NewTable(out io.Writer, headers ...string) *Table {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	t := &Table{w: tw, cols: len(headers)}
	_, _ = fmt.Fprintln(tw, strings.Join(headers, "\t"))
	return t
}

// Row appends a row of values. Missing trailing values render as "-".
func (t *Table) Row(values ...any) {
	n := len(values)
	if t.cols > n {
		n = t.cols
	}
	parts := make([]string, n)
	for i := range parts {
		if i >= len(values) {
			parts[i] = "-"
			continue
		}
		s := fmt.Sprintf("%v", values[i])
		if s == "" {
			s = "-"
		}
		parts[i] = s
	}
	_, _ = fmt.Fprintln(t.w, strings.Join(parts, "\t"))
}

// Flush writes the buffered output.
func (t *Table) Flush() error {
	return t.w.Flush()
}
