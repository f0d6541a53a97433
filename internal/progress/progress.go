// Package progress reports progress of long template operations. Output
// goes to stderr to keep stdout clean for piping, and only on a terminal.
package progress

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// minItems is the minimum number of items before showing progress.
const minItems = 5

// Progress tracks and displays operation progress.
type Progress struct {
	w       io.Writer
	label   string
	total   int
	current int
	isTTY   bool
}

// New creates a progress reporter that writes to stderr.
// If total is less than minItems, progress updates are suppressed.
func New(label string, total int) *Progress {
	return NewWriter(os.Stderr, label, total)
}

// NewWriter creates a progress reporter on w. Updates are only printed
// when w is a terminal.
func NewWriter(w io.Writer, label string, total int) *Progress {
	tty := false
	if f, ok := w.(*os.File); ok {
		tty = term.IsTerminal(int(f.Fd()))
	}
	return &Progress{w: w, label: label, total: total, isTTY: tty}
}

// Increment advances the progress counter by one.
func (p *Progress) Increment() {
	p.current++
}

// Current returns how many items have completed.
func (p *Progress) Current() int { return p.current }

// Print writes the current progress, updating the line in place.
func (p *Progress) Print() {
	if p.total < minItems || !p.isTTY {
		return
	}
	pct := 0
	if p.total > 0 {
		pct = (p.current * 100) / p.total
	}
	fmt.Fprintf(p.w, "\r%s... %d/%d (%d%%)", p.label, p.current, p.total, pct)
}

// Done clears the progress line to make way for final output.
func (p *Progress) Done() {
	if p.total < minItems || !p.isTTY {
		return
	}
	fmt.Fprintf(p.w, "\r%40s\r", "")
}
