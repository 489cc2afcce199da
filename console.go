package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Console reports progress to out and recovered problems to errOut.
// Colour is only used when the destination is a terminal.
type Console struct {
	out    io.Writer
	errOut io.Writer
	quiet  bool

	progress *color.Color
	include  *color.Color
	warn     *color.Color
	summary  *color.Color
}

// NewConsole creates a Console. With quiet set, per-directory and per-file
// progress lines are dropped; warnings and the summary are always written.
func NewConsole(out, errOut io.Writer, quiet bool) *Console {
	c := &Console{
		out:      out,
		errOut:   errOut,
		quiet:    quiet,
		progress: color.New(color.FgCyan),
		include:  color.New(color.FgGreen),
		warn:     color.New(color.FgYellow),
		summary:  color.New(color.Bold),
	}
	if !isTerminal(out) {
		c.progress.DisableColor()
		c.include.DisableColor()
		c.summary.DisableColor()
	}
	if !isTerminal(errOut) {
		c.warn.DisableColor()
	}
	return c
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Progress writes a traversal decision line.
func (c *Console) Progress(format string, args ...any) {
	if c == nil || c.quiet {
		return
	}
	c.progress.Fprintf(c.out, format+"\n", args...)
}

// Included writes the line for a file that made it into the output.
func (c *Console) Included(relPath string) {
	if c == nil || c.quiet {
		return
	}
	c.include.Fprintf(c.out, "Including file: %s\n", relPath)
}

// Warn writes a diagnostic for a condition the run recovered from.
func (c *Console) Warn(format string, args ...any) {
	if c == nil {
		return
	}
	c.warn.Fprintf(c.errOut, "Warning: "+format+"\n", args...)
}

// Summary writes a line that is shown even in quiet mode.
func (c *Console) Summary(format string, args ...any) {
	if c == nil {
		return
	}
	c.summary.Fprintf(c.out, format+"\n", args...)
}

// ProgressWriter returns the writer long-running steps may stream to,
// or nil when progress output is suppressed.
func (c *Console) ProgressWriter() io.Writer {
	if c == nil || c.quiet {
		return nil
	}
	return c.out
}
