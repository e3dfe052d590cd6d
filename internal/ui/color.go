// Package ui prints status lines for the boshcf commands.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	Red    = color.New(color.FgRed)
	Green  = color.New(color.FgGreen)
	Yellow = color.New(color.FgYellow)
	Bold   = color.New(color.Bold)
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// DisableColorUnlessTerminal turns colour off when f is piped or redirected,
// so manifests and paths written to it stay plain.
func DisableColorUnlessTerminal(f *os.File) {
	if !IsTerminal(f) {
		color.NoColor = true
	}
}

// Success writes a green "✓" line.
func Success(w io.Writer, format string, args ...any) {
	status(w, Green, "✓", format, args)
}

// Error writes a red "✗" line.
func Error(w io.Writer, format string, args ...any) {
	status(w, Red, "✗", format, args)
}

// Warning writes a yellow "⚠" line.
func Warning(w io.Writer, format string, args ...any) {
	status(w, Yellow, "⚠", format, args)
}

// Field writes an indented "label: value" pair with a bold label.
func Field(w io.Writer, label string, value any) {
	Bold.Fprintf(w, "  %s:", label)
	fmt.Fprintf(w, " %v\n", value)
}

func status(w io.Writer, c *color.Color, mark, format string, args []any) {
	c.Fprintf(w, mark+" "+format+"\n", args...)
}
