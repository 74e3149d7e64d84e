// Package output renders command results for terminals, markdown consumers
// and machines.
package output

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Mode selects how command output is rendered.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto" // text on a TTY, markdown otherwise
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Valid reports whether m is a known mode. The empty mode counts as auto.
func (m Mode) Valid() bool {
	switch m {
	case "", ModeAuto, ModeText, ModeMarkdown, ModeJSON:
		return true
	}
	return false
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

// Resolve turns ModeAuto into a concrete mode for the given writer.
func Resolve(m Mode, w io.Writer) Mode {
	switch m {
	case ModeText, ModeMarkdown, ModeJSON:
		return m
	}
	if isTerminal(w) {
		return ModeText
	}
	return ModeMarkdown
}
