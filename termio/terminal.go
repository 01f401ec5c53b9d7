// Package termio provides the terminal driver the root editline package
// runs against: raw-mode entry/exit, dimension queries, and a pending-input
// probe used to disambiguate a lone Esc from the start of an escape
// sequence. Grounded on the teacher's internal/termio/terminal.go.
package termio

import (
	"os"

	"golang.org/x/term"
)

// Terminal abstracts terminal raw mode operations so callers can swap implementations in tests.
type Terminal interface {
	MakeRaw(fd int) (*term.State, error)
	Restore(fd int, state *term.State) error
}

// DefaultTerminal uses golang.org/x/term to manage terminal state.
type DefaultTerminal struct{}

// MakeRaw switches the terminal into raw mode.
func (DefaultTerminal) MakeRaw(fd int) (*term.State, error) {
	return term.MakeRaw(fd)
}

// Restore returns the terminal to its previous state.
func (DefaultTerminal) Restore(fd int, state *term.State) error {
	return term.Restore(fd, state)
}

// IsTerminal reports whether f is connected to a real terminal, used to
// decide whether raw mode makes sense at all (piped stdin skips it).
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Size returns the terminal's current (cols, rows) for f, falling back to
// (80, 24) when the ioctl fails.
func Size(f *os.File) (cols, rows int) {
	if w, h, err := term.GetSize(int(f.Fd())); err == nil && w > 0 && h > 0 {
		return w, h
	}
	return 80, 24
}

var pendingInputHook = pendingInput

// PendingInput reports whether input is immediately readable on the given
// descriptor: a positive value when it is, 0 when it is not. The default Unix
// probe returns 1 rather than the exact byte count; the Windows stub always
// returns 0.
func PendingInput(fd uintptr) (int, error) {
	return pendingInputHook(fd)
}

// SetPendingInputFunc overrides the pending-input probe; the returned closure restores the default implementation.
func SetPendingInputFunc(fn func(uintptr) (int, error)) func() {
	prev := pendingInputHook
	pendingInputHook = fn
	return func() { pendingInputHook = prev }
}
