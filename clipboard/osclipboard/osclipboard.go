// Package osclipboard adapts the OS clipboard (via github.com/atotto/clipboard)
// to the clipboard.Clipboard port, for hosts that want cut/paste to
// interoperate with the rest of the desktop rather than stay process-local.
package osclipboard

import (
	"github.com/atotto/clipboard"

	editclip "github.com/go-editline/editline/clipboard"
)

// OSClipboard backs editclip.Clipboard with the host OS clipboard. Mode is
// tracked in-process since the OS clipboard itself is untyped text; a
// fallback in-process entry is used if the OS call fails (e.g. headless
// environments with no clipboard utility installed).
type OSClipboard struct {
	fallbackText string
	fallbackMode editclip.Mode
	lastErr      error
}

// New returns an OSClipboard adapter.
func New() *OSClipboard {
	return &OSClipboard{}
}

// Set writes text to the OS clipboard, remembering mode locally since the
// OS clipboard has no concept of it.
func (c *OSClipboard) Set(text string, mode editclip.Mode) {
	c.fallbackMode = mode
	c.fallbackText = text
	if err := clipboard.WriteAll(text); err != nil {
		c.lastErr = err
		return
	}
	c.lastErr = nil
}

// Get reads the OS clipboard; falls back to the last successfully-set text
// if the OS clipboard is unavailable.
func (c *OSClipboard) Get() (string, editclip.Mode) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return c.fallbackText, c.fallbackMode
	}
	return text, c.fallbackMode
}

// LastError returns the most recent OS clipboard error, if any, for hosts
// that want to surface a warning without failing the edit.
func (c *OSClipboard) LastError() error { return c.lastErr }
