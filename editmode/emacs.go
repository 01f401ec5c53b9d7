package editmode

import (
	"github.com/go-editline/editline/editor"
	"github.com/go-editline/editline/events"
	"github.com/go-editline/editline/keybindings"
	"github.com/go-editline/editline/ports"
)

// Emacs is stateless beyond its keybinding table: plain printable keys
// insert, Ctrl/Alt combos look up the chord trie. Grounded on the teacher's
// CreateEmacsProfile (internal/keybindings/profile_emacs.go).
type Emacs struct {
	bindings *keybindings.Bindings
}

// NewEmacs returns an Emacs mode with the default GNU-Emacs-style bindings.
func NewEmacs() *Emacs {
	return &Emacs{bindings: DefaultEmacsBindings()}
}

// WithBindings overrides the binding table (e.g. for a user config layer).
func (m *Emacs) WithBindings(b *keybindings.Bindings) *Emacs {
	m.bindings = b
	return m
}

// ModeIndicator reports the display tag for this mode.
func (m *Emacs) ModeIndicator() ports.EditModeTag { return ports.ModeEmacs }

// Parse translates one raw key into a ReedlineEvent.
func (m *Emacs) Parse(ks keybindings.KeyStroke) events.Event {
	if ks.Key == "esc" {
		m.bindings.CancelPending()
		return events.E(events.Esc)
	}

	if m.bindings.HasPending() {
		res, ev := m.bindings.Match(ks)
		switch res {
		case keybindings.Full:
			return ev
		case keybindings.Partial:
			return events.E(events.None)
		}
		// NoMatch cancels the chord (Match already cleared it) and the key
		// itself falls through to be reinterpreted from scratch, per
		// spec.md scenario 4: "Ctrl-X then a -> chord cancelled, a inserted
		// as ordinary character."
	}

	if ks.Mod == keybindings.ModNone && ks.Key == "" {
		return insertChar(ks.Rune)
	}
	if ks.Key == "enter" {
		return events.E(events.Enter)
	}
	if ks.Key == "backspace" {
		return events.EditEvent(editor.Command{Kind: editor.Backspace})
	}
	if ks.Key == "space" {
		return insertChar(' ')
	}
	if ks.Key == "tab" {
		return events.MenuEvent("")
	}
	return dispatchBindings(m.bindings, ks)
}

// DefaultEmacsBindings returns the standard Emacs chord table: character
// and word motion (C-f/b, left/right, M-f/b), line motion (C-a/e),
// kill/yank (C-k/u/w, M-d, C-y), history navigation (C-p/n and the up/down
// arrows), isearch (C-s/r), and the classic C-x C-c chord — grounded on
// CreateEmacsProfile's binding table.
func DefaultEmacsBindings() *keybindings.Bindings {
	b := keybindings.New()

	bind := func(chord string, ev events.Event) {
		seq, err := keybindings.ParseChord(chord)
		if err != nil {
			return
		}
		b.Bind(seq, ev)
	}

	bind("ctrl+f", events.EditEvent(editor.Command{Kind: editor.MoveRight}))
	bind("ctrl+b", events.EditEvent(editor.Command{Kind: editor.MoveLeft}))
	bind("right", events.EditEvent(editor.Command{Kind: editor.MoveRight}))
	bind("left", events.EditEvent(editor.Command{Kind: editor.MoveLeft}))
	bind("alt+f", events.EditEvent(editor.Command{Kind: editor.MoveWordRight}))
	bind("alt+b", events.EditEvent(editor.Command{Kind: editor.MoveWordLeft}))

	bind("ctrl+a", events.EditEvent(editor.Command{Kind: editor.MoveLineStart}))
	bind("ctrl+e", events.EditEvent(editor.Command{Kind: editor.MoveLineEnd}))

	bind("ctrl+p", events.E(events.PreviousHistory))
	bind("ctrl+n", events.E(events.NextHistory))
	bind("up", events.E(events.PreviousHistory))
	bind("down", events.E(events.NextHistory))

	bind("ctrl+d", events.E(events.CtrlD))
	bind("ctrl+h", events.EditEvent(editor.Command{Kind: editor.Backspace}))
	bind("ctrl+k", events.EditEvent(editor.Command{Kind: editor.CutToLineEnd}))
	bind("ctrl+u", events.EditEvent(editor.Command{Kind: editor.CutToLineStart}))
	bind("ctrl+w", events.EditEvent(editor.Command{Kind: editor.CutWordLeft}))
	bind("alt+d", events.EditEvent(editor.Command{Kind: editor.CutWordRight}))
	bind("ctrl+y", events.EditEvent(editor.Command{Kind: editor.PasteCut}))

	bind("ctrl+t", events.EditEvent(editor.Command{Kind: editor.SwapGraphemes}))
	bind("alt+t", events.EditEvent(editor.Command{Kind: editor.SwapWords}))
	bind("alt+u", events.EditEvent(editor.Command{Kind: editor.UppercaseWord}))
	bind("alt+l", events.EditEvent(editor.Command{Kind: editor.LowercaseWord}))
	bind("alt+c", events.EditEvent(editor.Command{Kind: editor.CapitalizeChar}))

	bind("ctrl+s", events.E(events.SearchHistory))
	bind("ctrl+r", events.E(events.SearchHistory))

	bind("ctrl+c", events.E(events.CtrlC))
	bind("ctrl+l", events.E(events.ClearScreen))
	bind("ctrl+g", events.E(events.Esc))

	// The classic chord: Ctrl-X Ctrl-C maps to CtrlD per spec.md scenario 4.
	bind("ctrl+x ctrl+c", events.E(events.CtrlD))

	return b
}
