package editmode

import (
	"github.com/go-editline/editline/editor"
	"github.com/go-editline/editline/events"
	"github.com/go-editline/editline/keybindings"
	"github.com/go-editline/editline/ports"
)

// ViSubMode is Vi's dual-mode state.
type ViSubMode int

const (
	ViNormal ViSubMode = iota
	ViInsert
)

// fragment is the small explicit accumulator state spec.md §4.5/§9 calls
// for: optional count, optional pending operator, optional second count,
// awaiting a motion. There is no teacher analogue for this; its shape is
// grounded on original_source/src/edit_mode/vi/command.rs, not translated.
type fragment struct {
	count1   int
	operator rune
	count2   int
	awaiting bool // true once an operator has been seen and a motion is awaited
}

func (f *fragment) reset() { *f = fragment{} }

func (f *fragment) total() int {
	n := 1
	if f.count1 > 0 {
		n = f.count1
	}
	if f.count2 > 0 {
		n *= f.count2
	}
	return n
}

// Vi implements the Vi EditMode: Normal-mode input accumulates a fragment
// and emits a single Edit batch or navigation event when the fragment
// completes; unknown fragments reset silently. Insert-mode behaves like
// Emacs but with its own (smaller) key table.
type Vi struct {
	sub          ViSubMode
	frag         fragment
	normalBinds  *keybindings.Bindings
	insertBinds  *keybindings.Bindings
	lastFindChar rune
	lastFindKind rune // 'f','F','t','T' — for ';' and ',' repeat
}

// NewVi returns a Vi mode starting in Insert (matching most shells'
// default behavior for a fresh prompt).
func NewVi() *Vi {
	return &Vi{
		sub:         ViInsert,
		normalBinds: DefaultViNormalBindings(),
		insertBinds: DefaultViInsertBindings(),
	}
}

// ModeIndicator reports the display tag for the current sub-mode.
func (m *Vi) ModeIndicator() ports.EditModeTag {
	if m.sub == ViNormal {
		return ports.ModeViNormal
	}
	return ports.ModeViInsert
}

// Parse translates one raw key, routing by sub-mode.
func (m *Vi) Parse(ks keybindings.KeyStroke) events.Event {
	if ks.Key == "esc" {
		m.frag.reset()
		m.insertBinds.CancelPending()
		m.normalBinds.CancelPending()
		if m.sub == ViInsert {
			m.sub = ViNormal
			return events.E(events.Repaint)
		}
		return events.E(events.None)
	}
	if m.sub == ViInsert {
		return m.parseInsert(ks)
	}
	return m.parseNormal(ks)
}

func (m *Vi) parseInsert(ks keybindings.KeyStroke) events.Event {
	if !m.insertBinds.HasPending() && ks.Mod == keybindings.ModNone && ks.Key == "" {
		return insertChar(ks.Rune)
	}
	if !m.insertBinds.HasPending() && ks.Key == "enter" {
		return events.E(events.Enter)
	}
	if !m.insertBinds.HasPending() && ks.Key == "backspace" {
		return events.EditEvent(editor.Command{Kind: editor.Backspace})
	}
	if !m.insertBinds.HasPending() && ks.Key == "space" {
		return insertChar(' ')
	}
	if !m.insertBinds.HasPending() && ks.Key == "tab" {
		return events.MenuEvent("")
	}
	return dispatchBindings(m.insertBinds, ks)
}

// parseNormal implements the count-operator-count-motion accumulator.
func (m *Vi) parseNormal(ks keybindings.KeyStroke) events.Event {
	if ks.Mod != keybindings.ModNone || ks.Key != "" {
		// Non-printable chords (arrows, Ctrl-*) bypass the fragment
		// accumulator and go straight through the binding table.
		m.frag.reset()
		return dispatchBindings(m.normalBinds, ks)
	}
	r := ks.Rune

	switch {
	case r >= '1' && r <= '9', r == '0' && ((m.frag.operator == 0 && m.frag.count1 > 0) || m.frag.count2 > 0):
		digit := int(r - '0')
		if m.frag.operator == 0 {
			m.frag.count1 = m.frag.count1*10 + digit
		} else {
			m.frag.count2 = m.frag.count2*10 + digit
		}
		return events.E(events.None)

	case r == 'i':
		m.frag.reset()
		m.sub = ViInsert
		return events.E(events.Repaint)
	case r == 'a':
		m.frag.reset()
		m.sub = ViInsert
		return events.EditEvent(editor.Command{Kind: editor.MoveRight})
	case r == 'A':
		m.frag.reset()
		m.sub = ViInsert
		return events.EditEvent(editor.Command{Kind: editor.MoveLineEnd})
	case r == 'I':
		m.frag.reset()
		m.sub = ViInsert
		return events.EditEvent(editor.Command{Kind: editor.MoveLineStart})

	case m.frag.operator == 0 && (r == 'd' || r == 'c' || r == 'y'):
		m.frag.operator = r
		return events.E(events.None)

	case isMotionRune(r):
		return m.completeFragment(r)

	default:
		m.frag.reset()
		return events.E(events.None)
	}
}

func isMotionRune(r rune) bool {
	switch r {
	case 'h', 'l', 'w', 'b', 'e', '0', '$', 'G':
		return true
	default:
		return false
	}
}

// completeFragment turns an accumulated count/operator/count/motion into a
// single Edit batch or navigation event, then resets.
func (m *Vi) completeFragment(motion rune) events.Event {
	n := m.frag.total()
	op := m.frag.operator
	m.frag.reset()

	if op == 0 {
		switch motion {
		case 'h':
			return repeatMove(editor.MoveLeft, n)
		case 'l':
			return repeatMove(editor.MoveRight, n)
		case 'w':
			return repeatMove(editor.MoveWordRight, n)
		case 'b':
			return repeatMove(editor.MoveWordLeft, n)
		case '0':
			return events.EditEvent(editor.Command{Kind: editor.MoveLineStart})
		case '$':
			return events.EditEvent(editor.Command{Kind: editor.MoveLineEnd})
		case 'G':
			return events.EditEvent(editor.Command{Kind: editor.MoveBufferEnd})
		}
		return events.E(events.None)
	}

	var kind editor.Kind
	switch {
	case op == 'd' && motion == 'w':
		kind = editor.DeleteWordRight
	case op == 'd' && motion == 'b':
		kind = editor.DeleteWordLeft
	case op == 'd' && motion == '$':
		kind = editor.DeleteToLineEnd
	case op == 'd' && motion == '0':
		kind = editor.DeleteToLineStart
	case op == 'c' && motion == 'w':
		m.sub = ViInsert
		kind = editor.DeleteWordRight
	case op == 'y' && motion == 'w':
		kind = editor.CutWordRight
	default:
		return events.E(events.None)
	}
	cmds := make([]editor.Command, 0, n)
	for i := 0; i < n; i++ {
		cmds = append(cmds, editor.Command{Kind: kind})
	}
	return events.EditEvent(cmds...)
}

func repeatMove(kind editor.Kind, n int) events.Event {
	cmds := make([]editor.Command, 0, n)
	for i := 0; i < n; i++ {
		cmds = append(cmds, editor.Command{Kind: kind})
	}
	return events.EditEvent(cmds...)
}

// DefaultViNormalBindings returns the Normal-mode chord table: hjkl motion
// is handled by the fragment accumulator in parseNormal directly (it needs
// count/operator context), so this table covers only bindings outside that
// accumulator — history on the up/down arrows, C-f/C-b as Down/Up, C-d,
// C-c, and C-r history search.
// Grounded on the teacher's CreateViProfile ContextResults table.
func DefaultViNormalBindings() *keybindings.Bindings {
	b := keybindings.New()
	bind := func(chord string, ev events.Event) {
		if seq, err := keybindings.ParseChord(chord); err == nil {
			b.Bind(seq, ev)
		}
	}
	bind("up", events.E(events.PreviousHistory))
	bind("down", events.E(events.NextHistory))
	bind("ctrl+f", events.E(events.Down))
	bind("ctrl+b", events.E(events.Up))
	bind("ctrl+d", events.E(events.CtrlD))
	bind("ctrl+c", events.E(events.CtrlC))
	bind("ctrl+r", events.E(events.SearchHistory))
	return b
}

// DefaultViInsertBindings returns Insert-mode's Emacs-like chord table
// (C-a/e/w/u/k, C-d, C-c, C-n/p completion navigation), grounded on CreateViProfile's
// ContextInput table.
func DefaultViInsertBindings() *keybindings.Bindings {
	b := keybindings.New()
	bind := func(chord string, ev events.Event) {
		if seq, err := keybindings.ParseChord(chord); err == nil {
			b.Bind(seq, ev)
		}
	}
	bind("ctrl+a", events.EditEvent(editor.Command{Kind: editor.MoveLineStart}))
	bind("ctrl+e", events.EditEvent(editor.Command{Kind: editor.MoveLineEnd}))
	bind("ctrl+w", events.EditEvent(editor.Command{Kind: editor.CutWordLeft}))
	bind("ctrl+u", events.EditEvent(editor.Command{Kind: editor.CutToLineStart}))
	bind("ctrl+k", events.EditEvent(editor.Command{Kind: editor.CutToLineEnd}))
	bind("ctrl+d", events.E(events.CtrlD))
	bind("ctrl+c", events.E(events.CtrlC))
	bind("ctrl+n", events.E(events.MenuNext))
	bind("ctrl+p", events.E(events.MenuPrevious))
	return b
}
