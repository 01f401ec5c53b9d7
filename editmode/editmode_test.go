package editmode

import (
	"testing"

	"github.com/go-editline/editline/editor"
	"github.com/go-editline/editline/events"
	"github.com/go-editline/editline/keybindings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmacsPlainCharInserts(t *testing.T) {
	m := NewEmacs()
	ev := m.Parse(keybindings.Plain('a'))
	require.Equal(t, events.Edit, ev.Kind)
	require.Len(t, ev.Commands, 1)
	assert.Equal(t, editor.InsertChar, ev.Commands[0].Kind)
	assert.Equal(t, 'a', ev.Commands[0].Rune)
}

func TestEmacsChordCtrlXCtrlC(t *testing.T) {
	m := NewEmacs()
	ev := m.Parse(keybindings.Ctrl('x'))
	assert.Equal(t, events.None, ev.Kind)

	ev = m.Parse(keybindings.Ctrl('c'))
	assert.Equal(t, events.CtrlD, ev.Kind)
}

func TestEmacsChordCancelledByMismatchedKey(t *testing.T) {
	m := NewEmacs()
	_ = m.Parse(keybindings.Ctrl('x'))
	ev := m.Parse(keybindings.Plain('a'))
	// per spec.md scenario 4: the chord is cancelled and 'a' is inserted as
	// an ordinary character, not swallowed as a no-op.
	require.Equal(t, events.Edit, ev.Kind)
	require.Len(t, ev.Commands, 1)
	assert.Equal(t, editor.InsertChar, ev.Commands[0].Kind)
	assert.Equal(t, 'a', ev.Commands[0].Rune)
	assert.False(t, m.bindings.HasPending())
}

func TestViInsertModeDefaultsToInsertAndSwitchesOnEsc(t *testing.T) {
	m := NewVi()
	ev := m.Parse(keybindings.Plain('a'))
	require.Equal(t, events.Edit, ev.Kind)

	ev = m.Parse(keybindings.Named("esc"))
	assert.Equal(t, events.Repaint, ev.Kind)
	assert.Equal(t, ViNormal, m.sub)
}

func TestViNormalModeMotion(t *testing.T) {
	m := NewVi()
	m.sub = ViNormal
	ev := m.Parse(keybindings.Plain('l'))
	require.Equal(t, events.Edit, ev.Kind)
	require.Len(t, ev.Commands, 1)
	assert.Equal(t, editor.MoveRight, ev.Commands[0].Kind)
}

func TestViNormalModeOperatorMotion(t *testing.T) {
	m := NewVi()
	m.sub = ViNormal
	ev := m.Parse(keybindings.Plain('d'))
	assert.Equal(t, events.None, ev.Kind)
	ev = m.Parse(keybindings.Plain('w'))
	require.Equal(t, events.Edit, ev.Kind)
	require.Len(t, ev.Commands, 1)
	assert.Equal(t, editor.DeleteWordRight, ev.Commands[0].Kind)
}

func TestViNormalModeCountedMotion(t *testing.T) {
	m := NewVi()
	m.sub = ViNormal
	_ = m.Parse(keybindings.Plain('3'))
	ev := m.Parse(keybindings.Plain('l'))
	require.Equal(t, events.Edit, ev.Kind)
	assert.Len(t, ev.Commands, 3)
}

func TestHelixDeleteOperatesOnSelection(t *testing.T) {
	m := NewHelix()
	ev := m.Parse(keybindings.Plain('d'))
	require.Equal(t, events.Edit, ev.Kind)
	require.Len(t, ev.Commands, 1)
	assert.Equal(t, editor.CutSelection, ev.Commands[0].Kind)
}
