package keybindings

import (
	"testing"

	"github.com/go-editline/editline/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeyStrokeNotations(t *testing.T) {
	cases := []struct {
		in   string
		want KeyStroke
	}{
		{"ctrl+w", Ctrl('w')},
		{"^w", Ctrl('w')},
		{"c-w", Ctrl('w')},
		{"alt+x", Alt('x')},
		{"meta+x", Alt('x')},
		{"m-x", Alt('x')},
		{"up", Named("up")},
		{"a", Plain('a')},
	}
	for _, c := range cases {
		got, err := ParseKeyStroke(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestChordMatchesAcrossTwoKeys(t *testing.T) {
	b := New()
	b.Bind([]KeyStroke{Ctrl('x'), Ctrl('c')}, events.E(events.CtrlD))

	res, _ := b.Match(Ctrl('x'))
	assert.Equal(t, Partial, res)

	res, ev := b.Match(Ctrl('c'))
	assert.Equal(t, Full, res)
	assert.Equal(t, events.CtrlD, ev.Kind)
}

func TestNonMatchingKeyCancelsPendingChord(t *testing.T) {
	b := New()
	b.Bind([]KeyStroke{Ctrl('x'), Ctrl('c')}, events.E(events.CtrlD))

	res, _ := b.Match(Ctrl('x'))
	require.Equal(t, Partial, res)

	res, _ = b.Match(Plain('a'))
	assert.Equal(t, NoMatch, res)
	assert.False(t, b.HasPending())
}

func TestSingleKeyBindingStillFull(t *testing.T) {
	b := New()
	b.Bind([]KeyStroke{Ctrl('a')}, events.E(events.Up))
	res, ev := b.Match(Ctrl('a'))
	assert.Equal(t, Full, res)
	assert.Equal(t, events.Up, ev.Kind)
}

func TestCancelPending(t *testing.T) {
	b := New()
	b.Bind([]KeyStroke{Ctrl('x'), Ctrl('c')}, events.E(events.CtrlD))
	_, _ = b.Match(Ctrl('x'))
	require.True(t, b.HasPending())
	b.CancelPending()
	assert.False(t, b.HasPending())
}
