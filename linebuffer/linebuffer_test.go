package linebuffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAndDelete(t *testing.T) {
	b := New()
	b.InsertString("Hello World!")
	require.Equal(t, "Hello World!", b.Text())
	require.Equal(t, len("Hello World!"), b.InsertionPoint())
}

func TestBackspaceGraphemeFlag(t *testing.T) {
	// U+1F1FA U+1F1F8 is the regional-indicator pair for the US flag; it
	// must be removed as a single grapheme cluster, matching spec scenario 2.
	b := NewWithText("ab🇺🇸c")
	b.SetInsertionPoint(len("ab🇺🇸c") - len("c"))
	cut := b.DeleteGraphemeLeft()
	assert.Equal(t, "🇺🇸", cut)
	assert.Equal(t, "abc", b.Text())
}

func TestWordMotion(t *testing.T) {
	b := NewWithText("foo bar baz")
	b.SetInsertionPoint(0)
	b.MoveWordRight()
	assert.Equal(t, len("foo "), b.InsertionPoint())
	b.MoveWordRight()
	assert.Equal(t, len("foo bar "), b.InsertionPoint())
	b.MoveWordLeft()
	assert.Equal(t, len("foo "), b.InsertionPoint())
}

// TestWordVsBigWordPunctuation pins spec.md §3/§4.1's distinction: "word"
// motion breaks on punctuation as well as space, "big word" only on space,
// so on "foo-bar baz" a Unicode word-right stops at the hyphen but a
// big-word-right does not.
func TestWordVsBigWordPunctuation(t *testing.T) {
	b := NewWithText("foo-bar baz")
	assert.Equal(t, len("foo"), b.WordRight(0))
	assert.Equal(t, len("foo-bar "), b.BigWordRight(0))

	b2 := NewWithText("foo-bar baz")
	b2.SetInsertionPoint(len("foo-bar baz"))
	assert.Equal(t, len("foo-bar "), b2.WordLeft(b2.InsertionPoint()))
	assert.Equal(t, len("foo-bar "), b2.BigWordLeft(b2.InsertionPoint()))
}

func TestDeleteWordLeft(t *testing.T) {
	b := NewWithText("foo bar")
	b.SetInsertionPoint(len("foo bar"))
	cut := b.DeleteWordLeft()
	assert.Equal(t, "bar", cut)
	assert.Equal(t, "foo ", b.Text())
}

func TestSelectionRange(t *testing.T) {
	b := NewWithText("hello")
	b.SetInsertionPoint(1)
	b.SetSelectionAnchor()
	b.SetInsertionPoint(4)
	start, end, ok := b.Selection()
	require.True(t, ok)
	assert.Equal(t, 1, start)
	assert.Equal(t, 4, end)
	cut, had := b.DeleteSelection()
	require.True(t, had)
	assert.Equal(t, "ell", cut)
	assert.Equal(t, "ho", b.Text())
}

func TestSnapshotRestore(t *testing.T) {
	b := NewWithText("abc")
	snap := b.Snapshot()
	b.InsertString("def")
	require.Equal(t, "abcdef", b.Text())
	b.Restore(snap)
	assert.Equal(t, "abc", b.Text())
}

func TestDisplayWidthEmojiAndWide(t *testing.T) {
	assert.Equal(t, 2, RuneWidth('\U0001F600')) // emoji
	assert.Equal(t, 1, RuneWidth('a'))
	assert.Equal(t, 2, DisplayWidth("🇺🇸"))
}

func TestLineStartEnd(t *testing.T) {
	b := NewWithText("line1\nline2")
	b.SetInsertionPoint(len("line1\nli"))
	b.MoveLineStart()
	assert.Equal(t, len("line1\n"), b.InsertionPoint())
	b.MoveLineEnd()
	assert.Equal(t, len("line1\nline2"), b.InsertionPoint())
}
