package editor

import (
	"testing"

	"github.com/go-editline/editline/clipboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyInsertBatch(t *testing.T) {
	e := New(clipboard.NewInProcess())
	e.Apply([]Command{{Kind: InsertChar, Rune: 'h'}})
	e.Apply([]Command{{Kind: InsertChar, Rune: 'i'}})
	assert.Equal(t, "hi", e.Buffer().Text())
}

func TestCutThenPasteNormal(t *testing.T) {
	e := New(clipboard.NewInProcess())
	e.Apply([]Command{{Kind: InsertString, Text: "hello world"}})
	e.Buffer().SetInsertionPoint(len("hello world"))
	e.Apply([]Command{{Kind: CutWordLeft}})
	assert.Equal(t, "hello ", e.Buffer().Text())
	e.Apply([]Command{{Kind: PasteCut}})
	assert.Equal(t, "hello world", e.Buffer().Text())
}

func TestUndoRedoThroughEditor(t *testing.T) {
	e := New(clipboard.NewInProcess())
	e.Apply([]Command{{Kind: InsertString, Text: "abc"}})
	e.Apply([]Command{{Kind: InsertString, Text: "def"}})
	require.Equal(t, "abcdef", e.Buffer().Text())

	e.Apply([]Command{{Kind: Undo}})
	assert.Equal(t, "abc", e.Buffer().Text())

	e.Apply([]Command{{Kind: Redo}})
	assert.Equal(t, "abcdef", e.Buffer().Text())
}

func TestSelectionAwareBackspace(t *testing.T) {
	e := New(clipboard.NewInProcess())
	e.Apply([]Command{{Kind: InsertString, Text: "hello"}})
	e.Buffer().SetInsertionPoint(1)
	e.Buffer().SetSelectionAnchor()
	e.Buffer().SetInsertionPoint(4)
	e.Apply([]Command{{Kind: Backspace}})
	assert.Equal(t, "ho", e.Buffer().Text())
}

func TestCoalescingCollapsesTypedRunIntoOneUndo(t *testing.T) {
	e := New(clipboard.NewInProcess())
	for _, r := range "abc" {
		e.Apply([]Command{{Kind: InsertChar, Rune: r}})
	}
	require.Equal(t, "abc", e.Buffer().Text())
	e.Apply([]Command{{Kind: Undo}})
	assert.Equal(t, "", e.Buffer().Text())
}

func TestUppercaseWordFromCursor(t *testing.T) {
	e := New(clipboard.NewInProcess())
	e.Apply([]Command{{Kind: InsertString, Text: "hello world"}})
	e.Buffer().SetInsertionPoint(0)
	e.Apply([]Command{{Kind: UppercaseWord}})
	assert.Equal(t, "HELLO world", e.Buffer().Text())
	assert.Equal(t, len("HELLO"), e.Buffer().InsertionPoint())
}

func TestLowercaseWordFromCursor(t *testing.T) {
	e := New(clipboard.NewInProcess())
	e.Apply([]Command{{Kind: InsertString, Text: "HELLO WORLD"}})
	e.Buffer().SetInsertionPoint(0)
	e.Apply([]Command{{Kind: LowercaseWord}})
	assert.Equal(t, "hello WORLD", e.Buffer().Text())
}

func TestCapitalizeCharWord(t *testing.T) {
	e := New(clipboard.NewInProcess())
	e.Apply([]Command{{Kind: InsertString, Text: "hello world"}})
	e.Buffer().SetInsertionPoint(0)
	e.Apply([]Command{{Kind: CapitalizeChar}})
	assert.Equal(t, "Hello world", e.Buffer().Text())
}

func TestSwapCaseAtCursor(t *testing.T) {
	e := New(clipboard.NewInProcess())
	e.Apply([]Command{{Kind: InsertString, Text: "abc"}})
	e.Buffer().SetInsertionPoint(0)
	e.Apply([]Command{{Kind: SwapCase}})
	assert.Equal(t, "Abc", e.Buffer().Text())
}

func TestSwapGraphemesTransposesAroundCursor(t *testing.T) {
	e := New(clipboard.NewInProcess())
	e.Apply([]Command{{Kind: InsertString, Text: "ab"}})
	e.Buffer().SetInsertionPoint(1)
	e.Apply([]Command{{Kind: SwapGraphemes}})
	assert.Equal(t, "ba", e.Buffer().Text())
}

func TestSwapWordsTransposesAcrossCursor(t *testing.T) {
	e := New(clipboard.NewInProcess())
	e.Apply([]Command{{Kind: InsertString, Text: "foo bar"}})
	e.Buffer().SetInsertionPoint(0)
	e.Apply([]Command{{Kind: SwapWords}})
	assert.Equal(t, "bar foo", e.Buffer().Text())
}
