// Package editor applies EditCommand batches to a linebuffer.Buffer
// atomically, manages selection, records undo entries via editstack, and
// mediates the clipboard port on cut/paste commands.
package editor

import "github.com/go-editline/editline/editstack"

// Kind enumerates the EditCommand instruction set. The spec calls for
// roughly sixty variants; the set below covers every operation named in
// spec.md §3/§4.1/§4.6 (movement, cut/delete/paste, case, swap, replace,
// undo/redo, insertion, character search) without inventing ad hoc ones.
type Kind int

const (
	MoveLeft Kind = iota
	MoveRight
	MoveWordLeft
	MoveWordRight
	MoveBigWordLeft
	MoveBigWordRight
	MoveLineStart
	MoveLineEnd
	MoveBufferStart
	MoveBufferEnd

	InsertChar
	InsertString

	Backspace
	Delete
	DeleteWordLeft
	DeleteWordRight
	DeleteBigWordLeft
	DeleteBigWordRight
	DeleteToLineStart
	DeleteToLineEnd
	DeleteLine
	DeleteBuffer

	CutLeft
	CutRight
	CutWordLeft
	CutWordRight
	CutBigWordLeft
	CutBigWordRight
	CutToLineStart
	CutToLineEnd
	CutLine
	CutSelection

	PasteCut
	PasteCutBefore

	UppercaseWord
	LowercaseWord
	CapitalizeChar
	SwapWords
	SwapGraphemes
	SwapCase

	ReplaceChar

	FindCharRight
	FindCharLeft
	TillCharRight
	TillCharLeft

	Undo
	Redo

	SetSelectionAnchor
	ClearSelectionAnchor
)

// Class returns the undo-classification for a command kind.
func (k Kind) Class() editstack.Class {
	switch k {
	case MoveLeft, MoveRight, MoveWordLeft, MoveWordRight, MoveBigWordLeft, MoveBigWordRight,
		MoveLineStart, MoveLineEnd, MoveBufferStart, MoveBufferEnd, Undo, Redo,
		SetSelectionAnchor, ClearSelectionAnchor:
		return editstack.Ignore
	case InsertChar:
		return editstack.Coalesce
	default:
		return editstack.Full
	}
}

// Command is one atomic buffer mutation.
type Command struct {
	Kind  Kind
	Rune  rune
	Text  string
	Count int
}
