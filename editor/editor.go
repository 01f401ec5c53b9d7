package editor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-editline/editline/clipboard"
	"github.com/go-editline/editline/editstack"
	"github.com/go-editline/editline/linebuffer"
)

// Editor owns the line buffer, the undo stack, and the clipboard port, and
// applies EditCommand batches atomically.
type Editor struct {
	buf   *linebuffer.Buffer
	stack *editstack.Stack
	clip  clipboard.Clipboard
}

// New returns an Editor over an empty buffer.
func New(clip clipboard.Clipboard) *Editor {
	buf := linebuffer.New()
	return &Editor{
		buf:   buf,
		stack: editstack.New(buf.Snapshot()),
		clip:  clip,
	}
}

// Buffer returns the underlying line buffer (read/inspection only; mutate
// it exclusively through Apply).
func (e *Editor) Buffer() *linebuffer.Buffer { return e.buf }

// Reset empties the buffer and the undo history, as happens at the start of
// each read_line call.
func (e *Editor) Reset() {
	e.buf.Reset()
	e.stack.Reset(e.buf.Snapshot())
}

// ReplaceSpan deletes [start,end) and inserts text in its place as one Full
// undo step. Used by the menu subsystem, whose suggestion spans are
// arbitrary byte ranges rather than motion-relative edits expressible as an
// EditCommand.
func (e *Editor) ReplaceSpan(start, end int, text string) {
	e.buf.DeleteRange(start, end)
	e.buf.SetInsertionPoint(start)
	e.buf.InsertString(text)
	e.stack.Snapshot(e.buf.Snapshot(), editstack.Full)
}

// Apply applies a batch of commands in order as a single undo step,
// classified by the batch's dominant class: Full beats Coalesce beats
// Ignore. Selection-aware commands operate on the active selection, when
// present, and clear it afterward.
func (e *Editor) Apply(cmds []Command) {
	if len(cmds) == 0 {
		return
	}
	dominant := editstack.Ignore
	for _, c := range cmds {
		e.apply(c)
		if cls := c.Kind.Class(); cls < dominant {
			dominant = cls
		}
	}
	e.stack.Snapshot(e.buf.Snapshot(), dominant)
}

func (e *Editor) apply(c Command) {
	if consumedSelection := e.applyToSelectionIfPresent(c); consumedSelection {
		return
	}
	switch c.Kind {
	case MoveLeft:
		e.buf.MoveGraphemeLeft()
	case MoveRight:
		e.buf.MoveGraphemeRight()
	case MoveWordLeft:
		e.buf.MoveWordLeft()
	case MoveWordRight:
		e.buf.MoveWordRight()
	case MoveBigWordLeft:
		e.buf.SetInsertionPoint(e.buf.BigWordLeft(e.buf.InsertionPoint()))
	case MoveBigWordRight:
		e.buf.SetInsertionPoint(e.buf.BigWordRight(e.buf.InsertionPoint()))
	case MoveLineStart:
		e.buf.MoveLineStart()
	case MoveLineEnd:
		e.buf.MoveLineEnd()
	case MoveBufferStart:
		e.buf.MoveBufferStart()
	case MoveBufferEnd:
		e.buf.MoveBufferEnd()

	case InsertChar:
		e.buf.InsertChar(c.Rune)
	case InsertString:
		e.buf.InsertString(c.Text)

	case Backspace:
		e.buf.DeleteGraphemeLeft()
	case Delete:
		e.buf.DeleteGraphemeRight()
	case DeleteWordLeft:
		e.buf.DeleteWordLeft()
	case DeleteWordRight:
		e.buf.DeleteWordRight()
	case DeleteBigWordLeft:
		e.buf.DeleteRange(e.buf.BigWordLeft(e.buf.InsertionPoint()), e.buf.InsertionPoint())
	case DeleteBigWordRight:
		e.buf.DeleteRange(e.buf.InsertionPoint(), e.buf.BigWordRight(e.buf.InsertionPoint()))
	case DeleteToLineStart:
		e.deleteToLineStart()
	case DeleteToLineEnd:
		e.deleteToLineEnd()
	case DeleteLine:
		e.deleteLine()
	case DeleteBuffer:
		e.buf.DeleteRange(0, e.buf.Len())

	case CutLeft:
		e.cut(e.buf.DeleteGraphemeLeft(), clipboard.Normal)
	case CutRight:
		e.cut(e.buf.DeleteGraphemeRight(), clipboard.Normal)
	case CutWordLeft:
		e.cut(e.buf.DeleteWordLeft(), clipboard.Normal)
	case CutWordRight:
		e.cut(e.buf.DeleteWordRight(), clipboard.Normal)
	case CutBigWordLeft:
		start := e.buf.BigWordLeft(e.buf.InsertionPoint())
		e.cut(e.buf.DeleteRange(start, e.buf.InsertionPoint()), clipboard.Normal)
	case CutBigWordRight:
		end := e.buf.BigWordRight(e.buf.InsertionPoint())
		e.cut(e.buf.DeleteRange(e.buf.InsertionPoint(), end), clipboard.Normal)
	case CutToLineStart:
		e.cut(e.cutToLineStart(), clipboard.Normal)
	case CutToLineEnd:
		e.cut(e.cutToLineEnd(), clipboard.Normal)
	case CutLine:
		e.cut(e.cutLine(), clipboard.Lines)
	case CutSelection:
		if cut, ok := e.buf.DeleteSelection(); ok {
			e.cut(cut, clipboard.Normal)
		}

	case PasteCut:
		e.paste(false)
	case PasteCutBefore:
		e.paste(true)

	case UppercaseWord:
		e.transformWord(strings.ToUpper)
	case LowercaseWord:
		e.transformWord(strings.ToLower)
	case CapitalizeChar:
		e.transformWord(capitalizeWord)
	case SwapWords:
		e.swapWords()
	case SwapGraphemes:
		e.swapGraphemes()
	case SwapCase:
		e.swapCaseAtCursor()
	case ReplaceChar:
		if e.buf.InsertionPoint() < e.buf.Len() {
			end := e.buf.GraphemeRight(e.buf.InsertionPoint())
			e.buf.DeleteRange(e.buf.InsertionPoint(), end)
			e.buf.InsertChar(c.Rune)
			e.buf.SetInsertionPoint(e.buf.InsertionPoint() - len(string(c.Rune)))
		}

	case FindCharRight:
		if i := e.buf.FindCharRight(e.buf.InsertionPoint(), c.Rune); i >= 0 {
			e.buf.SetInsertionPoint(i)
		}
	case FindCharLeft:
		if i := e.buf.FindCharLeft(e.buf.InsertionPoint(), c.Rune); i >= 0 {
			e.buf.SetInsertionPoint(i)
		}
	case TillCharRight:
		if i := e.buf.FindCharRight(e.buf.InsertionPoint(), c.Rune); i >= 0 {
			e.buf.SetInsertionPoint(e.buf.GraphemeLeft(i))
		}
	case TillCharLeft:
		if i := e.buf.FindCharLeft(e.buf.InsertionPoint(), c.Rune); i >= 0 {
			e.buf.SetInsertionPoint(e.buf.GraphemeRight(i))
		}

	case Undo:
		if snap, ok := e.stack.Undo(); ok {
			e.buf.Restore(snap)
		}
	case Redo:
		if snap, ok := e.stack.Redo(); ok {
			e.buf.Restore(snap)
		}

	case SetSelectionAnchor:
		e.buf.SetSelectionAnchor()
	case ClearSelectionAnchor:
		e.buf.ClearSelection()
	}
}

// applyToSelectionIfPresent handles the subset of commands that are
// selection-aware per spec.md §4.6: when an anchor is set, a delete/cut
// command acts on the selection range instead of its usual motion-relative
// range, then clears the anchor.
func (e *Editor) applyToSelectionIfPresent(c Command) bool {
	isSelectionAware := c.Kind == Backspace || c.Kind == Delete ||
		c.Kind == CutLeft || c.Kind == CutRight || c.Kind == DeleteWordLeft ||
		c.Kind == DeleteWordRight
	if !isSelectionAware {
		return false
	}
	start, end, ok := e.buf.Selection()
	if !ok {
		return false
	}
	cut := e.buf.DeleteRange(start, end)
	e.buf.ClearSelection()
	if c.Kind == CutLeft || c.Kind == CutRight {
		e.cut(cut, clipboard.Normal)
	}
	return true
}

func (e *Editor) cut(text string, mode clipboard.Mode) {
	if text == "" {
		return
	}
	if e.clip != nil {
		e.clip.Set(text, mode)
	}
}

func (e *Editor) paste(before bool) {
	if e.clip == nil {
		return
	}
	text, mode := e.clip.Get()
	if text == "" {
		return
	}
	switch mode {
	case clipboard.Lines:
		e.pasteLines(text, before)
	default:
		e.buf.InsertString(text)
	}
}

func (e *Editor) pasteLines(text string, before bool) {
	e.buf.MoveLineStart()
	if !before {
		e.buf.MoveLineEnd()
		if e.buf.InsertionPoint() < e.buf.Len() {
			e.buf.MoveGraphemeRight()
		}
	}
	if text == "" || text[len(text)-1] != '\n' {
		text += "\n"
	}
	e.buf.InsertString(text)
}

func (e *Editor) deleteToLineStart() {
	start := e.lineStart(e.buf.InsertionPoint())
	e.buf.DeleteRange(start, e.buf.InsertionPoint())
}

func (e *Editor) deleteToLineEnd() {
	end := e.lineEnd(e.buf.InsertionPoint())
	e.buf.DeleteRange(e.buf.InsertionPoint(), end)
}

func (e *Editor) cutToLineStart() string {
	start := e.lineStart(e.buf.InsertionPoint())
	return e.buf.DeleteRange(start, e.buf.InsertionPoint())
}

func (e *Editor) cutToLineEnd() string {
	end := e.lineEnd(e.buf.InsertionPoint())
	return e.buf.DeleteRange(e.buf.InsertionPoint(), end)
}

func (e *Editor) deleteLine() {
	start, end := e.lineStart(e.buf.InsertionPoint()), e.lineEnd(e.buf.InsertionPoint())
	if end < e.buf.Len() {
		end++
	}
	e.buf.DeleteRange(start, end)
}

func (e *Editor) cutLine() string {
	start, end := e.lineStart(e.buf.InsertionPoint()), e.lineEnd(e.buf.InsertionPoint())
	if end < e.buf.Len() {
		end++
	}
	return e.buf.DeleteRange(start, end)
}

// transformWord applies f to the word at or following the cursor — skipping
// any separating punctuation/space first, matching Emacs's M-u/M-l/M-c
// word-relative case commands — and leaves the cursor at the word's end.
func (e *Editor) transformWord(f func(string) string) {
	text := e.buf.Text()
	start, end := nextWordRange(text, e.buf.InsertionPoint())
	if start == end {
		e.buf.SetInsertionPoint(end)
		return
	}
	word := text[start:end]
	e.buf.DeleteRange(start, end)
	e.buf.SetInsertionPoint(start)
	e.buf.InsertString(f(word))
}

// capitalizeWord upper-cases the word's first rune and lower-cases the rest.
func capitalizeWord(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return strings.ToUpper(string(r)) + strings.ToLower(s[size:])
}

// swapCaseAtCursor toggles the case of the grapheme at the cursor and
// advances past it, grounding Vi/Helix's "~" command.
func (e *Editor) swapCaseAtCursor() {
	pos := e.buf.InsertionPoint()
	end := e.buf.GraphemeRight(pos)
	if end <= pos {
		return
	}
	swapped := swapRuneCase(e.buf.Text()[pos:end])
	e.buf.DeleteRange(pos, end)
	e.buf.SetInsertionPoint(pos)
	e.buf.InsertString(swapped)
}

func swapRuneCase(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsLower(r):
			b.WriteRune(unicode.ToUpper(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// swapGraphemes implements Emacs's transpose-chars (C-t): swap the grapheme
// before the cursor with the one at the cursor, leaving the cursor past
// both. At the end of the buffer, where there is no grapheme to the right,
// it instead swaps the two preceding graphemes, matching Emacs's own
// end-of-line fallback.
func (e *Editor) swapGraphemes() {
	pos := e.buf.InsertionPoint()
	leftStart := e.buf.GraphemeLeft(pos)
	if leftStart == pos {
		return
	}
	text := e.buf.Text()
	rightEnd := e.buf.GraphemeRight(pos)
	if rightEnd == pos {
		leftLeftStart := e.buf.GraphemeLeft(leftStart)
		if leftLeftStart == leftStart {
			return
		}
		a, b := text[leftLeftStart:leftStart], text[leftStart:pos]
		e.buf.DeleteRange(leftLeftStart, pos)
		e.buf.SetInsertionPoint(leftLeftStart)
		e.buf.InsertString(b + a)
		return
	}
	a, b := text[leftStart:pos], text[pos:rightEnd]
	e.buf.DeleteRange(leftStart, rightEnd)
	e.buf.SetInsertionPoint(leftStart)
	e.buf.InsertString(b + a)
}

// swapWords implements Emacs's transpose-words (M-t): swap the word at or
// following the cursor with the next word after it, preserving whatever
// separates them, leaving the cursor past the second word.
func (e *Editor) swapWords() {
	text := e.buf.Text()
	pos := e.buf.InsertionPoint()
	start1, end1 := nextWordRange(text, pos)
	if start1 == end1 {
		return
	}
	start2, end2 := nextWordRange(text, end1)
	if start2 == end2 {
		return
	}
	before, word1, between, word2, after :=
		text[:start1], text[start1:end1], text[end1:start2], text[start2:end2], text[end2:]
	e.buf.DeleteRange(0, e.buf.Len())
	e.buf.InsertString(before + word2 + between + word1 + after)
	e.buf.SetInsertionPoint(len(before) + len(word2) + len(between) + len(word1))
}

// isWordRune classifies letters, digits, and underscore as word characters,
// matching linebuffer's word-motion class used by WordRight/WordLeft.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// nextWordRange returns the byte range of the word at or following pos,
// skipping any separating non-word runes first.
func nextWordRange(text string, pos int) (start, end int) {
	i := pos
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if isWordRune(r) {
			break
		}
		i += size
	}
	start = i
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isWordRune(r) {
			break
		}
		i += size
	}
	return start, i
}

func (e *Editor) lineStart(pos int) int {
	text := e.buf.Text()
	for i := pos - 1; i >= 0; i-- {
		if text[i] == '\n' {
			return i + 1
		}
	}
	return 0
}

func (e *Editor) lineEnd(pos int) int {
	text := e.buf.Text()
	for i := pos; i < len(text); i++ {
		if text[i] == '\n' {
			return i
		}
	}
	return len(text)
}
