// Package menu implements the Menu subsystem of spec.md §4.8: a shared
// contract with four layout/policy variants (Columnar, IDE-style popup,
// List/history, External picker). Selection-cursor and pagination state is
// shared via the embeddable base type; each variant supplies its own
// update_layout geometry.
package menu

import (
	"strings"

	"github.com/go-editline/editline/editor"
	"github.com/go-editline/editline/linebuffer"
	"github.com/go-editline/editline/ports"
)

// Menu is the shared contract every variant implements.
type Menu interface {
	Name() string
	Activate(buffer string)
	Deactivate()
	Active() bool
	UpdateValues(completer ports.Completer, buffer string, pos int)
	UpdateLayout(terminalWidth int)
	Next()
	Previous()
	Up()
	Down()
	Left()
	Right()
	PageNext()
	PagePrevious()
	Selected() (ports.Suggestion, bool)
	Suggestions() []ports.Suggestion
	// ReplaceInBuffer applies the current selection through ed, replacing
	// its target span.
	ReplaceInBuffer(ed *editor.Editor) bool
}

// base holds the selection-cursor/pagination state shared by every
// variant, per spec.md §3's "Menu state" and §4.8's common operation set.
type base struct {
	name        string
	active      bool
	row, col    int
	pageOffset  int
	suggestions []ports.Suggestion
	columns     int
	columnWidth int
	rows        int
}

func (b *base) Name() string  { return b.name }
func (b *base) Active() bool  { return b.active }
func (b *base) Deactivate()   { b.active = false }
func (b *base) Suggestions() []ports.Suggestion { return b.suggestions }

func (b *base) Selected() (ports.Suggestion, bool) {
	idx := b.selectedIndex()
	if idx < 0 || idx >= len(b.suggestions) {
		return ports.Suggestion{}, false
	}
	return b.suggestions[idx], true
}

func (b *base) selectedIndex() int {
	if b.columns <= 0 {
		return b.row
	}
	return b.row*b.columns + b.col
}

func (b *base) clampSelection() {
	n := len(b.suggestions)
	if n == 0 {
		b.row, b.col = 0, 0
		return
	}
	idx := b.selectedIndex()
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	if b.columns > 0 {
		b.row, b.col = idx/b.columns, idx%b.columns
	} else {
		b.row = idx
	}
}

func (b *base) Next() {
	if len(b.suggestions) == 0 {
		return
	}
	idx := (b.selectedIndex() + 1) % len(b.suggestions)
	b.setIndex(idx)
}

func (b *base) Previous() {
	if len(b.suggestions) == 0 {
		return
	}
	idx := b.selectedIndex() - 1
	if idx < 0 {
		idx = len(b.suggestions) - 1
	}
	b.setIndex(idx)
}

func (b *base) setIndex(idx int) {
	if b.columns > 0 {
		b.row, b.col = idx/b.columns, idx%b.columns
	} else {
		b.row = idx
	}
}

func (b *base) Up() {
	if b.row > 0 {
		b.row--
		b.clampSelection()
	}
}

func (b *base) Down() {
	b.row++
	b.clampSelection()
}

func (b *base) Left() {
	if b.col > 0 {
		b.col--
	}
}

func (b *base) Right() {
	if b.columns > 0 && b.col < b.columns-1 {
		b.col++
		b.clampSelection()
	}
}

func (b *base) PageNext() {
	if b.rows <= 0 {
		return
	}
	b.pageOffset += b.rows
}

func (b *base) PagePrevious() {
	b.pageOffset -= b.rows
	if b.pageOffset < 0 {
		b.pageOffset = 0
	}
}

// computeLayout derives columns/columnWidth/rows from suggestion widths
// and the terminal width, per spec.md §4.8's update_layout contract.
func (b *base) computeLayout(terminalWidth, defaultColumns, padding int) {
	maxWidth := 0
	for _, s := range b.suggestions {
		if w := linebuffer.DisplayWidth(s.Value); w > maxWidth {
			maxWidth = w
		}
	}
	b.columnWidth = maxWidth + padding
	if b.columnWidth <= 0 {
		b.columnWidth = 1
	}
	cols := terminalWidth / b.columnWidth
	if cols > defaultColumns {
		cols = defaultColumns
	}
	if cols < 1 {
		cols = 1
	}
	b.columns = cols
	if len(b.suggestions) == 0 {
		b.rows = 0
		return
	}
	b.rows = (len(b.suggestions) + cols - 1) / cols
}

// replaceInBufferAtSpan applies the current selection's span replacement
// through ed, appending a trailing space when the suggestion asks for one.
func replaceInBufferAtSpan(ed *editor.Editor, sp ports.Span, text string, appendWhitespace bool) bool {
	if appendWhitespace && !strings.HasSuffix(text, " ") {
		text += " "
	}
	ed.ReplaceSpan(sp.Start, sp.End, text)
	return true
}
