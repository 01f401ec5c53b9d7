package menu

import (
	"github.com/go-editline/editline/editor"
	"github.com/go-editline/editline/ports"
)

// DescriptionAlign controls where an IDE popup's description pane is drawn.
type DescriptionAlign int

const (
	PreferLeft DescriptionAlign = iota
	PreferRight
	AlwaysLeft
	AlwaysRight
)

// Popup is a vertical list anchored to the cursor, with an optional
// description pane.
type Popup struct {
	base
	completer   ports.Completer
	align       DescriptionAlign
	descWidth   int
}

// NewPopup returns a named Popup menu over completer.
func NewPopup(name string, completer ports.Completer, align DescriptionAlign) *Popup {
	return &Popup{base: base{name: name}, completer: completer, align: align}
}

// Activate shows the menu.
func (m *Popup) Activate(buffer string) {
	m.active = true
	m.row, m.pageOffset = 0, 0
}

// UpdateValues recomputes suggestions.
func (m *Popup) UpdateValues(completer ports.Completer, buffer string, pos int) {
	if completer == nil {
		completer = m.completer
	}
	if completer == nil {
		m.suggestions = nil
		m.active = false
		return
	}
	m.suggestions = completer.Complete(buffer, pos)
	if len(m.suggestions) == 0 {
		m.active = false
		return
	}
	m.clampSelection()
}

// UpdateLayout sizes the list as a single column, records its column width
// (widest suggestion plus padding) and the widest description; the
// effective alignment is resolved from these by EffectiveAlign.
func (m *Popup) UpdateLayout(terminalWidth int) {
	m.computeLayout(terminalWidth, 1, 2)
	maxDesc := 0
	for _, s := range m.suggestions {
		if len(s.Description) > maxDesc {
			maxDesc = len(s.Description)
		}
	}
	m.descWidth = maxDesc
}

// EffectiveAlign resolves PreferRight against available space, falling
// back to PreferLeft when the terminal width minus the column width is less
// than the widest description. PreferLeft is returned unchanged (there is no
// fallback to the right), and Always* never folds back.
func (m *Popup) EffectiveAlign(terminalWidth int) DescriptionAlign {
	switch m.align {
	case AlwaysLeft, AlwaysRight:
		return m.align
	case PreferRight:
		if terminalWidth-m.columnWidth < m.descWidth {
			return PreferLeft
		}
		return PreferRight
	default:
		return PreferLeft
	}
}

// ReplaceInBuffer applies the currently selected suggestion.
func (m *Popup) ReplaceInBuffer(ed *editor.Editor) bool {
	s, ok := m.Selected()
	if !ok {
		return false
	}
	return replaceInBufferAtSpan(ed, s.Span, s.Value, s.AppendWhitespace)
}
