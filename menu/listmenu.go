package menu

import (
	"fmt"

	"github.com/go-editline/editline/editor"
	"github.com/go-editline/editline/ports"
)

// List is a paginated vertical list, used for history-search style menus,
// optionally showing an index prefix.
type List struct {
	base
	completer  ports.Completer
	showIndex  bool
	pageSize   int
}

// NewList returns a named List menu over completer.
func NewList(name string, completer ports.Completer, showIndex bool, pageSize int) *List {
	return &List{base: base{name: name}, completer: completer, showIndex: showIndex, pageSize: pageSize}
}

// Activate shows the menu.
func (m *List) Activate(buffer string) {
	m.active = true
	m.row, m.pageOffset = 0, 0
}

// UpdateValues recomputes suggestions.
func (m *List) UpdateValues(completer ports.Completer, buffer string, pos int) {
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

// UpdateLayout sizes the list as a single column with a fixed page size.
func (m *List) UpdateLayout(int) {
	m.columns = 1
	size := m.pageSize
	if size <= 0 {
		size = len(m.suggestions)
	}
	m.rows = size
}

// PageMarker renders the "N/M" page indicator text for the current page.
func (m *List) PageMarker() string {
	if m.rows <= 0 || len(m.suggestions) == 0 {
		return ""
	}
	totalPages := (len(m.suggestions) + m.rows - 1) / m.rows
	currentPage := m.pageOffset/m.rows + 1
	return fmt.Sprintf("%d/%d", currentPage, totalPages)
}

// IndexPrefix returns "N. " for display when showIndex is enabled.
func (m *List) IndexPrefix(i int) string {
	if !m.showIndex {
		return ""
	}
	return fmt.Sprintf("%d. ", i+1)
}

// ReplaceInBuffer applies the currently selected suggestion.
func (m *List) ReplaceInBuffer(ed *editor.Editor) bool {
	s, ok := m.Selected()
	if !ok {
		return false
	}
	return replaceInBufferAtSpan(ed, s.Span, s.Value, s.AppendWhitespace)
}
