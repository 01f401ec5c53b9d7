package menu

import (
	"strings"

	"github.com/go-editline/editline/editor"
	"github.com/go-editline/editline/ports"
)

// Columnar is a grid menu whose cell dimensions adapt to suggestion
// widths, wrapping within the allotted rows — the standard completion
// menu layout.
type Columnar struct {
	base
	completer ports.Completer
}

// NewColumnar returns a named Columnar menu over completer.
func NewColumnar(name string, completer ports.Completer) *Columnar {
	return &Columnar{base: base{name: name}, completer: completer}
}

// Activate shows the menu; actual suggestions are computed by the first
// UpdateValues call.
func (m *Columnar) Activate(buffer string) {
	m.active = true
	m.row, m.col, m.pageOffset = 0, 0, 0
}

// UpdateValues recomputes suggestions via the completer and clamps
// selection into range. Per spec.md §4.8, activation is suppressed — here,
// deactivated — when the suggestion set is empty.
func (m *Columnar) UpdateValues(completer ports.Completer, buffer string, pos int) {
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

// UpdateLayout recomputes columns/rows for the given terminal width.
func (m *Columnar) UpdateLayout(terminalWidth int) {
	const defaultColumns = 4
	const padding = 2
	m.computeLayout(terminalWidth, defaultColumns, padding)
}

// ReplaceInBuffer applies the currently selected suggestion.
func (m *Columnar) ReplaceInBuffer(ed *editor.Editor) bool {
	s, ok := m.Selected()
	if !ok {
		return false
	}
	return replaceInBufferAtSpan(ed, s.Span, s.Value, s.AppendWhitespace)
}

// QuickComplete reports whether exactly one suggestion is available right
// after an update, in which case it should apply without drawing, per
// spec.md §4.8 "Quick completion".
func (m *Columnar) QuickComplete() (ports.Suggestion, bool) {
	if len(m.suggestions) == 1 {
		return m.suggestions[0], true
	}
	return ports.Suggestion{}, false
}

// CommonPrefix returns the longest common prefix shared by all current
// suggestions, if it is longer than token, for "Partial completion".
func CommonPrefix(suggestions []ports.Suggestion, token string) (string, bool) {
	if len(suggestions) == 0 {
		return "", false
	}
	prefix := suggestions[0].Value
	for _, s := range suggestions[1:] {
		prefix = commonPrefixOf(prefix, s.Value)
		if prefix == "" {
			return "", false
		}
	}
	if len(prefix) > len(token) && strings.HasPrefix(prefix, token) {
		return prefix, true
	}
	return "", false
}

func commonPrefixOf(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}
