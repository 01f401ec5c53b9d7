package menu

import (
	"github.com/go-editline/editline/editor"
	"github.com/go-editline/editline/ports"
)

// External relinquishes painting to an external subprocess (e.g. fzf):
// the engine suspends its own output while the picker runs, then feeds the
// picker's stdout back in as the selected suggestion on completion.
type External struct {
	base
	run      func(buffer string) (ports.Suggestion, bool)
	result   ports.Suggestion
	hasResult bool
}

// NewExternal returns a named External menu. run is invoked with the
// current buffer contents when the menu activates; it should launch the
// subprocess, wait for it to exit, and return the chosen suggestion.
func NewExternal(name string, run func(buffer string) (ports.Suggestion, bool)) *External {
	return &External{base: base{name: name}, run: run}
}

// Activate runs the external picker synchronously. The caller (engine) is
// responsible for having already suspended terminal output before calling
// this and resuming/repainting after.
func (m *External) Activate(buffer string) {
	m.active = true
	m.hasResult = false
	if m.run == nil {
		m.active = false
		return
	}
	s, ok := m.run(buffer)
	m.result, m.hasResult = s, ok
	m.active = false
}

// UpdateValues is a no-op: External delegates all filtering to the
// subprocess rather than maintaining an in-process suggestion list.
func (m *External) UpdateValues(ports.Completer, string, int) {}

// UpdateLayout is a no-op: External draws nothing itself.
func (m *External) UpdateLayout(int) {}

// Selected returns the subprocess's chosen suggestion, if any.
func (m *External) Selected() (ports.Suggestion, bool) {
	return m.result, m.hasResult
}

// ReplaceInBuffer applies the picker's selected suggestion.
func (m *External) ReplaceInBuffer(ed *editor.Editor) bool {
	if !m.hasResult {
		return false
	}
	return replaceInBufferAtSpan(ed, m.result.Span, m.result.Value, m.result.AppendWhitespace)
}
