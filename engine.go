// Package editline implements the Engine: the read_line state machine that
// wires the editor, edit mode, history, menus, painter, external printer,
// and terminal driver together into one blocking call per spec.md §4.12.
// Grounded on the teacher's internal/interactive controller.go main loop
// (setupTerminal/runMainLoop/readNextRune) and internal/prompt/prompt.go's
// signal-guarded raw-mode teardown.
package editline

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/go-editline/editline/editmode"
	"github.com/go-editline/editline/editor"
	"github.com/go-editline/editline/events"
	"github.com/go-editline/editline/externalprinter"
	"github.com/go-editline/editline/history"
	"github.com/go-editline/editline/keybindings"
	"github.com/go-editline/editline/linebuffer"
	"github.com/go-editline/editline/menu"
	"github.com/go-editline/editline/painter"
	"github.com/go-editline/editline/ports"
	"github.com/go-editline/editline/termio"
)

type engineState int

const (
	stateRegular engineState = iota
	stateHistorySearch
	stateHistoryTraversal
	stateMenuActive
)

// Engine is the assembled read_line machine. Build one via Builder.
type Engine struct {
	ed   *editor.Editor
	mode editmode.EditMode

	hist       history.History
	histCursor *history.Cursor
	lastSaved  *int64

	completer   ports.Completer
	hinter      ports.Hinter
	highlighter ports.Highlighter
	validator   ports.Validator

	menus      []menu.Menu
	activeMenu menu.Menu
	printer    *externalprinter.Printer

	exclusionPrefix string
	sessionID       string

	ansiEnabled     bool
	bracketedPaste  bool
	quickCompletion bool
	cursorShapes    map[ports.EditModeTag]CursorShape

	stdin  *os.File
	stdout *os.File
	term   termio.Terminal

	painter *painter.Painter
	state   engineState

	searchTerm    string
	searchPending string
	searchStatus  ports.SearchStatus

	anchor painter.Anchor
	dirty  bool

	rawState *term.State
	rawFD    int
	inRaw    bool
	lastMode ports.EditModeTag

	logf func(format string, args ...any)
}

const (
	escBracketedPasteOn  = "\x1b[?2004h"
	escBracketedPasteOff = "\x1b[?2004l"
)

// cursorShapeSeq renders the DECSCUSR sequence for shape, or "" for the
// terminal default.
func cursorShapeSeq(shape CursorShape) string {
	switch shape {
	case CursorBlock:
		return "\x1b[2 q"
	case CursorBlockBlink:
		return "\x1b[1 q"
	case CursorUnderline:
		return "\x1b[4 q"
	case CursorUnderlineBlink:
		return "\x1b[3 q"
	case CursorBar:
		return "\x1b[6 q"
	case CursorBarBlink:
		return "\x1b[5 q"
	default:
		return ""
	}
}

// SetLogger installs a hook called with non-fatal port errors (history
// save/update/sync failures), per spec.md §4.13's "logged via a
// host-supplied hook" clause. A nil logger discards them.
func (e *Engine) SetLogger(fn func(format string, args ...any)) { e.logf = fn }

func (e *Engine) log(format string, args ...any) {
	if e.logf != nil {
		e.logf(format, args...)
	}
}

// HistoryMut exposes the history port for host-side maintenance calls
// outside of a ReadLine call (e.g. a manual Sync on shutdown).
func (e *Engine) HistoryMut() history.History { return e.hist }

// ClearScrollback clears the terminal's visible screen, independent of any
// active ReadLine call.
func (e *Engine) ClearScrollback() { e.painter.ClearScreen() }

// PrintHistory writes each saved history item to stdout, oldest first, one
// per line, outside the editing region. Intended for a host "history"
// command.
func (e *Engine) PrintHistory(limit int) error {
	items, err := e.hist.Search(history.Query{Direction: history.Backward, Limit: limit})
	if err != nil {
		return err
	}
	var b strings.Builder
	for i := len(items) - 1; i >= 0; i-- {
		b.WriteString(items[i].CommandLine)
		b.WriteString("\r\n")
	}
	_, err = io.WriteString(e.stdout, b.String())
	return err
}

// UpdateLastCommandContext mutates the most recently saved history item,
// e.g. to record exit status/duration once a delegated host command
// completes.
func (e *Engine) UpdateLastCommandContext(fn func(history.Item) history.Item) error {
	if e.hist == nil || e.lastSaved == nil {
		return nil
	}
	return e.hist.Update(*e.lastSaved, fn)
}

// ForceRepaint repaints immediately with the given prompt, without waiting
// on a dirty flag or blocking for input.
func (e *Engine) ForceRepaint(prompt ports.Prompt) {
	e.dirty = true
	e.repaint(prompt)
}

// Suspend drops raw mode, for a host handing the terminal to a subprocess
// (external picker, ExecuteHostCommand delegation).
func (e *Engine) Suspend() error {
	if !e.inRaw {
		return nil
	}
	err := e.term.Restore(e.rawFD, e.rawState)
	e.inRaw = false
	return err
}

// Resume re-enters raw mode after a prior Suspend.
func (e *Engine) Resume() error {
	if e.inRaw {
		return nil
	}
	return e.enterRaw()
}

func (e *Engine) enterRaw() error {
	e.rawFD = int(e.stdin.Fd())
	if !termio.IsTerminal(e.stdin) {
		return nil
	}
	st, err := e.term.MakeRaw(e.rawFD)
	if err != nil {
		return err
	}
	e.rawState = st
	e.inRaw = true
	if e.bracketedPaste {
		_, _ = io.WriteString(e.stdout, escBracketedPasteOn)
	}
	return nil
}

func (e *Engine) leaveRaw() {
	if e.inRaw {
		if e.bracketedPaste {
			_, _ = io.WriteString(e.stdout, escBracketedPasteOff)
		}
		_ = e.term.Restore(e.rawFD, e.rawState)
		e.inRaw = false
	}
}

// ReadLine blocks, editing one line, until it returns a terminal Signal.
// Raw mode is entered on call and left on every exit path, per spec.md §6's
// terminal I/O contract — mirroring the teacher's setupTerminal/runMainLoop
// defer-guarded lifecycle.
func (e *Engine) ReadLine(prompt ports.Prompt) (Signal, error) {
	e.ed.Reset()
	e.state = stateRegular
	e.activeMenu = nil
	e.histCursor = nil
	if e.hist != nil {
		e.histCursor = history.NewCursor(e.hist)
	}
	e.searchTerm, e.searchStatus = "", ports.SearchPassing
	e.dirty = true
	e.anchor = painter.Anchor{}

	if err := e.enterRaw(); err != nil {
		return Signal{}, err
	}
	defer e.leaveRaw()

	reader := newKeyReader(e.stdin, uintptr(e.rawFD), e.inRaw)

	for {
		if e.printer != nil {
			if msgs := e.printer.Drain(); len(msgs) > 0 {
				for _, m := range msgs {
					e.painter.PrintAsync(e.anchor, m, e.inRaw)
					e.anchor.Row += 1 + strings.Count(m, "\n")
				}
				e.dirty = true
			}
		}

		if e.dirty {
			e.repaint(prompt)
		}

		ks, err := reader.Next()
		if err != nil {
			return Signal{}, err
		}

		if e.bracketedPaste && ks.Key == "paste-start" {
			pasted, err := e.readPastedText(reader)
			if err != nil {
				return Signal{}, err
			}
			if e.activeMenu != nil {
				e.activeMenu.Deactivate()
				e.activeMenu = nil
				e.state = stateRegular
			}
			e.ed.Apply([]editor.Command{{Kind: editor.InsertString, Text: pasted}})
			e.dirty = true
			continue
		}

		ev := e.routeKey(ks)
		sig, done, err := e.dispatch(ev, prompt)
		if err != nil {
			return Signal{}, err
		}
		if done {
			return sig, nil
		}
	}
}

func (e *Engine) routeKey(ks keybindings.KeyStroke) events.Event {
	return e.mode.Parse(ks)
}

// readPastedText accumulates keystrokes between a bracketed-paste start and
// end marker into one string, normalizing CR/LF to LF, per spec.md §6's
// "delivers pasted text as a single Edit([InsertString(...)])" contract.
func (e *Engine) readPastedText(reader *keyReader) (string, error) {
	var b strings.Builder
	for {
		ks, err := reader.Next()
		if err != nil {
			return "", err
		}
		if ks.Key == "paste-end" {
			return b.String(), nil
		}
		switch {
		case ks.Key == "enter":
			b.WriteByte('\n')
		case ks.Key == "" && ks.Mod == keybindings.ModNone:
			b.WriteRune(ks.Rune)
		}
	}
}

// dispatch implements spec.md §4.12 step 5. Returns (signal, true, nil) on
// an exit path, (zero, false, nil) to keep looping, or a non-nil error on a
// fatal terminal failure.
func (e *Engine) dispatch(ev events.Event, prompt ports.Prompt) (Signal, bool, error) {
	switch ev.Kind {
	case events.None:
		return Signal{}, false, nil

	case events.CtrlC:
		return CtrlCSignal(), true, nil

	case events.CtrlD:
		if e.ed.Buffer().Len() == 0 {
			return CtrlDSignal(), true, nil
		}
		e.ed.Apply([]editor.Command{{Kind: editor.Delete}})
		e.dirty = true
		return Signal{}, false, nil

	case events.Enter:
		if e.state == stateHistorySearch {
			e.state = stateRegular
			if e.histCursor != nil {
				e.histCursor.Abort()
			}
		}
		if e.state == stateMenuActive {
			e.acceptActiveMenu()
			return Signal{}, false, nil
		}
		return e.dispatchEnter()

	case events.Edit:
		if e.state == stateHistorySearch {
			e.editSearchTerm(ev.Commands)
			return Signal{}, false, nil
		}
		e.ed.Apply(ev.Commands)
		e.dirty = true
		if e.histCursor != nil && e.histCursor.Active() {
			e.histCursor.Abort()
		}
		if e.state == stateMenuActive {
			e.refreshActiveMenu()
		} else {
			e.quickCompleteAfterEdit(ev.Commands)
		}
		return Signal{}, false, nil

	case events.Esc:
		if e.activeMenu != nil {
			e.activeMenu.Deactivate()
			e.activeMenu = nil
			e.state = stateRegular
		}
		if e.state == stateHistorySearch {
			e.setBufferText(e.searchPending)
			if e.histCursor != nil {
				e.histCursor.Abort()
			}
			e.state = stateRegular
		} else if e.histCursor != nil && e.histCursor.Active() {
			e.histCursor.Abort()
			e.state = stateRegular
		}
		e.dirty = true
		return Signal{}, false, nil

	case events.ClearScreen:
		e.painter.ClearScreen()
		e.anchor = painter.Anchor{}
		e.dirty = true
		return Signal{}, false, nil

	case events.Repaint:
		e.dirty = true
		return Signal{}, false, nil

	case events.Resize:
		for _, m := range e.menus {
			m.UpdateLayout(ev.Width)
		}
		e.dirty = true
		return Signal{}, false, nil

	case events.PreviousHistory:
		e.historyPrevious()
		return Signal{}, false, nil

	case events.NextHistory:
		e.historyNext()
		return Signal{}, false, nil

	case events.SearchHistory:
		if e.state == stateHistorySearch {
			e.historySearchOlder()
		} else {
			e.enterHistorySearch()
		}
		return Signal{}, false, nil

	case events.Menu:
		if e.state == stateMenuActive && e.menuMatches(ev.MenuName) {
			// A second Menu(name) while already active (e.g. repeated Tab)
			// cycles the highlighted suggestion rather than restarting
			// activation and losing the current selection.
			e.activeMenu.Next()
			e.dirty = true
			return Signal{}, false, nil
		}
		e.activateMenu(ev.MenuName)
		return Signal{}, false, nil

	case events.MenuNext:
		if e.activeMenu != nil {
			e.activeMenu.Next()
			e.dirty = true
		}
		return Signal{}, false, nil
	case events.MenuPrevious:
		if e.activeMenu != nil {
			e.activeMenu.Previous()
			e.dirty = true
		}
		return Signal{}, false, nil
	case events.MenuUp:
		if e.activeMenu != nil {
			e.activeMenu.Up()
			e.dirty = true
		}
		return Signal{}, false, nil
	case events.MenuDown:
		if e.activeMenu != nil {
			e.activeMenu.Down()
			e.dirty = true
		}
		return Signal{}, false, nil
	case events.MenuLeft:
		if e.activeMenu != nil {
			e.activeMenu.Left()
			e.dirty = true
		}
		return Signal{}, false, nil
	case events.MenuRight:
		if e.activeMenu != nil {
			e.activeMenu.Right()
			e.dirty = true
		}
		return Signal{}, false, nil
	case events.MenuPageNext:
		if e.activeMenu != nil {
			e.activeMenu.PageNext()
			e.dirty = true
		}
		return Signal{}, false, nil
	case events.MenuPagePrevious:
		if e.activeMenu != nil {
			e.activeMenu.PagePrevious()
			e.dirty = true
		}
		return Signal{}, false, nil

	case events.ExecuteHostCommand:
		return Success(ev.HostCommand), true, nil

	case events.Multiple, events.UntilFound:
		for _, sub := range ev.Events {
			sig, done, err := e.dispatch(sub, prompt)
			if err != nil || done {
				return sig, done, err
			}
			if ev.Kind == events.UntilFound && sub.Kind != events.None {
				break
			}
		}
		return Signal{}, false, nil

	default:
		return Signal{}, false, nil
	}
}

func (e *Engine) dispatchEnter() (Signal, bool, error) {
	line := e.ed.Buffer().Text()
	verdict := ports.Complete
	if e.validator != nil {
		verdict = e.validator.Validate(line)
	}
	if verdict == ports.Incomplete {
		e.ed.Apply([]editor.Command{{Kind: editor.InsertChar, Rune: '\n'}})
		e.dirty = true
		return Signal{}, false, nil
	}

	if e.hist != nil && !history.IsExcluded(line, e.exclusionPrefix) && line != "" {
		item, err := e.hist.Save(history.Item{SessionID: e.sessionID, CommandLine: line})
		if err != nil {
			e.log("editline: history save failed: %v", err)
		} else {
			id := item.ID
			e.lastSaved = &id
		}
	}
	return Success(line), true, nil
}

func (e *Engine) historyPrevious() {
	if e.histCursor == nil || e.state == stateHistorySearch {
		return
	}
	if !e.histCursor.Active() {
		if err := e.histCursor.Enter(e.ed.Buffer().Text()); err != nil {
			e.log("editline: history search failed: %v", err)
			return
		}
		e.state = stateHistoryTraversal
	}
	if text, ok := e.histCursor.Previous(); ok {
		e.setBufferText(text)
	}
	e.dirty = true
}

func (e *Engine) historyNext() {
	if e.histCursor == nil || !e.histCursor.Active() || e.state == stateHistorySearch {
		return
	}
	text, _ := e.histCursor.Next()
	e.setBufferText(text)
	if !e.histCursor.Active() {
		e.state = stateRegular
	}
	e.dirty = true
}

func (e *Engine) setBufferText(text string) {
	buf := e.ed.Buffer()
	e.ed.ReplaceSpan(0, buf.Len(), text)
	buf.MoveBufferEnd()
}

// enterHistorySearch starts the reverse-search overlay of spec.md §4.7: the
// current buffer is snapshotted as pending, the mini-buffer starts empty,
// and the cursor is primed with an unconstrained substring query so the
// first typed character already narrows a live match set.
func (e *Engine) enterHistorySearch() {
	e.searchPending = e.ed.Buffer().Text()
	e.searchTerm = ""
	e.searchStatus = ports.SearchPassing
	e.state = stateHistorySearch
	if e.histCursor != nil {
		if err := e.histCursor.EnterSubstring(e.searchPending, ""); err != nil {
			e.log("editline: history search failed: %v", err)
		}
	}
	e.dirty = true
}

// historySearchOlder pages to the next older match for the current search
// term, triggered by a repeated SearchHistory event while already in the
// overlay.
func (e *Engine) historySearchOlder() {
	if e.histCursor == nil || !e.histCursor.Active() {
		return
	}
	if text, ok := e.histCursor.Previous(); ok {
		e.setBufferText(text)
		e.searchStatus = ports.SearchPassing
	} else {
		e.searchStatus = ports.SearchFailing
	}
	e.dirty = true
}

// editSearchTerm applies an Edit batch to the reverse-search mini-buffer
// instead of the main LineBuffer: InsertChar/InsertString extend the query,
// Backspace trims one grapheme, and every other command is a no-op (the
// overlay owns a plain string, not a full LineBuffer). Each change re-runs
// the substring query from scratch and previews the newest match in the
// main buffer, or restores pending and marks the search Failing if none
// match, per spec.md §4.7's mini-buffer contract.
func (e *Engine) editSearchTerm(cmds []editor.Command) {
	changed := false
	for _, c := range cmds {
		switch c.Kind {
		case editor.InsertChar:
			e.searchTerm += string(c.Rune)
			changed = true
		case editor.InsertString:
			e.searchTerm += c.Text
			changed = true
		case editor.Backspace:
			if e.searchTerm != "" {
				tmp := linebuffer.NewWithText(e.searchTerm)
				tmp.DeleteGraphemeLeft()
				e.searchTerm = tmp.Text()
				changed = true
			}
		}
	}
	if !changed {
		return
	}
	e.dirty = true
	if e.histCursor == nil {
		return
	}
	if err := e.histCursor.EnterSubstring(e.searchPending, e.searchTerm); err != nil {
		e.log("editline: history search failed: %v", err)
		return
	}
	if e.searchTerm == "" {
		e.setBufferText(e.searchPending)
		e.searchStatus = ports.SearchPassing
		return
	}
	if text, ok := e.histCursor.Previous(); ok {
		e.setBufferText(text)
		e.searchStatus = ports.SearchPassing
	} else {
		e.setBufferText(e.searchPending)
		e.searchStatus = ports.SearchFailing
	}
}

// menuMatches reports whether name targets the currently active menu, with
// "" matching whatever menu is active (Tab always names the default menu).
func (e *Engine) menuMatches(name string) bool {
	if e.activeMenu == nil {
		return false
	}
	return name == "" || e.activeMenu.Name() == name
}

// acceptActiveMenu applies the active menu's highlighted suggestion and
// closes the menu; Enter while a menu is active accepts rather than
// submits the line, per the exit conditions spec.md §4.7/§4.8 describe for
// modal overlays.
func (e *Engine) acceptActiveMenu() {
	if e.activeMenu == nil {
		e.state = stateRegular
		return
	}
	e.activeMenu.ReplaceInBuffer(e.ed)
	e.activeMenu.Deactivate()
	e.activeMenu = nil
	e.state = stateRegular
	e.dirty = true
}

func (e *Engine) activateMenu(name string) {
	var m menu.Menu
	if name == "" {
		if len(e.menus) == 0 {
			return
		}
		m = e.menus[0]
	} else {
		for _, cand := range e.menus {
			if cand.Name() == name {
				m = cand
				break
			}
		}
	}
	if m == nil {
		return
	}
	buf := e.ed.Buffer()

	// External relinquishes painting to a subprocess and resolves
	// synchronously; it never goes through the visual-menu UpdateValues
	// suggestion count, per spec.md §4.8's "Engine suspends its own
	// output, waits, then resumes and repaints" contract.
	if ext, ok := m.(*menu.External); ok {
		e.runExternalMenu(ext, buf.Text())
		return
	}

	m.UpdateValues(e.completer, buf.Text(), buf.InsertionPoint())
	if len(m.Suggestions()) == 0 {
		return
	}
	if e.quickCompletion && e.tryQuickComplete(m) {
		return
	}
	m.Activate(buf.Text())
	e.activeMenu = m
	e.state = stateMenuActive
	e.dirty = true
}

// runExternalMenu suspends raw mode, hands the terminal to the picker
// subprocess, resumes on return, and applies whatever it chose.
func (e *Engine) runExternalMenu(m *menu.External, buffer string) {
	_ = e.Suspend()
	m.Activate(buffer)
	_ = e.Resume()
	m.ReplaceInBuffer(e.ed)
	e.painter.ClearScreen()
	e.anchor = painter.Anchor{}
	e.dirty = true
}

// quickComplete is implemented by menu variants that support the
// single-suggestion/common-prefix apply-without-drawing rule (currently
// Columnar); other variants just open the visual menu.
type quickComplete interface {
	QuickComplete() (ports.Suggestion, bool)
}

func (e *Engine) tryQuickComplete(m menu.Menu) bool {
	qc, ok := m.(quickComplete)
	if !ok {
		return false
	}
	sug, ok := qc.QuickComplete()
	if !ok {
		return false
	}
	e.applySuggestion(sug)
	return true
}

// refreshActiveMenu recomputes the live menu's suggestions against the
// post-edit buffer; an empty result closes the menu, returning to Regular.
func (e *Engine) refreshActiveMenu() {
	if e.activeMenu == nil {
		return
	}
	buf := e.ed.Buffer()
	e.activeMenu.UpdateValues(e.completer, buf.Text(), buf.InsertionPoint())
	if len(e.activeMenu.Suggestions()) == 0 {
		e.activeMenu.Deactivate()
		e.activeMenu = nil
		e.state = stateRegular
	}
}

func (e *Engine) applySuggestion(sug ports.Suggestion) {
	text := sug.Value
	if sug.AppendWhitespace {
		text += " "
	}
	e.ed.ReplaceSpan(sug.Span.Start, sug.Span.End, text)
	e.dirty = true
}

// quickCompleteAfterEdit implements spec.md §4.12 step 6: after a character
// insert in Regular state, with a menu registered and quick completion
// enabled, try the completer's single-suggestion/common-prefix rule before
// the next repaint, without opening the visual menu.
func (e *Engine) quickCompleteAfterEdit(cmds []editor.Command) {
	if !e.quickCompletion || e.completer == nil || e.state != stateRegular || len(e.menus) == 0 {
		return
	}
	inserted := false
	for _, c := range cmds {
		if c.Kind == editor.InsertChar {
			inserted = true
		}
	}
	if !inserted {
		return
	}
	buf := e.ed.Buffer()
	pos := buf.InsertionPoint()
	suggestions := e.completer.Complete(buf.Text(), pos)
	if len(suggestions) == 0 {
		return
	}
	if len(suggestions) == 1 {
		e.applySuggestion(suggestions[0])
		return
	}
	token := buf.Text()[suggestions[0].Span.Start:pos]
	if prefix, ok := menu.CommonPrefix(suggestions, token); ok {
		e.ed.ReplaceSpan(suggestions[0].Span.Start, pos, prefix)
		e.dirty = true
	}
}

func (e *Engine) repaint(prompt ports.Prompt) {
	buf := e.ed.Buffer()
	text := buf.Text()
	pos := buf.InsertionPoint()

	mode := e.mode.ModeIndicator()
	if mode != e.lastMode {
		if shape, ok := e.cursorShapes[mode]; ok {
			if seq := cursorShapeSeq(shape); seq != "" {
				_, _ = io.WriteString(e.stdout, seq)
			}
		}
		e.lastMode = mode
	}

	var pre, post ports.StyledText
	if e.highlighter != nil {
		pre, post = splitStyled(e.highlighter.Highlight(text, pos), pos)
	} else {
		pre = ports.StyledText{{Text: text[:pos]}}
		post = ports.StyledText{{Text: text[pos:]}}
	}

	hint := ""
	if e.hinter != nil {
		var hp ports.History
		if ph, ok := e.hist.(ports.History); ok {
			hp = ph
		}
		hint = e.hinter.Hint(text, pos, hp, e.ansiEnabled, "")
	}

	var searchStatus *ports.SearchStatus
	if e.state == stateHistorySearch {
		s := e.searchStatus
		searchStatus = &s
	}

	dims := painter.Dimensions(e.stdout, 80, 24)
	f := painter.Frame{
		Prompt:       prompt,
		Mode:         mode,
		PreCursor:    pre,
		PostCursor:   post,
		Hint:         hint,
		Menu:         e.activeMenu,
		SearchStatus: searchStatus,
		SearchTerm:   e.searchTerm,
		Dims:         dims,
		Anchor:       e.anchor,
		RawMode:      e.inRaw,
		AnsiEnabled:  e.ansiEnabled,
	}
	e.anchor = e.painter.Repaint(f)
	e.dirty = false
}

// splitStyled divides st into the chunks before and from byte offset at,
// splitting the chunk straddling the boundary so styling is preserved on
// both halves.
func splitStyled(st ports.StyledText, at int) (ports.StyledText, ports.StyledText) {
	var pre, post ports.StyledText
	offset := 0
	for _, c := range st {
		end := offset + len(c.Text)
		switch {
		case end <= at:
			pre = append(pre, c)
		case offset >= at:
			post = append(post, c)
		default:
			cut := at - offset
			pre = append(pre, ports.StyleChunk{Style: c.Style, Text: c.Text[:cut]})
			post = append(post, ports.StyleChunk{Style: c.Style, Text: c.Text[cut:]})
		}
		offset = end
	}
	return pre, post
}
