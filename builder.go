package editline

import (
	"os"

	"github.com/go-editline/editline/clipboard"
	"github.com/go-editline/editline/editmode"
	"github.com/go-editline/editline/editor"
	"github.com/go-editline/editline/externalprinter"
	"github.com/go-editline/editline/history"
	"github.com/go-editline/editline/menu"
	"github.com/go-editline/editline/painter"
	"github.com/go-editline/editline/ports"
	"github.com/go-editline/editline/termio"
)

// CursorShape names a terminal cursor shape, set per edit mode via DECSCUSR.
type CursorShape int

const (
	CursorDefault CursorShape = iota
	CursorBlock
	CursorBlockBlink
	CursorUnderline
	CursorUnderlineBlink
	CursorBar
	CursorBarBlink
)

// Builder constructs an Engine. The host sets only what it needs; every
// setter has a working default, per spec.md §6's "construct via a builder"
// contract.
type Builder struct {
	hist            history.History
	completer       ports.Completer
	hinter          ports.Hinter
	highlighter     ports.Highlighter
	validator       ports.Validator
	mode            editmode.EditMode
	menus           []menu.Menu
	clip            clipboard.Clipboard
	printer         *externalprinter.Printer
	exclusionPrefix string
	sessionID       string

	ansiEnabled         bool
	bracketedPaste      bool
	keyboardEnhancement bool
	quickCompletion     bool
	cursorShapes        map[ports.EditModeTag]CursorShape

	stdin  *os.File
	stdout *os.File
	term   termio.Terminal
}

// NewBuilder returns a Builder with the library's defaults: in-process
// clipboard, Emacs edit mode, ANSI colors on, quick completion on, stdin/
// stdout, and the real termio.DefaultTerminal.
func NewBuilder() *Builder {
	return &Builder{
		mode:            editmode.NewEmacs(),
		clip:            clipboard.NewInProcess(),
		ansiEnabled:     true,
		quickCompletion: true,
		cursorShapes:    map[ports.EditModeTag]CursorShape{},
		stdin:           os.Stdin,
		stdout:          os.Stdout,
		term:            termio.DefaultTerminal{},
	}
}

// WithHistory sets the history backend.
func (b *Builder) WithHistory(h history.History) *Builder { b.hist = h; return b }

// WithCompleter sets the completion port.
func (b *Builder) WithCompleter(c ports.Completer) *Builder { b.completer = c; return b }

// WithHinter sets the inline-hint port.
func (b *Builder) WithHinter(h ports.Hinter) *Builder { b.hinter = h; return b }

// WithHighlighter sets the syntax-highlighting port.
func (b *Builder) WithHighlighter(h ports.Highlighter) *Builder { b.highlighter = h; return b }

// WithValidator sets the Enter-submission validator.
func (b *Builder) WithValidator(v ports.Validator) *Builder { b.validator = v; return b }

// WithEditMode sets the active EditMode (Emacs/Vi/Helix).
func (b *Builder) WithEditMode(m editmode.EditMode) *Builder { b.mode = m; return b }

// WithMenu registers a menu, in activation-name order. Later calls append.
func (b *Builder) WithMenu(m menu.Menu) *Builder { b.menus = append(b.menus, m); return b }

// WithClipboard overrides the default in-process clipboard (e.g. with
// clipboard/osclipboard for OS-backed cut/paste).
func (b *Builder) WithClipboard(c clipboard.Clipboard) *Builder { b.clip = c; return b }

// WithCursorShape sets the terminal cursor shape shown for mode.
func (b *Builder) WithCursorShape(mode ports.EditModeTag, shape CursorShape) *Builder {
	b.cursorShapes[mode] = shape
	return b
}

// WithBracketedPaste toggles bracketed-paste mode.
func (b *Builder) WithBracketedPaste(on bool) *Builder { b.bracketedPaste = on; return b }

// WithKeyboardEnhancement records whether the Kitty keyboard-protocol
// enhancement is wanted. Build does not pass the setting to the Engine, and
// the Engine never sends the enhancement sequences, so it has no effect on
// the terminal.
func (b *Builder) WithKeyboardEnhancement(on bool) *Builder { b.keyboardEnhancement = on; return b }

// WithANSIColors toggles ANSI color output.
func (b *Builder) WithANSIColors(on bool) *Builder { b.ansiEnabled = on; return b }

// WithQuickCompletion toggles the single-suggestion/common-prefix
// apply-without-drawing rule described in spec.md §4.12 step 6.
func (b *Builder) WithQuickCompletion(on bool) *Builder { b.quickCompletion = on; return b }

// WithExclusionPrefix sets the history-save exclusion prefix ("" disables).
func (b *Builder) WithExclusionPrefix(prefix string) *Builder { b.exclusionPrefix = prefix; return b }

// WithSessionID sets the session id recorded on saved history items.
func (b *Builder) WithSessionID(id string) *Builder { b.sessionID = id; return b }

// WithExternalPrinter attaches an externalprinter.Printer handle hosts can
// Send to from any goroutine.
func (b *Builder) WithExternalPrinter(p *externalprinter.Printer) *Builder { b.printer = p; return b }

// WithIO overrides the terminal's input/output files (tests, non-TTY hosts).
func (b *Builder) WithIO(stdin, stdout *os.File) *Builder {
	b.stdin, b.stdout = stdin, stdout
	return b
}

// WithTerminal overrides the raw-mode driver (tests).
func (b *Builder) WithTerminal(t termio.Terminal) *Builder { b.term = t; return b }

// Build assembles the Engine.
func (b *Builder) Build() *Engine {
	if b.printer == nil {
		b.printer = externalprinter.New(externalprinter.DefaultCapacity)
	}
	ed := editor.New(b.clip)
	e := &Engine{
		ed:              ed,
		mode:            b.mode,
		hist:            b.hist,
		completer:       b.completer,
		hinter:          b.hinter,
		highlighter:     b.highlighter,
		validator:       b.validator,
		menus:           b.menus,
		printer:         b.printer,
		exclusionPrefix: b.exclusionPrefix,
		sessionID:       b.sessionID,
		ansiEnabled:     b.ansiEnabled,
		bracketedPaste:  b.bracketedPaste,
		quickCompletion: b.quickCompletion,
		cursorShapes:    b.cursorShapes,
		stdin:           b.stdin,
		stdout:          b.stdout,
		term:            b.term,
		painter:         painter.New(b.stdout),
		state:           stateRegular,
	}
	if b.hist != nil {
		e.histCursor = history.NewCursor(b.hist)
	}
	return e
}
