// Package painter implements the cursor-relative incremental repaint
// algorithm of spec.md §4.10. It owns no input state of its own: every
// repaint is a pure function of the prompt, the styled buffer halves, an
// optional hint, an optional active menu, and the terminal's current
// dimensions and cursor anchor.
//
// Grounded on the teacher's pkg/ui/terminal.go (ClearScreen/HideCursor/
// ShowCursor/DisableWrap/Dimensions via golang.org/x/term.GetSize) and
// internal/interactive/render.go (one buffered write per repaint, restoring
// cursor/wrap state around the edit region). Highlighter styling is rendered
// through the teacher's pkg/ui ANSIColors palette (ui.NewANSIColors().Wrap).
package painter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/go-editline/editline/linebuffer"
	"github.com/go-editline/editline/menu"
	"github.com/go-editline/editline/pkg/ui"
	"github.com/go-editline/editline/ports"
)

var ansiPalette = ui.NewANSIColors()

const (
	escHideCursor   = "\x1b[?25l"
	escShowCursor   = "\x1b[?25h"
	escClearToEnd   = "\x1b[0J"
	escClearScreen  = "\x1b[2J\x1b[H"
	escSaveCursor   = "\x1b7"
	escRestoreCursor = "\x1b8"
)

// Anchor is the terminal row/column where the first prompt character sits.
type Anchor struct {
	Row, Col int
}

// Dims is a terminal's current size in character cells.
type Dims struct {
	Cols, Rows int
}

// Dimensions attempts to determine the terminal size for w, falling back to
// (80, 24) when it cannot be determined (not a terminal, or the ioctl
// fails) — identical fallback contract to the teacher's ui.Dimensions.
func Dimensions(w io.Writer, fallbackWidth, fallbackHeight int) Dims {
	if f, ok := w.(*os.File); ok {
		if fw, fh, err := term.GetSize(int(f.Fd())); err == nil && fw > 0 && fh > 0 {
			return Dims{Cols: fw, Rows: fh}
		}
	}
	if fallbackWidth <= 0 {
		fallbackWidth = 80
	}
	if fallbackHeight <= 0 {
		fallbackHeight = 24
	}
	return Dims{Cols: fallbackWidth, Rows: fallbackHeight}
}

// RightPromptPlacement selects which row the right prompt renders on.
type RightPromptPlacement int

const (
	RightPromptFirstLine RightPromptPlacement = iota
	RightPromptLastLine
)

// Frame is everything a single repaint needs.
type Frame struct {
	Prompt          ports.Prompt
	Mode            ports.EditModeTag
	PreCursor       ports.StyledText
	PostCursor      ports.StyledText
	Hint            string
	Menu            menu.Menu
	SearchStatus    *ports.SearchStatus
	SearchTerm      string
	Dims            Dims
	Anchor          Anchor
	RawMode         bool
	RightPromptMode RightPromptPlacement
	AnsiEnabled     bool
}

// Painter buffers one repaint's output and writes it in a single Write
// call, matching the teacher's "one buffered write per repaint" discipline.
type Painter struct {
	w io.Writer
}

// New returns a Painter writing to w.
func New(w io.Writer) *Painter {
	return &Painter{w: w}
}

// RequiredLines computes how many terminal rows the frame's prompt,
// indicator, buffer, hint, and menu occupy, accounting for wraps using
// Unicode display width. ANSI styling is stripped before measuring.
func RequiredLines(f Frame) int {
	cols := f.Dims.Cols
	if cols <= 0 {
		cols = 80
	}
	left := f.Prompt.RenderLeft() + f.Prompt.RenderIndicator(f.Mode)
	total := left + f.PreCursor.String() + f.PostCursor.String() + f.Hint
	lines := strings.Split(total, "\n")
	rows := 0
	for _, line := range lines {
		w := linebuffer.DisplayWidth(stripANSI(line))
		rows += wrappedRows(w, cols)
	}
	if f.Menu != nil && f.Menu.Active() {
		rows += menuRows(f.Menu)
	}
	if rows == 0 {
		rows = 1
	}
	return rows
}

func wrappedRows(displayWidth, cols int) int {
	if cols <= 0 {
		return 1
	}
	if displayWidth == 0 {
		return 1
	}
	rows := displayWidth / cols
	if displayWidth%cols != 0 {
		rows++
	}
	if rows == 0 {
		rows = 1
	}
	return rows
}

func menuRows(m menu.Menu) int {
	rows := 0
	n := len(m.Suggestions())
	if n == 0 {
		return 0
	}
	// writeMenu draws one suggestion per row, ignoring the variant's own
	// column layout, so the menu occupies one row per suggestion.
	rows = n
	return rows
}

// renderStyled concatenates a StyledText's chunks, wrapping each chunk's
// text in its Style (and a trailing reset) when ansiEnabled is true. With
// ANSI disabled it degrades to the chunk's raw text, identical to
// ports.StyledText.String().
func renderStyled(s ports.StyledText, ansiEnabled bool) string {
	if !ansiEnabled {
		return s.String()
	}
	var b strings.Builder
	for _, c := range s {
		b.WriteString(ansiPalette.Wrap(c.Style, c.Text))
	}
	return b.String()
}

// Repaint renders one frame per spec.md §4.10's six-step algorithm,
// scrolling the anchor up first if the frame would overflow the screen.
func (p *Painter) Repaint(f Frame) Anchor {
	required := RequiredLines(f)
	anchor := f.Anchor
	if anchor.Row+required > f.Dims.Rows {
		deficit := anchor.Row + required - f.Dims.Rows
		anchor.Row -= deficit
		if anchor.Row < 0 {
			anchor.Row = 0
		}
	}

	var b strings.Builder
	b.WriteString(escHideCursor)
	b.WriteString(moveTo(anchor.Row, anchor.Col))

	b.WriteString(f.Prompt.RenderLeft())
	b.WriteString(f.Prompt.RenderIndicator(f.Mode))

	indicator := f.Prompt.RenderMultilineIndicator()
	b.WriteString(withMultilineIndicator(coerceCRLF(renderStyled(f.PreCursor, f.AnsiEnabled), f.RawMode), indicator))
	b.WriteString(escSaveCursor)
	b.WriteString(withMultilineIndicator(coerceCRLF(renderStyled(f.PostCursor, f.AnsiEnabled), f.RawMode), indicator))

	if f.Hint != "" {
		b.WriteString(coerceCRLF(f.Hint, f.RawMode))
	}

	if f.Menu != nil && f.Menu.Active() {
		writeMenu(&b, f.Menu, f.RawMode)
	}

	if rp := f.Prompt.RenderRight(); rp != "" {
		writeRightPrompt(&b, f, rp, anchor)
	}

	if f.SearchStatus != nil {
		b.WriteString(coerceCRLF(f.Prompt.RenderHistorySearchIndicator(*f.SearchStatus, f.SearchTerm), f.RawMode))
	}

	b.WriteString(escClearToEnd)
	b.WriteString(escRestoreCursor)
	b.WriteString(escShowCursor)

	_, _ = io.WriteString(p.w, b.String())
	return anchor
}

// PrintAsync implements spec.md §4.11's external-printer drain step: move to
// the anchor, clear to end of screen, write the message followed by CRLF,
// then leave the cursor one row below for the caller's subsequent prompt
// repaint.
func (p *Painter) PrintAsync(anchor Anchor, message string, rawMode bool) {
	var b strings.Builder
	b.WriteString(moveTo(anchor.Row, anchor.Col))
	b.WriteString(escClearToEnd)
	b.WriteString(coerceCRLF(message, rawMode))
	if rawMode {
		b.WriteString("\r\n")
	} else {
		b.WriteString("\n")
	}
	_, _ = io.WriteString(p.w, b.String())
}

// ClearScreen wipes the terminal and repositions the cursor at the origin,
// used when the engine repaints anchored at the top row (ClearScreen event).
func (p *Painter) ClearScreen() {
	_, _ = io.WriteString(p.w, escClearScreen)
}

func moveTo(row, col int) string {
	return fmt.Sprintf("\x1b[%d;%dH", row+1, col+1)
}

// coerceCRLF converts every solitary LF into CRLF when raw terminal mode is
// active, per spec.md §4.10 step 4.
func coerceCRLF(s string, rawMode bool) string {
	if !rawMode {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' && (i == 0 || s[i-1] != '\r') {
			b.WriteByte('\r')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// withMultilineIndicator prepends indicator to each continuation row of a
// buffer, per spec.md §4.10 step 6. s may already contain CRLF (when raw
// mode coercion ran first); indicator is inserted right after the line
// break, before the next row's content.
func withMultilineIndicator(s, indicator string) string {
	if indicator == "" || !strings.Contains(s, "\n") {
		return s
	}
	lines := strings.SplitAfter(s, "\n")
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString(indicator)
		}
		b.WriteString(line)
	}
	return b.String()
}

func stripANSI(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inEsc := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inEsc {
			if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
				inEsc = false
			}
			continue
		}
		if c == 0x1b {
			inEsc = true
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func writeMenu(b *strings.Builder, m menu.Menu, rawMode bool) {
	for _, s := range m.Suggestions() {
		b.WriteString(coerceCRLF(s.Value, rawMode))
		if rawMode {
			b.WriteString("\r\n")
		} else {
			b.WriteString("\n")
		}
	}
}

// writeRightPrompt renders the right prompt at cols - display_width(right),
// suppressing it if it would overlap the input line's content, per
// spec.md §4.10 step 5.
func writeRightPrompt(b *strings.Builder, f Frame, rp string, anchor Anchor) {
	w := linebuffer.DisplayWidth(stripANSI(rp))
	col := f.Dims.Cols - w
	if col <= anchor.Col {
		return
	}
	row := anchor.Row
	if f.RightPromptMode == RightPromptLastLine {
		row += RequiredLines(f) - 1
	}
	if !f.Prompt.RightPromptOnLastLine() && f.RightPromptMode == RightPromptLastLine {
		row = anchor.Row
	}
	lines := strings.Split(f.Prompt.RenderLeft()+f.Prompt.RenderIndicator(f.Mode)+
		f.PreCursor.String()+f.PostCursor.String()+f.Hint, "\n")
	line := lines[0]
	if row != anchor.Row {
		line = lines[len(lines)-1]
	}
	if anchor.Col+linebuffer.DisplayWidth(stripANSI(line)) >= col {
		return
	}
	b.WriteString(escSaveCursor)
	b.WriteString(moveTo(row, col))
	b.WriteString(rp)
	b.WriteString(escRestoreCursor)
}
