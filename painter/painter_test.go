package painter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-editline/editline/ports"
)

type fakePrompt struct {
	left, right, indicator, multiline string
	rightOnLastLine                   bool
}

func (p fakePrompt) RenderLeft() string      { return p.left }
func (p fakePrompt) RenderRight() string     { return p.right }
func (p fakePrompt) RenderIndicator(ports.EditModeTag) string { return p.indicator }
func (p fakePrompt) RenderMultilineIndicator() string         { return p.multiline }
func (p fakePrompt) RenderHistorySearchIndicator(ports.SearchStatus, string) string {
	return ""
}
func (p fakePrompt) RightPromptOnLastLine() bool { return p.rightOnLastLine }

func TestRepaintIsIdempotent(t *testing.T) {
	f := Frame{
		Prompt:     fakePrompt{left: "> "},
		PreCursor:  ports.StyledText{{Text: "hello"}},
		PostCursor: ports.StyledText{{Text: " world"}},
		Dims:       Dims{Cols: 80, Rows: 24},
		Anchor:     Anchor{Row: 0, Col: 0},
		RawMode:    true,
	}

	var w1, w2 strings.Builder
	p1, p2 := New(&w1), New(&w2)

	a1 := p1.Repaint(f)
	a2 := p2.Repaint(f)

	assert.Equal(t, a1, a2)
	assert.Equal(t, w1.String(), w2.String())
}

func TestRenderStyledWrapsChunksWhenAnsiEnabled(t *testing.T) {
	st := ports.StyledText{{Style: ansiPalette.Red, Text: "err"}, {Text: " ok"}}

	assert.Equal(t, ansiPalette.Red+"err"+ansiPalette.Reset+" ok", renderStyled(st, true))
	assert.Equal(t, "err ok", renderStyled(st, false))
}

func TestRepaintAppliesStyleEscapesWhenAnsiEnabled(t *testing.T) {
	f := Frame{
		Prompt:      fakePrompt{left: "> "},
		PreCursor:   ports.StyledText{{Style: ansiPalette.Red, Text: "err"}},
		Dims:        Dims{Cols: 80, Rows: 24},
		AnsiEnabled: true,
	}

	var w strings.Builder
	New(&w).Repaint(f)

	assert.Contains(t, w.String(), ansiPalette.Red+"err"+ansiPalette.Reset)
}

func TestCoerceCRLFConvertsSolitaryLF(t *testing.T) {
	out := coerceCRLF("line one\nline two", true)
	assert.Equal(t, "line one\r\nline two", out)
}

func TestCoerceCRLFNoopWhenNotRaw(t *testing.T) {
	out := coerceCRLF("line one\nline two", false)
	assert.Equal(t, "line one\nline two", out)
}

func TestCoerceCRLFDoesNotDoubleExistingCR(t *testing.T) {
	out := coerceCRLF("line one\r\nline two", true)
	assert.Equal(t, "line one\r\nline two", out)
}

func TestRequiredLinesAccountsForWrap(t *testing.T) {
	f := Frame{
		Prompt:     fakePrompt{left: "> "},
		PreCursor:  ports.StyledText{{Text: strings.Repeat("a", 100)}},
		PostCursor: ports.StyledText{},
		Dims:       Dims{Cols: 40, Rows: 24},
	}
	lines := RequiredLines(f)
	assert.Greater(t, lines, 1)
}

func TestRequiredLinesStripsANSIBeforeMeasuring(t *testing.T) {
	styled := Frame{
		Prompt:     fakePrompt{left: ""},
		PreCursor:  ports.StyledText{{Text: "\x1b[31mhi\x1b[0m"}},
		PostCursor: ports.StyledText{},
		Dims:       Dims{Cols: 80, Rows: 24},
	}
	plain := Frame{
		Prompt:     fakePrompt{left: ""},
		PreCursor:  ports.StyledText{{Text: "hi"}},
		PostCursor: ports.StyledText{},
		Dims:       Dims{Cols: 80, Rows: 24},
	}
	assert.Equal(t, RequiredLines(plain), RequiredLines(styled))
}

func TestRepaintScrollsAnchorUpWhenOverflowing(t *testing.T) {
	f := Frame{
		Prompt:     fakePrompt{left: "> "},
		PreCursor:  ports.StyledText{{Text: "x"}},
		PostCursor: ports.StyledText{},
		Dims:       Dims{Cols: 80, Rows: 5},
		Anchor:     Anchor{Row: 10, Col: 0},
	}
	var w strings.Builder
	p := New(&w)
	got := p.Repaint(f)
	assert.Less(t, got.Row, 10)
}

func TestWithMultilineIndicatorPrependsContinuationRows(t *testing.T) {
	out := withMultilineIndicator("first\nsecond\nthird", "... ")
	require.Equal(t, "first\n... second\n... third", out)
}

func TestWithMultilineIndicatorNoopSingleLine(t *testing.T) {
	out := withMultilineIndicator("single", "... ")
	assert.Equal(t, "single", out)
}

func TestPrintAsyncAppendsCRLFAndClearsToEnd(t *testing.T) {
	var w strings.Builder
	p := New(&w)
	p.PrintAsync(Anchor{Row: 2, Col: 0}, "async message", true)
	out := w.String()
	assert.Contains(t, out, "async message")
	assert.Contains(t, out, escClearToEnd)
	assert.True(t, strings.HasSuffix(out, "\r\n"))
}

func TestDimensionsFallsBackWhenNotATerminal(t *testing.T) {
	var w strings.Builder
	d := Dimensions(&w, 0, 0)
	assert.Equal(t, Dims{Cols: 80, Rows: 24}, d)
}
