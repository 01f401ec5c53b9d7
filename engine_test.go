package editline

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-editline/editline/history"
	"github.com/go-editline/editline/menu"
	"github.com/go-editline/editline/ports"
)

// testPrompt is a minimal ports.Prompt with no frills, enough to drive a
// repaint without asserting anything about its rendering.
type testPrompt struct{}

func (testPrompt) RenderLeft() string                                           { return "> " }
func (testPrompt) RenderRight() string                                          { return "" }
func (testPrompt) RenderIndicator(ports.EditModeTag) string                     { return "" }
func (testPrompt) RenderMultilineIndicator() string                             { return "::: " }
func (testPrompt) RenderHistorySearchIndicator(ports.SearchStatus, string) string { return "" }
func (testPrompt) RightPromptOnLastLine() bool                                  { return false }

// newTestEngine builds an Engine wired to an os.Pipe stdin/stdout pair.
// termio.IsTerminal reports false for a pipe, so enterRaw never touches
// real terminal state, letting the Engine run headless under go test.
func newTestEngine(t *testing.T, configure func(*Builder)) (*Engine, *os.File) {
	t.Helper()
	inR, inW, err := os.Pipe()
	require.NoError(t, err)
	outR, outW, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		inR.Close()
		inW.Close()
		outR.Close()
		outW.Close()
	})
	go io.Copy(io.Discard, outR)

	b := NewBuilder().WithIO(inR, outW)
	if configure != nil {
		configure(b)
	}
	return b.Build(), inW
}

// keys assembles a raw input byte stream from named keys and literal text,
// matching keyReader's decoding: named keys become their control byte or
// CSI sequence, anything else is written as its raw UTF-8 bytes.
func keys(parts ...string) []byte {
	var out []byte
	for _, p := range parts {
		switch p {
		case "enter":
			out = append(out, '\r')
		case "up":
			out = append(out, 0x1b, '[', 'A')
		case "down":
			out = append(out, 0x1b, '[', 'B')
		case "left":
			out = append(out, 0x1b, '[', 'D')
		case "right":
			out = append(out, 0x1b, '[', 'C')
		case "backspace":
			out = append(out, 127)
		case "tab":
			out = append(out, '\t')
		case "ctrl+x":
			out = append(out, 0x18)
		case "ctrl+c":
			out = append(out, 0x03)
		case "ctrl+d":
			out = append(out, 0x04)
		case "ctrl+r":
			out = append(out, 0x12)
		case "ctrl+g":
			out = append(out, 0x07)
		default:
			out = append(out, []byte(p)...)
		}
	}
	return out
}

func send(t *testing.T, w *os.File, parts ...string) {
	t.Helper()
	_, err := w.Write(keys(parts...))
	require.NoError(t, err)
}

func TestReadLineEchoesSubmittedLine(t *testing.T) {
	e, in := newTestEngine(t, nil)
	send(t, in, "Hello World!", "enter")

	sig, err := e.ReadLine(testPrompt{})
	require.NoError(t, err)
	assert.Equal(t, SignalSuccess, sig.Kind)
	assert.Equal(t, "Hello World!", sig.Text)
}

// TestBackspaceDeletesOneGraphemeClusterAtATime types ab + a flag emoji
// (two regional-indicator code points forming one extended grapheme
// cluster) + c, and checks that a single Backspace removes "c", and a
// second Backspace removes the whole flag cluster in one step rather than
// peeling off one code point.
func TestBackspaceDeletesOneGraphemeClusterAtATime(t *testing.T) {
	e, in := newTestEngine(t, nil)
	send(t, in, "a", "b", "\U0001F1FA\U0001F1F8", "c", "backspace", "backspace", "enter")

	sig, err := e.ReadLine(testPrompt{})
	require.NoError(t, err)
	assert.Equal(t, "ab", sig.Text)
}

func TestHistoryPrefixRecallOneStepUp(t *testing.T) {
	hist := history.NewMemory()
	_, err := hist.Save(history.Item{CommandLine: "git status"})
	require.NoError(t, err)
	_, err = hist.Save(history.Item{CommandLine: "git commit"})
	require.NoError(t, err)
	_, err = hist.Save(history.Item{CommandLine: "ls"})
	require.NoError(t, err)

	e, in := newTestEngine(t, func(b *Builder) { b.WithHistory(hist) })
	send(t, in, "g", "i", "up", "enter")

	sig, err := e.ReadLine(testPrompt{})
	require.NoError(t, err)
	assert.Equal(t, "git commit", sig.Text)
}

func TestHistoryPrefixRecallTwoStepsUp(t *testing.T) {
	hist := history.NewMemory()
	_, _ = hist.Save(history.Item{CommandLine: "git status"})
	_, _ = hist.Save(history.Item{CommandLine: "git commit"})
	_, _ = hist.Save(history.Item{CommandLine: "ls"})

	e, in := newTestEngine(t, func(b *Builder) { b.WithHistory(hist) })
	send(t, in, "g", "i", "up", "up", "enter")

	sig, err := e.ReadLine(testPrompt{})
	require.NoError(t, err)
	assert.Equal(t, "git status", sig.Text)
}

// TestHistoryNavigationRoundTripRestoresPending checks the determinism
// property: Up, Up, Down, Down returns to the line typed before navigation
// started.
func TestHistoryNavigationRoundTripRestoresPending(t *testing.T) {
	hist := history.NewMemory()
	_, _ = hist.Save(history.Item{CommandLine: "git status"})
	_, _ = hist.Save(history.Item{CommandLine: "git commit"})
	_, _ = hist.Save(history.Item{CommandLine: "ls"})

	e, in := newTestEngine(t, func(b *Builder) { b.WithHistory(hist) })
	send(t, in, "g", "i", "up", "up", "down", "down", "enter")

	sig, err := e.ReadLine(testPrompt{})
	require.NoError(t, err)
	assert.Equal(t, "gi", sig.Text)
}

// TestChordPartialThenFullMatchSignalsCtrlD binds the default Emacs table's
// classic Ctrl-X Ctrl-C chord to CtrlD: Ctrl-X alone should produce no
// visible change, and Ctrl-C completing the chord ends the call.
func TestChordPartialThenFullMatchSignalsCtrlD(t *testing.T) {
	e, in := newTestEngine(t, nil)
	send(t, in, "ctrl+x", "ctrl+c")

	sig, err := e.ReadLine(testPrompt{})
	require.NoError(t, err)
	assert.Equal(t, SignalCtrlD, sig.Kind)
}

// TestChordCancelledByNonMatchingKeyInsertsItPlain presses Ctrl-X then a
// plain 'a': the chord should cancel and 'a' should insert as an ordinary
// character rather than being swallowed.
func TestChordCancelledByNonMatchingKeyInsertsItPlain(t *testing.T) {
	e, in := newTestEngine(t, nil)
	send(t, in, "ctrl+x", "a", "enter")

	sig, err := e.ReadLine(testPrompt{})
	require.NoError(t, err)
	assert.Equal(t, SignalSuccess, sig.Kind)
	assert.Equal(t, "a", sig.Text)
}

func TestCtrlCSignalsImmediately(t *testing.T) {
	e, in := newTestEngine(t, nil)
	send(t, in, "a", "ctrl+c")

	sig, err := e.ReadLine(testPrompt{})
	require.NoError(t, err)
	assert.Equal(t, SignalCtrlC, sig.Kind)
}

func TestCtrlDOnEmptyBufferSignals(t *testing.T) {
	e, in := newTestEngine(t, nil)
	send(t, in, "ctrl+d")

	sig, err := e.ReadLine(testPrompt{})
	require.NoError(t, err)
	assert.Equal(t, SignalCtrlD, sig.Kind)
}

// TestCtrlDOnNonEmptyBufferForwardDeletes exercises CtrlD's other meaning:
// with text in the buffer it forward-deletes instead of signaling exit.
func TestCtrlDOnNonEmptyBufferForwardDeletes(t *testing.T) {
	e, in := newTestEngine(t, nil)
	send(t, in, "a", "b", "left", "ctrl+d", "enter")

	sig, err := e.ReadLine(testPrompt{})
	require.NoError(t, err)
	assert.Equal(t, SignalSuccess, sig.Kind)
	assert.Equal(t, "a", sig.Text)
}

// TestQuickCompletionAppliesSingleSuggestionWithoutDrawingMenu mirrors
// spec.md's scenario 5: a completer returning exactly one suggestion for
// "log" applies it without ever opening a visual menu.
func TestQuickCompletionAppliesSingleSuggestionWithoutDrawingMenu(t *testing.T) {
	completer := ports.CompleterFunc(func(line string, pos int) []ports.Suggestion {
		if line[:pos] == "log" {
			return []ports.Suggestion{{Value: "login", Span: ports.Span{Start: 0, End: pos}}}
		}
		return nil
	})
	m := menu.NewColumnar("completion", completer)

	e, in := newTestEngine(t, func(b *Builder) {
		b.WithCompleter(completer).WithMenu(m)
	})
	send(t, in, "l", "o", "g", "tab", "enter")

	sig, err := e.ReadLine(testPrompt{})
	require.NoError(t, err)
	assert.Equal(t, "login", sig.Text)
}

// TestMenuOpensAndCyclesThenAcceptsSelection exercises the full visual-menu
// path (more than one suggestion, quick completion disabled): Tab opens
// the menu, a second Tab cycles to the next suggestion, and Enter accepts
// the highlighted one rather than submitting the line.
func TestMenuOpensAndCyclesThenAcceptsSelection(t *testing.T) {
	completer := ports.CompleterFunc(func(line string, pos int) []ports.Suggestion {
		return []ports.Suggestion{
			{Value: "foo", Span: ports.Span{Start: 0, End: pos}},
			{Value: "food", Span: ports.Span{Start: 0, End: pos}},
		}
	})
	m := menu.NewColumnar("files", completer)

	e, in := newTestEngine(t, func(b *Builder) {
		b.WithCompleter(completer).WithMenu(m).WithQuickCompletion(false)
	})
	send(t, in, "f", "o", "tab", "tab", "enter", "enter")

	sig, err := e.ReadLine(testPrompt{})
	require.NoError(t, err)
	assert.Equal(t, SignalSuccess, sig.Kind)
	assert.Equal(t, "food", sig.Text)
}

// TestMenuClosesWhenEditEmptiesSuggestions checks that typing a character
// that the completer no longer matches closes an open menu instead of
// leaving it stuck showing stale suggestions.
func TestMenuClosesWhenEditEmptiesSuggestions(t *testing.T) {
	completer := ports.CompleterFunc(func(line string, pos int) []ports.Suggestion {
		if line == "f" {
			return []ports.Suggestion{
				{Value: "foo", Span: ports.Span{Start: 0, End: pos}},
				{Value: "food", Span: ports.Span{Start: 0, End: pos}},
			}
		}
		return nil
	})
	m := menu.NewColumnar("files", completer)

	e, in := newTestEngine(t, func(b *Builder) {
		b.WithCompleter(completer).WithMenu(m).WithQuickCompletion(false)
	})
	// "f" opens the menu (two candidates); "z" no longer matches anything,
	// which should close it; the line submits normally on Enter.
	send(t, in, "f", "tab", "z", "enter")

	sig, err := e.ReadLine(testPrompt{})
	require.NoError(t, err)
	assert.Equal(t, "fz", sig.Text)
}

// TestExternalMenuSuspendsAndAppliesPickerResult exercises the subprocess-
// delegating External menu: its run callback stands in for launching a
// real picker, and the Engine must suspend/resume around it and apply
// whatever it returns.
func TestExternalMenuSuspendsAndAppliesPickerResult(t *testing.T) {
	picked := menu.NewExternal("picker", func(buffer string) (ports.Suggestion, bool) {
		return ports.Suggestion{Value: "chosen", Span: ports.Span{Start: 0, End: len(buffer)}}, true
	})

	e, in := newTestEngine(t, func(b *Builder) {
		b.WithMenu(picked)
	})
	send(t, in, "x", "tab", "enter")

	sig, err := e.ReadLine(testPrompt{})
	require.NoError(t, err)
	assert.Equal(t, SignalSuccess, sig.Kind)
	assert.Equal(t, "chosen", sig.Text)
}

// multilineValidator treats a trailing backslash as a continuation marker:
// Enter on such a line inserts a newline instead of submitting.
type multilineValidator struct{}

func (multilineValidator) Validate(line string) ports.ValidationResult {
	if len(line) > 0 && line[len(line)-1] == '\\' {
		return ports.Incomplete
	}
	return ports.Complete
}

func TestIncompleteValidatorInsertsNewlineInsteadOfSubmitting(t *testing.T) {
	e, in := newTestEngine(t, func(b *Builder) {
		b.WithValidator(multilineValidator{})
	})
	send(t, in, "foo ", `\`, "enter", "bar", "enter")

	sig, err := e.ReadLine(testPrompt{})
	require.NoError(t, err)
	assert.Equal(t, SignalSuccess, sig.Kind)
	assert.Equal(t, "foo \\\nbar", sig.Text)
}

func TestExternalPrinterMessageDoesNotCorruptSubmittedLine(t *testing.T) {
	e, in := newTestEngine(t, nil)
	e.printer.Send("background: job finished")
	send(t, in, "still typing", "enter")

	sig, err := e.ReadLine(testPrompt{})
	require.NoError(t, err)
	assert.Equal(t, "still typing", sig.Text)
}

func TestHistorySearchOverlayTypeAndAccept(t *testing.T) {
	hist := history.NewMemory()
	_, _ = hist.Save(history.Item{CommandLine: "git status"})
	_, _ = hist.Save(history.Item{CommandLine: "git commit"})
	_, _ = hist.Save(history.Item{CommandLine: "deploy prod"})

	// Ctrl-R, type "git", Enter accepts the newest substring match.
	e, in := newTestEngine(t, func(b *Builder) { b.WithHistory(hist) })
	send(t, in, "ctrl+r", "g", "i", "t", "enter")

	sig, err := e.ReadLine(testPrompt{})
	require.NoError(t, err)
	assert.Equal(t, "git commit", sig.Text)
}

// TestHistorySearchOverlayCancelRestoresPending uses Ctrl-G (Emacs' other
// binding for the Esc event, alongside the bare Esc key) to cancel the
// search overlay deterministically over a pipe, where a standalone Esc
// byte's disambiguation from a CSI sequence depends on timing this harness
// can't control.
func TestHistorySearchOverlayCancelRestoresPending(t *testing.T) {
	hist := history.NewMemory()
	_, _ = hist.Save(history.Item{CommandLine: "git status"})

	e, in := newTestEngine(t, func(b *Builder) { b.WithHistory(hist) })
	// Ctrl-G cancels the search overlay and restores the buffer from
	// before Ctrl-R was pressed ("xy"), then Enter submits that.
	send(t, in, "x", "y", "ctrl+r", "g", "i", "t", "ctrl+g", "enter")

	sig, err := e.ReadLine(testPrompt{})
	require.NoError(t, err)
	assert.Equal(t, "xy", sig.Text)
}
