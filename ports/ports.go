// Package ports defines the pure, synchronous collaborator interfaces the
// Engine calls out to: completion, hinting, highlighting, validation, and
// the prompt itself. All are pure functions of (line, cursor) — none may
// block or retain engine state across calls.
package ports

// Span is a byte range within the buffer, always on grapheme boundaries.
type Span struct {
	Start, End int
}

// Suggestion is one completion candidate.
type Suggestion struct {
	Value             string
	Description       string
	Style             string
	Extra             []string
	Span              Span
	AppendWhitespace  bool
	MatchIndices      []int
}

// Completer produces completion candidates for (line, pos).
type Completer interface {
	Complete(line string, pos int) []Suggestion
}

// CompleterFunc adapts a function to a Completer.
type CompleterFunc func(line string, pos int) []Suggestion

// Complete calls f.
func (f CompleterFunc) Complete(line string, pos int) []Suggestion { return f(line, pos) }

// History is the minimal surface Hinter needs from the history port,
// avoiding a hard dependency of ports on the history package.
type History interface {
	SearchPrefix(prefix string, limit int) []string
}

// Hinter produces a non-authoritative suffix shown after the cursor.
type Hinter interface {
	Hint(line string, pos int, hist History, ansiEnabled bool, cwd string) string
	CompleteHint() string
	NextHintToken() string
}

// StyleChunk is one piece of a highlighted line.
type StyleChunk struct {
	Style string
	Text  string
}

// StyledText is a sequence of styled chunks making up a highlighted line.
type StyledText []StyleChunk

// String concatenates the chunks' raw text, discarding style information.
func (s StyledText) String() string {
	total := 0
	for _, c := range s {
		total += len(c.Text)
	}
	buf := make([]byte, 0, total)
	for _, c := range s {
		buf = append(buf, c.Text...)
	}
	return string(buf)
}

// Highlighter produces styled text for a line.
type Highlighter interface {
	Highlight(line string, cursor int) StyledText
}

// ValidationResult is the verdict a Validator returns for Enter handling.
type ValidationResult int

const (
	// Complete means Enter should submit the buffer.
	Complete ValidationResult = iota
	// Incomplete means Enter should insert a newline instead of submitting.
	Incomplete
)

// Validator decides whether a buffer is ready to submit on Enter.
type Validator interface {
	Validate(line string) ValidationResult
}

// EditModeTag is the display tag a Prompt renders as part of its indicator.
type EditModeTag int

const (
	ModeDefault EditModeTag = iota
	ModeEmacs
	ModeViNormal
	ModeViInsert
	ModeHelixNormal
	ModeHelixInsert
	ModeHelixSelect
	ModeCustom
)

// SearchStatus describes the outcome of a reverse-search step, for the
// prompt's history-search indicator.
type SearchStatus int

const (
	SearchPassing SearchStatus = iota
	SearchFailing
)

// Prompt is implemented by the host; the Engine calls it once per repaint.
type Prompt interface {
	RenderLeft() string
	RenderRight() string
	RenderIndicator(mode EditModeTag) string
	RenderMultilineIndicator() string
	RenderHistorySearchIndicator(status SearchStatus, term string) string
	RightPromptOnLastLine() bool
}
