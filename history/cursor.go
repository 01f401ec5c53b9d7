package history

import "strings"

// QueryKind is the navigation query shape a Cursor holds for its lifetime.
type QueryKind int

const (
	NavNormal QueryKind = iota
	NavPrefixSearch
	NavSubstringSearch
)

// Cursor implements the History navigation algorithm of spec.md §4.7: a
// position within a filtered stream, plus a buffer snapshot taken at the
// moment navigation was first entered. It is purely local per read_line
// call; the History port itself may be shared across sessions.
type Cursor struct {
	hist History

	active    bool
	queryKind QueryKind
	queryText string
	pending   string

	items []Item
	pos   int // index into items; -1 means "showing pending, no item selected"
}

// NewCursor returns a cursor bound to a history port.
func NewCursor(hist History) *Cursor {
	return &Cursor{hist: hist, pos: -1}
}

// Active reports whether navigation is currently in progress.
func (c *Cursor) Active() bool { return c.active }

// Enter begins navigation, called on the first PreviousHistory. buffer is
// snapshotted as `pending`; the query is a prefix search from buffer if
// non-empty, else unconstrained.
func (c *Cursor) Enter(buffer string) error {
	c.active = true
	c.pending = buffer
	c.pos = -1
	if buffer != "" {
		c.queryKind = NavPrefixSearch
		c.queryText = buffer
	} else {
		c.queryKind = NavNormal
		c.queryText = ""
	}
	items, err := c.hist.Search(Query{Direction: Backward})
	if err != nil {
		return err
	}
	c.items = filterAndDedup(items, c.queryKind, c.queryText)
	return nil
}

// EnterSubstring begins a reverse-search-style navigation matching query
// anywhere in the command line, used by the SearchHistory overlay.
func (c *Cursor) EnterSubstring(buffer, query string) error {
	c.active = true
	c.pending = buffer
	c.pos = -1
	c.queryKind = NavSubstringSearch
	c.queryText = query
	items, err := c.hist.Search(Query{Direction: Backward})
	if err != nil {
		return err
	}
	c.items = filterAndDedup(items, c.queryKind, c.queryText)
	return nil
}

func filterAndDedup(items []Item, kind QueryKind, text string) []Item {
	out := make([]Item, 0, len(items))
	var last string
	first := true
	for _, it := range items {
		switch kind {
		case NavPrefixSearch:
			if !strings.HasPrefix(it.CommandLine, text) {
				continue
			}
		case NavSubstringSearch:
			if !strings.Contains(it.CommandLine, text) {
				continue
			}
		}
		if !first && it.CommandLine == last {
			continue
		}
		out = append(out, it)
		last = it.CommandLine
		first = false
	}
	return out
}

// Previous pages backward (older) through the filtered stream, skipping
// consecutive duplicates (already deduped at Enter time). Returns the
// command line to show and whether a further item was available.
func (c *Cursor) Previous() (string, bool) {
	if !c.active {
		return "", false
	}
	if c.pos+1 >= len(c.items) {
		return "", false
	}
	c.pos++
	return c.items[c.pos].CommandLine, true
}

// Next pages forward (newer). Forward past the newest match restores
// pending and exits navigation.
func (c *Cursor) Next() (string, bool) {
	if !c.active {
		return "", false
	}
	if c.pos <= 0 {
		text := c.pending
		c.exitInternal()
		return text, true
	}
	c.pos--
	return c.items[c.pos].CommandLine, true
}

// Abort is called when any edit command interrupts navigation: the
// currently displayed item (if any) becomes the new buffer and navigation
// ends without restoring pending.
func (c *Cursor) Abort() {
	c.exitInternal()
}

func (c *Cursor) exitInternal() {
	c.active = false
	c.pos = -1
	c.items = nil
}
