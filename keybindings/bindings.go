package keybindings

import "github.com/go-editline/editline/events"

// MatchResult is the outcome of feeding one KeyStroke into the trie.
type MatchResult int

const (
	// NoMatch means the key (combined with any pending prefix) matches
	// nothing; the pending chord, if any, is cancelled.
	NoMatch MatchResult = iota
	// Partial means a chord prefix matched; more keys are awaited.
	Partial
	// Full means a complete chord matched; Event holds the bound event.
	Full
)

type node struct {
	event    *events.Event
	children map[KeyStroke]*node
}

func newNode() *node { return &node{children: make(map[KeyStroke]*node)} }

// Bindings is a trie from KeyStroke sequences to events.Event, supporting
// incremental matching: while a prefix is active, further keys extend the
// match; a non-matching key cancels the pending chord and is
// re-interpreted from scratch, per spec.md §4.4.
type Bindings struct {
	root    *node
	pending *node
}

// New returns an empty binding trie.
func New() *Bindings {
	return &Bindings{root: newNode()}
}

// Bind registers seq (length 1 for simple bindings, length >= 2 for chords)
// to fire ev. A full single-key binding and a chord starting with the same
// key may coexist: the single-key binding just has an event stored at that
// node in addition to it having children.
func (b *Bindings) Bind(seq []KeyStroke, ev events.Event) {
	n := b.root
	for _, ks := range seq {
		child, ok := n.children[ks]
		if !ok {
			child = newNode()
			n.children[ks] = child
		}
		n = child
	}
	evCopy := ev
	n.event = &evCopy
}

// Unbind removes the binding at seq, if any; it does not prune the trie
// node if it still has children (a shorter prefix under it may remain
// bound).
func (b *Bindings) Unbind(seq []KeyStroke) {
	n := b.root
	for _, ks := range seq {
		child, ok := n.children[ks]
		if !ok {
			return
		}
		n = child
	}
	n.event = nil
}

// Match feeds one key into the trie, resuming from any pending partial
// match. Esc should be handled by the caller before Match when it should
// unconditionally cancel a pending chord (spec.md §4.4); Match itself just
// reports NoMatch for a key with no continuation.
func (b *Bindings) Match(ks KeyStroke) (MatchResult, events.Event) {
	start := b.root
	if b.pending != nil {
		start = b.pending
	}
	child, ok := start.children[ks]
	if !ok {
		b.pending = nil
		return NoMatch, events.Event{}
	}
	if len(child.children) == 0 {
		b.pending = nil
		if child.event != nil {
			return Full, *child.event
		}
		return NoMatch, events.Event{}
	}
	// Has children: per spec.md §4.4, "a full single-key binding and a
	// chord starting with the same key may coexist; after the first key
	// the state is Partial ... and the engine waits ... for the second
	// key." So a node with children is always Partial even if it also
	// carries its own bound event — the shorter binding is shadowed for
	// as long as a longer chord sharing its prefix remains possible.
	b.pending = child
	return Partial, events.Event{}
}

// CancelPending clears any partial chord match (Esc handling).
func (b *Bindings) CancelPending() { b.pending = nil }

// HasPending reports whether a chord prefix is currently active.
func (b *Bindings) HasPending() bool { return b.pending != nil }
