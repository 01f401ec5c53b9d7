// Package editmode implements the three polymorphic input parsers named in
// spec.md §4.5 (Emacs, Vi, Helix), each translating a raw keybindings.KeyStroke
// into an events.Event. The binding tables are grounded on the teacher's
// internal/keybindings profiles (CreateEmacsProfile/CreateViProfile); the
// modal fragment accumulator used by Vi and Helix has no teacher analogue
// (ggc's "Vi profile" is a flat binding table, not a real modal parser) and
// is instead grounded on the shape of original_source's
// src/edit_mode/vi/command.rs and src/edit_mode/hx/mod.rs, reimplemented
// idiomatically rather than translated.
package editmode

import (
	"github.com/go-editline/editline/editor"
	"github.com/go-editline/editline/events"
	"github.com/go-editline/editline/keybindings"
	"github.com/go-editline/editline/ports"
)

// EditMode is the shared contract all three variants implement.
type EditMode interface {
	Parse(ks keybindings.KeyStroke) events.Event
	ModeIndicator() ports.EditModeTag
}

func insertChar(r rune) events.Event {
	return events.EditEvent(editor.Command{Kind: editor.InsertChar, Rune: r})
}

// dispatchBindings runs ks through a chord trie and turns the trie's
// MatchResult into an event: Partial/NoMatch both produce None (per
// spec.md §7, "keybinding lookup miss produces ReedlineEvent::None").
func dispatchBindings(b *keybindings.Bindings, ks keybindings.KeyStroke) events.Event {
	res, ev := b.Match(ks)
	if res == keybindings.Full {
		return ev
	}
	return events.E(events.None)
}
