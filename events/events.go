// Package events defines ReedlineEvent, the semantic instruction set that
// sits between EditMode (key parsing) and Engine (dispatch). Pulling it out
// of both packages avoids a keybindings/editmode <-> engine import cycle,
// since both the key-parsing layer and the engine need the same sum type.
package events

import "github.com/go-editline/editline/editor"

// Kind enumerates ReedlineEvent variants per spec.md §3.
type Kind int

const (
	Up Kind = iota
	Down
	Left
	Right
	PreviousHistory
	NextHistory
	SearchHistory

	CtrlC
	CtrlD
	Enter
	Esc
	ClearScreen
	Repaint
	Resize
	None

	Edit

	HistoryHintComplete
	HistoryHintWordComplete

	Menu
	MenuNext
	MenuPrevious
	MenuUp
	MenuDown
	MenuLeft
	MenuRight
	MenuPageNext
	MenuPagePrevious

	Multiple
	UntilFound

	ExecuteHostCommand
)

// Event is the tagged variant the Engine dispatches. Only the fields
// relevant to Kind are populated; this mirrors the closed-sum-type
// discipline spec.md §9 calls for, expressed as a Go struct instead of an
// open interface hierarchy so the Engine's switch stays exhaustive-checkable.
type Event struct {
	Kind Kind

	// Edit
	Commands []editor.Command

	// Resize
	Width, Height int

	// Menu
	MenuName string

	// ExecuteHostCommand
	HostCommand string

	// Multiple / UntilFound
	Events []Event
}

// E constructs a bare-kind event, for the many variants with no payload.
func E(k Kind) Event { return Event{Kind: k} }

// EditEvent constructs an Edit event carrying an atomic command batch.
func EditEvent(cmds ...editor.Command) Event { return Event{Kind: Edit, Commands: cmds} }

// MenuEvent constructs a Menu(name) event.
func MenuEvent(name string) Event { return Event{Kind: Menu, MenuName: name} }

// ResizeEvent constructs a Resize(w,h) event.
func ResizeEvent(w, h int) Event { return Event{Kind: Resize, Width: w, Height: h} }

// HostCommandEvent constructs an ExecuteHostCommand(s) event.
func HostCommandEvent(s string) Event { return Event{Kind: ExecuteHostCommand, HostCommand: s} }

// MultipleEvent constructs a Multiple([...]) composite event.
func MultipleEvent(evs ...Event) Event { return Event{Kind: Multiple, Events: evs} }

// UntilFoundEvent constructs an UntilFound([...]) composite event.
func UntilFoundEvent(evs ...Event) Event { return Event{Kind: UntilFound, Events: evs} }
