// Package editstack implements undo/redo over linebuffer snapshots, with
// coalescing so a run of typed characters undoes as a single step. The
// append-only log with a current-index cursor mirrors the shape described
// by the Rust reedline core editor's undo stack, reimplemented idiomatically
// rather than translated.
package editstack

import "github.com/go-editline/editline/linebuffer"

// Class classifies an edit by how it should be recorded on the undo stack.
type Class int

const (
	// Full always pushes a new snapshot.
	Full Class = iota
	// Coalesce merges into the previous snapshot if it was also Coalesce.
	Coalesce
	// Ignore never touches the stack (pure cursor moves, undo/redo itself).
	Ignore
)

// Stack is an undo/redo history of linebuffer snapshots.
type Stack struct {
	snapshots []entry
	index     int
}

type entry struct {
	snap  linebuffer.Snapshot
	class Class
}

// New returns a stack seeded with an initial snapshot at index 0.
func New(initial linebuffer.Snapshot) *Stack {
	return &Stack{snapshots: []entry{{snap: initial, class: Full}}, index: 0}
}

// Snapshot records current as the result of an edit of the given class.
// Full always appends, truncating any redo tail. Coalesce replaces the top
// entry if it was itself a Coalesce push; otherwise it behaves like Full.
// Ignore is a no-op.
func (s *Stack) Snapshot(current linebuffer.Snapshot, class Class) {
	switch class {
	case Ignore:
		return
	case Coalesce:
		if s.index == len(s.snapshots)-1 && s.snapshots[s.index].class == Coalesce {
			s.snapshots[s.index] = entry{snap: current, class: Coalesce}
			return
		}
		s.push(current, Coalesce)
	default:
		s.push(current, Full)
	}
}

func (s *Stack) push(current linebuffer.Snapshot, class Class) {
	s.snapshots = s.snapshots[:s.index+1]
	s.snapshots = append(s.snapshots, entry{snap: current, class: class})
	s.index++
}

// Undo moves the cursor back one snapshot and returns it, if possible.
func (s *Stack) Undo() (linebuffer.Snapshot, bool) {
	if s.index == 0 {
		return linebuffer.Snapshot{}, false
	}
	s.index--
	return s.snapshots[s.index].snap, true
}

// Redo moves the cursor forward one snapshot and returns it, if possible.
func (s *Stack) Redo() (linebuffer.Snapshot, bool) {
	if s.index >= len(s.snapshots)-1 {
		return linebuffer.Snapshot{}, false
	}
	s.index++
	return s.snapshots[s.index].snap, true
}

// Reset collapses the stack back to a single entry holding current.
func (s *Stack) Reset(current linebuffer.Snapshot) {
	s.snapshots = []entry{{snap: current, class: Full}}
	s.index = 0
}

// CanUndo reports whether Undo would succeed.
func (s *Stack) CanUndo() bool { return s.index > 0 }

// CanRedo reports whether Redo would succeed.
func (s *Stack) CanRedo() bool { return s.index < len(s.snapshots)-1 }
