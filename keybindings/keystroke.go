// Package keybindings maps chords — sequences of (modifier, key) — to
// events.Event via an incrementally-matched trie. The KeyStroke shape and
// its string notations ("ctrl+w", "^w", "alt+x", "up", ...) are grounded on
// the teacher's internal/keybindings/keystroke.go; the trie-matching
// contract (bind/unbind/match with Partial/Full/NoMatch) is new, required
// by spec.md §4.4 in place of the teacher's flat action-name lookup table.
package keybindings

import (
	"fmt"
	"strings"
)

// Modifier is a bitmask of held modifier keys.
type Modifier int

const (
	ModNone  Modifier = 0
	ModCtrl  Modifier = 1 << iota
	ModAlt
	ModShift
)

// KeyStroke is one key event: a modifier mask plus a key identity, which is
// either a printable rune (Key == "") or a named key (Key != "", e.g. "up",
// "enter", "tab", "backspace", "space", "delete", "esc").
type KeyStroke struct {
	Mod  Modifier
	Rune rune
	Key  string
}

// String renders a KeyStroke back to its canonical "ctrl+w"-style notation.
func (k KeyStroke) String() string {
	var b strings.Builder
	if k.Mod&ModCtrl != 0 {
		b.WriteString("ctrl+")
	}
	if k.Mod&ModAlt != 0 {
		b.WriteString("alt+")
	}
	if k.Mod&ModShift != 0 {
		b.WriteString("shift+")
	}
	if k.Key != "" {
		b.WriteString(k.Key)
	} else {
		b.WriteRune(k.Rune)
	}
	return b.String()
}

var namedKeys = map[string]string{
	"up": "up", "down": "down", "left": "left", "right": "right",
	"enter": "enter", "return": "enter", "tab": "tab", "esc": "esc", "escape": "esc",
	"space": "space", "backspace": "backspace", "delete": "delete", "del": "delete",
	"home": "home", "end": "end", "pageup": "pageup", "pagedown": "pagedown",
}

// ParseKeyStroke parses a single chord element: "ctrl+w", "^w", "c-w",
// "alt+x", "meta+x", "m-x", a bare named key ("up", "enter", ...), or a
// single literal character.
func ParseKeyStroke(s string) (KeyStroke, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return KeyStroke{}, fmt.Errorf("keybindings: empty key stroke")
	}
	if strings.HasPrefix(s, "^") && len([]rune(s)) == 2 {
		r := []rune(s)[1]
		return KeyStroke{Mod: ModCtrl, Rune: toLowerRune(r)}, nil
	}

	mod := ModNone
	rest := s
	for {
		lower := strings.ToLower(rest)
		switch {
		case strings.HasPrefix(lower, "ctrl+"), strings.HasPrefix(lower, "c-"):
			mod |= ModCtrl
			rest = rest[strings.IndexByte(rest, '-')+1:]
			if strings.ContainsRune(rest, '+') {
				rest = rest[strings.IndexByte(rest, '+')+1:]
			}
			continue
		case strings.HasPrefix(lower, "alt+"), strings.HasPrefix(lower, "meta+"), strings.HasPrefix(lower, "m-"):
			mod |= ModAlt
			if i := strings.IndexByte(rest, '+'); i >= 0 {
				rest = rest[i+1:]
			} else if i := strings.IndexByte(rest, '-'); i >= 0 {
				rest = rest[i+1:]
			}
			continue
		case strings.HasPrefix(lower, "shift+"):
			mod |= ModShift
			rest = rest[strings.IndexByte(rest, '+')+1:]
			continue
		}
		break
	}

	lowerRest := strings.ToLower(rest)
	if name, ok := namedKeys[lowerRest]; ok {
		return KeyStroke{Mod: mod, Key: name}, nil
	}

	runes := []rune(rest)
	if len(runes) != 1 {
		return KeyStroke{}, fmt.Errorf("keybindings: unrecognized key stroke %q", s)
	}
	r := runes[0]
	if mod&ModCtrl != 0 {
		r = toLowerRune(r)
	}
	return KeyStroke{Mod: mod, Rune: r}, nil
}

// ParseChord parses a space-separated sequence of chord elements, e.g.
// "ctrl+x ctrl+c".
func ParseChord(s string) ([]KeyStroke, error) {
	parts := strings.Fields(s)
	if len(parts) == 0 {
		return nil, fmt.Errorf("keybindings: empty chord")
	}
	out := make([]KeyStroke, 0, len(parts))
	for _, p := range parts {
		ks, err := ParseKeyStroke(p)
		if err != nil {
			return nil, err
		}
		out = append(out, ks)
	}
	return out, nil
}

func toLowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r - 'A' + 'a'
	}
	return r
}

// Ctrl builds a single-element Ctrl chord for rune r.
func Ctrl(r rune) KeyStroke { return KeyStroke{Mod: ModCtrl, Rune: toLowerRune(r)} }

// Alt builds a single-element Alt chord for rune r.
func Alt(r rune) KeyStroke { return KeyStroke{Mod: ModAlt, Rune: r} }

// Named builds a single-element chord for a named key ("up", "enter", ...).
func Named(name string) KeyStroke { return KeyStroke{Key: name} }

// Plain builds a single-element chord for an unmodified printable rune.
func Plain(r rune) KeyStroke { return KeyStroke{Rune: r} }
