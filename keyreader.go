package editline

import (
	"bufio"
	"io"

	"github.com/go-editline/editline/keybindings"
	"github.com/go-editline/editline/termio"
)

func pendingInputProbe(fd uintptr) (int, error) {
	return termio.PendingInput(fd)
}

// keyReader turns a raw byte stream into keybindings.KeyStroke values,
// decoding Ctrl-modified bytes (1-26), DEL/backspace, and the ESC-prefixed
// CSI sequences terminals send for arrow/navigation keys. Grounded on the
// teacher's internal/interactive/keys.go (handleControlChar/
// handleEscapeSequence/handleCSISequence), reimplemented as a pull-based
// reader instead of a callback dispatcher so the Engine can block on one
// KeyStroke at a time.
type keyReader struct {
	r   *bufio.Reader
	fd  uintptr
	raw bool
}

func newKeyReader(r io.Reader, fd uintptr, rawMode bool) *keyReader {
	return &keyReader{r: bufio.NewReader(r), fd: fd, raw: rawMode}
}

// Next blocks for the next complete KeyStroke.
func (k *keyReader) Next() (keybindings.KeyStroke, error) {
	b, err := k.r.ReadByte()
	if err != nil {
		return keybindings.KeyStroke{}, err
	}

	switch {
	case b == 27:
		return k.readEscape()
	case b == 13, b == 10:
		return keybindings.Named("enter"), nil
	case b == 127, b == 8:
		return keybindings.Named("backspace"), nil
	case b == 9:
		return keybindings.Named("tab"), nil
	case b == 0:
		return keybindings.Named("esc"), nil
	case b >= 1 && b <= 26:
		return keybindings.Ctrl(rune('a' + b - 1)), nil
	case b < 0x80:
		return keybindings.Plain(rune(b)), nil
	default:
		return k.readUTF8Rune(b)
	}
}

// readEscape disambiguates a lone Esc from the start of a CSI/SS3 sequence.
// When nothing is already buffered and PendingInput reports nothing
// immediately readable, the Esc stands alone; otherwise it reads ahead,
// mirroring shouldHandleEscapeAsSoftCancel/handleEscapeSequence.
func (k *keyReader) readEscape() (keybindings.KeyStroke, error) {
	if k.r.Buffered() == 0 {
		if n, err := pendingInputProbe(k.fd); err == nil && n == 0 {
			return keybindings.Named("esc"), nil
		}
	}

	b, err := k.r.ReadByte()
	if err != nil {
		return keybindings.Named("esc"), nil
	}

	switch b {
	case '[':
		return k.readCSI()
	case 'O':
		return k.readSS3()
	case 'b':
		return keybindings.Alt('b'), nil
	case 'f':
		return keybindings.Alt('f'), nil
	case 127, 8:
		return keybindings.KeyStroke{Mod: keybindings.ModAlt, Key: "backspace"}, nil
	default:
		if b < 0x80 {
			return keybindings.Alt(rune(b)), nil
		}
		return keybindings.Named("esc"), nil
	}
}

func (k *keyReader) readSS3() (keybindings.KeyStroke, error) {
	b, err := k.r.ReadByte()
	if err != nil {
		return keybindings.Named("esc"), nil
	}
	return ss3ToKeyStroke(b), nil
}

// readCSI reads a CSI sequence's parameter bytes up to a final letter in
// '@'..'~', then maps the common navigation sequences ("ESC [ A/B/C/D",
// "ESC [ H/F", "ESC [ 3~") to named keys. Unrecognized sequences are
// dropped and reported as a bare Esc, matching the teacher's
// handleCSISequence discipline of silently absorbing unknown params.
func (k *keyReader) readCSI() (keybindings.KeyStroke, error) {
	var params []byte
	for {
		b, err := k.r.ReadByte()
		if err != nil {
			return keybindings.Named("esc"), nil
		}
		if b >= '@' && b <= '~' {
			return csiToKeyStroke(params, b), nil
		}
		params = append(params, b)
	}
}

func ss3ToKeyStroke(final byte) keybindings.KeyStroke {
	switch final {
	case 'A':
		return keybindings.Named("up")
	case 'B':
		return keybindings.Named("down")
	case 'C':
		return keybindings.Named("right")
	case 'D':
		return keybindings.Named("left")
	case 'H':
		return keybindings.Named("home")
	case 'F':
		return keybindings.Named("end")
	default:
		return keybindings.Named("esc")
	}
}

func csiToKeyStroke(params []byte, final byte) keybindings.KeyStroke {
	switch final {
	case 'A':
		return keybindings.Named("up")
	case 'B':
		return keybindings.Named("down")
	case 'C':
		return keybindings.Named("right")
	case 'D':
		return keybindings.Named("left")
	case 'H':
		return keybindings.Named("home")
	case 'F':
		return keybindings.Named("end")
	case '~':
		switch string(params) {
		case "3":
			return keybindings.Named("delete")
		case "5":
			return keybindings.Named("pageup")
		case "6":
			return keybindings.Named("pagedown")
		case "200":
			return keybindings.Named("paste-start")
		case "201":
			return keybindings.Named("paste-end")
		}
	}
	return keybindings.Named("esc")
}

func (k *keyReader) readUTF8Rune(first byte) (keybindings.KeyStroke, error) {
	n := utf8TrailCount(first)
	buf := make([]byte, 0, n+1)
	buf = append(buf, first)
	for i := 0; i < n; i++ {
		b, err := k.r.ReadByte()
		if err != nil {
			break
		}
		buf = append(buf, b)
	}
	r := decodeUTF8(buf)
	return keybindings.Plain(r), nil
}

func utf8TrailCount(first byte) int {
	switch {
	case first&0xE0 == 0xC0:
		return 1
	case first&0xF0 == 0xE0:
		return 2
	case first&0xF8 == 0xF0:
		return 3
	default:
		return 0
	}
}

func decodeUTF8(buf []byte) rune {
	r := []rune(string(buf))
	if len(r) == 0 {
		return 0xFFFD
	}
	return r[0]
}
