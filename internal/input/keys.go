// Package input implements the Terminal Engine's prefix-key Input
// State Machine: translating raw key events into abstract actions
// under a tmux-style Ctrl+b prefix model.
package input

// Key is one decoded key event. Rune is set for printable characters
// (including Ctrl+letter, pre-mapped to its control byte by the
// caller's key reader); Named identifies non-printable keys.
type Key struct {
	Rune  rune
	Named NamedKey
}

// NamedKey enumerates the non-printable keys the state machine and
// encoder need to recognize by identity rather than rune value.
type NamedKey int

const (
	KeyNone NamedKey = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDn
	KeyEnter
	KeyEsc
	KeyBackspace
	KeyTab
)

// EncodeKey renders key as the bytes to send to the active pty,
// honoring DECCKM for arrow keys (CSI vs SS3 final byte) the way
// key_to_bytes does.
func EncodeKey(k Key, appCursorKeys bool) []byte {
	if k.Named != KeyNone {
		return encodeNamed(k.Named, appCursorKeys)
	}
	return []byte(string(k.Rune))
}

func encodeNamed(n NamedKey, appCursorKeys bool) []byte {
	arrow := func(final byte) []byte {
		if appCursorKeys {
			return []byte{0x1b, 'O', final}
		}
		return []byte{0x1b, '[', final}
	}
	switch n {
	case KeyUp:
		return arrow('A')
	case KeyDown:
		return arrow('B')
	case KeyRight:
		return arrow('C')
	case KeyLeft:
		return arrow('D')
	case KeyHome:
		return []byte{0x1b, '[', 'H'}
	case KeyEnd:
		return []byte{0x1b, '[', 'F'}
	case KeyPgUp:
		return []byte{0x1b, '[', '5', '~'}
	case KeyPgDn:
		return []byte{0x1b, '[', '6', '~'}
	case KeyEnter:
		return []byte{'\r'}
	case KeyEsc:
		return []byte{0x1b}
	case KeyBackspace:
		return []byte{0x7f}
	case KeyTab:
		return []byte{'\t'}
	default:
		return nil
	}
}

// CtrlByte maps Ctrl+letter to its control byte (letter - 'a' + 1),
// the key_to_bytes convention.
func CtrlByte(letter rune) byte {
	return byte(letter-'a') + 1
}

// BracketedPaste frames text per DEC private mode 2004.
func BracketedPaste(text string) []byte {
	return append(append([]byte("\x1b[200~"), []byte(text)...), []byte("\x1b[201~")...)
}
