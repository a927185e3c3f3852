package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/climux/climux/internal/input"
)

// decodeKey translates a bubbletea key press into the Input State
// Machine's Key representation.
func decodeKey(msg tea.KeyPressMsg) input.Key {
	switch msg.String() {
	case "up":
		return input.Key{Named: input.KeyUp}
	case "down":
		return input.Key{Named: input.KeyDown}
	case "left":
		return input.Key{Named: input.KeyLeft}
	case "right":
		return input.Key{Named: input.KeyRight}
	case "home":
		return input.Key{Named: input.KeyHome}
	case "end":
		return input.Key{Named: input.KeyEnd}
	case "pgup":
		return input.Key{Named: input.KeyPgUp}
	case "pgdown":
		return input.Key{Named: input.KeyPgDn}
	case "enter":
		return input.Key{Named: input.KeyEnter}
	case "esc":
		return input.Key{Named: input.KeyEsc}
	case "backspace":
		return input.Key{Named: input.KeyBackspace}
	case "tab":
		return input.Key{Named: input.KeyTab}
	case "space":
		return input.Key{Rune: ' '}
	case "ctrl+b":
		return input.Key{Rune: 0x02}
	}

	k := tea.Key(msg)
	if k.Text != "" {
		r := []rune(k.Text)
		return input.Key{Rune: r[0]}
	}
	if code := rune(k.Code); k.Mod&tea.ModCtrl != 0 && code >= 'a' && code <= 'z' {
		return input.Key{Rune: rune(input.CtrlByte(code))}
	}
	return input.Key{}
}
