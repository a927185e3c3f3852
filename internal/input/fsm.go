package input

import "time"

// Mode is the state machine's current named state.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrefixWait
	ModeScrollback
	ModeScrollbackSearch
	ModeVisualSelect
	ModeDialogInput
	ModeMemoEdit
	ModeHelpOverlay
	ModeMiniFocused
	ModeConfirmClose
)

// prefixTimeout is how long PrefixWait waits for a command key
// before falling back to writing the prefix byte through. It is
// measured lazily at poll time, never by a wake-up timer.
const prefixTimeout = 1 * time.Second

// Machine is the Input State Machine. It holds no reference to the
// engine; callers apply the Actions it returns.
type Machine struct {
	mode Mode

	prefixDeadline time.Time

	searchQuery string

	dialogKind DialogKind
	buffer     []rune

	selectKind SelectKind

	appCursorKeys bool
	activeRunning bool
}

// NewMachine returns a Machine starting in Normal mode.
func NewMachine() *Machine {
	return &Machine{mode: ModeNormal}
}

// SetAppCursorKeys updates whether arrow keys should be encoded for
// DECCKM (application cursor keys) mode, read from the active
// Screen before each Feed call that might write through to the pty.
func (m *Machine) SetAppCursorKeys(on bool) {
	m.appCursorKeys = on
}

// SetActiveRunning records whether the active session's status is
// Running, read from the engine before each Feed call. It decides
// whether closing the active session needs a confirm step first.
func (m *Machine) SetActiveRunning(running bool) {
	m.activeRunning = running
}

// Mode returns the machine's current named state.
func (m *Machine) Mode() Mode {
	return m.mode
}

// Tick checks the lazy prefix-wait timeout against now, returning the
// fallback action (write through Ctrl+b) if it has elapsed.
func (m *Machine) Tick(now time.Time) []Action {
	if m.mode != ModePrefixWait {
		return nil
	}
	if now.Before(m.prefixDeadline) {
		return nil
	}
	m.mode = ModeNormal
	return []Action{{Kind: ActionWriteToActive, Bytes: []byte{0x02}}}
}

// Feed decodes one key event against the current mode and returns
// the resulting actions (almost always exactly one).
func (m *Machine) Feed(now time.Time, k Key) []Action {
	switch m.mode {
	case ModeNormal:
		return m.feedNormal(k)
	case ModePrefixWait:
		return m.feedPrefixWait(now, k)
	case ModeScrollback:
		return m.feedScrollback(k)
	case ModeScrollbackSearch:
		return m.feedScrollbackSearch(k)
	case ModeVisualSelect:
		return m.feedVisualSelect(k)
	case ModeDialogInput:
		return m.feedDialogInput(k)
	case ModeMemoEdit:
		return m.feedMemoEdit(k)
	case ModeHelpOverlay:
		return m.feedHelpOverlay(k)
	case ModeMiniFocused:
		return m.feedMiniFocused(k)
	case ModeConfirmClose:
		return m.feedConfirmClose(k)
	default:
		return nil
	}
}

func (m *Machine) feedNormal(k Key) []Action {
	if k.Rune == 0x02 { // Ctrl+b
		m.mode = ModePrefixWait
		m.prefixDeadline = time.Now().Add(prefixTimeout)
		return nil
	}
	return []Action{{Kind: ActionWriteToActive, Bytes: EncodeKey(k, m.appCursorKeys)}}
}

func (m *Machine) feedPrefixWait(now time.Time, k Key) []Action {
	m.mode = ModeNormal

	if k.Named != KeyNone {
		return []Action{{Kind: ActionWriteToActive, Bytes: []byte{0x02}}}
	}

	switch k.Rune {
	case 'c':
		return []Action{{Kind: ActionCreate}}
	case 'd':
		if m.activeRunning {
			m.mode = ModeConfirmClose
			return []Action{{Kind: ActionOpenConfirmClose}}
		}
		return []Action{{Kind: ActionCloseActive}}
	case 'n':
		return []Action{{Kind: ActionNext}}
	case 'p':
		return []Action{{Kind: ActionPrev}}
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return []Action{{Kind: ActionSelectByIndex, Index: int(k.Rune - '1')}}
	case 0x02:
		return []Action{{Kind: ActionWriteToActive, Bytes: []byte{0x02}}}
	case '[':
		m.mode = ModeScrollback
		return []Action{{Kind: ActionEnterScrollback}}
	case ']':
		return []Action{{Kind: ActionPasteToActive}}
	case 'r':
		m.mode = ModeDialogInput
		m.dialogKind = DialogRename
		m.buffer = nil
		return []Action{{Kind: ActionOpenRenameDialog}}
	case 'm':
		m.mode = ModeMemoEdit
		m.buffer = nil
		return []Action{{Kind: ActionOpenMemoEdit}}
	case 'f':
		m.mode = ModeDialogInput
		m.dialogKind = DialogSwitcher
		m.buffer = nil
		return []Action{{Kind: ActionOpenSwitcherDialog}}
	case '`':
		return []Action{{Kind: ActionToggleMini}}
	case '?':
		m.mode = ModeHelpOverlay
		return []Action{{Kind: ActionOpenHelp}}
	case 'q':
		return []Action{{Kind: ActionQuit}}
	default:
		return []Action{{Kind: ActionWriteToActive, Bytes: []byte{0x02}}}
	}
}

func (m *Machine) feedScrollback(k Key) []Action {
	switch {
	case k.Rune == 'j' || k.Named == KeyDown:
		return []Action{{Kind: ActionScrollLine, Dir: MoveDown}}
	case k.Rune == 'k' || k.Named == KeyUp:
		return []Action{{Kind: ActionScrollLine, Dir: MoveUp}}
	case k.Named == KeyPgUp:
		return []Action{{Kind: ActionScrollPage, Dir: MoveUp, Pages: 1}}
	case k.Named == KeyPgDn:
		return []Action{{Kind: ActionScrollPage, Dir: MoveDown, Pages: 1}}
	case k.Rune == 'g':
		return []Action{{Kind: ActionScrollTop}}
	case k.Rune == 'G':
		return []Action{{Kind: ActionScrollBottom}}
	case k.Rune == '/':
		m.mode = ModeScrollbackSearch
		m.searchQuery = ""
		return []Action{{Kind: ActionEnterSearch}}
	case k.Rune == 'n':
		return []Action{{Kind: ActionSearchNext}}
	case k.Rune == 'N':
		return []Action{{Kind: ActionSearchPrev}}
	case k.Rune == 'y':
		return []Action{{Kind: ActionYankLine}}
	case k.Rune == 'Y':
		return []Action{{Kind: ActionYankAll}}
	case k.Rune == 'v':
		m.mode = ModeVisualSelect
		m.selectKind = SelectChar
		return []Action{{Kind: ActionEnterVisualSelect, Select: SelectChar}}
	case k.Rune == 'V':
		m.mode = ModeVisualSelect
		m.selectKind = SelectLine
		return []Action{{Kind: ActionEnterVisualSelect, Select: SelectLine}}
	case k.Named == KeyEsc || k.Rune == 'q':
		m.mode = ModeNormal
		return []Action{{Kind: ActionExitScrollback}}
	default:
		return nil
	}
}

func (m *Machine) feedScrollbackSearch(k Key) []Action {
	switch {
	case k.Named == KeyEnter:
		m.mode = ModeScrollback
		return []Action{{Kind: ActionSearchConfirm, Text: m.searchQuery}}
	case k.Named == KeyEsc:
		m.mode = ModeScrollback
		m.searchQuery = ""
		return []Action{{Kind: ActionSearchCancel}}
	case k.Named == KeyBackspace:
		if len(m.searchQuery) > 0 {
			r := []rune(m.searchQuery)
			m.searchQuery = string(r[:len(r)-1])
		}
		return []Action{{Kind: ActionSearchEdit, Text: m.searchQuery}}
	case k.Named == KeyNone:
		m.searchQuery += string(k.Rune)
		return []Action{{Kind: ActionSearchEdit, Text: m.searchQuery}}
	default:
		return nil
	}
}

func (m *Machine) feedVisualSelect(k Key) []Action {
	switch {
	case k.Rune == 'h' || k.Named == KeyLeft:
		return []Action{{Kind: ActionVisualMove, Dir: MoveLeft}}
	case k.Rune == 'l' || k.Named == KeyRight:
		return []Action{{Kind: ActionVisualMove, Dir: MoveRight}}
	case k.Rune == 'j' || k.Named == KeyDown:
		return []Action{{Kind: ActionVisualMove, Dir: MoveDown}}
	case k.Rune == 'k' || k.Named == KeyUp:
		return []Action{{Kind: ActionVisualMove, Dir: MoveUp}}
	case k.Rune == '0':
		return []Action{{Kind: ActionVisualMove, Dir: MoveLineStart}}
	case k.Rune == '$':
		return []Action{{Kind: ActionVisualMove, Dir: MoveLineEnd}}
	case k.Named == KeyPgUp:
		return []Action{{Kind: ActionScrollPage, Dir: MoveUp, Pages: 1}}
	case k.Named == KeyPgDn:
		return []Action{{Kind: ActionScrollPage, Dir: MoveDown, Pages: 1}}
	case k.Rune == 'y':
		m.mode = ModeScrollback
		return []Action{{Kind: ActionVisualCommit}}
	case k.Named == KeyEsc:
		m.mode = ModeScrollback
		return []Action{{Kind: ActionVisualCancel}}
	default:
		return nil
	}
}

func (m *Machine) feedDialogInput(k Key) []Action {
	switch {
	case k.Named == KeyEnter:
		m.mode = ModeNormal
		return []Action{{Kind: ActionDialogConfirm, Dialog: m.dialogKind, Text: string(m.buffer)}}
	case k.Named == KeyEsc:
		m.mode = ModeNormal
		m.buffer = nil
		return []Action{{Kind: ActionDialogCancel, Dialog: m.dialogKind}}
	case k.Named == KeyBackspace:
		if len(m.buffer) > 0 {
			m.buffer = m.buffer[:len(m.buffer)-1]
		}
		return []Action{{Kind: ActionDialogEdit, Dialog: m.dialogKind, Text: string(m.buffer)}}
	case k.Named == KeyNone:
		m.buffer = append(m.buffer, k.Rune)
		return []Action{{Kind: ActionDialogEdit, Dialog: m.dialogKind, Text: string(m.buffer)}}
	default:
		return nil
	}
}

func (m *Machine) feedMemoEdit(k Key) []Action {
	switch {
	case k.Named == KeyEsc:
		m.mode = ModeNormal
		return []Action{{Kind: ActionDialogConfirm, Dialog: DialogRename, Text: string(m.buffer)}}
	case k.Named == KeyBackspace:
		if len(m.buffer) > 0 {
			m.buffer = m.buffer[:len(m.buffer)-1]
		}
		return []Action{{Kind: ActionDialogEdit, Text: string(m.buffer)}}
	case k.Named == KeyEnter:
		m.buffer = append(m.buffer, '\n')
		return []Action{{Kind: ActionDialogEdit, Text: string(m.buffer)}}
	case k.Named == KeyNone:
		m.buffer = append(m.buffer, k.Rune)
		return []Action{{Kind: ActionDialogEdit, Text: string(m.buffer)}}
	default:
		return nil
	}
}

func (m *Machine) feedHelpOverlay(k Key) []Action {
	if k.Named == KeyEsc || k.Rune == 'q' || k.Rune == '?' {
		m.mode = ModeNormal
		return []Action{{Kind: ActionCloseHelp}}
	}
	return nil
}

// feedMiniFocused returns to Normal on Esc and otherwise writes the
// key through to the active session, as Normal mode does; keys are
// not routed to the mini session's pty.
func (m *Machine) feedMiniFocused(k Key) []Action {
	if k.Named == KeyEsc {
		m.mode = ModeNormal
		return []Action{{Kind: ActionExitMini}}
	}
	return []Action{{Kind: ActionWriteToActive, Bytes: EncodeKey(k, m.appCursorKeys)}}
}

func (m *Machine) feedConfirmClose(k Key) []Action {
	switch {
	case k.Rune == 'y' || k.Named == KeyEnter:
		m.mode = ModeNormal
		return []Action{{Kind: ActionCloseActive}}
	case k.Rune == 'n' || k.Named == KeyEsc:
		m.mode = ModeNormal
		return []Action{{Kind: ActionConfirmCancel}}
	default:
		return nil
	}
}

// EnterMiniFocused switches directly into MiniFocused mode. The TUI
// calls it for ActionEnterMini; no key sequence fed to the machine
// produces that action, and opening the mini pane does not call it.
func (m *Machine) EnterMiniFocused() {
	m.mode = ModeMiniFocused
}
