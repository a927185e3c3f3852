package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/climux/climux/internal/input"
	"github.com/climux/climux/internal/session"
	"github.com/climux/climux/internal/switcher"
)

// applyActions executes every Action returned by the Input State
// Machine against the engine and TUI state.
func (m *Model) applyActions(actions []input.Action) tea.Cmd {
	for _, a := range actions {
		m.applyAction(a)
	}
	return nil
}

func (m *Model) applyAction(a input.Action) {
	switch a.Kind {
	case input.ActionWriteToActive:
		m.eng.WriteToActive(a.Bytes)

	case input.ActionCreate:
		_, _ = m.eng.Create("")

	case input.ActionCloseActive:
		m.eng.CloseActive()

	case input.ActionNext:
		m.eng.SelectNext()

	case input.ActionPrev:
		m.eng.SelectPrev()

	case input.ActionSelectByIndex:
		m.eng.SelectByIndex(a.Index)

	case input.ActionPasteToActive:
		m.eng.PasteToActive()

	case input.ActionToggleMini:
		_ = m.eng.ToggleMini()

	case input.ActionQuit:
		m.quitting = true

	case input.ActionEnterScrollback:
		m.scrollback = true
		m.scrollOffset = m.scrollbackTop()

	case input.ActionExitScrollback:
		m.scrollback = false

	case input.ActionScrollLine:
		m.moveScrollOffset(a.Dir, 1)

	case input.ActionScrollPage:
		rows, _ := mainPaneSize(m.width, m.height)
		m.moveScrollOffset(a.Dir, rows)

	case input.ActionScrollTop:
		m.scrollOffset = 0

	case input.ActionScrollBottom:
		m.scrollOffset = m.scrollbackTop()

	case input.ActionEnterSearch:
		m.searchMatches = nil
		m.searchMatchIdx = 0

	case input.ActionSearchEdit:
		if scr := m.eng.ActiveScreen(); scr != nil {
			m.searchMatches = scr.Search(a.Text)
			m.searchMatchIdx = 0
		}

	case input.ActionSearchConfirm:
		m.jumpToMatch(m.searchMatchIdx)

	case input.ActionSearchCancel:
		m.searchMatches = nil

	case input.ActionSearchNext:
		if len(m.searchMatches) > 0 {
			m.searchMatchIdx = (m.searchMatchIdx + 1) % len(m.searchMatches)
			m.jumpToMatch(m.searchMatchIdx)
		}

	case input.ActionSearchPrev:
		if len(m.searchMatches) > 0 {
			m.searchMatchIdx = (m.searchMatchIdx - 1 + len(m.searchMatches)) % len(m.searchMatches)
			m.jumpToMatch(m.searchMatchIdx)
		}

	case input.ActionYankLine:
		m.yankRow(m.scrollOffset)

	case input.ActionYankAll:
		m.yankVisibleRows()

	case input.ActionEnterVisualSelect:
		scr := m.eng.ActiveScreen()
		if scr != nil {
			pos := screenPos(m.scrollOffset, scr.Cursor().Col)
			m.visualAnchor, m.visualCursor = pos, pos
		}

	case input.ActionVisualMove:
		m.moveVisualCursor(a.Dir)

	case input.ActionVisualCommit:
		m.yankVisualSelection()
		m.setStatus("Yanked!", 2*time.Second)

	case input.ActionVisualCancel:
		// no-op, FSM already returned to Scrollback

	case input.ActionOpenRenameDialog:
		m.dialogKind = input.DialogRename
		m.editingMemo = false
		if s := m.eng.ActiveSession(); s != nil {
			m.buffer = s.Name
		}

	case input.ActionOpenSwitcherDialog:
		m.dialogKind = input.DialogSwitcher
		m.editingMemo = false
		m.buffer = ""
		m.refreshSwitcher()

	case input.ActionOpenMemoEdit:
		m.dialogKind = input.DialogRename
		m.editingMemo = true
		if s := m.eng.ActiveSession(); s != nil {
			m.buffer = s.Notes
		}

	case input.ActionDialogEdit:
		m.buffer = a.Text
		if a.Dialog == input.DialogSwitcher {
			m.refreshSwitcher()
		}

	case input.ActionDialogConfirm:
		m.confirmDialog(a)

	case input.ActionDialogCancel:
		m.buffer = ""

	case input.ActionOpenHelp:
		m.helpOpen = true

	case input.ActionCloseHelp:
		m.helpOpen = false

	case input.ActionEnterMini:
		m.fsm.EnterMiniFocused()

	case input.ActionExitMini:
		// no-op, FSM already returned to Normal

	case input.ActionOpenConfirmClose, input.ActionConfirmCancel:
		// no-op, FSM already switched mode
	}
}

func (m *Model) setStatus(text string, d time.Duration) {
	m.statusMsg = text
	m.statusUntil = time.Now().Add(d)
}

func (m *Model) refreshSwitcher() {
	fields := m.eng.SearchableFields()
	sfields := make([]switcher.Field, len(fields))
	for i, f := range fields {
		sfields[i] = switcher.Field{ID: f.ID, Name: f.Name, Cwd: f.Cwd, Notes: f.Notes}
	}
	m.switcherResults = switcher.Filter(m.buffer, sfields)
}

func (m *Model) confirmDialog(a input.Action) {
	switch {
	case a.Dialog == input.DialogRename && m.editingMemo:
		if s := m.eng.ActiveSession(); s != nil {
			m.eng.SetNotes(s.ID, a.Text)
		}
	case a.Dialog == input.DialogRename:
		if s := m.eng.ActiveSession(); s != nil {
			m.eng.Rename(s.ID, a.Text)
		}
	case a.Dialog == input.DialogSwitcher:
		if len(m.switcherResults) > 0 {
			m.eng.SelectByIndex(m.switcherIndex(m.switcherResults[0].Field.ID))
		}
	}
	m.buffer = ""
	m.editingMemo = false
}

func (m *Model) switcherIndex(id session.ID) int {
	for i, s := range m.eng.Sessions() {
		if s.ID == id {
			return i
		}
	}
	return -1
}
