// Package tui implements the rendered TUI layout: sidebar, main
// pane, footer mini pane, and overlays, wired to the engine and the
// Input State Machine.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/climux/climux/internal/engine"
	"github.com/climux/climux/internal/input"
	"github.com/climux/climux/internal/pty"
	"github.com/climux/climux/internal/screen"
	"github.com/climux/climux/internal/switcher"
	"github.com/climux/climux/internal/tui/styles"
)

const tickInterval = 33 * time.Millisecond

const sidebarWidth = 25

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model is the bubbletea root model.
type Model struct {
	eng    *engine.Engine
	fsm    *input.Machine
	styles *styles.Styles

	width, height int

	scrollback      bool
	scrollOffset    int
	searchMatches   []screen.Match
	searchMatchIdx  int

	visualAnchor, visualCursor screen.CursorPos

	switcherResults []switcher.Result

	dialogKind  input.DialogKind
	buffer      string
	editingMemo bool

	helpOpen bool

	statusMsg   string
	statusUntil time.Time

	quitting bool
}

// New builds the root Model over an already-constructed Engine.
func New(eng *engine.Engine) *Model {
	return &Model{
		eng:    eng,
		fsm:    input.NewMachine(),
		styles: styles.New(),
	}
}

// Init creates the first session and starts the render/poll tick.
func (m *Model) Init() tea.Cmd {
	_, _ = m.eng.Create("")
	return tickCmd()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		rows, cols := mainPaneSize(m.width, m.height)
		m.eng.ResizeAll(pty.Size{Rows: uint16(rows), Cols: uint16(cols)})
		return m, nil

	case tickMsg:
		m.eng.PollAll()
		cmd := m.applyActions(m.fsm.Tick(time.Now()))
		return m, tea.Batch(cmd, tickCmd())

	case tea.KeyPressMsg:
		if m.fsm.Mode() == input.ModeNormal {
			if scr := m.eng.ActiveScreen(); scr != nil {
				m.fsm.SetAppCursorKeys(scr.AppCursorKeys())
			}
		}
		if s := m.eng.ActiveSession(); s != nil {
			m.fsm.SetActiveRunning(!s.Status.Exited)
		} else {
			m.fsm.SetActiveRunning(false)
		}
		key := decodeKey(msg)
		actions := m.fsm.Feed(time.Now(), key)
		cmd := m.applyActions(actions)
		if m.quitting {
			return m, tea.Quit
		}
		return m, cmd

	case tea.PasteMsg:
		if m.fsm.Mode() == input.ModeNormal {
			m.eng.WriteToActive([]byte(msg.Content))
		}
		return m, nil
	}

	return m, nil
}

func mainPaneSize(width, height int) (rows, cols int) {
	cols = width - sidebarWidth - 2
	rows = height - 2
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return rows, cols
}

// View implements tea.Model.
func (m *Model) View() tea.View {
	sidebar := m.renderSidebar()
	main := m.renderMain()
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)

	if m.helpOpen {
		return tea.NewView(lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderHelp()))
	}
	if m.fsm.Mode() == input.ModeDialogInput || m.fsm.Mode() == input.ModeMemoEdit {
		return tea.NewView(lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderDialog()))
	}
	if m.fsm.Mode() == input.ModeConfirmClose {
		return tea.NewView(lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderConfirmClose()))
	}

	footer := m.renderStatus()
	return tea.NewView(lipgloss.JoinVertical(lipgloss.Left, body, footer))
}

func (m *Model) renderStatus() string {
	if time.Now().Before(m.statusUntil) {
		return m.styles.Status.Render(m.statusMsg)
	}
	mode := "NORMAL"
	switch m.fsm.Mode() {
	case input.ModePrefixWait:
		mode = "PREFIX"
	case input.ModeScrollback:
		mode = "SCROLLBACK"
	case input.ModeScrollbackSearch:
		mode = "SEARCH"
	case input.ModeVisualSelect:
		mode = "VISUAL"
	case input.ModeMiniFocused:
		mode = "MINI"
	case input.ModeDialogInput:
		mode = "DIALOG"
	case input.ModeMemoEdit:
		mode = "MEMO"
	case input.ModeHelpOverlay:
		mode = "HELP"
	case input.ModeConfirmClose:
		mode = "CONFIRM"
	}
	return m.styles.Footer.Render(fmt.Sprintf(" %s  Ctrl+b ? for help ", mode))
}

func (m *Model) renderHelp() string {
	text := "" +
		"Ctrl+b c   create\nCtrl+b d   close (confirms if running)\nCtrl+b n/p next/prev\nCtrl+b 1-9 jump\n" +
		"Ctrl+b [   scrollback\nCtrl+b ]   paste\nCtrl+b r   rename\nCtrl+b m   memo\n" +
		"Ctrl+b f   switcher\nCtrl+b `   mini terminal\nCtrl+b q   quit\n\nEsc to close"
	return m.styles.BorderFocus.Padding(1, 2).Render(text)
}

func (m *Model) renderConfirmClose() string {
	name := "this session"
	if s := m.eng.ActiveSession(); s != nil {
		name = s.Name
	}
	text := fmt.Sprintf("%s is still running.\n\nClose it anyway? (y/N)", name)
	return m.styles.BorderFocus.Padding(1, 2).Render(text)
}

func (m *Model) renderDialog() string {
	if m.fsm.Mode() == input.ModeMemoEdit {
		return m.styles.BorderFocus.Padding(1, 2).Render("Edit memo\n\n" + m.buffer + "_")
	}
	if m.dialogKind == input.DialogSwitcher {
		var b strings.Builder
		b.WriteString("Switch session\n\n> " + m.buffer + "\n\n")
		for _, r := range m.switcherResults {
			b.WriteString(r.Field.Name + "  " + r.Field.Cwd + "\n")
		}
		return m.styles.BorderFocus.Padding(1, 2).Render(b.String())
	}
	return m.styles.BorderFocus.Padding(1, 2).Render("Rename session\n\n> " + m.buffer)
}
