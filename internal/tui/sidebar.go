package tui

import (
	"fmt"
	"strings"

	"github.com/climux/climux/internal/session"
)

func (m *Model) renderSidebar() string {
	sessions := m.eng.Sessions()
	var b strings.Builder
	fmt.Fprintf(&b, "Terminals  %d\n", len(sessions))

	active := m.eng.ActiveSession()
	for i, s := range sessions {
		b.WriteString(m.renderSidebarEntry(i, s, active))
	}

	height := m.height - 2
	content := b.String()
	return m.styles.Sidebar.Height(height).Render(content)
}

func (m *Model) renderSidebarEntry(index int, s *session.Session, active *session.Session) string {
	icon := "●"
	if s.Status.Exited {
		icon = "○"
	}
	notesMark := ""
	if s.Notes != "" {
		notesMark = " [≡]"
	}
	line := fmt.Sprintf("%s %d: %s%s", icon, index+1, s.Name, notesMark)
	if active != nil && active.ID == s.ID {
		line = m.styles.SidebarActive.Render(line)
	}

	unread := ""
	if s.UnreadNotification {
		unread = m.styles.Unread.Render(" *")
	}

	return fmt.Sprintf("%s\n%s\n%s%s\n", line, s.Cwd, s.Status.String(), unread)
}
