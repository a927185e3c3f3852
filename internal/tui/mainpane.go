package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/climux/climux/internal/screen"
)

func (m *Model) renderMain() string {
	scr := m.eng.ActiveScreen()
	if scr == nil {
		rows, cols := mainPaneSize(m.width, m.height)
		return m.styles.Border.Width(cols).Height(rows).Render("")
	}

	var body string
	if m.scrollback {
		body = m.renderScrollbackViewport(scr)
	} else {
		body = renderGrid(visibleRows(scr))
	}

	if mini := m.eng.MiniScreen(); mini != nil {
		miniBody := renderGrid(visibleRows(mini))
		body = lipgloss.JoinVertical(lipgloss.Left, body, m.styles.Border.Render(miniBody))
	}

	return body
}

func visibleRows(scr *screen.Screen) [][]screen.Cell {
	rows := make([][]screen.Cell, scr.Rows())
	for i := range rows {
		rows[i] = scr.VisibleRow(i)
	}
	return rows
}

func (m *Model) renderScrollbackViewport(scr *screen.Screen) string {
	rows := scr.Rows()
	top := m.scrollOffset
	cells := make([][]screen.Cell, rows)
	for i := 0; i < rows; i++ {
		cells[i] = scr.GetRowCells(top + i)
	}
	return renderGrid(cells)
}
