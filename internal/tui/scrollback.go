package tui

import (
	"strings"

	"github.com/climux/climux/internal/input"
	"github.com/climux/climux/internal/screen"
)

// scrollbackTop returns the offset that shows the most recent
// scrollback page, i.e. the bottom of history.
func (m *Model) scrollbackTop() int {
	scr := m.eng.ActiveScreen()
	if scr == nil {
		return 0
	}
	top := scr.TotalRows() - scr.Rows()
	if top < 0 {
		top = 0
	}
	return top
}

func (m *Model) moveScrollOffset(dir input.MoveDir, n int) {
	scr := m.eng.ActiveScreen()
	if scr == nil {
		return
	}
	max := m.scrollbackTop()
	switch dir {
	case input.MoveUp:
		m.scrollOffset -= n
	case input.MoveDown:
		m.scrollOffset += n
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
	if m.scrollOffset > max {
		m.scrollOffset = max
	}
}

// jumpToMatch scrolls the viewport so match i of m.searchMatches is
// visible at the top of the page.
func (m *Model) jumpToMatch(i int) {
	if i < 0 || i >= len(m.searchMatches) {
		return
	}
	row := m.searchMatches[i].AbsoluteRow
	m.scrollOffset = row
	max := m.scrollbackTop()
	if m.scrollOffset > max {
		m.scrollOffset = max
	}
}

// screenPos builds a CursorPos over the scrollback address space:
// Row is the absolute row, Col is the column within that row.
func screenPos(absoluteRow, col int) screen.CursorPos {
	return screen.CursorPos{Row: absoluteRow, Col: col}
}

func (m *Model) moveVisualCursor(dir input.MoveDir) {
	scr := m.eng.ActiveScreen()
	if scr == nil {
		return
	}
	switch dir {
	case input.MoveUp:
		if m.visualCursor.Row > 0 {
			m.visualCursor.Row--
		}
	case input.MoveDown:
		if m.visualCursor.Row < scr.TotalRows()-1 {
			m.visualCursor.Row++
		}
	case input.MoveLeft:
		if m.visualCursor.Col > 0 {
			m.visualCursor.Col--
		}
	case input.MoveRight:
		if m.visualCursor.Col < scr.Cols()-1 {
			m.visualCursor.Col++
		}
	case input.MoveLineStart:
		m.visualCursor.Col = 0
	case input.MoveLineEnd:
		m.visualCursor.Col = scr.Cols() - 1
	}
}

// yankRow copies the text of the scrollback row currently at the top
// of the viewport into the yank buffer.
func (m *Model) yankRow(absoluteRow int) {
	scr := m.eng.ActiveScreen()
	if scr == nil {
		return
	}
	m.eng.Yank(screen.RowText(scr.GetRowCells(absoluteRow)))
}

// yankVisibleRows copies every row currently on screen into the yank
// buffer, joined by newlines.
func (m *Model) yankVisibleRows() {
	scr := m.eng.ActiveScreen()
	if scr == nil {
		return
	}
	lines := make([]string, scr.Rows())
	for i := range lines {
		lines[i] = screen.RowText(scr.GetRowCells(m.scrollOffset + i))
	}
	m.eng.Yank(strings.Join(lines, "\n"))
}

// yankVisualSelection copies the text between visualAnchor and
// visualCursor (inclusive, normalized to start-before-end) into the
// yank buffer.
func (m *Model) yankVisualSelection() {
	scr := m.eng.ActiveScreen()
	if scr == nil {
		return
	}
	start, end := m.visualAnchor, m.visualCursor
	if start.Row > end.Row || (start.Row == end.Row && start.Col > end.Col) {
		start, end = end, start
	}

	var lines []string
	for row := start.Row; row <= end.Row; row++ {
		text := screen.RowText(scr.GetRowCells(row))
		runes := []rune(text)
		from, to := 0, len(runes)
		if row == start.Row {
			from = start.Col
		}
		if row == end.Row && end.Col+1 < to {
			to = end.Col + 1
		}
		if from > len(runes) {
			from = len(runes)
		}
		if to > len(runes) {
			to = len(runes)
		}
		if from > to {
			from = to
		}
		lines = append(lines, string(runes[from:to]))
	}
	m.eng.Yank(strings.Join(lines, "\n"))
}
