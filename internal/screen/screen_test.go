package screen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlainTextAdvancesCursor(t *testing.T) {
	s := NewScreen(5, 10)
	s.Write([]byte("hi"))
	require.Equal(t, CursorPos{Row: 0, Col: 2}, s.Cursor())
	require.Equal(t, 'h', s.VisibleRow(0)[0].Ch)
	require.Equal(t, 'i', s.VisibleRow(0)[1].Ch)
}

func TestLineFeedScrollsAtBottomAndFeedsScrollback(t *testing.T) {
	s := NewScreen(3, 10)
	for i := 0; i < 5; i++ {
		s.Write([]byte("\n"))
	}
	require.Equal(t, 3, s.ScrollbackLen())
	require.Equal(t, 2, s.Cursor().Row)
}

func TestCursorClampedWithinBounds(t *testing.T) {
	s := NewScreen(3, 10)
	s.Write([]byte("\x1b[100;100H"))
	c := s.Cursor()
	require.True(t, c.Row >= 0 && c.Row < 3)
	require.True(t, c.Col >= 0 && c.Col < 10)
}

func TestSGRColorAndReset(t *testing.T) {
	s := NewScreen(3, 10)
	s.Write([]byte("\x1b[1;31mred\x1b[0mplain"))
	row := s.VisibleRow(0)
	require.True(t, row[0].Bold)
	require.Equal(t, Indexed(1), row[0].Fg)
	require.False(t, row[3].Bold)
	require.Equal(t, DefaultColor, row[3].Fg)
}

func TestWideCharacterOccupiesTwoCells(t *testing.T) {
	s := NewScreen(3, 10)
	s.Write([]byte("\xe4\xb8\xad")) // 中, East Asian wide
	row := s.VisibleRow(0)
	require.Equal(t, 2, row[0].Width)
	require.Equal(t, 0, row[1].Width)
	require.Equal(t, CursorPos{Row: 0, Col: 2}, s.Cursor())
}

func TestAlternateScreenSaveRestoresCursor(t *testing.T) {
	s := NewScreen(5, 10)
	s.Write([]byte("hello"))
	require.Equal(t, 5, s.Cursor().Col)

	s.Write([]byte("\x1b[?1049h"))
	require.Equal(t, CursorPos{Row: 0, Col: 0}, s.Cursor())
	s.Write([]byte("world"))

	s.Write([]byte("\x1b[?1049l"))
	require.Equal(t, CursorPos{Row: 0, Col: 5}, s.Cursor())
	require.Equal(t, 'h', s.VisibleRow(0)[0].Ch)
}

func TestDECSTBMConstrainsScroll(t *testing.T) {
	s := NewScreen(5, 10)
	s.Write([]byte("\x1b[2;4r")) // region rows 2..4 (1-indexed) -> 1..3
	require.Equal(t, 1, s.scrollTop)
	require.Equal(t, 3, s.scrollBottom)
}

func TestDSRReportsCursorPosition(t *testing.T) {
	s := NewScreen(5, 10)
	s.Write([]byte("\x1b[3;4H"))
	s.Write([]byte("\x1b[6n"))
	require.Equal(t, []byte("\x1b[3;4R"), s.TakeDSRResponse())
}

func TestOSCTitleAndCwd(t *testing.T) {
	s := NewScreen(5, 10)
	s.Write([]byte("\x1b]0;my title\x07"))
	require.Equal(t, "my title", s.Title())

	s.Write([]byte("\x1b]7;file:///home/user/project\x07"))
	require.Equal(t, "/home/user/project", s.Cwd())
}

func TestBellQueuesNotification(t *testing.T) {
	s := NewScreen(5, 10)
	s.Write([]byte("\a"))
	events := s.TakeNotifications()
	require.Len(t, events, 1)
	title, body := events[0].TitleBody()
	require.Equal(t, "CLI Manager", title)
	require.Equal(t, "Task completed (bell)", body)
}

func TestOsc777Notification(t *testing.T) {
	s := NewScreen(5, 10)
	s.Write([]byte("\x1b]777;notify;Build;Succeeded\x07"))
	events := s.TakeNotifications()
	require.Len(t, events, 1)
	title, body := events[0].TitleBody()
	require.Equal(t, "Build", title)
	require.Equal(t, "Succeeded", body)
}

func TestResizeTruncatesAndPads(t *testing.T) {
	s := NewScreen(5, 10)
	s.Write([]byte("hello"))
	s.Resize(5, 3)
	require.Equal(t, 'h', s.VisibleRow(0)[0].Ch)
	require.Equal(t, 3, s.Cols())

	s.Resize(5, 10)
	require.Equal(t, 10, s.Cols())
}

func TestGetRowCellsAddressesScrollbackThenVisible(t *testing.T) {
	s := NewScreen(2, 10)
	s.Write([]byte("a\r\nb\r\nc"))
	require.Equal(t, 1, s.ScrollbackLen())
	require.Equal(t, "a", RowText(s.GetRowCells(0)))
	require.Equal(t, "b", RowText(s.GetRowCells(1)))
	require.Equal(t, "c", RowText(s.GetRowCells(2)))
}
