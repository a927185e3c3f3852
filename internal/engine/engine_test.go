package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	ptyport "github.com/climux/climux/internal/pty"
	"github.com/climux/climux/internal/session"
)

// fakePTY is a deterministic, in-memory stand-in for the PTY Port so
// engine behavior can be exercised without spawning real shells.
type fakePTY struct {
	mu       sync.Mutex
	spawned  map[session.ID]bool
	written  map[session.ID][][]byte
	toRead   map[session.ID][]byte
	exited   map[session.ID]int
	killed   map[session.ID]bool
	spawnErr error
}

func newFakePTY() *fakePTY {
	return &fakePTY{
		spawned: make(map[session.ID]bool),
		written: make(map[session.ID][][]byte),
		toRead:  make(map[session.ID][]byte),
		exited:  make(map[session.ID]int),
		killed:  make(map[session.ID]bool),
	}
}

func (f *fakePTY) Spawn(id session.ID, shell, cwd string, size ptyport.Size) error {
	if f.spawnErr != nil {
		return f.spawnErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.spawned[id] = true
	return nil
}

func (f *fakePTY) Read(id session.ID) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.toRead[id]
	delete(f.toRead, id)
	return out, nil
}

func (f *fakePTY) Write(id session.ID, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.written[id] = append(f.written[id], append([]byte{}, data...))
	return nil
}

func (f *fakePTY) Resize(id session.ID, size ptyport.Size) error { return nil }

func (f *fakePTY) TryWait(id session.ID) (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	code, ok := f.exited[id]
	return code, ok
}

func (f *fakePTY) Kill(id session.ID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.killed[id] = true
}

func (f *fakePTY) feed(id session.ID, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toRead[id] = append(f.toRead[id], data...)
}

func (f *fakePTY) setExited(id session.ID, code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exited[id] = code
}

func newTestEngine() (*Engine, *fakePTY) {
	p := newFakePTY()
	e := New(p, "/bin/sh", "/tmp", ptyport.Size{Rows: 24, Cols: 80}, 0, nil)
	return e, p
}

func TestCreateActivatesNewSession(t *testing.T) {
	e, _ := newTestEngine()
	id, err := e.Create("")
	require.NoError(t, err)
	require.Equal(t, id, e.ActiveSession().ID)
	require.Equal(t, "shell-1", e.ActiveSession().Name)
}

func TestSelectNextPrevWrapCircularly(t *testing.T) {
	e, _ := newTestEngine()
	id1, _ := e.Create("a")
	id2, _ := e.Create("b")
	require.Equal(t, id2, e.ActiveSession().ID)

	e.SelectNext()
	require.Equal(t, id1, e.ActiveSession().ID)
	e.SelectNext()
	require.Equal(t, id2, e.ActiveSession().ID)
	e.SelectPrev()
	require.Equal(t, id1, e.ActiveSession().ID)
}

func TestSelectByIndexClearsUnreadNotification(t *testing.T) {
	e, _ := newTestEngine()
	e.Create("a")
	s := e.ActiveSession()
	s.UnreadNotification = true

	e.SelectByIndex(0)
	require.False(t, s.UnreadNotification)
}

func TestWriteToActiveDroppedWhenExited(t *testing.T) {
	e, p := newTestEngine()
	id, _ := e.Create("a")
	e.ActiveSession().Status = session.Exited(0)

	e.WriteToActive([]byte("x"))
	require.Empty(t, p.written[id])
}

func TestCloseActiveAdjustsSelection(t *testing.T) {
	e, p := newTestEngine()
	id1, _ := e.Create("a")
	id2, _ := e.Create("b")

	e.CloseActive() // closes "b", the active one
	require.Equal(t, id1, e.ActiveSession().ID)
	require.True(t, p.killed[id2])

	e.CloseActive()
	require.Nil(t, e.ActiveSession())
}

func TestPollAllTransitionsToExited(t *testing.T) {
	e, p := newTestEngine()
	id, _ := e.Create("a")
	p.setExited(id, 7)

	e.PollAll()
	require.True(t, e.ActiveSession().Status.Exited)
	require.Equal(t, 7, e.ActiveSession().Status.Code)
}

func TestPollAllFeedsScreenAndDrainsNotifications(t *testing.T) {
	e, _ := newTestEngine()
	id1, _ := e.Create("a")
	id2, _ := e.Create("b") // active

	p := e.pty.(*fakePTY)
	p.feed(id1, []byte("hello\a"))

	e.PollAll()

	require.Equal(t, "hello", screenRowText(e, id1))
	notes := e.TakePendingNotifications()
	require.Len(t, notes, 1)
	require.Equal(t, id1, notes[0].SessionID)
	require.True(t, e.Sessions()[0].UnreadNotification)
	require.False(t, e.Sessions()[1].UnreadNotification)
	_ = id2
}

func screenRowText(e *Engine, id session.ID) string {
	scr := e.Screen(id)
	if scr == nil {
		return ""
	}
	cells := scr.VisibleRow(0)
	out := make([]rune, 0, len(cells))
	for _, c := range cells {
		if c.Width == 0 {
			continue
		}
		out = append(out, c.Ch)
	}
	for len(out) > 0 && out[len(out)-1] == ' ' {
		out = out[:len(out)-1]
	}
	return string(out)
}

func TestYankAndPasteToActive(t *testing.T) {
	e, p := newTestEngine()
	id, _ := e.Create("a")

	e.Yank("paste me")
	e.PasteToActive()

	require.Equal(t, [][]byte{[]byte("paste me")}, p.written[id])
}

func TestSearchableFieldsReturnsTuples(t *testing.T) {
	e, _ := newTestEngine()
	e.Create("a")
	fields := e.SearchableFields()
	require.Len(t, fields, 1)
	require.Equal(t, "a", fields[0].Name)
}

func TestToggleMiniOpensAndCloses(t *testing.T) {
	e, _ := newTestEngine()
	require.NoError(t, e.ToggleMini())
	require.NotNil(t, e.MiniScreen())

	require.NoError(t, e.ToggleMini())
	require.Nil(t, e.MiniScreen())
}

func TestToggleMiniReusesPtyAcrossHideShow(t *testing.T) {
	e, p := newTestEngine()
	require.NoError(t, e.ToggleMini())
	scr := e.MiniScreen()
	require.NotNil(t, scr)
	id := e.mini.id

	require.NoError(t, e.ToggleMini()) // hide
	require.False(t, p.killed[id])
	require.NotNil(t, e.mini)
	require.Same(t, scr, e.mini.screen)

	require.NoError(t, e.ToggleMini()) // show again
	require.Equal(t, id, e.mini.id)
	require.Same(t, scr, e.MiniScreen())
	require.False(t, p.killed[id])
}

func TestMiniClosesForGoodOnChildExit(t *testing.T) {
	e, p := newTestEngine()
	require.NoError(t, e.ToggleMini())
	id := e.mini.id
	p.setExited(id, 0)

	e.PollAll()

	require.True(t, p.killed[id])
	require.Nil(t, e.mini)
	require.Nil(t, e.MiniScreen())
}
