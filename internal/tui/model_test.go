package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/climux/climux/internal/engine"
	"github.com/climux/climux/internal/input"
	ptyport "github.com/climux/climux/internal/pty"
	"github.com/climux/climux/internal/session"
)

// fakePTY is a no-op PTY Port: every session spawns instantly and
// never produces output, enough to drive the Model's action dispatch
// without a real shell.
type fakePTY struct{}

func (fakePTY) Spawn(id session.ID, shell, cwd string, size ptyport.Size) error { return nil }
func (fakePTY) Read(id session.ID) ([]byte, error)                             { return nil, nil }
func (fakePTY) Write(id session.ID, data []byte) error                         { return nil }
func (fakePTY) Resize(id session.ID, size ptyport.Size) error                  { return nil }
func (fakePTY) TryWait(id session.ID) (int, bool)                             { return 0, false }
func (fakePTY) Kill(id session.ID)                                             {}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	eng := engine.New(fakePTY{}, "/bin/sh", "/tmp", ptyport.Size{Rows: 24, Cols: 80}, 0, nil)
	m := New(eng)
	m.width, m.height = 100, 30
	_, err := eng.Create("")
	require.NoError(t, err)
	return m
}

func TestApplyActionCreateAddsSession(t *testing.T) {
	m := newTestModel(t)
	before := len(m.eng.Sessions())

	m.applyAction(input.Action{Kind: input.ActionCreate})

	require.Len(t, m.eng.Sessions(), before+1)
}

func TestApplyActionQuitSetsQuitting(t *testing.T) {
	m := newTestModel(t)
	require.False(t, m.quitting)

	m.applyAction(input.Action{Kind: input.ActionQuit})

	require.True(t, m.quitting)
}

func TestApplyActionEnterAndExitScrollback(t *testing.T) {
	m := newTestModel(t)
	require.False(t, m.scrollback)

	m.applyAction(input.Action{Kind: input.ActionEnterScrollback})
	require.True(t, m.scrollback)

	m.applyAction(input.Action{Kind: input.ActionExitScrollback})
	require.False(t, m.scrollback)
}

func TestApplyActionScrollLineClampsAtTop(t *testing.T) {
	m := newTestModel(t)
	m.applyAction(input.Action{Kind: input.ActionEnterScrollback})

	m.applyAction(input.Action{Kind: input.ActionScrollLine, Dir: input.MoveUp})

	require.Equal(t, 0, m.scrollOffset)
}

func TestApplyActionOpenRenameDialogSeedsBufferFromName(t *testing.T) {
	m := newTestModel(t)
	s := m.eng.ActiveSession()
	require.NotNil(t, s)

	m.applyAction(input.Action{Kind: input.ActionOpenRenameDialog})

	require.Equal(t, s.Name, m.buffer)
	require.False(t, m.editingMemo)
}

func TestApplyActionDialogConfirmRenamesSession(t *testing.T) {
	m := newTestModel(t)
	m.applyAction(input.Action{Kind: input.ActionOpenRenameDialog})

	m.applyAction(input.Action{Kind: input.ActionDialogConfirm, Dialog: input.DialogRename, Text: "build"})

	require.Equal(t, "build", m.eng.ActiveSession().Name)
	require.Equal(t, "", m.buffer)
}

func TestApplyActionMemoEditConfirmSetsNotes(t *testing.T) {
	m := newTestModel(t)
	m.applyAction(input.Action{Kind: input.ActionOpenMemoEdit})
	require.True(t, m.editingMemo)

	m.applyAction(input.Action{Kind: input.ActionDialogConfirm, Dialog: input.DialogRename, Text: "deploy at 5pm"})

	require.Equal(t, "deploy at 5pm", m.eng.ActiveSession().Notes)
	require.False(t, m.editingMemo)
}

func TestApplyActionOpenSwitcherDialogPopulatesResults(t *testing.T) {
	m := newTestModel(t)
	_, err := m.eng.Create("second")
	require.NoError(t, err)

	m.applyAction(input.Action{Kind: input.ActionOpenSwitcherDialog})

	require.Len(t, m.switcherResults, 2)
}

func TestApplyActionOpenConfirmCloseDoesNotCloseSession(t *testing.T) {
	m := newTestModel(t)
	before := len(m.eng.Sessions())

	m.applyAction(input.Action{Kind: input.ActionOpenConfirmClose})
	require.Len(t, m.eng.Sessions(), before)

	m.applyAction(input.Action{Kind: input.ActionConfirmCancel})
	require.Len(t, m.eng.Sessions(), before)
}

func TestSetStatusExpiresAfterDuration(t *testing.T) {
	m := newTestModel(t)
	m.setStatus("hello", time.Millisecond)
	require.Equal(t, "hello", m.statusMsg)
	require.True(t, m.statusUntil.After(time.Now().Add(-time.Second)))

	time.Sleep(5 * time.Millisecond)
	require.False(t, time.Now().Before(m.statusUntil))
}
