package pty

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/climux/climux/internal/session"
)

func waitForOutput(t *testing.T, m *Manager, id session.ID, contains string) string {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	var collected strings.Builder
	for time.Now().Before(deadline) {
		out, err := m.Read(id)
		require.NoError(t, err)
		collected.Write(out)
		if strings.Contains(collected.String(), contains) {
			return collected.String()
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %q, got %q", contains, collected.String())
	return ""
}

func TestSpawnWriteReadEcho(t *testing.T) {
	m := NewManager()
	id := session.ID(1)
	require.NoError(t, m.Spawn(id, "/bin/sh", t.TempDir(), Size{Rows: 24, Cols: 80}))
	defer m.Kill(id)

	require.NoError(t, m.Write(id, []byte("echo hello-pty\n")))
	waitForOutput(t, m, id, "hello-pty")
}

func TestReadUnknownSessionErrors(t *testing.T) {
	m := NewManager()
	_, err := m.Read(session.ID(99))
	require.Error(t, err)
}

func TestKillIsIdempotent(t *testing.T) {
	m := NewManager()
	id := session.ID(1)
	require.NoError(t, m.Spawn(id, "/bin/sh", t.TempDir(), Size{Rows: 24, Cols: 80}))
	m.Kill(id)
	m.Kill(id)
}

func TestTryWaitReportsExit(t *testing.T) {
	m := NewManager()
	id := session.ID(1)
	require.NoError(t, m.Spawn(id, "/bin/sh", t.TempDir(), Size{Rows: 24, Cols: 80}))
	defer m.Kill(id)

	require.NoError(t, m.Write(id, []byte("exit 3\n")))

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if code, exited := m.TryWait(id); exited {
			require.Equal(t, 3, code)
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("timed out waiting for exit")
}
