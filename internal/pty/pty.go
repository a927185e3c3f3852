// Package pty implements the Terminal Engine's PTY Port: spawning
// shell processes attached to pseudo-terminals and servicing
// non-blocking reads, writes, resizes, and reaping, keyed by session
// id.
package pty

import (
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"

	"github.com/climux/climux/internal/apperrors"
	"github.com/climux/climux/internal/session"
)

// Size is a terminal window size in character cells.
type Size struct {
	Rows uint16
	Cols uint16
}

// Port is the PTY Port contract. One concrete adapter, Manager, backs
// it with github.com/creack/pty.
type Port interface {
	Spawn(id session.ID, shell, cwd string, size Size) error
	Read(id session.ID) ([]byte, error)
	Write(id session.ID, data []byte) error
	Resize(id session.ID, size Size) error
	TryWait(id session.ID) (code int, exited bool)
	Kill(id session.ID)
}

// handle is the live state for one spawned pty, including the
// background reader that drains the master fd into a byte queue so
// Read never blocks the event loop.
type handle struct {
	master *os.File
	cmd    *exec.Cmd

	mu       sync.Mutex
	pending  []byte
	closed   bool
	waitOnce sync.Once
	code     int
	exited   bool
}

// Manager is the creack/pty-backed Port adapter. It is safe for
// concurrent use: every method acquires an internal mutex guarding
// the session-id map, which makes it exercisable from tests running in
// parallel in addition to the single-threaded event loop.
type Manager struct {
	mu      sync.Mutex
	handles map[session.ID]*handle
}

// NewManager returns an empty Manager ready to spawn sessions.
func NewManager() *Manager {
	return &Manager{handles: make(map[session.ID]*handle)}
}

// Spawn starts shell in cwd attached to a new pty of the given size,
// binding it to id. A background goroutine immediately begins
// draining the master fd into a staging buffer so Read is always
// non-blocking.
func (m *Manager) Spawn(id session.ID, shell, cwd string, size Size) error {
	cmd := exec.Command(shell)
	cmd.Dir = cwd
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	master, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: size.Rows, Cols: size.Cols})
	if err != nil {
		return apperrors.New(apperrors.PtySpawn, "failed to start pty", apperrors.Options{
			SessionID: id.String(),
			Cause:     err,
		})
	}

	h := &handle{master: master, cmd: cmd}

	m.mu.Lock()
	m.handles[id] = h
	m.mu.Unlock()

	go h.drain()
	go h.reap()

	return nil
}

// drain copies bytes from the pty master into h's staging buffer in a
// few-KiB chunks, reused across reads, until the master is closed or
// returns an error.
func (h *handle) drain() {
	buf := make([]byte, 4096)
	for {
		n, err := h.master.Read(buf)
		if n > 0 {
			h.mu.Lock()
			h.pending = append(h.pending, buf[:n]...)
			h.mu.Unlock()
		}
		if err != nil {
			h.mu.Lock()
			h.closed = true
			h.mu.Unlock()
			return
		}
	}
}

// reap blocks in a background goroutine (not on the event loop) until
// the child exits, recording its exit code for TryWait to observe.
func (h *handle) reap() {
	err := h.cmd.Wait()
	code := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		} else {
			code = -1
		}
	}
	h.mu.Lock()
	h.exited = true
	h.code = code
	h.mu.Unlock()
}

func (m *Manager) get(id session.ID) (*handle, error) {
	m.mu.Lock()
	h, ok := m.handles[id]
	m.mu.Unlock()
	if !ok {
		return nil, apperrors.New(apperrors.UnknownSession, "no such pty session", apperrors.Options{
			SessionID: id.String(),
		})
	}
	return h, nil
}

// Read returns whatever bytes have accumulated in the staging buffer
// since the last call, or an empty slice if none have arrived. It
// never blocks.
func (m *Manager) Read(id session.ID) ([]byte, error) {
	h, err := m.get(id)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.pending) == 0 {
		return nil, nil
	}
	out := h.pending
	h.pending = nil
	return out, nil
}

// Write queues data to the pty master in order.
func (m *Manager) Write(id session.ID, data []byte) error {
	h, err := m.get(id)
	if err != nil {
		return err
	}
	if _, err := h.master.Write(data); err != nil {
		return apperrors.New(apperrors.PtyIo, "pty write failed", apperrors.Options{
			SessionID: id.String(),
			Cause:     err,
		})
	}
	return nil
}

// Resize propagates a new window size to the child's pty.
func (m *Manager) Resize(id session.ID, size Size) error {
	h, err := m.get(id)
	if err != nil {
		return err
	}
	if err := pty.Setsize(h.master, &pty.Winsize{Rows: size.Rows, Cols: size.Cols}); err != nil {
		return apperrors.New(apperrors.PtyIo, "pty resize failed", apperrors.Options{
			SessionID: id.String(),
			Cause:     err,
		})
	}
	return nil
}

// TryWait reports whether the child for id has exited, and its code
// if so. It never blocks; the actual wait happens in a background
// goroutine started at Spawn time.
func (m *Manager) TryWait(id session.ID) (code int, exited bool) {
	h, err := m.get(id)
	if err != nil {
		return 0, false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.code, h.exited
}

// Kill best-effort terminates the child and releases its pty master.
// Idempotent: calling it more than once, or on an already-exited
// session, is safe.
func (m *Manager) Kill(id session.ID) {
	m.mu.Lock()
	h, ok := m.handles[id]
	if ok {
		delete(m.handles, id)
	}
	m.mu.Unlock()

	if !ok {
		return
	}

	h.mu.Lock()
	already := h.exited
	h.mu.Unlock()

	if !already && h.cmd.Process != nil {
		_ = h.cmd.Process.Kill()
	}
	_ = h.master.Close()
}
