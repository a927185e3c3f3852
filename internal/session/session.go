// Package session holds the Terminal Engine's domain model: the
// registry of live and exited shell sessions. It owns no external
// resource (no pty, no screen) — it is pure bookkeeping that the
// engine mutates alongside the ports it orchestrates.
package session

import "fmt"

// ID identifies a session for the lifetime of one process run.
// Allocation is monotonic and never reused.
type ID uint32

func (id ID) String() string {
	return fmt.Sprintf("%d", uint32(id))
}

// Status is the lifecycle state of a session's underlying process.
type Status struct {
	Exited bool
	Code   int
}

// Running reports the canonical Running status.
func Running() Status { return Status{} }

// Exited reports an Exited(code) status.
func Exited(code int) Status { return Status{Exited: true, Code: code} }

func (s Status) String() string {
	if !s.Exited {
		return "Running"
	}
	return fmt.Sprintf("Exited(%d)", s.Code)
}

// Session is one registry entry: display and lifecycle state for a
// single shell. It holds no pty handle and no cell grid — those live
// behind the PTY and Screen ports, keyed by the same ID.
type Session struct {
	ID                 ID
	Name               string
	Cwd                string
	Notes              string
	Status             Status
	UnreadNotification bool
}

// NewSession constructs a freshly created session in the Running
// state with no notes and no unread notification.
func NewSession(id ID, name, cwd string) *Session {
	return &Session{
		ID:     id,
		Name:   name,
		Cwd:    cwd,
		Status: Running(),
	}
}

// Registry is the ordered list of sessions the engine tracks, plus
// the monotonic id allocator. It is not safe for concurrent use; the
// engine is the sole mutator, run from the single event-loop thread.
type Registry struct {
	sessions []*Session
	nextID   ID
}

// NewRegistry returns an empty registry whose first allocated id is 1.
func NewRegistry() *Registry {
	return &Registry{nextID: 1}
}

// Allocate reserves and returns the next session id without creating
// a session. Callers use it to bind PTY/Screen resources to an id
// before the Session record is appended.
func (r *Registry) Allocate() ID {
	id := r.nextID
	r.nextID++
	return id
}

// Add appends s to the registry. Callers must have allocated s.ID via
// Allocate first.
func (r *Registry) Add(s *Session) {
	r.sessions = append(r.sessions, s)
}

// Remove deletes the session with id from the registry, if present,
// returning whether it found and removed one. The id is never
// reallocated.
func (r *Registry) Remove(id ID) bool {
	for i, s := range r.sessions {
		if s.ID == id {
			r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the session with id, or nil if it is not registered.
func (r *Registry) Get(id ID) *Session {
	for _, s := range r.sessions {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// IndexOf returns the position of id in registry order, or -1.
func (r *Registry) IndexOf(id ID) int {
	for i, s := range r.sessions {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// All returns the sessions in registry order. Callers must not retain
// the slice across a subsequent Add/Remove.
func (r *Registry) All() []*Session {
	return r.sessions
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	return len(r.sessions)
}

// At returns the session at position i in registry order.
func (r *Registry) At(i int) *Session {
	return r.sessions[i]
}
