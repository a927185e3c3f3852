// Package engine implements the Terminal Engine's Terminal Use Case:
// it orchestrates the PTY Port, Screen Port, and session registry
// under the cooperative event loop, and exposes the read accessors
// the renderer and input state machine need.
package engine

import (
	"github.com/atotto/clipboard"

	"github.com/climux/climux/internal/notify"
	ptyport "github.com/climux/climux/internal/pty"
	"github.com/climux/climux/internal/screen"
	"github.com/climux/climux/internal/session"
)

// PendingNotification pairs a queued NotificationEvent with the
// session it came from, for the caller to drain each poll.
type PendingNotification struct {
	SessionID session.ID
	Event     screen.NotificationEvent
}

// SearchableField is the per-session tuple the fuzzy switcher scores
// against. The engine supplies only the tuple; scoring is the
// switcher's job.
type SearchableField struct {
	ID    session.ID
	Name  string
	Cwd   string
	Notes string
}

// miniSession is the footer mini pane's own pty+screen pair, opened
// lazily on first ToggleMini and reused until it is closed or its
// child exits.
type miniSession struct {
	id     session.ID
	screen *screen.Screen
	open   bool
}

// Engine is the Terminal Use Case. It is not safe for concurrent use;
// the event loop is its sole caller.
type Engine struct {
	registry *session.Registry
	pty      ptyport.Port
	screens  map[session.ID]*screen.Screen

	hasActive bool
	activeID  session.ID

	mini *miniSession

	shell    string
	startCwd string
	size     ptyport.Size

	scrollbackLimit int

	yankBuffer string

	pending []PendingNotification

	notifier notify.Notifier
}

// New constructs an Engine over the given PTY port, using shell as
// the default shell for new sessions, startCwd as their working
// directory, and size as their initial terminal dimensions.
// scrollbackLimit bounds every Screen's scrollback ring; a value <= 0
// falls back to screen.DefaultScrollbackLimit.
func New(p ptyport.Port, shell, startCwd string, size ptyport.Size, scrollbackLimit int, notifier notify.Notifier) *Engine {
	return &Engine{
		registry:        session.NewRegistry(),
		pty:             p,
		screens:         make(map[session.ID]*screen.Screen),
		shell:           shell,
		startCwd:        startCwd,
		size:            size,
		scrollbackLimit: scrollbackLimit,
		notifier:        notifier,
	}
}

// Sessions returns the registry in display order.
func (e *Engine) Sessions() []*session.Session {
	return e.registry.All()
}

// ActiveSession returns the currently selected session, or nil if
// none is selected.
func (e *Engine) ActiveSession() *session.Session {
	if !e.hasActive {
		return nil
	}
	return e.registry.Get(e.activeID)
}

// ActiveScreen returns the Screen for the active session, or nil.
func (e *Engine) ActiveScreen() *screen.Screen {
	if !e.hasActive {
		return nil
	}
	return e.screens[e.activeID]
}

// Screen returns the Screen bound to id, or nil if unknown.
func (e *Engine) Screen(id session.ID) *screen.Screen {
	return e.screens[id]
}

// MiniScreen returns the footer mini pane's Screen, or nil if it is
// closed.
func (e *Engine) MiniScreen() *screen.Screen {
	if e.mini == nil || !e.mini.open {
		return nil
	}
	return e.mini.screen
}

// Create allocates a new session, spawns its shell, and makes it
// active. An empty name defaults to "shell-<id>".
func (e *Engine) Create(name string) (session.ID, error) {
	id := e.registry.Allocate()
	if err := e.pty.Spawn(id, e.shell, e.startCwd, e.size); err != nil {
		return 0, err
	}

	if name == "" {
		name = "shell-" + id.String()
	}
	s := session.NewSession(id, name, e.startCwd)
	e.registry.Add(s)
	e.screens[id] = screen.NewScreenWithLimit(int(e.size.Rows), int(e.size.Cols), e.scrollbackLimit)

	e.hasActive = true
	e.activeID = id
	return id, nil
}

// CloseActive kills (if running) and removes the active session.
// Active selection adjusts to remain valid, or clears if the
// registry becomes empty.
func (e *Engine) CloseActive() {
	if !e.hasActive {
		return
	}
	e.closeSession(e.activeID)
}

func (e *Engine) closeSession(id session.ID) {
	idx := e.registry.IndexOf(id)
	if idx < 0 {
		return
	}
	e.pty.Kill(id)
	delete(e.screens, id)
	e.registry.Remove(id)

	n := e.registry.Len()
	if n == 0 {
		e.hasActive = false
		return
	}
	if idx >= n {
		idx = n - 1
	}
	e.activeID = e.registry.At(idx).ID
	e.hasActive = true
}

// SelectNext moves the active selection to the next session,
// wrapping circularly.
func (e *Engine) SelectNext() {
	e.step(1)
}

// SelectPrev moves the active selection to the previous session,
// wrapping circularly.
func (e *Engine) SelectPrev() {
	e.step(-1)
}

func (e *Engine) step(delta int) {
	n := e.registry.Len()
	if n == 0 {
		return
	}
	idx := e.registry.IndexOf(e.activeID)
	if idx < 0 {
		idx = 0
	}
	idx = ((idx+delta)%n + n) % n
	e.activate(e.registry.At(idx).ID)
}

// SelectByIndex activates the session at position i, or does nothing
// if i is out of range.
func (e *Engine) SelectByIndex(i int) {
	if i < 0 || i >= e.registry.Len() {
		return
	}
	e.activate(e.registry.At(i).ID)
}

func (e *Engine) activate(id session.ID) {
	e.hasActive = true
	e.activeID = id
	if s := e.registry.Get(id); s != nil {
		s.UnreadNotification = false
	}
}

// WriteToActive writes bytes to the active session's pty, unless its
// status is not Running, in which case it is silently dropped.
func (e *Engine) WriteToActive(data []byte) {
	s := e.ActiveSession()
	if s == nil || s.Status.Exited {
		return
	}
	_ = e.pty.Write(s.ID, data)
}

// PollAll drains pty reads into every session's Screen (plus the
// mini session's, if open), collects notifications and DSR
// responses, and reaps exited children.
func (e *Engine) PollAll() {
	for _, s := range e.registry.All() {
		e.pollOne(s)
	}
	if e.mini != nil && e.mini.open {
		e.pollMini()
	}
}

func (e *Engine) pollOne(s *session.Session) {
	if s.Status.Exited {
		return
	}
	scr := e.screens[s.ID]
	if scr == nil {
		return
	}

	data, err := e.pty.Read(s.ID)
	if err != nil {
		s.Status = session.Exited(-1)
		return
	}
	if len(data) > 0 {
		scr.Write(data)
	}

	e.drainNotifications(s, scr)

	if resp := scr.TakeDSRResponse(); len(resp) > 0 {
		_ = e.pty.Write(s.ID, resp)
	}

	if code, exited := e.pty.TryWait(s.ID); exited {
		s.Status = session.Exited(code)
	}
}

func (e *Engine) drainNotifications(s *session.Session, scr *screen.Screen) {
	events := scr.TakeNotifications()
	if len(events) == 0 {
		return
	}
	isActive := e.hasActive && e.activeID == s.ID
	for _, ev := range events {
		e.pending = append(e.pending, PendingNotification{SessionID: s.ID, Event: ev})
		if isActive {
			continue
		}
		s.UnreadNotification = true
		title, body := ev.TitleBody()
		if e.notifier != nil {
			e.notifier.Notify(s.ID.String(), title, body)
		}
	}
}

func (e *Engine) pollMini() {
	data, err := e.pty.Read(e.mini.id)
	if err != nil {
		e.closeMini()
		return
	}
	if len(data) > 0 {
		e.mini.screen.Write(data)
	}
	if resp := e.mini.screen.TakeDSRResponse(); len(resp) > 0 {
		_ = e.pty.Write(e.mini.id, resp)
	}
	if _, exited := e.pty.TryWait(e.mini.id); exited {
		e.closeMini()
	}
}

// TakePendingNotifications drains and returns notifications queued
// since the last call.
func (e *Engine) TakePendingNotifications() []PendingNotification {
	out := e.pending
	e.pending = nil
	return out
}

// ResizeAll applies size to every session's pty and Screen. A
// failure on one session does not prevent the others from resizing.
func (e *Engine) ResizeAll(size ptyport.Size) {
	e.size = size
	for _, s := range e.registry.All() {
		_ = e.pty.Resize(s.ID, size)
		if scr := e.screens[s.ID]; scr != nil {
			scr.Resize(int(size.Rows), int(size.Cols))
		}
	}
	if e.mini != nil && e.mini.open {
		_ = e.pty.Resize(e.mini.id, ptyport.Size{Rows: 10, Cols: size.Cols})
		e.mini.screen.Resize(10, int(size.Cols))
	}
}

// Rename sets a session's display name. It never touches the pty.
func (e *Engine) Rename(id session.ID, name string) {
	if s := e.registry.Get(id); s != nil {
		s.Name = name
	}
}

// SetNotes sets a session's notes. It never touches the pty.
func (e *Engine) SetNotes(id session.ID, text string) {
	if s := e.registry.Get(id); s != nil {
		s.Notes = text
	}
}

// Yank stores text as the process-wide yank buffer and best-effort
// mirrors it to the OS clipboard; clipboard failures are swallowed,
// since the in-process buffer remains authoritative.
func (e *Engine) Yank(text string) {
	e.yankBuffer = text
	_ = clipboard.WriteAll(text)
}

// YankBuffer returns the current yank buffer contents.
func (e *Engine) YankBuffer() string {
	return e.yankBuffer
}

// PasteToActive emits the yank buffer to the active pty, framed with
// bracketed-paste markers if the active Screen has that mode
// enabled.
func (e *Engine) PasteToActive() {
	s := e.ActiveSession()
	if s == nil || s.Status.Exited || e.yankBuffer == "" {
		return
	}
	scr := e.screens[s.ID]
	payload := e.yankBuffer
	if scr != nil && scr.BracketedPaste() {
		payload = "\x1b[200~" + payload + "\x1b[201~"
	}
	_ = e.pty.Write(s.ID, []byte(payload))
}

// ToggleMini opens the footer mini session (spawning it lazily on
// first use) or hides it if already open. Hiding never kills the
// child: the same pty+screen pair is reused the next time the mini
// pane is opened. The child is only torn down when it actually exits
// (see pollMini).
func (e *Engine) ToggleMini() error {
	if e.mini != nil && e.mini.open {
		e.mini.open = false
		return nil
	}
	if e.mini == nil {
		id := e.registry.Allocate()
		if err := e.pty.Spawn(id, e.shell, e.startCwd, ptyport.Size{Rows: 10, Cols: e.size.Cols}); err != nil {
			return err
		}
		e.mini = &miniSession{
			id:     id,
			screen: screen.NewScreenWithLimit(10, int(e.size.Cols), e.scrollbackLimit),
		}
	}
	e.mini.open = true
	return nil
}

// closeMini tears the mini session down for good: it kills the
// child and drops the Screen so the next ToggleMini spawns fresh.
// pollMini calls it once the child has exited or its pty can no
// longer be read; hiding the pane never calls it.
func (e *Engine) closeMini() {
	if e.mini == nil {
		return
	}
	e.pty.Kill(e.mini.id)
	e.mini = nil
}

// SearchableFields returns (id, name, cwd, notes) for every session,
// for the fuzzy switcher to score.
func (e *Engine) SearchableFields() []SearchableField {
	sessions := e.registry.All()
	out := make([]SearchableField, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, SearchableField{ID: s.ID, Name: s.Name, Cwd: s.Cwd, Notes: s.Notes})
	}
	return out
}
