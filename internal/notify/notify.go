// Package notify implements the Terminal Engine's desktop notifier: a
// fire-and-forget sink that shells out to the host's native
// notification tool. Its own internal queue and goroutines are its
// concern, not the event loop's.
package notify

import (
	"context"
	"log/slog"
	"os/exec"
	"runtime"
	"sync"
	"time"
)

// minInterval is the minimum time between notifications for the same
// session; intermediate notifications within the window are dropped,
// not queued.
const minInterval = 2 * time.Second

const dispatchTimeout = 5 * time.Second

// Notifier is the send-only handle the engine holds. Notify never
// blocks the caller.
type Notifier interface {
	Notify(sessionID, title, body string)
}

// Desktop dispatches notifications via notify-send (Linux) or
// osascript (macOS), one best-effort goroutine per call, using a
// fire-and-forget os/exec call for each one-shot external command.
type Desktop struct {
	mu   sync.Mutex
	last map[string]time.Time
}

// NewDesktop returns a ready Desktop notifier.
func NewDesktop() *Desktop {
	return &Desktop{last: make(map[string]time.Time)}
}

// Notify rate-limits per sessionID (minimum 2s between notifications,
// silently dropping intermediate ones) and dispatches the surviving
// request on its own goroutine.
func (d *Desktop) Notify(sessionID, title, body string) {
	d.mu.Lock()
	now := time.Now()
	if last, ok := d.last[sessionID]; ok && now.Sub(last) < minInterval {
		d.mu.Unlock()
		return
	}
	d.last[sessionID] = now
	d.mu.Unlock()

	go dispatch(title, body)
}

func dispatch(title, body string) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "osascript", "-e", appleScriptNotification(title, body))
	default:
		cmd = exec.CommandContext(ctx, "notify-send", title, body)
	}

	if err := cmd.Run(); err != nil {
		slog.Debug("desktop notification failed", "error", err, "title", title)
	}
}

func appleScriptNotification(title, body string) string {
	return `display notification "` + escapeAppleScript(body) + `" with title "` + escapeAppleScript(title) + `"`
}

func escapeAppleScript(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '"' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
