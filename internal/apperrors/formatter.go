package apperrors

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// severityOf maps a Kind to the slog level its failures log at.
// Fatal kinds abort the request that raised them, so they log as
// errors; everything the engine can absorb logs as a warning.
func severityOf(k Kind) slog.Level {
	if k.Fatal() {
		return slog.LevelError
	}
	return slog.LevelWarn
}

func logError(err *Error) {
	logger := slog.Default().With("kind", err.Kind.String())
	if err.SessionID != "" {
		logger = logger.With("session", err.SessionID)
	}
	if len(err.Details) > 0 {
		logger = logger.With("details", err.Details)
	}
	if len(err.Resolution) > 0 {
		logger = logger.With("resolution", strings.Join(err.Resolution, "; "))
	}
	if err.Cause != nil {
		logger = logger.With("cause", err.Cause)
	}
	logger.Log(context.Background(), severityOf(err.Kind), err.message)
}

// FormatForDisplay renders err for a human reading the TUI's status
// line or an error overlay. Errors carrying a Kind get their
// resolution steps and details rendered; anything else is treated as
// an opaque system failure.
func FormatForDisplay(err error) string {
	if err == nil {
		return ""
	}
	e, ok := err.(*Error)
	if !ok {
		return formatSystemError(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Kind, e.message)

	if len(e.Resolution) > 0 {
		b.WriteString("\n\nTry:")
		for i, step := range e.Resolution {
			fmt.Fprintf(&b, "\n  %d. %s", i+1, step)
		}
	}

	if len(e.Details) > 0 {
		b.WriteString("\n\n")
		b.WriteString(detailsTable(e.Details))
	}

	return b.String()
}

// detailsTable renders a details map as a key: value table, widening
// the key column to the longest key so the values line up.
func detailsTable(details map[string]any) string {
	width := 0
	for key := range details {
		if len(key) > width {
			width = len(key)
		}
	}
	var b strings.Builder
	for key, value := range details {
		fmt.Fprintf(&b, "  %-*s  %s\n", width, key, formatDetailValue(value))
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatSystemError(err error) string {
	base := "unexpected error: " + err.Error()
	if os.Getenv("DEBUG") != "true" {
		return base
	}
	return fmt.Sprintf("%s\n\ndebug trace: %+v", base, err)
}

// formatDetailValue renders a single detail value, preferring an
// error's own message or a Stringer's rendering, then falling back
// to compact JSON for structured values and %v for everything else.
func formatDetailValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "<nil>"
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	case string:
		return v
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(data)
}
