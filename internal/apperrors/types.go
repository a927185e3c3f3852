// Package apperrors defines the engine's error taxonomy: a small,
// closed set of kinds that every failure path maps onto before it
// crosses a port boundary.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an Error by where it originated and how the engine
// should react to it.
type Kind int

const (
	// PtySpawn means a pseudo-terminal could not be allocated or the
	// child shell could not be started. Fatal: the session never
	// existed.
	PtySpawn Kind = iota
	// PtyIo means a read or write against a live pty failed after the
	// session was running. Downgrades the session to Exited(-1).
	PtyIo
	// UnknownSession means an operation referenced a session id the
	// registry has never heard of. Indicates a caller bug; the engine
	// treats it as a no-op.
	UnknownSession
	// NoActiveSession means an operation required an active session
	// and none was selected. Silently ignored by the engine.
	NoActiveSession
	// TuiBackend means the terminal UI backend failed in a way that
	// cannot be recovered in place. Fatal: the terminal must be
	// restored and the process unwound.
	TuiBackend
)

func (k Kind) String() string {
	switch k {
	case PtySpawn:
		return "PtySpawn"
	case PtyIo:
		return "PtyIo"
	case UnknownSession:
		return "UnknownSession"
	case NoActiveSession:
		return "NoActiveSession"
	case TuiBackend:
		return "TuiBackend"
	default:
		return "Unknown"
	}
}

// Fatal reports whether errors of this kind abort the request that
// raised them rather than being absorbed by the engine: a PtySpawn
// failure means the session is not created, and a TuiBackend failure
// unwinds the process.
func (k Kind) Fatal() bool {
	return k == PtySpawn || k == TuiBackend
}

// Options carries the optional fields used to build an Error.
type Options struct {
	SessionID  string
	Details    map[string]any
	Resolution []string
	Cause      error
}

// Error is the engine's single error type. Every failure that crosses
// a port boundary is wrapped into one before it reaches a caller.
type Error struct {
	message    string
	Kind       Kind
	SessionID  string
	Details    map[string]any
	Resolution []string
	Cause      error
}

func (e *Error) Error() string {
	if e.SessionID != "" {
		return fmt.Sprintf("%s: %s [session=%s]", e.Kind, e.message, e.SessionID)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Message returns the human-readable message without the kind prefix.
func (e *Error) Message() string {
	return e.message
}

// New builds an Error of the given kind, logging it at the kind's
// natural severity as a side effect.
func New(kind Kind, message string, opts Options) *Error {
	err := &Error{
		message:    message,
		Kind:       kind,
		SessionID:  opts.SessionID,
		Details:    opts.Details,
		Resolution: opts.Resolution,
		Cause:      opts.Cause,
	}
	logError(err)
	return err
}

// Ensure normalizes err into an *Error of kind: a nil err becomes a
// fresh Error carrying defaultMessage, an *Error already matching the
// taxonomy passes through untouched, and anything else is wrapped
// with its own message (falling back to defaultMessage if empty).
func Ensure(err error, kind Kind, defaultMessage string, opts Options) *Error {
	var existing *Error
	switch {
	case err == nil:
		return New(kind, defaultMessage, opts)
	case errors.As(err, &existing):
		return existing
	}

	opts.Cause = err
	if msg := err.Error(); msg != "" {
		return New(kind, msg, opts)
	}
	return New(kind, defaultMessage, opts)
}
