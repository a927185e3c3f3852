package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindFatal(t *testing.T) {
	require.True(t, PtySpawn.Fatal())
	require.True(t, TuiBackend.Fatal())
	require.False(t, PtyIo.Fatal())
	require.False(t, UnknownSession.Fatal())
	require.False(t, NoActiveSession.Fatal())
}

func TestNewCarriesSessionID(t *testing.T) {
	err := New(PtyIo, "write failed", Options{SessionID: "s1"})
	require.Equal(t, PtyIo, err.Kind)
	require.Equal(t, "s1", err.SessionID)
	require.Contains(t, err.Error(), "s1")
	require.Contains(t, err.Error(), "write failed")
}

func TestEnsureWrapsPlainError(t *testing.T) {
	cause := errors.New("boom")
	err := Ensure(cause, PtyIo, "default", Options{SessionID: "s2"})
	require.Equal(t, "boom", err.Message())
	require.ErrorIs(t, err, cause)
}

func TestEnsureReturnsExistingError(t *testing.T) {
	original := New(UnknownSession, "no such session", Options{SessionID: "s3"})
	wrapped := Ensure(original, PtyIo, "default", Options{})
	require.Same(t, original, wrapped)
}

func TestEnsureNilUsesDefault(t *testing.T) {
	err := Ensure(nil, NoActiveSession, "nothing active", Options{})
	require.Equal(t, "nothing active", err.Message())
}
