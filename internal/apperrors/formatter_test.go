package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatForDisplayNilIsEmpty(t *testing.T) {
	require.Equal(t, "", FormatForDisplay(nil))
}

func TestFormatForDisplayRendersResolutionSteps(t *testing.T) {
	err := New(PtySpawn, "could not start shell", Options{
		Resolution: []string{"check $SHELL", "retry"},
	})

	out := FormatForDisplay(err)
	require.Contains(t, out, "[PtySpawn] could not start shell")
	require.Contains(t, out, "1. check $SHELL")
	require.Contains(t, out, "2. retry")
}

func TestFormatForDisplayRendersDetailsTable(t *testing.T) {
	err := New(PtyIo, "write failed", Options{
		Details: map[string]any{"errno": 5},
	})

	require.Contains(t, FormatForDisplay(err), "errno")
	require.Contains(t, FormatForDisplay(err), "5")
}

func TestFormatForDisplayFallsBackForPlainErrors(t *testing.T) {
	out := FormatForDisplay(errors.New("disk full"))
	require.Contains(t, out, "disk full")
}

func TestFormatDetailValuePrefersErrorMessage(t *testing.T) {
	require.Equal(t, "boom", formatDetailValue(errors.New("boom")))
}

func TestFormatDetailValueHandlesNil(t *testing.T) {
	require.Equal(t, "<nil>", formatDetailValue(nil))
}
