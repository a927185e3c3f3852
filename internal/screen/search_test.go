package screen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearchCaseInsensitiveAcrossScrollbackAndVisible(t *testing.T) {
	s := NewScreen(2, 20)
	s.Write([]byte("Hello World\nfoo BAR\nHELLO again"))

	matches := s.Search("hello")
	require.Len(t, matches, 2)
	require.Equal(t, 0, matches[0].AbsoluteRow)
	require.Equal(t, 0, matches[0].ColStart)
	require.Equal(t, 5, matches[0].ColEnd)
}

func TestSearchMatchesDoNotCrossLineBoundaries(t *testing.T) {
	s := NewScreen(2, 20)
	s.Write([]byte("abc\ndef"))
	require.Empty(t, s.Search("cd"))
}

func TestSearchEmptyQueryReturnsNoMatches(t *testing.T) {
	s := NewScreen(2, 20)
	s.Write([]byte("abc"))
	require.Empty(t, s.Search(""))
}
