package switcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/climux/climux/internal/session"
)

func TestFilterEmptyQueryReturnsAllInOrder(t *testing.T) {
	fields := []Field{
		{ID: 1, Name: "alpha"},
		{ID: 2, Name: "beta"},
	}
	results := Filter("", fields)
	require.Len(t, results, 2)
	require.Equal(t, session.ID(1), results[0].Field.ID)
}

func TestFilterRanksBestMatchFirst(t *testing.T) {
	fields := []Field{
		{ID: 1, Name: "build-agent", Cwd: "/home/x"},
		{ID: 2, Name: "random", Cwd: "/home/y"},
		{ID: 3, Name: "agent-builder", Cwd: "/home/z"},
	}
	results := Filter("agent", fields)
	require.NotEmpty(t, results)
	for _, r := range results {
		require.NotEqual(t, session.ID(2), r.Field.ID)
	}
}
