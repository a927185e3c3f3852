package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryAllocateIsMonotonicAndNeverReused(t *testing.T) {
	r := NewRegistry()
	first := r.Allocate()
	second := r.Allocate()
	require.Equal(t, ID(1), first)
	require.Equal(t, ID(2), second)

	s := NewSession(first, "shell-1", "/tmp")
	r.Add(s)
	require.True(t, r.Remove(first))

	third := r.Allocate()
	require.Equal(t, ID(3), third)
	require.Nil(t, r.Get(first))
}

func TestRegistryAddGetIndexOf(t *testing.T) {
	r := NewRegistry()
	id1 := r.Allocate()
	id2 := r.Allocate()
	r.Add(NewSession(id1, "a", "/a"))
	r.Add(NewSession(id2, "b", "/b"))

	require.Equal(t, 0, r.IndexOf(id1))
	require.Equal(t, 1, r.IndexOf(id2))
	require.Equal(t, -1, r.IndexOf(ID(99)))
	require.Equal(t, 2, r.Len())
	require.Equal(t, "b", r.At(1).Name)
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "Running", Running().String())
	require.Equal(t, "Exited(-1)", Exited(-1).String())
}

func TestRegistryRemoveMissingIsNoop(t *testing.T) {
	r := NewRegistry()
	require.False(t, r.Remove(ID(42)))
}
