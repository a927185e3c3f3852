package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNotifyRateLimitsPerSession(t *testing.T) {
	d := NewDesktop()
	d.mu.Lock()
	d.last["s1"] = time.Now()
	d.mu.Unlock()

	// Within the window: the call returns immediately without
	// updating last, since it is dropped before dispatch.
	before := d.last["s1"]
	d.Notify("s1", "t", "b")
	d.mu.Lock()
	after := d.last["s1"]
	d.mu.Unlock()
	require.Equal(t, before, after)
}

func TestNotifyAllowsFreshSession(t *testing.T) {
	d := NewDesktop()
	d.Notify("s2", "t", "b")
	d.mu.Lock()
	_, ok := d.last["s2"]
	d.mu.Unlock()
	require.True(t, ok)
}
