package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestPush_DefaultTTL(t *testing.T) {
	n := NewNotifier()
	defer n.Close()

	before := time.Now()
	id := n.Push("Added to cart", 0)

	active := n.Active()
	require.Len(t, active, 1)
	assert.Equal(t, id, active[0].ID)
	assert.Equal(t, "Added to cart", active[0].Text)

	ttl := active[0].ExpiresAt.Sub(before)
	assert.InDelta(t, DefaultTTL, ttl, float64(100*time.Millisecond))
}

func TestActive_PushOrderPreserved(t *testing.T) {
	n := NewNotifier()
	defer n.Close()

	n.Push("first", time.Second)
	n.Push("second", time.Second)

	active := n.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "first", active[0].Text)
	assert.Equal(t, "second", active[1].Text)
}

func TestNotificationsExpire(t *testing.T) {
	n := NewNotifier()
	defer n.Close()

	n.Push("blink", 20*time.Millisecond)
	n.Push("stay", 5*time.Second)

	require.Eventually(t, func() bool {
		return len(n.Active()) == 1
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, "stay", n.Active()[0].Text)
}

func TestOverlappingNotificationsAllowed(t *testing.T) {
	n := NewNotifier()
	defer n.Close()

	for i := 0; i < 5; i++ {
		n.Push("Added to cart", time.Second)
	}

	assert.Len(t, n.Active(), 5)
}

func TestClose_StopsReaper(t *testing.T) {
	defer goleak.VerifyNone(t)

	n := NewNotifier()
	n.Push("bye", time.Second)

	require.NoError(t, n.Close())
}
