package node

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock hands out a controllable time to the throttle under test.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestThrottle(clock *fakeClock) (*Throttle, *[]ProgressEvent) {
	var events []ProgressEvent
	th := NewThrottle(func(ev ProgressEvent) {
		events = append(events, ev)
	})
	th.now = clock.now
	return th, &events
}

func TestThrottle_GatesByInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	th, events := newTestThrottle(clock)

	// Ticks every 100ms over a 300ms gate: only the first and the one at
	// +300ms pass.
	th.Tick("node.tar.gz", 100, 1000)
	clock.advance(100 * time.Millisecond)
	th.Tick("node.tar.gz", 200, 1000)
	clock.advance(100 * time.Millisecond)
	th.Tick("node.tar.gz", 300, 1000)
	clock.advance(100 * time.Millisecond)
	th.Tick("node.tar.gz", 400, 1000)

	assert.Equal(t, []ProgressEvent{
		{Source: "node.tar.gz", Transferred: 100, Total: 1000},
		{Source: "node.tar.gz", Transferred: 400, Total: 1000},
	}, *events)
}

func TestThrottle_FirstTickAlwaysEmits(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	th, events := newTestThrottle(clock)

	th.Tick("node.tar.gz", 1, 1000)

	assert.Len(t, *events, 1)
}

func TestThrottle_CompletionInsideGateIsDropped(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	th, events := newTestThrottle(clock)

	th.Tick("node.tar.gz", 500, 1000)
	clock.advance(50 * time.Millisecond)
	th.Tick("node.tar.gz", 1000, 1000)

	// transferred == total grants no exemption from the gate.
	assert.Len(t, *events, 1)
	assert.Equal(t, int64(500), (*events)[0].Transferred)
}

func TestThrottle_DropsRegressions(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	th, events := newTestThrottle(clock)

	th.Tick("node.tar.gz", 500, 1000)
	clock.advance(DefaultProgressInterval)
	th.Tick("node.tar.gz", 400, 1000)
	clock.advance(DefaultProgressInterval)
	th.Tick("node.tar.gz", 600, 1000)

	assert.Equal(t, []int64{500, 600}, []int64{
		(*events)[0].Transferred,
		(*events)[1].Transferred,
	})
	assert.Len(t, *events, 2)
}

func TestThrottle_CustomInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	var events []ProgressEvent
	th := NewThrottleInterval(10*time.Millisecond, func(ev ProgressEvent) {
		events = append(events, ev)
	})
	th.now = clock.now

	th.Tick("a", 1, 10)
	clock.advance(10 * time.Millisecond)
	th.Tick("a", 2, 10)

	assert.Len(t, events, 2)
}

func TestThrottle_NilEmitIsSafe(t *testing.T) {
	th := NewThrottle(nil)

	assert.NotPanics(t, func() {
		th.Tick("a", 1, 10)
	})
}
