package node

import (
	"sync"
	"time"
)

// DefaultProgressInterval is the minimum gap between emitted progress
// notifications for a transfer.
const DefaultProgressInterval = 300 * time.Millisecond

// ProgressEvent is one emitted progress notification.
type ProgressEvent struct {
	// Source identifies the transfer, e.g. the archive file name.
	Source string `json:"source"`
	// Transferred is the number of bytes received so far.
	Transferred int64 `json:"transferred"`
	// Total is the expected transfer size, or 0 when unknown.
	Total int64 `json:"total"`
}

// ProgressFunc receives raw progress ticks from a transfer.
type ProgressFunc func(source string, transferred, total int64)

// Throttle gates progress emission by time: a tick is forwarded only when at
// least the configured interval has elapsed since the last emission, and
// dropped silently otherwise. Ticks may arrive from a different goroutine
// than the caller's, so the read-then-write of the last-emitted timestamp is
// mutex-guarded.
//
// A tick inside the gate window is dropped even when transferred == total;
// callers that need a guaranteed completion event emit one themselves after
// the transfer returns. Emitted events are monotonically non-decreasing in
// Transferred per source.
type Throttle struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
	sent     map[string]int64
	emit     func(ProgressEvent)
	now      func() time.Time
}

// NewThrottle creates a Throttle emitting through emit at most once per
// DefaultProgressInterval.
func NewThrottle(emit func(ProgressEvent)) *Throttle {
	return NewThrottleInterval(DefaultProgressInterval, emit)
}

// NewThrottleInterval creates a Throttle with an explicit gate interval.
func NewThrottleInterval(interval time.Duration, emit func(ProgressEvent)) *Throttle {
	return &Throttle{
		interval: interval,
		sent:     make(map[string]int64),
		emit:     emit,
		now:      time.Now,
	}
}

// Tick reports transfer progress. The first tick for a throttle always
// emits; subsequent ticks emit only after the gate interval has elapsed.
func (t *Throttle) Tick(source string, transferred, total int64) {
	t.mu.Lock()
	now := t.now()
	if !t.last.IsZero() && now.Sub(t.last) < t.interval {
		t.mu.Unlock()
		return
	}
	if transferred < t.sent[source] {
		t.mu.Unlock()
		return
	}
	t.last = now
	t.sent[source] = transferred
	emit := t.emit
	t.mu.Unlock()

	if emit != nil {
		emit(ProgressEvent{Source: source, Transferred: transferred, Total: total})
	}
}
