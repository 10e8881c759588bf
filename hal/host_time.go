package hal

import (
	"sync/atomic"
	"time"
)

// hostTime is a monotonic millisecond clock. The window runner steps
// it with wall time, the headless runner with a fixed per-tick delta,
// so headless frames are reproducible regardless of host speed.
type hostTime struct {
	millis atomic.Uint64

	last time.Time
	acc  time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{}
}

func (t *hostTime) NowMillis() uint64 { return t.millis.Load() }

// stepWall advances by real elapsed time since the previous call.
func (t *hostTime) stepWall() {
	now := time.Now()
	if t.last.IsZero() {
		t.last = now
		return
	}
	t.acc += now.Sub(t.last)
	t.last = now

	ms := t.acc / time.Millisecond
	if ms == 0 {
		return
	}
	t.acc -= ms * time.Millisecond
	t.millis.Add(uint64(ms))
}

// stepFixed advances by an exact duration.
func (t *hostTime) stepFixed(d time.Duration) {
	t.millis.Add(uint64(d / time.Millisecond))
}
