package quota

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Tracker counts how many analyze calls remain in the current period. The
// counter is shared by every in-flight request and resets to capacity at
// each period boundary (top of the hour for a 1h period).
//
// State is in-memory only: a process restart grants a fresh period, which
// double-grants quota around restarts. Known limitation, kept on purpose.
type Tracker struct {
	mu        sync.Mutex
	remaining int
	capacity  int
	period    time.Duration
	now       func() time.Time
	stopCh    chan struct{}
	stopOnce  sync.Once
}

func NewTracker(capacity int, period time.Duration) *Tracker {
	return NewTrackerWithClock(capacity, period, time.Now)
}

func NewTrackerWithClock(capacity int, period time.Duration, now func() time.Time) *Tracker {
	t := &Tracker{
		remaining: capacity,
		capacity:  capacity,
		period:    period,
		now:       now,
		stopCh:    make(chan struct{}),
	}
	go t.resetLoop()
	return t
}

// TryReserve takes one unit, or reports false without touching state when
// the period is exhausted.
func (t *Tracker) TryReserve() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.remaining <= 0 {
		return false
	}
	t.remaining--
	return true
}

// Refund returns a reserved unit after a request that produced no billable
// result. Capped at capacity so a refund racing a period reset cannot
// overfill the counter.
func (t *Tracker) Refund() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.remaining < t.capacity {
		t.remaining++
	}
}

func (t *Tracker) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

func (t *Tracker) Capacity() int {
	return t.capacity
}

// Reset restores the full capacity regardless of the current value.
func (t *Tracker) Reset() {
	t.mu.Lock()
	t.remaining = t.capacity
	t.mu.Unlock()
	logrus.Infof("usage reset: analysis limit restored to %d", t.capacity)
}

// Close stops the periodic reset task. Idempotent.
func (t *Tracker) Close() {
	t.stopOnce.Do(func() {
		close(t.stopCh)
	})
}

// NextBoundary returns the next period boundary after the current time.
func (t *Tracker) NextBoundary() time.Time {
	return t.now().Truncate(t.period).Add(t.period)
}

func (t *Tracker) resetLoop() {
	timer := time.NewTimer(time.Until(t.NextBoundary()))
	defer timer.Stop()
	for {
		select {
		case <-timer.C:
			t.Reset()
			timer.Reset(time.Until(t.NextBoundary()))
		case <-t.stopCh:
			return
		}
	}
}
