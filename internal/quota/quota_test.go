package quota

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryReserveSequence(t *testing.T) {
	tracker := NewTracker(3, time.Hour)
	defer tracker.Close()

	assert.True(t, tracker.TryReserve())
	assert.True(t, tracker.TryReserve())
	assert.True(t, tracker.TryReserve())
	assert.False(t, tracker.TryReserve())
	assert.False(t, tracker.TryReserve())
	assert.Equal(t, 0, tracker.Remaining())
}

func TestTryReserveNeverNegative(t *testing.T) {
	tracker := NewTracker(2, time.Hour)
	defer tracker.Close()

	granted := 0
	for i := 0; i < 10; i++ {
		if tracker.TryReserve() {
			granted++
		}
	}
	assert.Equal(t, 2, granted)
	assert.Equal(t, 0, tracker.Remaining())
}

func TestRefundRestoresUnit(t *testing.T) {
	tracker := NewTracker(5, time.Hour)
	defer tracker.Close()

	require.True(t, tracker.TryReserve())
	assert.Equal(t, 4, tracker.Remaining())
	tracker.Refund()
	assert.Equal(t, 5, tracker.Remaining())
}

func TestRefundCappedAtCapacity(t *testing.T) {
	tracker := NewTracker(5, time.Hour)
	defer tracker.Close()

	// A refund landing after a reset must not overfill the counter.
	require.True(t, tracker.TryReserve())
	tracker.Reset()
	tracker.Refund()
	assert.Equal(t, 5, tracker.Remaining())
}

func TestResetRestoresCapacity(t *testing.T) {
	tracker := NewTracker(4, time.Hour)
	defer tracker.Close()

	for i := 0; i < 4; i++ {
		require.True(t, tracker.TryReserve())
	}
	require.Equal(t, 0, tracker.Remaining())

	tracker.Reset()
	assert.Equal(t, 4, tracker.Remaining())
}

func TestConcurrentReserveNeverOverAdmits(t *testing.T) {
	tracker := NewTracker(1, time.Hour)
	defer tracker.Close()

	var wg sync.WaitGroup
	var mu sync.Mutex
	granted := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if tracker.TryReserve() {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, granted)
	assert.Equal(t, 0, tracker.Remaining())
}

func TestNextBoundaryIsTopOfHour(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 23, 45, 0, time.UTC)
	tracker := NewTrackerWithClock(20, time.Hour, func() time.Time { return now })
	defer tracker.Close()

	assert.Equal(t, time.Date(2025, 3, 14, 11, 0, 0, 0, time.UTC), tracker.NextBoundary())
}

func TestCloseIdempotent(t *testing.T) {
	tracker := NewTracker(1, time.Hour)
	tracker.Close()
	tracker.Close()
}
