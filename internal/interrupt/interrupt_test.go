package interrupt

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/realcalc/internal/testutil"
)

func TestCheck_Never(t *testing.T) {
	for i := 0; i < 100; i++ {
		require.NoError(t, Check(Never{}))
	}
}

func TestCheck_NilNeverFires(t *testing.T) {
	assert.NoError(t, Check(nil))
}

func TestCheck_Func(t *testing.T) {
	fire := false
	intr := Func(func() bool { return fire })

	assert.NoError(t, Check(intr))
	fire = true
	err := Check(intr)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInterrupted)
}

func TestIsInterrupted_Wrapped(t *testing.T) {
	err := fmt.Errorf("ln: %w", ErrInterrupted)
	assert.True(t, IsInterrupted(err))
	assert.False(t, IsInterrupted(fmt.Errorf("other")))
	assert.False(t, IsInterrupted(nil))
}

func TestTimeout_InjectedClock(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	to := NewTimeoutAt(start, 500*time.Millisecond, func() time.Time { return now })

	assert.False(t, to.ShouldInterrupt())

	now = start.Add(500 * time.Millisecond)
	assert.False(t, to.ShouldInterrupt(), "deadline is exclusive")

	now = start.Add(501 * time.Millisecond)
	assert.True(t, to.ShouldInterrupt())
	assert.Equal(t, 500*time.Millisecond, to.Limit())
}

func TestTimeout_ZeroLimitFiresAfterAnyElapsedTime(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := NewTimeoutAt(start, 0, func() time.Time { return start.Add(time.Nanosecond) })
	assert.True(t, to.ShouldInterrupt())
}

// TestTimeout_StepClock tests a timeout polled by a long-running loop.
func TestTimeout_StepClock(t *testing.T) {
	clock := testutil.NewStepClock(100 * time.Millisecond)
	to := NewTimeoutAt(clock.Now(), time.Second, clock.Now)

	polls := 0
	for Check(to) == nil {
		polls++
	}
	assert.Equal(t, 10, polls, "polls up to and including the deadline pass")
}

func TestQuota_FiresAfterLimit(t *testing.T) {
	q := NewQuota(3)

	for i := 0; i < 3; i++ {
		assert.False(t, q.ShouldInterrupt(), "poll %d should be allowed", i+1)
	}
	assert.True(t, q.ShouldInterrupt())
	assert.Equal(t, int64(4), q.Polls())
	assert.Equal(t, int64(3), q.MaxPolls())

	q.Reset()
	assert.Equal(t, int64(0), q.Polls())
	assert.False(t, q.ShouldInterrupt())
}

func TestQuota_ZeroFiresOnFirstPoll(t *testing.T) {
	q := NewQuota(0)
	assert.ErrorIs(t, Check(q), ErrInterrupted)
}

func TestQuota_ConcurrentPolls(t *testing.T) {
	q := NewQuota(1000)

	var wg sync.WaitGroup
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				q.ShouldInterrupt()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1000), q.Polls())
	assert.True(t, q.ShouldInterrupt())
}

func TestAny(t *testing.T) {
	assert.False(t, Any{Never{}, nil}.ShouldInterrupt())
	assert.True(t, Any{Never{}, NewQuota(0)}.ShouldInterrupt())
	assert.False(t, Any{}.ShouldInterrupt())
}
