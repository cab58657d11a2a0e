package interrupt

import (
	"errors"
	"sync/atomic"
	"time"
)

// ErrInterrupted is returned when an Interrupt reports that the in-flight
// computation must stop. It is never a domain failure: callers abort the whole
// evaluation instead of recovering locally.
var ErrInterrupted = errors.New("interrupted")

// Interrupt is a pollable cancellation predicate.
type Interrupt interface {
	ShouldInterrupt() bool
}

// Check returns ErrInterrupted if intr reports that work must stop.
// A nil Interrupt never fires.
func Check(intr Interrupt) error {
	if intr != nil && intr.ShouldInterrupt() {
		return ErrInterrupted
	}
	return nil
}

// IsInterrupted reports whether err is (or wraps) ErrInterrupted.
func IsInterrupted(err error) bool {
	return errors.Is(err, ErrInterrupted)
}

// Never is an Interrupt that never fires.
type Never struct{}

// ShouldInterrupt always returns false.
func (Never) ShouldInterrupt() bool { return false }

// Func adapts an ordinary function to the Interrupt interface.
type Func func() bool

// ShouldInterrupt calls f.
func (f Func) ShouldInterrupt() bool { return f() }

// Timeout fires once the elapsed time since its start exceeds the limit.
//
// The clock is injectable so tests can drive the deadline deterministically.
type Timeout struct {
	start time.Time
	limit time.Duration
	now   func() time.Time
}

// NewTimeout creates a Timeout that starts now and fires after limit.
func NewTimeout(limit time.Duration) *Timeout {
	return NewTimeoutAt(time.Now(), limit, time.Now)
}

// NewTimeoutAt creates a Timeout with an explicit start and clock.
func NewTimeoutAt(start time.Time, limit time.Duration, now func() time.Time) *Timeout {
	return &Timeout{start: start, limit: limit, now: now}
}

// ShouldInterrupt reports whether the deadline has passed.
func (t *Timeout) ShouldInterrupt() bool {
	return t.now().Sub(t.start) > t.limit
}

// Limit returns the configured duration.
func (t *Timeout) Limit() time.Duration {
	return t.limit
}

// Quota fires once it has been polled more than maxPolls times.
//
// A Quota of 0 fires on the first poll. Polls are counted atomically, so a
// single Quota may be shared by goroutines that belong to the same evaluation.
type Quota struct {
	maxPolls int64
	polls    atomic.Int64
}

// NewQuota creates a Quota allowing maxPolls polls before firing.
func NewQuota(maxPolls int64) *Quota {
	return &Quota{maxPolls: maxPolls}
}

// ShouldInterrupt counts the poll and reports whether the quota is used up.
func (q *Quota) ShouldInterrupt() bool {
	return q.polls.Add(1) > q.maxPolls
}

// Polls returns the number of polls observed so far.
func (q *Quota) Polls() int64 {
	return q.polls.Load()
}

// MaxPolls returns the configured limit.
func (q *Quota) MaxPolls() int64 {
	return q.maxPolls
}

// Reset clears the poll counter.
func (q *Quota) Reset() {
	q.polls.Store(0)
}

// Any fires as soon as one of its members fires.
type Any []Interrupt

// ShouldInterrupt polls every member in order and stops at the first that fires.
func (a Any) ShouldInterrupt() bool {
	for _, intr := range a {
		if intr != nil && intr.ShouldInterrupt() {
			return true
		}
	}
	return false
}
