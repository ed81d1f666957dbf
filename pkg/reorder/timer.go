package reorder

import "time"

// DefaultDragDelay is how long a drag must last before the item reports
// itself as visibly dragging.
const DefaultDragDelay = 100 * time.Millisecond

// Timer is a pending callback that can be cancelled.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer before it fired.
	Stop() bool
}

// Scheduler arms one-shot callbacks. The callback may run on another goroutine.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemScheduler schedules callbacks on the runtime timer.
type SystemScheduler struct{}

// AfterFunc wraps time.AfterFunc.
func (SystemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ManualScheduler holds callbacks until Fire is called. It is used for
// headless replays and tests where wall-clock time is irrelevant.
type ManualScheduler struct {
	pending []*manualTimer
}

type manualTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// AfterFunc records f without running it.
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &manualTimer{delay: d, fn: f}
	s.pending = append(s.pending, t)
	return t
}

// Fire runs every callback that has not been stopped and returns how many ran.
func (s *ManualScheduler) Fire() int {
	pending := s.pending
	s.pending = nil
	ran := 0
	for _, t := range pending {
		if t.stopped || t.fired {
			continue
		}
		t.fired = true
		t.fn()
		ran++
	}
	return ran
}

// Pending returns the number of armed, unfired, unstopped callbacks.
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, t := range s.pending {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}
