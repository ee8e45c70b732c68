package clock

import (
	"sync"
	"time"
)

// Fake is a manually advanced Scheduler. Callbacks run synchronously on the
// goroutine that calls Advance, in due-time order.
type Fake struct {
	mu      sync.Mutex
	elapsed time.Duration
	nextSeq int
	timers  []*fakeTimer
}

type fakeTimer struct {
	f       *Fake
	due     time.Duration
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

// NewFake returns a Fake at elapsed time zero.
func NewFake() *Fake {
	return &Fake{}
}

// AfterFunc schedules fn to run once Advance moves past d.
func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()

	if d < 0 {
		d = 0
	}
	t := &fakeTimer{f: f, due: f.elapsed + d, seq: f.nextSeq, fn: fn}
	f.nextSeq++
	f.timers = append(f.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.f.mu.Lock()
	defer t.f.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	t.f.removeLocked(t)
	return true
}

// Advance moves the clock forward by d, firing every timer that comes due,
// including timers scheduled by callbacks during the advance.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.elapsed + d
	f.mu.Unlock()

	for {
		f.mu.Lock()
		next := f.earliestLocked(target)
		if next == nil {
			f.elapsed = target
			f.mu.Unlock()
			return
		}
		f.elapsed = next.due
		next.fired = true
		f.removeLocked(next)
		f.mu.Unlock()

		next.fn()
	}
}

// Elapsed returns how far the clock has been advanced.
func (f *Fake) Elapsed() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.elapsed
}

// Pending returns the number of timers that have neither fired nor been
// stopped.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.timers)
}

func (f *Fake) earliestLocked(limit time.Duration) *fakeTimer {
	var best *fakeTimer
	for _, t := range f.timers {
		if t.due > limit {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (f *Fake) removeLocked(t *fakeTimer) {
	for i, other := range f.timers {
		if other == t {
			f.timers = append(f.timers[:i], f.timers[i+1:]...)
			return
		}
	}
}
