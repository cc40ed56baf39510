// Package clock schedules deferred completions for the window manager.
//
// Callbacks registered through a Scheduler are never cancelled. Whoever runs
// them must deliver them on the same goroutine that drives the window
// manager; daemon.Loop does this for real time and Fake does it for tests.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Scheduler runs fn once after d has elapsed.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(d time.Duration, fn func())

// AfterFunc calls f(d, fn).
func (f SchedulerFunc) AfterFunc(d time.Duration, fn func()) {
	f(d, fn)
}

type pending struct {
	due time.Duration
	seq uint64
	fn  func()
}

// Fake is a simulated clock. Time only moves when Advance is called, and due
// callbacks run synchronously inside Advance in due order (ties in
// registration order).
type Fake struct {
	mu      sync.Mutex
	now     time.Duration
	seq     uint64
	pending []pending
}

// NewFake returns a fake clock at time zero.
func NewFake() *Fake {
	return &Fake{}
}

// AfterFunc registers fn to run once the fake time reaches now+d.
func (f *Fake) AfterFunc(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	f.pending = append(f.pending, pending{due: f.now + d, seq: f.seq, fn: fn})
}

// Now returns the elapsed fake time.
func (f *Fake) Now() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Pending returns the number of callbacks that have not fired yet.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// Advance moves time forward by d, running every callback that becomes due.
// Callbacks scheduled by other callbacks run too if they fall inside the
// window.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now + d
	f.mu.Unlock()

	for {
		f.mu.Lock()
		next, ok := f.popDue(target)
		if !ok {
			f.now = target
			f.mu.Unlock()
			return
		}
		f.now = next.due
		f.mu.Unlock()

		next.fn()
	}
}

// popDue removes and returns the earliest callback due at or before target.
// Callers hold f.mu.
func (f *Fake) popDue(target time.Duration) (pending, bool) {
	if len(f.pending) == 0 {
		return pending{}, false
	}
	sort.Slice(f.pending, func(i, j int) bool {
		if f.pending[i].due != f.pending[j].due {
			return f.pending[i].due < f.pending[j].due
		}
		return f.pending[i].seq < f.pending[j].seq
	})
	if f.pending[0].due > target {
		return pending{}, false
	}
	next := f.pending[0]
	f.pending = f.pending[1:]
	return next, true
}
