package scheduler

import (
	"sort"
	"time"
)

// Handle identifies a queued task. The zero Handle never refers to a task.
type Handle uint64

type task struct {
	handle Handle
	due    time.Time
	fn     func()
}

// Loop is a cooperative timer queue. It is not safe for concurrent use: the
// owner calls After, Cancel and Run from a single goroutine (the UI event
// loop), so callbacks never interleave with each other or with UI updates.
type Loop struct {
	clock Clock
	next  Handle
	tasks []task
}

// New creates a loop reading time from clock. A nil clock uses SystemClock.
func New(clock Clock) *Loop {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Loop{clock: clock}
}

// Now reports the loop clock's current time.
func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

// After queues fn to run once delay has elapsed. Tasks sharing a due time run
// in submission order.
func (l *Loop) After(delay time.Duration, fn func()) Handle {
	if fn == nil {
		return 0
	}
	if delay < 0 {
		delay = 0
	}
	l.next++
	t := task{handle: l.next, due: l.clock.Now().Add(delay), fn: fn}
	idx := sort.Search(len(l.tasks), func(i int) bool {
		return l.tasks[i].due.After(t.due)
	})
	l.tasks = append(l.tasks, task{})
	copy(l.tasks[idx+1:], l.tasks[idx:])
	l.tasks[idx] = t
	return t.handle
}

// Cancel removes a pending task. It reports false when the task already ran,
// was cancelled before, or never existed.
func (l *Loop) Cancel(h Handle) bool {
	if h == 0 {
		return false
	}
	for i := range l.tasks {
		if l.tasks[i].handle == h {
			l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// CancelAll drops every pending task and returns how many were dropped.
func (l *Loop) CancelAll() int {
	n := len(l.tasks)
	l.tasks = nil
	return n
}

// Pending returns the number of queued tasks.
func (l *Loop) Pending() int {
	return len(l.tasks)
}

// Run executes every task whose due time has been reached and returns the
// number executed. Tasks queued by a callback with a due time that has
// already passed run within the same call.
func (l *Loop) Run() int {
	ran := 0
	for len(l.tasks) > 0 {
		if l.tasks[0].due.After(l.clock.Now()) {
			break
		}
		t := l.tasks[0]
		l.tasks = l.tasks[1:]
		t.fn()
		ran++
	}
	return ran
}
