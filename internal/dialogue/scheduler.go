// Package dialogue implements the narrative sequencing layer: a
// cooperative virtual-time scheduler and the typewriter dialogue state
// machine built on top of it. Nothing here touches wall-clock time; the
// owner advances ticks, which keeps ordering and cancellation testable.
package dialogue

import "container/heap"

// Ticks is the scheduler's time unit. The TUI maps one tick to one
// millisecond; tests advance ticks directly.
type Ticks int64

type task struct {
	due    Ticks
	seq    uint64
	fn     func()
	cancel bool
	index  int
}

type taskHeap []*task

func (h taskHeap) Len() int { return len(h) }
func (h taskHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].seq < h[j].seq
}
func (h taskHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *taskHeap) Push(x any) {
	t := x.(*task)
	t.index = len(*h)
	*h = append(*h, t)
}
func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}

// Handle cancels a scheduled callback. Only After returns one; deferred
// beats from Defer are fire-once and cannot be canceled.
type Handle struct{ t *task }

// Cancel prevents the callback from running. Safe to call more than once
// or after the callback already ran.
func (h *Handle) Cancel() {
	if h != nil && h.t != nil {
		h.t.cancel = true
	}
}

// Scheduler is a single-threaded task queue over virtual time. Tasks due
// at the same tick run in scheduling order.
type Scheduler struct {
	now   Ticks
	seq   uint64
	tasks taskHeap
}

func NewScheduler() *Scheduler {
	s := &Scheduler{}
	heap.Init(&s.tasks)
	return s
}

// Now returns the current virtual time.
func (s *Scheduler) Now() Ticks { return s.now }

// Pending returns how many live callbacks are queued.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.cancel {
			n++
		}
	}
	return n
}

func (s *Scheduler) schedule(delay Ticks, fn func()) *task {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	t := &task{due: s.now + delay, seq: s.seq, fn: fn}
	heap.Push(&s.tasks, t)
	return t
}

// After runs fn once after delay ticks and returns a cancelable handle.
func (s *Scheduler) After(delay Ticks, fn func()) *Handle {
	return &Handle{t: s.schedule(delay, fn)}
}

// Defer runs fn once after delay ticks. Deferred beats sequence a visual
// step after a state mutation and always run; there is no handle.
func (s *Scheduler) Defer(delay Ticks, fn func()) {
	s.schedule(delay, fn)
}

// Advance moves virtual time forward by d ticks, running every due
// callback in order. Callbacks may schedule further work; anything that
// falls due within the same window runs in the same call.
func (s *Scheduler) Advance(d Ticks) {
	if d < 0 {
		return
	}
	target := s.now + d
	for len(s.tasks) > 0 && s.tasks[0].due <= target {
		t := heap.Pop(&s.tasks).(*task)
		s.now = t.due
		if !t.cancel {
			t.fn()
		}
	}
	s.now = target
}
