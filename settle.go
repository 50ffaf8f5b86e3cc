package focal

import "sync"

// Scheduler models the gap between requesting a focus move and the
// host's focus state becoming observable. Hosts with synchronous focus
// semantics use Immediate; hosts with task-queue focus settling (or
// tests exercising the settling race) use a Queue and pump it.
type Scheduler interface {
	// Defer schedules fn to run at the next settling point.
	Defer(fn func())
}

type immediateScheduler struct{}

func (immediateScheduler) Defer(fn func()) { fn() }

// Immediate returns a scheduler that runs deferred work synchronously.
// This is the default for managers.
func Immediate() Scheduler {
	return immediateScheduler{}
}

// Queue is a scheduler that holds deferred work until Settle is
// called. It lets callers stage focus-affecting actions between a
// request and its settling point.
type Queue struct {
	mu      sync.Mutex
	pending []func()
}

// NewQueue creates an empty Queue scheduler.
func NewQueue() *Queue {
	return &Queue{}
}

// Defer appends fn to the pending work.
func (q *Queue) Defer(fn func()) {
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Len returns the number of pending items.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Settle drains the queue, running pending work in order, including
// work deferred by the work itself.
func (q *Queue) Settle() {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.mu.Unlock()
			return
		}
		fn := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		fn()
	}
}
