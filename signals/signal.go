// Package signals provides fine-grained reactive primitives.
//
// Signals are plain accessor/setter function pairs. Reading a signal
// inside an effect subscribes the effect to it; writing re-runs the
// subscribed effects (or defers them until the enclosing batch ends).
package signals

import "sync"

// Accessor is a function that reads a signal value.
type Accessor[T any] func() T

// Setter is a function that updates a signal value.
type Setter[T any] func(T)

// computation is a running effect. It re-executes when any signal it
// read during its last run changes.
type computation struct {
	execute func()
	sources []source
	mu      sync.Mutex
}

// source lets a computation drop its subscription during re-tracking.
type source interface {
	unsubscribe(comp *computation)
}

// Package-level reactive context.
var (
	ctxMu              sync.Mutex
	currentComputation *computation
	currentOwner       *Owner
	batchDepth         int
	pending            []*computation
	pendingSet         = make(map[*computation]struct{})
)

func getComputation() *computation {
	ctxMu.Lock()
	defer ctxMu.Unlock()
	return currentComputation
}

func swapComputation(comp *computation) *computation {
	ctxMu.Lock()
	defer ctxMu.Unlock()
	prev := currentComputation
	currentComputation = comp
	return prev
}

type signal[T any] struct {
	value       T
	subscribers map[*computation]struct{}
	mu          sync.RWMutex
}

func (s *signal[T]) unsubscribe(comp *computation) {
	s.mu.Lock()
	delete(s.subscribers, comp)
	s.mu.Unlock()
}

// CreateSignal creates a reactive signal.
//
// Example:
//
//	count, setCount := CreateSignal(0)
//	fmt.Println(count()) // 0
//	setCount(1)
//	fmt.Println(count()) // 1
func CreateSignal[T any](initial T) (Accessor[T], Setter[T]) {
	return newSignal(initial, nil)
}

// CreateSignalWithEquals creates a signal that skips notification when
// the equality function reports the new value unchanged.
func CreateSignalWithEquals[T any](initial T, equals func(a, b T) bool) (Accessor[T], Setter[T]) {
	return newSignal(initial, equals)
}

func newSignal[T any](initial T, equals func(a, b T) bool) (Accessor[T], Setter[T]) {
	s := &signal[T]{
		value:       initial,
		subscribers: make(map[*computation]struct{}),
	}

	read := func() T {
		s.mu.RLock()
		val := s.value
		s.mu.RUnlock()

		if comp := getComputation(); comp != nil {
			s.mu.Lock()
			s.subscribers[comp] = struct{}{}
			s.mu.Unlock()

			comp.mu.Lock()
			comp.sources = append(comp.sources, s)
			comp.mu.Unlock()
		}

		return val
	}

	write := func(next T) {
		s.mu.Lock()
		if equals != nil && equals(s.value, next) {
			s.mu.Unlock()
			return
		}
		s.value = next
		subs := make([]*computation, 0, len(s.subscribers))
		for comp := range s.subscribers {
			subs = append(subs, comp)
		}
		s.mu.Unlock()

		notify(subs)
	}

	return read, write
}

func notify(subs []*computation) {
	ctxMu.Lock()
	inBatch := batchDepth > 0
	if inBatch {
		for _, comp := range subs {
			if _, seen := pendingSet[comp]; !seen {
				pendingSet[comp] = struct{}{}
				pending = append(pending, comp)
			}
		}
	}
	ctxMu.Unlock()

	if !inBatch {
		for _, comp := range subs {
			comp.execute()
		}
	}
}

// SetWith updates a signal from its previous value.
func SetWith[T any](setter Setter[T], fn func(prev T) T, getter Accessor[T]) {
	setter(fn(getter()))
}

// Untrack reads signals without subscribing the current effect to them.
func Untrack[T any](fn func() T) T {
	prev := swapComputation(nil)
	defer swapComputation(prev)
	return fn()
}
