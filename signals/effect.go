package signals

import "sync"

// CleanupFunc runs before an effect re-executes and when it is disposed.
type CleanupFunc func()

// DisposeFunc permanently stops an effect or root.
type DisposeFunc func()

// CreateEffect creates a reactive effect that runs immediately and then
// re-runs whenever any signal read during its last run changes.
//
// The effect function can return a cleanup function that runs before
// each re-execution and on dispose.
func CreateEffect(fn func() CleanupFunc) DisposeFunc {
	var cleanup CleanupFunc
	var disposed bool
	var mu sync.Mutex

	comp := &computation{}

	comp.execute = func() {
		mu.Lock()
		if disposed {
			mu.Unlock()
			return
		}
		prevCleanup := cleanup
		cleanup = nil
		mu.Unlock()

		if prevCleanup != nil {
			prevCleanup()
		}

		// Drop stale subscriptions before re-tracking.
		comp.mu.Lock()
		for _, src := range comp.sources {
			src.unsubscribe(comp)
		}
		comp.sources = comp.sources[:0]
		comp.mu.Unlock()

		prev := swapComputation(comp)
		next := fn()
		swapComputation(prev)

		mu.Lock()
		cleanup = next
		mu.Unlock()
	}

	comp.execute()

	dispose := func() {
		mu.Lock()
		if disposed {
			mu.Unlock()
			return
		}
		disposed = true
		prevCleanup := cleanup
		cleanup = nil
		mu.Unlock()

		comp.mu.Lock()
		for _, src := range comp.sources {
			src.unsubscribe(comp)
		}
		comp.sources = nil
		comp.mu.Unlock()

		if prevCleanup != nil {
			prevCleanup()
		}
	}

	if owner := getOwner(); owner != nil {
		owner.register(dispose)
	}

	return dispose
}

// CreateEffectSimple creates an effect without cleanup.
func CreateEffectSimple(fn func()) DisposeFunc {
	return CreateEffect(func() CleanupFunc {
		fn()
		return nil
	})
}

// CreateMemo creates a memoized computation that re-computes when its
// dependencies change.
func CreateMemo[T any](fn func() T) Accessor[T] {
	value, setValue := CreateSignal(*new(T))

	CreateEffect(func() CleanupFunc {
		setValue(fn())
		return nil
	})

	return value
}
