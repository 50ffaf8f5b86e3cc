package signals

import "sync"

// Owner collects disposables so a whole reactive scope can be torn
// down at once.
type Owner struct {
	mu          sync.Mutex
	disposables []func()
}

func (o *Owner) register(fn func()) {
	o.mu.Lock()
	o.disposables = append(o.disposables, fn)
	o.mu.Unlock()
}

func getOwner() *Owner {
	ctxMu.Lock()
	defer ctxMu.Unlock()
	return currentOwner
}

func swapOwner(owner *Owner) *Owner {
	ctxMu.Lock()
	defer ctxMu.Unlock()
	prev := currentOwner
	currentOwner = owner
	return prev
}

// CreateRoot runs fn inside a fresh owner scope. Effects created inside
// are disposed together when the provided dispose function is called.
func CreateRoot[T any](fn func(dispose DisposeFunc) T) T {
	owner := &Owner{}

	prev := swapOwner(owner)
	defer swapOwner(prev)

	dispose := func() {
		owner.mu.Lock()
		disposables := owner.disposables
		owner.disposables = nil
		owner.mu.Unlock()

		for _, d := range disposables {
			d()
		}
	}

	return fn(dispose)
}

// OnCleanup registers fn to run when the current owner is disposed.
// Outside an owner scope it is a no-op.
func OnCleanup(fn func()) {
	if owner := getOwner(); owner != nil {
		owner.register(fn)
	}
}
