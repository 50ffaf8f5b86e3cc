package signals

// Batch groups multiple signal writes into one update cycle. Effects
// subscribed to the written signals run once, after fn returns.
func Batch[T any](fn func() T) T {
	ctxMu.Lock()
	batchDepth++
	ctxMu.Unlock()

	defer func() {
		ctxMu.Lock()
		batchDepth--
		flush := batchDepth == 0
		var toRun []*computation
		if flush {
			toRun = pending
			pending = nil
			pendingSet = make(map[*computation]struct{})
		}
		ctxMu.Unlock()

		for _, comp := range toRun {
			comp.execute()
		}
	}()

	return fn()
}

// BatchVoid is a convenience wrapper for Batch with no return value.
func BatchVoid(fn func()) {
	Batch(func() struct{} {
		fn()
		return struct{}{}
	})
}
