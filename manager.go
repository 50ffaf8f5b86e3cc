package focal

import (
	"sort"
	"sync"

	"github.com/germtb/focal/signals"
)

// Record registers a region with the manager. The manager invokes
// OnIncoming whenever a transfer event touches the region: either the
// proposed destination lands within Element, or focus is moving away
// from somewhere within Element (which is how a trap sees escape
// attempts).
type Record struct {
	// Owner identifies the registering participant. Removal is
	// matched on it.
	Owner any

	// Element roots the region. At most one record is active per
	// root at a time.
	Element Element

	// OnIncoming may rewrite the event's Next field. A panic here
	// propagates to the Dispatch caller; registration state is
	// unaffected.
	OnIncoming func(*TransferEvent)
}

// Manager is the focus coordination engine: a registry of
// focus-participating regions plus the dispatch protocol that lets a
// region rewrite an in-flight focus transfer before it completes.
//
// Construct one per hosting composition root and pass it to
// participants explicitly; there is no package-level instance.
type Manager struct {
	mu      sync.RWMutex
	store   Store
	sched   Scheduler
	records []Record

	// Owners of the records that covered the last settled element.
	// When a transfer arrives with no origin (the focused element was
	// detached and the store now reports nothing active), these
	// regions still see it as an escape attempt.
	settledOwners []any

	active    signals.Accessor[Element]
	setActive signals.Setter[Element]
}

// Option configures a Manager.
type Option func(*Manager)

// WithScheduler sets the settling scheduler. The default is Immediate.
func WithScheduler(s Scheduler) Option {
	return func(m *Manager) {
		m.sched = s
	}
}

// New creates a manager over the given store.
func New(store Store, opts ...Option) *Manager {
	active, setActive := signals.CreateSignalWithEquals[Element](nil, func(a, b Element) bool {
		return a == b
	})

	m := &Manager{
		store:     store,
		sched:     Immediate(),
		active:    active,
		setActive: setActive,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Store returns the element store the manager was built over.
func (m *Manager) Store() Store {
	return m.store
}

// Active returns the settled focus target. Reading it inside a
// signals effect subscribes the effect to settling.
func (m *Manager) Active() Element {
	return m.active()
}

// Add registers a record. A prior record with the same owner, or one
// rooted at the same element, is replaced so that at most one record
// is active per root; registering is never a duplicate error.
func (m *Manager) Add(rec Record) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.records[:0]
	for _, r := range m.records {
		if r.Owner == rec.Owner || r.Element == rec.Element {
			continue
		}
		kept = append(kept, r)
	}
	m.records = append(kept, rec)
}

// Remove unregisters the record for owner, but only if its root is
// element. Removing an absent record is a no-op, so unmount paths can
// call it unconditionally and in any order.
func (m *Manager) Remove(owner any, element Element) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.records {
		if m.records[i].Owner == owner && m.records[i].Element == element {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return
		}
	}
}

// Find returns the innermost record whose root equals or contains el.
func (m *Manager) Find(el Element) (Record, bool) {
	if el == nil {
		return Record{}, false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var best Record
	found := false
	for _, rec := range m.records {
		if !m.store.Contains(rec.Element, el) {
			continue
		}
		if !found || m.store.Contains(best.Element, rec.Element) {
			best = rec
			found = true
		}
	}
	return best, found
}

// Dispatch routes a transfer event through the matching records'
// OnIncoming callbacks. Records whose root covers the proposed
// destination run first, innermost to outermost, followed by records
// that only cover the origin (escape interception), again innermost to
// outermost. An event without an origin is routed to the regions that
// covered the last settled element, so a region keeps seeing escapes
// after its focused descendant left the tree. Each record is invoked
// at most once per call.
//
// Dispatch does not re-run automatically after a callback reassigns
// Next; a callback that redirects into a region it does not own calls
// Dispatch again itself when recursive resolution is required.
func (m *Manager) Dispatch(ev *TransferEvent) *TransferEvent {
	m.mu.RLock()
	var incoming, escaping []Record
	for _, rec := range m.records {
		switch {
		case ev.Next != nil && m.store.Contains(rec.Element, ev.Next):
			incoming = append(incoming, rec)
		case ev.Previous != nil:
			if m.store.Contains(rec.Element, ev.Previous) {
				escaping = append(escaping, rec)
			}
		case m.settledOwnerLocked(rec.Owner):
			escaping = append(escaping, rec)
		}
	}
	m.mu.RUnlock()

	m.sortInnermost(incoming)
	m.sortInnermost(escaping)

	// Callbacks run without the lock held so a panic or a recursive
	// Dispatch cannot corrupt registration state.
	for _, rec := range incoming {
		rec.OnIncoming(ev)
	}
	for _, rec := range escaping {
		rec.OnIncoming(ev)
	}
	return ev
}

// sortInnermost orders records so that a region nested inside another
// comes first. Roots covering a common element lie on one ancestor
// path, so containment is a total order here.
func (m *Manager) sortInnermost(recs []Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Element == recs[j].Element {
			return false
		}
		return m.store.Contains(recs[j].Element, recs[i].Element)
	})
}

// MoveFocus runs a full transfer from the store's current active
// element: build the event, dispatch it, then perform the focus side
// effect and schedule settling.
func (m *Manager) MoveFocus(next Element) {
	m.MoveFocusFrom(m.store.ActiveElement(), next)
}

// MoveFocusFrom is MoveFocus with an explicit origin.
func (m *Manager) MoveFocusFrom(previous, next Element) {
	m.Transfer(&TransferEvent{Previous: previous, Next: next})
}

// Transfer dispatches a prepared event and completes the move.
// Participants use it when they need to carry a context accessor on
// the event.
func (m *Manager) Transfer(ev *TransferEvent) {
	m.Dispatch(ev)
	m.requestFocus(ev.Next)
}

// requestFocus issues the store focus call and defers the observable
// update to the settling point.
func (m *Manager) requestFocus(el Element) {
	if el == nil {
		return
	}
	m.store.Focus(el)
	m.sched.Defer(m.syncActive)
}

// settledOwnerLocked reports whether owner's record covered the last
// settled element. Callers hold at least a read lock.
func (m *Manager) settledOwnerLocked(owner any) bool {
	for _, o := range m.settledOwners {
		if o == owner {
			return true
		}
	}
	return false
}

// syncActive reconciles the settled Active signal with the store and
// remembers which regions cover the settled element. Settling on nil
// keeps the previous memo; a lost element does not release its
// regions.
func (m *Manager) syncActive() {
	el := m.store.ActiveElement()
	if el != nil {
		m.mu.Lock()
		m.settledOwners = m.settledOwners[:0]
		for _, rec := range m.records {
			if m.store.Contains(rec.Element, el) {
				m.settledOwners = append(m.settledOwners, rec.Owner)
			}
		}
		m.mu.Unlock()
	}
	m.setActive(el)
}

func (m *Manager) deferred(fn func()) {
	m.sched.Defer(fn)
}
