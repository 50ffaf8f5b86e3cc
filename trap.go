package focal

import "github.com/germtb/focal/signals"

// TrapOptions configures a focus trap.
type TrapOptions struct {
	// FocusIn picks the initial focus target and the pull-back
	// target for containment: a selector string or an Element.
	// When unset (or matching nothing) the first focusable
	// descendant of the root is used.
	FocusIn any

	// FocusOut overrides the restoration target on detach. When
	// unset, focus returns to whatever was active before the trap
	// attached.
	FocusOut Element

	// Chrome is presentation passthrough with no behavioral effect.
	Chrome Chrome
}

// Trap exclusively owns focus while attached. On attach it captures
// the active element and moves focus inside its root; while attached
// it rewrites any transfer that would leave the root; on detach it
// restores focus to the captured element (or the FocusOut override).
//
// A Trap handle is single-use: detach it once and make a fresh one to
// trap again.
type Trap struct {
	m        *Manager
	root     Element
	focusIn  any
	focusOut Element
	chrome   Chrome

	previous   Element
	remembered signals.Accessor[Element]
	stopWatch  signals.DisposeFunc
	detached   bool
}

// AttachTrap activates a trap over root and returns its handle.
//
// The capture of the previously focused element happens here,
// synchronously, before any focus moves. The move into the root is
// deferred to the manager's settling point so that a descendant
// focused in the meantime (an autofocus effect) wins over the trap's
// computed default.
func AttachTrap(m *Manager, root Element, opts TrapOptions) *Trap {
	t := &Trap{
		m:        m,
		root:     root,
		focusIn:  opts.FocusIn,
		focusOut: opts.FocusOut,
		chrome:   opts.Chrome,
		previous: m.store.ActiveElement(),
	}

	remembered, setRemembered := signals.CreateSignalWithEquals[Element](nil, func(a, b Element) bool {
		return a == b
	})
	t.remembered = remembered

	// Track where focus settles inside the root so re-entry through
	// a nested area can come back to it.
	t.stopWatch = signals.CreateEffect(func() signals.CleanupFunc {
		if el := m.Active(); el != nil && el != root && m.store.Contains(root, el) {
			setRemembered(el)
		}
		return nil
	})

	m.Add(Record{Owner: t, Element: root, OnIncoming: t.onIncoming})
	m.deferred(t.initialFocus)

	return t
}

// Root returns the element the trap is rooted at.
func (t *Trap) Root() Element {
	return t.root
}

// Chrome returns the trap's presentation passthrough.
func (t *Trap) Chrome() Chrome {
	return t.chrome
}

func (t *Trap) initialFocus() {
	if t.detached {
		return
	}
	s := t.m.store

	// An autofocus that landed inside the root between attach and
	// settling takes precedence over the configured target.
	if active := s.ActiveElement(); active != nil && s.Contains(t.root, active) {
		t.m.syncActive()
		return
	}

	target := firstFocusable(s, t.root, t.focusIn)
	if target == nil {
		return
	}
	t.m.Transfer(&TransferEvent{Previous: t.previous, Next: target, Context: t.remembered})
}

// onIncoming enforces containment: a transfer headed outside the root
// is rewritten back to a focusable element inside it.
func (t *Trap) onIncoming(ev *TransferEvent) {
	s := t.m.store
	if ev.Next != nil && s.Contains(t.root, ev.Next) {
		return
	}

	target := firstFocusable(s, t.root, t.focusIn)
	if target == nil {
		target = t.root
	}
	ev.Next = target
	if ev.Context == nil {
		ev.Context = t.remembered
	}

	// The pulled-back target may root a nested region; give it a
	// chance to refine. The containment check above terminates the
	// recursion once Next is inside.
	t.m.Dispatch(ev)
}

// Detach deactivates the trap, restoring focus to the FocusOut
// override or the element captured at attach. A restoration target
// that has left the tree is skipped and focus stays put. Detach is
// idempotent and works even if attach never resolved an initial
// target.
func (t *Trap) Detach() {
	if t.detached {
		return
	}
	t.detached = true

	if t.stopWatch != nil {
		t.stopWatch()
	}
	t.m.Remove(t, t.root)

	target := t.focusOut
	if target == nil {
		target = t.previous
	}
	t.previous = nil

	if target == nil || !t.m.store.Attached(target) {
		return
	}
	t.m.MoveFocus(target)
}
