package focal

// AreaOptions configures a focus area.
type AreaOptions struct {
	// FocusIn is the preferred redirect target: a selector string or
	// an Element.
	FocusIn any

	// Chrome is presentation passthrough with no behavioral effect.
	Chrome Chrome
}

// Area passively redirects incoming focus: when a transfer targets its
// root, the area substitutes a more specific internal target. It keeps
// no focus history and never moves focus itself; it only rewrites the
// pending event, and the focus side effect happens downstream of
// dispatch.
type Area struct {
	m        *Manager
	root     Element
	focusIn  any
	chrome   Chrome
	detached bool
}

// AttachArea registers an area over root and returns its handle.
func AttachArea(m *Manager, root Element, opts AreaOptions) *Area {
	a := &Area{
		m:       m,
		root:    root,
		focusIn: opts.FocusIn,
		chrome:  opts.Chrome,
	}
	m.Add(Record{Owner: a, Element: root, OnIncoming: a.onIncoming})
	return a
}

// Root returns the element the area is rooted at.
func (a *Area) Root() Element {
	return a.root
}

// Chrome returns the area's presentation passthrough.
func (a *Area) Chrome() Chrome {
	return a.chrome
}

// onIncoming resolves a transfer targeting the area's root, in order:
// the configured FocusIn, the event context's remembered target inside
// this root, the first focusable descendant, and finally the root
// itself (by leaving Next untouched).
//
// Resolution of a nested area recurses through the store against this
// root's own subtree, not through the registry.
func (a *Area) onIncoming(ev *TransferEvent) {
	if ev.Next != a.root {
		return
	}
	s := a.m.store

	if a.focusIn != nil {
		if el := s.FindFocusable(a.root, a.focusIn); el != nil {
			ev.Next = el
			return
		}
	}

	if el := ev.ContextTarget(); el != nil && el != a.root && s.Contains(a.root, el) && s.Attached(el) {
		ev.Next = el
		return
	}

	if el := s.FindFocusable(a.root, nil); el != nil {
		ev.Next = el
	}
}

// Detach removes the area's record. Idempotent.
func (a *Area) Detach() {
	if a.detached {
		return
	}
	a.detached = true
	a.m.Remove(a, a.root)
}
