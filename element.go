// Package focal provides directional and hierarchical keyboard-focus
// management for a tree of interactive elements.
//
// The package coordinates focus across registered regions: traps own
// focus exclusively while active (preventing tab-order escape and
// restoring the prior focus on detach), and areas passively redirect
// incoming focus to a preferred internal target. The element tree
// itself is supplied by the host through the Store interface; the
// tree and htmlstore subpackages provide ready-made implementations.
package focal

// Element identifies one node in the host's element tree. Values must
// be comparable (typically pointers); the manager matches elements by
// equality when keying records and resolving containment.
type Element = any

// Store is the capability a host supplies for querying its element
// tree and moving focus within it.
type Store interface {
	// ActiveElement returns the element that currently holds focus,
	// or nil if none does.
	ActiveElement() Element

	// FindFocusable returns the first focusable descendant of root
	// matching the query. The query may be a selector string, an
	// Element, or nil for the first focusable descendant in tab
	// order. Returns nil when nothing matches.
	FindFocusable(root Element, query any) Element

	// Contains reports whether candidate is root or a descendant of
	// root.
	Contains(root, candidate Element) bool

	// Attached reports whether el is still part of the live tree.
	Attached(el Element) bool

	// Focus moves focus to el with the host's standard semantics.
	Focus(el Element)
}

// firstFocusable resolves a focus target within root: the query when
// it matches, otherwise the first focusable descendant. Both steps may
// come up empty, in which case nil is returned and the caller picks
// its own fallback.
func firstFocusable(s Store, root Element, query any) Element {
	if query != nil {
		if el := s.FindFocusable(root, query); el != nil {
			return el
		}
	}
	return s.FindFocusable(root, nil)
}
