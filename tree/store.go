package tree

import (
	"github.com/germtb/focal"
)

// Store implements focal.Store over a mounted node tree. It tracks
// the active node the way a document tracks its active element:
// focusing a node makes it active, and a node that leaves the tree
// stops being active.
type Store struct {
	root   *Node
	active *Node
}

// Compile-time interface check.
var _ focal.Store = (*Store)(nil)

// NewStore creates a store rooted at root with nothing focused.
func NewStore(root *Node) *Store {
	return &Store{root: root}
}

// Root returns the tree root.
func (s *Store) Root() *Node {
	return s.root
}

// ActiveNode returns the active node, or nil. A node that has been
// detached from the tree is no longer active.
func (s *Store) ActiveNode() *Node {
	if s.active != nil && !s.root.Contains(s.active) {
		s.active = nil
	}
	return s.active
}

// FocusNode sets the active node.
func (s *Store) FocusNode(n *Node) {
	s.active = n
}

// Blur clears the active node.
func (s *Store) Blur() {
	s.active = nil
}

// NextFocusable returns the focusable node following after in
// depth-first order, wrapping around. With a nil after it returns the
// first focusable node. Returns nil when the tree has none.
func (s *Store) NextFocusable(after *Node) *Node {
	var order []*Node
	s.root.walk(func(n *Node) bool {
		if n.focusable {
			order = append(order, n)
		}
		return true
	})
	if len(order) == 0 {
		return nil
	}
	if after == nil {
		return order[0]
	}
	for i, n := range order {
		if n == after {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}

// PrevFocusable is NextFocusable in reverse document order.
func (s *Store) PrevFocusable(before *Node) *Node {
	var order []*Node
	s.root.walk(func(n *Node) bool {
		if n.focusable {
			order = append(order, n)
		}
		return true
	})
	if len(order) == 0 {
		return nil
	}
	if before == nil {
		return order[len(order)-1]
	}
	for i, n := range order {
		if n == before {
			return order[(i-1+len(order))%len(order)]
		}
	}
	return order[len(order)-1]
}

// ActiveElement implements focal.Store.
func (s *Store) ActiveElement() focal.Element {
	if n := s.ActiveNode(); n != nil {
		return n
	}
	return nil
}

// FindFocusable implements focal.Store. The query may be a selector
// string ("#id", ".class", tag), a *Node, or nil for the first
// focusable descendant in document order.
func (s *Store) FindFocusable(root focal.Element, query any) focal.Element {
	rootNode := asNode(root)
	if rootNode == nil {
		return nil
	}

	switch q := query.(type) {
	case nil:
		if n := firstFocusableUnder(rootNode); n != nil {
			return n
		}
	case string:
		for _, n := range rootNode.FindAll(q) {
			if n.focusable {
				return n
			}
		}
	case *Node:
		if q != nil && q.focusable && rootNode.Contains(q) {
			return q
		}
	}
	return nil
}

// Contains implements focal.Store.
func (s *Store) Contains(root, candidate focal.Element) bool {
	rootNode, candidateNode := asNode(root), asNode(candidate)
	if rootNode == nil || candidateNode == nil {
		return false
	}
	return rootNode.Contains(candidateNode)
}

// Attached implements focal.Store.
func (s *Store) Attached(el focal.Element) bool {
	n := asNode(el)
	return n != nil && s.root.Contains(n)
}

// Focus implements focal.Store.
func (s *Store) Focus(el focal.Element) {
	if n := asNode(el); n != nil {
		s.FocusNode(n)
	}
}

func asNode(el focal.Element) *Node {
	n, ok := el.(*Node)
	if !ok {
		return nil
	}
	return n
}

func firstFocusableUnder(root *Node) *Node {
	var found *Node
	for _, child := range root.children {
		child.walk(func(n *Node) bool {
			if n.focusable {
				found = n
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}
	return nil
}
