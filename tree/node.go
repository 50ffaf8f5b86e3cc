// Package tree provides an in-memory element tree and a focal.Store
// over it. Trees are declared with gox vnodes and mounted into nodes
// with stable identity, which is what the focus manager keys its
// records on.
package tree

import (
	"strings"

	"github.com/google/uuid"
)

// Tags that receive focus by default, mirroring the usual interactive
// element types.
var focusableTags = map[string]bool{
	"button":   true,
	"input":    true,
	"select":   true,
	"textarea": true,
	"link":     true,
}

// Node is one element in a mounted tree. Nodes are compared by
// pointer identity.
type Node struct {
	id        string
	tag       string
	classes   []string
	focusable bool
	parent    *Node
	children  []*Node
}

// NewNode creates a detached node of the given tag. Interactive tags
// (button, input, select, textarea, link) are focusable by default.
// The node gets a generated id until SetID is called.
func NewNode(tag string) *Node {
	return &Node{
		id:        uuid.NewString(),
		tag:       tag,
		focusable: focusableTags[tag],
	}
}

// ID returns the node's id.
func (n *Node) ID() string {
	return n.id
}

// SetID replaces the node's id.
func (n *Node) SetID(id string) *Node {
	n.id = id
	return n
}

// Tag returns the node's tag.
func (n *Node) Tag() string {
	return n.tag
}

// Classes returns the node's class list.
func (n *Node) Classes() []string {
	return n.classes
}

// AddClass adds classes to the node.
func (n *Node) AddClass(classes ...string) *Node {
	n.classes = append(n.classes, classes...)
	return n
}

// HasClass reports whether the node carries the class.
func (n *Node) HasClass(class string) bool {
	for _, c := range n.classes {
		if c == class {
			return true
		}
	}
	return false
}

// Focusable reports whether the node can receive tab focus.
func (n *Node) Focusable() bool {
	return n.focusable
}

// SetFocusable overrides the tag default.
func (n *Node) SetFocusable(focusable bool) *Node {
	n.focusable = focusable
	return n
}

// Parent returns the node's parent, or nil for a detached or root
// node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's children.
func (n *Node) Children() []*Node {
	return n.children
}

// Append attaches children to the node. A child already attached
// elsewhere is moved.
func (n *Node) Append(children ...*Node) *Node {
	for _, child := range children {
		if child.parent != nil {
			child.Remove()
		}
		child.parent = n
		n.children = append(n.children, child)
	}
	return n
}

// Remove detaches the node from its parent. The subtree below it
// stays intact.
func (n *Node) Remove() {
	p := n.parent
	if p == nil {
		return
	}
	for i, child := range p.children {
		if child == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// Contains reports whether candidate is n or a descendant of n.
func (n *Node) Contains(candidate *Node) bool {
	for c := candidate; c != nil; c = c.parent {
		if c == n {
			return true
		}
	}
	return false
}

// Matches reports whether the node matches a simple selector:
// "#id", ".class", or a bare tag name.
func (n *Node) Matches(selector string) bool {
	switch {
	case selector == "":
		return false
	case strings.HasPrefix(selector, "#"):
		return n.id == selector[1:]
	case strings.HasPrefix(selector, "."):
		return n.HasClass(selector[1:])
	default:
		return n.tag == selector
	}
}

// Find returns the first descendant (depth-first, excluding n itself)
// matching the selector, or nil.
func (n *Node) Find(selector string) *Node {
	for _, child := range n.children {
		if child.Matches(selector) {
			return child
		}
		if found := child.Find(selector); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns all descendants matching the selector in
// depth-first order.
func (n *Node) FindAll(selector string) []*Node {
	var out []*Node
	for _, child := range n.children {
		if child.Matches(selector) {
			out = append(out, child)
		}
		out = append(out, child.FindAll(selector)...)
	}
	return out
}

// walk visits n and every descendant depth-first until fn returns
// false.
func (n *Node) walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, child := range n.children {
		if !child.walk(fn) {
			return false
		}
	}
	return true
}
