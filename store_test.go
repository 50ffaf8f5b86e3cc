package focal

// fakeNode is a minimal element for exercising the manager without a
// real store.
type fakeNode struct {
	name      string
	focusable bool
	parent    *fakeNode
	children  []*fakeNode
}

func el(name string, children ...*fakeNode) *fakeNode {
	n := &fakeNode{name: name}
	for _, child := range children {
		child.parent = n
		n.children = append(n.children, child)
	}
	return n
}

func focusableEl(name string, children ...*fakeNode) *fakeNode {
	n := el(name, children...)
	n.focusable = true
	return n
}

func (n *fakeNode) contains(candidate *fakeNode) bool {
	for c := candidate; c != nil; c = c.parent {
		if c == n {
			return true
		}
	}
	return false
}

func (n *fakeNode) detach() {
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

func (n *fakeNode) find(name string) *fakeNode {
	for _, child := range n.children {
		if child.name == name {
			return child
		}
		if found := child.find(name); found != nil {
			return found
		}
	}
	return nil
}

type fakeStore struct {
	root   *fakeNode
	active *fakeNode
}

func newFakeStore(root *fakeNode) *fakeStore {
	return &fakeStore{root: root}
}

func (s *fakeStore) ActiveElement() Element {
	if s.active == nil || !s.root.contains(s.active) {
		return nil
	}
	return s.active
}

func (s *fakeStore) FindFocusable(root Element, query any) Element {
	rootNode, ok := root.(*fakeNode)
	if !ok {
		return nil
	}
	switch q := query.(type) {
	case nil:
		if n := firstFocusableFake(rootNode); n != nil {
			return n
		}
	case string:
		if n := rootNode.find(q); n != nil && n.focusable {
			return n
		}
	case *fakeNode:
		if q != nil && q.focusable && rootNode.contains(q) {
			return q
		}
	}
	return nil
}

func (s *fakeStore) Contains(root, candidate Element) bool {
	rootNode, ok1 := root.(*fakeNode)
	candidateNode, ok2 := candidate.(*fakeNode)
	return ok1 && ok2 && rootNode.contains(candidateNode)
}

func (s *fakeStore) Attached(e Element) bool {
	n, ok := e.(*fakeNode)
	return ok && s.root.contains(n)
}

func (s *fakeStore) Focus(e Element) {
	if n, ok := e.(*fakeNode); ok {
		s.active = n
	}
}

func firstFocusableFake(root *fakeNode) *fakeNode {
	for _, child := range root.children {
		if child.focusable {
			return child
		}
		if found := firstFocusableFake(child); found != nil {
			return found
		}
	}
	return nil
}
