// Package htmlstore implements focal.Store over a parsed HTML
// document, with CSS selector queries via goquery. It exists for
// hosts whose element tree is real markup, and doubles as proof that
// the focus core is store-agnostic.
package htmlstore

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/germtb/focal"
)

// tabbableSelector matches elements that receive focus in tab order.
const tabbableSelector = "a[href], button:not([disabled]), input:not([disabled]), select:not([disabled]), textarea:not([disabled]), [tabindex]"

// Store tracks the active element of one parsed document.
type Store struct {
	doc    *goquery.Document
	root   *html.Node
	active *html.Node
}

// Compile-time interface check.
var _ focal.Store = (*Store)(nil)

// New parses HTML from r and returns a store over it with nothing
// focused.
func New(r io.Reader) (*Store, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return FromDocument(doc), nil
}

// FromDocument wraps an already parsed document.
func FromDocument(doc *goquery.Document) *Store {
	return &Store{
		doc:  doc,
		root: doc.Selection.Get(0),
	}
}

// Document returns the underlying goquery document.
func (s *Store) Document() *goquery.Document {
	return s.doc
}

// Query returns the first element matching a CSS selector anywhere in
// the document, or nil.
func (s *Store) Query(selector string) *html.Node {
	sel := s.doc.Find(selector)
	if sel.Length() == 0 {
		return nil
	}
	return sel.Get(0)
}

// ActiveNode returns the active element, or nil. An element that has
// been removed from the document is no longer active.
func (s *Store) ActiveNode() *html.Node {
	if s.active != nil && !attachedTo(s.root, s.active) {
		s.active = nil
	}
	return s.active
}

// Blur clears the active element.
func (s *Store) Blur() {
	s.active = nil
}

// ActiveElement implements focal.Store.
func (s *Store) ActiveElement() focal.Element {
	if n := s.ActiveNode(); n != nil {
		return n
	}
	return nil
}

// FindFocusable implements focal.Store. The query may be a CSS
// selector string, an *html.Node, or nil for the first tabbable
// descendant.
func (s *Store) FindFocusable(root focal.Element, query any) focal.Element {
	rootNode := asNode(root)
	if rootNode == nil {
		return nil
	}

	switch q := query.(type) {
	case nil:
		if n := s.findWithin(rootNode, tabbableSelector); n != nil {
			return n
		}
	case string:
		if n := s.findWithin(rootNode, q); n != nil {
			return n
		}
	case *html.Node:
		if q != nil && contains(rootNode, q) {
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
	return contains(rootNode, candidateNode)
}

// Attached implements focal.Store.
func (s *Store) Attached(el focal.Element) bool {
	n := asNode(el)
	return n != nil && attachedTo(s.root, n)
}

// Focus implements focal.Store.
func (s *Store) Focus(el focal.Element) {
	if n := asNode(el); n != nil {
		s.active = n
	}
}

// findWithin returns the first element matching selector strictly
// below root.
func (s *Store) findWithin(root *html.Node, selector string) *html.Node {
	var sel *goquery.Selection
	if root == s.root {
		sel = s.doc.Find(selector)
	} else {
		sel = s.doc.FindNodes(root).Find(selector)
	}
	for _, n := range sel.Nodes {
		if n.Type == html.ElementNode {
			return n
		}
	}
	return nil
}

func asNode(el focal.Element) *html.Node {
	n, ok := el.(*html.Node)
	if !ok {
		return nil
	}
	return n
}

// contains reports whether candidate is root or a descendant of root.
func contains(root, candidate *html.Node) bool {
	for n := candidate; n != nil; n = n.Parent {
		if n == root {
			return true
		}
	}
	return false
}

// attachedTo reports whether n still hangs off the document root.
func attachedTo(root, n *html.Node) bool {
	return contains(root, n)
}

// Detach removes an element from the document, the way a host would
// tear down part of its UI.
func Detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Tabbable reports whether a single element would appear in tab
// order.
func Tabbable(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if _, ok := attr(n, "tabindex"); ok {
		return true
	}
	switch strings.ToLower(n.Data) {
	case "a":
		_, ok := attr(n, "href")
		return ok
	case "button", "input", "select", "textarea":
		_, disabled := attr(n, "disabled")
		return !disabled
	}
	return false
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
