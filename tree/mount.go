package tree

import (
	"strings"

	"github.com/germtb/gox"
)

// Mount builds an identity tree from a gox vnode declaration.
// Functional components are expanded, fragments are inlined into
// their parent, and text nodes become inert "text" leaves.
//
// Recognized props: "id" (string), "class" (space-separated string),
// "focusable" (bool, overriding the tag default).
//
// Example:
//
//	root := tree.Mount(gox.Element("box", nil,
//	    gox.Element("button", gox.Props{"class": "ok"}),
//	    gox.Element("button", gox.Props{"class": "cancel"}),
//	))
func Mount(v gox.VNode) *Node {
	nodes := mountNodes(v)
	if len(nodes) == 1 {
		return nodes[0]
	}
	// A fragment at the top level gets a synthetic container.
	root := NewNode("box")
	root.Append(nodes...)
	return root
}

func mountNodes(v gox.VNode) []*Node {
	// Functional component: render and mount the result.
	if comp, ok := v.Type.(gox.Component); ok {
		props := gox.Props{}
		for k, val := range v.Props {
			props[k] = val
		}
		props["children"] = v.Children
		return mountNodes(comp(props))
	}

	tag, ok := v.Type.(string)
	if !ok {
		return nil
	}

	if tag == gox.FragmentNodeType {
		var out []*Node
		for _, child := range v.Children {
			out = append(out, mountNodes(child)...)
		}
		return out
	}

	if tag == gox.TextNodeType {
		n := NewNode("text")
		n.SetFocusable(false)
		return []*Node{n}
	}

	n := NewNode(tag)
	applyProps(n, v.Props)
	for _, child := range v.Children {
		n.Append(mountNodes(child)...)
	}
	return []*Node{n}
}

func applyProps(n *Node, props gox.Props) {
	if props == nil {
		return
	}
	if id, ok := props["id"].(string); ok && id != "" {
		n.SetID(id)
	}
	if class, ok := props["class"].(string); ok {
		n.AddClass(strings.Fields(class)...)
	}
	if focusable, ok := props["focusable"].(bool); ok {
		n.SetFocusable(focusable)
	}
}
