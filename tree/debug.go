package tree

import (
	"fmt"
	"io"
	"strings"
)

// SprintTree returns the node tree as an indented string for
// debugging.
func SprintTree(root *Node) string {
	var sb strings.Builder
	FprintTree(&sb, root)
	return sb.String()
}

// FprintTree writes the node tree to the given writer for debugging.
func FprintTree(w io.Writer, root *Node) {
	fprintTreeIndent(w, root, nil, 0)
}

// DebugString returns the store's tree with the active node marked.
func (s *Store) DebugString() string {
	var sb strings.Builder
	fprintTreeIndent(&sb, s.root, s.ActiveNode(), 0)
	return sb.String()
}

func fprintTreeIndent(w io.Writer, n *Node, active *Node, depth int) {
	indent := strings.Repeat("  ", depth)

	line := indent + n.tag
	if n.id != "" {
		line += "#" + n.id
	}
	for _, c := range n.classes {
		line += "." + c
	}
	if n.focusable {
		line += " focusable"
	}
	if n == active {
		line += " active"
	}
	fmt.Fprintln(w, line)

	for _, child := range n.children {
		fprintTreeIndent(w, child, active, depth+1)
	}
}
