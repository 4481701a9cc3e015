package patterncfg

import (
	"fmt"
	"sort"
	"strings"
)

// Dump renders a decision graph as Graphviz dot source for debugging,
// mirroring the teacher's AST's own Accept(Visitor) traversal shape but
// specialized to the three node kinds here rather than a general visitor
// interface — a decision graph only ever has decision, leaf and fail
// vertices, so a shared-state walker is simpler than a full
// double-dispatch Visitor.
func Dump(root *Node) string {
	var b strings.Builder
	b.WriteString("digraph decision {\n")
	ids := map[*Node]int{}
	next := 0
	var walk func(n *Node) int
	walk = func(n *Node) int {
		if id, ok := ids[n]; ok {
			return id
		}
		id := next
		next++
		ids[n] = id
		switch n.Kind {
		case NodeDecision:
			fmt.Fprintf(&b, "  n%d [label=%q];\n", id, fmt.Sprintf("test %v", n.Path))
			for _, e := range n.Edges {
				childID := walk(e.Next)
				fmt.Fprintf(&b, "  n%d -> n%d [label=%q];\n", id, childID, e.Ctor)
			}
			if n.Default != nil {
				childID := walk(n.Default)
				fmt.Fprintf(&b, "  n%d -> n%d [label=%q];\n", id, childID, "_")
			}
		case NodeLeaf:
			fmt.Fprintf(&b, "  n%d [shape=box label=%q];\n", id, leafLabel(n))
			if n.GuardFallback != nil {
				childID := walk(n.GuardFallback)
				fmt.Fprintf(&b, "  n%d -> n%d [label=%q];\n", id, childID, "guard_fail")
			}
		case NodeFail:
			fmt.Fprintf(&b, "  n%d [shape=box style=dashed label=%q];\n", id, "fail")
		}
		return id
	}
	walk(root)
	b.WriteString("}\n")
	return b.String()
}

func leafLabel(n *Node) string {
	names := make([]string, 0, len(n.Bindings))
	for name := range n.Bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%v", name, n.Bindings[name])
	}
	label := fmt.Sprintf("body %d", n.Body)
	if len(parts) > 0 {
		label += " [" + strings.Join(parts, ", ") + "]"
	}
	if n.HasGuard {
		label += " (guarded)"
	}
	return label
}
