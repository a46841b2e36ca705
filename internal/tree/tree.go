package tree

// FindByID searches the forest depth-first and returns the first node whose
// ID matches. The boolean is false when no node matches anywhere in the
// forest, including nested children.
func FindByID(nodes []Node, id string) (Node, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
		if found, ok := FindByID(n.Children, id); ok {
			return found, ok
		}
	}
	return Node{}, false
}

// ReplaceChildren returns a new forest in which the node matching parentID
// has its Children replaced by children. Every ancestor on the path to that
// node is a fresh copy; untouched subtrees are shared with the input. When
// parentID is not present the input forest is returned unchanged, same
// backing storage, so callers can detect "not found" by comparing lengths
// only if they care — absence is not an error.
func ReplaceChildren(nodes []Node, parentID string, children []Node) []Node {
	out, _ := replaceChildren(nodes, parentID, children)
	return out
}

func replaceChildren(nodes []Node, parentID string, children []Node) ([]Node, bool) {
	for i, n := range nodes {
		if n.ID == parentID {
			out := make([]Node, len(nodes))
			copy(out, nodes)
			out[i].Children = children
			return out, true
		}
		if updated, ok := replaceChildren(n.Children, parentID, children); ok {
			out := make([]Node, len(nodes))
			copy(out, nodes)
			out[i].Children = updated
			return out, true
		}
	}
	return nodes, false
}

// Flatten returns all nodes of the forest in depth-first, parent-before-children
// order. Intended for observability and list-style rendering, not for the
// controller's decision logic.
func Flatten(nodes []Node) []Node {
	var out []Node
	for _, n := range nodes {
		out = append(out, n)
		out = append(out, Flatten(n.Children)...)
	}
	return out
}

// AncestorPath returns the IDs on the path from a root to the immediate
// parent of targetID, in root-first order. The result is empty when targetID
// is a top-level node or is not present in the forest.
func AncestorPath(nodes []Node, targetID string) []string {
	for _, n := range nodes {
		if n.ID == targetID {
			return []string{}
		}
		if sub := AncestorPath(n.Children, targetID); sub != nil {
			return append([]string{n.ID}, sub...)
		}
	}
	return nil
}
