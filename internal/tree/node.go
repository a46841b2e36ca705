package tree

// PlaceholderKind distinguishes the synthetic children injected by Decorate.
type PlaceholderKind string

const (
	// PlaceholderNone marks a real data node.
	PlaceholderNone PlaceholderKind = ""
	// PlaceholderLoading marks a synthetic child for a node whose fetch is in flight.
	PlaceholderLoading PlaceholderKind = "loading"
	// PlaceholderError marks a synthetic child carrying a fetch error message.
	PlaceholderError PlaceholderKind = "error"
	// PlaceholderPending marks a synthetic child for a node that advertises
	// children but has not been expanded yet.
	PlaceholderPending PlaceholderKind = "pending"
)

// Node is a single entry in the hierarchical data set.
//
// Children carries the load state in addition to the data: a nil slice means
// "not yet loaded", while an empty non-nil slice means "loaded, no children".
// The children field therefore marshals to JSON null vs. [] and deliberately
// does not use omitempty.
type Node struct {
	// ID is unique across the whole tree.
	ID string `json:"id"`

	// Label is the display string. Opaque to the controller.
	Label string `json:"label"`

	// Children is the ordered child list. nil = not yet loaded.
	Children []Node `json:"children"`

	// ChildrenCount is an optional hint of how many children exist,
	// available before any fetch occurs. nil = unknown.
	ChildrenCount *int `json:"children_count,omitempty"`

	// Placeholder is set only on synthetic nodes produced by Decorate.
	Placeholder PlaceholderKind `json:"placeholder,omitempty"`
}

// Loaded reports whether the node's children have been fetched.
func (n Node) Loaded() bool {
	return n.Children != nil
}

// IsPlaceholder reports whether the node is a synthetic decoration node.
func (n Node) IsPlaceholder() bool {
	return n.Placeholder != PlaceholderNone
}

// CountHint returns the ChildrenCount hint and whether one is present.
func (n Node) CountHint() (int, bool) {
	if n.ChildrenCount == nil {
		return 0, false
	}
	return *n.ChildrenCount, true
}

// Count returns a *int for use as a ChildrenCount hint. Convenience for
// building trees in providers and tests.
func Count(n int) *int {
	return &n
}
