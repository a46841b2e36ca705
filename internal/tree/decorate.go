package tree

// DecorationState is the per-node state Decorate consults when injecting
// placeholders. Loading is the set of node IDs with a fetch in flight;
// Errors maps node IDs to the latest fetch error message.
type DecorationState struct {
	Loading map[string]struct{}
	Errors  map[string]string
}

// Labels used on synthetic placeholder children. Presentation may restyle
// them but never needs to special-case an undecorated tree.
const (
	loadingLabel = "Loading..."
	pendingLabel = "..."
)

// Decorate returns a copy of the forest in which every node that is loading,
// errored, or still unexpanded-with-known-children gains a single synthetic
// placeholder child. Precedence per node: loading, then error, then pending
// (a non-zero ChildrenCount hint with no loaded children). Real children are
// preserved untouched; the input forest is never modified.
func Decorate(nodes []Node, state DecorationState) []Node {
	if len(nodes) == 0 {
		return nodes
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n
		if ph, ok := placeholderFor(n, state); ok {
			out[i].Children = []Node{ph}
			continue
		}
		out[i].Children = Decorate(n.Children, state)
	}
	return out
}

func placeholderFor(n Node, state DecorationState) (Node, bool) {
	if _, loading := state.Loading[n.ID]; loading {
		return Node{
			ID:          n.ID + "/placeholder",
			Label:       loadingLabel,
			Placeholder: PlaceholderLoading,
		}, true
	}
	if msg, errored := state.Errors[n.ID]; errored {
		return Node{
			ID:          n.ID + "/placeholder",
			Label:       msg,
			Placeholder: PlaceholderError,
		}, true
	}
	if hint, ok := n.CountHint(); ok && hint > 0 && !n.Loaded() {
		return Node{
			ID:          n.ID + "/placeholder",
			Label:       pendingLabel,
			Placeholder: PlaceholderPending,
		}, true
	}
	return Node{}, false
}
