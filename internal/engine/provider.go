package engine

import (
	"context"

	"github.com/rshade/lazytree/internal/tree"
)

// Provider supplies node children on demand. It is the controller's only
// source of data.
//
// Implementations may block in ListChildren; the controller calls it with
// the caller's context and no timeout of its own. A returned empty slice is
// a legitimate "no children" result, not an error.
type Provider interface {
	// ListChildren returns the ordered children of parentID. An empty
	// parentID requests the top-level nodes.
	ListChildren(ctx context.Context, parentID string) ([]tree.Node, error)

	// ChildrenCount reports how many children a node has without fetching
	// them. Implementations typically consult the node's ChildrenCount hint.
	// A zero return means the node is a leaf and is never fetched.
	ChildrenCount(node tree.Node) int
}
