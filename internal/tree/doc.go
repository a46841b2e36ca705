// Package tree provides the immutable node values and pure tree functions
// that back the lazy-loading controller.
//
// A snapshot is a forest ([]Node) because a root load returns an ordered
// sequence of top-level nodes. Snapshots are never mutated in place: every
// update function returns a new forest with fresh copies along the path to
// the changed node and structural sharing everywhere else, so a reader
// holding an older snapshot always observes a consistent tree.
package tree
