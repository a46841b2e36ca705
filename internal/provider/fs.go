package provider

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rshade/lazytree/internal/tree"
)

// ErrNotDirectory is returned when an FS provider is rooted at a non-directory.
var ErrNotDirectory = errors.New("root is not a directory")

// FS exposes a directory hierarchy as a lazily-loaded tree. Node ids are
// slash-separated paths relative to the root, so they stay stable across
// listings and double as cache-key material.
//
// Directories carry a ChildrenCount hint (their entry count) so empty
// directories behave as leaves; files are loaded leaves from the start.
type FS struct {
	root     string
	collator *collate.Collator
}

// NewFS creates a filesystem provider rooted at dir.
func NewFS(dir string) (*FS, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat root %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %q", ErrNotDirectory, dir)
	}
	return &FS{
		root:     dir,
		collator: collate.New(language.Und, collate.IgnoreCase),
	}, nil
}

// ListChildren lists the directory identified by parentID ("" = root),
// directories first, names in collation order.
func (p *FS) ListChildren(ctx context.Context, parentID string) ([]tree.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if parentID != "" && !filepath.IsLocal(filepath.FromSlash(parentID)) {
		return nil, fmt.Errorf("node id %q escapes the provider root", parentID)
	}

	dir := filepath.Join(p.root, filepath.FromSlash(parentID))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %q: %w", parentID, err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return p.collator.CompareString(entries[i].Name(), entries[j].Name()) < 0
	})

	nodes := make([]tree.Node, 0, len(entries))
	for _, e := range entries {
		id := path.Join(parentID, e.Name())
		n := tree.Node{ID: id, Label: e.Name()}
		if e.IsDir() {
			n.ChildrenCount = tree.Count(p.entryCount(filepath.Join(dir, e.Name())))
		} else {
			n.Children = []tree.Node{}
			n.ChildrenCount = tree.Count(0)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// ChildrenCount reports the node's hint when present. A directory without a
// hint is assumed loadable.
func (p *FS) ChildrenCount(n tree.Node) int {
	if hint, ok := n.CountHint(); ok {
		return hint
	}
	return 1
}

// entryCount returns the number of entries in dir, or 0 when the directory
// cannot be read (it then behaves as a leaf rather than erroring the parent
// listing).
func (p *FS) entryCount(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	return len(entries)
}
