package provider

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rshade/lazytree/internal/tree"
)

// Static serves a fixed parent-id to children mapping with optional
// simulated latency and per-id failure injection. Used by the demo mode and
// by tests that need a deterministic remote.
type Static struct {
	mu       sync.Mutex
	children map[string][]tree.Node
	latency  time.Duration
	failOn   map[string]error
}

// StaticOption configures a Static provider.
type StaticOption func(*Static)

// WithLatency makes every ListChildren call sleep for d before answering,
// so loading placeholders are visible in the demo.
func WithLatency(d time.Duration) StaticOption {
	return func(s *Static) { s.latency = d }
}

// FailOn makes ListChildren for parentID fail with err until cleared via
// Recover. Simulates a flaky remote for retry flows.
func FailOn(parentID string, err error) StaticOption {
	return func(s *Static) { s.failOn[parentID] = err }
}

// NewStatic creates a static provider over the given mapping. The empty key
// holds the top-level nodes.
func NewStatic(children map[string][]tree.Node, opts ...StaticOption) *Static {
	s := &Static{
		children: children,
		failOn:   make(map[string]error),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListChildren returns the configured children for parentID, honoring
// context cancellation during the simulated latency.
func (s *Static) ListChildren(ctx context.Context, parentID string) ([]tree.Node, error) {
	s.mu.Lock()
	latency := s.latency
	failErr := s.failOn[parentID]
	kids := s.children[parentID]
	s.mu.Unlock()

	if latency > 0 {
		select {
		case <-time.After(latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if failErr != nil {
		return nil, fmt.Errorf("list children of %q: %w", parentID, failErr)
	}

	out := make([]tree.Node, len(kids))
	copy(out, kids)
	return out, nil
}

// ChildrenCount reports the node's hint when present, otherwise the size of
// the configured child list.
func (s *Static) ChildrenCount(n tree.Node) int {
	if hint, ok := n.CountHint(); ok {
		return hint
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.children[n.ID])
}

// Recover clears a failure injected for parentID, so the next fetch succeeds.
func (s *Static) Recover(parentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failOn, parentID)
}

// Demo returns a provider over a small fixed hierarchy with enough latency
// to make loading placeholders visible, plus one node that fails on fetch to
// demonstrate the error/retry path.
func Demo() *Static {
	return NewStatic(demoChildren(),
		WithLatency(600*time.Millisecond),
		FailOn("regions/eu", errors.New("upstream timed out")),
	)
}

func demoChildren() map[string][]tree.Node {
	return map[string][]tree.Node{
		"": {
			{ID: "regions", Label: "Regions", ChildrenCount: tree.Count(3)},
			{ID: "services", Label: "Services", ChildrenCount: tree.Count(2)},
			{ID: "archive", Label: "Archive", ChildrenCount: tree.Count(0)},
		},
		"regions": {
			{ID: "regions/us", Label: "us-east", ChildrenCount: tree.Count(2)},
			{ID: "regions/eu", Label: "eu-west", ChildrenCount: tree.Count(2)},
			{ID: "regions/ap", Label: "ap-south", ChildrenCount: tree.Count(1)},
		},
		"regions/us": {
			{ID: "regions/us/api", Label: "api-gateway", ChildrenCount: tree.Count(0)},
			{ID: "regions/us/db", Label: "postgres-primary", ChildrenCount: tree.Count(0)},
		},
		"regions/eu": {
			{ID: "regions/eu/api", Label: "api-gateway", ChildrenCount: tree.Count(0)},
			{ID: "regions/eu/db", Label: "postgres-replica", ChildrenCount: tree.Count(0)},
		},
		"regions/ap": {
			{ID: "regions/ap/edge", Label: "edge-cache", ChildrenCount: tree.Count(0)},
		},
		"services": {
			{ID: "services/billing", Label: "billing", ChildrenCount: tree.Count(2)},
			{ID: "services/auth", Label: "auth", ChildrenCount: tree.Count(0)},
		},
		"services/billing": {
			{ID: "services/billing/worker", Label: "invoice-worker", ChildrenCount: tree.Count(0)},
			{ID: "services/billing/ledger", Label: "ledger", ChildrenCount: tree.Count(0)},
		},
	}
}
