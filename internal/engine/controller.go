package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/rshade/lazytree/internal/cache"
	"github.com/rshade/lazytree/internal/tree"
)

// DefaultStaleWindow is how long a successful fetch stays fresh at the
// expansion-decision layer. Coarser than the cache TTL and tracked
// separately per node.
const DefaultStaleWindow = 30 * time.Second

// Controller is the lazy tree data controller. All state it owns — cache,
// loading set, error map, fetch timestamps, snapshot — is mutated only in
// response to its own operations; the snapshot is replaced wholesale on
// update, never mutated in place.
//
// Safe for concurrent use. Fetches for different node ids may be in flight
// at the same time; fetches for the same id are collapsed into one.
type Controller struct {
	provider Provider
	cache    *cache.Store[[]tree.Node]
	logger   zerolog.Logger

	staleWindow time.Duration
	now         func() time.Time

	mu        sync.Mutex
	snapshot  []tree.Node
	loading   map[string]struct{}
	errors    map[string]string
	fetchedAt map[string]time.Time

	flights singleflight.Group
}

// Option configures a Controller.
type Option func(*Controller)

// WithCache supplies the cache store. When omitted the controller constructs
// a private default so it works out of the box; tests inject an observable
// store through this option.
func WithCache(c *cache.Store[[]tree.Node]) Option {
	return func(ctl *Controller) { ctl.cache = c }
}

// WithStaleWindow overrides the stale window used by HandleExpansion.
func WithStaleWindow(d time.Duration) Option {
	return func(ctl *Controller) { ctl.staleWindow = d }
}

// WithLogger supplies the structured logger.
func WithLogger(l zerolog.Logger) Option {
	return func(ctl *Controller) { ctl.logger = l }
}

// WithClock replaces the time source. Tests use this to control staleness.
func WithClock(now func() time.Time) Option {
	return func(ctl *Controller) { ctl.now = now }
}

// NewController creates a controller for the given provider. A nil provider
// is permitted so the controller remains usable with an eagerly-supplied
// static snapshot (see SetSnapshot); loads then warn and no-op.
func NewController(provider Provider, opts ...Option) *Controller {
	ctl := &Controller{
		provider:    provider,
		logger:      zerolog.Nop(),
		staleWindow: DefaultStaleWindow,
		now:         time.Now,
		loading:     make(map[string]struct{}),
		errors:      make(map[string]string),
		fetchedAt:   make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(ctl)
	}
	if ctl.cache == nil {
		ctl.cache = cache.NewStore[[]tree.Node](cache.DefaultTTL)
	}
	return ctl
}

// LoadChildren fetches the children of parentID and splices them into the
// snapshot. An empty parentID loads the top level. A fresh cache entry is
// spliced synchronously without setting a loading flag and without calling
// the provider.
//
// On fetch failure the error message is recorded against the node and the
// error is returned, so an initial-load caller can report it while
// expansion-driven callers rely on the error state alone. The snapshot is
// left untouched by a failure.
func (c *Controller) LoadChildren(ctx context.Context, parentID string) error {
	if c.provider == nil {
		c.logger.Warn().Str("parent_id", parentID).
			Msg("load requested with no provider configured")
		return nil
	}

	key := ItemsKey(parentID)

	c.mu.Lock()
	if children, ok := c.cache.Get(key); ok {
		c.spliceLocked(parentID, children)
		c.mu.Unlock()
		c.logger.Debug().Str("parent_id", parentID).Msg("children served from cache")
		return nil
	}
	if parentID != "" {
		c.loading[parentID] = struct{}{}
		delete(c.errors, parentID)
	}
	c.mu.Unlock()

	fetchID := ulid.Make().String()
	c.logger.Debug().Str("parent_id", parentID).Str("fetch_id", fetchID).
		Msg("fetching children")

	result, err, _ := c.flights.Do(key, func() (any, error) {
		return c.provider.ListChildren(ctx, parentID)
	})

	c.mu.Lock()
	defer c.mu.Unlock()

	if parentID != "" {
		delete(c.loading, parentID)
	}
	if err != nil {
		c.errors[stateKey(parentID)] = err.Error()
		c.logger.Error().Err(err).Str("parent_id", parentID).Str("fetch_id", fetchID).
			Msg("children fetch failed")
		return fmt.Errorf("load children of %q: %w", stateKey(parentID), err)
	}

	children, _ := result.([]tree.Node)

	// Cache write happens after the fetch resolves; overlapping resolutions
	// converge on last write wins.
	c.cache.Set(key, children)
	c.fetchedAt[stateKey(parentID)] = c.now()
	delete(c.errors, stateKey(parentID))
	c.spliceLocked(parentID, children)

	c.logger.Debug().Str("parent_id", parentID).Str("fetch_id", fetchID).
		Int("count", len(children)).Msg("children fetched")
	return nil
}

// Retry invalidates the cache entry for parentID and reloads. This is the
// only operation that forces a fetch past a fresh cache entry.
func (c *Controller) Retry(ctx context.Context, parentID string) error {
	c.cache.Delete(ItemsKey(parentID))
	return c.LoadChildren(ctx, parentID)
}

// HandleExpansion is called once per node the instant it transitions from
// collapsed to expanded, with the snapshot the presentation layer is
// rendering. It decides whether a fetch is warranted and issues at most one.
//
// No fetch is issued when the id is unknown (stale event ordering), when the
// provider reports zero children (leaves never load), when a fetch for the
// id is already in flight, or when the node is populated and fresh.
func (c *Controller) HandleExpansion(ctx context.Context, itemID string, snapshot []tree.Node) error {
	if c.provider == nil {
		c.logger.Warn().Str("item_id", itemID).
			Msg("expansion with no provider configured")
		return nil
	}

	node, ok := tree.FindByID(snapshot, itemID)
	if !ok {
		c.logger.Debug().Str("item_id", itemID).Msg("expansion of unknown id ignored")
		return nil
	}
	if c.provider.ChildrenCount(node) == 0 {
		return nil
	}

	c.mu.Lock()
	if _, inFlight := c.loading[itemID]; inFlight {
		// Already loading counts as non-stale until that fetch resolves.
		c.mu.Unlock()
		return nil
	}
	stale := c.staleLocked(itemID)
	if len(node.Children) == 0 || stale {
		if stale {
			// Drop the cache entry so the load below cannot serve stale data.
			c.cache.Delete(ItemsKey(itemID))
		}
		c.mu.Unlock()
		return c.LoadChildren(ctx, itemID)
	}
	c.mu.Unlock()
	return nil
}

// ClearCache drops every cache entry and resets the loading and error state.
//
// Fetch timestamps and the snapshot survive: previously loaded nodes keep
// their children visible, and the next expansion refetches a node only once
// its own fetch timestamp has passed the stale window. Cache clearing and
// timestamp staleness are independent axes.
func (c *Controller) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Clear()
	c.loading = make(map[string]struct{})
	c.errors = make(map[string]string)
}

// SetSnapshot replaces the snapshot with an eagerly-supplied tree. Intended
// for static data sets used without a provider.
func (c *Controller) SetSnapshot(nodes []tree.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = nodes
}

// Snapshot returns the current tree. The returned forest is immutable by
// convention; callers must not modify it.
func (c *Controller) Snapshot() []tree.Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// Decorated returns the current snapshot with loading/error/pending
// placeholder children injected, ready for rendering.
func (c *Controller) Decorated() []tree.Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	return tree.Decorate(c.snapshot, tree.DecorationState{
		Loading: c.loading,
		Errors:  c.errors,
	})
}

// Loading returns a copy of the set of node ids with a fetch in flight.
func (c *Controller) Loading() map[string]struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]struct{}, len(c.loading))
	for id := range c.loading {
		out[id] = struct{}{}
	}
	return out
}

// IsLoading reports whether a fetch for id is in flight.
func (c *Controller) IsLoading(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.loading[id]
	return ok
}

// Errors returns a copy of the node-id to error-message mapping.
func (c *Controller) Errors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string, len(c.errors))
	for id, msg := range c.errors {
		out[id] = msg
	}
	return out
}

// Err returns the recorded fetch error message for id, if any.
func (c *Controller) Err(id string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg, ok := c.errors[id]
	return msg, ok
}

// staleLocked reports whether id's last successful fetch is absent or older
// than the stale window. Callers hold c.mu.
func (c *Controller) staleLocked(id string) bool {
	ts, ok := c.fetchedAt[id]
	if !ok {
		return true
	}
	return c.now().Sub(ts) > c.staleWindow
}

// spliceLocked merges a children list into the snapshot: wholesale root
// replacement for the top level, copy-on-write path replacement otherwise.
// A parent no longer present leaves the snapshot unchanged, which silently
// absorbs late-arriving results for removed nodes. Callers hold c.mu.
func (c *Controller) spliceLocked(parentID string, children []tree.Node) {
	if parentID == "" {
		c.snapshot = children
		return
	}
	c.snapshot = tree.ReplaceChildren(c.snapshot, parentID, children)
}
