// Package engine implements the lazy tree data controller: the orchestration
// logic that decides when a node's children need fetching, merges
// asynchronous results into an immutable snapshot, tracks per-node
// loading/error state, and enforces cache freshness.
//
// The controller is rendering-agnostic. A presentation layer forwards
// expansion events into HandleExpansion and renders whatever Decorated
// returns; it never reaches into the controller's state directly.
//
// Per-node lifecycle: unloaded (nil children) -> loading -> loaded or
// errored. A loaded node becomes stale once its last successful fetch is
// older than the configured stale window, after which the next expansion
// refetches it. An errored node is refetched via Retry, which punches
// through the cache.
package engine
