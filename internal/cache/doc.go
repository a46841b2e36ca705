// Package cache provides an in-memory key/value store with per-entry TTL
// expiration.
//
// Entries are checked lazily: Get and Has evict an expired entry before
// reporting absence, so no background sweeper is required for correctness.
// Cleanup proactively evicts everything expired and exists purely as a
// maintenance operation. The store never returns errors — absence is a
// normal outcome, reported as a boolean.
//
// Thread-safe for concurrent access.
package cache
