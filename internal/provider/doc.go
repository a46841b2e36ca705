// Package provider contains fetch-provider implementations for the lazy
// tree controller: a static in-memory provider with latency and failure
// injection (demo and test data), and a filesystem provider that exposes a
// directory hierarchy as a lazily-loaded tree.
package provider
