// Package tui is the presentation layer for the lazy tree controller: a
// Bubble Tea tree browser that renders the decorated snapshot and forwards
// expansion events into the controller.
//
// The package never reaches into controller internals. It consumes exactly
// the exposed surface — the decorated snapshot and the four public
// operations — so the controller stays rendering-agnostic.
package tui
