//go:build !cgo

package main

import "github.com/dusk-indust/ideate/internal/graph"

// newStepGraph falls back to the in-memory step graph when cgo (and
// with it the KuzuDB driver) is unavailable.
func newStepGraph(_ string) (graph.Store, error) {
	return graph.NewMemoryStore(), nil
}
