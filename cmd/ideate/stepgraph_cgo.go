//go:build cgo

package main

import (
	"path/filepath"

	"github.com/dusk-indust/ideate/internal/graph"
)

// newStepGraph opens a file-backed KuzuDB step graph under the data
// directory so step dependencies survive restarts.
func newStepGraph(dataDir string) (graph.Store, error) {
	return graph.NewKuzuFileStore(filepath.Join(dataDir, "stepgraph"))
}
