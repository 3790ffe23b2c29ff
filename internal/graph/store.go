// Package graph stores the dependency structure between the next steps
// of developed ideas: which step must happen before which. Diagrams are
// rendered once, but ordering queries run against this store.
package graph

import (
	"context"
	"io"
)

// Store is the interface for the step graph backend.
// Implementations: KuzuStore (production, cgo), MemoryStore (default).
type Store interface {
	io.Closer

	// Schema setup, called once before any data is inserted.
	InitSchema(ctx context.Context) error

	// Write operations.
	AddIdea(ctx context.Context, node IdeaNode) error
	AddStep(ctx context.Context, node StepNode) error
	AddDependency(ctx context.Context, edge DependencyEdge) error

	// Read operations.
	GetIdea(ctx context.Context, id int64) (*IdeaNode, error)
	Steps(ctx context.Context, ideaID int64) ([]StepNode, error)
	Dependencies(ctx context.Context, ideaID int64) ([]DependencyEdge, error)

	// Traversal.
	Chains(ctx context.Context, ideaID int64, label string, direction Direction, maxDepth int) ([]StepChain, error)
	Order(ctx context.Context, ideaID int64) ([]string, error)

	// Stats.
	Stats(ctx context.Context) (*Stats, error)
}

// Direction controls dependency traversal direction.
type Direction string

const (
	DirectionUpstream   Direction = "upstream"   // what must happen before this step?
	DirectionDownstream Direction = "downstream" // what does this step unblock?
)

// Record writes an idea with its steps and dependency edges in one pass.
// Steps are derived from the edge endpoints, deduplicated in
// first-appearance order.
func Record(ctx context.Context, store Store, idea IdeaNode, edges []DependencyEdge) error {
	if err := store.AddIdea(ctx, idea); err != nil {
		return err
	}

	seen := make(map[string]bool)
	for _, e := range edges {
		for _, label := range []string{e.From, e.To} {
			if seen[label] {
				continue
			}
			seen[label] = true
			if err := store.AddStep(ctx, StepNode{IdeaID: idea.ID, Label: label}); err != nil {
				return err
			}
		}
	}

	for _, e := range edges {
		e.IdeaID = idea.ID
		if err := store.AddDependency(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
