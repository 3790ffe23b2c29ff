// Package export renders developed ideas into shareable formats: a
// JSON document bundling the idea with its diagram and step graph, and
// a standalone Mermaid rendering of the step graph.
package export

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/dusk-indust/ideate/internal/graph"
	"github.com/dusk-indust/ideate/internal/render"
	"github.com/dusk-indust/ideate/internal/store"
)

// IdeaSource is the read surface the exporter needs from the store.
type IdeaSource interface {
	GetIdea(ctx context.Context, id int64) (*store.IdeaRecord, error)
	GetDiagram(ctx context.Context, ideaID int64) (*store.Diagram, error)
}

// IdeaExport is the top-level JSON export structure.
type IdeaExport struct {
	ExportedAt string                 `json:"exportedAt"`
	Idea       store.IdeaRecord       `json:"idea"`
	Diagram    string                 `json:"diagram,omitempty"` // decoded Mermaid text
	StepOrder  []string               `json:"stepOrder,omitempty"`
	StepEdges  []graph.DependencyEdge `json:"stepEdges,omitempty"`
}

// ExportIdea assembles an IdeaExport for one idea. The diagram and
// step graph sections are filled in when available; a missing idea is
// an error.
func ExportIdea(ctx context.Context, ideas IdeaSource, stepGraph graph.Store, ideaID int64) (*IdeaExport, error) {
	rec, err := ideas.GetIdea(ctx, ideaID)
	if err != nil {
		return nil, fmt.Errorf("export: get idea: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("export: idea %d not found", ideaID)
	}

	out := &IdeaExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Idea:       *rec,
	}

	diagram, err := ideas.GetDiagram(ctx, ideaID)
	if err != nil {
		return nil, fmt.Errorf("export: get diagram: %w", err)
	}
	if diagram != nil {
		raw, err := base64.StdEncoding.DecodeString(diagram.ImageData)
		if err == nil {
			out.Diagram = string(raw)
		}
	}

	if stepGraph != nil {
		order, err := stepGraph.Order(ctx, ideaID)
		if err != nil {
			return nil, fmt.Errorf("export: step order: %w", err)
		}
		edges, err := stepGraph.Dependencies(ctx, ideaID)
		if err != nil {
			return nil, fmt.Errorf("export: step edges: %w", err)
		}
		out.StepOrder = order
		out.StepEdges = edges
	}

	return out, nil
}

// StepGraphMermaid renders an idea's step graph as a Mermaid document.
// Ideas without recorded dependencies yield an empty string.
func StepGraphMermaid(ctx context.Context, stepGraph graph.Store, ideaID int64) (string, error) {
	deps, err := stepGraph.Dependencies(ctx, ideaID)
	if err != nil {
		return "", fmt.Errorf("export: step edges: %w", err)
	}
	if len(deps) == 0 {
		return "", nil
	}

	edges := make([]render.StepEdge, len(deps))
	for i, d := range deps {
		edges[i] = render.StepEdge{From: d.From, To: d.To}
	}
	return render.Mermaid(edges), nil
}
