//go:build e2e

package e2e

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/ideate/internal/agent"
	"github.com/dusk-indust/ideate/internal/codescan"
	"github.com/dusk-indust/ideate/internal/domain"
	"github.com/dusk-indust/ideate/internal/export"
	"github.com/dusk-indust/ideate/internal/graph"
	"github.com/dusk-indust/ideate/internal/llm"
	"github.com/dusk-indust/ideate/internal/orchestrator"
	"github.com/dusk-indust/ideate/internal/store"
)

// scriptedClient answers each pipeline prompt by its shape, recording
// analysis prompts for later inspection.
type scriptedClient struct {
	classification  string
	keywords        string
	narrative       string
	steps           string
	edges           string
	analysisPrompts []string
}

var _ llm.Client = (*scriptedClient)(nil)

func (c *scriptedClient) Complete(_ context.Context, prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, "Classify the following concept"):
		return c.classification, nil
	case strings.Contains(prompt, "Extract 5 key concepts"):
		return c.keywords, nil
	case strings.Contains(prompt, "narrative analysis"):
		c.analysisPrompts = append(c.analysisPrompts, prompt)
		return c.narrative, nil
	case strings.Contains(prompt, "concrete steps"):
		return c.steps, nil
	case strings.Contains(prompt, "Map the dependencies"):
		return c.edges, nil
	}
	return "", nil
}

// newPipeline wires the full stack on a file-backed store in a temp
// directory and an in-memory step graph.
func newPipeline(t *testing.T, client *scriptedClient) (*orchestrator.Developer, *store.Store, graph.Store) {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "ideate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	registry := agent.NewRegistry(agent.Deps{
		Client:  client,
		Scanner: codescan.NewScanner(),
		ChatLog: st,
	})

	stepGraph := graph.NewMemoryStore()
	t.Cleanup(func() { stepGraph.Close() })

	developer := orchestrator.NewDeveloper(registry, orchestrator.NewClassifier(client), st, orchestrator.DefaultConfig())
	developer.StepGraph = stepGraph
	return developer, st, stepGraph
}

func TestPipeline_E2E_BusinessConcept(t *testing.T) {
	client := &scriptedClient{
		classification: "business",
		keywords:       "produce, delivery, subscription",
		narrative: `A quick summary of the subscription box potential.

The subscription model can work with local farms. Weekly boxes reduce churn risk.

What is the right price point per box. How many farms must sign on.

Comparable meal kit ventures crowd the space.

Differentiation can come from hyperlocal sourcing.`,
		steps: "validate demand\nbuild a pilot route\nlaunch citywide",
		edges: "validate demand -> build a pilot route\nbuild a pilot route -> launch citywide",
	}

	developer, st, stepGraph := newPipeline(t, client)
	ctx := context.Background()

	developed, err := developer.DevelopIdea(ctx, "subscription box for local produce")
	require.NoError(t, err)
	assert.Equal(t, domain.Business, developed.Idea.Domain)
	assert.Len(t, developed.Development.Suggestions, 2)
	assert.NotEmpty(t, developed.Development.NextStepsTree)

	// Persisted rows are readable back.
	history, err := st.IdeaHistory(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, developed.ID, history[0].ID)

	diagram, err := st.GetDiagram(ctx, developed.ID)
	require.NoError(t, err)
	require.NotNil(t, diagram)
	assert.Equal(t, developed.Development.NextStepsTree, diagram.ImageData)

	// The step graph orders the rendered steps.
	order, err := stepGraph.Order(ctx, developed.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"validate demand", "build a pilot route", "launch citywide"}, order)

	// Export bundles everything.
	out, err := export.ExportIdea(ctx, st, stepGraph, developed.ID)
	require.NoError(t, err)
	assert.Equal(t, developed.Idea.Concept, out.Idea.Concept)
	assert.Contains(t, out.Diagram, "graph TD")
	assert.Equal(t, order, out.StepOrder)
}

func TestPipeline_E2E_CodeConceptScansFixtures(t *testing.T) {
	model, err := os.ReadFile(filepath.Join("..", "..", "testdata", "fixtures", "go_project", "model.go"))
	require.NoError(t, err)
	service, err := os.ReadFile(filepath.Join("..", "..", "testdata", "fixtures", "go_project", "service.go"))
	require.NoError(t, err)

	concept := "Refactor this user service layer\n```go\n" + string(model) + "\n```\n```go\n" + string(service) + "\n```"

	client := &scriptedClient{
		classification: "code",
		keywords:       "refactor, service layer",
		narrative: `A quick summary of the refactor.

The interface design should separate storage from business logic. A repository pattern keeps components testable.

Which architecture pattern fits the existing code base. How should the user component evolve.

Related systems use layered architecture patterns.

The implementation could adopt generics for the repository interface.`,
		steps: `Extract interfaces: pull the storage contract out of the service layer

Add tests: cover the service with repository fakes

Migrate callers: switch construction to the new interfaces`,
		edges: "pull the storage contract out of the service layer -> cover the service with repository fakes",
	}

	developer, _, _ := newPipeline(t, client)

	developed, err := developer.DevelopIdea(context.Background(), concept)
	require.NoError(t, err)
	assert.Equal(t, domain.Code, developed.Idea.Domain)

	// Block-style steps keep the text after each label.
	assert.Equal(t, []string{
		"pull the storage contract out of the service layer",
		"cover the service with repository fakes",
		"switch construction to the new interfaces",
	}, developed.Development.ImplementationSteps)

	// The scanner fed fixture declarations into the analysis prompt.
	require.Len(t, client.analysisPrompts, 1)
	for _, decl := range []string{"User", "Repository", "UserService", "NewUserService"} {
		assert.Contains(t, client.analysisPrompts[0], decl)
	}
}
