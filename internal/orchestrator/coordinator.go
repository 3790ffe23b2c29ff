package orchestrator

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dusk-indust/ideate/internal/agent"
	"github.com/dusk-indust/ideate/internal/domain"
)

// Coordinator runs one primary agent and any number of supporting
// agents over the same idea, then merges their responses. The merge is
// asymmetric: related concepts, the diagram, and the concept image
// always come from the primary.
type Coordinator struct {
	primary    agent.Agent
	supporting []agent.Agent
	cfg        Config
}

// NewCoordinator builds a Coordinator from registry agents. Each call
// returns a fresh Coordinator; the underlying agents are the registry's
// shared instances.
func NewCoordinator(registry *agent.Registry, primary domain.Type, supporting []domain.Type, cfg Config) (*Coordinator, error) {
	primaryAgent, err := registry.Create(primary)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: primary agent: %w", err)
	}

	supportingAgents := make([]agent.Agent, 0, len(supporting))
	for _, d := range supporting {
		ag, err := registry.Create(d)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: supporting agent %s: %w", d, err)
		}
		supportingAgents = append(supportingAgents, ag)
	}

	return &Coordinator{
		primary:    primaryAgent,
		supporting: supportingAgents,
		cfg:        cfg,
	}, nil
}

// ProcessIdea runs the primary agent first, then the supporting agents
// concurrently. Any agent failure aborts the whole pass. Supporting
// results are slotted by index so the merge order is deterministic
// regardless of completion order.
func (c *Coordinator) ProcessIdea(ctx context.Context, idea *domain.Idea) (*domain.Response, error) {
	primaryResp, err := c.primary.ProcessIdea(ctx, idea)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: primary %s: %w", c.primary.Domain(), err)
	}

	supportingResps := make([]*domain.Response, len(c.supporting))
	g, gctx := errgroup.WithContext(ctx)
	for i, ag := range c.supporting {
		g.Go(func() error {
			resp, err := ag.ProcessIdea(gctx, idea)
			if err != nil {
				return fmt.Errorf("orchestrator: supporting %s: %w", ag.Domain(), err)
			}
			supportingResps[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return c.merge(primaryResp, supportingResps), nil
}

// merge combines the primary and supporting responses into a fresh
// Response; member responses are never mutated.
func (c *Coordinator) merge(primary *domain.Response, supporting []*domain.Response) *domain.Response {
	all := make([]*domain.Response, 0, len(supporting)+1)
	all = append(all, primary)
	all = append(all, supporting...)

	supportingSteps := make([][]string, len(supporting))
	for i, r := range supporting {
		supportingSteps[i] = r.ImplementationSteps
	}

	return &domain.Response{
		Suggestions:         ConsensusSuggestions(all, c.cfg.threshold()),
		Questions:           ConsensusQuestions(all, c.cfg.threshold()),
		RelatedConcepts:     primary.RelatedConcepts,
		ImplementationSteps: MergeImplementationSteps(primary.ImplementationSteps, supportingSteps),
		NextStepsTree:       primary.NextStepsTree,
		ConceptImage:        primary.ConceptImage,
	}
}
