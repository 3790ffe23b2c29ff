package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dusk-indust/ideate/internal/agent"
	"github.com/dusk-indust/ideate/internal/domain"
	"github.com/dusk-indust/ideate/internal/graph"
	"github.com/dusk-indust/ideate/internal/orchestrator"
	"github.com/dusk-indust/ideate/internal/store"
)

// IdeateService holds the collaborators used by MCP tool handlers.
type IdeateService struct {
	developer *orchestrator.Developer
	store     *store.Store
	stepGraph graph.Store
	registry  *agent.Registry
}

// NewIdeateService creates an IdeateService. stepGraph may be nil, in
// which case get_step_graph reports that the graph is disabled.
func NewIdeateService(developer *orchestrator.Developer, st *store.Store, stepGraph graph.Store, registry *agent.Registry) *IdeateService {
	return &IdeateService{
		developer: developer,
		store:     st,
		stepGraph: stepGraph,
		registry:  registry,
	}
}

// DevelopIdea runs the full development pipeline for a raw concept:
// classification, keyword extraction, agent processing, persistence.
func (s *IdeateService) DevelopIdea(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DevelopIdeaInput,
) (*mcp.CallToolResult, DevelopIdeaOutput, error) {
	if strings.TrimSpace(input.Concept) == "" {
		return nil, DevelopIdeaOutput{}, fmt.Errorf("concept is required")
	}

	developed, err := s.developer.DevelopIdea(ctx, input.Concept)
	if err != nil {
		return nil, DevelopIdeaOutput{}, fmt.Errorf("develop idea: %w", err)
	}

	return nil, DevelopIdeaOutput{Idea: *developed}, nil
}

// IdeaHistory returns recently developed ideas, newest first.
func (s *IdeateService) IdeaHistory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IdeaHistoryInput,
) (*mcp.CallToolResult, IdeaHistoryOutput, error) {
	ideas, err := s.store.IdeaHistory(ctx, input.Limit)
	if err != nil {
		return nil, IdeaHistoryOutput{}, fmt.Errorf("idea history: %w", err)
	}

	return nil, IdeaHistoryOutput{
		Ideas: ideas,
		Total: len(ideas),
	}, nil
}

// GetDiagram returns the most recent diagram or concept image stored
// for an idea.
func (s *IdeateService) GetDiagram(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetDiagramInput,
) (*mcp.CallToolResult, GetDiagramOutput, error) {
	if input.IdeaID <= 0 {
		return nil, GetDiagramOutput{}, fmt.Errorf("ideaId is required")
	}

	diagram, err := s.store.GetDiagram(ctx, input.IdeaID)
	if err != nil {
		return nil, GetDiagramOutput{}, fmt.Errorf("get diagram: %w", err)
	}

	return nil, GetDiagramOutput{
		Found:   diagram != nil,
		Diagram: diagram,
	}, nil
}

// GetStepGraph returns an idea's step dependencies: the suggested
// execution order, the raw edges, and optionally the chains reachable
// from a named step.
func (s *IdeateService) GetStepGraph(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetStepGraphInput,
) (*mcp.CallToolResult, GetStepGraphOutput, error) {
	if input.IdeaID <= 0 {
		return nil, GetStepGraphOutput{}, fmt.Errorf("ideaId is required")
	}
	if s.stepGraph == nil {
		return nil, GetStepGraphOutput{}, fmt.Errorf("step graph is not enabled")
	}

	order, err := s.stepGraph.Order(ctx, input.IdeaID)
	if err != nil {
		return nil, GetStepGraphOutput{}, fmt.Errorf("step order: %w", err)
	}

	deps, err := s.stepGraph.Dependencies(ctx, input.IdeaID)
	if err != nil {
		return nil, GetStepGraphOutput{}, fmt.Errorf("step dependencies: %w", err)
	}

	out := GetStepGraphOutput{Order: order, Dependencies: deps}

	if input.Step != "" {
		direction := graph.DirectionDownstream
		if strings.EqualFold(input.Direction, "upstream") {
			direction = graph.DirectionUpstream
		}

		maxDepth := input.MaxDepth
		if maxDepth <= 0 {
			maxDepth = 5
		}

		chains, err := s.stepGraph.Chains(ctx, input.IdeaID, input.Step, direction, maxDepth)
		if err != nil {
			return nil, GetStepGraphOutput{}, fmt.Errorf("step chains: %w", err)
		}
		out.Chains = chains
	}

	return nil, out, nil
}

// ListDomains returns the domains with a registered specialist agent.
func (s *IdeateService) ListDomains(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListDomainsInput,
) (*mcp.CallToolResult, ListDomainsOutput, error) {
	return nil, ListDomainsOutput{Domains: s.registry.Domains()}, nil
}

// AgentChat sends a message to a domain agent. A missing sessionId
// starts a fresh session; the assigned ID is returned either way so
// callers can continue the conversation.
func (s *IdeateService) AgentChat(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AgentChatInput,
) (*mcp.CallToolResult, AgentChatOutput, error) {
	if strings.TrimSpace(input.Message) == "" {
		return nil, AgentChatOutput{}, fmt.Errorf("message is required")
	}

	d, err := domain.Parse(input.Domain)
	if err != nil {
		return nil, AgentChatOutput{}, fmt.Errorf("parse domain: %w", err)
	}

	ag, err := s.registry.Create(d)
	if err != nil {
		return nil, AgentChatOutput{}, fmt.Errorf("create agent: %w", err)
	}

	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = store.NewSessionID()
	}

	reply, err := ag.Chat(ctx, input.Message, sessionID)
	if err != nil {
		return nil, AgentChatOutput{}, fmt.Errorf("agent chat: %w", err)
	}

	return nil, AgentChatOutput{Reply: reply, SessionID: sessionID}, nil
}
