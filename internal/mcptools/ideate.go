package mcptools

import (
	"github.com/dusk-indust/ideate/internal/domain"
	"github.com/dusk-indust/ideate/internal/graph"
	"github.com/dusk-indust/ideate/internal/store"
)

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// DevelopIdeaInput is the input for the develop_idea MCP tool.
type DevelopIdeaInput struct {
	Concept string `json:"concept" jsonschema:"the raw idea or concept to develop"`
}

// DevelopIdeaOutput is the result of the develop_idea MCP tool.
type DevelopIdeaOutput struct {
	Idea domain.DevelopedIdea `json:"idea"`
}

// IdeaHistoryInput is the input for the idea_history MCP tool.
type IdeaHistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of ideas to return, newest first (default: 10)"`
}

// IdeaHistoryOutput is the result of the idea_history MCP tool.
type IdeaHistoryOutput struct {
	Ideas []store.IdeaRecord `json:"ideas"`
	Total int                `json:"total"`
}

// GetDiagramInput is the input for the get_diagram MCP tool.
type GetDiagramInput struct {
	IdeaID int64 `json:"ideaId" jsonschema:"the ID of a previously developed idea"`
}

// GetDiagramOutput is the result of the get_diagram MCP tool.
type GetDiagramOutput struct {
	Found   bool           `json:"found"`
	Diagram *store.Diagram `json:"diagram,omitempty"`
}

// GetStepGraphInput is the input for the get_step_graph MCP tool.
type GetStepGraphInput struct {
	IdeaID    int64  `json:"ideaId" jsonschema:"the ID of a previously developed idea"`
	Step      string `json:"step,omitempty" jsonschema:"a step label to traverse dependency chains from"`
	Direction string `json:"direction,omitempty" jsonschema:"upstream (what must happen first) or downstream (what this unblocks). Default: downstream"`
	MaxDepth  int    `json:"maxDepth,omitempty" jsonschema:"maximum chain depth (default: 5)"`
}

// GetStepGraphOutput is the result of the get_step_graph MCP tool.
type GetStepGraphOutput struct {
	Order        []string               `json:"order"`
	Dependencies []graph.DependencyEdge `json:"dependencies"`
	Chains       []graph.StepChain      `json:"chains,omitempty"`
}

// ListDomainsInput is the input for the list_domains MCP tool.
type ListDomainsInput struct{}

// ListDomainsOutput is the result of the list_domains MCP tool.
type ListDomainsOutput struct {
	Domains []domain.Type `json:"domains"`
}

// AgentChatInput is the input for the agent_chat MCP tool.
type AgentChatInput struct {
	Domain    string `json:"domain" jsonschema:"the domain agent to chat with (e.g. technology, business)"`
	Message   string `json:"message" jsonschema:"the message to send"`
	SessionID string `json:"sessionId,omitempty" jsonschema:"chat session to continue; omit to start a new one"`
}

// AgentChatOutput is the result of the agent_chat MCP tool.
type AgentChatOutput struct {
	Reply     string `json:"reply"`
	SessionID string `json:"sessionId"`
}
