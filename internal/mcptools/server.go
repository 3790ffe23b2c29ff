package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewIdeateMCPServer creates an MCP server with all 6 idea development
// tools registered.
func NewIdeateMCPServer(svc *IdeateService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "ideate",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "develop_idea",
		Description: "Develop a raw concept into a structured idea. Classifies the concept into a domain, extracts keywords, runs the matching specialist agent (pulling in supporting agents when the keywords call for it), and persists the result.",
	}, svc.DevelopIdea)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "idea_history",
		Description: "List previously developed ideas, newest first. Optionally limit the number of results.",
	}, svc.IdeaHistory)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_diagram",
		Description: "Fetch the most recent stored diagram or concept image for a developed idea, as base64 data.",
	}, svc.GetDiagram)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_step_graph",
		Description: "Query the step dependency graph of a developed idea: suggested execution order, raw dependency edges, and optionally the chains reachable from a named step.",
	}, svc.GetStepGraph)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_domains",
		Description: "List the domains that have a registered specialist agent.",
	}, svc.ListDomains)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "agent_chat",
		Description: "Chat with a domain specialist agent. Omit sessionId to start a new session; pass the returned sessionId to continue one.",
	}, svc.AgentChat)

	return server
}

// RunMCPServer starts an HTTP server exposing the idea development MCP tools.
func RunMCPServer(ctx context.Context, svc *IdeateService, addr string) error {
	server := NewIdeateMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
