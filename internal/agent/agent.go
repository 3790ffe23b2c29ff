// Package agent implements the domain-specialized agents that analyze
// ideas. A single DomainAgent type covers every domain; behavior differs
// only through the Profile it is configured with.
package agent

import (
	"context"

	"github.com/dusk-indust/ideate/internal/domain"
)

// Agent analyzes ideas for one knowledge domain.
type Agent interface {
	// Domain returns the knowledge domain this agent covers.
	Domain() domain.Type

	// ProcessIdea runs a full development pass over the idea.
	ProcessIdea(ctx context.Context, idea *domain.Idea) (*domain.Response, error)

	// Chat produces a domain-voiced reply to a free-form message.
	Chat(ctx context.Context, message, sessionID string) (string, error)
}

// ChatLog records chat traffic. The persistence layer satisfies it;
// agents treat logging failures as non-fatal.
type ChatLog interface {
	AddChatMessage(ctx context.Context, sender, content string, d domain.Type, sessionID string) error
}
