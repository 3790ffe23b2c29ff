package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/dusk-indust/ideate/internal/domain"
	"github.com/dusk-indust/ideate/internal/llm"
)

// Classifier assigns concepts to domains and extracts their keywords
// with single completions.
type Classifier struct {
	client llm.Client
}

// NewClassifier creates a Classifier on the given completion client.
func NewClassifier(client llm.Client) *Classifier {
	return &Classifier{client: client}
}

// Classify returns the domain for a raw concept. Completion failures
// and unrecognized domain names both abort development.
func (c *Classifier) Classify(ctx context.Context, concept string) (domain.Type, error) {
	names := make([]string, len(domain.All))
	for i, d := range domain.All {
		names[i] = string(d)
	}

	prompt := fmt.Sprintf(`Classify the following concept into one of these domains:
%s

Concept: %s

Return only the domain name.`, strings.Join(names, ", "), concept)

	completion, err := c.client.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("orchestrator: classify domain: %w", err)
	}

	d, err := domain.Parse(completion)
	if err != nil {
		return "", fmt.Errorf("orchestrator: classify domain: %w", err)
	}
	return d, nil
}

// Keywords extracts up to five keywords from a raw concept.
func (c *Classifier) Keywords(ctx context.Context, concept string) ([]string, error) {
	prompt := fmt.Sprintf(`Extract 5 key concepts or keywords from the following idea:
%s

Return them as a comma-separated list.`, concept)

	completion, err := c.client.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: extract keywords: %w", err)
	}

	var keywords []string
	for _, k := range strings.Split(completion, ",") {
		k = strings.TrimSpace(k)
		if k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords, nil
}
