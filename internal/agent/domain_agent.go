package agent

import (
	"context"
	"fmt"
	"log"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dusk-indust/ideate/internal/codescan"
	"github.com/dusk-indust/ideate/internal/domain"
	"github.com/dusk-indust/ideate/internal/llm"
	"github.com/dusk-indust/ideate/internal/render"
)

// Compile-time check.
var _ Agent = (*DomainAgent)(nil)

// analysisCacheSize bounds the per-agent analysis cache.
const analysisCacheSize = 128

// Deps carries the collaborators a DomainAgent needs. Client is
// required; the rest are optional and simply disable their feature
// when nil.
type Deps struct {
	Client  llm.Client
	Images  llm.ImageGenerator
	Scanner *codescan.Scanner
	ChatLog ChatLog
}

// DomainAgent is the profile-driven agent implementation used for every
// domain. Analyses are memoized per instance in a bounded LRU keyed by
// the idea's cache key, so coordinators sharing an agent pay for one
// completion per distinct idea.
type DomainAgent struct {
	profile Profile
	deps    Deps

	mu    sync.Mutex
	cache *lru.Cache[string, Narrative]
}

// NewDomainAgent creates an agent for the given profile.
func NewDomainAgent(profile Profile, deps Deps) *DomainAgent {
	cache, _ := lru.New[string, Narrative](analysisCacheSize)
	return &DomainAgent{
		profile: profile,
		deps:    deps,
		cache:   cache,
	}
}

// Domain returns the agent's knowledge domain.
func (a *DomainAgent) Domain() domain.Type {
	return a.profile.Domain
}

// Profile returns the agent's configuration.
func (a *DomainAgent) Profile() Profile {
	return a.profile
}

// ProcessIdea runs analysis, step generation, and the optional diagram
// and image enhancements. Completion failures during analysis or step
// generation abort the pass; diagram and image failures leave their
// field empty.
func (a *DomainAgent) ProcessIdea(ctx context.Context, idea *domain.Idea) (*domain.Response, error) {
	analysis, err := a.analyze(ctx, idea)
	if err != nil {
		return nil, fmt.Errorf("agent: analyze %s idea: %w", a.profile.Domain, err)
	}

	steps, err := a.generateSteps(ctx, idea, analysis.Suggestions)
	if err != nil {
		return nil, fmt.Errorf("agent: generate %s steps: %w", a.profile.Domain, err)
	}

	return &domain.Response{
		Suggestions:         analysis.Suggestions,
		Questions:           analysis.Questions,
		RelatedConcepts:     analysis.RelatedConcepts,
		ImplementationSteps: steps,
		NextStepsTree:       a.stepsDiagram(ctx, idea, steps),
		ConceptImage:        a.conceptImage(ctx, idea, analysis.Suggestions),
	}, nil
}

// analyze returns the memoized narrative analysis for the idea. The
// lock covers the whole completion so concurrent callers with the same
// idea trigger a single request.
func (a *DomainAgent) analyze(ctx context.Context, idea *domain.Idea) (Narrative, error) {
	key := idea.CacheKey()

	a.mu.Lock()
	defer a.mu.Unlock()

	if cached, ok := a.cache.Get(key); ok {
		return cached, nil
	}

	var extraKeywords []string
	if a.profile.EnrichFromCode && a.deps.Scanner != nil {
		extraKeywords = a.deps.Scanner.Scan(idea.Concept)
	}

	completion, err := a.deps.Client.Complete(ctx, a.profile.AnalysisPrompt(idea, extraKeywords))
	if err != nil {
		return Narrative{}, err
	}

	narrative := ParseNarrative(completion, a.profile)
	a.cache.Add(key, narrative)
	return narrative, nil
}

// generateSteps produces the implementation step list.
func (a *DomainAgent) generateSteps(ctx context.Context, idea *domain.Idea, suggestions []string) ([]string, error) {
	completion, err := a.deps.Client.Complete(ctx, a.profile.StepsPrompt(idea, suggestions))
	if err != nil {
		return nil, err
	}
	return ParseSteps(completion, a.profile), nil
}

// stepsDiagram asks for step relationships and renders them. Any
// failure is recovered and logged; the diagram is an enhancement.
func (a *DomainAgent) stepsDiagram(ctx context.Context, idea *domain.Idea, steps []string) string {
	if len(steps) == 0 {
		return ""
	}
	completion, err := a.deps.Client.Complete(ctx, a.profile.DiagramPrompt(idea, steps))
	if err != nil {
		log.Printf("agent: %s diagram generation failed: %v", a.profile.Domain, err)
		return ""
	}
	return render.StepsDiagram(completion)
}

// conceptImage generates the concept visualization. Any failure is
// recovered and logged.
func (a *DomainAgent) conceptImage(ctx context.Context, idea *domain.Idea, suggestions []string) string {
	if a.deps.Images == nil {
		return ""
	}
	image, err := a.deps.Images.GenerateImage(ctx, a.profile.ImagePrompt(idea, suggestions))
	if err != nil {
		log.Printf("agent: %s concept image failed: %v", a.profile.Domain, err)
		return ""
	}
	return image
}

// Chat produces a domain-voiced reply and records the inbound message
// when a chat log is configured.
func (a *DomainAgent) Chat(ctx context.Context, message, sessionID string) (string, error) {
	reply, err := a.deps.Client.Complete(ctx, a.profile.ChatPrompt(message))
	if err != nil {
		return "", fmt.Errorf("agent: %s chat: %w", a.profile.Domain, err)
	}

	if a.deps.ChatLog != nil {
		sender := fmt.Sprintf("%s_agent", a.profile.Domain)
		if err := a.deps.ChatLog.AddChatMessage(ctx, sender, message, a.profile.Domain, sessionID); err != nil {
			log.Printf("agent: record chat message: %v", err)
		}
	}

	return reply, nil
}
