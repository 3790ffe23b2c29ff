package agent

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/ideate/internal/domain"
	"github.com/dusk-indust/ideate/internal/llm"
)

// mockClient implements llm.Client with a function field.
type mockClient struct {
	completeFunc func(ctx context.Context, prompt string) (string, error)
	calls        atomic.Int32
}

func (m *mockClient) Complete(ctx context.Context, prompt string) (string, error) {
	m.calls.Add(1)
	return m.completeFunc(ctx, prompt)
}

// mockImages implements llm.ImageGenerator.
type mockImages struct {
	generateFunc func(ctx context.Context, prompt string) (string, error)
}

func (m *mockImages) GenerateImage(ctx context.Context, prompt string) (string, error) {
	return m.generateFunc(ctx, prompt)
}

// mockChatLog records calls.
type mockChatLog struct {
	sender    string
	content   string
	domain    domain.Type
	sessionID string
	err       error
}

func (m *mockChatLog) AddChatMessage(_ context.Context, sender, content string, d domain.Type, sessionID string) error {
	m.sender = sender
	m.content = content
	m.domain = d
	m.sessionID = sessionID
	return m.err
}

// narrativeFor builds a five-paragraph completion whose sections pass
// the technology lexicon filter.
func narrativeFor(tag string) string {
	return strings.Join([]string{
		"Executive summary paragraph about the idea.",
		fmt.Sprintf("Build the %s system with layered component design choices.", tag),
		fmt.Sprintf("The hardest %s challenge is to develop reliable tooling.", tag),
		fmt.Sprintf("Related %s technology platforms already exist today.", tag),
		fmt.Sprintf("A novel %s design could implement adaptive behavior.", tag),
	}, "\n\n")
}

// scriptedClient answers analysis, steps, and diagram prompts in order
// of recognizable markers.
func scriptedClient(tag string) *mockClient {
	return &mockClient{
		completeFunc: func(_ context.Context, prompt string) (string, error) {
			switch {
			case strings.Contains(prompt, "narrative analysis"):
				return narrativeFor(tag), nil
			case strings.Contains(prompt, "concrete steps"):
				return "Prototype the core\nValidate with users\nShip the beta", nil
			case strings.Contains(prompt, "Map the dependencies"):
				return "Prototype the core -> Validate with users\nValidate with users -> Ship the beta", nil
			default:
				return "", fmt.Errorf("unexpected prompt: %.40s", prompt)
			}
		},
	}
}

func testIdea() *domain.Idea {
	return &domain.Idea{
		Concept:          "drone-based crop monitoring",
		Domain:           domain.Technology,
		Keywords:         []string{"drones", "agriculture", "sensors"},
		DevelopmentStage: "initial",
	}
}

func TestProcessIdea(t *testing.T) {
	client := scriptedClient("crop")
	ag := NewDomainAgent(Profiles()[domain.Technology], Deps{Client: client})

	resp, err := ag.ProcessIdea(context.Background(), testIdea())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Suggestions)
	assert.NotEmpty(t, resp.Questions)
	assert.NotEmpty(t, resp.RelatedConcepts)
	assert.Equal(t, []string{"Prototype the core", "Validate with users", "Ship the beta"}, resp.ImplementationSteps)

	require.NotEmpty(t, resp.NextStepsTree)
	decoded, err := base64.StdEncoding.DecodeString(resp.NextStepsTree)
	require.NoError(t, err)
	assert.Contains(t, string(decoded), "graph TD")

	assert.Empty(t, resp.ConceptImage, "no image generator configured")
}

func TestProcessIdeaAnalysisCached(t *testing.T) {
	client := scriptedClient("cache")
	ag := NewDomainAgent(Profiles()[domain.Technology], Deps{Client: client})

	idea := testIdea()
	_, err := ag.ProcessIdea(context.Background(), idea)
	require.NoError(t, err)
	firstCalls := client.calls.Load()

	// Same concept, reordered keywords: analysis must come from cache.
	reordered := *idea
	reordered.Keywords = []string{"sensors", "drones", "agriculture"}
	_, err = ag.ProcessIdea(context.Background(), &reordered)
	require.NoError(t, err)

	// Steps and diagram still complete, analysis does not.
	assert.Equal(t, firstCalls+2, client.calls.Load())
}

func TestProcessIdeaCompletionFailureFatal(t *testing.T) {
	client := &mockClient{
		completeFunc: func(context.Context, string) (string, error) {
			return "", fmt.Errorf("%w: provider down", llm.ErrCompletionFailed)
		},
	}
	ag := NewDomainAgent(Profiles()[domain.Technology], Deps{Client: client})

	_, err := ag.ProcessIdea(context.Background(), testIdea())
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrCompletionFailed)
}

func TestProcessIdeaStepFailureFatal(t *testing.T) {
	client := &mockClient{
		completeFunc: func(_ context.Context, prompt string) (string, error) {
			if strings.Contains(prompt, "concrete steps") {
				return "", llm.ErrCompletionFailed
			}
			return narrativeFor("steps"), nil
		},
	}
	ag := NewDomainAgent(Profiles()[domain.Technology], Deps{Client: client})

	_, err := ag.ProcessIdea(context.Background(), testIdea())
	assert.ErrorIs(t, err, llm.ErrCompletionFailed)
}

func TestProcessIdeaDiagramFailureRecovered(t *testing.T) {
	client := &mockClient{
		completeFunc: func(_ context.Context, prompt string) (string, error) {
			switch {
			case strings.Contains(prompt, "narrative analysis"):
				return narrativeFor("diagram"), nil
			case strings.Contains(prompt, "concrete steps"):
				return "Only step", nil
			default:
				return "", llm.ErrCompletionFailed
			}
		},
	}
	ag := NewDomainAgent(Profiles()[domain.Technology], Deps{Client: client})

	resp, err := ag.ProcessIdea(context.Background(), testIdea())
	require.NoError(t, err, "diagram failure must not abort the pass")
	assert.Empty(t, resp.NextStepsTree)
	assert.Equal(t, []string{"Only step"}, resp.ImplementationSteps)
}

func TestProcessIdeaImageFailureRecovered(t *testing.T) {
	ag := NewDomainAgent(Profiles()[domain.Technology], Deps{
		Client: scriptedClient("image"),
		Images: &mockImages{
			generateFunc: func(context.Context, string) (string, error) {
				return "", llm.ErrGenerationFailed
			},
		},
	})

	resp, err := ag.ProcessIdea(context.Background(), testIdea())
	require.NoError(t, err)
	assert.Empty(t, resp.ConceptImage)
}

func TestProcessIdeaWithImage(t *testing.T) {
	ag := NewDomainAgent(Profiles()[domain.Technology], Deps{
		Client: scriptedClient("visual"),
		Images: &mockImages{
			generateFunc: func(context.Context, string) (string, error) {
				return "aW1hZ2U=", nil
			},
		},
	})

	resp, err := ag.ProcessIdea(context.Background(), testIdea())
	require.NoError(t, err)
	assert.Equal(t, "aW1hZ2U=", resp.ConceptImage)
}

func TestChat(t *testing.T) {
	chatLog := &mockChatLog{}
	ag := NewDomainAgent(Profiles()[domain.Arts], Deps{
		Client: &mockClient{
			completeFunc: func(_ context.Context, prompt string) (string, error) {
				assert.Contains(t, prompt, "specialized arts agent")
				return "Consider a bolder palette.", nil
			},
		},
		ChatLog: chatLog,
	})

	reply, err := ag.Chat(context.Background(), "How do I pick colors?", "session-1")
	require.NoError(t, err)
	assert.Equal(t, "Consider a bolder palette.", reply)
	assert.Equal(t, "arts_agent", chatLog.sender)
	assert.Equal(t, "How do I pick colors?", chatLog.content)
	assert.Equal(t, domain.Arts, chatLog.domain)
	assert.Equal(t, "session-1", chatLog.sessionID)
}

func TestChatLogFailureNonFatal(t *testing.T) {
	ag := NewDomainAgent(Profiles()[domain.Arts], Deps{
		Client: &mockClient{
			completeFunc: func(context.Context, string) (string, error) { return "reply", nil },
		},
		ChatLog: &mockChatLog{err: errors.New("disk full")},
	})

	reply, err := ag.Chat(context.Background(), "hello", "s")
	require.NoError(t, err)
	assert.Equal(t, "reply", reply)
}

func TestChatCompletionFailure(t *testing.T) {
	ag := NewDomainAgent(Profiles()[domain.Arts], Deps{
		Client: &mockClient{
			completeFunc: func(context.Context, string) (string, error) {
				return "", llm.ErrCompletionFailed
			},
		},
	})

	_, err := ag.Chat(context.Background(), "hello", "s")
	assert.ErrorIs(t, err, llm.ErrCompletionFailed)
}
