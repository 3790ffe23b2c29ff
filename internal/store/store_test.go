package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/ideate/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveIdeaAndHistory(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	first, err := s.SaveIdea(ctx, &domain.Idea{
		Concept:          "tidal energy farm",
		Domain:           domain.Technology,
		Keywords:         []string{"tidal", "energy"},
		DevelopmentStage: "initial",
	})
	require.NoError(t, err)
	assert.Positive(t, first)

	second, err := s.SaveIdea(ctx, &domain.Idea{
		Concept:          "serialized novella",
		Domain:           domain.Literature,
		Keywords:         []string{"fiction"},
		DevelopmentStage: "initial",
	})
	require.NoError(t, err)
	assert.Greater(t, second, first)

	history, err := s.IdeaHistory(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "serialized novella", history[0].Concept, "newest first")
	assert.Equal(t, []string{"tidal", "energy"}, history[1].Keywords)
	assert.False(t, history[0].Timestamp.IsZero())
}

func TestIdeaHistoryLimit(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	for i := 0; i < 15; i++ {
		_, err := s.SaveIdea(ctx, &domain.Idea{
			Concept: "idea", Domain: domain.Arts, Keywords: []string{}, DevelopmentStage: "initial",
		})
		require.NoError(t, err)
	}

	defaulted, err := s.IdeaHistory(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, defaulted, 10, "limit defaults to 10")

	limited, err := s.IdeaHistory(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, limited, 3)
}

func TestGetIdea(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	id, err := s.SaveIdea(ctx, &domain.Idea{
		Concept: "museum audio guide", Domain: domain.Arts,
		Keywords: []string{"audio"}, DevelopmentStage: "initial",
	})
	require.NoError(t, err)

	rec, err := s.GetIdea(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "museum audio guide", rec.Concept)
	assert.Equal(t, domain.Arts, rec.Domain)

	missing, err := s.GetIdea(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDiagrams(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	id, err := s.SaveIdea(ctx, &domain.Idea{
		Concept: "x", Domain: domain.Code, Keywords: []string{}, DevelopmentStage: "initial",
	})
	require.NoError(t, err)

	require.NoError(t, s.SaveDiagram(ctx, id, "b64-old", "steps"))
	require.NoError(t, s.SaveDiagram(ctx, id, "b64-new", "concept image"))

	d, err := s.GetDiagram(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "b64-new", d.ImageData, "latest diagram wins")
	assert.Equal(t, "concept image", d.Note)

	none, err := s.GetDiagram(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestChatMessages(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	session := NewSessionID()
	other := NewSessionID()
	require.NotEqual(t, session, other)

	require.NoError(t, s.AddChatMessage(ctx, "user", "hello", domain.Philosophy, session))
	require.NoError(t, s.AddChatMessage(ctx, "philosophy_agent", "greetings", domain.Philosophy, session))
	require.NoError(t, s.AddChatMessage(ctx, "user", "unrelated", domain.Arts, other))

	msgs, err := s.ChatSession(ctx, session)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "user", msgs[0].Sender)
	assert.Equal(t, "philosophy_agent", msgs[1].Sender)
	assert.Equal(t, domain.Philosophy, msgs[0].Domain)
}
