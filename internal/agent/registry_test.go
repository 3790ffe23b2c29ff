package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/ideate/internal/domain"
)

func newTestRegistry() *Registry {
	return NewRegistry(Deps{Client: &mockClient{
		completeFunc: func(context.Context, string) (string, error) { return "", nil },
	}})
}

func TestRegistryCreateMemoized(t *testing.T) {
	r := newTestRegistry()

	first, err := r.Create(domain.Technology)
	require.NoError(t, err)
	second, err := r.Create(domain.Technology)
	require.NoError(t, err)

	assert.Same(t, first, second, "per-domain agents are shared")
}

func TestRegistryCreateEmptyDomain(t *testing.T) {
	r := newTestRegistry()

	_, err := r.Create("")
	assert.ErrorIs(t, err, ErrInvalidDomain)
}

func TestRegistryGenericFallback(t *testing.T) {
	r := newTestRegistry()

	ag, err := r.Create(domain.Type("urban_planning"))
	require.NoError(t, err)

	da, ok := ag.(*DomainAgent)
	require.True(t, ok)
	assert.Equal(t, domain.Type("urban_planning"), da.Domain())
	assert.Empty(t, da.Profile().Lexicon, "fallback profile carries no lexicon")

	again, err := r.Create(domain.Type("urban_planning"))
	require.NoError(t, err)
	assert.Same(t, ag, again, "fallback agents are memoized too")
}

func TestRegistryRegisterRebinds(t *testing.T) {
	r := newTestRegistry()

	original, err := r.Create(domain.Code)
	require.NoError(t, err)

	replacement := NewDomainAgent(GenericProfile(domain.Code), Deps{Client: &mockClient{
		completeFunc: func(context.Context, string) (string, error) { return "", nil },
	}})
	r.Register(domain.Code, func() Agent { return replacement })

	created, err := r.Create(domain.Code)
	require.NoError(t, err)
	assert.Same(t, replacement, created)
	assert.NotSame(t, original, created)
}

func TestRegistryDomains(t *testing.T) {
	r := newTestRegistry()

	domains := r.Domains()
	assert.Len(t, domains, len(domain.All))
	for i := 1; i < len(domains); i++ {
		assert.Less(t, string(domains[i-1]), string(domains[i]), "domains are sorted")
	}
}
