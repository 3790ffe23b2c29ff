package agent

import (
	"errors"
	"sort"
	"sync"

	"github.com/dusk-indust/ideate/internal/domain"
)

// ErrInvalidDomain is returned when an agent is requested for an empty
// domain.
var ErrInvalidDomain = errors.New("agent: invalid domain")

// Factory is a constructor that creates an Agent.
type Factory func() Agent

// Registry maps domains to agent factories and memoizes the agents it
// creates, so each domain gets one shared instance with one analysis
// cache.
type Registry struct {
	deps Deps

	mu        sync.Mutex
	factories map[domain.Type]Factory
	created   map[domain.Type]Agent
}

// NewRegistry creates a Registry pre-registered with every built-in
// domain profile.
func NewRegistry(deps Deps) *Registry {
	r := &Registry{
		deps:      deps,
		factories: make(map[domain.Type]Factory),
		created:   make(map[domain.Type]Agent),
	}
	for d, profile := range Profiles() {
		p := profile
		r.factories[d] = func() Agent { return NewDomainAgent(p, deps) }
	}
	return r
}

// Register binds a factory to a domain, silently replacing any previous
// binding. The memoized instance for that domain is discarded so the
// next Create uses the new factory.
func (r *Registry) Register(d domain.Type, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[d] = factory
	delete(r.created, d)
}

// Create returns the agent for a domain, building it on first use.
// Unregistered domains fall back to a generic-profile agent; only an
// empty domain is an error.
func (r *Registry) Create(d domain.Type) (Agent, error) {
	if d == "" {
		return nil, ErrInvalidDomain
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if ag, ok := r.created[d]; ok {
		return ag, nil
	}

	factory, ok := r.factories[d]
	if !ok {
		factory = func() Agent { return NewDomainAgent(GenericProfile(d), r.deps) }
	}

	ag := factory()
	r.created[d] = ag
	return ag, nil
}

// Domains returns the registered domains in sorted order.
func (r *Registry) Domains() []domain.Type {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Type, 0, len(r.factories))
	for d := range r.factories {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
