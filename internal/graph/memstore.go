package graph

import (
	"context"
	"sync"
)

// Compile-time assertion: *MemoryStore satisfies Store.
var _ Store = (*MemoryStore)(nil)

// MemoryStore implements Store using Go maps. Thread-safe via sync.RWMutex.
type MemoryStore struct {
	mu    sync.RWMutex
	ideas map[int64]IdeaNode
	steps map[int64][]StepNode
	edges map[int64][]DependencyEdge
}

// NewMemoryStore returns an initialized MemoryStore ready for use.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		ideas: make(map[int64]IdeaNode),
		steps: make(map[int64][]StepNode),
		edges: make(map[int64][]DependencyEdge),
	}
}

// InitSchema is a no-op for the in-memory store.
func (m *MemoryStore) InitSchema(_ context.Context) error {
	return nil
}

// AddIdea stores an idea node keyed by its ID.
func (m *MemoryStore) AddIdea(_ context.Context, node IdeaNode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ideas[node.ID] = node
	return nil
}

// AddStep appends a step to the idea's step list, skipping duplicates.
func (m *MemoryStore) AddStep(_ context.Context, node StepNode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.steps[node.IdeaID] {
		if existing.Label == node.Label {
			return nil
		}
	}
	m.steps[node.IdeaID] = append(m.steps[node.IdeaID], node)
	return nil
}

// AddDependency appends a dependency edge to the idea's edge list.
func (m *MemoryStore) AddDependency(_ context.Context, edge DependencyEdge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edges[edge.IdeaID] = append(m.edges[edge.IdeaID], edge)
	return nil
}

// GetIdea returns the idea node for the given ID, or nil if not found.
func (m *MemoryStore) GetIdea(_ context.Context, id int64) (*IdeaNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	node, ok := m.ideas[id]
	if !ok {
		return nil, nil
	}
	return &node, nil
}

// Steps returns the idea's steps in insertion order.
func (m *MemoryStore) Steps(_ context.Context, ideaID int64) ([]StepNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]StepNode, len(m.steps[ideaID]))
	copy(out, m.steps[ideaID])
	return out, nil
}

// Dependencies returns the idea's dependency edges in insertion order.
func (m *MemoryStore) Dependencies(_ context.Context, ideaID int64) ([]DependencyEdge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]DependencyEdge, len(m.edges[ideaID]))
	copy(out, m.edges[ideaID])
	return out, nil
}

// Chains performs a BFS on the idea's edges from label in the given
// direction, up to maxDepth hops. It returns one StepChain per reachable
// step.
func (m *MemoryStore) Chains(_ context.Context, ideaID int64, label string, direction Direction, maxDepth int) ([]StepChain, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if maxDepth <= 0 {
		return nil, nil
	}

	type bfsEntry struct {
		label string
		path  []string
	}

	visited := map[string]bool{label: true}
	queue := []bfsEntry{{label: label, path: []string{label}}}
	var chains []StepChain

	for depth := 0; depth < maxDepth && len(queue) > 0; depth++ {
		var nextQueue []bfsEntry
		for _, entry := range queue {
			for _, nb := range m.neighbors(ideaID, entry.label, direction) {
				if visited[nb] {
					continue
				}
				visited[nb] = true
				newPath := make([]string, len(entry.path), len(entry.path)+1)
				copy(newPath, entry.path)
				newPath = append(newPath, nb)
				chains = append(chains, StepChain{
					Nodes: newPath,
					Depth: len(newPath) - 1,
				})
				nextQueue = append(nextQueue, bfsEntry{label: nb, path: newPath})
			}
		}
		queue = nextQueue
	}

	return chains, nil
}

// neighbors returns labels reachable from label in one hop.
func (m *MemoryStore) neighbors(ideaID int64, label string, direction Direction) []string {
	var result []string
	for _, e := range m.edges[ideaID] {
		switch direction {
		case DirectionDownstream:
			if e.From == label {
				result = append(result, e.To)
			}
		case DirectionUpstream:
			if e.To == label {
				result = append(result, e.From)
			}
		}
	}
	return result
}

// Order returns the idea's steps in dependency order (Kahn's algorithm).
// Ties break on step insertion order so output is deterministic. Steps
// caught in a cycle are appended at the end in insertion order.
func (m *MemoryStore) Order(_ context.Context, ideaID int64) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	steps := m.steps[ideaID]
	edges := m.edges[ideaID]

	inDegree := make(map[string]int, len(steps))
	for _, s := range steps {
		inDegree[s.Label] = 0
	}
	for _, e := range edges {
		if _, ok := inDegree[e.To]; ok {
			inDegree[e.To]++
		}
	}

	order := make([]string, 0, len(steps))
	emitted := make(map[string]bool, len(steps))

	for len(order) < len(steps) {
		progressed := false
		for _, s := range steps {
			if emitted[s.Label] || inDegree[s.Label] > 0 {
				continue
			}
			emitted[s.Label] = true
			order = append(order, s.Label)
			progressed = true
			for _, e := range edges {
				if e.From == s.Label {
					inDegree[e.To]--
				}
			}
		}
		if !progressed {
			// Remaining steps form a cycle.
			for _, s := range steps {
				if !emitted[s.Label] {
					emitted[s.Label] = true
					order = append(order, s.Label)
				}
			}
		}
	}

	return order, nil
}

// Stats returns counts of ideas, steps, and edges in the graph.
func (m *MemoryStore) Stats(_ context.Context) (*Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stepCount := 0
	for _, s := range m.steps {
		stepCount += len(s)
	}
	edgeCount := 0
	for _, e := range m.edges {
		edgeCount += len(e)
	}

	return &Stats{
		IdeaCount: len(m.ideas),
		StepCount: stepCount,
		EdgeCount: edgeCount,
	}, nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}
