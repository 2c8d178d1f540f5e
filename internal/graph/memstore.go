package graph

import (
	"context"
	"strings"
	"sync"
)

// Compile-time assertion: *MemStore satisfies Store.
var _ Store = (*MemStore)(nil)

// MemStore implements Store using Go maps. Thread-safe via sync.RWMutex.
type MemStore struct {
	mu       sync.RWMutex
	persons  map[string]PersonNode
	families map[string]FamilyNode
	sources  map[string]SourceNode
	edges    []Edge
	trees    []TreeNode
}

// NewMemStore returns an initialized MemStore ready for use.
func NewMemStore() *MemStore {
	return &MemStore{
		persons:  make(map[string]PersonNode),
		families: make(map[string]FamilyNode),
		sources:  make(map[string]SourceNode),
	}
}

// InitSchema is a no-op for the in-memory store.
func (m *MemStore) InitSchema(_ context.Context) error {
	return nil
}

// AddPerson stores a person node keyed by xref.
func (m *MemStore) AddPerson(_ context.Context, node PersonNode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.persons[node.XRef] = node
	return nil
}

// AddFamily stores a family node keyed by xref.
func (m *MemStore) AddFamily(_ context.Context, node FamilyNode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.families[node.XRef] = node
	return nil
}

// AddSource stores a source node keyed by xref.
func (m *MemStore) AddSource(_ context.Context, node SourceNode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources[node.XRef] = node
	return nil
}

// AddTree appends a tree component to the internal slice.
func (m *MemStore) AddTree(_ context.Context, node TreeNode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trees = append(m.trees, node)
	return nil
}

// AddEdge appends an edge to the internal slice.
func (m *MemStore) AddEdge(_ context.Context, edge Edge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edges = append(m.edges, edge)
	return nil
}

// GetPerson returns the person for the given xref, or nil if not found.
func (m *MemStore) GetPerson(_ context.Context, xref string) (*PersonNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.persons[xref]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// GetFamily returns the family for the given xref, or nil if not found.
func (m *MemStore) GetFamily(_ context.Context, xref string) (*FamilyNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.families[xref]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

// QueryPersons returns persons whose name or surname contains query
// (case-insensitive), up to limit results. A limit <= 0 returns all matches.
func (m *MemStore) QueryPersons(_ context.Context, query string, limit int) ([]PersonNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	lowerQuery := strings.ToLower(query)
	var results []PersonNode
	for _, p := range m.persons {
		if strings.Contains(strings.ToLower(p.Name), lowerQuery) ||
			strings.Contains(strings.ToLower(p.Surname), lowerQuery) {
			results = append(results, p)
			if limit > 0 && len(results) >= limit {
				break
			}
		}
	}
	return results, nil
}

// GetLineage performs a BFS from the given person, one generation per depth
// step, and returns one LineageChain per reachable ancestor or descendant.
func (m *MemStore) GetLineage(_ context.Context, xref string, direction Direction, maxDepth int) ([]LineageChain, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if maxDepth <= 0 {
		return nil, nil
	}

	// BFS state: each entry tracks the person path from xref outward.
	type bfsEntry struct {
		id   string
		path []string
	}

	visited := map[string]bool{xref: true}
	queue := []bfsEntry{{id: xref, path: []string{xref}}}
	var chains []LineageChain

	for depth := 0; depth < maxDepth && len(queue) > 0; depth++ {
		var nextQueue []bfsEntry
		for _, entry := range queue {
			for _, nb := range m.relatives(entry.id, direction) {
				if visited[nb] {
					continue
				}
				visited[nb] = true
				newPath := make([]string, len(entry.path), len(entry.path)+1)
				copy(newPath, entry.path)
				newPath = append(newPath, nb)
				chains = append(chains, LineageChain{
					Nodes: newPath,
					Depth: len(newPath) - 1,
				})
				nextQueue = append(nextQueue, bfsEntry{id: nb, path: newPath})
			}
		}
		queue = nextQueue
	}

	return chains, nil
}

// relatives returns the persons one generation away: parents for ancestors,
// children for descendants. The family node is the pivot in both cases.
func (m *MemStore) relatives(xref string, direction Direction) []string {
	var pivotKind, resultKind EdgeKind
	switch direction {
	case DirectionAncestors:
		pivotKind, resultKind = EdgeKindChildIn, EdgeKindSpouseIn
	case DirectionDescendants:
		pivotKind, resultKind = EdgeKindSpouseIn, EdgeKindChildIn
	default:
		return nil
	}

	families := make(map[string]bool)
	for _, e := range m.edges {
		if e.Kind == pivotKind && e.SourceID == xref {
			families[e.TargetID] = true
		}
	}

	var result []string
	for _, e := range m.edges {
		if e.Kind == resultKind && families[e.TargetID] && e.SourceID != xref {
			result = append(result, e.SourceID)
		}
	}
	return result
}

// GetTrees returns all stored tree components.
func (m *MemStore) GetTrees(_ context.Context) ([]TreeNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]TreeNode, len(m.trees))
	copy(out, m.trees)
	return out, nil
}

// GetAllEdges returns a copy of all edges in the store.
func (m *MemStore) GetAllEdges(_ context.Context) ([]Edge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Edge, len(m.edges))
	copy(out, m.edges)
	return out, nil
}

// Stats returns counts of all node and edge types in the graph.
func (m *MemStore) Stats(_ context.Context) (*GraphStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return &GraphStats{
		PersonCount: len(m.persons),
		FamilyCount: len(m.families),
		SourceCount: len(m.sources),
		TreeCount:   len(m.trees),
		EdgeCount:   len(m.edges),
	}, nil
}

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error {
	return nil
}
