package graph

import (
	"context"
	"fmt"
	"sort"
)

// ComputeTrees finds the connected family trees in the graph and stores them
// as TreeNodes. Two persons are connected when they share a family, as
// spouses or as children.
//
// Algorithm:
//  1. Build an undirected person adjacency list, pivoting through families.
//  2. Find connected components via BFS.
//  3. For each component with >= 2 persons, name it after the dominant
//     surname and store the tree with BELONGS edges for each member.
func ComputeTrees(ctx context.Context, store Store, persons []PersonNode) ([]TreeNode, error) {
	sorted := make([]PersonNode, len(persons))
	copy(sorted, persons)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].XRef < sorted[j].XRef })

	surnames := make(map[string]string, len(sorted))
	for _, p := range sorted {
		surnames[p.XRef] = p.Surname
	}

	adj, personFamilies := buildKinAdjacency(ctx, store, sorted)

	visited := make(map[string]bool, len(sorted))
	taken := make(map[string]bool)
	var trees []TreeNode

	for _, p := range sorted {
		if visited[p.XRef] {
			continue
		}
		component := bfsComponent(p.XRef, adj, visited)
		if len(component) < 2 {
			continue
		}
		sort.Strings(component)

		famSet := make(map[string]bool)
		for _, member := range component {
			for _, fam := range personFamilies[member] {
				famSet[fam] = true
			}
		}

		name := uniqueName(dominantSurname(component, surnames), taken)
		tree := TreeNode{
			Name:        name,
			PersonCount: len(component),
			FamilyCount: len(famSet),
			Members:     component,
		}
		if err := store.AddTree(ctx, tree); err != nil {
			return nil, err
		}
		for _, member := range component {
			edge := Edge{
				SourceID: member,
				TargetID: name,
				Kind:     EdgeKindBelongs,
			}
			if err := store.AddEdge(ctx, edge); err != nil {
				return nil, err
			}
		}
		trees = append(trees, tree)
	}

	return trees, nil
}

// buildKinAdjacency constructs a bidirectional person adjacency list from
// SPOUSE_IN and CHILD_IN edges in a single pass, plus the person-to-family
// membership index.
func buildKinAdjacency(ctx context.Context, store Store, persons []PersonNode) (map[string]map[string]bool, map[string][]string) {
	adj := make(map[string]map[string]bool, len(persons))
	for _, p := range persons {
		adj[p.XRef] = make(map[string]bool)
	}
	personFamilies := make(map[string][]string)

	edges, err := store.GetAllEdges(ctx)
	if err != nil {
		return adj, personFamilies
	}

	familyMembers := make(map[string][]string)
	for _, e := range edges {
		if e.Kind != EdgeKindSpouseIn && e.Kind != EdgeKindChildIn {
			continue
		}
		if adj[e.SourceID] == nil {
			continue
		}
		familyMembers[e.TargetID] = append(familyMembers[e.TargetID], e.SourceID)
		personFamilies[e.SourceID] = append(personFamilies[e.SourceID], e.TargetID)
	}

	for _, members := range familyMembers {
		for i, a := range members {
			for _, b := range members[i+1:] {
				if a == b {
					continue
				}
				adj[a][b] = true
				adj[b][a] = true
			}
		}
	}

	return adj, personFamilies
}

// bfsComponent performs BFS from start on the adjacency list and returns
// all reachable nodes. It marks visited nodes as it goes.
func bfsComponent(start string, adj map[string]map[string]bool, visited map[string]bool) []string {
	var component []string
	queue := []string{start}
	visited[start] = true

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		component = append(component, node)
		for neighbor := range adj[node] {
			if !visited[neighbor] {
				visited[neighbor] = true
				queue = append(queue, neighbor)
			}
		}
	}

	return component
}

// dominantSurname picks the most frequent surname among the members, ties
// broken alphabetically. Falls back to the first member's xref when no
// member has a surname at all.
func dominantSurname(members []string, surnames map[string]string) string {
	counts := make(map[string]int)
	for _, m := range members {
		if s := surnames[m]; s != "" {
			counts[s]++
		}
	}
	best := ""
	for s, n := range counts {
		if best == "" || n > counts[best] || (n == counts[best] && s < best) {
			best = s
		}
	}
	if best == "" {
		return members[0]
	}
	return best
}

// uniqueName disambiguates tree names when disjoint trees share a dominant
// surname.
func uniqueName(name string, taken map[string]bool) string {
	candidate := name
	for n := 2; taken[candidate]; n++ {
		candidate = fmt.Sprintf("%s (%d)", name, n)
	}
	taken[candidate] = true
	return candidate
}
