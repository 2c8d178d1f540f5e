//go:build cgo

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dusk-indust/gedgraph/internal/graph"
)

// runLookup queries the persistent graph and prints context for the given
// name pattern. Designed to be callable from editor hooks, so it prints
// nothing and exits 0 if no graph exists.
func runLookup(projectRoot string, args []string) error {
	if len(args) < 1 || args[0] == "" {
		return nil
	}
	pattern := args[0]

	graphPath := filepath.Join(projectRoot, ".gedgraph", "graph")
	if _, err := os.Stat(graphPath); err != nil {
		return nil // no graph, exit silently
	}

	store, err := graph.NewKuzuFileStore(graphPath)
	if err != nil {
		return nil // can't open graph, exit silently
	}
	defer store.Close()

	ctx := context.Background()

	persons, err := store.QueryPersons(ctx, pattern, 10)
	if err != nil || len(persons) == 0 {
		return nil // no matches
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Persons matching %q\n\n", pattern))

	for _, p := range persons {
		sb.WriteString(fmt.Sprintf("- %s %s", p.XRef, p.Name))
		if p.BirthYear != 0 || p.DeathYear != 0 {
			sb.WriteString(fmt.Sprintf(" (%s)", lifespan(p.BirthYear, p.DeathYear)))
		}
		sb.WriteString("\n")
	}

	// Show the first match's immediate ancestry.
	primary := persons[0]
	ancestors, err := store.GetLineage(ctx, primary.XRef, graph.DirectionAncestors, 2)
	if err == nil && len(ancestors) > 0 {
		sb.WriteString(fmt.Sprintf("\n**Ancestors of %s:**\n", primary.XRef))
		for _, chain := range ancestors {
			tip := chain.Nodes[len(chain.Nodes)-1]
			sb.WriteString(fmt.Sprintf("- %s (generation %d)\n", tip, chain.Depth))
		}
	}

	// Name the tree the first match belongs to.
	trees, err := store.GetTrees(ctx)
	if err == nil {
		for _, t := range trees {
			for _, member := range t.Members {
				if member == primary.XRef {
					sb.WriteString(fmt.Sprintf("\n**Tree:** %s — %d persons, %d families\n",
						t.Name, t.PersonCount, t.FamilyCount))
					break
				}
			}
		}
	}

	fmt.Print(sb.String())
	return nil
}

func lifespan(birth, death int) string {
	b, d := "?", "?"
	if birth != 0 {
		b = fmt.Sprintf("%d", birth)
	}
	if death != 0 {
		d = fmt.Sprintf("%d", death)
	}
	return b + "-" + d
}
