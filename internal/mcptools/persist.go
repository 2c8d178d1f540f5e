//go:build cgo

package mcptools

import (
	"context"
	"fmt"
	"os"

	"github.com/dusk-indust/gedgraph/internal/graph"
)

// persistGraph copies graph data from the active store to a file-based
// KuzuDB at persistPath. This lets the CLI query the graph without the MCP
// server running. Source nodes are carried by xref only; titles live in the
// parse database, not the persisted graph.
func persistGraph(ctx context.Context, src graph.Store, persistPath string) error {
	// Remove old graph to avoid stale data.
	os.RemoveAll(persistPath)

	dst, err := graph.NewKuzuFileStore(persistPath)
	if err != nil {
		return fmt.Errorf("open file store: %w", err)
	}
	defer dst.Close()

	if err := dst.InitSchema(ctx); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	persons, err := src.QueryPersons(ctx, "", 100000)
	if err != nil {
		return fmt.Errorf("query persons: %w", err)
	}
	for _, p := range persons {
		if err := dst.AddPerson(ctx, p); err != nil {
			return fmt.Errorf("add person %s: %w", p.XRef, err)
		}
	}

	edges, err := src.GetAllEdges(ctx)
	if err != nil {
		return fmt.Errorf("get edges: %w", err)
	}

	// Families and sources are reachable only through edges; materialize
	// the nodes before inserting the relationships that target them.
	famSeen := make(map[string]bool)
	srcSeen := make(map[string]bool)
	for _, e := range edges {
		switch e.Kind {
		case graph.EdgeKindSpouseIn, graph.EdgeKindChildIn:
			if famSeen[e.TargetID] {
				continue
			}
			famSeen[e.TargetID] = true
			fam, err := src.GetFamily(ctx, e.TargetID)
			if err != nil || fam == nil {
				continue
			}
			if err := dst.AddFamily(ctx, *fam); err != nil {
				return fmt.Errorf("add family %s: %w", fam.XRef, err)
			}
		case graph.EdgeKindCites, graph.EdgeKindFamilyCites:
			if srcSeen[e.TargetID] {
				continue
			}
			srcSeen[e.TargetID] = true
			if err := dst.AddSource(ctx, graph.SourceNode{XRef: e.TargetID}); err != nil {
				return fmt.Errorf("add source %s: %w", e.TargetID, err)
			}
		}
	}

	trees, err := src.GetTrees(ctx)
	if err != nil {
		return fmt.Errorf("get trees: %w", err)
	}
	for _, t := range trees {
		if err := dst.AddTree(ctx, t); err != nil {
			return fmt.Errorf("add tree %s: %w", t.Name, err)
		}
	}

	for _, e := range edges {
		if err := dst.AddEdge(ctx, e); err != nil {
			return fmt.Errorf("add edge %s->%s: %w", e.SourceID, e.TargetID, err)
		}
	}

	return nil
}
