//go:build cgo

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dusk-indust/gedgraph/internal/export"
	"github.com/dusk-indust/gedgraph/internal/graph"
)

func runDiagram(projectRoot string) error {
	graphPath := filepath.Join(projectRoot, ".gedgraph", "graph")
	if _, err := os.Stat(graphPath); err != nil {
		return fmt.Errorf("no graph found at %s\nRun 'load_gedcom' via MCP first to build the graph", graphPath)
	}

	store, err := graph.NewKuzuFileStore(graphPath)
	if err != nil {
		return fmt.Errorf("open graph: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	mermaid, err := export.GenerateMermaid(ctx, store)
	if err != nil {
		return err
	}

	fmt.Print(mermaid)
	return nil
}
