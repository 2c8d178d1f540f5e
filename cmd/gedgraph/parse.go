package main

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dusk-indust/gedgraph/internal/gedcom"
	"github.com/dusk-indust/gedgraph/internal/graph"
)

// parseResult is one file's parse and graph outcome.
type parseResult struct {
	path      string
	stats     *graph.GraphStats
	anomalies []gedcom.Anomaly
	trees     []graph.TreeNode
}

// runParse decodes the given GEDCOM files concurrently, projects each into
// its own graph, and prints a per-file summary.
func runParse(opts gedcom.Options, verbose bool, files []string) error {
	results := make([]parseResult, len(files))

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(4)
	for i, path := range files {
		g.Go(func() error {
			db, err := gedcom.DecodeFile(path, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			store := graph.NewMemStore()
			stats, err := graph.Load(ctx, store, db)
			if err != nil {
				return fmt.Errorf("%s: load graph: %w", path, err)
			}
			trees, err := store.GetTrees(ctx)
			if err != nil {
				return fmt.Errorf("%s: get trees: %w", path, err)
			}

			results[i] = parseResult{
				path:      path,
				stats:     stats,
				anomalies: db.Anomalies,
				trees:     trees,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, res := range results {
		if i > 0 {
			fmt.Println()
		}
		printSummary(res, verbose)
	}
	return nil
}

func printSummary(res parseResult, verbose bool) {
	fmt.Printf("File: %s\n", res.path)
	fmt.Printf("  %-10s %d\n", "Persons", res.stats.PersonCount)
	fmt.Printf("  %-10s %d\n", "Families", res.stats.FamilyCount)
	fmt.Printf("  %-10s %d\n", "Sources", res.stats.SourceCount)
	fmt.Printf("  %-10s %d\n", "Trees", res.stats.TreeCount)
	fmt.Printf("  %-10s %d\n", "Edges", res.stats.EdgeCount)
	fmt.Printf("  %-10s %d\n", "Anomalies", len(res.anomalies))

	for _, t := range res.trees {
		fmt.Printf("  Tree %-20s %d persons, %d families\n", t.Name, t.PersonCount, t.FamilyCount)
	}

	if verbose {
		for _, a := range res.anomalies {
			fmt.Printf("  anomaly: %s\n", a.String())
		}
	}
}
