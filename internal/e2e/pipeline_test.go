//go:build e2e

package e2e

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/gedgraph/internal/export"
	"github.com/dusk-indust/gedgraph/internal/gedcom"
	"github.com/dusk-indust/gedgraph/internal/graph"
)

func fixturePath() string {
	return filepath.Join("..", "..", "testdata", "fixtures", "kennedy.ged")
}

// TestPipeline_E2E runs the full pipeline on the fixture file: decode,
// graph projection, tree computation, and both export formats.
func TestPipeline_E2E(t *testing.T) {
	db, err := gedcom.DecodeFile(fixturePath(), gedcom.Options{})
	require.NoError(t, err)

	assert.Len(t, db.Individuals, 7)
	assert.Len(t, db.Families, 3)
	assert.Len(t, db.Sources, 1)
	assert.Empty(t, db.Anomalies, "fixture should parse cleanly")

	ctx := context.Background()
	store := graph.NewMemStore()
	stats, err := graph.Load(ctx, store, db)
	require.NoError(t, err)

	assert.Equal(t, 7, stats.PersonCount)
	assert.Equal(t, 3, stats.FamilyCount)
	assert.Equal(t, 1, stats.SourceCount)
	assert.Equal(t, 2, stats.TreeCount)

	// 5 spouse + 3 child + 2 cites + 1 family cites + 7 belongs.
	assert.Equal(t, 18, stats.EdgeCount)

	// --- Verify tree components ---

	trees, err := store.GetTrees(ctx)
	require.NoError(t, err)
	require.Len(t, trees, 2)

	byName := map[string]graph.TreeNode{}
	for _, tr := range trees {
		byName[tr.Name] = tr
	}
	require.Contains(t, byName, "Kennedy")
	require.Contains(t, byName, "Cole")
	assert.Equal(t, 5, byName["Kennedy"].PersonCount)
	assert.Equal(t, 2, byName["Cole"].PersonCount)

	// --- Verify lineage across three generations ---

	chains, err := store.GetLineage(ctx, "@I5@", graph.DirectionAncestors, 10)
	require.NoError(t, err)
	tips := map[string]int{}
	for _, c := range chains {
		tips[c.Nodes[len(c.Nodes)-1]] = c.Depth
	}
	assert.Equal(t, map[string]int{
		"@I3@": 1, "@I4@": 1,
		"@I1@": 2, "@I2@": 2,
	}, tips)

	// --- Verify JSON export ---

	data := export.ExportDatabase(db)
	assert.Equal(t, "Family Tree Writer", data.SourceSystem)
	require.Len(t, data.Persons, 7)
	assert.Equal(t, "adopted", data.Persons[6].ChildIn[0].Pedigree)
	require.Len(t, data.Sources, 1)
	assert.Equal(t, "Boston Parish Register", data.Sources[0].Title)
	assert.Equal(t, 3, data.Sources[0].Citations)

	// --- Verify Mermaid diagram ---

	mermaid, err := export.GenerateMermaid(ctx, store)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(mermaid, "graph TD\n"))
	assert.Contains(t, mermaid, "Kennedy")
	assert.Contains(t, mermaid, "-- husband -->")
	assert.Contains(t, mermaid, "-- adopted -->")
}
