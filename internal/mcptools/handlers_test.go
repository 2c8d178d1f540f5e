package mcptools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/gedgraph/internal/graph"
)

func newTestService(t *testing.T) *GenealogyService {
	t.Helper()
	return NewGenealogyService(graph.NewMemStore())
}

func loadFixture(t *testing.T, svc *GenealogyService) LoadGedcomOutput {
	t.Helper()
	_, out, err := svc.LoadGedcom(context.Background(), nil, LoadGedcomInput{
		FilePath: writeFixtureGedcom(t),
	})
	require.NoError(t, err)
	return out
}

func TestLoadGedcom_MissingPath(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.LoadGedcom(context.Background(), nil, LoadGedcomInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "filePath is required")
}

func TestLoadGedcom_PathIsDirectory(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.LoadGedcom(context.Background(), nil, LoadGedcomInput{
		FilePath: t.TempDir(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestLoadGedcom_Stats(t *testing.T) {
	svc := newTestService(t)
	out := loadFixture(t, svc)

	assert.Equal(t, 3, out.Stats.PersonCount)
	assert.Equal(t, 1, out.Stats.FamilyCount)
	assert.Equal(t, 1, out.Stats.TreeCount)
	assert.Empty(t, out.Anomalies)
}

func TestQueryPersons_DefaultLimit(t *testing.T) {
	svc := newTestService(t)
	loadFixture(t, svc)

	_, out, err := svc.QueryPersons(context.Background(), nil, QueryPersonsInput{Query: "doe"})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Total)
}

func TestGetLineage_Defaults(t *testing.T) {
	svc := newTestService(t)
	loadFixture(t, svc)

	// Direction defaults to ancestors.
	_, out, err := svc.GetLineage(context.Background(), nil, GetLineageInput{XRef: "@I3@"})
	require.NoError(t, err)
	require.Len(t, out.Chains, 2)

	tips := map[string]bool{}
	for _, c := range out.Chains {
		assert.Equal(t, 1, c.Depth)
		tips[c.Nodes[len(c.Nodes)-1]] = true
	}
	assert.True(t, tips["@I1@"])
	assert.True(t, tips["@I2@"])
}

func TestGetLineage_MissingXRef(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.GetLineage(context.Background(), nil, GetLineageInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xref is required")
}

func TestGetLineage_Descendants(t *testing.T) {
	svc := newTestService(t)
	loadFixture(t, svc)

	_, out, err := svc.GetLineage(context.Background(), nil, GetLineageInput{
		XRef:      "@I1@",
		Direction: "descendants",
	})
	require.NoError(t, err)
	require.Len(t, out.Chains, 1)
	assert.Equal(t, []string{"@I1@", "@I3@"}, out.Chains[0].Nodes)
}

func TestGetTrees(t *testing.T) {
	svc := newTestService(t)
	loadFixture(t, svc)

	_, out, err := svc.GetTrees(context.Background(), nil, GetTreesInput{})
	require.NoError(t, err)
	require.Len(t, out.Trees, 1)
	assert.Equal(t, "Doe", out.Trees[0].Name)
	assert.ElementsMatch(t, []string{"@I1@", "@I2@", "@I3@"}, out.Trees[0].Members)
}

func TestGraphStats_Empty(t *testing.T) {
	svc := newTestService(t)

	_, out, err := svc.GraphStats(context.Background(), nil, GraphStatsInput{})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Stats.PersonCount)
	assert.Equal(t, 0, out.Stats.EdgeCount)
}
