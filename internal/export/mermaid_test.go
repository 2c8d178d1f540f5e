package export

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/gedgraph/internal/graph"
)

func TestGenerateMermaid(t *testing.T) {
	store := graph.NewMemStore()
	ctx := context.Background()

	require.NoError(t, store.AddPerson(ctx, graph.PersonNode{XRef: "@I1@", Name: "John /Doe/", Surname: "Doe"}))
	require.NoError(t, store.AddPerson(ctx, graph.PersonNode{XRef: "@I2@", Name: "Mary /Doe/", Surname: "Doe"}))
	require.NoError(t, store.AddPerson(ctx, graph.PersonNode{XRef: "@I3@", Name: "Sam /Doe/", Surname: "Doe"}))
	require.NoError(t, store.AddFamily(ctx, graph.FamilyNode{XRef: "@F1@", ChildCount: 1}))

	require.NoError(t, store.AddEdge(ctx, graph.Edge{SourceID: "@I1@", TargetID: "@F1@", Kind: graph.EdgeKindSpouseIn, Label: graph.RoleHusband}))
	require.NoError(t, store.AddEdge(ctx, graph.Edge{SourceID: "@I2@", TargetID: "@F1@", Kind: graph.EdgeKindSpouseIn, Label: graph.RoleWife}))
	require.NoError(t, store.AddEdge(ctx, graph.Edge{SourceID: "@I3@", TargetID: "@F1@", Kind: graph.EdgeKindChildIn, Label: "unknown"}))

	require.NoError(t, store.AddTree(ctx, graph.TreeNode{
		Name: "Doe", PersonCount: 3, FamilyCount: 1,
		Members: []string{"@I1@", "@I2@", "@I3@"},
	}))

	out, err := GenerateMermaid(ctx, store)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, "subgraph")
	assert.Contains(t, out, "Doe")
	assert.Contains(t, out, "John Doe")
	assert.Contains(t, out, "-- husband -->")
	assert.Contains(t, out, "-- wife -->")
	assert.Contains(t, out, "((@F1@))")

	// An unknown pedigree renders as a plain arrow, not a labeled one.
	assert.Contains(t, out, "--> ")
	assert.NotContains(t, out, "-- unknown -->")
}

func TestGenerateMermaid_Empty(t *testing.T) {
	store := graph.NewMemStore()
	out, err := GenerateMermaid(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, "graph TD\n", out)
}
