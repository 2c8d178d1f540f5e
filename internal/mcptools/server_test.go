package mcptools

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/gedgraph/internal/graph"
)

// setupServerClient wires an MCP server and client together using in-memory
// transports. It returns the connected client session and the underlying
// GenealogyService so that tests can inspect state when needed.
func setupServerClient(t *testing.T) (*mcp.ClientSession, *GenealogyService) {
	t.Helper()

	store := graph.NewMemStore()
	svc := NewGenealogyService(store)
	server := NewGenealogyMCPServer(svc)

	st, ct := mcp.NewInMemoryTransports()

	ctx := context.Background()

	_, err := server.Connect(ctx, st, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		session.Close()
	})

	return session, svc
}

// writeFixtureGedcom writes a three-person family to a temp file and returns
// its path.
func writeFixtureGedcom(t *testing.T) string {
	t.Helper()

	lines := []string{
		"0 HEAD",
		"1 SOUR TreeMaker",
		"1 CHAR UTF-8",
		"0 @I1@ INDI",
		"1 NAME John /Doe/",
		"1 SEX M",
		"1 FAMS @F1@",
		"0 @I2@ INDI",
		"1 NAME Mary /Doe/",
		"1 SEX F",
		"1 FAMS @F1@",
		"0 @I3@ INDI",
		"1 NAME Sam /Doe/",
		"1 FAMC @F1@",
		"0 @F1@ FAM",
		"1 HUSB @I1@",
		"1 WIFE @I2@",
		"1 CHIL @I3@",
		"0 TRLR",
	}
	path := filepath.Join(t.TempDir(), "family.ged")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\r\n")+"\r\n"), 0o644))
	return path
}

// TestMCPListTools verifies that the MCP server exposes exactly 5 tools with
// the expected names.
func TestMCPListTools(t *testing.T) {
	session, _ := setupServerClient(t)
	ctx := context.Background()

	result, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	require.NoError(t, err)

	require.Len(t, result.Tools, 5, "expected 5 registered tools")

	names := make([]string, len(result.Tools))
	for i, tool := range result.Tools {
		names[i] = tool.Name
	}
	sort.Strings(names)

	expected := []string{
		"get_lineage",
		"get_trees",
		"graph_stats",
		"load_gedcom",
		"query_persons",
	}
	assert.Equal(t, expected, names)
}

// TestMCPLoadGedcom calls the load_gedcom tool via the MCP client-server
// transport and checks that the returned stats reflect the fixture family.
func TestMCPLoadGedcom(t *testing.T) {
	session, _ := setupServerClient(t)
	ctx := context.Background()

	args := LoadGedcomInput{
		FilePath: writeFixtureGedcom(t),
	}

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "load_gedcom",
		Arguments: args,
	})
	require.NoError(t, err)
	require.False(t, result.IsError, "load_gedcom should not return an error")

	// The structured output should contain the stats.
	require.NotNil(t, result.StructuredContent, "expected structured content from load_gedcom")

	raw, err := json.Marshal(result.StructuredContent)
	require.NoError(t, err)

	var output LoadGedcomOutput
	err = json.Unmarshal(raw, &output)
	require.NoError(t, err)

	assert.Equal(t, 3, output.Stats.PersonCount, "fixture has 3 persons")
	assert.Equal(t, 1, output.Stats.FamilyCount, "fixture has 1 family")
	assert.Equal(t, 1, output.Stats.TreeCount, "fixture forms one tree")
	assert.Greater(t, output.Stats.EdgeCount, 0, "expected at least one edge")
}

// TestMCPQueryPersons loads the fixture via MCP, then queries for persons,
// ensuring results are returned.
func TestMCPQueryPersons(t *testing.T) {
	session, _ := setupServerClient(t)
	ctx := context.Background()

	loadResult, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "load_gedcom",
		Arguments: LoadGedcomInput{FilePath: writeFixtureGedcom(t)},
	})
	require.NoError(t, err)
	require.False(t, loadResult.IsError, "load_gedcom should succeed")

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "query_persons",
		Arguments: QueryPersonsInput{Query: "Doe", Limit: 10},
	})
	require.NoError(t, err)
	require.False(t, result.IsError, "query_persons should not return an error")

	require.NotNil(t, result.StructuredContent, "expected structured content from query_persons")

	raw, err := json.Marshal(result.StructuredContent)
	require.NoError(t, err)

	var output QueryPersonsOutput
	err = json.Unmarshal(raw, &output)
	require.NoError(t, err)

	assert.Equal(t, 3, output.Total, "all three persons carry the surname Doe")

	found := false
	for _, p := range output.Persons {
		if p.XRef == "@I1@" {
			found = true
			break
		}
	}
	assert.True(t, found, "expected to find @I1@ in results")
}

// TestMCPCallUnknownTool verifies that calling a non-existent tool returns an
// error.
func TestMCPCallUnknownTool(t *testing.T) {
	session, _ := setupServerClient(t)
	ctx := context.Background()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "nonexistent_tool",
		Arguments: map[string]any{},
	})

	// The MCP SDK may return an error at the protocol level or set IsError on
	// the result. Accept either behavior.
	if err != nil {
		// Protocol-level error is acceptable for unknown tools.
		return
	}

	require.NotNil(t, result)
	assert.True(t, result.IsError, "calling an unknown tool should set IsError")
}
