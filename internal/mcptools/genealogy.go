package mcptools

import "github.com/dusk-indust/gedgraph/internal/graph"

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// LoadGedcomInput is the input for the load_gedcom MCP tool.
type LoadGedcomInput struct {
	FilePath        string `json:"filePath" jsonschema:"the absolute path to the GEDCOM file to load"`
	Charset         string `json:"charset,omitempty" jsonschema:"force a character set by name (e.g. UTF-8, LATIN1, IBMPC), bypassing detection"`
	ReplaceXrefs    bool   `json:"replaceXrefs,omitempty" jsonschema:"rewrite every cross-reference id with a freshly generated one"`
	ContinueOnError bool   `json:"continueOnError,omitempty" jsonschema:"keep parsing past malformed lines instead of stopping at the first"`
}

// LoadGedcomOutput is the result of the load_gedcom MCP tool.
type LoadGedcomOutput struct {
	Stats     graph.GraphStats `json:"stats"`
	Anomalies []string         `json:"anomalies,omitempty"`
}

// QueryPersonsInput is the input for the query_persons MCP tool.
type QueryPersonsInput struct {
	Query string `json:"query" jsonschema:"search query matched against person names and surnames (substring, case-insensitive)"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results (default: 20)"`
}

// QueryPersonsOutput is the result of the query_persons MCP tool.
type QueryPersonsOutput struct {
	Persons []graph.PersonNode `json:"persons"`
	Total   int                `json:"total"`
}

// GetLineageInput is the input for the get_lineage MCP tool.
type GetLineageInput struct {
	XRef      string `json:"xref" jsonschema:"the cross-reference id of the starting person (e.g. @I1@)"`
	Direction string `json:"direction,omitempty" jsonschema:"ancestors (parents upward) or descendants (children downward). Default: ancestors"`
	MaxDepth  int    `json:"maxDepth,omitempty" jsonschema:"maximum number of generations to traverse (default: 5)"`
}

// GetLineageOutput is the result of the get_lineage MCP tool.
type GetLineageOutput struct {
	Chains []graph.LineageChain `json:"chains"`
}

// GetTreesInput is the input for the get_trees MCP tool.
type GetTreesInput struct{}

// GetTreesOutput is the result of the get_trees MCP tool.
type GetTreesOutput struct {
	Trees []graph.TreeNode `json:"trees"`
}

// GraphStatsInput is the input for the graph_stats MCP tool.
type GraphStatsInput struct{}

// GraphStatsOutput is the result of the graph_stats MCP tool.
type GraphStatsOutput struct {
	Stats graph.GraphStats `json:"stats"`
}
