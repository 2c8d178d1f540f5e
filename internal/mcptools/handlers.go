package mcptools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dusk-indust/gedgraph/internal/gedcom"
	"github.com/dusk-indust/gedgraph/internal/graph"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// GenealogyService holds the graph store used by MCP tool handlers.
type GenealogyService struct {
	store       graph.Store
	projectRoot string // used for persisting the graph to disk
}

// NewGenealogyService creates a GenealogyService backed by the given store.
func NewGenealogyService(store graph.Store) *GenealogyService {
	return &GenealogyService{store: store}
}

// SetProjectRoot sets the project root used for graph persistence.
func (s *GenealogyService) SetProjectRoot(root string) {
	s.projectRoot = root
}

// LoadGedcom parses a GEDCOM file, projects it into the graph store, and
// computes family tree components. Returns graph statistics and the
// anomalies found while parsing.
func (s *GenealogyService) LoadGedcom(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LoadGedcomInput,
) (*mcp.CallToolResult, LoadGedcomOutput, error) {
	if input.FilePath == "" {
		return nil, LoadGedcomOutput{}, fmt.Errorf("filePath is required")
	}

	info, err := os.Stat(input.FilePath)
	if err != nil {
		return nil, LoadGedcomOutput{}, fmt.Errorf("cannot access filePath: %w", err)
	}
	if info.IsDir() {
		return nil, LoadGedcomOutput{}, fmt.Errorf("filePath is a directory: %s", input.FilePath)
	}

	db, err := gedcom.DecodeFile(input.FilePath, gedcom.Options{
		Charset:         input.Charset,
		ReplaceXRefs:    input.ReplaceXrefs,
		ContinueOnError: input.ContinueOnError,
	})
	if err != nil {
		return nil, LoadGedcomOutput{}, fmt.Errorf("decode %s: %w", input.FilePath, err)
	}

	if err := s.store.InitSchema(ctx); err != nil {
		return nil, LoadGedcomOutput{}, fmt.Errorf("init schema: %w", err)
	}

	stats, err := graph.Load(ctx, s.store, db)
	if err != nil {
		return nil, LoadGedcomOutput{}, fmt.Errorf("load graph: %w", err)
	}

	out := LoadGedcomOutput{Stats: *stats}
	for _, a := range db.Anomalies {
		out.Anomalies = append(out.Anomalies, a.String())
	}

	// Persist the graph so CLI commands can query it without the MCP
	// server running.
	if s.projectRoot != "" {
		persistPath := filepath.Join(s.projectRoot, ".gedgraph", "graph")
		if err := persistGraph(ctx, s.store, persistPath); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to persist graph: %v\n", err)
		}
	}

	return nil, out, nil
}

// QueryPersons searches for persons by name or surname substring match.
func (s *GenealogyService) QueryPersons(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryPersonsInput,
) (*mcp.CallToolResult, QueryPersonsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	persons, err := s.store.QueryPersons(ctx, input.Query, limit)
	if err != nil {
		return nil, QueryPersonsOutput{}, fmt.Errorf("query persons: %w", err)
	}

	return nil, QueryPersonsOutput{
		Persons: persons,
		Total:   len(persons),
	}, nil
}

// GetLineage traverses the family graph from a given person.
func (s *GenealogyService) GetLineage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetLineageInput,
) (*mcp.CallToolResult, GetLineageOutput, error) {
	if input.XRef == "" {
		return nil, GetLineageOutput{}, fmt.Errorf("xref is required")
	}

	direction := graph.DirectionAncestors
	if strings.EqualFold(input.Direction, "descendants") {
		direction = graph.DirectionDescendants
	}

	maxDepth := input.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 5
	}

	chains, err := s.store.GetLineage(ctx, input.XRef, direction, maxDepth)
	if err != nil {
		return nil, GetLineageOutput{}, fmt.Errorf("get lineage: %w", err)
	}

	return nil, GetLineageOutput{Chains: chains}, nil
}

// GetTrees returns all family tree components in the graph.
func (s *GenealogyService) GetTrees(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ GetTreesInput,
) (*mcp.CallToolResult, GetTreesOutput, error) {
	trees, err := s.store.GetTrees(ctx)
	if err != nil {
		return nil, GetTreesOutput{}, fmt.Errorf("get trees: %w", err)
	}

	return nil, GetTreesOutput{Trees: trees}, nil
}

// GraphStats returns node and edge counts for the loaded graph.
func (s *GenealogyService) GraphStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ GraphStatsInput,
) (*mcp.CallToolResult, GraphStatsOutput, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, GraphStatsOutput{}, fmt.Errorf("stats: %w", err)
	}

	return nil, GraphStatsOutput{Stats: *stats}, nil
}
