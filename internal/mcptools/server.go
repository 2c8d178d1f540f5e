package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewGenealogyMCPServer creates an MCP server with all 5 genealogy tools registered.
func NewGenealogyMCPServer(svc *GenealogyService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "gedgraph",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "load_gedcom",
		Description: "Parse a GEDCOM file and build the genealogy graph. Tokenizes the file with charset auto-detection, assembles individuals, families, and sources, resolves cross-references, and computes family tree components.",
	}, svc.LoadGedcom)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_persons",
		Description: "Search for persons by name or surname substring match (case-insensitive). Optionally limit results.",
	}, svc.QueryPersons)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_lineage",
		Description: "Traverse the family graph from a person toward ancestors or descendants. Returns one chain per reachable relative, up to the specified number of generations.",
	}, svc.GetLineage)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_trees",
		Description: "Return all family tree components discovered during loading. Trees are connected groups of persons, named after the dominant surname.",
	}, svc.GetTrees)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "graph_stats",
		Description: "Return node and edge counts for the loaded genealogy graph.",
	}, svc.GraphStats)

	return server
}

// RunMCPServer starts an HTTP server exposing the genealogy MCP tools.
func RunMCPServer(ctx context.Context, svc *GenealogyService, addr string) error {
	server := NewGenealogyMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
