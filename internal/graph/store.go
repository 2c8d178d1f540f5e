package graph

import (
	"context"
	"io"
)

// Store is the interface for the genealogy graph backend.
// Implementations: KuzuStore (persistent), MemStore (in-memory, testing).
// All graph DB access goes through this interface.
type Store interface {
	io.Closer

	// Schema setup, called once before any data is inserted.
	InitSchema(ctx context.Context) error

	// Write operations.
	AddPerson(ctx context.Context, node PersonNode) error
	AddFamily(ctx context.Context, node FamilyNode) error
	AddSource(ctx context.Context, node SourceNode) error
	AddTree(ctx context.Context, node TreeNode) error
	AddEdge(ctx context.Context, edge Edge) error

	// Read operations.
	GetPerson(ctx context.Context, xref string) (*PersonNode, error)
	GetFamily(ctx context.Context, xref string) (*FamilyNode, error)
	QueryPersons(ctx context.Context, query string, limit int) ([]PersonNode, error)
	GetAllEdges(ctx context.Context) ([]Edge, error)

	// Graph traversal.
	GetLineage(ctx context.Context, xref string, direction Direction, maxDepth int) ([]LineageChain, error)
	GetTrees(ctx context.Context) ([]TreeNode, error)

	// Stats.
	Stats(ctx context.Context) (*GraphStats, error)
}

// Direction controls lineage traversal direction.
type Direction string

const (
	DirectionAncestors   Direction = "ancestors"   // parents, grandparents, ...
	DirectionDescendants Direction = "descendants" // children, grandchildren, ...
)
