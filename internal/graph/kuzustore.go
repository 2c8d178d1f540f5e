//go:build cgo

package graph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	kuzu "github.com/kuzudb/go-kuzu"
)

// KuzuStore implements the Store interface using KuzuDB as the graph backend.
// It requires CGO because the go-kuzu driver wraps KuzuDB's C library.
type KuzuStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection
}

// Compile-time check that KuzuStore satisfies Store.
var _ Store = (*KuzuStore)(nil)

// NewKuzuStore creates a KuzuStore backed by an in-memory KuzuDB instance.
func NewKuzuStore() (*KuzuStore, error) {
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(":memory:", cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// NewKuzuFileStore creates a KuzuStore backed by a file-based KuzuDB at the
// given directory path. KuzuDB creates the directory itself for new databases.
// This enables a persistent genealogy graph that survives across sessions.
func NewKuzuFileStore(dbPath string) (*KuzuStore, error) {
	// Ensure parent directory exists (KuzuDB creates the leaf directory).
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("kuzu: create parent directory: %w", err)
	}
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(dbPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open file database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// Close releases the KuzuDB connection and database.
func (s *KuzuStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// ---------- Schema setup ----------

// ddlStatements defines the Cypher DDL executed by InitSchema.
// Order matters: node tables must precede relationship tables.
var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS Person(
		xref STRING,
		name STRING,
		surname STRING,
		sex STRING,
		birth_year INT64,
		death_year INT64,
		PRIMARY KEY(xref)
	)`,
	`CREATE NODE TABLE IF NOT EXISTS Family(
		xref STRING,
		marriage_year INT64,
		child_count INT64,
		PRIMARY KEY(xref)
	)`,
	`CREATE NODE TABLE IF NOT EXISTS Source(
		xref STRING,
		title STRING,
		synthesized BOOLEAN,
		PRIMARY KEY(xref)
	)`,
	`CREATE NODE TABLE IF NOT EXISTS Tree(
		name STRING,
		person_count INT64,
		family_count INT64,
		PRIMARY KEY(name)
	)`,
	`CREATE REL TABLE IF NOT EXISTS SPOUSE_IN(FROM Person TO Family, role STRING)`,
	`CREATE REL TABLE IF NOT EXISTS CHILD_IN(FROM Person TO Family, pedigree STRING)`,
	`CREATE REL TABLE IF NOT EXISTS CITES(FROM Person TO Source)`,
	`CREATE REL TABLE IF NOT EXISTS FAM_CITES(FROM Family TO Source)`,
	`CREATE REL TABLE IF NOT EXISTS BELONGS(FROM Person TO Tree)`,
}

// InitSchema creates all node and relationship tables if they do not exist.
func (s *KuzuStore) InitSchema(_ context.Context) error {
	for _, stmt := range ddlStatements {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("kuzu: init schema: %w", err)
		}
		res.Close()
	}
	return nil
}

// ---------- Write operations ----------

// AddPerson inserts a Person node.
func (s *KuzuStore) AddPerson(_ context.Context, node PersonNode) error {
	return s.exec(
		`CREATE (p:Person {
			xref: $xref,
			name: $name,
			surname: $surname,
			sex: $sex,
			birth_year: $by,
			death_year: $dy
		})`,
		map[string]any{
			"xref":    node.XRef,
			"name":    node.Name,
			"surname": node.Surname,
			"sex":     node.Sex,
			"by":      int64(node.BirthYear),
			"dy":      int64(node.DeathYear),
		},
	)
}

// AddFamily inserts a Family node.
func (s *KuzuStore) AddFamily(_ context.Context, node FamilyNode) error {
	return s.exec(
		"CREATE (f:Family {xref: $xref, marriage_year: $my, child_count: $cc})",
		map[string]any{
			"xref": node.XRef,
			"my":   int64(node.MarriageYear),
			"cc":   int64(node.ChildCount),
		},
	)
}

// AddSource inserts a Source node.
func (s *KuzuStore) AddSource(_ context.Context, node SourceNode) error {
	return s.exec(
		"CREATE (s:Source {xref: $xref, title: $title, synthesized: $syn})",
		map[string]any{
			"xref":  node.XRef,
			"title": node.Title,
			"syn":   node.Synthesized,
		},
	)
}

// AddTree inserts a Tree node. Membership arrives as BELONGS edges.
func (s *KuzuStore) AddTree(_ context.Context, node TreeNode) error {
	return s.exec(
		"CREATE (t:Tree {name: $name, person_count: $pc, family_count: $fc})",
		map[string]any{
			"name": node.Name,
			"pc":   int64(node.PersonCount),
			"fc":   int64(node.FamilyCount),
		},
	)
}

// AddEdge inserts a relationship edge between two nodes.
// The Cypher statement is chosen based on the EdgeKind.
func (s *KuzuStore) AddEdge(_ context.Context, edge Edge) error {
	cypher, err := edgeCypher(edge.Kind)
	if err != nil {
		return err
	}
	return s.exec(cypher, map[string]any{
		"src":   edge.SourceID,
		"dst":   edge.TargetID,
		"label": edge.Label,
	})
}

// edgeCypher returns the MATCH-CREATE Cypher for the given edge kind.
func edgeCypher(kind EdgeKind) (string, error) {
	switch kind {
	case EdgeKindSpouseIn:
		return `MATCH (a:Person {xref: $src}), (b:Family {xref: $dst})
				CREATE (a)-[:SPOUSE_IN {role: $label}]->(b)`, nil
	case EdgeKindChildIn:
		return `MATCH (a:Person {xref: $src}), (b:Family {xref: $dst})
				CREATE (a)-[:CHILD_IN {pedigree: $label}]->(b)`, nil
	case EdgeKindCites:
		return `MATCH (a:Person {xref: $src}), (b:Source {xref: $dst})
				CREATE (a)-[:CITES]->(b)`, nil
	case EdgeKindFamilyCites:
		return `MATCH (a:Family {xref: $src}), (b:Source {xref: $dst})
				CREATE (a)-[:FAM_CITES]->(b)`, nil
	case EdgeKindBelongs:
		return `MATCH (a:Person {xref: $src}), (b:Tree {name: $dst})
				CREATE (a)-[:BELONGS]->(b)`, nil
	default:
		return "", fmt.Errorf("kuzu: unsupported edge kind: %s", kind)
	}
}

// ---------- Read operations ----------

// GetPerson retrieves a single Person node by xref, or nil if not found.
func (s *KuzuStore) GetPerson(_ context.Context, xref string) (*PersonNode, error) {
	rows, err := s.query(
		`MATCH (p:Person {xref: $xref})
		 RETURN p.xref, p.name, p.surname, p.sex, p.birth_year, p.death_year`,
		map[string]any{"xref": xref},
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rowToPerson(rows[0]), nil
}

// GetFamily retrieves a single Family node by xref, or nil if not found.
func (s *KuzuStore) GetFamily(_ context.Context, xref string) (*FamilyNode, error) {
	rows, err := s.query(
		"MATCH (f:Family {xref: $xref}) RETURN f.xref, f.marriage_year, f.child_count",
		map[string]any{"xref": xref},
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	r := rows[0]
	return &FamilyNode{
		XRef:         toString(r[0]),
		MarriageYear: toInt(r[1]),
		ChildCount:   toInt(r[2]),
	}, nil
}

// QueryPersons returns persons whose name contains the query string.
func (s *KuzuStore) QueryPersons(_ context.Context, queryStr string, limit int) ([]PersonNode, error) {
	rows, err := s.query(
		`MATCH (p:Person) WHERE p.name CONTAINS $q OR p.surname CONTAINS $q
		 RETURN p.xref, p.name, p.surname, p.sex, p.birth_year, p.death_year
		 LIMIT $lim`,
		map[string]any{
			"q":   queryStr,
			"lim": int64(limit),
		},
	)
	if err != nil {
		return nil, err
	}
	out := make([]PersonNode, 0, len(rows))
	for _, r := range rows {
		out = append(out, *rowToPerson(r))
	}
	return out, nil
}

// ---------- Graph traversal ----------

// GetLineage performs a BFS from the given person, one generation per step.
// It returns one LineageChain per reachable ancestor or descendant.
func (s *KuzuStore) GetLineage(_ context.Context, xref string, dir Direction, maxDepth int) ([]LineageChain, error) {
	if maxDepth <= 0 {
		maxDepth = 10
	}

	// BFS state.
	type bfsEntry struct {
		path  []string
		depth int
	}
	visited := map[string]bool{xref: true}
	queue := []bfsEntry{{path: []string{xref}, depth: 0}}
	var chains []LineageChain

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.depth >= maxDepth {
			continue
		}
		tip := cur.path[len(cur.path)-1]
		relatives, err := s.relatives(tip, dir)
		if err != nil {
			return nil, err
		}
		for _, nb := range relatives {
			if visited[nb] {
				continue
			}
			visited[nb] = true
			newPath := make([]string, len(cur.path)+1)
			copy(newPath, cur.path)
			newPath[len(cur.path)] = nb
			chains = append(chains, LineageChain{
				Nodes: newPath,
				Depth: cur.depth + 1,
			})
			queue = append(queue, bfsEntry{path: newPath, depth: cur.depth + 1})
		}
	}
	return chains, nil
}

// relatives returns the persons one generation away, pivoting through the
// family node: parents for ancestors, children for descendants.
func (s *KuzuStore) relatives(xref string, dir Direction) ([]string, error) {
	var cypher string
	switch dir {
	case DirectionAncestors:
		cypher = `MATCH (c:Person {xref: $xref})-[:CHILD_IN]->(f:Family)<-[:SPOUSE_IN]-(p:Person)
				  RETURN p.xref`
	case DirectionDescendants:
		cypher = `MATCH (p:Person {xref: $xref})-[:SPOUSE_IN]->(f:Family)<-[:CHILD_IN]-(c:Person)
				  RETURN c.xref`
	default:
		return nil, fmt.Errorf("kuzu: unknown direction: %s", dir)
	}
	rows, err := s.query(cypher, map[string]any{"xref": xref})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, toString(r[0]))
	}
	return out, nil
}

// GetTrees returns all Tree nodes with their members.
func (s *KuzuStore) GetTrees(_ context.Context) ([]TreeNode, error) {
	rows, err := s.query(
		"MATCH (t:Tree) RETURN t.name, t.person_count, t.family_count",
		nil,
	)
	if err != nil {
		return nil, err
	}
	out := make([]TreeNode, 0, len(rows))
	for _, r := range rows {
		name := toString(r[0])

		// Fetch members via BELONGS edges.
		memberRows, err := s.query(
			"MATCH (p:Person)-[:BELONGS]->(t:Tree {name: $name}) RETURN p.xref",
			map[string]any{"name": name},
		)
		if err != nil {
			return nil, err
		}
		members := make([]string, 0, len(memberRows))
		for _, mr := range memberRows {
			members = append(members, toString(mr[0]))
		}

		out = append(out, TreeNode{
			Name:        name,
			PersonCount: toInt(r[1]),
			FamilyCount: toInt(r[2]),
			Members:     members,
		})
	}
	return out, nil
}

// ---------- Edge enumeration ----------

// GetAllEdges returns all edges across all relationship tables.
func (s *KuzuStore) GetAllEdges(_ context.Context) ([]Edge, error) {
	type relQuery struct {
		cypher string
		kind   EdgeKind
	}

	queries := []relQuery{
		{"MATCH (a:Person)-[r:SPOUSE_IN]->(b:Family) RETURN a.xref, b.xref, r.role", EdgeKindSpouseIn},
		{"MATCH (a:Person)-[r:CHILD_IN]->(b:Family) RETURN a.xref, b.xref, r.pedigree", EdgeKindChildIn},
		{"MATCH (a:Person)-[:CITES]->(b:Source) RETURN a.xref, b.xref, ''", EdgeKindCites},
		{"MATCH (a:Family)-[:FAM_CITES]->(b:Source) RETURN a.xref, b.xref, ''", EdgeKindFamilyCites},
		{"MATCH (a:Person)-[:BELONGS]->(b:Tree) RETURN a.xref, b.name, ''", EdgeKindBelongs},
	}

	var edges []Edge
	for _, q := range queries {
		rows, err := s.query(q.cypher, nil)
		if err != nil {
			// Table may not exist yet; skip.
			continue
		}
		for _, r := range rows {
			edges = append(edges, Edge{
				SourceID: toString(r[0]),
				TargetID: toString(r[1]),
				Kind:     q.kind,
				Label:    toString(r[2]),
			})
		}
	}
	return edges, nil
}

// ---------- Stats ----------

// Stats returns counts of all node and edge tables.
func (s *KuzuStore) Stats(_ context.Context) (*GraphStats, error) {
	persons, err := s.countTable("Person")
	if err != nil {
		return nil, err
	}
	families, err := s.countTable("Family")
	if err != nil {
		return nil, err
	}
	sources, err := s.countTable("Source")
	if err != nil {
		return nil, err
	}
	trees, err := s.countTable("Tree")
	if err != nil {
		return nil, err
	}
	edges, err := s.countEdges()
	if err != nil {
		return nil, err
	}
	return &GraphStats{
		PersonCount: persons,
		FamilyCount: families,
		SourceCount: sources,
		TreeCount:   trees,
		EdgeCount:   edges,
	}, nil
}

// ---------- Internal helpers ----------

// exec runs a parameterized Cypher statement that produces no result rows.
func (s *KuzuStore) exec(cypher string, params map[string]any) error {
	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("kuzu: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("kuzu: execute: %w", err)
	}
	res.Close()
	return nil
}

// query runs a parameterized Cypher statement and collects all result rows.
// Each row is a []any slice with values in column order.
func (s *KuzuStore) query(cypher string, params map[string]any) ([][]any, error) {
	var res *kuzu.QueryResult
	var err error

	if len(params) == 0 {
		res, err = s.conn.Query(cypher)
	} else {
		var stmt *kuzu.PreparedStatement
		stmt, err = s.conn.Prepare(cypher)
		if err != nil {
			return nil, fmt.Errorf("kuzu: prepare: %w", err)
		}
		defer stmt.Close()
		res, err = s.conn.Execute(stmt, params)
	}
	if err != nil {
		return nil, fmt.Errorf("kuzu: query: %w", err)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("kuzu: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("kuzu: row values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

// countTable returns the number of rows in a node table.
func (s *KuzuStore) countTable(table string) (int, error) {
	// Table name is a fixed internal constant, not user input.
	cypher := fmt.Sprintf("MATCH (n:%s) RETURN count(n)", table)
	rows, err := s.query(cypher, nil)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, nil
	}
	return toInt(rows[0][0]), nil
}

// countEdges returns the total number of edges across all relationship tables.
func (s *KuzuStore) countEdges() (int, error) {
	tables := []string{"SPOUSE_IN", "CHILD_IN", "CITES", "FAM_CITES", "BELONGS"}
	total := 0
	for _, t := range tables {
		cypher := fmt.Sprintf("MATCH ()-[r:%s]->() RETURN count(r)", t)
		rows, err := s.query(cypher, nil)
		if err != nil {
			// Table may not exist yet; treat as zero.
			continue
		}
		if len(rows) > 0 && len(rows[0]) > 0 {
			total += toInt(rows[0][0])
		}
	}
	return total, nil
}

// rowToPerson converts a 6-column result row into a PersonNode.
// Column order: xref, name, surname, sex, birth_year, death_year.
func rowToPerson(r []any) *PersonNode {
	return &PersonNode{
		XRef:      toString(r[0]),
		Name:      toString(r[1]),
		Surname:   toString(r[2]),
		Sex:       toString(r[3]),
		BirthYear: toInt(r[4]),
		DeathYear: toInt(r[5]),
	}
}

// ---------- Type coercion helpers ----------
// KuzuDB returns typed Go values (int64, float64, bool, string).
// These helpers safely coerce any -> concrete type.

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case int32:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
