package graph

// --- Enums ---

// NodeKind classifies nodes in the genealogy graph.
type NodeKind string

const (
	NodeKindPerson NodeKind = "person"
	NodeKindFamily NodeKind = "family"
	NodeKindSource NodeKind = "source"
	NodeKindTree   NodeKind = "tree"
)

// EdgeKind classifies relationships between nodes.
type EdgeKind string

const (
	// EdgeKindSpouseIn links a person to a family they head (Person -> Family).
	EdgeKindSpouseIn EdgeKind = "SPOUSE_IN"
	// EdgeKindChildIn links a person to the family they are a child of.
	EdgeKindChildIn EdgeKind = "CHILD_IN"
	// EdgeKindCites links a person to a source cited for them.
	EdgeKindCites EdgeKind = "CITES"
	// EdgeKindFamilyCites links a family to a source cited for it.
	EdgeKindFamilyCites EdgeKind = "FAM_CITES"
	// EdgeKindBelongs links a person to the connected tree containing them.
	EdgeKindBelongs EdgeKind = "BELONGS"
)

// Spouse roles carried on SPOUSE_IN edges.
const (
	RoleHusband = "husband"
	RoleWife    = "wife"
)

// --- Models ---

// PersonNode is one individual projected into the graph.
type PersonNode struct {
	XRef      string `json:"xref"`
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	Sex       string `json:"sex"`
	BirthYear int    `json:"birthYear"` // 0 when unknown
	DeathYear int    `json:"deathYear"` // 0 when unknown
}

// FamilyNode is one family unit projected into the graph.
type FamilyNode struct {
	XRef         string `json:"xref"`
	MarriageYear int    `json:"marriageYear"` // 0 when unknown
	ChildCount   int    `json:"childCount"`
}

// SourceNode is one source record projected into the graph.
type SourceNode struct {
	XRef        string `json:"xref"`
	Title       string `json:"title"`
	Synthesized bool   `json:"synthesized"`
}

// TreeNode is a connected component of persons and families: one family
// tree within the file. Files routinely contain several disjoint trees.
type TreeNode struct {
	Name        string   `json:"name"` // dominant surname, or the root xref
	PersonCount int      `json:"personCount"`
	FamilyCount int      `json:"familyCount"`
	Members     []string `json:"members"` // person xrefs
}

// Edge is one relationship between two nodes. Label carries the spouse role
// on SPOUSE_IN edges and the pedigree classification on CHILD_IN edges.
type Edge struct {
	SourceID string   `json:"sourceId"`
	TargetID string   `json:"targetId"`
	Kind     EdgeKind `json:"kind"`
	Label    string   `json:"label,omitempty"`
}

// GraphStats summarizes a loaded genealogy graph.
type GraphStats struct {
	PersonCount int `json:"personCount"`
	FamilyCount int `json:"familyCount"`
	SourceCount int `json:"sourceCount"`
	TreeCount   int `json:"treeCount"`
	EdgeCount   int `json:"edgeCount"`
}

// LineageChain is an ordered line of descent or ancestry. Nodes holds person
// xrefs from the starting person outward; Depth counts generations.
type LineageChain struct {
	Nodes []string `json:"nodes"`
	Depth int      `json:"depth"`
}
