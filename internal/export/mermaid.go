package export

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dusk-indust/gedgraph/internal/graph"
)

// GenerateMermaid produces a Mermaid graph TD diagram from a graph store.
// Persons are grouped by family tree; membership edges become arrows into
// the family nodes, labeled with the spouse role or pedigree.
func GenerateMermaid(ctx context.Context, store graph.Store) (string, error) {
	trees, err := store.GetTrees(ctx)
	if err != nil {
		return "", fmt.Errorf("get trees: %w", err)
	}

	edges, err := store.GetAllEdges(ctx)
	if err != nil {
		return "", fmt.Errorf("get edges: %w", err)
	}

	// Build node → ID mapping for Mermaid (alphanumeric only).
	nodeIDs := make(map[string]string)
	nextID := 0
	getID := func(key string) string {
		if id, ok := nodeIDs[key]; ok {
			return id
		}
		id := fmt.Sprintf("N%d", nextID)
		nextID++
		nodeIDs[key] = id
		return id
	}

	label := func(xref string) string {
		p, err := store.GetPerson(ctx, xref)
		if err != nil || p == nil || p.Name == "" {
			return xref
		}
		return strings.ReplaceAll(p.Name, "/", "")
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	// Emit tree subgraphs.
	for _, t := range trees {
		if len(t.Members) == 0 {
			continue
		}
		sorted := make([]string, len(t.Members))
		copy(sorted, t.Members)
		sort.Strings(sorted)

		sb.WriteString(fmt.Sprintf("  subgraph %s[\"%.40s\"]\n", getID(t.Name+"_tree"), t.Name))
		for _, member := range sorted {
			sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", getID(member), label(member)))
		}
		sb.WriteString("  end\n")
	}

	// Emit membership edges.
	for _, e := range edges {
		var arrow string
		switch e.Kind {
		case graph.EdgeKindSpouseIn, graph.EdgeKindChildIn:
			if e.Label != "" && e.Label != "unknown" {
				arrow = fmt.Sprintf("  %s -- %s --> %s\n", getID(e.SourceID), e.Label, getID("fam_"+e.TargetID))
			} else {
				arrow = fmt.Sprintf("  %s --> %s\n", getID(e.SourceID), getID("fam_"+e.TargetID))
			}
		default:
			continue
		}
		sb.WriteString(arrow)
	}

	// Family pivot nodes referenced by the edges above.
	famKeys := make([]string, 0)
	for key := range nodeIDs {
		if strings.HasPrefix(key, "fam_") {
			famKeys = append(famKeys, key)
		}
	}
	sort.Strings(famKeys)
	for _, key := range famKeys {
		sb.WriteString(fmt.Sprintf("  %s((%s))\n", nodeIDs[key], strings.TrimPrefix(key, "fam_")))
	}

	return sb.String(), nil
}
