package graph

import (
	"context"
	"fmt"
	"sort"

	"github.com/dusk-indust/gedgraph/internal/gedcom"
)

// Load projects a parsed genealogy database into the graph store: person,
// family and source nodes, membership and citation edges, then the connected
// tree components. Records are inserted in sorted xref order so repeated
// loads of the same file produce identical graphs.
func Load(ctx context.Context, store Store, db *gedcom.Database) (*GraphStats, error) {
	persons, err := loadPersons(ctx, store, db)
	if err != nil {
		return nil, err
	}
	if err := loadFamilies(ctx, store, db); err != nil {
		return nil, err
	}
	if err := loadSources(ctx, store, db); err != nil {
		return nil, err
	}
	if err := loadEdges(ctx, store, db); err != nil {
		return nil, err
	}
	if _, err := ComputeTrees(ctx, store, persons); err != nil {
		return nil, fmt.Errorf("compute trees: %w", err)
	}
	return store.Stats(ctx)
}

func loadPersons(ctx context.Context, store Store, db *gedcom.Database) ([]PersonNode, error) {
	persons := make([]PersonNode, 0, len(db.Individuals))
	for _, xref := range sortedKeys(db.Individuals) {
		persons = append(persons, personNode(db.Individuals[xref]))
	}
	for _, p := range persons {
		if err := store.AddPerson(ctx, p); err != nil {
			return nil, fmt.Errorf("add person %s: %w", p.XRef, err)
		}
	}
	return persons, nil
}

func loadFamilies(ctx context.Context, store Store, db *gedcom.Database) error {
	for _, xref := range sortedKeys(db.Families) {
		fam := db.Families[xref]
		node := FamilyNode{
			XRef:         xref,
			MarriageYear: eventYear(fam.Events, "MARR"),
			ChildCount:   len(fam.Children),
		}
		if err := store.AddFamily(ctx, node); err != nil {
			return fmt.Errorf("add family %s: %w", xref, err)
		}
	}
	return nil
}

func loadSources(ctx context.Context, store Store, db *gedcom.Database) error {
	for _, xref := range sortedKeys(db.Sources) {
		src := db.Sources[xref]
		node := SourceNode{
			XRef:        xref,
			Title:       src.Title,
			Synthesized: src.Synthesized(),
		}
		if err := store.AddSource(ctx, node); err != nil {
			return fmt.Errorf("add source %s: %w", xref, err)
		}
	}
	return nil
}

// loadEdges walks the family membership from the individual side, where the
// resolver has already synthesized every reciprocal link and computed the
// pedigree classifications. Citation edges are deduplicated per record.
func loadEdges(ctx context.Context, store Store, db *gedcom.Database) error {
	for _, xref := range sortedKeys(db.Individuals) {
		ind := db.Individuals[xref]
		for _, link := range ind.FamilyLinks {
			if _, ok := db.Families[link.Family]; !ok {
				continue // dangling, already in the anomaly log
			}
			var edge Edge
			switch link.Kind {
			case gedcom.LinkSpouse:
				edge = Edge{
					SourceID: xref,
					TargetID: link.Family,
					Kind:     EdgeKindSpouseIn,
					Label:    spouseRole(db.Families[link.Family], xref),
				}
			case gedcom.LinkChild:
				edge = Edge{
					SourceID: xref,
					TargetID: link.Family,
					Kind:     EdgeKindChildIn,
					Label:    link.Pedigree.String(),
				}
			}
			if err := store.AddEdge(ctx, edge); err != nil {
				return fmt.Errorf("add %s edge %s: %w", edge.Kind, xref, err)
			}
		}
		if err := addCitationEdges(ctx, store, db, xref, EdgeKindCites, individualSources(ind)); err != nil {
			return err
		}
	}

	for _, xref := range sortedKeys(db.Families) {
		fam := db.Families[xref]
		if err := addCitationEdges(ctx, store, db, xref, EdgeKindFamilyCites, familySources(fam)); err != nil {
			return err
		}
	}
	return nil
}

func addCitationEdges(ctx context.Context, store Store, db *gedcom.Database, xref string, kind EdgeKind, sources []string) error {
	for _, src := range sources {
		if _, ok := db.Sources[src]; !ok {
			continue
		}
		edge := Edge{SourceID: xref, TargetID: src, Kind: kind}
		if err := store.AddEdge(ctx, edge); err != nil {
			return fmt.Errorf("add %s edge %s: %w", kind, xref, err)
		}
	}
	return nil
}

// personNode projects an individual record onto its graph node.
func personNode(ind *gedcom.IndividualRecord) PersonNode {
	node := PersonNode{
		XRef:      ind.XRef(),
		Sex:       ind.Sex.String(),
		BirthYear: eventYear(ind.Events, "BIRT"),
		DeathYear: eventYear(ind.Events, "DEAT"),
	}
	if name := ind.Name(); name != nil {
		node.Name = name.Full
		node.Surname = name.Surname
	}
	return node
}

// eventYear returns the year of the first event with the given tag that
// carries a parsed date, or 0.
func eventYear(events []*gedcom.Event, tag string) int {
	for _, ev := range events {
		if ev.Tag == tag && ev.DateValue != nil && ev.DateValue.Year > 0 {
			return ev.DateValue.Year
		}
	}
	return 0
}

// spouseRole derives the SPOUSE_IN edge label from which side of the family
// names this person.
func spouseRole(fam *gedcom.FamilyRecord, xref string) string {
	switch xref {
	case fam.Husband:
		return RoleHusband
	case fam.Wife:
		return RoleWife
	}
	return ""
}

// individualSources collects the distinct source xrefs cited anywhere on an
// individual: the record itself, its names and its events.
func individualSources(ind *gedcom.IndividualRecord) []string {
	var cits []*gedcom.SourceCitation
	cits = append(cits, ind.Citations...)
	for _, n := range ind.Names {
		cits = append(cits, n.Citations...)
	}
	for _, ev := range ind.Events {
		cits = append(cits, ev.Citations...)
	}
	return distinctSources(cits)
}

// familySources collects the distinct source xrefs cited on a family and its
// events.
func familySources(fam *gedcom.FamilyRecord) []string {
	var cits []*gedcom.SourceCitation
	cits = append(cits, fam.Citations...)
	for _, ev := range fam.Events {
		cits = append(cits, ev.Citations...)
	}
	return distinctSources(cits)
}

func distinctSources(cits []*gedcom.SourceCitation) []string {
	seen := make(map[string]bool, len(cits))
	var out []string
	for _, c := range cits {
		if c.Source == "" || seen[c.Source] {
			continue
		}
		seen[c.Source] = true
		out = append(out, c.Source)
	}
	sort.Strings(out)
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
