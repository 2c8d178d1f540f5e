package export

import (
	"sort"
	"time"

	"github.com/dusk-indust/gedgraph/internal/gedcom"
)

// DatabaseExport is the top-level JSON export structure for one parsed file.
type DatabaseExport struct {
	SourceSystem string         `json:"sourceSystem,omitempty"`
	Charset      string         `json:"charset,omitempty"`
	ExportedAt   string         `json:"exportedAt"`
	Persons      []PersonExport `json:"persons"`
	Families     []FamilyExport `json:"families"`
	Sources      []SourceExport `json:"sources,omitempty"`
	Anomalies    []string       `json:"anomalies,omitempty"`
}

// PersonExport describes one individual.
type PersonExport struct {
	XRef     string          `json:"xref"`
	Name     string          `json:"name,omitempty"`
	Surname  string          `json:"surname,omitempty"`
	Sex      string          `json:"sex"`
	Events   []EventExport   `json:"events,omitempty"`
	SpouseIn []string        `json:"spouseIn,omitempty"`
	ChildIn  []ChildInExport `json:"childIn,omitempty"`
}

// ChildInExport is one child-to-family link with its classification.
type ChildInExport struct {
	Family   string `json:"family"`
	Pedigree string `json:"pedigree"`
}

// EventExport describes one event or attribute.
type EventExport struct {
	Tag   string `json:"tag"`
	Type  string `json:"type,omitempty"`
	Value string `json:"value,omitempty"`
	Date  string `json:"date,omitempty"`
	Place string `json:"place,omitempty"`
	Age   string `json:"age,omitempty"`
}

// FamilyExport describes one family unit.
type FamilyExport struct {
	XRef     string        `json:"xref"`
	Husband  string        `json:"husband,omitempty"`
	Wife     string        `json:"wife,omitempty"`
	Children []string      `json:"children,omitempty"`
	Events   []EventExport `json:"events,omitempty"`
}

// SourceExport describes one source record.
type SourceExport struct {
	XRef        string `json:"xref"`
	Title       string `json:"title"`
	Author      string `json:"author,omitempty"`
	Synthesized bool   `json:"synthesized,omitempty"`
	Citations   int    `json:"citations"`
}

// ExportDatabase builds a DatabaseExport from a parsed database. Records are
// emitted in sorted xref order so exports diff cleanly.
func ExportDatabase(db *gedcom.Database) *DatabaseExport {
	out := &DatabaseExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Persons:    make([]PersonExport, 0, len(db.Individuals)),
		Families:   make([]FamilyExport, 0, len(db.Families)),
	}
	if db.Header != nil {
		out.SourceSystem = db.Header.SourceName
		out.Charset = db.Header.Charset
	}

	for _, xref := range sortedKeys(db.Individuals) {
		out.Persons = append(out.Persons, exportPerson(db.Individuals[xref]))
	}
	for _, xref := range sortedKeys(db.Families) {
		fam := db.Families[xref]
		out.Families = append(out.Families, FamilyExport{
			XRef:     xref,
			Husband:  fam.Husband,
			Wife:     fam.Wife,
			Children: fam.Children,
			Events:   exportEvents(fam.Events),
		})
	}
	for _, xref := range sortedKeys(db.Sources) {
		src := db.Sources[xref]
		out.Sources = append(out.Sources, SourceExport{
			XRef:        xref,
			Title:       src.Title,
			Author:      src.Author,
			Synthesized: src.Synthesized(),
			Citations:   len(src.Citations),
		})
	}
	for _, a := range db.Anomalies {
		out.Anomalies = append(out.Anomalies, a.String())
	}
	return out
}

func exportPerson(ind *gedcom.IndividualRecord) PersonExport {
	p := PersonExport{
		XRef:   ind.XRef(),
		Sex:    ind.Sex.String(),
		Events: exportEvents(ind.Events),
	}
	if name := ind.Name(); name != nil {
		p.Name = name.Full
		p.Surname = name.Surname
	}
	for _, link := range ind.SpouseLinks() {
		p.SpouseIn = append(p.SpouseIn, link.Family)
	}
	for _, link := range ind.ChildLinks() {
		p.ChildIn = append(p.ChildIn, ChildInExport{
			Family:   link.Family,
			Pedigree: link.Pedigree.String(),
		})
	}
	return p
}

func exportEvents(events []*gedcom.Event) []EventExport {
	out := make([]EventExport, 0, len(events))
	for _, ev := range events {
		e := EventExport{
			Tag:   ev.Tag,
			Type:  ev.Type,
			Value: ev.Value,
			Date:  ev.Date,
			Age:   ev.Age,
		}
		if ev.Place != nil {
			e.Place = ev.Place.Name
		}
		out = append(out, e)
	}
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
