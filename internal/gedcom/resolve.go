package gedcom

import (
	"fmt"
	"sort"
)

// resolve runs once after end-of-stream flush, over the completed database:
// header fixups, reciprocal family links and pedigree computation, the
// dangling-reference audit, citation back-linking, and source title
// backfill. Everything here is tolerant: problems are logged as anomalies
// and the graph is still returned usable.
func (p *parser) resolve() {
	p.fixupHeader()
	p.relinkFamilies()
	p.auditReferences()
	p.backlinkCitations()
	p.backfillTitles()
}

// fixupHeader relocates a pointer-form header note into the content
// description and defaults a missing application name to the system id.
func (p *parser) fixupHeader() {
	h := p.db.Header
	if h == nil {
		return
	}
	if h.NoteXRef != "" {
		if note, ok := p.db.Notes[h.NoteXRef]; ok {
			h.ContentDescription = note.Text
			p.db.removeNote(h.NoteXRef)
			p.removedNotes[h.NoteXRef] = true
		}
	}
	if h.SourceName == "" && h.SourceID != "" {
		h.SourceName = h.SourceID
	}
}

// relinkFamilies guarantees that every spouse and child a family names has
// a reciprocal FamilyLink on the individual's side, then computes each
// child's final pedigree. The merge precedence, lowest to highest:
//
//  1. the default unknown classification
//  2. FAM-level vendor tags and legacy adoption/foster tags recorded
//     during parsing (plus the link's own PEDI / _FREL / _MREL)
//  3. a birth event on the child referencing this family: both sides birth
//  4. an adoption event on the child referencing this family: the adopting
//     side(s) become adopted, overriding tier 3
//
// The per-family transient tracking structures are cleared afterwards.
func (p *parser) relinkFamilies() {
	for _, fam := range p.db.Families {
		if ind, ok := p.db.Individuals[fam.Husband]; ok {
			p.ensureSpouseLink(ind, fam.XRef())
		}
		if ind, ok := p.db.Individuals[fam.Wife]; ok {
			p.ensureSpouseLink(ind, fam.XRef())
		}
		for _, child := range fam.Children {
			ind, ok := p.db.Individuals[child]
			if !ok {
				continue // the audit reports the dangling child ref
			}
			link := p.ensureChildLink(ind, fam.XRef())
			p.classifyChild(fam, ind, link)
		}
		fam.clearChildRelations()
	}
}

// ensureSpouseLink returns the individual's spouse link to the family,
// synthesizing one when the individual never stated it. The first spouse
// link an individual acquires is the preferred one.
func (p *parser) ensureSpouseLink(ind *IndividualRecord, famXRef string) *FamilyLink {
	for _, l := range ind.FamilyLinks {
		if l.Kind == LinkSpouse && l.Family == famXRef {
			return l
		}
	}
	l := &FamilyLink{Family: famXRef, Kind: LinkSpouse, Preferred: len(ind.SpouseLinks()) == 0}
	l.db = p.db
	ind.FamilyLinks = append(ind.FamilyLinks, l)
	return l
}

func (p *parser) ensureChildLink(ind *IndividualRecord, famXRef string) *FamilyLink {
	for _, l := range ind.FamilyLinks {
		if l.Kind == LinkChild && l.Family == famXRef {
			return l
		}
	}
	l := &FamilyLink{Family: famXRef, Kind: LinkChild}
	l.db = p.db
	ind.FamilyLinks = append(ind.FamilyLinks, l)
	return l
}

// classifyChild merges the pedigree evidence for one child of one family
// into the child's FamilyLink.
func (p *parser) classifyChild(fam *FamilyRecord, ind *IndividualRecord, link *FamilyLink) {
	father, mother := link.FatherRel, link.MotherRel

	// Tier 2: the link's own overall PEDI applies to both sides where a
	// side-specific marker is absent, then FAM-level markers overlay.
	if link.Pedigree != PedigreeUnknown {
		if father == PedigreeUnknown {
			father = link.Pedigree
		}
		if mother == PedigreeUnknown {
			mother = link.Pedigree
		}
	}
	if famFather, famMother, ok := fam.ChildRelation(ind.XRef()); ok {
		if famFather != PedigreeUnknown {
			father = famFather
		}
		if famMother != PedigreeUnknown {
			mother = famMother
		}
	}

	// Tier 3: an explicit birth event referencing this family proves both
	// parents natural; birth events do not distinguish sides.
	for _, ev := range ind.Events {
		if ev.Tag == "BIRT" && ev.FamilyXRef == fam.XRef() {
			father, mother = PedigreeBirth, PedigreeBirth
		}
	}

	// Tier 4: an explicit adoption event referencing this family overrides
	// the adopting side(s).
	for _, ev := range ind.Events {
		if ev.Tag != "ADOP" || ev.FamilyXRef != fam.XRef() {
			continue
		}
		switch ev.AdoptedBy {
		case AdopHusband:
			father = PedigreeAdopted
		case AdopWife:
			mother = PedigreeAdopted
		default:
			father, mother = PedigreeAdopted, PedigreeAdopted
		}
	}

	link.FatherRel = father
	link.MotherRel = mother
	link.Pedigree = overallPedigree(father, mother)
}

// overallPedigree collapses the two parental sides into the link's single
// classification.
func overallPedigree(father, mother Pedigree) Pedigree {
	if father == mother {
		return father
	}
	switch {
	case father == PedigreeAdopted || mother == PedigreeAdopted:
		return PedigreeAdopted
	case father == PedigreeFoster || mother == PedigreeFoster:
		return PedigreeFoster
	case father == PedigreeBirth || mother == PedigreeBirth:
		return PedigreeBirth
	}
	return PedigreeUnknown
}

// auditReferences verifies every referencing use recorded during parsing.
// Resolvable references bump the target's reference counter, except
// individuals and families, which are principals and not counted. A
// reference that fails to resolve is logged unless its target was a
// deliberately discarded empty note.
func (p *parser) auditReferences() {
	for _, use := range p.refs {
		rec := p.db.Lookup(use.xref)
		if rec == nil {
			if !p.removedNotes[use.xref] {
				p.anomaly(use.line, "dangling reference %s", use.xref)
			}
			continue
		}
		switch rec.(type) {
		case *IndividualRecord, *FamilyRecord:
		default:
			if n, ok := rec.(node); ok {
				n.base().refs++
			}
		}
	}
}

// backlinkCitations attaches collected citations to the source and
// repository records they name.
func (p *parser) backlinkCitations() {
	for _, cit := range p.citations {
		if src, ok := p.db.Sources[cit.Source]; ok {
			src.Citations = append(src.Citations, cit)
		} else if !p.removedNotes[cit.Source] {
			p.anomaly(0, "citation of unknown source %s", cit.Source)
		}
	}
	for _, rc := range p.repoCitations {
		if repo, ok := p.db.Repositories[rc.Repository]; ok {
			repo.Citations = append(repo.Citations, rc)
		} else {
			p.anomaly(0, "citation of unknown repository %s", rc.Repository)
		}
	}
}

// backfillTitles assigns a sequential placeholder title to every source
// left without one, in stable xref order.
func (p *parser) backfillTitles() {
	xrefs := make([]string, 0, len(p.db.Sources))
	for xref, src := range p.db.Sources {
		if src.Title == "" {
			xrefs = append(xrefs, xref)
		}
	}
	sort.Strings(xrefs)
	for i, xref := range xrefs {
		p.db.Sources[xref].Title = fmt.Sprintf("Untitled source %d", i+1)
	}
}
