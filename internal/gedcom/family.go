package gedcom

// childRelation tracks the per-child, per-parental-side pedigree markers
// collected while the family is being parsed (vendor _FREL/_MREL tags and
// legacy ADOP/FOST child tags). The resolver merges these into the child's
// FamilyLink and the structure is cleared afterwards.
type childRelation struct {
	father Pedigree
	mother Pedigree
}

// FamilyRecord is a family unit: spouses by xref, children by xref, and the
// family's own events. Member relationships stay id-based because the
// individual side routinely references the family before it is defined, and
// vice versa.
type FamilyRecord struct {
	recordBase
	Husband  string
	Wife     string
	Children []string

	Events      []*Event
	NumChildren string
	Submitters  []string

	Citations []*SourceCitation
	Notes     []*NoteRef
	Media     []*MediaRef
	RefNums   []RefNum
	RecordID  string
	Changed   string

	// childRels keys by child xref; lastChild is the most recent CHIL
	// reference, the target of trailing relationship tags.
	childRels map[string]*childRelation
	lastChild string
}

func newFamilyRecord(xref string) *FamilyRecord {
	return &FamilyRecord{
		recordBase: recordBase{xref: xref},
		childRels:  make(map[string]*childRelation),
	}
}

// familyTags dispatches FAM-level child tags; event tags are matched
// through familyEventTags before this table is consulted.
var familyTags = map[string]func(p *parser, f *FamilyRecord, tok Token){
	"HUSB": func(p *parser, f *FamilyRecord, tok Token) {
		if tok.Kind == ValuePointer {
			f.Husband = p.intern(tok.Value)
			p.recordRef(f.Husband, tok.Line)
		}
	},
	"WIFE": func(p *parser, f *FamilyRecord, tok Token) {
		if tok.Kind == ValuePointer {
			f.Wife = p.intern(tok.Value)
			p.recordRef(f.Wife, tok.Line)
		}
	},
	"CHIL": func(p *parser, f *FamilyRecord, tok Token) {
		if tok.Kind != ValuePointer {
			return
		}
		xref := p.intern(tok.Value)
		p.recordRef(xref, tok.Line)
		f.Children = append(f.Children, xref)
		f.lastChild = xref
	},
	"NCHI": func(_ *parser, f *FamilyRecord, tok Token) { f.NumChildren = tok.Value },
	"SUBM": func(p *parser, f *FamilyRecord, tok Token) {
		if tok.Kind == ValuePointer {
			xref := p.intern(tok.Value)
			p.recordRef(xref, tok.Line)
			f.Submitters = append(f.Submitters, xref)
		}
	},
	"SOUR": func(p *parser, f *FamilyRecord, tok Token) {
		f.Citations = append(f.Citations, p.sourceCitation(tok))
	},
	"NOTE": func(p *parser, f *FamilyRecord, tok Token) {
		f.Notes = append(f.Notes, p.noteRef(tok))
	},
	"OBJE": func(p *parser, f *FamilyRecord, tok Token) {
		f.Media = append(f.Media, p.mediaRef(tok))
	},
	"REFN": func(_ *parser, f *FamilyRecord, tok Token) {
		f.RefNums = append(f.RefNums, RefNum{Number: tok.Value})
	},
	"RIN":  func(_ *parser, f *FamilyRecord, tok Token) { f.RecordID = tok.Value },
	"CHAN": func(_ *parser, _ *FamilyRecord, _ Token) {},
	// Vendor relationship tags at FAM level apply to the last child seen.
	"_FREL": func(_ *parser, f *FamilyRecord, tok Token) {
		f.setChildRel(f.lastChild, parsePedigree(tok.Value), PedigreeUnknown)
	},
	"_MREL": func(_ *parser, f *FamilyRecord, tok Token) {
		f.setChildRel(f.lastChild, PedigreeUnknown, parsePedigree(tok.Value))
	},
}

// setChildRel records a parental-side classification for a child; the zero
// Pedigree leaves the side untouched.
func (f *FamilyRecord) setChildRel(child string, father, mother Pedigree) {
	if child == "" {
		return
	}
	rel := f.childRels[child]
	if rel == nil {
		rel = &childRelation{}
		f.childRels[child] = rel
	}
	if father != PedigreeUnknown {
		rel.father = father
	}
	if mother != PedigreeUnknown {
		rel.mother = mother
	}
}

// ChildRelation reports the parsed per-side classifications for a child, ok
// when any FAM-level relationship tag touched that child. Cleared by the
// resolver once links are computed.
func (f *FamilyRecord) ChildRelation(child string) (father, mother Pedigree, ok bool) {
	rel, ok := f.childRels[child]
	if !ok {
		return PedigreeUnknown, PedigreeUnknown, false
	}
	return rel.father, rel.mother, true
}

func (f *FamilyRecord) clearChildRelations() {
	f.childRels = make(map[string]*childRelation)
	f.lastChild = ""
}

func (f *FamilyRecord) parseTag(p *parser, tok Token) {
	rel := tok.Level - f.baseLevel

	if rel == 2 {
		prior := p.priorTag(tok.Level - 1)
		switch {
		// Vendor and legacy pre-standard relationship tags nested under
		// the child reference they classify.
		case tok.Tag == "_FREL" && prior == "CHIL":
			f.setChildRel(f.lastChild, parsePedigree(tok.Value), PedigreeUnknown)
		case tok.Tag == "_MREL" && prior == "CHIL":
			f.setChildRel(f.lastChild, PedigreeUnknown, parsePedigree(tok.Value))
		case tok.Tag == "ADOP" && prior == "CHIL":
			f.setChildRel(f.lastChild, PedigreeAdopted, PedigreeAdopted)
		case tok.Tag == "FOST" && prior == "CHIL":
			f.setChildRel(f.lastChild, PedigreeFoster, PedigreeFoster)
		case tok.Tag == "TYPE" && prior == "REFN":
			if len(f.RefNums) > 0 {
				f.RefNums[len(f.RefNums)-1].Type = tok.Value
			}
		case tok.Tag == "DATE" && prior == "CHAN":
			f.Changed = tok.Value
		default:
			p.unexpected(f, "FAM", tok)
		}
		return
	}
	if rel != 1 {
		p.unexpected(f, "FAM", tok)
		return
	}

	if familyEventTags[tok.Tag] {
		ev := &Event{Tag: tok.Tag, Kind: EventFamily, Value: tok.Value}
		f.Events = append(f.Events, ev)
		p.push(ev, tok.Level, tok.Level)
		return
	}
	if h, ok := familyTags[tok.Tag]; ok {
		h(p, f, tok)
		return
	}
	if ev := p.vendorFact(tok); ev != nil {
		ev.Kind = EventFamily
		f.Events = append(f.Events, ev)
		return
	}
	p.anomaly(tok.Line, "unknown tag %s under FAM %s", tok.Tag, f.xref)
	p.custom(f, tok)
}
