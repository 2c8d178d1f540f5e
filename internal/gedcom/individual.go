package gedcom

// LinkKind is the role a FamilyLink expresses.
type LinkKind int

const (
	// LinkChild relates an individual to a family as a child (FAMC).
	LinkChild LinkKind = iota
	// LinkSpouse relates an individual to a family as a spouse (FAMS).
	LinkSpouse
)

// FamilyLink materializes the individual<->family relationship on the
// individual's side. Links are parsed from FAMC/FAMS lines and synthesized
// by the resolver when the family names a member that never stated the link
// itself. The family is held by xref, never by pointer: forward references
// are common and individual<->family cycles are expected.
type FamilyLink struct {
	recordBase
	Family string
	Kind   LinkKind

	// Pedigree is the overall classification; FatherRel/MotherRel track
	// each parental side separately. All three are recomputed by the
	// resolver, which is the single source of truth for precedence.
	Pedigree  Pedigree
	FatherRel Pedigree
	MotherRel Pedigree

	// Preferred marks an individual's first-encountered spouse link.
	Preferred bool
	// Status is the child-link status (challenged, disproven, proven).
	Status string

	Citations []*SourceCitation
	Notes     []*NoteRef
}

func (l *FamilyLink) parseTag(p *parser, tok Token) {
	if tok.Level-l.baseLevel != 1 {
		p.unexpected(l, "family link", tok)
		return
	}
	switch tok.Tag {
	case "PEDI":
		l.Pedigree = parsePedigree(tok.Value)
	case "STAT":
		l.Status = tok.Value
	case "_FREL":
		l.FatherRel = parsePedigree(tok.Value)
	case "_MREL":
		l.MotherRel = parsePedigree(tok.Value)
	case "SOUR":
		l.Citations = append(l.Citations, p.sourceCitation(tok))
	case "NOTE":
		l.Notes = append(l.Notes, p.noteRef(tok))
	default:
		p.custom(l, tok)
	}
}

// Association relates an individual to another person outside family
// structure (godparent, witness, neighbor).
type Association struct {
	recordBase
	Target    string // xref of the associated individual
	Relation  string
	Citations []*SourceCitation
	Notes     []*NoteRef
}

func (a *Association) parseTag(p *parser, tok Token) {
	if tok.Level-a.baseLevel != 1 {
		p.unexpected(a, "ASSO", tok)
		return
	}
	switch tok.Tag {
	case "RELA":
		a.Relation = tok.Value
	case "SOUR":
		a.Citations = append(a.Citations, p.sourceCitation(tok))
	case "NOTE":
		a.Notes = append(a.Notes, p.noteRef(tok))
	default:
		p.custom(a, tok)
	}
}

// IndividualRecord is a person.
type IndividualRecord struct {
	recordBase
	Sex          Sex
	Names        []*Name
	Events       []*Event
	FamilyLinks  []*FamilyLink
	Associations []*Association
	Aliases      []string
	Submitters   []string // ANCI/DESI/SUBM interest references
	Citations    []*SourceCitation
	Notes        []*NoteRef
	Media        []*MediaRef
	RefNums      []RefNum
	RecordID     string
	PermanentID  string // RFN
	AncestralID  string // AFN
	Changed      string

	// address holds a stray legacy ADDR placed directly under the
	// individual; finalize converts it into a residence event.
	address *Address
}

// individualTags dispatches INDI-level child tags. Event and attribute tags
// are matched through their shared sets before this table is consulted.
var individualTags = map[string]func(p *parser, r *IndividualRecord, tok Token){
	"NAME": func(p *parser, r *IndividualRecord, tok Token) {
		n := newName(tok.Value)
		r.Names = append(r.Names, n)
		p.push(n, tok.Level, tok.Level)
	},
	"SEX": func(_ *parser, r *IndividualRecord, tok Token) {
		r.Sex = parseSex(tok.Value)
	},
	"FAMC": func(p *parser, r *IndividualRecord, tok Token) {
		r.addLink(p, tok, LinkChild)
	},
	"FAMS": func(p *parser, r *IndividualRecord, tok Token) {
		r.addLink(p, tok, LinkSpouse)
	},
	"ASSO": func(p *parser, r *IndividualRecord, tok Token) {
		a := &Association{}
		if tok.Kind == ValuePointer {
			a.Target = p.intern(tok.Value)
			p.recordRef(a.Target, tok.Line)
		}
		r.Associations = append(r.Associations, a)
		p.push(a, tok.Level, tok.Level)
	},
	"ALIA": func(p *parser, r *IndividualRecord, tok Token) {
		if tok.Kind == ValuePointer {
			xref := p.intern(tok.Value)
			p.recordRef(xref, tok.Line)
			r.Aliases = append(r.Aliases, xref)
		}
	},
	"SUBM": func(p *parser, r *IndividualRecord, tok Token) { r.addSubmitter(p, tok) },
	"ANCI": func(p *parser, r *IndividualRecord, tok Token) { r.addSubmitter(p, tok) },
	"DESI": func(p *parser, r *IndividualRecord, tok Token) { r.addSubmitter(p, tok) },
	"ADDR": func(p *parser, r *IndividualRecord, tok Token) {
		// Not valid directly under an individual, but several producers
		// write one; tolerated and converted to a residence fact on pop.
		r.address = p.address(tok)
	},
	"PHON":  routeIndiContact,
	"EMAIL": routeIndiContact,
	"FAX":   routeIndiContact,
	"WWW":   routeIndiContact,
	"SOUR": func(p *parser, r *IndividualRecord, tok Token) {
		r.Citations = append(r.Citations, p.sourceCitation(tok))
	},
	"NOTE": func(p *parser, r *IndividualRecord, tok Token) {
		r.Notes = append(r.Notes, p.noteRef(tok))
	},
	"OBJE": func(p *parser, r *IndividualRecord, tok Token) {
		r.Media = append(r.Media, p.mediaRef(tok))
	},
	"REFN": func(_ *parser, r *IndividualRecord, tok Token) {
		r.RefNums = append(r.RefNums, RefNum{Number: tok.Value})
	},
	"RIN": func(_ *parser, r *IndividualRecord, tok Token) { r.RecordID = tok.Value },
	"RFN": func(_ *parser, r *IndividualRecord, tok Token) { r.PermanentID = tok.Value },
	"AFN": func(_ *parser, r *IndividualRecord, tok Token) { r.AncestralID = tok.Value },
	"CHAN": func(_ *parser, _ *IndividualRecord, _ Token) {
		// change date arrives on the nested DATE line
	},
}

func routeIndiContact(_ *parser, r *IndividualRecord, tok Token) {
	if r.address == nil {
		r.address = &Address{}
	}
	r.address.addContact(tok.Tag, tok.Value)
}

func (r *IndividualRecord) addLink(p *parser, tok Token, kind LinkKind) {
	l := &FamilyLink{Kind: kind}
	if tok.Kind == ValuePointer {
		l.Family = p.intern(tok.Value)
		p.recordRef(l.Family, tok.Line)
	}
	if kind == LinkSpouse {
		l.Preferred = true
		for _, prev := range r.FamilyLinks {
			if prev.Kind == LinkSpouse {
				l.Preferred = false
				break
			}
		}
	}
	r.FamilyLinks = append(r.FamilyLinks, l)
	p.push(l, tok.Level, tok.Level)
}

func (r *IndividualRecord) addSubmitter(p *parser, tok Token) {
	if tok.Kind != ValuePointer {
		return
	}
	xref := p.intern(tok.Value)
	p.recordRef(xref, tok.Line)
	r.Submitters = append(r.Submitters, xref)
}

func (r *IndividualRecord) parseTag(p *parser, tok Token) {
	rel := tok.Level - r.baseLevel

	if rel == 2 {
		switch {
		case tok.Tag == "TYPE" && p.priorTag(tok.Level-1) == "REFN":
			if len(r.RefNums) > 0 {
				r.RefNums[len(r.RefNums)-1].Type = tok.Value
			}
		case tok.Tag == "DATE" && p.priorTag(tok.Level-1) == "CHAN":
			r.Changed = tok.Value
		default:
			p.unexpected(r, "INDI", tok)
		}
		return
	}
	if rel != 1 {
		p.unexpected(r, "INDI", tok)
		return
	}

	if individualEventTags[tok.Tag] {
		ev := &Event{Tag: tok.Tag, Kind: EventIndividual, Value: tok.Value}
		r.Events = append(r.Events, ev)
		p.push(ev, tok.Level, tok.Level)
		return
	}
	if individualAttributeTags[tok.Tag] {
		ev := &Event{Tag: tok.Tag, Kind: EventIndividual, Value: tok.Value}
		r.Events = append(r.Events, ev)
		p.push(ev, tok.Level, tok.Level)
		return
	}
	if h, ok := individualTags[tok.Tag]; ok {
		h(p, r, tok)
		return
	}
	if ev := p.vendorFact(tok); ev != nil {
		ev.Kind = EventIndividual
		r.Events = append(r.Events, ev)
		return
	}
	p.anomaly(tok.Line, "unknown tag %s under INDI %s", tok.Tag, r.xref)
	p.custom(r, tok)
}

// finalize converts a stray legacy address into a synthesized residence
// fact, which is where consumers expect address data on a person.
func (r *IndividualRecord) finalize(*parser) bool {
	if r.address != nil {
		r.Events = append(r.Events, &Event{
			Tag:     "RESI",
			Kind:    EventIndividual,
			Address: r.address,
		})
		r.address = nil
	}
	return true
}

// Name returns the individual's first name record, or nil.
func (r *IndividualRecord) Name() *Name {
	if len(r.Names) == 0 {
		return nil
	}
	return r.Names[0]
}

// SpouseLinks returns the FAMS links in encounter order.
func (r *IndividualRecord) SpouseLinks() []*FamilyLink {
	var out []*FamilyLink
	for _, l := range r.FamilyLinks {
		if l.Kind == LinkSpouse {
			out = append(out, l)
		}
	}
	return out
}

// ChildLinks returns the FAMC links in encounter order.
func (r *IndividualRecord) ChildLinks() []*FamilyLink {
	var out []*FamilyLink
	for _, l := range r.FamilyLinks {
		if l.Kind == LinkChild {
			out = append(out, l)
		}
	}
	return out
}
