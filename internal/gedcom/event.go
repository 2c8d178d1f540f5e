package gedcom

// EventKind distinguishes who an event belongs to; individual events get the
// date-as-age retry, family events get the HUSB/WIFE age substructures.
type EventKind int

const (
	EventGeneric EventKind = iota
	EventIndividual
	EventFamily
)

// AdopParty names which parent adopted, from the ADOP substructure of an
// adoption event's FAMC link.
type AdopParty int

const (
	AdopUnspecified AdopParty = iota
	AdopHusband
	AdopWife
	AdopBoth
)

func parseAdopParty(s string) AdopParty {
	switch s {
	case "HUSB":
		return AdopHusband
	case "WIFE":
		return AdopWife
	case "BOTH":
		return AdopBoth
	}
	return AdopUnspecified
}

// Event is a fact attached to an individual or family: vital events,
// attributes (which share the structure), LDS ordinances and generic EVEN
// facts. Attributes carry their payload in Value; events usually carry "Y"
// or nothing.
type Event struct {
	recordBase
	Tag   string
	Kind  EventKind
	Value string
	Type  string

	Date      string
	DateValue *DateValue
	Age       string
	AgeValue  *AgeValue

	Place   *Place
	Address *Address
	Cause   string
	Agency  string

	// FamilyXRef links a birth/christening/adoption event to the family it
	// happened within; AdoptedBy records the adopting party for adoptions.
	FamilyXRef string
	AdoptedBy  AdopParty

	// Spouse ages for family events (HUSB/WIFE substructures).
	HusbandAge string
	WifeAge    string

	Citations []*SourceCitation
	Notes     []*NoteRef
	Media     []*MediaRef
}

func (ev *Event) parseTag(p *parser, tok Token) {
	rel := tok.Level - ev.baseLevel

	if rel == 2 {
		prior := p.priorTag(tok.Level - 1)
		switch {
		case tok.Tag == "AGE" && prior == "HUSB":
			ev.HusbandAge = tok.Value
		case tok.Tag == "AGE" && prior == "WIFE":
			ev.WifeAge = tok.Value
		case tok.Tag == "ADOP" && prior == "FAMC":
			ev.AdoptedBy = parseAdopParty(tok.Value)
		default:
			p.unexpected(ev, ev.Tag, tok)
		}
		return
	}
	if rel != 1 {
		p.unexpected(ev, ev.Tag, tok)
		return
	}

	switch tok.Tag {
	case "TYPE":
		ev.Type = tok.Value
	case "DATE":
		ev.Date = tok.Value
		if dv, ok := p.dates.ParseDate(tok.Value); ok {
			ev.DateValue = dv
		} else if ev.Kind == EventIndividual {
			// Some producers write an age where a date belongs.
			if av, ok := p.dates.ParseAge(tok.Value); ok && ev.AgeValue == nil {
				ev.AgeValue = av
			}
		}
	case "AGE":
		ev.Age = tok.Value
		if av, ok := p.dates.ParseAge(tok.Value); ok {
			ev.AgeValue = av
		}
	case "PLAC":
		pl := p.db.Place(tok.Value)
		ev.Place = pl
		p.push(&placeNode{place: pl}, tok.Level, tok.Level)
	case "ADDR":
		ev.Address = p.address(tok)
	case "PHON", "EMAIL", "FAX", "WWW":
		if ev.Address == nil {
			ev.Address = &Address{}
		}
		ev.Address.addContact(tok.Tag, tok.Value)
	case "CAUS":
		ev.Cause = tok.Value
	case "AGNC":
		ev.Agency = tok.Value
	case "FAMC":
		if tok.Kind == ValuePointer {
			ev.FamilyXRef = p.intern(tok.Value)
			p.recordRef(ev.FamilyXRef, tok.Line)
		}
	case "HUSB", "WIFE":
		// markers only; the nested AGE is resolved through tag history
	case "SOUR":
		ev.Citations = append(ev.Citations, p.sourceCitation(tok))
	case "NOTE":
		ev.Notes = append(ev.Notes, p.noteRef(tok))
	case "OBJE":
		ev.Media = append(ev.Media, p.mediaRef(tok))
	case "CONC":
		ev.Value += tok.Value
	case "CONT":
		ev.Value += "\n" + tok.Value
	default:
		p.custom(ev, tok)
	}
}

// placeNode accepts the substructure of a PLAC line on behalf of the
// interned Place instance. Because places are shared by name, substructure
// fields are last-writer-wins across events naming the same place.
type placeNode struct {
	recordBase
	place *Place
}

func (pn *placeNode) parseTag(p *parser, tok Token) {
	rel := tok.Level - pn.baseLevel
	if rel == 2 {
		prior := p.priorTag(tok.Level - 1)
		switch {
		case tok.Tag == "LATI" && prior == "MAP":
			pn.place.Latitude = tok.Value
		case tok.Tag == "LONG" && prior == "MAP":
			pn.place.Longitude = tok.Value
		default:
			p.unexpected(pn, "PLAC", tok)
		}
		return
	}
	if rel != 1 {
		p.unexpected(pn, "PLAC", tok)
		return
	}
	switch tok.Tag {
	case "FORM":
		pn.place.Form = tok.Value
	case "MAP":
		// coordinates arrive on the nested LATI/LONG lines
	default:
		p.unexpected(pn, "PLAC", tok)
	}
}

// individualEventTags are the INDI-level vital event tags.
var individualEventTags = map[string]bool{
	"BIRT": true, "CHR": true, "DEAT": true, "BURI": true, "CREM": true,
	"ADOP": true, "BAPM": true, "BARM": true, "BASM": true, "BLES": true,
	"CHRA": true, "CONF": true, "FCOM": true, "ORDN": true, "NATU": true,
	"EMIG": true, "IMMI": true, "CENS": true, "PROB": true, "WILL": true,
	"GRAD": true, "RETI": true, "EVEN": true,
	"BAPL": true, "CONL": true, "ENDL": true, "SLGC": true,
}

// individualAttributeTags are the INDI-level attribute tags; structurally
// identical to events but the line value is the payload.
var individualAttributeTags = map[string]bool{
	"CAST": true, "DSCR": true, "EDUC": true, "IDNO": true, "NATI": true,
	"NCHI": true, "NMR": true, "OCCU": true, "PROP": true, "RELI": true,
	"RESI": true, "SSN": true, "TITL": true, "FACT": true,
}

// familyEventTags are the FAM-level event tags.
var familyEventTags = map[string]bool{
	"ANUL": true, "CENS": true, "DIV": true, "DIVF": true, "ENGA": true,
	"MARB": true, "MARC": true, "MARR": true, "MARL": true, "MARS": true,
	"RESI": true, "EVEN": true, "SLGS": true,
}
