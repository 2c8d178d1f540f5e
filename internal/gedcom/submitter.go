package gedcom

// SubmitterRecord identifies who contributed the data.
type SubmitterRecord struct {
	recordBase
	Name      string
	Address   *Address
	Languages []string
	Media     []*MediaRef
	Notes     []*NoteRef
	RecordID  string
	PermanentID string // RFN
	Changed   string
}

func (r *SubmitterRecord) parseTag(p *parser, tok Token) {
	rel := tok.Level - r.baseLevel

	if rel == 2 {
		if tok.Tag == "DATE" && p.priorTag(tok.Level-1) == "CHAN" {
			r.Changed = tok.Value
			return
		}
		p.unexpected(r, "SUBM", tok)
		return
	}
	if rel != 1 {
		p.unexpected(r, "SUBM", tok)
		return
	}

	switch tok.Tag {
	case "NAME":
		r.Name = tok.Value
	case "ADDR":
		r.Address = p.address(tok)
	case "PHON", "EMAIL", "FAX", "WWW":
		if r.Address == nil {
			r.Address = &Address{}
		}
		r.Address.addContact(tok.Tag, tok.Value)
	case "LANG":
		r.Languages = append(r.Languages, tok.Value)
	case "OBJE":
		r.Media = append(r.Media, p.mediaRef(tok))
	case "NOTE":
		r.Notes = append(r.Notes, p.noteRef(tok))
	case "RIN":
		r.RecordID = tok.Value
	case "RFN":
		r.PermanentID = tok.Value
	case "CHAN":
	default:
		p.custom(r, tok)
	}
}

// SubmissionRecord carries the LDS submission parameters some producers
// still emit. Kept for graph completeness; nothing downstream computes
// from it.
type SubmissionRecord struct {
	recordBase
	Submitter      string
	FamilyFile     string
	TempleCode     string
	AncestorGens   string
	DescendantGens string
	OrdinanceFlag  string
	RecordID       string
}

func (r *SubmissionRecord) parseTag(p *parser, tok Token) {
	if tok.Level-r.baseLevel != 1 {
		p.unexpected(r, "SUBN", tok)
		return
	}
	switch tok.Tag {
	case "SUBM":
		if tok.Kind == ValuePointer {
			r.Submitter = p.intern(tok.Value)
			p.recordRef(r.Submitter, tok.Line)
		}
	case "FAMF":
		r.FamilyFile = tok.Value
	case "TEMP":
		r.TempleCode = tok.Value
	case "ANCE":
		r.AncestorGens = tok.Value
	case "DESC":
		r.DescendantGens = tok.Value
	case "ORDI":
		r.OrdinanceFlag = tok.Value
	case "RIN":
		r.RecordID = tok.Value
	default:
		p.custom(r, tok)
	}
}
