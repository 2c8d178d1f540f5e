package gedcom

// MediaRecord is a multimedia object: a file reference plus descriptive
// fields. The 5.5 legacy BLOB encoding is consumed and dropped; nothing
// useful survives in it.
type MediaRecord struct {
	recordBase
	File      string
	Format    string
	MediaType string
	Title     string
	Citations []*SourceCitation
	Notes     []*NoteRef
	RefNums   []RefNum
	RecordID  string
	Changed   string
}

func (m *MediaRecord) parseTag(p *parser, tok Token) {
	rel := tok.Level - m.baseLevel

	if rel == 2 {
		prior := p.priorTag(tok.Level - 1)
		switch {
		case tok.Tag == "FORM" && prior == "FILE":
			m.Format = tok.Value
		case tok.Tag == "MEDI" && prior == "FORM":
			m.MediaType = tok.Value
		case tok.Tag == "TITL" && prior == "FILE":
			m.Title = tok.Value
		case tok.Tag == "TYPE" && prior == "REFN":
			if len(m.RefNums) > 0 {
				m.RefNums[len(m.RefNums)-1].Type = tok.Value
			}
		case tok.Tag == "DATE" && prior == "CHAN":
			m.Changed = tok.Value
		case (tok.Tag == "CONT" || tok.Tag == "CONC") && prior == "BLOB":
			// legacy inline blob data, discarded
		default:
			p.custom(m, tok)
		}
		return
	}
	if rel != 1 {
		p.unexpected(m, "OBJE", tok)
		return
	}

	switch tok.Tag {
	case "FILE":
		m.File = tok.Value
	case "FORM":
		m.Format = tok.Value
	case "TITL":
		m.Title = tok.Value
	case "BLOB":
	case "SOUR":
		m.Citations = append(m.Citations, p.sourceCitation(tok))
	case "NOTE":
		m.Notes = append(m.Notes, p.noteRef(tok))
	case "REFN":
		m.RefNums = append(m.RefNums, RefNum{Number: tok.Value})
	case "RIN":
		m.RecordID = tok.Value
	case "CHAN":
	default:
		p.custom(m, tok)
	}
}
