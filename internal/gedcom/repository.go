package gedcom

// RepositoryRecord is an archive, library or other holder of sources.
type RepositoryRecord struct {
	recordBase
	Name    string
	Address *Address

	// Citations is filled by the resolver: every repository citation that
	// names this repository.
	Citations []*RepositoryCitation

	Notes    []*NoteRef
	RefNums  []RefNum
	RecordID string
	Changed  string
}

func (r *RepositoryRecord) parseTag(p *parser, tok Token) {
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
			p.unexpected(r, "REPO", tok)
		}
		return
	}
	if rel != 1 {
		p.unexpected(r, "REPO", tok)
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
	case "NOTE":
		r.Notes = append(r.Notes, p.noteRef(tok))
	case "REFN":
		r.RefNums = append(r.RefNums, RefNum{Number: tok.Value})
	case "RIN":
		r.RecordID = tok.Value
	case "CHAN":
	default:
		p.custom(r, tok)
	}
}
