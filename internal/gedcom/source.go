package gedcom

// SourceRecord describes a source of genealogical information. Sources are
// usually defined top-level and cited by pointer; the legacy inline form
// (a SOUR line carrying literal text) synthesizes an anonymous SourceRecord
// whose parsing base level is the citing line's level.
type SourceRecord struct {
	recordBase
	Title        string
	Abbreviation string
	Author       string
	Publication  string
	Text         string
	Agency       string

	// DATA substructure: what events this source records, and when.
	EventsRecorded string
	EventsDate     string

	RepositoryCitations []*RepositoryCitation

	// Citations is filled by the resolver: every parsed citation that
	// names this source, back-linked after the stream is consumed.
	Citations []*SourceCitation

	Notes    []*NoteRef
	Media    []*MediaRef
	RefNums  []RefNum
	RecordID string
	Changed  string

	synthesized bool
}

func (s *SourceRecord) parseTag(p *parser, tok Token) {
	rel := tok.Level - s.baseLevel

	switch rel {
	case 1:
		s.parseDirect(p, tok)
	case 2:
		prior := p.priorTag(tok.Level - 1)
		switch {
		case tok.Tag == "CONC" && s.textField(prior) != nil:
			*s.textField(prior) += tok.Value
		case tok.Tag == "CONT" && s.textField(prior) != nil:
			*s.textField(prior) += "\n" + tok.Value
		case tok.Tag == "EVEN" && prior == "DATA":
			s.EventsRecorded = tok.Value
		case tok.Tag == "AGNC" && prior == "DATA":
			s.Agency = tok.Value
		case tok.Tag == "TYPE" && prior == "REFN":
			if len(s.RefNums) > 0 {
				s.RefNums[len(s.RefNums)-1].Type = tok.Value
			}
		case tok.Tag == "DATE" && prior == "CHAN":
			s.Changed = tok.Value
		default:
			p.custom(s, tok)
		}
	case 3:
		if tok.Tag == "DATE" && p.priorTag(tok.Level-1) == "EVEN" {
			s.EventsDate = tok.Value
			return
		}
		p.custom(s, tok)
	default:
		p.unexpected(s, "SOUR", tok)
	}
}

// textField maps the tag of a shallower sibling line to the free-text field
// its continuations extend.
func (s *SourceRecord) textField(tag string) *string {
	switch tag {
	case "TITL":
		return &s.Title
	case "AUTH":
		return &s.Author
	case "PUBL":
		return &s.Publication
	case "ABBR":
		return &s.Abbreviation
	case "TEXT":
		return &s.Text
	}
	return nil
}

func (s *SourceRecord) parseDirect(p *parser, tok Token) {
	switch tok.Tag {
	case "TITL":
		s.Title = tok.Value
	case "ABBR":
		s.Abbreviation = tok.Value
	case "AUTH":
		s.Author = tok.Value
	case "PUBL":
		s.Publication = tok.Value
	case "TEXT":
		s.Text = tok.Value
	case "CONC":
		s.appendText(tok.Value, false)
	case "CONT":
		s.appendText(tok.Value, true)
	case "DATA":
		// substructure arrives on nested EVEN/AGNC lines
	case "REPO":
		rc := &RepositoryCitation{}
		if tok.Kind == ValuePointer {
			rc.Repository = p.intern(tok.Value)
			p.recordRef(rc.Repository, tok.Line)
		}
		s.RepositoryCitations = append(s.RepositoryCitations, rc)
		p.repoCitations = append(p.repoCitations, rc)
		p.push(rc, tok.Level, tok.Level)
	case "NOTE":
		s.Notes = append(s.Notes, p.noteRef(tok))
	case "OBJE":
		s.Media = append(s.Media, p.mediaRef(tok))
	case "REFN":
		s.RefNums = append(s.RefNums, RefNum{Number: tok.Value})
	case "RIN":
		s.RecordID = tok.Value
	case "CHAN":
	default:
		p.custom(s, tok)
	}
}

// finalize folds the continuation buffer of a synthesized inline source into
// its title (or text when a title was set explicitly).
func (s *SourceRecord) finalize(*parser) bool {
	acc := s.takeText()
	if acc == "" {
		return true
	}
	if s.Title == "" {
		s.Title = acc
	} else if s.Text == "" {
		s.Text = acc
	} else {
		s.Text += "\n" + acc
	}
	return true
}

// Synthesized reports whether this source was created from a legacy inline
// citation rather than a top-level definition.
func (s *SourceRecord) Synthesized() bool { return s.synthesized }

// SourceCitation is one citation of a source by another record. The Source
// field always holds an xref: pointer citations keep the cited id, legacy
// inline citations get the id of the synthesized anonymous source.
type SourceCitation struct {
	recordBase
	Source    string
	Page      string
	EventType string
	Role      string
	Date      string
	Text      string
	Quality   string
	Notes     []*NoteRef
	Media     []*MediaRef
}

func (c *SourceCitation) parseTag(p *parser, tok Token) {
	rel := tok.Level - c.baseLevel

	switch rel {
	case 1:
		switch tok.Tag {
		case "PAGE":
			c.Page = tok.Value
		case "EVEN":
			c.EventType = tok.Value
		case "DATA":
		case "QUAY":
			c.Quality = tok.Value
		case "TEXT":
			c.appendText(tok.Value, false)
		case "CONC":
			c.appendText(tok.Value, false)
		case "CONT":
			c.appendText(tok.Value, true)
		case "NOTE":
			c.Notes = append(c.Notes, p.noteRef(tok))
		case "OBJE":
			c.Media = append(c.Media, p.mediaRef(tok))
		default:
			p.custom(c, tok)
		}
	case 2:
		prior := p.priorTag(tok.Level - 1)
		switch {
		case tok.Tag == "ROLE" && prior == "EVEN":
			c.Role = tok.Value
		case tok.Tag == "DATE" && prior == "DATA":
			c.Date = tok.Value
		case tok.Tag == "TEXT" && prior == "DATA":
			c.appendText(tok.Value, true)
		default:
			p.custom(c, tok)
		}
	case 3:
		prior := p.priorTag(tok.Level - 1)
		switch {
		case tok.Tag == "CONC" && prior == "TEXT":
			c.appendText(tok.Value, false)
		case tok.Tag == "CONT" && prior == "TEXT":
			c.appendText(tok.Value, true)
		default:
			p.custom(c, tok)
		}
	default:
		p.unexpected(c, "source citation", tok)
	}
}

func (c *SourceCitation) finalize(*parser) bool {
	if t := c.takeText(); t != "" {
		if c.Text == "" {
			c.Text = t
		} else {
			c.Text += "\n" + t
		}
	}
	return true
}

// RepositoryCitation points a source at the repository holding it.
type RepositoryCitation struct {
	recordBase
	Repository string
	CallNumber string
	MediaType  string
	Notes      []*NoteRef
}

func (rc *RepositoryCitation) parseTag(p *parser, tok Token) {
	rel := tok.Level - rc.baseLevel
	if rel == 2 {
		if tok.Tag == "MEDI" && p.priorTag(tok.Level-1) == "CALN" {
			rc.MediaType = tok.Value
			return
		}
		p.custom(rc, tok)
		return
	}
	if rel != 1 {
		p.unexpected(rc, "REPO citation", tok)
		return
	}
	switch tok.Tag {
	case "CALN":
		rc.CallNumber = tok.Value
	case "NOTE":
		rc.Notes = append(rc.Notes, p.noteRef(tok))
	default:
		p.custom(rc, tok)
	}
}
