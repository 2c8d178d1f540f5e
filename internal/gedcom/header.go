package gedcom

// HeaderRecord is the singleton file header. It has no xref and never
// enters the Records map; it hangs off Database.Header.
type HeaderRecord struct {
	recordBase
	SourceID      string // HEAD.SOUR value: producing system id
	SourceName    string // the product's human name; defaulted to SourceID
	SourceVersion string
	Corporation   string
	SourceData    string

	Destination      string
	TransmissionDate string
	TransmissionTime string
	Submitter        string
	Submission       string
	FileName         string
	Copyright        string

	GedcomVersion  string
	GedcomForm     string
	Charset        string
	CharsetVersion string
	Language       string
	PlaceForm      string

	// ContentDescription is the header's inline note. Producers that file
	// it as a pointer to a top-level note instead leave NoteXRef set; the
	// resolver relocates that note's text here.
	ContentDescription string
	NoteXRef           string

	contentNote *NoteRecord
}

func (h *HeaderRecord) parseTag(p *parser, tok Token) {
	rel := tok.Level - h.baseLevel

	switch rel {
	case 1:
		h.parseDirect(p, tok)
	case 2:
		prior := p.priorTag(tok.Level - 1)
		switch prior {
		case "SOUR":
			switch tok.Tag {
			case "NAME":
				h.SourceName = tok.Value
			case "VERS":
				h.SourceVersion = tok.Value
			case "CORP":
				h.Corporation = tok.Value
			case "DATA":
				h.SourceData = tok.Value
			default:
				p.custom(h, tok)
			}
		case "GEDC":
			switch tok.Tag {
			case "VERS":
				h.GedcomVersion = tok.Value
			case "FORM":
				h.GedcomForm = tok.Value
			default:
				p.custom(h, tok)
			}
		case "CHAR":
			if tok.Tag == "VERS" {
				h.CharsetVersion = tok.Value
			} else {
				p.custom(h, tok)
			}
		case "DATE":
			if tok.Tag == "TIME" {
				h.TransmissionTime = tok.Value
			} else {
				p.custom(h, tok)
			}
		case "PLAC":
			if tok.Tag == "FORM" {
				h.PlaceForm = tok.Value
			} else {
				p.custom(h, tok)
			}
		default:
			p.custom(h, tok)
		}
	default:
		// CORP addresses and other deep header substructure: preserved
		// but not modeled.
		p.custom(h, tok)
	}
}

func (h *HeaderRecord) parseDirect(p *parser, tok Token) {
	switch tok.Tag {
	case "SOUR":
		h.SourceID = tok.Value
	case "DEST":
		h.Destination = tok.Value
	case "DATE":
		h.TransmissionDate = tok.Value
	case "SUBM":
		if tok.Kind == ValuePointer {
			h.Submitter = p.intern(tok.Value)
			p.recordRef(h.Submitter, tok.Line)
		}
	case "SUBN":
		if tok.Kind == ValuePointer {
			h.Submission = p.intern(tok.Value)
			p.recordRef(h.Submission, tok.Line)
		}
	case "FILE":
		h.FileName = tok.Value
	case "COPR":
		h.Copyright = tok.Value
	case "GEDC":
	case "CHAR":
		h.Charset = tok.Value
	case "LANG":
		h.Language = tok.Value
	case "PLAC":
	case "NOTE":
		nr := p.noteRef(tok)
		if nr.XRef != "" {
			h.NoteXRef = nr.XRef
		} else {
			h.contentNote = nr.Note
		}
	default:
		p.custom(h, tok)
	}
}

func (h *HeaderRecord) finalize(*parser) bool {
	if h.contentNote != nil {
		h.ContentDescription = h.contentNote.Text
		h.contentNote = nil
	}
	return true
}
