package gedcom

import "strings"

// NameVariant is a phonetic or romanized rendering of a name, with the
// method that produced it (TYPE).
type NameVariant struct {
	Value string
	Type  string
}

// Name is one personal name of an individual. The slash-delimited surname
// in the NAME value is split eagerly; explicit GIVN/SURN children override
// the split parts.
type Name struct {
	recordBase
	Full          string
	Given         string
	Surname       string
	SurnamePrefix string
	Prefix        string
	Suffix        string
	Nickname      string
	Type          string

	Phonetic  []*NameVariant
	Romanized []*NameVariant

	Citations []*SourceCitation
	Notes     []*NoteRef
}

// newName builds a Name from the NAME line value, splitting "John /Doe/ Jr"
// into given, surname and suffix parts.
func newName(value string) *Name {
	n := &Name{Full: value}
	open := strings.IndexByte(value, '/')
	if open < 0 {
		n.Given = strings.TrimSpace(value)
		return n
	}
	n.Given = strings.TrimSpace(value[:open])
	rest := value[open+1:]
	if close := strings.IndexByte(rest, '/'); close >= 0 {
		n.Surname = strings.TrimSpace(rest[:close])
		n.Suffix = strings.TrimSpace(rest[close+1:])
	} else {
		// unterminated surname slashes happen; take the remainder
		n.Surname = strings.TrimSpace(rest)
	}
	return n
}

func (n *Name) parseTag(p *parser, tok Token) {
	rel := tok.Level - n.baseLevel

	if rel == 2 {
		// A TYPE at this depth belongs to whichever variant line came
		// immediately before it at one shallower depth.
		prior := p.priorTag(tok.Level - 1)
		switch {
		case tok.Tag == "TYPE" && prior == "FONE":
			if len(n.Phonetic) > 0 {
				n.Phonetic[len(n.Phonetic)-1].Type = tok.Value
			}
		case tok.Tag == "TYPE" && prior == "ROMN":
			if len(n.Romanized) > 0 {
				n.Romanized[len(n.Romanized)-1].Type = tok.Value
			}
		default:
			p.unexpected(n, "NAME", tok)
		}
		return
	}
	if rel != 1 {
		p.unexpected(n, "NAME", tok)
		return
	}

	switch tok.Tag {
	case "NPFX":
		n.Prefix = tok.Value
	case "GIVN":
		n.Given = tok.Value
	case "NICK":
		n.Nickname = tok.Value
	case "SPFX":
		n.SurnamePrefix = tok.Value
	case "SURN":
		n.Surname = tok.Value
	case "NSFX":
		n.Suffix = tok.Value
	case "TYPE":
		n.Type = tok.Value
	case "FONE":
		n.Phonetic = append(n.Phonetic, &NameVariant{Value: tok.Value})
	case "ROMN":
		n.Romanized = append(n.Romanized, &NameVariant{Value: tok.Value})
	case "SOUR":
		n.Citations = append(n.Citations, p.sourceCitation(tok))
	case "NOTE":
		n.Notes = append(n.Notes, p.noteRef(tok))
	default:
		p.custom(n, tok)
	}
}
