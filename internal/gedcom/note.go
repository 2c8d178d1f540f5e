package gedcom

import "strings"

// NoteRecord is a note, either top-level (with an xref) or inline under the
// record it annotates. Text accumulates across CONT/CONC continuation lines
// and is flushed when the note is popped. A top-level note whose final text
// is blank is discarded rather than inserted; its id goes into the removed
// set so later references to it are not reported as dangling.
type NoteRecord struct {
	recordBase
	Text      string
	Citations []*SourceCitation
	RefNums   []RefNum
	RecordID  string
	Changed   string
}

func (n *NoteRecord) parseTag(p *parser, tok Token) {
	rel := tok.Level - n.baseLevel

	if rel == 2 {
		switch {
		case tok.Tag == "TYPE" && p.priorTag(tok.Level-1) == "REFN":
			if len(n.RefNums) > 0 {
				n.RefNums[len(n.RefNums)-1].Type = tok.Value
			}
		case tok.Tag == "DATE" && p.priorTag(tok.Level-1) == "CHAN":
			n.Changed = tok.Value
		default:
			p.unexpected(n, "NOTE", tok)
		}
		return
	}
	if rel != 1 {
		p.unexpected(n, "NOTE", tok)
		return
	}

	switch tok.Tag {
	case "CONC":
		n.appendText(tok.Value, false)
	case "CONT":
		n.appendText(tok.Value, true)
	case "SOUR":
		n.Citations = append(n.Citations, p.sourceCitation(tok))
	case "REFN":
		n.RefNums = append(n.RefNums, RefNum{Number: tok.Value})
	case "RIN":
		n.RecordID = tok.Value
	case "CHAN":
		// change date arrives on the nested DATE line
	default:
		p.unexpected(n, "NOTE", tok)
	}
}

func (n *NoteRecord) finalize(*parser) bool {
	n.Text = n.takeText()
	if n.level == 0 && strings.TrimSpace(n.Text) == "" {
		return false
	}
	return true
}
