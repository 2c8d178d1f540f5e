package gedcom

import "fmt"

// tagLevel is one entry of the tag-history stack, used to disambiguate
// sibling tags that share a relative level (a TYPE line means different
// things after REFN, FONE or ROMN).
type tagLevel struct {
	tag   string
	level int
}

// xrefUse records one referencing use of an xref id, audited after the
// whole stream is consumed.
type xrefUse struct {
	xref string
	line int
}

// parser is one parse session: the open-record stack, the tag-history
// stack, and the accumulation buffers for deferred resolution. Sessions are
// single-use and share no state with each other.
type parser struct {
	db       *Database
	opts     Options
	interner *Interner
	dates    DateParser

	stack   []node
	history []tagLevel

	refs          []xrefUse
	citations     []*SourceCitation
	repoCitations []*RepositoryCitation
	removedNotes  map[string]bool

	latched *SyntaxError
}

func newParser(opts Options) *parser {
	p := &parser{
		db:           NewDatabase(),
		opts:         opts,
		removedNotes: make(map[string]bool),
	}
	p.interner = NewInterner(opts.ReplaceXRefs, func(prefix string) string {
		return p.db.NextXRef(prefix)
	})
	p.dates = opts.Dates
	if p.dates == nil {
		p.dates = StdDateParser{}
	}
	return p
}

// latch records the first syntax error and notifies the error hook. Later
// errors do not overwrite the first.
func (p *parser) latch(err *SyntaxError) {
	if p.latched != nil {
		return
	}
	p.latched = err
	if p.opts.OnError != nil {
		p.opts.OnError(err)
	}
}

func (p *parser) anomaly(line int, format string, args ...any) {
	p.db.anomaly(line, fmt.Sprintf(format, args...))
}

// intern canonicalizes (and, in replacement mode, rewrites) an xref id.
func (p *parser) intern(xref string) string {
	if xref == "" {
		return ""
	}
	return p.interner.Intern(xref)
}

// recordRef notes a referencing use of an xref for the post-parse audit.
func (p *parser) recordRef(xref string, line int) {
	p.refs = append(p.refs, xrefUse{xref: xref, line: line})
}

// push opens a node on the stack. The node's base level governs which
// children it receives; it equals the defining line's level except for
// records synthesized inline.
func (p *parser) push(n node, level, baseLevel int) {
	b := n.base()
	b.level = level
	b.baseLevel = baseLevel
	b.db = p.db
	p.stack = append(p.stack, n)
}

// popTo closes every open node whose base level is at or below the incoming
// token's level, running finalization and filing finished top-level records
// into the database. Discarded records with an xref land in the removed set
// so the reference audit does not flag them.
func (p *parser) popTo(level int) {
	for len(p.stack) > 0 {
		n := p.stack[len(p.stack)-1]
		if n.base().baseLevel < level {
			break
		}
		p.stack = p.stack[:len(p.stack)-1]

		keep := n.finalize(p)
		b := n.base()
		if b.level != 0 {
			continue // nested sub-object, already attached to its parent
		}
		if _, isHeader := n.(*HeaderRecord); isHeader {
			continue
		}
		if keep && b.xref != "" {
			p.db.insert(n)
		} else if b.xref != "" {
			p.removedNotes[b.xref] = true
		}
	}

	for len(p.history) > 0 && p.history[len(p.history)-1].level >= level {
		p.history = p.history[:len(p.history)-1]
	}
}

// priorTag returns the most recent tag recorded at the given level, or "".
// By construction (popTo prunes deeper entries first) the answer is the top
// of the history stack; no lookahead is ever used.
func (p *parser) priorTag(level int) string {
	if len(p.history) == 0 {
		return ""
	}
	top := p.history[len(p.history)-1]
	if top.level != level {
		return ""
	}
	return top.tag
}

// feed drives the stack machine with one token.
func (p *parser) feed(tok Token) {
	p.popTo(tok.Level)

	if len(p.stack) == 0 {
		p.dispatchTopLevel(tok)
	} else {
		p.stack[len(p.stack)-1].parseTag(p, tok)
	}

	p.history = append(p.history, tagLevel{tag: tok.Tag, level: tok.Level})
}

// flush closes everything at end of stream.
func (p *parser) flush() {
	p.popTo(0)
}

// dispatchTopLevel creates a new top-level record for a level-0 token.
// Every variant except the header needs an xref to be worth creating: a
// record nothing can reference is skipped.
func (p *parser) dispatchTopLevel(tok Token) {
	if tok.Tag == "TRLR" {
		return
	}
	if tok.Tag == "HEAD" {
		h := &HeaderRecord{}
		p.db.Header = h
		p.push(h, tok.Level, tok.Level)
		return
	}

	xref := p.intern(tok.XRef)
	if xref == "" {
		switch tok.Tag {
		case "INDI", "FAM", "OBJE", "NOTE", "REPO", "SOUR", "SUBM", "SUBN":
			p.anomaly(tok.Line, "top-level %s without xref, skipped", tok.Tag)
			p.push(&CustomRecord{Tag: tok.Tag, Value: tok.Value, discard: true}, tok.Level, tok.Level)
			return
		}
	}

	switch tok.Tag {
	case "INDI":
		p.push(&IndividualRecord{recordBase: recordBase{xref: xref}}, tok.Level, tok.Level)
	case "FAM":
		p.push(newFamilyRecord(xref), tok.Level, tok.Level)
	case "OBJE":
		p.push(&MediaRecord{recordBase: recordBase{xref: xref}}, tok.Level, tok.Level)
	case "NOTE":
		n := &NoteRecord{recordBase: recordBase{xref: xref}}
		if tok.Value != "" {
			n.appendText(tok.Value, false)
		}
		p.push(n, tok.Level, tok.Level)
	case "REPO":
		p.push(&RepositoryRecord{recordBase: recordBase{xref: xref}}, tok.Level, tok.Level)
	case "SOUR":
		p.push(&SourceRecord{recordBase: recordBase{xref: xref}}, tok.Level, tok.Level)
	case "SUBM":
		p.push(&SubmitterRecord{recordBase: recordBase{xref: xref}}, tok.Level, tok.Level)
	case "SUBN":
		p.push(&SubmissionRecord{recordBase: recordBase{xref: xref}}, tok.Level, tok.Level)
	default:
		p.anomaly(tok.Line, "unknown top-level tag %s", tok.Tag)
		c := &CustomRecord{Tag: tok.Tag, Value: tok.Value}
		c.xref = xref
		c.discard = xref == ""
		p.push(c, tok.Level, tok.Level)
	}
}

// continuation folds a raw line with no level digit into the value of the
// innermost open node, as if the producer had written a CONC line. Returns
// false when there is nothing open to extend.
func (p *parser) continuation(raw string, lineNo int) bool {
	if len(p.stack) == 0 {
		return false
	}
	top := p.stack[len(p.stack)-1]
	top.parseTag(p, Token{
		Level: top.base().baseLevel + 1,
		Tag:   "CONC",
		Value: raw,
		Kind:  ValueData,
		Line:  lineNo,
	})
	return true
}

// --- shared sub-structure builders ---
//
// These run inside variant handlers, so the calling token is always the
// defining line of the sub-object being built.

// noteRef handles a NOTE tag on behalf of any parent: pointer form records
// a reference, inline form opens a note sub-object on the stack.
func (p *parser) noteRef(tok Token) *NoteRef {
	if tok.Kind == ValuePointer {
		xref := p.intern(tok.Value)
		p.recordRef(xref, tok.Line)
		return &NoteRef{XRef: xref}
	}
	n := &NoteRecord{}
	if tok.Value != "" {
		n.appendText(tok.Value, false)
	}
	p.push(n, tok.Level, tok.Level)
	return &NoteRef{Note: n}
}

// sourceCitation handles a SOUR tag on behalf of any parent. The pointer
// form opens a citation sub-object; the legacy data form synthesizes an
// anonymous source record whose parsing base level is the citation line's
// level, so its CONC/CONT/TEXT children attach correctly even though the
// record itself files at level 0.
func (p *parser) sourceCitation(tok Token) *SourceCitation {
	cit := &SourceCitation{}
	if tok.Kind == ValuePointer {
		cit.Source = p.intern(tok.Value)
		p.recordRef(cit.Source, tok.Line)
		p.push(cit, tok.Level, tok.Level)
	} else {
		src := &SourceRecord{recordBase: recordBase{xref: p.db.NextXRef("S")}}
		src.synthesized = true
		if tok.Value != "" {
			src.appendText(tok.Value, false)
		}
		cit.Source = src.xref
		p.push(src, 0, tok.Level)
	}
	p.citations = append(p.citations, cit)
	return cit
}

// mediaRef handles an OBJE tag on behalf of any parent.
func (p *parser) mediaRef(tok Token) *MediaRef {
	if tok.Kind == ValuePointer {
		xref := p.intern(tok.Value)
		p.recordRef(xref, tok.Line)
		return &MediaRef{XRef: xref}
	}
	m := &MediaRecord{}
	p.push(m, tok.Level, tok.Level)
	return &MediaRef{Inline: m}
}

// vendorFacts maps known vendor extension tags to the classification of the
// generic fact they translate to. Anything not listed becomes a custom node.
var vendorFacts = map[string]string{
	"_MILT":   "Military Service",
	"_MILI":   "Military Service",
	"_DEG":    "Degree",
	"_DEGREE": "Degree",
	"_EMPLOY": "Employment",
	"_ELEC":   "Elected",
	"_MDCL":   "Medical",
	"_EXCM":   "Excommunication",
	"_FUN":    "Funeral",
}

// vendorFact translates a recognized vendor extension tag into a classified
// generic event, preserving the vendor value. Returns nil when the tag is
// not a known extension.
func (p *parser) vendorFact(tok Token) *Event {
	kind, ok := vendorFacts[tok.Tag]
	if !ok {
		return nil
	}
	ev := &Event{Tag: "EVEN", Type: kind, Value: tok.Value}
	p.push(ev, tok.Level, tok.Level)
	return ev
}

// custom opens a generic custom node for an unrecognized tag. The node is
// pushed so its own children are preserved, but it is inert to the rest of
// the graph.
func (p *parser) custom(parent node, tok Token) *CustomRecord {
	c := &CustomRecord{Tag: tok.Tag, Value: tok.Value}
	b := parent.base()
	b.custom = append(b.custom, c)
	p.push(c, tok.Level, tok.Level)
	return c
}

// unexpected logs a structural anomaly for a tag at a level its parent does
// not understand and files it as a custom node so children are not lost.
func (p *parser) unexpected(parent node, what string, tok Token) {
	p.anomaly(tok.Line, "unexpected %s tag at level %d under %s", tok.Tag, tok.Level, what)
	p.custom(parent, tok)
}
