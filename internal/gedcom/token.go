package gedcom

import "strings"

// ValueKind classifies the value portion of a GEDCOM line.
type ValueKind int

const (
	// ValueNone means the line carried no value at all.
	ValueNone ValueKind = iota
	// ValuePointer means the value is an xref id naming another record.
	ValuePointer
	// ValueData means the value is literal text.
	ValueData
)

// Token is the structured form of one GEDCOM line:
//
//	level SP [@xref@ SP] tag [SP value]
type Token struct {
	Level int
	XRef  string // non-empty only when the line defines an addressable record
	Tag   string
	Value string
	Kind  ValueKind
	Line  int // 1-based input line number, for diagnostics
}

// Options controls tokenizer leniency and session-wide behavior. Every flag
// widens what the tokenizer accepts; none of them can turn a valid line into
// an error.
type Options struct {
	// AllowTabs accepts tab characters inside values instead of rejecting
	// the line. Several desktop producers emit tabs in note text.
	AllowTabs bool
	// AllowUnitSeparator accepts ASCII 0x1F as a field delimiter in place
	// of a space.
	AllowUnitSeparator bool
	// AllowExtraDelimiters accepts runs of delimiter characters between
	// fields where the grammar requires exactly one.
	AllowExtraDelimiters bool
	// AllowUnterminatedXRef accepts a pointer missing its closing '@',
	// taking the id up to the next delimiter.
	AllowUnterminatedXRef bool
	// AllowTagPunctuation accepts '-' and '_' inside tag names beyond the
	// leading extension underscore.
	AllowTagPunctuation bool

	// ReplaceXRefs rewrites every xref id in the file with a freshly
	// generated one, consistently across definitions and references.
	ReplaceXRefs bool
	// ContinueOnError keeps feeding lines to the assembler after the first
	// syntax error latches. The latched error is still reported.
	ContinueOnError bool
	// Charset forces a character set by name, bypassing BOM detection and
	// the header CHAR declaration.
	Charset string

	// Charsets resolves declared character-set names to decoders. Nil
	// selects the x/text-backed default provider.
	Charsets CharsetProvider
	// Dates parses date and age strings. Nil selects StdDateParser.
	Dates DateParser

	// OnError is invoked whenever the latched error state changes.
	OnError func(err error)
	// OnProgress receives a monotonically non-decreasing completion
	// estimate in [0,1] as input bytes are consumed.
	OnProgress func(fraction float64)
}

// compatTags remaps known-bad tag spellings emitted by non-conformant
// producers to their canonical equivalents. Applied before dispatch so the
// assembler only ever sees canonical tags.
var compatTags = map[string]string{
	"EMAI":          "EMAIL",
	"EMAL":          "EMAIL",
	"_EMAIL":        "EMAIL",
	"WEB":           "WWW",
	"_WEB":          "WWW",
	"URL":           "WWW",
	"_URL":          "WWW",
	"ABBREVIATION":  "ABBR",
	"CONTINUATION":  "CONT",
	"CONCATENATION": "CONC",
	"_FA1":          "EVEN",
	"SOUR.":         "SOUR",
}

// tokenizer converts decoded lines into Tokens. It holds no cross-line
// state; continuation-of-previous-value handling lives in the session.
type tokenizer struct {
	opts Options
}

// isDelim reports whether b is acceptable as a field delimiter under the
// current leniency flags.
func (tk *tokenizer) isDelim(b byte) bool {
	if b == ' ' {
		return true
	}
	if b == '\t' && tk.opts.AllowTabs {
		return true
	}
	if b == 0x1F && tk.opts.AllowUnitSeparator {
		return true
	}
	return false
}

// skipDelim consumes the delimiter at line[i]. Returns the index after the
// delimiter run, or -1 when no delimiter is present.
func (tk *tokenizer) skipDelim(line string, i int) int {
	if i >= len(line) || !tk.isDelim(line[i]) {
		return -1
	}
	i++
	if tk.opts.AllowExtraDelimiters {
		for i < len(line) && tk.isDelim(line[i]) {
			i++
		}
	}
	return i
}

// Tokenize parses one line into a Token. A nil *SyntaxError means success.
// A line that does not begin with a level digit yields ErrLevelMissing; the
// session downgrades that case to a continuation of the previous value.
func (tk *tokenizer) Tokenize(line string, lineNo int) (Token, *SyntaxError) {
	tok := Token{Line: lineNo}

	// Tolerate either line-terminator convention.
	line = strings.TrimRight(line, "\r\n")

	i := 0
	if tk.opts.AllowExtraDelimiters {
		for i < len(line) && tk.isDelim(line[i]) {
			i++
		}
	}

	// Level.
	start := i
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		tok.Level = tok.Level*10 + int(line[i]-'0')
		i++
	}
	if i == start {
		return tok, newSyntaxError(ErrLevelMissing, lineNo, line)
	}
	if i-start > 2 {
		// Levels beyond two digits never occur in real files; a longer
		// digit run is data masquerading as a level.
		return tok, newSyntaxError(ErrLevelInvalid, lineNo, line)
	}
	if i = tk.skipDelim(line, i); i < 0 {
		return tok, newSyntaxError(ErrDelimAfterLevel, lineNo, line)
	}

	// Optional xref id.
	if i < len(line) && line[i] == '@' {
		end := strings.IndexByte(line[i+1:], '@')
		if end < 0 {
			if !tk.opts.AllowUnterminatedXRef {
				return tok, newSyntaxError(ErrXRefUnterminated, lineNo, line)
			}
			sp := i
			for sp < len(line) && !tk.isDelim(line[sp]) {
				sp++
			}
			tok.XRef = line[i:sp] + "@"
			i = sp
		} else {
			tok.XRef = line[i : i+end+2]
			i += end + 2
		}
		if i = tk.skipDelim(line, i); i < 0 {
			return tok, newSyntaxError(ErrDelimAfterXRef, lineNo, line)
		}
	}

	// Tag.
	start = i
	for i < len(line) && tk.isTagByte(line[i], i == start) {
		i++
	}
	if i == start {
		return tok, newSyntaxError(ErrTagMissing, lineNo, line)
	}
	tok.Tag = line[start:i]
	if canonical, ok := compatTags[tok.Tag]; ok {
		tok.Tag = canonical
	}

	// Optional value.
	if i < len(line) {
		vi := tk.skipDelim(line, i)
		if vi < 0 {
			return tok, newSyntaxError(ErrDelimAfterTag, lineNo, line)
		}
		tok.Value = line[vi:]
		if !tk.opts.AllowTabs && strings.IndexByte(tok.Value, '\t') >= 0 {
			return tok, newSyntaxError(ErrValueInvalid, lineNo, line)
		}
		tok.Kind = ValueData
		if isPointer(tok.Value) {
			tok.Kind = ValuePointer
		}
	}

	return tok, nil
}

// isTagByte reports whether b may appear in a tag name. An underscore is
// always allowed in leading position (vendor extension marker); '-' and
// further '_' require the leniency flag.
func (tk *tokenizer) isTagByte(b byte, leading bool) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	case b == '_':
		return leading || tk.opts.AllowTagPunctuation
	case b == '-':
		return tk.opts.AllowTagPunctuation && !leading
	}
	return false
}

// isPointer reports whether value is a whole-value xref reference: '@' on
// both ends, something in between, and no internal '@' escape.
func isPointer(value string) bool {
	if len(value) < 3 || value[0] != '@' || value[len(value)-1] != '@' {
		return false
	}
	// "@@" escapes a literal at-sign; "@#DATE...@" is a calendar escape.
	if value[1] == '@' || value[1] == '#' {
		return false
	}
	return strings.IndexByte(value[1:len(value)-1], '@') < 0
}
