package gedcom

import (
	"strconv"
	"strings"
)

// Record is the read surface shared by every database entry. The concrete
// set of variants is closed; consumers reach typed data through the
// Database's typed maps or a type switch.
type Record interface {
	XRef() string
	Level() int
	RefCount() int
}

// node is the parsing surface of a record or nested sub-object while it sits
// on the assembler stack.
type node interface {
	Record
	base() *recordBase
	// parseTag handles one token addressed to this node. tok.Level is
	// strictly greater than the node's parsing base level.
	parseTag(p *parser, tok Token)
	// finalize runs when the node is popped. Returning false discards the
	// node instead of inserting/keeping it.
	finalize(p *parser) bool
}

// recordBase carries the bookkeeping every variant shares: the defining
// xref (may be empty for nested sub-objects), the depth of the defining
// line, the base level used to interpret children (differs from level only
// for records synthesized inline), a back-reference to the owning Database,
// and the incoming-reference counter filled in during resolution.
type recordBase struct {
	xref      string
	level     int
	baseLevel int
	db        *Database
	refs      int

	// text accumulates the variant's primary free-text value across
	// CONC/CONT continuation lines; flushed on finalize.
	text    strings.Builder
	hasText bool

	// custom holds unrecognized-tag subtrees preserved under this record.
	custom []*CustomRecord
}

func (b *recordBase) base() *recordBase { return b }
func (b *recordBase) XRef() string      { return b.xref }
func (b *recordBase) Level() int        { return b.level }
func (b *recordBase) RefCount() int     { return b.refs }

func (b *recordBase) finalize(*parser) bool { return true }

// CustomTags returns the unrecognized-tag subtrees kept under this record.
func (b *recordBase) CustomTags() []*CustomRecord { return b.custom }

// appendText extends the accumulated text, inserting a newline for
// full-line continuation (CONT) and concatenating directly for same-line
// continuation (CONC).
func (b *recordBase) appendText(s string, newline bool) {
	if newline && b.hasText {
		b.text.WriteByte('\n')
	}
	b.text.WriteString(s)
	b.hasText = true
}

func (b *recordBase) takeText() string {
	s := b.text.String()
	b.text.Reset()
	return s
}

// Sex is an individual's recorded sex.
type Sex int

const (
	SexUnknown Sex = iota
	SexMale
	SexFemale
)

func parseSex(s string) Sex {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "M":
		return SexMale
	case "F":
		return SexFemale
	}
	return SexUnknown
}

func (s Sex) String() string {
	switch s {
	case SexMale:
		return "M"
	case SexFemale:
		return "F"
	}
	return "U"
}

// Pedigree classifies a child's relationship to a parent in a family.
type Pedigree int

const (
	PedigreeUnknown Pedigree = iota
	PedigreeBirth
	PedigreeAdopted
	PedigreeFoster
	PedigreeStep
	PedigreeSealing
)

func (p Pedigree) String() string {
	switch p {
	case PedigreeBirth:
		return "birth"
	case PedigreeAdopted:
		return "adopted"
	case PedigreeFoster:
		return "foster"
	case PedigreeStep:
		return "step"
	case PedigreeSealing:
		return "sealing"
	}
	return "unknown"
}

// parsePedigree accepts both the standard PEDI vocabulary and the vendor
// _FREL/_MREL spellings.
func parsePedigree(s string) Pedigree {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "birth", "natural":
		return PedigreeBirth
	case "adopted", "adoptive":
		return PedigreeAdopted
	case "foster":
		return PedigreeFoster
	case "step":
		return PedigreeStep
	case "sealing":
		return PedigreeSealing
	}
	return PedigreeUnknown
}

// Place is an interned place name. All events naming the same place string
// share one instance through the Database's place table.
type Place struct {
	Name      string
	Form      string
	Latitude  string
	Longitude string
}

// RefNum is a REFN user reference number with its optional TYPE.
type RefNum struct {
	Number string
	Type   string
}

// NoteRef attaches a note to a record: either a pointer to a top-level note
// record or an inline note owned by the referencing record.
type NoteRef struct {
	XRef string      // set for pointer form
	Note *NoteRecord // set for inline form
}

// Text resolves the note text, following the pointer through db when needed.
func (nr *NoteRef) Text(db *Database) string {
	if nr.Note != nil {
		return nr.Note.Text
	}
	if n, ok := db.Notes[nr.XRef]; ok {
		return n.Text
	}
	return ""
}

// MediaRef attaches a multimedia object: pointer or inline.
type MediaRef struct {
	XRef   string
	Inline *MediaRecord
}

// Database is the completed graph of one parse session. Keys of Records are
// xref ids; the typed maps are projections over the same entries. The caller
// becomes the sole owner once parsing completes.
type Database struct {
	Records      map[string]Record
	Individuals  map[string]*IndividualRecord
	Families     map[string]*FamilyRecord
	Sources      map[string]*SourceRecord
	Repositories map[string]*RepositoryRecord
	Submitters   map[string]*SubmitterRecord
	Submissions  map[string]*SubmissionRecord
	Notes        map[string]*NoteRecord
	Media        map[string]*MediaRecord
	Header       *HeaderRecord

	// Anomalies collects every non-fatal structural and reference problem
	// found during assembly and resolution.
	Anomalies []Anomaly

	places   map[string]*Place
	counters map[string]int
}

// NewDatabase returns an empty Database.
func NewDatabase() *Database {
	return &Database{
		Records:      make(map[string]Record),
		Individuals:  make(map[string]*IndividualRecord),
		Families:     make(map[string]*FamilyRecord),
		Sources:      make(map[string]*SourceRecord),
		Repositories: make(map[string]*RepositoryRecord),
		Submitters:   make(map[string]*SubmitterRecord),
		Submissions:  make(map[string]*SubmissionRecord),
		Notes:        make(map[string]*NoteRecord),
		Media:        make(map[string]*MediaRecord),
		places:       make(map[string]*Place),
		counters:     make(map[string]int),
	}
}

// Lookup resolves an xref id to its record, or nil.
func (db *Database) Lookup(xref string) Record {
	rec, ok := db.Records[xref]
	if !ok {
		return nil
	}
	return rec
}

// NextXRef synthesizes an unused xref id with the given alphabetic prefix,
// e.g. NextXRef("NOTE") -> "@NOTE1@". The per-prefix counter never reuses a
// number within a session even if the record is later discarded.
func (db *Database) NextXRef(prefix string) string {
	for {
		db.counters[prefix]++
		id := "@" + prefix + strconv.Itoa(db.counters[prefix]) + "@"
		if _, taken := db.Records[id]; !taken {
			return id
		}
	}
}

// Place interns a place name so identical strings share one instance.
func (db *Database) Place(name string) *Place {
	if p, ok := db.places[name]; ok {
		return p
	}
	p := &Place{Name: name}
	db.places[name] = p
	return p
}

// insert files a finished top-level record under its xref and into the
// matching typed projection.
func (db *Database) insert(rec node) {
	xref := rec.XRef()
	if xref == "" {
		return
	}
	db.Records[xref] = rec
	switch r := rec.(type) {
	case *IndividualRecord:
		db.Individuals[xref] = r
	case *FamilyRecord:
		db.Families[xref] = r
	case *SourceRecord:
		db.Sources[xref] = r
	case *RepositoryRecord:
		db.Repositories[xref] = r
	case *SubmitterRecord:
		db.Submitters[xref] = r
	case *SubmissionRecord:
		db.Submissions[xref] = r
	case *NoteRecord:
		db.Notes[xref] = r
	case *MediaRecord:
		db.Media[xref] = r
	}
}

// removeNote drops a note record from the database entirely. Used by the
// resolver when a header note is relocated into the content description.
func (db *Database) removeNote(xref string) {
	delete(db.Notes, xref)
	delete(db.Records, xref)
}

// anomaly appends to the anomaly log.
func (db *Database) anomaly(line int, msg string) {
	db.Anomalies = append(db.Anomalies, Anomaly{Line: line, Message: msg})
}
