package gedcom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, opts Options, lines ...string) (*Database, error) {
	t.Helper()
	return DecodeBytes([]byte(strings.Join(lines, "\n")+"\n"), opts)
}

func mustDecode(t *testing.T, lines ...string) *Database {
	t.Helper()
	db, err := decodeLines(t, Options{}, lines...)
	require.NoError(t, err)
	return db
}

func TestDecode_MinimalFile(t *testing.T) {
	db := mustDecode(t,
		"0 HEAD",
		"1 CHAR UTF8",
		"0 @I1@ INDI",
		"1 NAME John /Doe/",
		"1 SEX M",
		"0 TRLR",
	)

	require.Len(t, db.Individuals, 1)
	ind := db.Individuals["@I1@"]
	require.NotNil(t, ind)

	name := ind.Name()
	require.NotNil(t, name)
	assert.Equal(t, "John", name.Given)
	assert.Equal(t, "Doe", name.Surname)
	assert.Equal(t, SexMale, ind.Sex)

	require.NotNil(t, db.Header)
	assert.Equal(t, "UTF8", db.Header.Charset)
	assert.Empty(t, db.Anomalies)
}

func TestDecode_NameParts(t *testing.T) {
	db := mustDecode(t,
		"0 HEAD",
		"0 @I1@ INDI",
		"1 NAME Jose /de la Cruz/ Jr",
		"2 NICK Pepe",
		"2 FONE Hose",
		"3 TYPE kana",
		"2 ROMN Jose",
		"3 TYPE romaji",
		"0 TRLR",
	)

	name := db.Individuals["@I1@"].Name()
	require.NotNil(t, name)
	assert.Equal(t, "Jose", name.Given)
	assert.Equal(t, "de la Cruz", name.Surname)
	assert.Equal(t, "Jr", name.Suffix)
	assert.Equal(t, "Pepe", name.Nickname)
	require.Len(t, name.Phonetic, 1)
	assert.Equal(t, "kana", name.Phonetic[0].Type)
	require.Len(t, name.Romanized, 1)
	assert.Equal(t, "romaji", name.Romanized[0].Type)
}

func TestDecode_NoteContinuations(t *testing.T) {
	db := mustDecode(t,
		"0 HEAD",
		"0 @N1@ NOTE first line",
		"1 CONT second line",
		"1 CONC , extended",
		"1 CONT",
		"1 CONT last",
		"0 TRLR",
	)

	note := db.Notes["@N1@"]
	require.NotNil(t, note)
	assert.Equal(t, "first line\nsecond line, extended\n\nlast", note.Text)
}

func TestDecode_RawContinuationLine(t *testing.T) {
	// A wrapped line with no level digit folds into the open node as if the
	// producer had written CONC.
	db := mustDecode(t,
		"0 HEAD",
		"0 @N1@ NOTE the quick brown ",
		"fox jumps over",
		"0 TRLR",
	)

	note := db.Notes["@N1@"]
	require.NotNil(t, note)
	assert.Equal(t, "the quick brown fox jumps over", note.Text)
}

func TestDecode_EmptyNoteDiscarded(t *testing.T) {
	db := mustDecode(t,
		"0 HEAD",
		"0 @I1@ INDI",
		"1 NOTE @N1@",
		"0 @N1@ NOTE",
		"1 CONT",
		"0 TRLR",
	)

	assert.Empty(t, db.Notes)
	assert.Nil(t, db.Lookup("@N1@"))
	// The reference to the discarded note is not reported as dangling.
	assert.Empty(t, db.Anomalies)
}

func TestDecode_SyntaxErrorHalts(t *testing.T) {
	db, err := decodeLines(t, Options{},
		"0 HEAD",
		"0 @I1@ INDI",
		"1NAME broken",
		"0 @I2@ INDI",
		"0 TRLR",
	)

	var serr *SyntaxError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, ErrDelimAfterLevel, serr.Code)
	assert.Equal(t, 3, serr.Line)

	// The partial graph up to the bad line is still returned.
	assert.Contains(t, db.Individuals, "@I1@")
	assert.NotContains(t, db.Individuals, "@I2@")
}

func TestDecode_ContinueOnError(t *testing.T) {
	var hookErrs []error
	db, err := decodeLines(t, Options{
		ContinueOnError: true,
		OnError:         func(e error) { hookErrs = append(hookErrs, e) },
	},
		"0 HEAD",
		"1NAME broken",
		"0 @I1@ INDI",
		"0 TRLR",
	)

	// The first error is still latched and returned, but parsing ran on.
	var serr *SyntaxError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, db.Individuals, "@I1@")
	require.Len(t, hookErrs, 1)
	assert.Same(t, serr, hookErrs[0])
}

func TestDecode_EventSubstructure(t *testing.T) {
	db := mustDecode(t,
		"0 HEAD",
		"0 @I1@ INDI",
		"1 BIRT",
		"2 DATE 2 FEB 1822",
		"2 PLAC Paris, France",
		"3 MAP",
		"4 LATI N48.85",
		"4 LONG E2.35",
		"1 DEAT",
		"2 DATE 1 JAN 1900",
		"2 AGE 77y 10m",
		"2 CAUS Influenza",
		"1 OCCU Baker",
		"0 @I2@ INDI",
		"1 BIRT",
		"2 PLAC Paris, France",
		"0 TRLR",
	)

	ind := db.Individuals["@I1@"]
	require.Len(t, ind.Events, 3)

	birt := ind.Events[0]
	assert.Equal(t, "BIRT", birt.Tag)
	require.NotNil(t, birt.DateValue)
	assert.Equal(t, DateValue{Day: 2, Month: 2, Year: 1822}, *birt.DateValue)
	require.NotNil(t, birt.Place)
	assert.Equal(t, "N48.85", birt.Place.Latitude)

	deat := ind.Events[1]
	require.NotNil(t, deat.AgeValue)
	assert.Equal(t, AgeValue{Years: 77, Months: 10}, *deat.AgeValue)
	assert.Equal(t, "Influenza", deat.Cause)

	occu := ind.Events[2]
	assert.Equal(t, "OCCU", occu.Tag)
	assert.Equal(t, "Baker", occu.Value)

	// Identical place strings share one interned instance.
	other := db.Individuals["@I2@"].Events[0]
	assert.Same(t, birt.Place, other.Place)
}

func TestDecode_DateAsAgeRetry(t *testing.T) {
	db := mustDecode(t,
		"0 HEAD",
		"0 @I1@ INDI",
		"1 DEAT",
		"2 DATE 80y",
		"0 TRLR",
	)

	ev := db.Individuals["@I1@"].Events[0]
	assert.Nil(t, ev.DateValue)
	assert.Equal(t, "80y", ev.Date)
	require.NotNil(t, ev.AgeValue)
	assert.Equal(t, 80, ev.AgeValue.Years)
}

func TestDecode_InlineSourceCitation(t *testing.T) {
	db := mustDecode(t,
		"0 HEAD",
		"0 @I1@ INDI",
		"1 SOUR Parish register of St. Mary",
		"2 CONT , volume II",
		"0 TRLR",
	)

	ind := db.Individuals["@I1@"]
	require.Len(t, ind.Citations, 1)
	cit := ind.Citations[0]

	src := db.Sources[cit.Source]
	require.NotNil(t, src, "inline citation must synthesize a top-level source")
	assert.True(t, src.Synthesized())
	assert.Equal(t, 0, src.Level())
	assert.Equal(t, "Parish register of St. Mary\n, volume II", src.Title)
}

func TestDecode_PointerSourceCitation(t *testing.T) {
	db := mustDecode(t,
		"0 HEAD",
		"0 @I1@ INDI",
		"1 BIRT",
		"2 SOUR @S1@",
		"3 PAGE 14",
		"3 EVEN BIRT",
		"4 ROLE CHIL",
		"3 DATA",
		"4 DATE 2 FEB 1822",
		"4 TEXT Transcribed entry",
		"3 QUAY 3",
		"0 @S1@ SOUR",
		"1 TITL Civil registration",
		"0 TRLR",
	)

	ev := db.Individuals["@I1@"].Events[0]
	require.Len(t, ev.Citations, 1)
	cit := ev.Citations[0]
	assert.Equal(t, "@S1@", cit.Source)
	assert.Equal(t, "14", cit.Page)
	assert.Equal(t, "BIRT", cit.EventType)
	assert.Equal(t, "CHIL", cit.Role)
	assert.Equal(t, "2 FEB 1822", cit.Date)
	assert.Equal(t, "Transcribed entry", cit.Text)
	assert.Equal(t, "3", cit.Quality)

	// The citation is back-linked onto the source it names.
	src := db.Sources["@S1@"]
	require.Len(t, src.Citations, 1)
	assert.Same(t, cit, src.Citations[0])
}

func TestDecode_XRefReplacement(t *testing.T) {
	db, err := decodeLines(t, Options{ReplaceXRefs: true},
		"0 HEAD",
		"0 @FAM-0001@ FAM",
		"1 HUSB @PERSON-A@",
		"0 @PERSON-A@ INDI",
		"1 FAMS @FAM-0001@",
		"0 TRLR",
	)
	require.NoError(t, err)

	require.Len(t, db.Families, 1)
	fam := db.Families["@FAM1@"]
	require.NotNil(t, fam)
	ind := db.Individuals["@PERSON1@"]
	require.NotNil(t, ind)

	// Reference and definition of the same raw id meet at one new id,
	// regardless of which came first.
	assert.Equal(t, "@PERSON1@", fam.Husband)
	require.Len(t, ind.SpouseLinks(), 1)
	assert.Equal(t, "@FAM1@", ind.SpouseLinks()[0].Family)
	assert.Empty(t, db.Anomalies)
}

func TestDecode_TopLevelWithoutXRef(t *testing.T) {
	db := mustDecode(t,
		"0 HEAD",
		"0 INDI",
		"1 NAME Nobody",
		"0 @I1@ INDI",
		"0 TRLR",
	)

	assert.Len(t, db.Individuals, 1)
	require.Len(t, db.Anomalies, 1)
	assert.Contains(t, db.Anomalies[0].Message, "without xref")
}

func TestDecode_VendorFactTags(t *testing.T) {
	db := mustDecode(t,
		"0 HEAD",
		"0 @I1@ INDI",
		"1 _MILT Union Army",
		"2 DATE 1861",
		"0 TRLR",
	)

	ind := db.Individuals["@I1@"]
	require.Len(t, ind.Events, 1)
	ev := ind.Events[0]
	assert.Equal(t, "EVEN", ev.Tag)
	assert.Equal(t, "Military Service", ev.Type)
	assert.Equal(t, "Union Army", ev.Value)
	require.NotNil(t, ev.DateValue)
	assert.Equal(t, 1861, ev.DateValue.Year)
	assert.Empty(t, db.Anomalies)
}

func TestDecode_UnknownTagPreserved(t *testing.T) {
	db := mustDecode(t,
		"0 HEAD",
		"0 @I1@ INDI",
		"1 _UID 12345-ABCDE",
		"0 TRLR",
	)

	ind := db.Individuals["@I1@"]
	require.Len(t, ind.CustomTags(), 1)
	assert.Equal(t, "_UID", ind.CustomTags()[0].Tag)
	assert.Equal(t, "12345-ABCDE", ind.CustomTags()[0].Value)
	require.Len(t, db.Anomalies, 1)
	assert.Contains(t, db.Anomalies[0].Message, "_UID")
}

func TestDecode_StrayAddressBecomesResidence(t *testing.T) {
	db := mustDecode(t,
		"0 HEAD",
		"0 @I1@ INDI",
		"1 ADDR 123 Main Street",
		"2 CITY Springfield",
		"1 PHON 555-0100",
		"0 TRLR",
	)

	ind := db.Individuals["@I1@"]
	require.Len(t, ind.Events, 1)
	resi := ind.Events[0]
	assert.Equal(t, "RESI", resi.Tag)
	require.NotNil(t, resi.Address)
	assert.Equal(t, "123 Main Street", resi.Address.Full)
	assert.Equal(t, "Springfield", resi.Address.City)
	assert.Equal(t, []string{"555-0100"}, resi.Address.Phone)
}

func TestDecode_HeaderFields(t *testing.T) {
	db := mustDecode(t,
		"0 HEAD",
		"1 SOUR FTW",
		"2 NAME Family Tree Writer",
		"2 VERS 9.0",
		"1 DATE 1 JAN 2000",
		"2 TIME 12:30:00",
		"1 GEDC",
		"2 VERS 5.5.1",
		"2 FORM LINEAGE-LINKED",
		"1 NOTE Family history of the Doe line",
		"2 CONT as told by the family",
		"0 TRLR",
	)

	h := db.Header
	require.NotNil(t, h)
	assert.Equal(t, "FTW", h.SourceID)
	assert.Equal(t, "Family Tree Writer", h.SourceName)
	assert.Equal(t, "9.0", h.SourceVersion)
	assert.Equal(t, "12:30:00", h.TransmissionTime)
	assert.Equal(t, "5.5.1", h.GedcomVersion)
	assert.Equal(t, "Family history of the Doe line\nas told by the family", h.ContentDescription)
}

func TestDecode_HeaderNotePointerRelocated(t *testing.T) {
	db := mustDecode(t,
		"0 HEAD",
		"1 SOUR APP",
		"1 NOTE @N1@",
		"0 @N1@ NOTE Content description text",
		"0 TRLR",
	)

	require.NotNil(t, db.Header)
	assert.Equal(t, "Content description text", db.Header.ContentDescription)
	assert.Equal(t, "APP", db.Header.SourceName)
	// The relocated note leaves the record set entirely.
	assert.Empty(t, db.Notes)
	assert.Nil(t, db.Lookup("@N1@"))
	assert.Empty(t, db.Anomalies)
}

func TestDecode_UntitledSourceBackfill(t *testing.T) {
	db := mustDecode(t,
		"0 HEAD",
		"0 @S2@ SOUR",
		"1 AUTH Anonymous",
		"0 @S1@ SOUR",
		"0 @S3@ SOUR",
		"1 TITL Named source",
		"0 TRLR",
	)

	assert.Equal(t, "Untitled source 1", db.Sources["@S1@"].Title)
	assert.Equal(t, "Untitled source 2", db.Sources["@S2@"].Title)
	assert.Equal(t, "Named source", db.Sources["@S3@"].Title)
}

func TestDecode_RefCounts(t *testing.T) {
	db := mustDecode(t,
		"0 HEAD",
		"0 @I1@ INDI",
		"1 NOTE @N1@",
		"0 @I2@ INDI",
		"1 NOTE @N1@",
		"0 @N1@ NOTE Shared note",
		"0 TRLR",
	)

	assert.Equal(t, 2, db.Notes["@N1@"].RefCount())
	// Individuals are principals: membership references never count.
	assert.Equal(t, 0, db.Individuals["@I1@"].RefCount())
}

func TestDecode_DanglingReference(t *testing.T) {
	db := mustDecode(t,
		"0 HEAD",
		"0 @I1@ INDI",
		"1 NOTE @N404@",
		"0 TRLR",
	)

	require.Len(t, db.Anomalies, 1)
	assert.Contains(t, db.Anomalies[0].Message, "@N404@")
}

func TestDecode_BlankLinesSkipped(t *testing.T) {
	db := mustDecode(t,
		"0 HEAD",
		"",
		"0 @I1@ INDI",
		"   ",
		"1 SEX F",
		"0 TRLR",
	)

	assert.Equal(t, SexFemale, db.Individuals["@I1@"].Sex)
	assert.Empty(t, db.Anomalies)
}

func TestDecode_ProgressMonotonic(t *testing.T) {
	var fracs []float64
	_, err := decodeLines(t, Options{
		OnProgress: func(f float64) { fracs = append(fracs, f) },
	},
		"0 HEAD",
		"1 CHAR UTF8",
		"0 @I1@ INDI",
		"0 TRLR",
	)
	require.NoError(t, err)

	require.NotEmpty(t, fracs)
	// Strictly increasing, clamped, and finishing at exactly 1 even though
	// the charset restart re-reads the stream.
	for i := 1; i < len(fracs); i++ {
		assert.Greater(t, fracs[i], fracs[i-1])
		assert.LessOrEqual(t, fracs[i], 1.0)
	}
	assert.Equal(t, 1.0, fracs[len(fracs)-1])
}
