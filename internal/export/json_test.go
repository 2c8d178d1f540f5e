package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/gedgraph/internal/gedcom"
)

func parseFixture(t *testing.T, lines ...string) *gedcom.Database {
	t.Helper()
	data := []byte(strings.Join(lines, "\r\n") + "\r\n")
	db, err := gedcom.DecodeBytes(data, gedcom.Options{})
	require.NoError(t, err)
	return db
}

func TestExportDatabase(t *testing.T) {
	db := parseFixture(t,
		"0 HEAD",
		"1 SOUR TreeMaker",
		"1 CHAR UTF-8",
		"0 @I1@ INDI",
		"1 NAME John /Doe/",
		"1 SEX M",
		"1 BIRT",
		"2 DATE 1 JAN 1900",
		"2 PLAC Boston, Massachusetts",
		"1 FAMS @F1@",
		"0 @I2@ INDI",
		"1 NAME Mary /Doe/",
		"1 SEX F",
		"1 FAMS @F1@",
		"0 @I3@ INDI",
		"1 NAME Sam /Doe/",
		"1 FAMC @F1@",
		"2 PEDI adopted",
		"1 SOUR @S1@",
		"0 @F1@ FAM",
		"1 HUSB @I1@",
		"1 WIFE @I2@",
		"1 CHIL @I3@",
		"1 MARR",
		"2 DATE 1925",
		"0 @S1@ SOUR",
		"1 TITL Town Register",
		"1 AUTH Clerk",
		"0 TRLR",
	)

	out := ExportDatabase(db)

	assert.Equal(t, "TreeMaker", out.SourceSystem)
	assert.Equal(t, "UTF-8", out.Charset)
	assert.NotEmpty(t, out.ExportedAt)

	require.Len(t, out.Persons, 3)
	john := out.Persons[0]
	assert.Equal(t, "@I1@", john.XRef)
	assert.Equal(t, "John /Doe/", john.Name)
	assert.Equal(t, "Doe", john.Surname)
	assert.Equal(t, "M", john.Sex)
	assert.Equal(t, []string{"@F1@"}, john.SpouseIn)
	require.Len(t, john.Events, 1)
	assert.Equal(t, "BIRT", john.Events[0].Tag)
	assert.Equal(t, "1 JAN 1900", john.Events[0].Date)
	assert.Equal(t, "Boston, Massachusetts", john.Events[0].Place)

	sam := out.Persons[2]
	require.Len(t, sam.ChildIn, 1)
	assert.Equal(t, "@F1@", sam.ChildIn[0].Family)
	assert.Equal(t, "adopted", sam.ChildIn[0].Pedigree)

	require.Len(t, out.Families, 1)
	fam := out.Families[0]
	assert.Equal(t, "@I1@", fam.Husband)
	assert.Equal(t, "@I2@", fam.Wife)
	assert.Equal(t, []string{"@I3@"}, fam.Children)
	require.Len(t, fam.Events, 1)
	assert.Equal(t, "MARR", fam.Events[0].Tag)

	require.Len(t, out.Sources, 1)
	src := out.Sources[0]
	assert.Equal(t, "Town Register", src.Title)
	assert.Equal(t, "Clerk", src.Author)
	assert.False(t, src.Synthesized)
	assert.Equal(t, 1, src.Citations)
}

func TestExportDatabase_Anomalies(t *testing.T) {
	db := parseFixture(t,
		"0 HEAD",
		"1 CHAR UTF-8",
		"0 @I1@ INDI",
		"1 FAMC @F9@",
		"0 TRLR",
	)

	out := ExportDatabase(db)
	require.NotEmpty(t, out.Anomalies)
	joined := strings.Join(out.Anomalies, "\n")
	assert.Contains(t, joined, "@F9@")
}
