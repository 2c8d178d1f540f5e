package graph

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/gedgraph/internal/gedcom"
)

func parseFixture(t *testing.T, lines ...string) *gedcom.Database {
	t.Helper()
	db, err := gedcom.DecodeBytes([]byte(strings.Join(lines, "\n")+"\n"), gedcom.Options{})
	require.NoError(t, err)
	return db
}

func TestLoad_ProjectsDatabase(t *testing.T) {
	db := parseFixture(t,
		"0 HEAD",
		"0 @F1@ FAM",
		"1 HUSB @I1@",
		"1 WIFE @I2@",
		"1 CHIL @I3@",
		"1 MARR",
		"2 DATE 12 JUN 1920",
		"1 SOUR @S1@",
		"0 @I1@ INDI",
		"1 NAME John /Doe/",
		"1 SEX M",
		"1 BIRT",
		"2 DATE 1 MAY 1890",
		"1 SOUR @S1@",
		"0 @I2@ INDI",
		"1 NAME Mary /Smith/",
		"1 SEX F",
		"0 @I3@ INDI",
		"1 NAME Jane /Doe/",
		"1 DEAT",
		"2 DATE 1970",
		"2 SOUR @S1@",
		"0 @S1@ SOUR",
		"1 TITL Parish records",
		"0 TRLR",
	)

	s := NewMemStore()
	ctx := context.Background()
	stats, err := Load(ctx, s, db)
	require.NoError(t, err)

	john, err := s.GetPerson(ctx, "@I1@")
	require.NoError(t, err)
	require.NotNil(t, john)
	assert.Equal(t, "John /Doe/", john.Name)
	assert.Equal(t, "Doe", john.Surname)
	assert.Equal(t, "M", john.Sex)
	assert.Equal(t, 1890, john.BirthYear)
	assert.Equal(t, 0, john.DeathYear)

	jane, err := s.GetPerson(ctx, "@I3@")
	require.NoError(t, err)
	assert.Equal(t, 1970, jane.DeathYear)

	fam, err := s.GetFamily(ctx, "@F1@")
	require.NoError(t, err)
	require.NotNil(t, fam)
	assert.Equal(t, 1920, fam.MarriageYear)
	assert.Equal(t, 1, fam.ChildCount)

	edges, err := s.GetAllEdges(ctx)
	require.NoError(t, err)
	byKind := map[EdgeKind][]Edge{}
	for _, e := range edges {
		byKind[e.Kind] = append(byKind[e.Kind], e)
	}

	require.Len(t, byKind[EdgeKindSpouseIn], 2)
	roles := map[string]string{}
	for _, e := range byKind[EdgeKindSpouseIn] {
		roles[e.SourceID] = e.Label
	}
	assert.Equal(t, map[string]string{"@I1@": RoleHusband, "@I2@": RoleWife}, roles)

	require.Len(t, byKind[EdgeKindChildIn], 1)
	assert.Equal(t, "@I3@", byKind[EdgeKindChildIn][0].SourceID)
	assert.Equal(t, "unknown", byKind[EdgeKindChildIn][0].Label)

	// Record-level and event-level citations both project, deduplicated.
	cites := map[string]bool{}
	for _, e := range byKind[EdgeKindCites] {
		cites[e.SourceID] = true
	}
	assert.Equal(t, map[string]bool{"@I1@": true, "@I3@": true}, cites)
	require.Len(t, byKind[EdgeKindFamilyCites], 1)
	assert.Equal(t, "@F1@", byKind[EdgeKindFamilyCites][0].SourceID)

	assert.Equal(t, &GraphStats{
		PersonCount: 3,
		FamilyCount: 1,
		SourceCount: 1,
		TreeCount:   1,
		EdgeCount:   9, // 3 membership + 2 CITES + 1 FAM_CITES + 3 BELONGS
	}, stats)

	trees, err := s.GetTrees(ctx)
	require.NoError(t, err)
	require.Len(t, trees, 1)
	assert.Equal(t, "Doe", trees[0].Name)
	assert.Equal(t, 3, trees[0].PersonCount)
	assert.Equal(t, 1, trees[0].FamilyCount)
}

func TestLoad_PedigreeLabel(t *testing.T) {
	db := parseFixture(t,
		"0 HEAD",
		"0 @F1@ FAM",
		"1 CHIL @I1@",
		"2 _FREL Adopted",
		"2 _MREL Adopted",
		"0 @I1@ INDI",
		"0 TRLR",
	)

	s := NewMemStore()
	_, err := Load(context.Background(), s, db)
	require.NoError(t, err)

	edges, err := s.GetAllEdges(context.Background())
	require.NoError(t, err)
	var found bool
	for _, e := range edges {
		if e.Kind == EdgeKindChildIn {
			found = true
			assert.Equal(t, "adopted", e.Label)
		}
	}
	assert.True(t, found)
}

func TestLoad_SkipsDanglingMembership(t *testing.T) {
	db := parseFixture(t,
		"0 HEAD",
		"0 @I1@ INDI",
		"1 FAMS @F404@",
		"0 TRLR",
	)

	s := NewMemStore()
	stats, err := Load(context.Background(), s, db)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.PersonCount)
	assert.Equal(t, 0, stats.EdgeCount)
}
