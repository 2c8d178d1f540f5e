package gedcom

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterner_Idempotent(t *testing.T) {
	in := NewInterner(false, nil)

	a := in.Intern("@I1@")
	b := in.Intern("@I1@")
	assert.Equal(t, a, b)
	assert.Equal(t, "@I1@", a)
	assert.Equal(t, 1, in.Len())
}

func TestInterner_OrderIndependent(t *testing.T) {
	raw := make([]string, 50)
	for i := range raw {
		raw[i] = fmt.Sprintf("@P%d@", i)
	}

	first := NewInterner(false, nil)
	for _, id := range raw {
		first.Intern(id)
	}

	shuffled := make([]string, len(raw))
	copy(shuffled, raw)
	rand.New(rand.NewSource(7)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	second := NewInterner(false, nil)
	for _, id := range shuffled {
		second.Intern(id)
	}

	require.Equal(t, first.Len(), second.Len())
	for _, id := range raw {
		assert.Equal(t, id, second.Intern(id))
	}
}

func TestInterner_ReplacementConsistent(t *testing.T) {
	db := NewDatabase()
	in := NewInterner(true, db.NextXRef)

	first := in.Intern("@FOO123@")
	assert.Equal(t, "@FOO1@", first)

	// Later lookups of the same raw id, defining or referencing, must
	// yield the same synthesized id.
	assert.Equal(t, first, in.Intern("@FOO123@"))

	other := in.Intern("@FOO9@")
	assert.Equal(t, "@FOO2@", other)
	assert.NotEqual(t, first, other)
	assert.Equal(t, first, in.Intern("@FOO123@"))
}

func TestInterner_ReplacementPrefixFallback(t *testing.T) {
	db := NewDatabase()
	in := NewInterner(true, db.NextXRef)

	// No leading letters: the fixed default prefix applies.
	got := in.Intern("@123@")
	assert.Equal(t, "@X1@", got)
}

func TestReplacementPrefix(t *testing.T) {
	tests := []struct {
		raw, want string
	}{
		{"@I1@", "I"},
		{"@IND42@", "IND"},
		{"@42@", "X"},
		{"@@", "X"},
		{"NOAT7@", "NOAT"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, replacementPrefix(tt.raw), tt.raw)
	}
}
