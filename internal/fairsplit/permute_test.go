package fairsplit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermutations_LexicographicOrder(t *testing.T) {
	expected := []Assignment{
		{0, 1, 2},
		{0, 2, 1},
		{1, 0, 2},
		{1, 2, 0},
		{2, 0, 1},
		{2, 1, 0},
	}
	assert.Equal(t, expected, Permutations())
}

func TestPermutations_AllValid(t *testing.T) {
	perms := Permutations()
	require.Len(t, perms, 6)
	seen := map[Assignment]bool{}
	for _, a := range perms {
		assert.True(t, a.Valid(), "permutation %v", a)
		assert.False(t, seen[a], "duplicate permutation %v", a)
		seen[a] = true
	}
}

func TestPermutations_ReturnsCopy(t *testing.T) {
	perms := Permutations()
	perms[0] = Assignment{2, 2, 2}
	assert.Equal(t, Assignment{0, 1, 2}, Permutations()[0])
}

func TestAssignment_Valid(t *testing.T) {
	tests := []struct {
		name  string
		a     Assignment
		valid bool
	}{
		{"identity", Assignment{0, 1, 2}, true},
		{"rotation", Assignment{2, 0, 1}, true},
		{"collision", Assignment{0, 0, 1}, false},
		{"out of range", Assignment{0, 1, 3}, false},
		{"negative", Assignment{-1, 1, 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.a.Valid())
		})
	}
}

func TestAssignment_Occupant(t *testing.T) {
	a := Assignment{2, 0, 1}
	assert.Equal(t, 1, a.Occupant(0))
	assert.Equal(t, 2, a.Occupant(1))
	assert.Equal(t, 0, a.Occupant(2))
	assert.Equal(t, -1, a.Occupant(5))
	assert.Equal(t, "(2,0,1)", a.String())
}

func TestVector3_Argmax(t *testing.T) {
	assert.Equal(t, 2, Vector3{800, 700, 880}.Argmax())
	assert.Equal(t, 0, Vector3{5, 5, 5}.Argmax(), "ties resolve to lowest index")
	assert.Equal(t, 1, Vector3{1, 7, 7}.Argmax())
}
