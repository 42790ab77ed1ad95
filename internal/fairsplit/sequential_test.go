package fairsplit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequential(t *testing.T) {
	tests := []struct {
		name       string
		v          Valuations
		assignment Assignment
		prices     Prices
	}{
		{
			name:       "rotation",
			v:          rotation,
			assignment: Assignment{2, 1, 0},
			prices:     Prices{620, 880, 880},
		},
		{
			name:       "contested room",
			v:          contested,
			assignment: Assignment{0, 1, 2},
			prices:     Prices{2380, 0, 0},
		},
		{
			name: "residual goes negative",
			v: Valuations{
				{1200, 600, 580},
				{200, 1300, 880},
				{800, 800, 780},
			},
			assignment: Assignment{0, 1, 2},
			prices:     Prices{1200, 1300, -120},
		},
		{
			name: "second person shares first favourite",
			v: Valuations{
				{1000, 900, 480},
				{1100, 300, 980},
				{0, 0, 2380},
			},
			assignment: Assignment{0, 2, 1},
			prices:     Prices{1000, 400, 980},
		},
		{
			name: "tie with first favourite keeps person 0 in place",
			v: Valuations{
				{500, 1300, 580},
				{900, 900, 580},
				{800, 800, 780},
			},
			assignment: Assignment{1, 0, 2},
			prices:     Prices{900, 1300, 180},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sol := Sequential(tt.v, testRent)
			assert.Equal(t, MethodSequential, sol.Method)
			assert.Equal(t, tt.assignment, sol.Assignment)
			assert.InDeltaSlice(t, tt.prices[:], sol.Prices[:], 1e-9)
			assert.True(t, sol.Assignment.Valid())
			assert.InDelta(t, testRent, sol.Prices.Sum(), 1e-6)
		})
	}
}

func TestSequential_Totality(t *testing.T) {
	for _, v := range randomValuations(7, 200, testRent) {
		sol := Sequential(v, testRent)
		assert.True(t, sol.Assignment.Valid(), "assignment %v", sol.Assignment)
		assert.InDelta(t, testRent, sol.Prices.Sum(), 1e-6)
	}
}

func TestArgmaxExcluding(t *testing.T) {
	assert.Equal(t, 1, argmaxExcluding(Vector3{9, 0, 0}, 0))
	assert.Equal(t, 2, argmaxExcluding(Vector3{9, 1, 5}, 0))
	assert.Equal(t, 0, argmaxExcluding(Vector3{4, 9, 4}, 1))
}
