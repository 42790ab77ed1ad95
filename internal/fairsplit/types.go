package fairsplit

import "fmt"

// N is the number of people and rooms. The engine is fixed to three.
const N = 3

// Tolerance is the absolute tolerance used for rent-sum and envy checks.
const Tolerance = 1e-3

// Vector3 is one person's valuation of each room, indexed by room.
type Vector3 [N]float64

// Sum returns the total of the three entries.
func (v Vector3) Sum() float64 {
	return v[0] + v[1] + v[2]
}

// Argmax returns the index of the largest entry, lowest index on ties.
func (v Vector3) Argmax() int {
	best := 0
	for r := 1; r < N; r++ {
		if v[r] > v[best] {
			best = r
		}
	}
	return best
}

// Valuations holds one Vector3 per person, indexed by person.
type Valuations [N]Vector3

// Assignment maps person index to room index: person i gets room a[i].
type Assignment [N]int

// Valid reports whether the assignment is a bijection over {0,1,2}.
func (a Assignment) Valid() bool {
	var seen [N]bool
	for _, r := range a {
		if r < 0 || r >= N || seen[r] {
			return false
		}
		seen[r] = true
	}
	return true
}

// Occupant returns the person holding room r, or -1.
func (a Assignment) Occupant(r int) int {
	for i, room := range a {
		if room == r {
			return i
		}
	}
	return -1
}

func (a Assignment) String() string {
	return fmt.Sprintf("(%d,%d,%d)", a[0], a[1], a[2])
}

// Prices is the rent charged for each room, indexed by room.
type Prices [N]float64

// Sum returns the total rent collected.
func (p Prices) Sum() float64 {
	return p[0] + p[1] + p[2]
}

// Method names the procedure that produced a Solution.
type Method string

const (
	MethodExact       Method = "exact"
	MethodSequential  Method = "sequential-heuristic"
	MethodMinimumEnvy Method = "minimum-envy-heuristic"
)

// Solution is an assignment plus per-room prices and the method tag.
type Solution struct {
	Assignment Assignment `json:"assignment"`
	Prices     Prices     `json:"prices"`
	Method     Method     `json:"method"`
}

// Rent returns the rent person i pays.
func (s Solution) Rent(i int) float64 {
	return s.Prices[s.Assignment[i]]
}

// Utility returns person i's surplus for room r at its price.
func (s Solution) Utility(v Valuations, i, r int) float64 {
	return v[i][r] - s.Prices[r]
}
