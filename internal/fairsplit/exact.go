package fairsplit

import (
	"math"

	"github.com/willauld/lpsimplex"
)

const (
	lpMaxIterations = 1000
	lpTolerance     = 1e-9
)

// feasibilityFunc decides whether assignment a admits envy-free prices.
type feasibilityFunc func(v Valuations, a Assignment, totalRent float64) (Prices, bool)

// ExactSearch returns the first assignment, in lexicographic order, for which
// an envy-free price vector exists. ok is false when no assignment is
// feasible; that outcome is not an error.
func ExactSearch(v Valuations, totalRent float64) (Solution, bool) {
	return exactSearch(v, totalRent, solveEnvyFreeLP, nil)
}

func exactSearch(v Valuations, totalRent float64, feasible feasibilityFunc, onCheck func(Assignment, bool)) (Solution, bool) {
	for _, a := range permutations {
		p, ok := feasible(v, a, totalRent)
		if onCheck != nil {
			onCheck(a, ok)
		}
		if ok {
			return Solution{Assignment: a, Prices: p, Method: MethodExact}, true
		}
	}
	return Solution{}, false
}

// envyFreeSystem builds the feasibility system for assignment a:
//
//	p[a[i]] - p[a[j]] <= v[i][a[i]] - v[i][a[j]]   for every i != j
//	p[0] + p[1] + p[2] = totalRent
//	0 <= p[r] <= totalRent
func envyFreeSystem(v Valuations, a Assignment, totalRent float64) (aUB [][]float64, bUB []float64, aEq [][]float64, bEq []float64, bounds []lpsimplex.Bound) {
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			if i == j {
				continue
			}
			row := make([]float64, N)
			row[a[i]] += 1
			row[a[j]] -= 1
			aUB = append(aUB, row)
			bUB = append(bUB, v[i][a[i]]-v[i][a[j]])
		}
	}
	aEq = [][]float64{{1, 1, 1}}
	bEq = []float64{totalRent}
	bounds = make([]lpsimplex.Bound, N)
	for r := range bounds {
		bounds[r] = lpsimplex.Bound{Lb: 0, Ub: totalRent}
	}
	return aUB, bUB, aEq, bEq, bounds
}

// solveEnvyFreeLP runs a zero-objective simplex over the envy-free system and
// accepts any feasible point. The point is snapped onto the rent total and
// re-checked against the inequalities independently of the solver.
func solveEnvyFreeLP(v Valuations, a Assignment, totalRent float64) (Prices, bool) {
	aUB, bUB, aEq, bEq, bounds := envyFreeSystem(v, a, totalRent)
	c := make([]float64, N)

	callback := lpsimplex.Callbackfunc(nil)
	res := lpsimplex.LPSimplex(c, aUB, bUB, aEq, bEq, bounds, callback, false, lpMaxIterations, lpTolerance, false)
	if !res.Success || len(res.X) < N {
		return Prices{}, false
	}

	var p Prices
	copy(p[:], res.X[:N])
	p, ok := snapPrices(p, totalRent)
	if !ok {
		return Prices{}, false
	}
	if !EnvyFree(v, Solution{Assignment: a, Prices: p}, Tolerance) {
		return Prices{}, false
	}
	return p, true
}

// snapPrices clears solver noise: entries within Tolerance of the bounds are
// clamped and the remaining residual is moved onto the room with the most
// slack in its direction, so every entry stays in [0, totalRent] and the sum
// is exact.
func snapPrices(p Prices, totalRent float64) (Prices, bool) {
	for r, x := range p {
		if math.IsNaN(x) || x < -Tolerance || x > totalRent+Tolerance {
			return Prices{}, false
		}
		p[r] = math.Min(math.Max(x, 0), totalRent)
	}
	residual := totalRent - p.Sum()
	if math.Abs(residual) > Tolerance {
		return Prices{}, false
	}

	best, slack := 0, math.Inf(-1)
	for r, x := range p {
		s := x
		if residual > 0 {
			s = totalRent - x
		}
		if s > slack {
			best, slack = r, s
		}
	}
	if slack < math.Abs(residual) {
		return Prices{}, false
	}
	p[best] += residual
	return p, true
}
