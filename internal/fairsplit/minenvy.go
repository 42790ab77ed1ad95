package fairsplit

// MinimumEnvy selects the assignment with the smallest EnvyScore (first in
// lexicographic order on ties) and prices each room proportionally to its
// assignee's valuation of it. Prices sum to totalRent; envy-freeness is not
// guaranteed.
//
// Returns a DEGENERATE_VALUATION error when every selected valuation is zero.
func MinimumEnvy(v Valuations, totalRent float64) (Solution, error) {
	best := permutations[0]
	bestScore := EnvyScore(v, best)
	for _, a := range permutations[1:] {
		if score := EnvyScore(v, a); score < bestScore {
			best, bestScore = a, score
		}
	}

	var denom float64
	for i := 0; i < N; i++ {
		denom += v[i][best[i]]
	}
	if denom == 0 {
		return Solution{}, newDegenerateValuation(best)
	}

	var p Prices
	for i := 0; i < N; i++ {
		p[best[i]] = totalRent * v[i][best[i]] / denom
	}
	return Solution{Assignment: best, Prices: p, Method: MethodMinimumEnvy}, nil
}
