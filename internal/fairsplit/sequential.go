package fairsplit

// Sequential runs the three-step last-diminisher style heuristic over people
// 0, 1 and 2 in that order. It always returns a complete assignment whose
// prices sum to totalRent; the last price is a residual and may be negative.
//
//  1. Person 0 takes their highest-valued room at their own valuation.
//  2. Person 1 takes person 0's room if they value it strictly more than
//     their own favourite, pushing person 0 onto that favourite; otherwise
//     person 1 takes their favourite. If that favourite is the room person 0
//     already holds, person 1 takes their best remaining room instead.
//  3. Person 2 takes the last room at whatever rent is left.
func Sequential(v Valuations, totalRent float64) Solution {
	var a Assignment
	var p Prices

	first := v[0].Argmax()
	a[0] = first
	p[first] = v[0][first]

	second := v[1].Argmax()
	switch {
	// Unreachable while second is person 1's argmax; kept so the steps read
	// the same as the procedure above.
	case v[1][first] > v[1][second]:
		a[1] = first
		a[0] = second
		p[first] = v[1][first]
		p[second] = v[0][second]
	case second == first:
		second = argmaxExcluding(v[1], first)
		a[1] = second
		p[second] = v[1][second]
	default:
		a[1] = second
		p[second] = v[1][second]
	}

	last := 3 - a[0] - a[1]
	a[2] = last
	p[last] = totalRent - p[a[0]] - p[a[1]]

	return Solution{Assignment: a, Prices: p, Method: MethodSequential}
}

// argmaxExcluding returns the highest-valued room other than skip, lowest
// index on ties.
func argmaxExcluding(vec Vector3, skip int) int {
	best := -1
	for r := 0; r < N; r++ {
		if r == skip {
			continue
		}
		if best < 0 || vec[r] > vec[best] {
			best = r
		}
	}
	return best
}
