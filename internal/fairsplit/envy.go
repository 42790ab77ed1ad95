package fairsplit

// EnvyScore returns the unpriced envy of an assignment: for each person the
// amount by which their best other-assigned room beats their own, clipped at
// zero, summed over people.
func EnvyScore(v Valuations, a Assignment) float64 {
	var total float64
	for i := 0; i < N; i++ {
		own := v[i][a[i]]
		best := 0.0
		first := true
		for j := 0; j < N; j++ {
			if j == i {
				continue
			}
			if x := v[i][a[j]]; first || x > best {
				best = x
				first = false
			}
		}
		if d := best - own; d > 0 {
			total += d
		}
	}
	return total
}

// Envies reports whether person i strictly prefers person j's room at its
// price by more than tol.
func Envies(v Valuations, s Solution, i, j int, tol float64) bool {
	own := s.Utility(v, i, s.Assignment[i])
	other := s.Utility(v, i, s.Assignment[j])
	return other-own > tol
}

// EnvyFree checks the envy-free inequality for every ordered pair of people
// using the solution's own numbers.
func EnvyFree(v Valuations, s Solution, tol float64) bool {
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			if i != j && Envies(v, s, i, j, tol) {
				return false
			}
		}
	}
	return true
}
