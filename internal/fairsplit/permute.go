package fairsplit

// permutations lists every assignment in lexicographic order.
var permutations = lexPermutations()

// Permutations returns all assignments in canonical lexicographic order.
func Permutations() []Assignment {
	out := make([]Assignment, len(permutations))
	copy(out, permutations)
	return out
}

// lexPermutations generates permutations of 0..N-1 with the standard
// next-permutation step, which yields lexicographic order.
func lexPermutations() []Assignment {
	var a Assignment
	for i := range a {
		a[i] = i
	}
	out := []Assignment{a}
	for {
		k := -1
		for i := N - 2; i >= 0; i-- {
			if a[i] < a[i+1] {
				k = i
				break
			}
		}
		if k < 0 {
			return out
		}
		l := N - 1
		for a[l] <= a[k] {
			l--
		}
		a[k], a[l] = a[l], a[k]
		for i, j := k+1, N-1; i < j; i, j = i+1, j-1 {
			a[i], a[j] = a[j], a[i]
		}
		out = append(out, a)
	}
}
