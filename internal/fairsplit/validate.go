package fairsplit

import "math"

// SumMatches reports whether sum equals total within Tolerance.
func SumMatches(sum, total float64) bool {
	return math.Abs(sum-total) <= Tolerance
}

// NewValuations converts per-person rows into Valuations, rejecting rows that
// do not hold exactly three entries. Entries are copied.
func NewValuations(rows [][]float64) (Valuations, error) {
	var v Valuations
	if len(rows) != N {
		return v, newInvalidInput(-1, "need exactly %d valuation vectors, got %d", N, len(rows))
	}
	for i, row := range rows {
		if len(row) != N {
			return v, newInvalidInput(i, "valuation vector must have %d entries, got %d", N, len(row))
		}
		copy(v[i][:], row)
	}
	return v, nil
}

// ValidateVector checks a single person's vector against the total rent.
func ValidateVector(person int, vec Vector3, totalRent float64) error {
	for r, x := range vec {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return newInvalidInput(person, "valuation of room %d is not finite", r)
		}
		if x < 0 {
			return newInvalidInput(person, "valuation of room %d is negative (%g)", r, x)
		}
	}
	if sum := vec.Sum(); !SumMatches(sum, totalRent) {
		return newInvalidInput(person, "valuations sum to %g, want %g", sum, totalRent)
	}
	return nil
}

// Validate checks the engine precondition: positive finite total rent and
// three non-negative vectors each summing to it within Tolerance.
func Validate(v Valuations, totalRent float64) error {
	if math.IsNaN(totalRent) || math.IsInf(totalRent, 0) || totalRent <= 0 {
		return newInvalidInput(-1, "total rent must be positive and finite, got %g", totalRent)
	}
	for i, vec := range v {
		if err := ValidateVector(i, vec, totalRent); err != nil {
			return err
		}
	}
	return nil
}
