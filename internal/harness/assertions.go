package harness

import (
	"fmt"
	"math"
	"slices"

	"github.com/Zedonkay/rent/internal/fairsplit"
)

// priceTolerance is one cent.
const priceTolerance = 0.01

// checkExpectations compares a result against its scenario's expectations
// and returns one message per mismatch.
func checkExpectations(expect Expect, totalRent float64, r *Result) []string {
	var errs []string

	if expect.Error != "" {
		if string(r.ErrorCode) != expect.Error {
			errs = append(errs, fmt.Sprintf("error: expected %s, got %s", expect.Error, describe(r)))
		}
		return errs
	}

	if r.ErrorCode != "" {
		return []string{fmt.Sprintf("unexpected error %s", r.ErrorCode)}
	}

	if expect.Method != "" && expect.Method != r.Method {
		errs = append(errs, fmt.Sprintf("method: expected %q, got %q", expect.Method, r.Method))
	}

	if r.Solution == nil {
		if expect.EnvyFree != nil || expect.Assignment != nil || expect.Prices != nil {
			errs = append(errs, "no solution to check envy_free, assignment or prices against")
		}
		return errs
	}

	if expect.EnvyFree != nil && *expect.EnvyFree != r.EnvyFree {
		errs = append(errs, fmt.Sprintf("envy_free: expected %t, got %t", *expect.EnvyFree, r.EnvyFree))
	}

	if expect.Assignment != nil {
		got := r.Solution.Assignment[:]
		if !slices.Equal(expect.Assignment, got) {
			errs = append(errs, fmt.Sprintf("assignment: expected %v, got %v", expect.Assignment, got))
		}
	}

	if expect.Prices != nil {
		for k, want := range expect.Prices {
			if got := r.Solution.Prices[k]; math.Abs(got-want) > priceTolerance {
				errs = append(errs, fmt.Sprintf("prices[%d]: expected %.2f, got %.2f", k, want, got))
			}
		}
	}

	// Structural checks that hold for every solution.
	if !r.Solution.Assignment.Valid() {
		errs = append(errs, fmt.Sprintf("assignment %v is not a permutation", r.Solution.Assignment))
	}
	if sum := r.Solution.Prices.Sum(); math.IsNaN(sum) || !fairsplit.SumMatches(sum, totalRent) {
		errs = append(errs, fmt.Sprintf("prices sum to %.4f", sum))
	}

	return errs
}

func describe(r *Result) string {
	if r.ErrorCode != "" {
		return string(r.ErrorCode)
	}
	if r.Method != "" {
		return "method " + r.Method
	}
	return "no error"
}
