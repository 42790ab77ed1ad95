package canonical

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"

	"github.com/Zedonkay/rent/internal/fairsplit"
)

// Domain prefixes for content-addressed identity.
const (
	DomainSplit = "rent/split/v1"
	DomainInput = "rent/input/v1"
)

// Fingerprint computes SHA256(domain || 0x00 || canonical(v)) as hex.
func Fingerprint(domain string, v Value) (string, error) {
	data, err := Marshal(v)
	if err != nil {
		return "", fmt.Errorf("fingerprint %s: %w", domain, err)
	}
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Cents converts a dollar amount to integer cents, rounding half away from zero.
func Cents(dollars float64) Int {
	return Int(math.Round(dollars * 100))
}

// InputValue is the canonical form of an engine input.
func InputValue(v fairsplit.Valuations, totalRent float64) Object {
	rows := make(Array, fairsplit.N)
	for i, vec := range v {
		row := make(Array, fairsplit.N)
		for r, x := range vec {
			row[r] = Cents(x)
		}
		rows[i] = row
	}
	return Object{
		"total_rent_cents": Cents(totalRent),
		"valuations_cents": rows,
	}
}

// SolutionValue is the canonical form of a solution.
func SolutionValue(s fairsplit.Solution) Object {
	assignment := make(Array, fairsplit.N)
	prices := make(Array, fairsplit.N)
	for k := 0; k < fairsplit.N; k++ {
		assignment[k] = Int(s.Assignment[k])
		prices[k] = Cents(s.Prices[k])
	}
	return Object{
		"assignment":   assignment,
		"method":       String(s.Method),
		"prices_cents": prices,
	}
}

// InputID identifies an engine input.
func InputID(v fairsplit.Valuations, totalRent float64) (string, error) {
	return Fingerprint(DomainInput, InputValue(v, totalRent))
}

// SplitID identifies a computed split: the input together with its solution.
func SplitID(v fairsplit.Valuations, totalRent float64, s fairsplit.Solution) (string, error) {
	return Fingerprint(DomainSplit, Object{
		"input":    InputValue(v, totalRent),
		"solution": SolutionValue(s),
	})
}
