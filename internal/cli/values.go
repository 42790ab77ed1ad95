package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// parseValues parses a comma-separated list of dollar amounts.
func parseValues(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("no values given")
	}
	fields := strings.Split(s, ",")
	values := make([]float64, 0, len(fields))
	for i, f := range fields {
		x, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("value %d: %q is not a number", i+1, strings.TrimSpace(f))
		}
		values = append(values, x)
	}
	return values, nil
}

// parsePerson parses "name=v1,v2,v3".
func parsePerson(s string) (string, []float64, error) {
	name, rest, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", nil, fmt.Errorf("person %q: want name=v1,v2,v3", s)
	}
	values, err := parseValues(rest)
	if err != nil {
		return "", nil, fmt.Errorf("person %q: %w", name, err)
	}
	return name, values, nil
}
