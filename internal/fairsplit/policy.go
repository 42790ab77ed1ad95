package fairsplit

import (
	"fmt"
	"sort"
)

// FallbackPolicy produces a solution when the exact search finds none.
type FallbackPolicy interface {
	// Name is the configuration name of the policy.
	Name() string
	// Fallback computes an unconditional solution.
	Fallback(v Valuations, totalRent float64) (Solution, error)
}

// Policy names accepted in configuration.
const (
	PolicySequential  = "sequential"
	PolicyMinimumEnvy = "minimum-envy"
)

// DefaultPolicy is used when no policy is configured.
const DefaultPolicy = PolicySequential

// SequentialPolicy falls back to the sequential heuristic.
type SequentialPolicy struct{}

func (SequentialPolicy) Name() string { return PolicySequential }

func (SequentialPolicy) Fallback(v Valuations, totalRent float64) (Solution, error) {
	return Sequential(v, totalRent), nil
}

// MinimumEnvyPolicy falls back to the minimum-envy heuristic.
type MinimumEnvyPolicy struct{}

func (MinimumEnvyPolicy) Name() string { return PolicyMinimumEnvy }

func (MinimumEnvyPolicy) Fallback(v Valuations, totalRent float64) (Solution, error) {
	return MinimumEnvy(v, totalRent)
}

var policies = map[string]FallbackPolicy{
	PolicySequential:  SequentialPolicy{},
	PolicyMinimumEnvy: MinimumEnvyPolicy{},
}

// PolicyByName returns the policy registered under name. An empty name
// selects DefaultPolicy.
func PolicyByName(name string) (FallbackPolicy, error) {
	if name == "" {
		name = DefaultPolicy
	}
	p, ok := policies[name]
	if !ok {
		return nil, fmt.Errorf("unknown fallback policy %q: must be one of %v", name, PolicyNames())
	}
	return p, nil
}

// PolicyNames lists the registered policy names in sorted order.
func PolicyNames() []string {
	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
