package harness

import (
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/Zedonkay/rent/internal/canonical"
)

// Snapshot returns the canonical JSON of a scenario's outcome. Prices are
// in integer cents, so the bytes are stable across platforms.
func Snapshot(scenario *Scenario, result *Result) ([]byte, error) {
	var outcome canonical.Object
	switch {
	case result.ErrorCode != "":
		outcome = canonical.Object{"error": canonical.String(result.ErrorCode)}
	case result.Solution == nil:
		outcome = canonical.Object{"method": canonical.String(result.Method)}
	default:
		outcome = canonical.SolutionValue(*result.Solution)
		outcome["envy_free"] = canonical.Bool(result.EnvyFree)
	}

	data, err := canonical.Marshal(canonical.Object{
		"scenario":  canonical.String(scenario.Name),
		"procedure": canonical.String(scenario.Procedure),
		"outcome":   outcome,
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", scenario.Name, err)
	}
	return data, nil
}

// RunWithGolden executes a scenario, fails the test on unmet expectations,
// and compares the outcome against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	if !result.Pass {
		t.Errorf("scenario %s failed: %v", scenario.Name, result.Errors)
	}
	return AssertGolden(t, scenario, result)
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenario, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
	return nil
}
