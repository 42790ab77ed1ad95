package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Zedonkay/rent/internal/fairsplit"
)

// Procedures a scenario can run.
const (
	ProcedureEngine      = "engine"
	ProcedureExact       = "exact"
	ProcedureSequential  = "sequential"
	ProcedureMinimumEnvy = "minimum-envy"
)

// MethodNone is the method reported when the exact search finds nothing.
const MethodNone = "none"

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// TotalRent is passed to the engine unchanged, so invalid rents can be
	// exercised too.
	TotalRent float64 `yaml:"total_rent"`

	// Procedure selects what runs. Defaults to ProcedureEngine.
	Procedure string `yaml:"procedure,omitempty"`

	// FallbackPolicy applies to ProcedureEngine. Defaults to
	// fairsplit.DefaultPolicy.
	FallbackPolicy string `yaml:"fallback_policy,omitempty"`

	// People are the participants in person-index order.
	People []Person `yaml:"people"`

	// Expect is the required outcome.
	Expect Expect `yaml:"expect"`
}

// Person is one participant.
type Person struct {
	Name   string    `yaml:"name"`
	Values []float64 `yaml:"values"`
}

// Expect lists the outcome checks. Unset fields are not checked.
type Expect struct {
	Method     string    `yaml:"method,omitempty"`
	Error      string    `yaml:"error,omitempty"`
	EnvyFree   *bool     `yaml:"envy_free,omitempty"`
	Assignment []int     `yaml:"assignment,omitempty"`
	Prices     []float64 `yaml:"prices,omitempty"`
}

func (e Expect) empty() bool {
	return e.Method == "" && e.Error == "" && e.EnvyFree == nil &&
		e.Assignment == nil && e.Prices == nil
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Procedure == "" {
		scenario.Procedure = ProcedureEngine
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// LoadDir loads every *.yaml and *.yml scenario in dir, sorted by file name.
func LoadDir(dir string) ([]*Scenario, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", dir, err)
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("no scenario files found in %s", dir)
	}

	scenarios := make([]*Scenario, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		if prev, ok := seen[s.Name]; ok {
			return nil, fmt.Errorf("%s: duplicate scenario name %q (also in %s)", filepath.Base(path), s.Name, prev)
		}
		seen[s.Name] = filepath.Base(path)
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks structure only. Input values are left to the
// engine so that invalid-input scenarios can be written.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch s.Procedure {
	case ProcedureEngine, ProcedureExact, ProcedureSequential, ProcedureMinimumEnvy:
	default:
		return fmt.Errorf("unknown procedure %q", s.Procedure)
	}

	if s.FallbackPolicy != "" {
		if s.Procedure != ProcedureEngine {
			return fmt.Errorf("fallback_policy only applies to the %s procedure", ProcedureEngine)
		}
		if _, err := fairsplit.PolicyByName(s.FallbackPolicy); err != nil {
			return err
		}
	}

	if len(s.People) == 0 {
		return fmt.Errorf("people list is required and must be non-empty")
	}
	for i, p := range s.People {
		if p.Name == "" {
			return fmt.Errorf("people[%d]: name is required", i)
		}
	}

	if s.Expect.empty() {
		return fmt.Errorf("expect must set at least one of method, error, envy_free, assignment, prices")
	}
	if s.Expect.Error != "" && (s.Expect.Method != "" || s.Expect.EnvyFree != nil ||
		s.Expect.Assignment != nil || s.Expect.Prices != nil) {
		return fmt.Errorf("expect.error cannot be combined with solution expectations")
	}
	if s.Expect.Assignment != nil && len(s.Expect.Assignment) != fairsplit.N {
		return fmt.Errorf("expect.assignment must have %d entries", fairsplit.N)
	}
	if s.Expect.Prices != nil && len(s.Expect.Prices) != fairsplit.N {
		return fmt.Errorf("expect.prices must have %d entries", fairsplit.N)
	}

	return nil
}
