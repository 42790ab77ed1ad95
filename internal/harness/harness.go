package harness

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Zedonkay/rent/internal/fairsplit"
)

// Harness runs scenarios.
type Harness struct {
	logger   *zap.Logger
	observer fairsplit.Observer
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger passes a logger through to engines built by the harness.
func WithLogger(l *zap.Logger) Option {
	return func(h *Harness) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithObserver passes an engine observer through, e.g. a metrics collector.
func WithObserver(o fairsplit.Observer) Option {
	return func(h *Harness) {
		h.observer = o
	}
}

// New creates a Harness.
func New(opts ...Option) *Harness {
	h := &Harness{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes a scenario with a default Harness.
func Run(scenario *Scenario) (*Result, error) {
	return New().Run(scenario)
}

// Run executes a scenario and checks its expectations. The returned error
// is reserved for scenarios that cannot run at all; expectation failures
// are reported in Result.Errors.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	result := NewResult(scenario.Name)

	rows := make([][]float64, len(scenario.People))
	for i, p := range scenario.People {
		rows[i] = p.Values
	}

	sol, found, err := h.execute(scenario, rows)
	switch {
	case err != nil:
		code := fairsplit.CodeOf(err)
		if code == "" {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		result.ErrorCode = code
	case !found:
		result.Method = MethodNone
	default:
		v, _ := fairsplit.NewValuations(rows)
		result.Solution = &sol
		result.Method = string(sol.Method)
		result.EnvyFree = fairsplit.EnvyFree(v, sol, fairsplit.Tolerance)
	}

	for _, msg := range checkExpectations(scenario.Expect, scenario.TotalRent, result) {
		result.AddError(msg)
	}

	h.logger.Debug("scenario finished",
		zap.String("scenario", scenario.Name),
		zap.String("procedure", scenario.Procedure),
		zap.String("method", result.Method),
		zap.String("error_code", string(result.ErrorCode)),
		zap.Bool("pass", result.Pass),
	)
	return result, nil
}

// execute runs the scenario's procedure. found is false only when the
// exact procedure finds no envy-free assignment.
func (h *Harness) execute(scenario *Scenario, rows [][]float64) (sol fairsplit.Solution, found bool, err error) {
	v, err := fairsplit.NewValuations(rows)
	if err != nil {
		return fairsplit.Solution{}, false, err
	}

	if scenario.Procedure == ProcedureEngine {
		policy, err := fairsplit.PolicyByName(scenario.FallbackPolicy)
		if err != nil {
			return fairsplit.Solution{}, false, err
		}
		opts := []fairsplit.Option{fairsplit.WithPolicy(policy), fairsplit.WithLogger(h.logger)}
		if h.observer != nil {
			opts = append(opts, fairsplit.WithObserver(h.observer))
		}
		sol, err := fairsplit.New(opts...).Compute(v, scenario.TotalRent)
		return sol, err == nil, err
	}

	if err := fairsplit.Validate(v, scenario.TotalRent); err != nil {
		return fairsplit.Solution{}, false, err
	}

	switch scenario.Procedure {
	case ProcedureExact:
		sol, found := fairsplit.ExactSearch(v, scenario.TotalRent)
		return sol, found, nil
	case ProcedureSequential:
		return fairsplit.Sequential(v, scenario.TotalRent), true, nil
	case ProcedureMinimumEnvy:
		sol, err := fairsplit.MinimumEnvy(v, scenario.TotalRent)
		return sol, err == nil, err
	default:
		return fairsplit.Solution{}, false, fmt.Errorf("unknown procedure %q", scenario.Procedure)
	}
}

// RunAll runs scenarios in order, stopping only on scenarios that cannot run.
func (h *Harness) RunAll(scenarios []*Scenario) ([]*Result, error) {
	results := make([]*Result, 0, len(scenarios))
	for _, s := range scenarios {
		r, err := h.Run(s)
		if err != nil {
			return results, err
		}
		results = append(results, r)
	}
	return results, nil
}
