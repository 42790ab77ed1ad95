package harness

import (
	"github.com/Zedonkay/rent/internal/fairsplit"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Scenario is the scenario name.
	Scenario string `json:"scenario"`

	// Pass is true when every expectation matched.
	Pass bool `json:"pass"`

	// Errors lists the failed expectations. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Solution is nil when the procedure failed or found nothing.
	Solution *fairsplit.Solution `json:"solution,omitempty"`

	// Method is the solution's method, MethodNone, or "" on error.
	Method string `json:"method,omitempty"`

	// ErrorCode is set when the procedure returned an engine error.
	ErrorCode fairsplit.ErrorCode `json:"error_code,omitempty"`

	// EnvyFree reports the envy-free check on the solution.
	EnvyFree bool `json:"envy_free"`
}

// NewResult creates a passing result for the named scenario.
func NewResult(name string) *Result {
	return &Result{
		Scenario: name,
		Pass:     true,
		Errors:   []string{},
	}
}

// AddError records a failed expectation and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
