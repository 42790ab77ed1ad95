package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Zedonkay/rent/internal/harness"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	GoldenDir string // compare against <GoldenDir>/<name>.golden when set
	Update    bool   // regenerate golden files
	Filter    string // scenario filter (glob pattern)
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name   string   `json:"name"`
	Method string   `json:"method,omitempty"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// CheckResult holds the overall check result.
type CheckResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <scenarios-dir>",
		Short: "Run scenario files against the engine",
		Long: `Run YAML scenario files through the fair-division engine and check
their expectations. With --golden, outcomes are also compared against
golden snapshots.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, malformed scenarios, etc.)

Examples:
  rent check ./scenarios
  rent check ./scenarios --filter "contested*"
  rent check ./scenarios --golden ./golden --update`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.GoldenDir, "golden", "", "golden snapshot directory")
	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files (requires --golden)")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by name glob pattern")

	return cmd
}

func runCheck(opts *CheckOptions, scenariosDir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if _, err := os.Stat(scenariosDir); os.IsNotExist(err) {
		return formatter.Fail(codedExitError(ExitCommandError, ErrCodeNotFound,
			fmt.Sprintf("scenarios directory not found: %s", scenariosDir), nil))
	}
	if opts.Update && opts.GoldenDir == "" {
		return formatter.Fail(codedExitError(ExitCommandError, ErrCodeBadArgs, "--update requires --golden", nil))
	}

	scenarios, err := harness.LoadDir(scenariosDir)
	if err != nil {
		return formatter.Fail(codedExitError(ExitCommandError, ErrCodeBadArgs, "failed to load scenarios", err))
	}
	scenarios, err = filterScenarios(scenarios, opts.Filter)
	if err != nil {
		return formatter.Fail(codedExitError(ExitCommandError, ErrCodeBadArgs, "invalid --filter", err))
	}

	a, err := newApp(opts.RootOptions)
	if err != nil {
		return formatter.Fail(err)
	}
	defer a.Close()

	hopts := []harness.Option{harness.WithLogger(a.logger)}
	if a.collector != nil {
		hopts = append(hopts, harness.WithObserver(a.collector))
	}
	h := harness.New(hopts...)

	result := CheckResult{
		Scenarios: make([]ScenarioResult, 0, len(scenarios)),
		Total:     len(scenarios),
	}
	w := cmd.OutOrStdout()
	for _, s := range scenarios {
		formatter.VerboseLog("Running %s: %s", s.Name, s.Description)
		sr := checkScenario(h, s, opts)
		result.Scenarios = append(result.Scenarios, sr)
		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}

		if opts.Format != "json" {
			mark := "✓"
			if !sr.Pass {
				mark = "✗"
			}
			fmt.Fprintf(w, "%s %s\n", mark, sr.Name)
			for _, e := range sr.Errors {
				fmt.Fprintf(w, "  %s\n", e)
			}
		}
	}

	if opts.Format == "json" {
		return outputCheckJSON(cmd, result)
	}
	return outputCheckText(cmd, result)
}

func filterScenarios(scenarios []*harness.Scenario, pattern string) ([]*harness.Scenario, error) {
	if pattern == "" {
		return scenarios, nil
	}
	var out []*harness.Scenario
	for _, s := range scenarios {
		matched, err := filepath.Match(pattern, s.Name)
		if err != nil {
			return nil, err
		}
		if matched {
			out = append(out, s)
		}
	}
	return out, nil
}

// checkScenario runs one scenario, then handles its golden file if a golden
// directory is configured.
func checkScenario(h *harness.Harness, s *harness.Scenario, opts *CheckOptions) ScenarioResult {
	result, err := h.Run(s)
	if err != nil {
		return ScenarioResult{
			Name:   s.Name,
			Errors: []string{fmt.Sprintf("execution failed: %v", err)},
		}
	}

	sr := ScenarioResult{
		Name:   s.Name,
		Method: result.Method,
		Pass:   result.Pass,
		Errors: result.Errors,
	}
	if opts.GoldenDir == "" {
		return sr
	}

	snapshot, err := harness.Snapshot(s, result)
	if err != nil {
		sr.Pass = false
		sr.Errors = append(sr.Errors, fmt.Sprintf("snapshot failed: %v", err))
		return sr
	}

	goldenPath := filepath.Join(opts.GoldenDir, s.Name+".golden")
	if opts.Update {
		if err := os.MkdirAll(opts.GoldenDir, 0o755); err != nil {
			sr.Pass = false
			sr.Errors = append(sr.Errors, fmt.Sprintf("failed to create golden directory: %v", err))
			return sr
		}
		if err := os.WriteFile(goldenPath, snapshot, 0o644); err != nil {
			sr.Pass = false
			sr.Errors = append(sr.Errors, fmt.Sprintf("failed to write golden file: %v", err))
		}
		return sr
	}

	golden, err := os.ReadFile(goldenPath)
	if os.IsNotExist(err) {
		// No golden file: expectations only.
		return sr
	}
	if err != nil {
		sr.Pass = false
		sr.Errors = append(sr.Errors, fmt.Sprintf("failed to read golden file: %v", err))
		return sr
	}
	if !bytes.Equal(golden, snapshot) {
		sr.Pass = false
		sr.Errors = append(sr.Errors, "outcome does not match golden file (run with --update to regenerate)")
	}
	return sr
}

func outputCheckJSON(cmd *cobra.Command, result CheckResult) error {
	response := CLIResponse{
		Status: "ok",
		Data:   result,
	}
	if result.Failed > 0 {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    ErrCodeScenarioFailed,
			Message: fmt.Sprintf("%d scenario(s) failed", result.Failed),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if result.Failed > 0 {
		return codedExitError(ExitFailure, ErrCodeScenarioFailed, fmt.Sprintf("%d scenario(s) failed", result.Failed), nil)
	}
	return nil
}

func outputCheckText(cmd *cobra.Command, result CheckResult) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Check Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)

	if result.Failed > 0 {
		return codedExitError(ExitFailure, ErrCodeScenarioFailed, fmt.Sprintf("%d scenario(s) failed", result.Failed), nil)
	}

	fmt.Fprintln(w, "✓ All scenarios passed")
	return nil
}
