package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Zedonkay/rent/internal/config"
	"github.com/Zedonkay/rent/internal/fairsplit"
	"github.com/Zedonkay/rent/internal/round"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Rejected submission, failed scenario, engine error
	ExitCommandError = 2 // Bad flags, bad config, unreadable paths or database
)

// Error codes reported in CLI output.
const (
	ErrCodeGeneric         = "E001" // Generic/unknown error
	ErrCodeConfig          = "E002" // Config file or environment invalid
	ErrCodeStore           = "E003" // Database open or query failure
	ErrCodeBadArgs         = "E004" // Malformed command arguments
	ErrCodeNotFound        = "E005" // Path not found
	ErrCodeInvalid         = "E101" // Submission rejected by validation
	ErrCodeDuplicate       = "E102" // Submitter already in the round
	ErrCodeRoundFull       = "E103" // Round already has three submissions
	ErrCodeRoundIncomplete = "E104" // Calculate without three submissions
	ErrCodeEngine          = "E201" // Fair-division engine error
	ErrCodeScenarioFailed  = "E202" // One or more harness scenarios failed
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (ExitFailure or ExitCommandError)
	ErrCode string // Output error code, e.g. "E002" (optional)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

func codedExitError(code int, errCode, message string, err error) *ExitError {
	return &ExitError{Code: code, ErrCode: errCode, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "E001", "E201", etc.
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// Success outputs a successful result. In text mode data is printed with
// fmt.Fprintln; commands with richer text output write it themselves.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

// Fail reports err in the configured format and returns the ExitError the
// command should return. The error code and exit code come from classify.
func (f *OutputFormatter) Fail(err error) error {
	code, exit, message := classify(err)
	var details any
	var fe *fairsplit.Error
	if errors.As(err, &fe) && fe.Details != nil {
		details = fe.Details
	}
	if outErr := f.Error(code, message, details); outErr != nil {
		return outErr
	}
	return &ExitError{Code: exit, ErrCode: code, Err: err}
}

// classify maps an error to (error code, exit code, message).
func classify(err error) (string, int, string) {
	var exitErr *ExitError
	var subErr *round.SubmissionError
	var valErr config.ValidationError

	switch {
	case errors.As(err, &subErr):
		return ErrCodeInvalid, ExitFailure, subErr.Message
	case errors.Is(err, round.ErrDuplicateSubmitter):
		return ErrCodeDuplicate, ExitFailure, "already submitted valuations"
	case errors.Is(err, round.ErrRoundFull):
		return ErrCodeRoundFull, ExitFailure, fmt.Sprintf("all %d valuations have already been submitted", fairsplit.N)
	case errors.Is(err, round.ErrRoundIncomplete):
		return ErrCodeRoundIncomplete, ExitFailure, fmt.Sprintf("need exactly %d submissions", fairsplit.N)
	case fairsplit.CodeOf(err) != "":
		return ErrCodeEngine, ExitFailure, err.Error()
	case errors.As(err, &valErr):
		return ErrCodeConfig, ExitCommandError, err.Error()
	case errors.As(err, &exitErr):
		code := exitErr.ErrCode
		if code == "" {
			code = ErrCodeGeneric
		}
		return code, exitErr.Code, exitErr.Error()
	default:
		return ErrCodeGeneric, ExitFailure, err.Error()
	}
}

// writeResult prints a split as a table.
func writeResult(w io.Writer, r round.Result) {
	fmt.Fprintf(w, "Method: %s\n", r.Method)
	fmt.Fprintf(w, "Envy-free: %t\n", r.EnvyFree)
	if r.Explanation != "" {
		fmt.Fprintln(w, r.Explanation)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PERSON\tROOM\tVALUATION\tRENT\tSURPLUS")
	for _, a := range r.Assignments {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\t%.2f\n", a.Person, a.Room, a.Valuation, a.Rent, a.Surplus)
	}
	tw.Flush()

	fmt.Fprintf(w, "\nTotal rent: %.2f\n", r.TotalRent)
	if r.SplitID != "" {
		fmt.Fprintf(w, "Split ID: %s\n", r.SplitID)
	}
}
