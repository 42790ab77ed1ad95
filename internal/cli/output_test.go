package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zedonkay/rent/internal/config"
	"github.com/Zedonkay/rent/internal/fairsplit"
	"github.com/Zedonkay/rent/internal/round"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Success(map[string]string{"result": "success"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Error(ErrCodeEngine, "engine failed", map[string]string{"person": "1"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E201", resp.Error.Code)
	assert.Equal(t, "engine failed", resp.Error.Message)
	assert.NotNil(t, resp.Error.Details)
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, formatter.Error("E001", "something broke", "hidden"))
	assert.Equal(t, "Error [E001]: something broke\n", buf.String())

	buf.Reset()
	formatter.Verbose = true
	require.NoError(t, formatter.Error("E001", "something broke", "shown"))
	assert.Contains(t, buf.String(), "Details: shown")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut}

	formatter.VerboseLog("hidden %d", 1)
	assert.Empty(t, errOut.String())

	formatter.Verbose = true
	formatter.VerboseLog("shown %d", 2)
	assert.Equal(t, "shown 2\n", errOut.String())
	assert.Empty(t, out.String())
}

func TestOutputFormatter_GetErrWriter(t *testing.T) {
	out := &bytes.Buffer{}
	formatter := &OutputFormatter{Writer: out}
	assert.Same(t, out, formatter.GetErrWriter())

	errOut := &bytes.Buffer{}
	formatter.ErrWriter = errOut
	assert.Same(t, errOut, formatter.GetErrWriter())
}

func TestExitError(t *testing.T) {
	base := errors.New("disk full")

	assert.Equal(t, "plain", NewExitError(ExitFailure, "plain").Error())
	assert.Equal(t, "write failed: disk full", WrapExitError(ExitCommandError, "write failed", base).Error())
	assert.Equal(t, "disk full", (&ExitError{Code: ExitFailure, Err: base}).Error())

	wrapped := fmt.Errorf("outer: %w", WrapExitError(ExitCommandError, "write failed", base))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
	assert.ErrorIs(t, wrapped, base)
	assert.Equal(t, ExitFailure, GetExitCode(base))
}

func TestClassify(t *testing.T) {
	engineErr := &fairsplit.Error{Code: fairsplit.ErrCodeInvalidInput, Message: "bad"}

	tests := []struct {
		name     string
		err      error
		wantCode string
		wantExit int
	}{
		{"invalid submission", &round.SubmissionError{Message: "Must provide exactly 3 values"}, ErrCodeInvalid, ExitFailure},
		{"duplicate", fmt.Errorf("submit: %w", round.ErrDuplicateSubmitter), ErrCodeDuplicate, ExitFailure},
		{"full", round.ErrRoundFull, ErrCodeRoundFull, ExitFailure},
		{"incomplete", fmt.Errorf("%w: have 1", round.ErrRoundIncomplete), ErrCodeRoundIncomplete, ExitFailure},
		{"engine", fmt.Errorf("compute split: %w", engineErr), ErrCodeEngine, ExitFailure},
		{"config", codedExitError(ExitCommandError, ErrCodeConfig, "failed to load config", config.ValidationError{}), ErrCodeConfig, ExitCommandError},
		{"store", codedExitError(ExitCommandError, ErrCodeStore, "failed to open database", errors.New("locked")), ErrCodeStore, ExitCommandError},
		{"plain exit", NewExitError(ExitCommandError, "bad"), ErrCodeGeneric, ExitCommandError},
		{"unknown", errors.New("boom"), ErrCodeGeneric, ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, exit, msg := classify(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantExit, exit)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestFail(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	err := formatter.Fail(fmt.Errorf("submit: %w", round.ErrRoundFull))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.ErrorIs(t, err, round.ErrRoundFull)
	assert.Equal(t, "Error [E103]: all 3 valuations have already been submitted\n", buf.String())
}

func TestWriteResult(t *testing.T) {
	buf := &bytes.Buffer{}
	writeResult(buf, round.Result{
		SplitID:     "abc123",
		Method:      fairsplit.MethodExact,
		Explanation: "Nobody envies anyone.",
		EnvyFree:    true,
		TotalRent:   2380,
		Assignments: []round.PersonAssignment{
			{Person: "Alice", Room: "Middle Room", RoomIndex: 2, Valuation: 880, Rent: 800, Surplus: 80},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Method: exact\n")
	assert.Contains(t, out, "Envy-free: true\n")
	assert.Contains(t, out, "Nobody envies anyone.")
	assert.Contains(t, out, "PERSON")
	assert.Contains(t, out, "Middle Room")
	assert.Contains(t, out, "880.00")
	assert.Contains(t, out, "Total rent: 2380.00")
	assert.Contains(t, out, "Split ID: abc123")
}
