package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zedonkay/rent/internal/fairsplit"
	"github.com/Zedonkay/rent/internal/store"
)

func requireErrorCode(t *testing.T, out string, err error, code string, exit int) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, exit, GetExitCode(err))
	assert.Contains(t, out, "Error ["+code+"]")
}

func TestRoundLifecycle(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := execute(t, "list", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "No submissions yet.")

	out, err = execute(t, "submit", "Alice", "800,700,880", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "Valuations submitted for Alice (1/3)\n", out)

	out, err = execute(t, "submit", "ALICE", "800,700,880", "--config", cfg)
	requireErrorCode(t, out, err, ErrCodeDuplicate, ExitFailure)

	out, err = execute(t, "submit", "Dave", "100,100,100", "--config", cfg)
	requireErrorCode(t, out, err, ErrCodeInvalid, ExitFailure)
	assert.Contains(t, out, "Total must equal 2380")

	out, err = execute(t, "calculate", "--config", cfg)
	requireErrorCode(t, out, err, ErrCodeRoundIncomplete, ExitFailure)

	_, err = execute(t, "submit", "Bob", "700,880,800", "--config", cfg)
	require.NoError(t, err)
	_, err = execute(t, "submit", "Carol", "880,800,700", "--config", cfg)
	require.NoError(t, err)

	out, err = execute(t, "submit", "Dave", "800,700,880", "--config", cfg)
	requireErrorCode(t, out, err, ErrCodeRoundFull, ExitFailure)

	out, err = execute(t, "list", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Carol")
	assert.Contains(t, out, "3 of 3 submissions received")

	out, err = execute(t, "calculate", "--config", cfg, "--format", "json")
	require.NoError(t, err)
	var calc resultResponse
	require.NoError(t, json.Unmarshal([]byte(out), &calc))
	assert.Equal(t, fairsplit.MethodExact, calc.Data.Method)
	assert.Equal(t, "Middle Room", calc.Data.Assignments[0].Room)

	// Calculating again records nothing new.
	_, err = execute(t, "calculate", "--config", cfg)
	require.NoError(t, err)

	out, err = execute(t, "history", "--config", cfg, "--format", "json")
	require.NoError(t, err)
	var hist struct {
		Data []store.SplitRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &hist))
	require.Len(t, hist.Data, 1)
	assert.Equal(t, calc.Data.SplitID, hist.Data[0].ID)

	out, err = execute(t, "history", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, calc.Data.SplitID[:shortIDLen])
	assert.Contains(t, out, "Alice, Bob, Carol")

	out, err = execute(t, "reset", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "Cleared 3 submission(s)\n", out)

	out, err = execute(t, "list", "--config", cfg, "--format", "json")
	require.NoError(t, err)
	var list struct {
		Data []store.Submission `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Empty(t, list.Data)

	// History survives a reset.
	out, err = execute(t, "history", "--config", cfg, "--format", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &hist))
	assert.Len(t, hist.Data, 1)
}

func TestSubmit_JSON(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := execute(t, "submit", "Alice", "800,700,880", "--config", cfg, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   submitResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "Alice", resp.Data.Name)
	assert.Equal(t, []float64{800, 700, 880}, resp.Data.Values)
	assert.Equal(t, 1, resp.Data.Received)
	assert.Equal(t, fairsplit.N, resp.Data.Needed)
}

func TestSubmit_BadValues(t *testing.T) {
	out, err := execute(t, "submit", "Alice", "800,lots,880", "--config", writeTestConfig(t))
	requireErrorCode(t, out, err, ErrCodeBadArgs, ExitCommandError)
}

func TestSubmit_WrongCount(t *testing.T) {
	out, err := execute(t, "submit", "Alice", "1190,1190", "--config", writeTestConfig(t))
	requireErrorCode(t, out, err, ErrCodeInvalid, ExitFailure)
	assert.Contains(t, out, "Must provide exactly 3 values")
}

func TestStoreOpenFailure(t *testing.T) {
	cfg := writeTestConfig(t)
	t.Setenv("RENT_DATABASE_PATH", "/nonexistent/dir/rent.db")

	out, err := execute(t, "list", "--config", cfg)
	requireErrorCode(t, out, err, ErrCodeStore, ExitCommandError)
}
