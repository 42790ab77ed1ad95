package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Zedonkay/rent/internal/fairsplit"
	"github.com/Zedonkay/rent/internal/testutil"
)

// testEpoch is the first timestamp a test store hands out.
var testEpoch = time.Date(2024, 9, 1, 9, 0, 0, 0, time.UTC)

// createTestStore creates a new store in a temp directory for testing. Its
// clock starts at testEpoch and advances one second per timestamp.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithClock(testutil.NewStepClock(testEpoch, time.Second).Now))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// fixedClock pins the store's clock so timestamps are deterministic.
func fixedClock(s *Store, at time.Time) {
	s.now = func() time.Time { return at }
}

func createTestSubmission(name string, values ...float64) Submission {
	var v fairsplit.Vector3
	copy(v[:], values)
	return Submission{Name: name, Values: v}
}
