package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zedonkay/rent/internal/fairsplit"
)

func TestCollector_EngineEvents(t *testing.T) {
	c := NewCollector("")

	c.ObserveFeasibilityCheck(false)
	c.ObserveFeasibilityCheck(false)
	c.ObserveFeasibilityCheck(true)
	c.ObserveSplit(fairsplit.MethodExact, 2*time.Millisecond)
	c.ObserveSplit(fairsplit.MethodSequential, time.Millisecond)
	c.ObserveError(fairsplit.ErrCodeInvalidInput)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.lpChecks.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.lpChecks.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.splits.WithLabelValues("exact")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.splits.WithLabelValues("sequential-heuristic")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.engineErrors.WithLabelValues("INVALID_INPUT")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.splitDuration))
}

func TestCollector_ObservesEngine(t *testing.T) {
	c := NewCollector("rent")
	engine := fairsplit.New(fairsplit.WithObserver(c))

	v := fairsplit.Valuations{
		{800, 700, 880},
		{700, 880, 800},
		{880, 800, 700},
	}
	sol, err := engine.Compute(v, 2380)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.splits.WithLabelValues(string(sol.Method))))
	assert.GreaterOrEqual(t, testutil.CollectAndCount(c.lpChecks), 1)

	_, err = engine.Compute(v, -1)
	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.engineErrors.WithLabelValues("INVALID_INPUT")))
}

func TestCollector_Submissions(t *testing.T) {
	c := NewCollector("rent")
	c.RecordSubmission(OutcomeAccepted)
	c.RecordSubmission(OutcomeAccepted)
	c.RecordSubmission(OutcomeDuplicate)

	expected := `
# HELP rent_submissions_total Valuation submissions by outcome.
# TYPE rent_submissions_total counter
rent_submissions_total{outcome="accepted"} 2
rent_submissions_total{outcome="duplicate"} 1
`
	err := testutil.CollectAndCompare(c.submissions, strings.NewReader(expected), "rent_submissions_total")
	assert.NoError(t, err)
}

func TestCollector_Namespace(t *testing.T) {
	c := NewCollector("household")
	c.RecordSubmission(OutcomeAccepted)

	n, err := testutil.GatherAndCount(c.Registry(), "household_submissions_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCollector_IndependentRegistries(t *testing.T) {
	a := NewCollector("rent")
	b := NewCollector("rent")
	a.RecordSubmission(OutcomeAccepted)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.submissions.WithLabelValues(OutcomeAccepted)))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.submissions.WithLabelValues(OutcomeAccepted)))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("rent")
	c.RecordRequest("/api/submit", http.StatusOK, 3*time.Millisecond)

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `rent_http_requests_total{route="/api/submit",status="200"} 1`)
}
