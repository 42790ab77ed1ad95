package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Zedonkay/rent/internal/config"
	"github.com/Zedonkay/rent/internal/fairsplit"
	"github.com/Zedonkay/rent/internal/metrics"
	"github.com/Zedonkay/rent/internal/round"
	"github.com/Zedonkay/rent/internal/store"
)

var testRooms = [fairsplit.N]string{"Backyard Window Room", "Small Room", "Middle Room"}

func newTestServer(t *testing.T, collector *metrics.Collector, logger *zap.Logger) *httptest.Server {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	svc := round.NewService(st, fairsplit.New(), testRooms, 2380)
	srv := New(config.Default().Server, svc, collector, logger)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) (*http.Response, map[string]any) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp, decodeBody(t, resp)
}

func getJSON(t *testing.T, url string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	return resp, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func submitAll(t *testing.T, baseURL string) {
	t.Helper()
	people := []struct {
		name   string
		values []float64
	}{
		{"Alice", []float64{800, 700, 880}},
		{"Bob", []float64{700, 880, 800}},
		{"Carol", []float64{880, 800, 700}},
	}
	for _, p := range people {
		resp, body := postJSON(t, baseURL+"/api/submit", map[string]any{"name": p.name, "values": p.values})
		require.Equal(t, http.StatusOK, resp.StatusCode, body)
	}
}

func TestSubmit(t *testing.T) {
	ts := newTestServer(t, nil, nil)

	resp, body := postJSON(t, ts.URL+"/api/submit", map[string]any{
		"name":   "Alice",
		"values": []float64{800, 700, 880},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Submission successful", body["message"])
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
}

func TestSubmit_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    any
		message string
	}{
		{"missing name", map[string]any{"values": []float64{800, 700, 880}}, "Missing name or values"},
		{"missing values", map[string]any{"name": "Alice"}, "Missing name or values"},
		{"two values", map[string]any{"name": "Alice", "values": []float64{1190, 1190}}, "Must provide exactly 3 values"},
		{"wrong total", map[string]any{"name": "Alice", "values": []float64{1, 2, 3}}, "Total must equal 2380"},
		{"values not numbers", map[string]any{"name": "Alice", "values": []string{"a", "b", "c"}}, "Invalid JSON body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, nil, nil)
			resp, body := postJSON(t, ts.URL+"/api/submit", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.message, body["error"])
		})
	}
}

func TestSubmit_Duplicate(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	body := map[string]any{"name": "Alice", "values": []float64{800, 700, 880}}

	resp, _ := postJSON(t, ts.URL+"/api/submit", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body["name"] = "ALICE"
	resp, out := postJSON(t, ts.URL+"/api/submit", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "You have already submitted your valuations", out["error"])
}

func TestSubmit_RoundFull(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	submitAll(t, ts.URL)

	resp, out := postJSON(t, ts.URL+"/api/submit", map[string]any{"name": "Dave", "values": []float64{2380, 0, 0}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "All 3 valuations have already been submitted", out["error"])
}

func TestSubmit_WrongMethod(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	resp, err := http.Get(ts.URL + "/api/submit")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestSubmissions(t *testing.T) {
	ts := newTestServer(t, nil, nil)

	resp, body := getJSON(t, ts.URL+"/api/submissions")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Empty(t, body["submissions"])

	submitAll(t, ts.URL)
	_, body = getJSON(t, ts.URL+"/api/submissions")
	subs, ok := body["submissions"].([]any)
	require.True(t, ok)
	require.Len(t, subs, 3)

	first := subs[0].(map[string]any)
	assert.Equal(t, "Alice", first["name"])
	assert.Contains(t, first, "timestamp")
	assert.Equal(t, []any{800.0, 700.0, 880.0}, first["values"])
}

func TestCalculate_Incomplete(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	resp, body := getJSON(t, ts.URL+"/api/calculate")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Need exactly 3 submissions", body["error"])
}

func TestCalculate(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	submitAll(t, ts.URL)

	resp, body := getJSON(t, ts.URL+"/api/calculate")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "exact", body["method"])
	assert.Equal(t, true, body["envy_free"])
	assert.NotEmpty(t, body["explanation"])
	assert.NotEmpty(t, body["split_id"])

	assignments, ok := body["assignments"].([]any)
	require.True(t, ok)
	require.Len(t, assignments, 3)

	first := assignments[0].(map[string]any)
	assert.Equal(t, "Alice", first["person"])
	assert.Equal(t, "Middle Room", first["room"])
	assert.Equal(t, 880.0, first["valuation"])

	var total float64
	for _, a := range assignments {
		total += a.(map[string]any)["rent"].(float64)
	}
	assert.InDelta(t, 2380, total, 1e-6)
}

func TestResetAndHistory(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	submitAll(t, ts.URL)

	resp, _ := getJSON(t, ts.URL+"/api/calculate")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := postJSON(t, ts.URL+"/api/reset", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Submissions reset successfully", body["message"])

	_, body = getJSON(t, ts.URL+"/api/submissions")
	assert.Empty(t, body["submissions"])

	_, body = getJSON(t, ts.URL+"/api/history")
	splits, ok := body["splits"].([]any)
	require.True(t, ok)
	assert.Len(t, splits, 1)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	resp, body := getJSON(t, ts.URL+"/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	collector := metrics.NewCollector("rent")
	ts := newTestServer(t, collector, nil)
	submitAll(t, ts.URL)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `rent_http_requests_total{route="POST /api/submit",status="200"} 3`)
}

func TestMetricsDisabled(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRequestIDPropagates(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "abc-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get(RequestIDHeader))
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ts := newTestServer(t, nil, zap.New(core))

	resp, _ := getJSON(t, ts.URL+"/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET /health", fields["route"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
}

func TestRecoveryMiddleware(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	handler := recoveryMiddleware(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"internal error"}`, rec.Body.String())
	assert.Equal(t, 1, logs.FilterMessage("panic in handler").Len())
}

func TestServe_GracefulShutdown(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "serve.db"))
	require.NoError(t, err)
	defer st.Close()

	cfg := config.Default().Server
	cfg.ShutdownTimeout = 2 * time.Second
	srv := New(cfg, round.NewService(st, nil, testRooms, 2380), nil, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
