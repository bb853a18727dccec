package http

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// weatherStub records how often the upstream was hit and what it received.
type weatherStub struct {
	server *httptest.Server

	mu       sync.Mutex
	hits     int
	lastPath string
	lastDays string
}

func newWeatherStub(t *testing.T, payload string) *weatherStub {
	stub := &weatherStub{}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.mu.Lock()
		stub.hits++
		stub.lastPath = r.URL.Path
		stub.lastDays = r.URL.Query().Get("days")
		stub.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	t.Cleanup(stub.server.Close)
	return stub
}

func (s *weatherStub) snapshot() (hits int, path, days string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits, s.lastPath, s.lastDays
}

func TestWeatherCurrent(t *testing.T) {
	stub := newWeatherStub(t, `{"data":[{"temp":18.2,"city_name":"Madrid"}]}`)
	ts := setupTestServer(t, stub.server.URL)
	token := ts.registerAndLogin(t, "alice", "alice@example.com", "secret1")

	resp := ts.doJSON(t, http.MethodGet, "/api/weather/current?lat=40.4&lon=-3.7", nil, token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	// Upstream body is relayed unchanged
	assert.JSONEq(t, `{"data":[{"temp":18.2,"city_name":"Madrid"}]}`, resp.Body.String())
	hits, path, _ := stub.snapshot()
	assert.Equal(t, "/current", path)
	assert.Equal(t, 1, hits)
}

func TestWeatherValidationBeforeUpstream(t *testing.T) {
	stub := newWeatherStub(t, `{}`)
	ts := setupTestServer(t, stub.server.URL)
	token := ts.registerAndLogin(t, "alice", "alice@example.com", "secret1")

	cases := []struct {
		name    string
		query   string
		wantErr string
	}{
		{"missing params", "", "lat and lon query parameters are required"},
		{"missing lon", "?lat=40.4", "lat and lon query parameters are required"},
		{"lat not a number", "?lat=abc&lon=-3.7", "lat must be a number"},
		{"lon not a number", "?lat=40.4&lon=xyz", "lon must be a number"},
		{"lat out of range", "?lat=200&lon=-3.7", "lat must be between -90 and 90"},
		{"lon out of range", "?lat=40.4&lon=500", "lon must be between -180 and 180"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := ts.doJSON(t, http.MethodGet, "/api/weather/current"+tc.query, nil, token)
			require.Equal(t, http.StatusBadRequest, resp.Code)

			var body ErrorResponse
			decodeJSON(t, resp, &body)
			assert.Equal(t, tc.wantErr, body.Error)
		})
	}

	// No request ever reached the upstream
	hits, _, _ := stub.snapshot()
	assert.Equal(t, 0, hits)
}

func TestWeatherForecast3Hourly(t *testing.T) {
	stub := newWeatherStub(t, `{"data":[]}`)
	ts := setupTestServer(t, stub.server.URL)
	token := ts.registerAndLogin(t, "alice", "alice@example.com", "secret1")

	resp := ts.doJSON(t, http.MethodGet, "/api/weather/forecast/3hourly?lat=40.4&lon=-3.7", nil, token)
	require.Equal(t, http.StatusOK, resp.Code)
	_, path, _ := stub.snapshot()
	assert.Equal(t, "/forecast/3hourly", path)
}

func TestWeatherForecastDaily(t *testing.T) {
	stub := newWeatherStub(t, `{"data":[]}`)
	ts := setupTestServer(t, stub.server.URL)
	token := ts.registerAndLogin(t, "alice", "alice@example.com", "secret1")

	// Default window when days is omitted
	resp := ts.doJSON(t, http.MethodGet, "/api/weather/forecast/daily?lat=40.4&lon=-3.7", nil, token)
	require.Equal(t, http.StatusOK, resp.Code)
	_, _, days := stub.snapshot()
	assert.Equal(t, "7", days)

	// Out-of-range days are clamped, not rejected
	resp = ts.doJSON(t, http.MethodGet, "/api/weather/forecast/daily?lat=40.4&lon=-3.7&days=100", nil, token)
	require.Equal(t, http.StatusOK, resp.Code)
	_, _, days = stub.snapshot()
	assert.Equal(t, "16", days)

	// Non-numeric days is a client error
	resp = ts.doJSON(t, http.MethodGet, "/api/weather/forecast/daily?lat=40.4&lon=-3.7&days=soon", nil, token)
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestWeatherUpstreamFailure(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(failing.Close)

	ts := setupTestServer(t, failing.URL)
	token := ts.registerAndLogin(t, "alice", "alice@example.com", "secret1")

	resp := ts.doJSON(t, http.MethodGet, "/api/weather/current?lat=40.4&lon=-3.7", nil, token)
	require.Equal(t, http.StatusInternalServerError, resp.Code)
}
