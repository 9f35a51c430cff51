package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/quickcashhomes/offer-platform/internal/lead"
	"github.com/quickcashhomes/offer-platform/internal/submit"
	"github.com/quickcashhomes/offer-platform/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type okBackend struct{}

func (okBackend) Name() string { return "email" }

func (okBackend) Handle(context.Context, *lead.Submission) (*submit.Outcome, error) {
	return &submit.Outcome{Message: submit.MsgLeadReceived}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := logging.New("error")
	svc := submit.NewService(okBackend{}, 0, nil, logger)
	return New(&Config{
		Logger:         logger,
		SubmitHandler:  submit.NewHandler(svc, logger),
		MetricsHandler: promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{}),
	})
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestMetricsRoute(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubmitRoute(t *testing.T) {
	r := newTestRouter(t)

	body, _ := json.Marshal(map[string]string{
		lead.FieldFullName:      "Jane Seller",
		lead.FieldEmailAddress:  "jane@example.com",
		lead.FieldPhoneNumber:   "512-555-0100",
		lead.FieldStreetAddress: "100 Congress Ave",
		lead.FieldCity:          "Austin",
		lead.FieldState:         "TX",
		lead.FieldZipCode:       "73301",
	})
	req := httptest.NewRequest(http.MethodPost, "/offers/request", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result submit.Result
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.True(t, result.Success)
}

func TestSchemaRoute(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/forms/cash-offer/schema", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), lead.FieldZipCode)
}

func TestSubmitRouteRateLimited(t *testing.T) {
	logger := logging.New("error")
	svc := submit.NewService(okBackend{}, 0, nil, logger)
	r := New(&Config{
		Logger:             logger,
		SubmitHandler:      submit.NewHandler(svc, logger),
		RateLimitPerSecond: 0.001,
		RateLimitBurst:     1,
	})

	payload, _ := json.Marshal(map[string]string{})

	req := httptest.NewRequest(http.MethodPost, "/offers/request", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/offers/request", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "10.0.0.1:1234"
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
