package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"COFOUNDER-SPHERE_BACK-END/internal/dto"
)

func TestHealthCheckReportsService(t *testing.T) {
	h := NewHealthHandler(nil)

	rec := httptest.NewRecorder()
	h.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body dto.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "ok", body.Status)

	details, ok := body.Details.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "cofounder-sphere-backend", details["service"])
}

func TestLivenessCheckReportsUptime(t *testing.T) {
	h := NewHealthHandler(nil)

	rec := httptest.NewRecorder()
	h.LivenessCheck(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body dto.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "alive", body.Status)

	details, ok := body.Details.(map[string]any)
	require.True(t, ok)
	require.Contains(t, details, "uptime_ms")
}
