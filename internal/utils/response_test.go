package utils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"COFOUNDER-SPHERE_BACK-END/internal/dto"
)

func TestWriteJSONResponse(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteJSONResponse(rec, 201, map[string]string{"status": "created"})

	require.Equal(t, 201, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "created", body["status"])
}

func TestWriteErrorResponse(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteErrorResponse(rec, 404, "Not Found", "no such profile")

	require.Equal(t, 404, rec.Code)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Not Found", body.Error)
	require.Equal(t, "no such profile", body.Message)
}
