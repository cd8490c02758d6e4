package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSONRequest(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"jin"}`))
	rec := httptest.NewRecorder()

	var p payload
	require.NoError(t, DecodeJSONRequest(rec, req, &p))
	require.Equal(t, "jin", p.Name)
}

func TestDecodeJSONRequestWritesBadRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()

	var p struct{}
	require.Error(t, DecodeJSONRequest(rec, req, &p))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUserIDFromContext(t *testing.T) {
	id := uuid.New()

	ctx := context.WithValue(context.Background(), "user_id", id)
	got, ok := GetUserIDFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, id, got)

	ctx = context.WithValue(context.Background(), "user_id", id.String())
	got, ok = GetUserIDFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, id, got)
}

func TestGetUserIDFromContextMissing(t *testing.T) {
	_, ok := GetUserIDFromContext(context.Background())
	require.False(t, ok)

	ctx := context.WithValue(context.Background(), "user_id", "not-a-uuid")
	_, ok = GetUserIDFromContext(ctx)
	require.False(t, ok)
}
