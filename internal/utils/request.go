package utils

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// DecodeJSONRequest decodes the request body into dst. On failure it
// writes a 400 response and returns the error, so callers can just return.
func DecodeJSONRequest(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return err
	}
	return nil
}

// GetUserIDFromContext extracts the authenticated user id set by the
// auth middleware.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	switch v := ctx.Value("user_id").(type) {
	case uuid.UUID:
		return v, true
	case string:
		if id, err := uuid.Parse(v); err == nil {
			return id, true
		}
	}
	return uuid.Nil, false
}
