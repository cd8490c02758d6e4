package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"COFOUNDER-SPHERE_BACK-END/internal/config"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		Secret:         "test-secret",
		AccessTokenTTL: time.Hour,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	token, err := GenerateToken(userID, "founder@example.com", cfg)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, cfg)
	require.NoError(t, err)
	require.Equal(t, userID, claims.UserID)
	require.Equal(t, "founder@example.com", claims.Email)
	require.Equal(t, "cofounder-sphere", claims.Issuer)
	require.Equal(t, userID.String(), claims.Subject)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "founder@example.com", testJWTConfig())
	require.NoError(t, err)

	_, err = ValidateToken(token, &config.JWTConfig{Secret: "other-secret"})
	require.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "test-secret", AccessTokenTTL: -time.Minute}
	token, err := GenerateToken(uuid.New(), "founder@example.com", cfg)
	require.NoError(t, err)

	_, err = ValidateToken(token, cfg)
	require.Error(t, err)
}

func TestValidateTokenRejectsForeignIssuer(t *testing.T) {
	cfg := testJWTConfig()
	claims := JWTClaims{
		UserID: uuid.New(),
		Email:  "founder@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "some-other-service",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	_, err = ValidateToken(token, cfg)
	require.Error(t, err)
}

func TestValidateTokenRejectsUnexpectedSigningMethod(t *testing.T) {
	cfg := testJWTConfig()
	claims := JWTClaims{
		UserID: uuid.New(),
		Email:  "founder@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "cofounder-sphere",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	_, err = ValidateToken(token, cfg)
	require.Error(t, err)
}

func TestAuthMiddlewarePutsUserInContext(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	token, err := GenerateToken(userID, "founder@example.com", cfg)
	require.NoError(t, err)

	var gotUserID any
	next := func(w http.ResponseWriter, r *http.Request) {
		gotUserID = r.Context().Value("user_id")
		w.WriteHeader(http.StatusOK)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/matches", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	AuthMiddleware(next, cfg)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, userID, gotUserID)
}

func TestAuthMiddlewareRejectsBadHeaders(t *testing.T) {
	cfg := testJWTConfig()
	next := func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	}

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not.a.token"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/matches", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(next, cfg)(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
