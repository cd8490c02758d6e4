package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"COFOUNDER-SPHERE_BACK-END/internal/config"
	"COFOUNDER-SPHERE_BACK-END/internal/dto"
	"COFOUNDER-SPHERE_BACK-END/internal/models"
)

type stubMatchService struct {
	generated chan uuid.UUID
	matches   []models.MatchWithProfile
}

func (s *stubMatchService) GenerateMatches(_ context.Context, userID uuid.UUID) {
	if s.generated != nil {
		s.generated <- userID
	}
}

func (s *stubMatchService) UserMatches(_ context.Context, _ uuid.UUID) []models.MatchWithProfile {
	return s.matches
}

func authedRequest(method, target string, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := context.WithValue(req.Context(), "user_id", userID)
	return req.WithContext(ctx)
}

func TestGenerateAcceptsAndRunsInBackground(t *testing.T) {
	svc := &stubMatchService{generated: make(chan uuid.UUID, 1)}
	h := NewMatchesHandler(svc, &config.MatchingConfig{RunTimeout: time.Minute})

	userID := uuid.New()
	rec := httptest.NewRecorder()
	h.Generate(rec, authedRequest(http.MethodPost, "/api/matches/generate", userID))

	require.Equal(t, http.StatusAccepted, rec.Code)

	var body dto.GenerateMatchesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "accepted", body.Status)

	select {
	case got := <-svc.generated:
		require.Equal(t, userID, got)
	case <-time.After(time.Second):
		t.Fatal("generation was never started")
	}
}

func TestGenerateRequiresAuth(t *testing.T) {
	h := NewMatchesHandler(&stubMatchService{}, &config.MatchingConfig{RunTimeout: time.Minute})

	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/api/matches/generate", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListRendersMatches(t *testing.T) {
	candidateID := uuid.New()
	headline := "Ex-fintech infra lead"
	svc := &stubMatchService{matches: []models.MatchWithProfile{
		{
			Match: models.Match{
				ID:          uuid.New(),
				User2ID:     candidateID,
				MatchScore:  91,
				MatchReason: []string{"공통 관심사"},
				Status:      models.MatchStatusPending,
				CreatedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			},
			Profile: models.MatchProfile{
				ID:         candidateID,
				Name:       "Dana",
				Headline:   &headline,
				Role:       "CTO",
				Skills:     []string{"go", "postgres"},
				Industries: []string{"fintech"},
				Status:     "active",
			},
		},
	}}
	h := NewMatchesHandler(svc, &config.MatchingConfig{RunTimeout: time.Minute})

	rec := httptest.NewRecorder()
	h.List(rec, authedRequest(http.MethodGet, "/api/matches", uuid.New()))

	require.Equal(t, http.StatusOK, rec.Code)

	var body dto.MatchListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Matches, 1)

	item := body.Matches[0]
	require.Equal(t, candidateID.String(), item.UserID)
	require.Equal(t, 91, item.MatchScore)
	require.Equal(t, []string{"공통 관심사"}, item.MatchReason)
	require.Equal(t, models.MatchStatusPending, item.Status)
	require.Equal(t, "2026-03-01T12:00:00Z", item.CreatedAt)
	require.Equal(t, "Dana", item.Profile.Name)
	require.Equal(t, []string{"go", "postgres"}, item.Profile.Skills)
}

func TestListEmptyIsAnEmptyArray(t *testing.T) {
	h := NewMatchesHandler(&stubMatchService{}, &config.MatchingConfig{RunTimeout: time.Minute})

	rec := httptest.NewRecorder()
	h.List(rec, authedRequest(http.MethodGet, "/api/matches", uuid.New()))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"matches": []}`, rec.Body.String())
}
