package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"COFOUNDER-SPHERE_BACK-END/internal/config"
	"COFOUNDER-SPHERE_BACK-END/internal/dto"
	"COFOUNDER-SPHERE_BACK-END/internal/models"
	"COFOUNDER-SPHERE_BACK-END/internal/utils"
)

// matchService is the slice of the matching engine the HTTP layer needs.
type matchService interface {
	GenerateMatches(ctx context.Context, userID uuid.UUID)
	UserMatches(ctx context.Context, userID uuid.UUID) []models.MatchWithProfile
}

// MatchesHandler handles match generation and retrieval endpoints
type MatchesHandler struct {
	service    matchService
	runTimeout time.Duration
}

// NewMatchesHandler creates a new MatchesHandler instance
func NewMatchesHandler(service matchService, cfg *config.MatchingConfig) *MatchesHandler {
	return &MatchesHandler{service: service, runTimeout: cfg.RunTimeout}
}

// Generate kicks off a match generation run for the current user
// @Summary Generate matches
// @Description Start AI-assisted match generation in the background. The run replaces the user's match set when it finishes.
// @Tags matches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 202 {object} dto.GenerateMatchesResponse "Generation started"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /api/matches/generate [post]
func (h *MatchesHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "User not authenticated")
		return
	}

	// The run outlives the request, so it gets its own context with the
	// configured overall deadline instead of the request context.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.runTimeout)
		defer cancel()
		h.service.GenerateMatches(ctx, userID)
	}()

	utils.WriteJSONResponse(w, http.StatusAccepted, dto.GenerateMatchesResponse{
		Status:  "accepted",
		Message: "Match generation started",
	})
}

// List returns the current user's matches, highest score first
// @Summary List matches
// @Description Get the current user's matches enriched with candidate profiles
// @Tags matches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MatchListResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /api/matches [get]
func (h *MatchesHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "User not authenticated")
		return
	}

	matches := h.service.UserMatches(r.Context(), userID)

	items := make([]dto.MatchItem, 0, len(matches))
	for _, m := range matches {
		items = append(items, dto.MatchItem{
			ID:          m.ID.String(),
			UserID:      m.User2ID.String(),
			MatchScore:  m.MatchScore,
			MatchReason: m.MatchReason,
			Status:      m.Match.Status,
			CreatedAt:   m.CreatedAt.UTC().Format(time.RFC3339),
			Profile: dto.MatchProfileView{
				ID:         m.Profile.ID.String(),
				Name:       m.Profile.Name,
				Headline:   m.Profile.Headline,
				Role:       m.Profile.Role,
				Skills:     m.Profile.Skills,
				Industries: m.Profile.Industries,
				AvatarURL:  m.Profile.AvatarURL,
				Status:     m.Profile.Status,
			},
		})
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MatchListResponse{Matches: items})
}
