package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"COFOUNDER-SPHERE_BACK-END/internal/dto"
	"COFOUNDER-SPHERE_BACK-END/internal/utils"
)

// LikesHandler handles profile likes and the like-count rankings
type LikesHandler struct {
	db  *pgxpool.Pool
	svc *NotificationsService
}

// NewLikesHandler creates a new LikesHandler instance
func NewLikesHandler(db *pgxpool.Pool, svc *NotificationsService) *LikesHandler {
	return &LikesHandler{db: db, svc: svc}
}

// Toggle flips the like state between the current user and a profile
// @Summary Toggle profile like
// @Description Like or unlike a founder profile. Returns the new state and the profile's like count.
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile ID"
// @Success 200 {object} dto.LikeToggleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/likes/{id}/toggle [post]
func (h *LikesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	// Parse profile ID from /api/likes/{id}/toggle
	path := r.URL.Path
	rest := strings.TrimPrefix(path, "/api/likes/")
	slash := strings.Index(rest, "/")
	if slash <= 0 || !strings.HasSuffix(path, "/toggle") {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid path", "missing or invalid profile id")
		return
	}

	likedID, err := uuid.Parse(strings.TrimSpace(rest[:slash]))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid id", "profile id must be a valid UUID")
		return
	}

	if likedID == userID {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid target", "You cannot like your own profile")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// The toggle lives in a stored procedure so the like row and the
	// counter stay consistent under concurrent taps.
	var liked bool
	var likeCount int
	err = h.db.QueryRow(ctx,
		`SELECT liked, like_count FROM toggle_profile_like($1, $2)`,
		userID, likedID).Scan(&liked, &likeCount)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to toggle like")
		return
	}

	if liked && h.svc != nil {
		// Best effort: the like itself already succeeded.
		message := "Someone liked your founder profile."
		_ = h.svc.Create(ctx, likedID, TypeProfileLiked, "Your profile got a like", &message,
			map[string]any{"liker_id": userID.String()})
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.LikeToggleResponse{
		Liked:     liked,
		LikeCount: likeCount,
	})
}

// Rankings returns the most-liked founder profiles
// @Summary Like rankings
// @Description Get founder profiles ordered by like count.
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.RankingsResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/rankings [get]
func (h *LikesHandler) Rankings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	rows, err := h.db.Query(ctx, `SELECT profile_id, name, role, avatar_url, like_count FROM get_like_rankings($1)`, 20)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to fetch rankings")
		return
	}
	defer rows.Close()

	rankings := []dto.RankingItem{}
	rank := 0
	for rows.Next() {
		var (
			profileID uuid.UUID
			name      string
			role      string
			avatarURL *string
			likeCount int
		)
		if err := rows.Scan(&profileID, &name, &role, &avatarURL, &likeCount); err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to process rankings")
			return
		}
		rank++
		rankings = append(rankings, dto.RankingItem{
			Rank:      rank,
			ProfileID: profileID.String(),
			Name:      name,
			Role:      role,
			AvatarURL: avatarURL,
			LikeCount: likeCount,
		})
	}
	if err := rows.Err(); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to process rankings")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.RankingsResponse{Rankings: rankings})
}
