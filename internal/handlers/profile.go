package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"COFOUNDER-SPHERE_BACK-END/internal/dto"
	"COFOUNDER-SPHERE_BACK-END/internal/models"
	"COFOUNDER-SPHERE_BACK-END/internal/store"
	"COFOUNDER-SPHERE_BACK-END/internal/utils"
)

// ProfileHandler handles founder profile endpoints
type ProfileHandler struct {
	pool  *pgxpool.Pool
	store *store.Postgres
}

// NewProfileHandler creates a new ProfileHandler instance
func NewProfileHandler(pool *pgxpool.Pool, st *store.Postgres) *ProfileHandler {
	return &ProfileHandler{pool: pool, store: st}
}

func profileView(p *models.Profile) dto.ProfileView {
	return dto.ProfileView{
		ID:                  p.ID.String(),
		Name:                p.Name,
		Headline:            p.Headline,
		AvatarURL:           p.AvatarURL,
		Role:                p.Role,
		Skills:              p.Skills,
		Industries:          p.Industries,
		Vision:              p.Vision,
		WorkStyles:          p.WorkStyles,
		PartnerTraits:       p.PartnerTraits,
		Status:              p.Status,
		OnboardingCompleted: p.OnboardingCompleted,
		CreatedAt:           p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:           p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// Create handles the onboarding wizard submission
// @Summary Submit founder profile
// @Description Create or overwrite the founder profile and mark onboarding as completed
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ProfileCreateRequest true "Founder profile payload"
// @Success 201 {object} dto.ProfileResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/profile [post]
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "User not authenticated")
		return
	}

	var req dto.ProfileCreateRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	if req.Name == "" || req.Role == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "Name and role are required")
		return
	}

	// nil tag arrays become empty text[]
	for _, tags := range []*[]string{&req.Skills, &req.Industries, &req.WorkStyles, &req.PartnerTraits} {
		if *tags == nil {
			*tags = []string{}
		}
	}

	ctx := r.Context()
	now := time.Now()

	_, err := h.pool.Exec(ctx,
		`INSERT INTO profiles (id, name, headline, avatar_url, role, skills, industries,
		 vision, work_styles, partner_traits, status, onboarding_completed, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'active', TRUE, $11, $11)
		 ON CONFLICT (id) DO UPDATE SET
		   name = EXCLUDED.name, headline = EXCLUDED.headline, avatar_url = EXCLUDED.avatar_url,
		   role = EXCLUDED.role, skills = EXCLUDED.skills, industries = EXCLUDED.industries,
		   vision = EXCLUDED.vision, work_styles = EXCLUDED.work_styles,
		   partner_traits = EXCLUDED.partner_traits, onboarding_completed = TRUE,
		   updated_at = EXCLUDED.updated_at`,
		userID, req.Name, req.Headline, req.AvatarURL, req.Role, req.Skills, req.Industries,
		req.Vision, req.WorkStyles, req.PartnerTraits, now)

	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to save profile", err.Error())
		return
	}

	p, err := h.store.GetProfile(ctx, userID)
	if err != nil || p == nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to load profile", "profile not readable after save")
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.ProfileResponse{
		Profile: profileView(p),
		Message: "Profile saved",
	})
}

// Get returns the current user's founder profile
// @Summary Get founder profile
// @Description Get the current authenticated user's founder profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/profile [get]
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "User not authenticated")
		return
	}

	p, err := h.store.GetProfile(r.Context(), userID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to load profile", err.Error())
		return
	}
	if p == nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Profile not found", "Complete onboarding first")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ProfileResponse{Profile: profileView(p)})
}

// Update applies a partial profile update
// @Summary Update founder profile
// @Description Update only the fields present in the payload
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ProfileUpdateRequest true "Profile update payload"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/profile [put]
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "User not authenticated")
		return
	}

	var req dto.ProfileUpdateRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	// Build the SET clause from the fields that were actually sent
	set := []string{}
	args := []any{}
	i := 1

	addStr := func(col string, p *string, nullIfEmpty bool) {
		if p == nil {
			return
		}
		var v any = *p
		if nullIfEmpty && *p == "" {
			v = nil
		}
		set = append(set, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, v)
		i++
	}
	addTags := func(col string, p *[]string) {
		if p == nil {
			return
		}
		tags := *p
		if tags == nil {
			tags = []string{}
		}
		set = append(set, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, tags)
		i++
	}

	addStr("name", req.Name, false)
	addStr("headline", req.Headline, true)
	addStr("avatar_url", req.AvatarURL, true)
	addStr("role", req.Role, false)
	addStr("vision", req.Vision, false)
	addTags("skills", req.Skills)
	addTags("industries", req.Industries)
	addTags("work_styles", req.WorkStyles)
	addTags("partner_traits", req.PartnerTraits)

	if len(set) == 0 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Bad Request", "no fields to update")
		return
	}

	set = append(set, fmt.Sprintf("updated_at = $%d", i))
	args = append(args, time.Now())
	i++

	ctx := r.Context()

	qUpdate := fmt.Sprintf(`UPDATE profiles SET %s WHERE id = $%d`, strings.Join(set, ", "), i)
	args = append(args, userID)

	ct, err := h.pool.Exec(ctx, qUpdate, args...)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to update profile", err.Error())
		return
	}
	if ct.RowsAffected() == 0 {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Profile not found", "Complete onboarding first")
		return
	}

	p, err := h.store.GetProfile(ctx, userID)
	if err != nil || p == nil {
		if err == nil {
			err = errors.New("profile not readable after update")
		}
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Profile not found", err.Error())
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to load profile", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ProfileResponse{
		Profile: profileView(p),
		Message: "Profile updated",
	})
}
