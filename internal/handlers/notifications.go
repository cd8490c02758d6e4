package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"COFOUNDER-SPHERE_BACK-END/internal/dto"
	"COFOUNDER-SPHERE_BACK-END/internal/utils"
)

// Notification types
const (
	TypeMatchesGenerated = "matches_generated"
	TypeProfileLiked     = "profile_liked"
)

var validNotificationTypes = map[string]bool{
	TypeMatchesGenerated: true,
	TypeProfileLiked:     true,
}

// NotificationsService creates notification rows and pushes the optional
// match digest email. It also satisfies the matching engine's Notifier.
type NotificationsService struct {
	db     *pgxpool.Pool
	email  *utils.EmailService
	logger *zap.Logger
}

// NewNotificationsService creates a NotificationsService. email may be nil
// when SMTP is not configured.
func NewNotificationsService(db *pgxpool.Pool, email *utils.EmailService, logger *zap.Logger) *NotificationsService {
	return &NotificationsService{db: db, email: email, logger: logger}
}

// Create inserts one notification row.
func (s *NotificationsService) Create(ctx context.Context, userID uuid.UUID, nType, title string, message *string, data map[string]any) error {
	if userID == uuid.Nil {
		return errors.New("user_id cannot be nil")
	}
	if strings.TrimSpace(nType) == "" {
		return errors.New("notification type is required")
	}
	if strings.TrimSpace(title) == "" {
		return errors.New("notification title is required")
	}
	if !validNotificationTypes[nType] {
		s.logger.Warn("unknown notification type", zap.String("type", nType), zap.String("user_id", userID.String()))
	}

	var dataJSON any
	if len(data) > 0 {
		jsonBytes, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("marshal notification data: %w", err)
		}
		dataJSON = string(jsonBytes)
	}

	insertCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := s.db.Exec(insertCtx, `
		INSERT INTO notifications (user_id, type, title, message, data)
		VALUES ($1, $2, $3, $4, $5::jsonb)
	`, userID, nType, title, message, dataJSON)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// MatchesGenerated records a matches_generated notification and, when SMTP
// is configured, mails the user a digest. Failures are logged, never raised:
// the generation run already succeeded.
func (s *NotificationsService) MatchesGenerated(ctx context.Context, userID uuid.UUID, count int) {
	message := fmt.Sprintf("%d new co-founder matches are waiting for you.", count)
	err := s.Create(ctx, userID, TypeMatchesGenerated, "New matches found", &message,
		map[string]any{"match_count": count})
	if err != nil {
		s.logger.Error("failed to create match notification",
			zap.String("user_id", userID.String()), zap.Error(err))
	}

	if s.email == nil {
		return
	}

	var email string
	if err := s.db.QueryRow(ctx,
		`SELECT email FROM users WHERE id = $1`, userID).Scan(&email); err != nil {
		s.logger.Warn("failed to look up email for match digest",
			zap.String("user_id", userID.String()), zap.Error(err))
		return
	}

	if err := s.email.SendMatchDigest(email, count); err != nil {
		s.logger.Warn("failed to send match digest email",
			zap.String("user_id", userID.String()), zap.Error(err))
	}
}

// NotificationsHandler: HTTP endpoints (list / mark read / mark all read)
type NotificationsHandler struct {
	db  *pgxpool.Pool
	svc *NotificationsService
}

func NewNotificationsHandler(db *pgxpool.Pool, svc *NotificationsService) *NotificationsHandler {
	return &NotificationsHandler{db: db, svc: svc}
}

func (h *NotificationsHandler) Service() *NotificationsService { return h.svc }

// List returns user notifications with filters and pagination
// @Summary List notifications
// @Description List user notifications with filters and pagination.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param unread_only query bool false "true|false (default false)"
// @Param type query string false "filter by type"
// @Param limit query int false "default 20 (max 100)"
// @Param offset query int false "default 0"
// @Success 200 {object} dto.NotificationsListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/notifications [get]
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q := r.URL.Query()
	unreadOnly := strings.EqualFold(q.Get("unread_only"), "true")
	typ := strings.TrimSpace(q.Get("type"))

	limit := 20
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			if n > 100 {
				n = 100
			}
			limit = n
		} else {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid limit", "limit must be a positive integer")
			return
		}
	}

	offset := 0
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		} else {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid offset", "offset must be a non-negative integer")
			return
		}
	}

	if typ != "" && !validNotificationTypes[typ] {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid type", "invalid notification type")
		return
	}

	var unreadCount int
	if err := h.db.QueryRow(ctx,
		`SELECT COUNT(1) FROM notifications WHERE user_id=$1 AND read=false`, userID,
	).Scan(&unreadCount); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to count unread notifications")
		return
	}

	args := []any{userID}
	where := `WHERE user_id=$1`
	argNum := 2

	if unreadOnly {
		where += " AND read=false"
	}
	if typ != "" {
		where += fmt.Sprintf(" AND type=$%d", argNum)
		args = append(args, typ)
		argNum++
	}

	var total int
	if err := h.db.QueryRow(ctx,
		fmt.Sprintf(`SELECT COUNT(1) FROM notifications %s`, where), args...,
	).Scan(&total); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to count notifications")
		return
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT id, type, title, message, data, read, created_at
		FROM notifications %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argNum, argNum+1)

	rows, err := h.db.Query(ctx, query, args...)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to fetch notifications")
		return
	}
	defer rows.Close()

	items := make([]dto.NotificationItem, 0, limit)
	for rows.Next() {
		var (
			id        uuid.UUID
			typStr    string
			title     string
			message   *string
			dataRaw   []byte
			read      bool
			createdAt time.Time
		)
		if err := rows.Scan(&id, &typStr, &title, &message, &dataRaw, &read, &createdAt); err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to process notification data")
			return
		}

		var data map[string]any
		if len(dataRaw) > 0 && string(dataRaw) != "null" {
			if err := json.Unmarshal(dataRaw, &data); err != nil {
				data = nil
			}
		}

		items = append(items, dto.NotificationItem{
			ID:        id.String(),
			Type:      typStr,
			Title:     title,
			Message:   message,
			Data:      data,
			Read:      read,
			CreatedAt: createdAt.UTC().Format(time.RFC3339),
		})
	}

	if err := rows.Err(); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to process notifications")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.NotificationsListResponse{
		Notifications: items,
		Pagination: dto.NotificationsPagination{
			Total:       total,
			UnreadCount: unreadCount,
			Limit:       limit,
			Offset:      offset,
		},
	})
}

// MarkRead marks one notification as read
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/notifications/{id}/read [post]
func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	// Parse notification ID from /api/notifications/{id}/read
	path := r.URL.Path
	rest := strings.TrimPrefix(path, "/api/notifications/")
	slash := strings.Index(rest, "/")
	if slash <= 0 || !strings.HasSuffix(path, "/read") {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid path", "missing or invalid notification id")
		return
	}
	idStr := strings.TrimSpace(rest[:slash])

	nID, err := uuid.Parse(idStr)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid id", "notification id must be a valid UUID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	cmd, err := h.db.Exec(ctx,
		`UPDATE notifications SET read=true WHERE id=$1 AND user_id=$2 AND read=false`,
		nID, userID,
	)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to update notification")
		return
	}

	if cmd.RowsAffected() == 0 {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Notification not found or already read")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{
		"message": "Notification marked as read",
	})
}

// MarkAllRead marks every unread notification as read
// @Summary Mark all notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/notifications/read-all [post]
func (h *NotificationsHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cmd, err := h.db.Exec(ctx,
		`UPDATE notifications SET read=true WHERE user_id=$1 AND read=false`, userID,
	)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to update notifications")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"message":       "All notifications marked as read",
		"updated_count": cmd.RowsAffected(),
	})
}
