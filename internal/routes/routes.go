package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"COFOUNDER-SPHERE_BACK-END/internal/config"
	"COFOUNDER-SPHERE_BACK-END/internal/handlers"
	"COFOUNDER-SPHERE_BACK-END/internal/middleware"
)

// Handlers bundles everything SetupRoutes wires onto the mux
type Handlers struct {
	Auth          *handlers.AuthHandler
	GoogleAuth    *handlers.GoogleAuthHandler
	Profile       *handlers.ProfileHandler
	Matches       *handlers.MatchesHandler
	Likes         *handlers.LikesHandler
	Notifications *handlers.NotificationsHandler
	Health        *handlers.HealthHandler
}

// SetupRoutes configures all application routes
func SetupRoutes(h Handlers, cfg *config.Config) {
	jwtCfg := &cfg.JWT
	auth := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.AuthMiddleware(next, jwtCfg)
	}

	// Health check routes
	http.HandleFunc("/healthz", h.Health.HealthCheck)
	http.HandleFunc("/livez", h.Health.LivenessCheck)
	http.HandleFunc("/readyz", h.Health.ReadinessCheck)

	// Authentication routes
	http.HandleFunc("/api/auth/register", h.Auth.Register)
	http.HandleFunc("/api/auth/login", h.Auth.Login)
	http.HandleFunc("/api/auth/profile", auth(h.Auth.GetProfile))
	if h.GoogleAuth != nil {
		http.HandleFunc("/api/auth/google/login", h.GoogleAuth.GoogleLogin)
		http.HandleFunc("/api/auth/google/callback", h.GoogleAuth.GoogleCallback)
	}

	// Founder profile routes
	http.HandleFunc("/api/profile", auth(profileDispatch(h.Profile)))

	// Match routes
	http.HandleFunc("/api/matches", auth(h.Matches.List))
	http.HandleFunc("/api/matches/generate", auth(h.Matches.Generate))

	// Likes and rankings
	http.HandleFunc("/api/likes/", auth(h.Likes.Toggle)) // /api/likes/{id}/toggle
	http.HandleFunc("/api/rankings", auth(h.Likes.Rankings))

	// Notifications
	http.HandleFunc("/api/notifications", auth(h.Notifications.List))
	http.HandleFunc("/api/notifications/read-all", auth(h.Notifications.MarkAllRead))
	http.HandleFunc("/api/notifications/", auth(h.Notifications.MarkRead)) // /api/notifications/{id}/read

	// Swagger UI
	http.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Root route
	http.HandleFunc("/", rootHandler)
}

// profileDispatch routes /api/profile by method since the default mux
// patterns here are method-agnostic.
func profileDispatch(h *handlers.ProfileHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			h.Create(w, r)
		case http.MethodGet:
			h.Get(w, r)
		case http.MethodPut:
			h.Update(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Co-Founder Sphere backend is running."))
}
