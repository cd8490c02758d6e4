// @title Co-Founder Sphere Backend API
// @version 1.0
// @description Co-Founder Sphere Backend API for startup co-founder matching
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"go.uber.org/zap"

	_ "COFOUNDER-SPHERE_BACK-END/docs" // This is required for swagger
	"COFOUNDER-SPHERE_BACK-END/internal/ai/gemini"
	"COFOUNDER-SPHERE_BACK-END/internal/config"
	"COFOUNDER-SPHERE_BACK-END/internal/handlers"
	"COFOUNDER-SPHERE_BACK-END/internal/logger"
	"COFOUNDER-SPHERE_BACK-END/internal/matching"
	"COFOUNDER-SPHERE_BACK-END/internal/routes"
	"COFOUNDER-SPHERE_BACK-END/internal/store"
	"COFOUNDER-SPHERE_BACK-END/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New(cfg.Logging.JSON, cfg.Logging.Debug)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	// pgxpool + simple protocol (required when going through PgBouncer :6543)
	pgCfg, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		zlog.Fatal("parse dsn", zap.Error(err))
	}
	pgCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pgCfg.ConnConfig.RuntimeParams["application_name"] = "cofounder-sphere-backend"
	pgCfg.ConnConfig.RuntimeParams["statement_timeout"] = strconv.FormatInt(cfg.Database.QueryTimeout.Milliseconds(), 10)
	pgCfg.MaxConns = cfg.Database.MaxConns
	pgCfg.MinConns = cfg.Database.MinConns
	pgCfg.MaxConnLifetime = cfg.Database.MaxLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), pgCfg)
	if err != nil {
		zlog.Fatal("connect", zap.Error(err))
	}
	defer pool.Close()

	{
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnTimeout)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			zlog.Fatal("ping", zap.Error(err))
		}
	}
	zlog.Info("connected to database",
		zap.String("host", cfg.Database.Host),
		zap.String("db", cfg.Database.Name),
	)

	// --- Matching pipeline ---

	var scorer *matching.Scorer
	if cfg.IsGeminiConfigured() {
		generator, err := gemini.NewGenerator(context.Background(), cfg.Gemini.APIKey, gemini.Options{
			Model:           cfg.Gemini.Model,
			Temperature:     cfg.Gemini.Temperature,
			MaxOutputTokens: cfg.Gemini.MaxOutputTokens,
			MaxRetries:      cfg.Gemini.MaxRetries,
		}, zlog)
		if err != nil {
			zlog.Fatal("init gemini generator", zap.Error(err))
		}
		scorer = matching.NewScorer(generator, zlog)
		zlog.Info("gemini scorer enabled", zap.String("model", generator.Model()))
	} else {
		scorer = matching.NewScorer(nil, zlog)
		zlog.Warn("gemini not configured, scoring with fallback formula only")
	}

	pgStore := store.NewPostgres(pool)

	var emailSvc *utils.EmailService
	if cfg.IsEmailConfigured() {
		emailSvc = utils.NewEmailService(&cfg.Email)
	}
	notifications := handlers.NewNotificationsService(pool, emailSvc, zlog)

	engine := matching.NewEngine(pgStore, scorer, notifications, cfg.Matching, zlog)

	// --- HTTP Handlers ---

	h := routes.Handlers{
		Auth:          handlers.NewAuthHandler(pool, cfg),
		Profile:       handlers.NewProfileHandler(pool, pgStore),
		Matches:       handlers.NewMatchesHandler(engine, &cfg.Matching),
		Likes:         handlers.NewLikesHandler(pool, notifications),
		Notifications: handlers.NewNotificationsHandler(pool, notifications),
		Health:        handlers.NewHealthHandler(pool),
	}
	if cfg.IsGoogleOAuthConfigured() {
		h.GoogleAuth = handlers.NewGoogleAuthHandler(pool, cfg)
	}

	routes.SetupRoutes(h, cfg)

	// --- HTTP Server + Graceful Shutdown ---

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})
	handler := c.Handler(http.DefaultServeMux)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		zlog.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("ListenAndServe", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server shutdown", zap.Error(err))
	}
	zlog.Info("server stopped")
}
