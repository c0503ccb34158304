package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/supabase-community/supabase-go"

	"github.com/progate-hackathon-strawberry-flavor/leaderboard-backend/internal/api/handlers"
	"github.com/progate-hackathon-strawberry-flavor/leaderboard-backend/internal/api/middleware"
	"github.com/progate-hackathon-strawberry-flavor/leaderboard-backend/internal/config"
	"github.com/progate-hackathon-strawberry-flavor/leaderboard-backend/internal/database"
	"github.com/progate-hackathon-strawberry-flavor/leaderboard-backend/internal/services/auth"
	"github.com/progate-hackathon-strawberry-flavor/leaderboard-backend/internal/services/identity"
	"github.com/progate-hackathon-strawberry-flavor/leaderboard-backend/internal/services/leaderboard"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			slog.Warn("no .env file loaded (this is fine in production)", "error", err)
		}
	}

	cfg := config.Load()
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbService, err := database.NewDatabaseService(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbService.Close()

	if err := dbService.EnsureScoreSchema(ctx, cfg.ScoresTable); err != nil {
		logger.Error("schema setup failed", "error", err)
		os.Exit(1)
	}

	sb, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, nil)
	if err != nil {
		logger.Error("supabase client setup failed", "error", err)
		os.Exit(1)
	}

	resolver := identity.NewGoTrueResolver(sb.Auth)
	authService := auth.NewService(sb.Auth, cfg.SupabaseServiceKey)

	feed := leaderboard.NewFeed()
	ledger := leaderboard.NewLedger(database.NewScoreRepository(dbService.DB, cfg.ScoresTable), feed)

	scoreHandler := handlers.NewScoreHandler(ledger, logger)
	authHandler := handlers.NewAuthHandler(authService, logger)
	liveHandler := handlers.NewLiveHandler(feed, logger)

	requireAuth := middleware.RequireAuth(cfg.SupabaseJWTSecret, resolver, logger)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	// Public account endpoints.
	api.HandleFunc("/auth/signup", authHandler.SignUp).Methods("POST")
	api.HandleFunc("/auth/confirm", authHandler.ConfirmSignUp).Methods("POST")
	api.HandleFunc("/auth/resend-confirmation", authHandler.ResendConfirmation).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods("POST")
	api.HandleFunc("/auth/forgot-password", authHandler.ForgotPassword).Methods("POST")
	api.HandleFunc("/auth/reset-password", authHandler.ResetPassword).Methods("POST")

	// Account endpoints that act on the caller's own account.
	api.Handle("/auth/change-password", requireAuth(http.HandlerFunc(authHandler.ChangePassword))).Methods("POST")
	api.Handle("/auth/user", requireAuth(http.HandlerFunc(authHandler.GetUser))).Methods("GET")
	api.Handle("/auth/profile", requireAuth(http.HandlerFunc(authHandler.UpdateProfile))).Methods("PUT")
	api.Handle("/auth/user", requireAuth(http.HandlerFunc(authHandler.DeleteUser))).Methods("DELETE")

	// Score endpoints, all behind authentication.
	scores := api.PathPrefix("/scores").Subrouter()
	scores.Use(requireAuth)
	scores.HandleFunc("", scoreHandler.SubmitScore).Methods("POST")
	scores.HandleFunc("", scoreHandler.GetTopScore).Methods("GET")
	scores.HandleFunc("/top", scoreHandler.GetTopScores).Methods("GET")
	scores.HandleFunc("/me", scoreHandler.GetMyTopScore).Methods("GET")
	scores.HandleFunc("/live", liveHandler.Stream).Methods("GET")

	corsHandler := middleware.CORSHandler(cfg.AllowedOrigins)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: corsHandler(r),
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
