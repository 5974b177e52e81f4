package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/moviemates/watchlist/internal/auth"
	"github.com/moviemates/watchlist/internal/config"
	"github.com/moviemates/watchlist/internal/middleware"
	"github.com/moviemates/watchlist/internal/service"
	"github.com/moviemates/watchlist/internal/storage/sqlite"
	"github.com/moviemates/watchlist/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	cfg := config.Load()

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DatabasePath)

	authenticator := auth.NewPasswordAuthenticator(store, cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenValidity)

	authSvc := service.NewAuthService(authenticator, jwtManager, slog.Default())
	watchlistSvc := service.NewWatchlistService(store, slog.Default())

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(10 * time.Second))
	r.Use(middleware.Logging())
	r.Use(middleware.Metrics())

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Mount("/auth", authSvc.Routes())
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwtManager))
		r.Mount("/watchlists", watchlistSvc.Routes())
	})

	addr := ":" + cfg.Port
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
