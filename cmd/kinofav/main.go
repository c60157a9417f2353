package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kinofav/internal/catalog"
	"kinofav/internal/config"
	"kinofav/internal/handler"
	"kinofav/internal/middleware"
	"kinofav/internal/migrations"
	"kinofav/internal/observability"
	"kinofav/internal/repository/postgres"
	"kinofav/internal/service"
	"kinofav/internal/token"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "json"
	}
	observability.InitLogger(logLevel, logFormat)

	slog.Info("starting kinofav server")

	connCtx, connCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer connCancel()

	db, err := config.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	if err := db.PingContext(connCtx); err != nil {
		slog.Error("database ping failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("connected to postgresql")

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		slog.Error("failed to set migration dialect", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := goose.UpContext(connCtx, db, "."); err != nil {
		slog.Error("failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("migrations applied")

	accountRepo := postgres.NewAccountRepository(db)
	favoriteRepo := postgres.NewFavoriteRepository(db)

	tokenService := token.NewService(cfg.TokenSecret, 24*time.Hour)
	catalogClient := catalog.NewClient(cfg.CatalogAPIURL, cfg.CatalogAPIKey)

	authService := service.NewAuthService(accountRepo, tokenService)
	favoritesService := service.NewFavoritesService(favoriteRepo, catalogClient)

	authHandler := handler.NewAuthHandler(authService, cfg.IsProduction())
	favoritesHandler := handler.NewFavoritesHandler(favoritesService)
	moviesHandler := handler.NewMoviesHandler(catalogClient)

	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.CORS(middleware.ParseOrigins(cfg.AllowedOrigins)))
	r.Use(middleware.Metrics())
	r.Use(middleware.OpenAPIValidator(middleware.DefaultOpenAPIValidatorConfig(cfg.Environment)))

	r.Get("/health", handler.Health)
	r.Get("/health/ready", handler.Ready(db, catalogClient))
	r.Handle("/metrics", promhttp.Handler())

	authLimiter := middleware.NewRateLimiter(5, 10)
	apiLimiter := middleware.NewRateLimiter(20, 50)
	defer authLimiter.Stop()
	defer apiLimiter.Stop()

	sessionAuth := middleware.Auth(tokenService, accountRepo)

	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authLimiter.Middleware())
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(sessionAuth)
			r.Get("/profile", authHandler.Profile)
			r.Post("/logout", authHandler.Logout)
		})
	})

	r.Route("/movies", func(r chi.Router) {
		r.Use(sessionAuth)
		r.Use(apiLimiter.Middleware())

		r.Get("/search", moviesHandler.Search)
		r.Post("/favorites", favoritesHandler.Add)
		r.Get("/favorites", favoritesHandler.List)
		r.Delete("/favorites/{film_id}", favoritesHandler.Remove)
		r.Get("/{id}", moviesHandler.Details)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("kinofav server listening", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", slog.String("error", err.Error()))
	}

	slog.Info("server stopped gracefully")
}
