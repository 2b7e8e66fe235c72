package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/flicklist/flicklist-go/internal/config"
	"github.com/flicklist/flicklist-go/internal/crypto"
	"github.com/flicklist/flicklist-go/internal/handler"
	"github.com/flicklist/flicklist-go/internal/middleware"
	"github.com/flicklist/flicklist-go/internal/repository"
	"github.com/flicklist/flicklist-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := repository.Migrate(db); err != nil {
		slog.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	hasher := crypto.NewHasher(crypto.HashParams{
		Memory:      cfg.Hash.Memory,
		Iterations:  cfg.Hash.Iterations,
		Parallelism: cfg.Hash.Parallelism,
	})

	userRepo := repository.NewUserRepository(db)
	movieRepo := repository.NewMovieRepository(db)

	authService := service.NewAuthService(userRepo, hasher, cfg.JWTSecret, cfg.JWTExpiry)
	accountService := service.NewAccountService(userRepo, hasher)
	favoritesService := service.NewFavoritesService(userRepo)
	catalogService := service.NewCatalogService(movieRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(accountService, favoritesService)
	movieHandler := handler.NewMovieHandler(catalogService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Credential routes are public but rate-limited per IP.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/users", userHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
	})

	// Everything else, catalog included, sits behind the bearer gate.
	r.Group(func(r chi.Router) {
		r.Use(middleware.BearerAuth(cfg.JWTSecret))

		r.Get("/movies", movieHandler.HandleListMovies)
		r.Get("/movies/{id}", movieHandler.HandleGetMovie)
		r.Get("/genres/{name}", movieHandler.HandleGetGenre)
		r.Get("/directors/{name}", movieHandler.HandleGetDirector)

		r.Get("/users/{username}", userHandler.HandleGetUser)
		r.Put("/users/{username}", userHandler.HandleUpdateUser)
		r.Delete("/users/{username}", userHandler.HandleDeleteUser)
		r.Post("/users/{username}/{movieID}", userHandler.HandleAddFavorite)
		r.Delete("/users/{username}/{movieID}", userHandler.HandleRemoveFavorite)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
