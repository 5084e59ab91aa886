// Package server wires the dependency graph and defines every route.
//
// This is the composition root: main.go hands it a Config, and New assembles
// DB → repositories → services → handlers, then maps routes to handlers with
// the auth gate applied exactly where the policy says.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/bloglist/internal/auth"
	"github.com/sakif/bloglist/internal/handler"
	"github.com/sakif/bloglist/internal/middleware"
	sqliteRepo "github.com/sakif/bloglist/internal/repository/sqlite"
	"github.com/sakif/bloglist/internal/service"
)

// Config holds server configuration, loaded from the environment in main.
type Config struct {
	Port      int
	DBPath    string
	JWTSecret string
	TokenTTL  time.Duration // zero means auth.DefaultTokenTTL

	// GitHub OAuth is optional; the routes are only registered when a
	// client ID is configured.
	GitHubClientID     string
	GitHubClientSecret string
	GitHubCallbackURL  string
}

// Server owns the router and the database connection; the connection is
// closed during graceful shutdown so the WAL is flushed.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server and assembles the whole dependency chain.
//
// Each layer only receives what it needs: services get repository
// interfaces, handlers get services. Nothing below the composition root
// imports the sqlite package.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware and maps every route.
//
// ROUTE POLICY (which operations are auth-gated):
//
//	POST   /api/users           public     register
//	POST   /api/login           public     issue token
//	GET    /api/blogs           public     list
//	GET    /api/blogs/stats     public     aggregations
//	GET    /api/blogs/{id}      public     single blog
//	PUT    /api/blogs/{id}      public     like count (deliberate: no auth)
//	POST   /api/blogs           gated      owner = token identity
//	DELETE /api/blogs/{id}      gated      owner-only (403 otherwise)
//	GET    /api/me              gated      current user
//	GET    /auth/github/*       public     OAuth flow (when configured)
//
// The gate lives here and nowhere else, so over- or under-gating an
// operation is a one-line diff in one file.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret, s.config.TokenTTL)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	var github *auth.GitHubProvider
	if s.config.GitHubClientID != "" {
		github = auth.NewGitHubProvider(
			s.config.GitHubClientID,
			s.config.GitHubClientSecret,
			s.config.GitHubCallbackURL,
		)
	}

	authService := service.NewAuthService(sqliteRepo.NewUserRepo(s.db), tokens, passwords, s.logger)
	blogService := service.NewBlogService(sqliteRepo.NewBlogRepo(s.db), s.logger)

	authHandler := handler.NewAuthHandler(authService, github, s.logger)
	blogHandler := handler.NewBlogHandler(blogService, s.logger)
	statsHandler := handler.NewStatsHandler(blogService, s.logger)

	requireAuth := auth.RequireAuth(tokens)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/users", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)

		r.Get("/blogs", blogHandler.HandleList)
		r.Get("/blogs/stats", statsHandler.HandleStats)
		r.Get("/blogs/{id}", blogHandler.HandleGetByID)
		r.Put("/blogs/{id}", blogHandler.HandleUpdateLikes)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/blogs", blogHandler.HandleCreate)
			r.Delete("/blogs/{id}", blogHandler.HandleDelete)
			r.Get("/me", authHandler.HandleMe)
		})
	})

	if github != nil {
		s.router.Get("/auth/github/login", authHandler.HandleGitHubLogin)
		s.router.Get("/auth/github/callback", authHandler.HandleGitHubCallback)
		s.router.Post("/auth/logout", authHandler.HandleLogout)
	}

	return nil
}

// Handler exposes the configured router, mainly for httptest in integration
// tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the HTTP server and blocks until shutdown.
//
// Graceful shutdown: stop accepting connections, give in-flight requests 30
// seconds to finish, then close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
