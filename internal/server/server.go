// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the "wiring" layer — the composition root where every
// dependency is constructed and connected:
//
//	sqlite.DB ──┬→ TokenBroker ─┐
//	            │               ├→ ReadmeService → ReadmeHandler
//	github.Client ──────────────┤
//	genai.Client ───────────────┘
//	TokenService → SessionService → (both handlers)
//	GitHubProvider ─────────────────→ AuthHandler
//
// Handlers never touch the database or the HTTP clients directly, and the
// service layer never touches HTTP.
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

	"github.com/sakif/readme-studio/internal/auth"
	"github.com/sakif/readme-studio/internal/genai"
	"github.com/sakif/readme-studio/internal/github"
	"github.com/sakif/readme-studio/internal/handler"
	"github.com/sakif/readme-studio/internal/middleware"
	sqliteRepo "github.com/sakif/readme-studio/internal/repository/sqlite"
	"github.com/sakif/readme-studio/internal/service"
)

// Config holds server configuration, loaded from the environment in main.
type Config struct {
	Port        int
	TemplateDir string
	StaticDir   string
	DBPath      string

	JWTSecret string

	GitHubClientID     string
	GitHubClientSecret string
	GitHubCallbackURL  string

	GeminiAPIKey string
	GeminiModel  string // empty → genai.DefaultModel
}

// Server owns the router and the resources that need closing on shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server and wires the full dependency graph.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("server: JWT_SECRET is required")
	}
	if cfg.GitHubClientID == "" || cfg.GitHubClientSecret == "" {
		return nil, fmt.Errorf("server: GitHub OAuth credentials are required")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("server: GEMINI_API_KEY is required")
	}

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

// setupRoutes configures middleware, constructs every handler, and maps the
// route table:
//
//	GET  /                      → app page (HTML)
//	GET  /static/*              → static assets
//	GET  /auth/github/login     → redirect to GitHub
//	GET  /auth/github/callback  → OAuth callback
//	POST /auth/logout           → clear session cookie
//	GET  /api/me                → current user (JSON)
//	GET  /api/repos             → the user's repositories (JSON)
//	POST /api/readme            → generate a README (JSON)
func (s *Server) setupRoutes() error {
	// Global middleware, in order: request ID → real IP → panic recovery →
	// request logging.
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// Static assets
	fileServer := http.FileServer(http.Dir(s.config.StaticDir))
	s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	// Auth plumbing
	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	sessions := auth.NewSessionService(tokens)
	githubOAuth := auth.NewGitHubProvider(
		s.config.GitHubClientID,
		s.config.GitHubClientSecret,
		s.config.GitHubCallbackURL,
	)

	// External API clients
	githubAPI := github.NewClient(s.logger)
	generator := genai.NewClient(s.config.GeminiAPIKey, s.config.GeminiModel, s.logger)

	// Services
	broker := service.NewTokenBroker(s.db, s.logger)
	readmeService := service.NewReadmeService(broker, githubAPI, generator, s.logger)

	// Handlers
	pageHandler, err := handler.NewPageHandler(s.config.TemplateDir, s.logger)
	if err != nil {
		return fmt.Errorf("creating page handler: %w", err)
	}
	authHandler := handler.NewAuthHandler(githubOAuth, tokens, sessions, s.db, s.db, s.logger)
	readmeHandler := handler.NewReadmeHandler(sessions, readmeService, s.logger)

	s.router.Get("/", pageHandler.HandleIndex)

	s.router.Route("/auth", func(r chi.Router) {
		r.Get("/github/login", authHandler.HandleGitHubLogin)
		r.Get("/github/callback", authHandler.HandleGitHubCallback)
		r.Post("/logout", authHandler.HandleLogout)
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/me", authHandler.HandleMe)
		r.Get("/repos", readmeHandler.HandleListRepos)
		r.Post("/readme", readmeHandler.HandleGenerate)
	})

	return nil
}

// Start starts the HTTP server and handles graceful shutdown:
// stop accepting connections, drain in-flight requests (30s), close the DB.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		// Generation can legitimately take a while — give writes more room
		// than a typical JSON API would need.
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
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
