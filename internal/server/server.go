// Package server wires the application together: database, services,
// handlers, middleware, and routes. It is the composition root — every
// dependency is assembled here and nowhere else, which keeps main.go down
// to "load config, start server".
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

	"github.com/mindwellhq/mindwell/internal/auth"
	"github.com/mindwellhq/mindwell/internal/billing"
	"github.com/mindwellhq/mindwell/internal/handler"
	"github.com/mindwellhq/mindwell/internal/middleware"
	sqliteRepo "github.com/mindwellhq/mindwell/internal/repository/sqlite"
	"github.com/mindwellhq/mindwell/internal/service"
)

// Config holds everything the server needs to run. Loaded from the
// environment in main.go so tests can construct one directly.
type Config struct {
	Port      int
	DBPath    string
	JWTSecret string

	// Stripe credentials. Empty StripeSecretKey disables the billing
	// provider: upgrade attempts then fail with a clear error instead
	// of a confusing network one.
	StripeSecretKey     string
	StripeWebhookSecret string

	// DevMode exposes the mock premium-upgrade route. Never enable in
	// production.
	DevMode bool
}

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown so the WAL is flushed and the file lock
// released.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain: sqlite.DB → services →
// handlers → routes. Each layer receives only the interfaces it needs;
// handlers never see the database and services never see HTTP.
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

// Router exposes the configured mux for httptest servers.
func (s *Server) Router() http.Handler {
	return s.router
}

// Close releases the database connection. Start() does this itself; Close
// is for callers that use Router() directly.
func (s *Server) Close() error {
	return s.db.Close()
}

func (s *Server) setupRoutes() error {
	// Global middleware, in execution order: request IDs for tracing,
	// real client IPs behind proxies, panic recovery, then our slog
	// request logger.
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	var provider billing.Provider
	if s.config.StripeSecretKey != "" {
		provider = billing.NewStripeClient(s.config.StripeSecretKey, s.logger)
	} else {
		s.logger.Warn("STRIPE_SECRET_KEY not set, premium upgrades disabled")
	}
	if s.config.StripeWebhookSecret == "" {
		s.logger.Warn("STRIPE_WEBHOOK_SECRET not set, webhook events will be rejected")
	}

	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	journalService := service.NewJournalService(s.db, s.logger)
	moodService := service.NewMoodService(s.db, s.logger)
	catalogService := service.NewCatalogService(s.db, s.db, s.logger)
	billingService := service.NewBillingService(s.db, provider, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	journalHandler := handler.NewJournalHandler(journalService, s.logger)
	moodHandler := handler.NewMoodHandler(moodService, s.logger)
	catalogHandler := handler.NewCatalogHandler(catalogService, s.logger)
	billingHandler := handler.NewBillingHandler(billingService, s.config.StripeWebhookSecret, s.logger)
	insightsHandler := handler.NewInsightsHandler(journalService, moodService, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		// Public: registering, logging in, and the processor webhook
		// (which authenticates with a signature, not a cookie).
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/billing/webhook", billingHandler.HandleWebhook)

		// Catalogs are browsable without a session; a session only
		// changes which items count as available.
		r.Group(func(r chi.Router) {
			r.Use(auth.OptionalAuth(tokens))
			r.Get("/mindfulness-sessions", catalogHandler.HandleSessions)
			r.Get("/mindfulness-sessions/{id}", catalogHandler.HandleSession)
			r.Get("/reflection-prompts", catalogHandler.HandlePrompts)
			r.Get("/reflection-prompts/{id}", catalogHandler.HandlePrompt)
		})

		// Everything else requires a valid session cookie.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))

			r.Post("/logout", authHandler.HandleLogout)
			r.Get("/user", authHandler.HandleCurrentUser)

			r.Get("/journal-entries", journalHandler.HandleList)
			r.Post("/journal-entries", journalHandler.HandleCreate)
			r.Get("/journal-entries/{id}", journalHandler.HandleGet)
			r.Patch("/journal-entries/{id}", journalHandler.HandleUpdate)
			r.Delete("/journal-entries/{id}", journalHandler.HandleDelete)

			r.Get("/mood", moodHandler.HandleList)
			r.Post("/mood", moodHandler.HandleCreate)

			r.Get("/insights", insightsHandler.HandleInsights)

			r.Post("/create-subscription", billingHandler.HandleCreateSubscription)
			if s.config.DevMode {
				r.Post("/mock-premium", billingHandler.HandleMockPremium)
			}
		})
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests for up
// to 30 seconds, close the database.
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
			slog.Bool("devMode", s.config.DevMode),
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
