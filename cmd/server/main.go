package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"suryayoga/internal/config"
	"suryayoga/internal/database"
	"suryayoga/internal/handlers"
	"suryayoga/internal/repository"
	"suryayoga/internal/security"
	"suryayoga/internal/service"
	"suryayoga/internal/token"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	newsRepo := repository.NewNewsRepository(db)

	// Initialize token and email services
	tokenService := token.NewService(cfg.JWTSecret, sessionRepo, userRepo, cfg.SessionDuration, cfg.PurposeTokenTTL)
	emailService, err := service.NewEmailService(cfg.SESRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.BaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	// Initialize domain services
	authService := service.NewAuthService(userRepo, tokenService, emailService, cfg.AdminKey)
	oauthService := service.NewOAuthService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, userRepo, tokenService)
	reviewService := service.NewReviewService(reviewRepo)
	newsService := service.NewNewsService(newsRepo)
	metricsService := service.NewMetricsService(userRepo, reviewRepo, newsRepo)

	// Rate limiter for the credential endpoints
	limiter := security.NewRateLimiter(10, time.Minute)

	// Initialize middleware and handlers
	middleware := handlers.NewMiddleware(tokenService, userRepo, limiter)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	oauthHandler := handlers.NewOAuthHandler(oauthService, cfg)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	newsHandler := handlers.NewNewsHandler(newsService, middleware)
	adminHandler := handlers.NewAdminHandler(reviewService, newsService, metricsService)
	healthHandler := handlers.NewHealthHandler(db, userRepo, sessionRepo, newsRepo)

	// Set up routes
	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /api/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("GET /api/verify-email", authHandler.VerifyEmail)
	mux.HandleFunc("POST /api/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/logout", middleware.OptionalAuth(authHandler.Logout))
	mux.HandleFunc("POST /api/forgot-password", middleware.RateLimit(authHandler.ForgotPassword))
	mux.HandleFunc("POST /api/reset-password", authHandler.ResetPassword)
	mux.HandleFunc("GET /api/me", middleware.RequireAuth(authHandler.Me))
	mux.HandleFunc("POST /api/make-admin", authHandler.MakeAdmin)

	// Google sign-in popup flow
	mux.HandleFunc("GET /api/auth/google/url", oauthHandler.GoogleURL)
	mux.HandleFunc("GET /api/auth/google/callback", oauthHandler.GoogleCallback)

	// Reviews
	mux.HandleFunc("GET /api/reviews", reviewHandler.List)
	mux.HandleFunc("POST /api/reviews", middleware.RequireAuth(reviewHandler.Create))
	mux.HandleFunc("GET /api/admin/reviews", middleware.RequireAdmin(adminHandler.PendingReviews))
	mux.HandleFunc("POST /api/admin/reviews", middleware.RequireAdmin(adminHandler.ReviewAction))

	// News and comments
	mux.HandleFunc("GET /api/news", newsHandler.ListPublished)
	mux.HandleFunc("POST /api/news", middleware.RequireAdmin(newsHandler.Create))
	mux.HandleFunc("GET /api/news/{id}", middleware.OptionalAuth(newsHandler.Get))
	mux.HandleFunc("PUT /api/news/{id}", middleware.RequireAdmin(newsHandler.Update))
	mux.HandleFunc("DELETE /api/news/{id}", middleware.RequireAdmin(newsHandler.Delete))
	mux.HandleFunc("GET /api/admin/news", middleware.RequireAdmin(adminHandler.AllNews))
	mux.HandleFunc("PATCH /api/admin/news", middleware.RequireAdmin(adminHandler.ToggleNewsPublication))
	mux.HandleFunc("GET /api/news/{id}/comments", newsHandler.ListComments)
	mux.HandleFunc("POST /api/news/{id}/comments", middleware.RequireAuth(newsHandler.CreateComment))
	mux.HandleFunc("GET /api/admin/comments", middleware.RequireAdmin(adminHandler.AllComments))
	mux.HandleFunc("DELETE /api/comments/{id}", middleware.RequireAdmin(newsHandler.DeleteComment))

	// Ops
	mux.HandleFunc("GET /api/health", healthHandler.Health)
	mux.HandleFunc("GET /api/admin/metrics", middleware.RequireAdmin(adminHandler.Metrics))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background session cleanup
	go cleanupExpiredSessions(sessionRepo)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// cleanupExpiredSessions periodically removes expired sessions
func cleanupExpiredSessions(sessions *repository.SessionRepository) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		purged, err := sessions.PurgeExpired()
		if err != nil {
			log.Printf("Error cleaning up expired sessions: %v", err)
			continue
		}
		if purged > 0 {
			log.Printf("Cleaned up %d expired sessions", purged)
		}
	}
}
