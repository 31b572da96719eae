package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"ellarises/internal/config"
	"ellarises/internal/database"
	"ellarises/internal/handlers"
	"ellarises/internal/repository"
	"ellarises/internal/security"
	"ellarises/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if cfg.Env != "production" {
		if err := db.SeedDev(); err != nil {
			log.Printf("Warning: dev seed failed: %v", err)
		}
	}

	templates, err := handlers.LoadTemplates(cfg.TemplatesPath)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	// Repositories
	accountRepo := repository.NewAccountRepository(db)
	resourceRepo := repository.NewResourceRepository(db)
	eventRepo := repository.NewEventRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Services
	authService := service.NewAuthService(accountRepo, cfg.SessionDuration, cfg.SessionSecret, cfg.DevLoginBypass)
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	var googleOAuth *oauth2.Config
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		googleOAuth = &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.AppBaseURL + "/auth/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}

	// Middleware
	csrf := security.NewCSRFGenerator(cfg.SessionSecret)
	limiter := security.NewRateLimiter(20, time.Minute)
	mw := handlers.NewMiddleware(authService, csrf, limiter)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, emailService, templates, googleOAuth)
	resourceHandler := handlers.NewResourceHandler(resourceRepo, templates, mw)
	eventHandler := handlers.NewEventHandler(eventRepo, templates, mw)
	userHandler := handlers.NewUserHandler(accountRepo, templates, mw)
	publicHandler := handlers.NewPublicHandler(resourceRepo, emailService, templates)
	dashboardHandler := handlers.NewDashboardHandler(statsRepo, eventRepo, templates)
	systemHandler := handlers.NewSystemHandler(db)

	mux := http.NewServeMux()
	registerRoutes(mux, cfg, mw, authHandler, resourceHandler, eventHandler, userHandler, publicHandler, dashboardHandler, systemHandler)

	// Expired sessions are swept in the background so the sessions
	// table does not grow without bound
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := authService.CleanupExpiredSessions(); err != nil {
				log.Printf("Error cleaning up sessions: %v", err)
			}
		}
	}()

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      handlers.Logging(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s (env: %s, database: %s)", cfg.ServerPort, cfg.Env, db.Dialect.Name())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
