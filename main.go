package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/statushub/profiles-be/internal/api"
	"github.com/statushub/profiles-be/internal/apperr"
	"github.com/statushub/profiles-be/internal/config"
	"github.com/statushub/profiles-be/internal/database"
	"github.com/statushub/profiles-be/internal/logger"
	"github.com/statushub/profiles-be/internal/monitoring"
	"github.com/statushub/profiles-be/internal/services"
	"github.com/statushub/profiles-be/internal/websocket"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up WebSocket Hub for the live feed stream
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	userService := services.NewUserService(db)
	feedService := services.NewFeedService(db)
	eventService := services.NewEventService(db)

	bootstrapSuperuser(cfg, userService)

	// Set up and run the background system monitor
	monitor := monitoring.NewSystemMonitor(eventService)
	go monitor.Run()

	// Set up and run the event log janitor
	janitor := monitoring.NewJanitor(eventService, cfg.EventRetentionDays)
	janitor.Run()

	// Set up router
	router := api.NewRouter(api.RouterDeps{
		Hub:        hub,
		UserSvc:    userService,
		FeedSvc:    feedService,
		EventSvc:   eventService,
		JWTSecret:  []byte(cfg.JWTSecret),
		TokenTTL:   cfg.TokenTTL,
		CORSOrigin: cfg.CORSOrigin,
	})

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	monitor.Stop()
	janitor.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}

// bootstrapSuperuser creates the privileged account from ADMIN_* env vars on
// first start. A duplicate email means it already exists; anything else is
// fatal because a half-configured admin account is worse than none.
func bootstrapSuperuser(cfg *config.Config, userService *services.UserService) {
	if cfg.AdminEmail == "" || cfg.AdminName == "" || cfg.AdminPassword == "" {
		return
	}

	user, err := userService.CreateSuperuser(cfg.AdminEmail, cfg.AdminName, cfg.AdminPassword)
	if err != nil {
		var verr *apperr.ValidationError
		if errors.As(err, &verr) && verr.Fields["email"] == "is already registered" {
			log.Info().Str("email", cfg.AdminEmail).Msg("Superuser already exists, skipping bootstrap")
			return
		}
		log.Fatal().Err(err).Msg("Failed to bootstrap superuser")
	}
	log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("Superuser bootstrapped")
}
