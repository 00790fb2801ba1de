/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the LeaveDesk server. Handles configuration,
  dependency injection, admin bootstrap, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (CONFIG_PATH file plus env overrides)
  2. Configure structured logging for the environment
  3. Initialize SQLite store
  4. Seed the bootstrap admin into an empty database
  5. Configure HTTP router
  6. Start server with graceful shutdown

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (configurable timeout)
  3. Close database connection
  4. Exit

ENVIRONMENT:
  CONFIG_PATH       Optional YAML config file
  ENV               local | dev | prod (log formatting)
  DB_PATH           SQLite database path (":memory:" works)
  JWT_SECRET        Token signing secret (required)
  ADMIN_EMAIL       Bootstrap admin email
  ADMIN_PASSWORD    Bootstrap admin password

SEE ALSO:
  - config/config.go: configuration shape and defaults
  - api/server.go: router configuration
  - store/sqlite/sqlite.go: database implementation
*/
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/warp/leavedesk/api"
	"github.com/warp/leavedesk/auth"
	"github.com/warp/leavedesk/config"
	"github.com/warp/leavedesk/leave"
	"github.com/warp/leavedesk/store/sqlite"
)

const (
	envLocal = "local"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()
	log := newLogger(cfg.Env)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer store.Close()

	if err := bootstrapAdmin(context.Background(), store, cfg.Bootstrap, log); err != nil {
		log.WithError(err).Fatal("failed to bootstrap admin account")
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	handler := api.NewHandler(store, tokens, log)
	router := api.NewRouter(handler, tokens, log, api.RouterConfig{
		AllowedOrigins: cfg.HTTPServer.AllowedOrigins,
	})

	server := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.WithField("address", cfg.HTTPServer.Address).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}
	log.Info("server stopped")
}

// bootstrapAdmin seeds the configured administrator into an empty
// database so the first login is possible. A non-empty database is
// left alone.
func bootstrapAdmin(ctx context.Context, store leave.TxStore, cfg config.Bootstrap, log *logrus.Logger) error {
	count, err := store.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	id, err := store.CreateUser(ctx, leave.User{
		Email:        cfg.AdminEmail,
		FirstName:    "Admin",
		LastName:     "Admin",
		PasswordHash: hash,
		Admin:        true,
	})
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"user_id": id,
		"email":   cfg.AdminEmail,
	}).Info("bootstrap admin created")
	return nil
}

func newLogger(env string) *logrus.Logger {
	log := logrus.New()
	switch env {
	case envLocal:
		log.SetLevel(logrus.DebugLevel)
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case envProd:
		log.SetLevel(logrus.InfoLevel)
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		log.SetLevel(logrus.DebugLevel)
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log
}
